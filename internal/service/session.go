// internal/service/session.go
package service

import (
    "sync"
    "time"

    "github.com/google/uuid"

    appErrors "github.com/avaliamed/surveypulse-backend/internal/errors"
    "github.com/avaliamed/surveypulse-backend/internal/model"
)

// SessionTTL bounds how long an abandoned respondent session keeps its
// collector in memory.
const SessionTTL = 2 * time.Hour

// Session is one respondent's in-progress walk through the questionnaire.
type Session struct {
    Token      string
    CampaignID int
    Steps      []model.SectionID
    Collector  *Collector
    StartedAt  time.Time
    lastSeen   time.Time
}

// SessionStore keeps in-flight sessions keyed by token. It is safe for
// concurrent use across respondents, but each session still belongs to a
// single respondent.
type SessionStore struct {
    mu       sync.Mutex
    sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
    return &SessionStore{sessions: map[string]*Session{}}
}

// Start creates a session for a campaign whose steps were already planned.
func (s *SessionStore) Start(campaignID int, steps []model.SectionID) *Session {
    now := time.Now()
    sess := &Session{
        Token:      uuid.NewString(),
        CampaignID: campaignID,
        Steps:      steps,
        Collector:  NewCollector(),
        StartedAt:  now,
        lastSeen:   now,
    }

    s.mu.Lock()
    defer s.mu.Unlock()
    s.sweepLocked(now)
    s.sessions[sess.Token] = sess
    return sess
}

// Get returns the session for a token, refreshing its TTL.
func (s *SessionStore) Get(token string) (*Session, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    sess, ok := s.sessions[token]
    if !ok || time.Since(sess.lastSeen) > SessionTTL {
        delete(s.sessions, token)
        return nil, appErrors.NewSessionNotFound(token)
    }
    sess.lastSeen = time.Now()
    return sess, nil
}

// End removes a completed session. Safe to call twice.
func (s *SessionStore) End(token string) {
    s.mu.Lock()
    defer s.mu.Unlock()
    delete(s.sessions, token)
}

// sweepLocked drops expired sessions. Called lazily from Start so no
// background goroutine is needed.
func (s *SessionStore) sweepLocked(now time.Time) {
    for token, sess := range s.sessions {
        if now.Sub(sess.lastSeen) > SessionTTL {
            delete(s.sessions, token)
        }
    }
}
