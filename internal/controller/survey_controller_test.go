package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/avaliamed/surveypulse-backend/internal/errors"
	"github.com/avaliamed/surveypulse-backend/internal/controller"
	"github.com/avaliamed/surveypulse-backend/internal/model"
	"github.com/avaliamed/surveypulse-backend/internal/service"
)

// --- Mock Repositories ---

type MockCampaignRepo struct {
	campaign *model.Campaign
	config   *model.CampaignConfig
}

func (m *MockCampaignRepo) GetByID(id int) (*model.Campaign, error) {
	if m.campaign == nil || m.campaign.ID != id {
		return nil, appErrors.NewCampaignNotFound(id)
	}
	return m.campaign, nil
}

func (m *MockCampaignRepo) GetConfig(campaignID int) (*model.CampaignConfig, error) {
	return m.config, nil
}

func (m *MockCampaignRepo) Create(c *model.Campaign) error               { return nil }
func (m *MockCampaignRepo) CreateConfig(cfg *model.CampaignConfig) error { return nil }
func (m *MockCampaignRepo) SetActive(id int, active bool) error          { return nil }
func (m *MockCampaignRepo) ListCampaigns(offset, limit int, campaignType string, active *bool) ([]*model.Campaign, int, error) {
	return []*model.Campaign{}, 0, nil
}

type MockDeliveryRepo struct {
	created int
}

func (m *MockDeliveryRepo) CreateResponded(campaignID int, responseToken string) (int, error) {
	m.created++
	return m.created, nil
}
func (m *MockDeliveryRepo) UpdateStatus(id int, status string) error { return nil }
func (m *MockDeliveryRepo) GetByID(id int) (*model.Delivery, error) {
	if id < 1 || id > m.created {
		return nil, nil
	}
	return &model.Delivery{ID: id, Status: "responded"}, nil
}
func (m *MockDeliveryRepo) CountByCampaign(campaignID int) (int, error) { return m.created, nil }

type MockResponseRepo struct {
	created []*model.SurveyResponse
}

func (m *MockResponseRepo) Create(resp *model.SurveyResponse) error {
	m.created = append(m.created, resp)
	resp.ID = len(m.created)
	return nil
}

func (m *MockResponseRepo) GetByID(id int) (*model.SurveyResponse, error) {
	if id < 1 || id > len(m.created) {
		return nil, nil
	}
	return m.created[id-1], nil
}

func (m *MockResponseRepo) ScoreCounts(campaignID int) (map[int]int, error) {
	return map[int]int{}, nil
}

type MockContactRepo struct{}

func (m *MockContactRepo) Create(c *model.RespondentContact) error { return nil }
func (m *MockContactRepo) GetByResponseID(responseID int) (*model.RespondentContact, error) {
	return nil, nil
}

// --- Helpers ---

func newRouter(campaignRepo *MockCampaignRepo, responseRepo *MockResponseRepo) *chi.Mux {
	svc := &service.SurveyService{
		CampaignRepo: campaignRepo,
		Sessions:     service.NewSessionStore(),
		Submission: &service.SubmissionService{
			CampaignRepo: campaignRepo,
			DeliveryRepo: &MockDeliveryRepo{},
			ResponseRepo: responseRepo,
			ContactRepo:  &MockContactRepo{},
		},
	}
	ctrl := &controller.SurveyController{SurveyService: svc}

	r := chi.NewRouter()
	r.Get("/surveys/{campaignID}", ctrl.GetSurvey)
	r.Post("/surveys/{campaignID}/sessions", ctrl.StartSession)
	r.Post("/surveys/{campaignID}/sessions/{sessionID}/answers", ctrl.RecordAnswers)
	r.Post("/surveys/{campaignID}/sessions/{sessionID}/submit", ctrl.SubmitSession)
	return r
}

func postJSON(t *testing.T, r http.Handler, url string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", url, bytes.NewReader(b))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// --- Tests ---

// Full flow with two active contact points: one promoter-tier score (9)
// triggering the positive-feedback follow-up, one detractor-tier score (3).
func TestSurveyFlowWithContactPoints(t *testing.T) {
	campaignRepo := &MockCampaignRepo{
		campaign: &model.Campaign{ID: 1, Name: "Post-Visit NPS", Active: true},
		config: &model.CampaignConfig{
			CampaignID:      1,
			PrimaryQuestion: "How did we do?",
			ContactPoints: model.ContactPointsSection{
				Enabled: true,
				Points: []model.ContactPoint{
					{ID: "emergency", Label: "Emergency Room", Active: true},
					{ID: "outpatient", Label: "Outpatient Clinic", Active: true},
				},
			},
		},
	}
	responseRepo := &MockResponseRepo{}
	r := newRouter(campaignRepo, responseRepo)

	// Start a session
	w := postJSON(t, r, "/surveys/1/sessions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("start session: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var started struct {
		SessionID string            `json:"session_id"`
		Steps     []model.SectionID `json:"steps"`
	}
	if err := json.NewDecoder(w.Body).Decode(&started); err != nil {
		t.Fatalf("failed to decode session: %v", err)
	}
	if len(started.Steps) != 2 || started.Steps[1] != model.SectionContactPoints {
		t.Fatalf("unexpected step plan: %v", started.Steps)
	}

	base := fmt.Sprintf("/surveys/1/sessions/%s", started.SessionID)

	// Primary section answers
	w = postJSON(t, r, base+"/answers", map[string]any{
		"section": model.SectionPrimaryQuestion,
		"payload": map[string]any{"nps_score": 9, "score_reason": "quick and kind"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("primary answers: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	// Contact point scores; 9 reveals the positive follow-up, so the
	// feedback text rides along. The score-3 point gets no follow-up text.
	if !service.RevealPositiveFollowUp(9) || service.RevealPositiveFollowUp(3) {
		t.Fatal("follow-up reveal rule out of sync with the scenario")
	}
	w = postJSON(t, r, base+"/answers", map[string]any{
		"section": model.SectionContactPoints,
		"payload": map[string]any{
			"scores":            map[string]int{"emergency": 9, "outpatient": 3},
			"positive_feedback": "the ER team was outstanding",
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("contact point answers: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	// Submit
	w = postJSON(t, r, base+"/submit", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	if len(responseRepo.created) != 1 {
		t.Fatalf("expected 1 response row, got %d", len(responseRepo.created))
	}
	resp := responseRepo.created[0]
	if resp.ContactPointScores["emergency"] != 9 || resp.ContactPointScores["outpatient"] != 3 {
		t.Errorf("both contact point scores must be stored, got %v", resp.ContactPointScores)
	}
	if resp.ContactPointFeedback != "the ER team was outstanding" {
		t.Errorf("positive feedback missing: %q", resp.ContactPointFeedback)
	}

	// The session is gone after a successful submit
	w = postJSON(t, r, base+"/submit", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("re-submit on a closed session: expected 404, got %d", w.Code)
	}
}

func TestInactiveCampaignRefusesFlow(t *testing.T) {
	campaignRepo := &MockCampaignRepo{
		campaign: &model.Campaign{ID: 1, Name: "Closed", Active: false},
	}
	r := newRouter(campaignRepo, &MockResponseRepo{})

	req := httptest.NewRequest("GET", "/surveys/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusGone {
		t.Errorf("expected 410 for inactive campaign, got %d", w.Code)
	}

	if w := postJSON(t, r, "/surveys/1/sessions", nil); w.Code != http.StatusGone {
		t.Errorf("expected 410 when starting a session, got %d", w.Code)
	}
}

func TestUnknownCampaign(t *testing.T) {
	r := newRouter(&MockCampaignRepo{}, &MockResponseRepo{})

	req := httptest.NewRequest("GET", "/surveys/42", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestAnswersForUnplannedSectionRejected(t *testing.T) {
	campaignRepo := &MockCampaignRepo{
		campaign: &model.Campaign{ID: 1, Active: true},
		config:   &model.CampaignConfig{CampaignID: 1, PrimaryQuestion: "How did we do?"},
	}
	r := newRouter(campaignRepo, &MockResponseRepo{})

	w := postJSON(t, r, "/surveys/1/sessions", nil)
	var started struct {
		SessionID string `json:"session_id"`
	}
	json.NewDecoder(w.Body).Decode(&started)

	w = postJSON(t, r, "/surveys/1/sessions/"+started.SessionID+"/answers", map[string]any{
		"section": model.SectionProblemReport,
		"payload": map[string]any{"had_problem": true},
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for unplanned section, got %d", w.Code)
	}
}
