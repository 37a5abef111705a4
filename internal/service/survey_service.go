// internal/service/survey_service.go
package service

import (
    "fmt"
    "log"

    appErrors "github.com/avaliamed/surveypulse-backend/internal/errors"
    "github.com/avaliamed/surveypulse-backend/internal/model"
    "github.com/avaliamed/surveypulse-backend/internal/repository"
)

// SurveyService drives the respondent-facing flow: load the campaign
// definition, plan the steps, hand out sessions, and merge section answers
// until the session is submitted.
type SurveyService struct {
    CampaignRepo repository.CampaignRepositoryInterface
    Sessions     *SessionStore
    Submission   *SubmissionService
}

// SurveyView is what a respondent's client needs to render the flow.
type SurveyView struct {
    Campaign *model.Campaign       `json:"campaign"`
    Config   *model.CampaignConfig `json:"config,omitempty"`
    Steps    []model.SectionID     `json:"steps"`
}

// LoadSurvey fetches the campaign and its configuration and plans the step
// list. Inactive campaigns refuse to start.
func (s *SurveyService) LoadSurvey(campaignID int) (*SurveyView, error) {
    campaign, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        return nil, err
    }
    if !campaign.Active {
        return nil, appErrors.NewCampaignInactive(campaignID)
    }

    cfg, err := s.CampaignRepo.GetConfig(campaignID)
    if err != nil {
        return nil, err
    }
    if cfg == nil {
        log.Println("⚠️ campaign has no configuration, planning mandatory section only:", campaignID)
    }

    return &SurveyView{
        Campaign: campaign,
        Config:   cfg,
        Steps:    PlanSteps(cfg),
    }, nil
}

// StartSession opens a new respondent session for an active campaign.
func (s *SurveyService) StartSession(campaignID int) (*Session, error) {
    view, err := s.LoadSurvey(campaignID)
    if err != nil {
        return nil, err
    }
    return s.Sessions.Start(campaignID, view.Steps), nil
}

// RecordAnswers merges one section's partial payload into the session's
// composite and returns the accumulated state. Sections outside the planned
// steps are rejected so a stale client cannot smuggle answers for sections
// the campaign never enabled.
func (s *SurveyService) RecordAnswers(token string, section model.SectionID, payload map[string]any) (map[string]any, error) {
    sess, err := s.Sessions.Get(token)
    if err != nil {
        return nil, err
    }

    planned := false
    for _, step := range sess.Steps {
        if step == section {
            planned = true
            break
        }
    }
    if !planned {
        return nil, appErrors.NewValidation("section", fmt.Sprintf("%q is not part of this survey", section))
    }

    sess.Collector.Merge(section, payload)
    return sess.Collector.Composite(), nil
}

// SubmitSession runs the terminal commit for a session and, on success,
// releases it. A failed submit keeps the session alive so the respondent can
// re-attempt.
func (s *SurveyService) SubmitSession(token string, contact *model.RespondentContact) (*SubmitResult, error) {
    sess, err := s.Sessions.Get(token)
    if err != nil {
        return nil, err
    }

    result, err := s.Submission.Submit(sess.CampaignID, sess.Collector.Composite(), contact)
    if err != nil {
        return nil, err
    }

    s.Sessions.End(token)
    return result, nil
}
