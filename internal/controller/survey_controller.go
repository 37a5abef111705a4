// internal/controller/survey_controller.go
package controller

import (
    "encoding/json"
    "errors"
    "net/http"
    "strconv"

    "github.com/go-chi/chi/v5"

    appErrors "github.com/avaliamed/surveypulse-backend/internal/errors"
    "github.com/avaliamed/surveypulse-backend/internal/model"
    "github.com/avaliamed/surveypulse-backend/internal/service"
)

// SurveyController exposes the public respondent flow over HTTP.
type SurveyController struct {
    SurveyService *service.SurveyService
}

// GetSurvey returns the campaign definition and the planned step list.
func (c *SurveyController) GetSurvey(w http.ResponseWriter, r *http.Request) {
    campaignID, err := strconv.Atoi(chi.URLParam(r, "campaignID"))
    if err != nil {
        http.Error(w, "invalid campaign id", http.StatusBadRequest)
        return
    }

    view, err := c.SurveyService.LoadSurvey(campaignID)
    if err != nil {
        writeFlowError(w, err)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(view)
}

// StartSession opens a respondent session and hands back its token plus the
// planned steps.
func (c *SurveyController) StartSession(w http.ResponseWriter, r *http.Request) {
    campaignID, err := strconv.Atoi(chi.URLParam(r, "campaignID"))
    if err != nil {
        http.Error(w, "invalid campaign id", http.StatusBadRequest)
        return
    }

    sess, err := c.SurveyService.StartSession(campaignID)
    if err != nil {
        writeFlowError(w, err)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "session_id": sess.Token,
        "steps":      sess.Steps,
    })
}

// RecordAnswers merges one section's partial payload into the session.
func (c *SurveyController) RecordAnswers(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Section model.SectionID `json:"section"`
        Payload map[string]any  `json:"payload"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    composite, err := c.SurveyService.RecordAnswers(chi.URLParam(r, "sessionID"), body.Section, body.Payload)
    if err != nil {
        writeFlowError(w, err)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "composite": composite,
    })
}

// SubmitSession runs the terminal commit for the session.
func (c *SurveyController) SubmitSession(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Contact *model.RespondentContact `json:"contact"`
    }
    if r.ContentLength > 0 {
        if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
            http.Error(w, "invalid body", http.StatusBadRequest)
            return
        }
    }

    result, err := c.SurveyService.SubmitSession(chi.URLParam(r, "sessionID"), body.Contact)
    if err != nil {
        writeFlowError(w, err)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(result)
}

// writeFlowError maps the flow error taxonomy onto HTTP statuses.
func writeFlowError(w http.ResponseWriter, err error) {
    var notFound *appErrors.ErrCampaignNotFound
    var inactive *appErrors.ErrCampaignInactive
    var session *appErrors.ErrSessionNotFound
    var validation *appErrors.ErrValidation
    var storage *appErrors.ErrStorage

    switch {
    case errors.As(err, &notFound), errors.As(err, &session):
        http.Error(w, err.Error(), http.StatusNotFound)
    case errors.As(err, &inactive):
        http.Error(w, err.Error(), http.StatusGone)
    case errors.As(err, &validation):
        http.Error(w, err.Error(), http.StatusUnprocessableEntity)
    case errors.As(err, &storage):
        http.Error(w, err.Error(), http.StatusBadGateway)
    default:
        http.Error(w, err.Error(), http.StatusInternalServerError)
    }
}
