// internal/service/submission_service.go
package service

import (
    "fmt"
    "log"
    "strconv"

    "github.com/google/uuid"

    appErrors "github.com/avaliamed/surveypulse-backend/internal/errors"
    "github.com/avaliamed/surveypulse-backend/internal/model"
    "github.com/avaliamed/surveypulse-backend/internal/queue"
    "github.com/avaliamed/surveypulse-backend/internal/repository"
)

// SubmissionService performs the terminal commit of one respondent session:
// delivery first, then the response row referencing it. The two writes are
// sequential, not transactional; a response-write failure leaves an orphaned
// delivery behind and no compensation runs here.
type SubmissionService struct {
    CampaignRepo repository.CampaignRepositoryInterface
    DeliveryRepo repository.DeliveryRepositoryInterface
    ResponseRepo repository.ResponseRepositoryInterface
    ContactRepo  repository.ContactRepositoryInterface
    Queue        queue.Queue
}

type SubmitResult struct {
    ResponseID int    `json:"response_id"`
    DeliveryID int    `json:"delivery_id"`
    Tier       Tier   `json:"tier"`
    Token      string `json:"response_token"`
}

// Submit validates the composite, creates the delivery, writes the response,
// attaches contact info when provided, and announces the new response on the
// queue. Validation happens before any storage I/O. There is no idempotency
// key: submitting the same composite twice makes two delivery/response pairs.
func (s *SubmissionService) Submit(campaignID int, composite map[string]any, contact *model.RespondentContact) (*SubmitResult, error) {
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

    resp, err := buildResponse(campaignID, composite, cfg)
    if err != nil {
        return nil, err
    }
    tier, err := Classify(resp.NPSScore)
    if err != nil {
        return nil, err
    }

    token := uuid.NewString()
    deliveryID, err := s.DeliveryRepo.CreateResponded(campaignID, token)
    if err != nil {
        return nil, appErrors.NewStorage("delivery create", err)
    }

    resp.DeliveryID = deliveryID
    if err := s.ResponseRepo.Create(resp); err != nil {
        // The delivery row stays behind unlinked; no compensation runs.
        return nil, appErrors.NewStorage("response write", err)
    }

    if !contact.Empty() {
        contact.CampaignID = campaignID
        contact.ResponseID = &resp.ID
        if err := s.ContactRepo.Create(contact); err != nil {
            log.Println("⚠️ failed to store respondent contact for response", resp.ID, ":", err)
        }
    }

    if s.Queue != nil {
        if err := s.Queue.Publish("survey_responses", resp.ID); err != nil {
            log.Println("⚠️ failed to enqueue response notification", resp.ID, ":", err)
        }
    }

    return &SubmitResult{
        ResponseID: resp.ID,
        DeliveryID: deliveryID,
        Tier:       tier,
        Token:      token,
    }, nil
}

// buildResponse normalizes the loosely typed composite into the response row.
// Section payloads arrive under namespaced keys (see Collector); JSON numbers
// come in as float64, hence the coercion helpers.
func buildResponse(campaignID int, composite map[string]any, cfg *model.CampaignConfig) (*model.SurveyResponse, error) {
    raw, present := composite["nps_score"]
    if !present {
        return nil, appErrors.NewValidation("nps_score", "missing")
    }
    score, ok := asInt(raw)
    if !ok {
        return nil, appErrors.NewValidation("nps_score", "must be an integer")
    }
    if score < 0 || score > 10 {
        return nil, appErrors.NewValidation("nps_score", "must be between 0 and 10")
    }

    resp := &model.SurveyResponse{
        CampaignID:  campaignID,
        NPSScore:    score,
        ScoreReason: clipText(asString(composite["score_reason"])),
    }
    if v, ok := asBool(composite["would_recommend"]); ok {
        resp.WouldRecommend = &v
    }
    if v, ok := asBool(composite["data_use_authorized"]); ok {
        resp.DataUseAuthorized = &v
    }

    cp := model.SectionContactPoints
    if scores, ok := asIntMap(composite[CompositeKey(cp, "scores")]); ok {
        for id, pointScore := range scores {
            if pointScore < 0 || pointScore > 10 {
                return nil, appErrors.NewValidation("contact_points.scores", fmt.Sprintf("score for %q out of range", id))
            }
        }
        resp.ContactPointScores = scores
    }
    resp.ContactPointFeedback = clipText(asString(composite[CompositeKey(cp, "positive_feedback")]))
    resp.ExperienceFactors = asStringSlice(composite[CompositeKey(cp, "experience_factors")])
    resp.FinalSuggestion = clipText(asString(composite[CompositeKey(cp, "final_suggestion")]))

    pr := model.SectionProblemReport
    if had, ok := asBool(composite[CompositeKey(pr, "had_problem")]); ok {
        answer := &model.ProblemReportAnswer{
            HadProblem:  had,
            Description: clipText(asString(composite[CompositeKey(pr, "description")])),
        }
        if v, ok := asBool(composite[CompositeKey(pr, "was_resolved")]); ok {
            answer.WasResolved = &v
        }
        if v, ok := asInt(composite[CompositeKey(pr, "service_score")]); ok {
            if v < 0 || v > 10 {
                return nil, appErrors.NewValidation("problem_report.service_score", "must be between 0 and 10")
            }
            answer.ServiceScore = &v
        }
        resp.ProblemReport = answer
    }

    if answers, ok := asStringMap(composite[CompositeKey(model.SectionAdditionalForms, "answers")]); ok {
        resp.AdditionalAnswers = answers
    }

    if cfg != nil && cfg.AdditionalForms.Enabled {
        for i, form := range cfg.AdditionalForms.Forms {
            if !form.Required {
                continue
            }
            if resp.AdditionalAnswers[strconv.Itoa(i)] == "" {
                return nil, appErrors.NewValidation(
                    "additional_forms",
                    fmt.Sprintf("question %d (%s) is required", i, form.Question),
                )
            }
        }
    }

    return resp, nil
}

// MaxFreeTextLen caps every free-text field; longer input is cut, not rejected.
const MaxFreeTextLen = 280

func clipText(s string) string {
    r := []rune(s)
    if len(r) <= MaxFreeTextLen {
        return s
    }
    return string(r[:MaxFreeTextLen])
}

// ---------- composite value coercion ----------

func asInt(v any) (int, bool) {
    switch n := v.(type) {
    case int:
        return n, true
    case int64:
        return int(n), true
    case float64:
        if n != float64(int(n)) {
            return 0, false
        }
        return int(n), true
    }
    return 0, false
}

func asBool(v any) (bool, bool) {
    b, ok := v.(bool)
    return b, ok
}

func asString(v any) string {
    s, _ := v.(string)
    return s
}

func asStringSlice(v any) []string {
    switch items := v.(type) {
    case []string:
        return items
    case []any:
        out := make([]string, 0, len(items))
        for _, item := range items {
            if s, ok := item.(string); ok {
                out = append(out, s)
            }
        }
        if len(out) == 0 {
            return nil
        }
        return out
    }
    return nil
}

func asIntMap(v any) (map[string]int, bool) {
    switch m := v.(type) {
    case map[string]int:
        return m, true
    case map[string]any:
        out := make(map[string]int, len(m))
        for k, raw := range m {
            n, ok := asInt(raw)
            if !ok {
                return nil, false
            }
            out[k] = n
        }
        return out, true
    }
    return nil, false
}

func asStringMap(v any) (map[string]string, bool) {
    switch m := v.(type) {
    case map[string]string:
        return m, true
    case map[string]any:
        out := make(map[string]string, len(m))
        for k, raw := range m {
            s, ok := raw.(string)
            if !ok {
                return nil, false
            }
            out[k] = s
        }
        return out, true
    }
    return nil, false
}
