// internal/model/response.go
package model

import "time"

// SurveyResponse is the normalized output of one completed flow. Immutable
// after insert; there is no update path.
type SurveyResponse struct {
    ID         int  `db:"id" json:"id"`
    DeliveryID int  `db:"delivery_id" json:"delivery_id"`
    CampaignID int  `db:"campaign_id" json:"campaign_id"`
    NPSScore   int  `db:"nps_score" json:"nps_score"`

    // Primary section
    ScoreReason       string `db:"score_reason" json:"score_reason,omitempty"`
    WouldRecommend    *bool  `db:"would_recommend" json:"would_recommend,omitempty"`
    DataUseAuthorized *bool  `db:"data_use_authorized" json:"data_use_authorized,omitempty"`

    // Contact points section
    ContactPointScores   map[string]int `db:"contact_point_scores" json:"contact_point_scores,omitempty"`
    ContactPointFeedback string         `db:"contact_point_feedback" json:"contact_point_feedback,omitempty"`
    ExperienceFactors    []string       `db:"experience_factors" json:"experience_factors,omitempty"`
    FinalSuggestion      string         `db:"final_suggestion" json:"final_suggestion,omitempty"`

    // Problem report section
    ProblemReport *ProblemReportAnswer `db:"problem_report" json:"problem_report,omitempty"`

    // Additional forms section, keyed by question index
    AdditionalAnswers map[string]string `db:"additional_answers" json:"additional_answers,omitempty"`

    CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ProblemReportAnswer captures the fixed problem-report question set.
type ProblemReportAnswer struct {
    HadProblem   bool   `json:"had_problem"`
    Description  string `json:"description,omitempty"`
    WasResolved  *bool  `json:"was_resolved,omitempty"`
    ServiceScore *int   `json:"service_score,omitempty"`
}

// RespondentContact is the anonymized contact record, stored apart from the
// response so answers stay unlinkable from identity by default.
type RespondentContact struct {
    ID         int       `db:"id" json:"id"`
    CampaignID int       `db:"campaign_id" json:"campaign_id"`
    ResponseID *int      `db:"response_id" json:"response_id,omitempty"`
    Name       string    `db:"name" json:"name,omitempty"`
    Email      string    `db:"email" json:"email,omitempty"`
    Phone      string    `db:"phone" json:"phone,omitempty"`
    CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Empty reports whether the respondent left every contact field blank.
func (c *RespondentContact) Empty() bool {
    return c == nil || (c.Name == "" && c.Email == "" && c.Phone == "")
}
