// internal/model/config.go
package model

import "time"

// SectionID identifies one self-contained part of the questionnaire.
type SectionID string

const (
    SectionPrimaryQuestion SectionID = "primary_question"
    SectionContactPoints   SectionID = "contact_points"
    SectionProblemReport   SectionID = "problem_report"
    SectionAdditionalForms SectionID = "additional_forms"
)

// Question kinds for additional-form questions.
const (
    QuestionSingleChoice = "single-choice"
    QuestionFreeText     = "free-text"
)

// CampaignConfig is the campaign author's static definition of the
// questionnaire. One row per campaign; the flow engine only reads it.
// The JSONB section columns unmarshal into the typed section structs below.
type CampaignConfig struct {
    ID                  int                    `db:"id" json:"id"`
    CampaignID          int                    `db:"campaign_id" json:"campaign_id"`
    PrimaryQuestion     string                 `db:"primary_question" json:"primary_question"`
    RecommendPrompt     string                 `db:"recommend_prompt" json:"recommend_prompt,omitempty"`
    AuthorizationPrompt string                 `db:"authorization_prompt" json:"authorization_prompt,omitempty"`
    ContactPoints       ContactPointsSection   `db:"contact_points" json:"contact_points"`
    ProblemReport       ProblemReportSection   `db:"problem_report" json:"problem_report"`
    AdditionalForms     AdditionalFormsSection `db:"additional_forms" json:"additional_forms"`
    CreatedAt           time.Time              `db:"created_at" json:"created_at"`
    UpdatedAt           *time.Time             `db:"updated_at" json:"updated_at,omitempty"`
}

// ContactPointsSection lists the touchpoints the respondent rates 0-10.
type ContactPointsSection struct {
    Enabled bool           `json:"enabled"`
    Points  []ContactPoint `json:"points,omitempty"`
}

type ContactPoint struct {
    ID     string `json:"id"`
    Label  string `json:"label"`
    Active bool   `json:"active"`
}

// ActivePoints filters out points that are configured but switched off.
func (s ContactPointsSection) ActivePoints() []ContactPoint {
    active := []ContactPoint{}
    for _, p := range s.Points {
        if p.Active {
            active = append(active, p)
        }
    }
    return active
}

// ProblemReportSection has a fixed question set, so the flag is its only
// per-campaign content.
type ProblemReportSection struct {
    Enabled bool `json:"enabled"`
}

// AdditionalFormsSection holds campaign-specific custom questions.
type AdditionalFormsSection struct {
    Enabled bool           `json:"enabled"`
    Forms   []FormQuestion `json:"forms,omitempty"`
}

type FormQuestion struct {
    Question string   `json:"question"`
    Required bool     `json:"required"`
    Kind     string   `json:"kind"` // single-choice, free-text
    Options  []string `json:"options,omitempty"`
}
