// internal/service/planner.go
package service

import (
    "github.com/avaliamed/surveypulse-backend/internal/model"
)

// PlanSteps derives the ordered list of questionnaire sections to present
// from a fully loaded campaign configuration.
//
// The primary question is always first and always included. Each optional
// section appears iff its flag is set AND its content is non-trivial: an
// enabled contact-points section with no active point stays out of the plan,
// as does an enabled additional-forms section with no forms. The problem
// report has no per-campaign content beyond the flag, so the flag decides.
//
// The output is stable for the same input and never contains duplicates.
// A missing configuration degrades to the single mandatory section.
func PlanSteps(cfg *model.CampaignConfig) []model.SectionID {
    steps := []model.SectionID{model.SectionPrimaryQuestion}
    if cfg == nil {
        return steps
    }

    if cfg.ContactPoints.Enabled && len(cfg.ContactPoints.ActivePoints()) > 0 {
        steps = append(steps, model.SectionContactPoints)
    }
    if cfg.ProblemReport.Enabled {
        steps = append(steps, model.SectionProblemReport)
    }
    if cfg.AdditionalForms.Enabled && len(cfg.AdditionalForms.Forms) > 0 {
        steps = append(steps, model.SectionAdditionalForms)
    }
    return steps
}
