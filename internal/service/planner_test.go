package service_test

import (
	"reflect"
	"testing"

	"github.com/avaliamed/surveypulse-backend/internal/model"
	"github.com/avaliamed/surveypulse-backend/internal/service"
)

func TestPlanStepsMissingConfig(t *testing.T) {
	steps := service.PlanSteps(nil)
	want := []model.SectionID{model.SectionPrimaryQuestion}
	if !reflect.DeepEqual(steps, want) {
		t.Errorf("expected %v, got %v", want, steps)
	}
}

func TestPlanStepsAllFlagsOff(t *testing.T) {
	cfg := &model.CampaignConfig{PrimaryQuestion: "How did we do?"}
	steps := service.PlanSteps(cfg)
	want := []model.SectionID{model.SectionPrimaryQuestion}
	if !reflect.DeepEqual(steps, want) {
		t.Errorf("expected only the primary question, got %v", steps)
	}
}

func TestPlanStepsEnabledButEmptyContent(t *testing.T) {
	cases := []struct {
		name string
		cfg  model.CampaignConfig
	}{
		{
			name: "contact points enabled with empty list",
			cfg: model.CampaignConfig{
				ContactPoints: model.ContactPointsSection{Enabled: true},
			},
		},
		{
			name: "contact points enabled with all points inactive",
			cfg: model.CampaignConfig{
				ContactPoints: model.ContactPointsSection{
					Enabled: true,
					Points: []model.ContactPoint{
						{ID: "er", Label: "Emergency Room", Active: false},
						{ID: "icu", Label: "ICU", Active: false},
					},
				},
			},
		},
		{
			name: "additional forms enabled with no forms",
			cfg: model.CampaignConfig{
				AdditionalForms: model.AdditionalFormsSection{Enabled: true},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			steps := service.PlanSteps(&tc.cfg)
			want := []model.SectionID{model.SectionPrimaryQuestion}
			if !reflect.DeepEqual(steps, want) {
				t.Errorf("expected %v, got %v", want, steps)
			}
		})
	}
}

func TestPlanStepsFullConfig(t *testing.T) {
	cfg := &model.CampaignConfig{
		ContactPoints: model.ContactPointsSection{
			Enabled: true,
			Points:  []model.ContactPoint{{ID: "er", Label: "Emergency Room", Active: true}},
		},
		ProblemReport: model.ProblemReportSection{Enabled: true},
		AdditionalForms: model.AdditionalFormsSection{
			Enabled: true,
			Forms:   []model.FormQuestion{{Question: "Anything else?", Kind: model.QuestionFreeText}},
		},
	}

	want := []model.SectionID{
		model.SectionPrimaryQuestion,
		model.SectionContactPoints,
		model.SectionProblemReport,
		model.SectionAdditionalForms,
	}

	steps := service.PlanSteps(cfg)
	if !reflect.DeepEqual(steps, want) {
		t.Errorf("expected %v, got %v", want, steps)
	}

	// Stable across repeated calls with the same input
	again := service.PlanSteps(cfg)
	if !reflect.DeepEqual(steps, again) {
		t.Errorf("plan not deterministic: %v vs %v", steps, again)
	}

	// No duplicates
	seen := map[model.SectionID]bool{}
	for _, s := range steps {
		if seen[s] {
			t.Errorf("duplicate section %q in plan %v", s, steps)
		}
		seen[s] = true
	}
}
