// Package hrm ships the built-in pipeline definitions the HRM screens run on:
// the lead funnel, the employee exit process, new-hire onboarding and the
// performance review cycle. Each constructor returns a fresh definition value
// so callers cannot alias the package's state.
package hrm

import (
	"github.com/stageflow/stageflow/pkg/models"
	"github.com/stageflow/stageflow/pkg/registry"
)

// Built-in workflow ids.
const (
	LeadPipelineID      = "lead-pipeline"
	ExitProcessID       = "exit-process"
	OnboardingID        = "onboarding"
	PerformanceReviewID = "performance-review"
)

// LeadPipeline is the nine-state admission lead funnel. lost_lead is a failed
// outcome but not terminal: lost leads can be revived through follow_up.
func LeadPipeline() models.WorkflowDefinition {
	return models.WorkflowDefinition{
		ID:      LeadPipelineID,
		Name:    "Admission lead pipeline",
		Version: 1,
		States: []models.StateNode{
			{
				Key:        "new_lead",
				Label:      "New Lead",
				Stage:      models.StageActive,
				Order:      1,
				NextStates: []string{"contacted", "lost_lead"},
			},
			{
				Key:          "contacted",
				Label:        "Contacted",
				Stage:        models.StageActive,
				Order:        2,
				NextStates:   []string{"follow_up", "counselling_done", "not_interested", "lost_lead"},
				RequiresNote: true,
			},
			{
				Key:        "follow_up",
				Label:      "Follow Up",
				Stage:      models.StageActive,
				Order:      3,
				NextStates: []string{"contacted", "counselling_done", "not_interested", "lost_lead"},
			},
			{
				Key:        "counselling_done",
				Label:      "Counselling Done",
				Stage:      models.StageActive,
				Order:      4,
				NextStates: []string{"documents_submitted", "not_interested", "lost_lead"},
			},
			{
				Key:        "documents_submitted",
				Label:      "Documents Submitted",
				Stage:      models.StagePending,
				Order:      5,
				NextStates: []string{"admission_confirmed", "lost_lead"},
			},
			{
				Key:        "admission_confirmed",
				Label:      "Admission Confirmed",
				Stage:      models.StagePending,
				Order:      6,
				NextStates: []string{"admission_completed"},
				Automated:  true,
			},
			{
				Key:          "not_interested",
				Label:        "Not Interested",
				Stage:        models.StageFailed,
				Order:        7,
				NextStates:   []string{},
				RequiresNote: true,
			},
			{
				Key:        "admission_completed",
				Label:      "Admission Completed",
				Stage:      models.StageSuccess,
				Order:      8,
				NextStates: []string{},
			},
			{
				Key:        "lost_lead",
				Label:      "Lost Lead",
				Stage:      models.StageFailed,
				Order:      9,
				NextStates: []string{"follow_up"},
			},
		},
	}
}

// ExitProcess is the employee exit and clearance pipeline. The clearance step
// requires a note recording pending recoveries, if any.
func ExitProcess() models.WorkflowDefinition {
	return models.WorkflowDefinition{
		ID:      ExitProcessID,
		Name:    "Employee exit process",
		Version: 1,
		States: []models.StateNode{
			{
				Key:        "resignation_submitted",
				Label:      "Resignation Submitted",
				Stage:      models.StageActive,
				Order:      1,
				NextStates: []string{"notice_period", "withdrawn"},
			},
			{
				Key:        "notice_period",
				Label:      "Notice Period",
				Stage:      models.StageActive,
				Order:      2,
				NextStates: []string{"handover", "withdrawn"},
			},
			{
				Key:        "handover",
				Label:      "Handover",
				Stage:      models.StageActive,
				Order:      3,
				NextStates: []string{"clearance"},
			},
			{
				Key:          "clearance",
				Label:        "Clearance",
				Stage:        models.StagePending,
				Order:        4,
				NextStates:   []string{"final_settlement"},
				RequiresNote: true,
			},
			{
				Key:        "final_settlement",
				Label:      "Final Settlement",
				Stage:      models.StagePending,
				Order:      5,
				NextStates: []string{"exited"},
				Automated:  true,
			},
			{
				Key:        "exited",
				Label:      "Exited",
				Stage:      models.StageSuccess,
				Order:      6,
				NextStates: []string{},
			},
			{
				Key:          "withdrawn",
				Label:        "Withdrawn",
				Stage:        models.StageFailed,
				Order:        7,
				NextStates:   []string{},
				RequiresNote: true,
			},
		},
	}
}

// Onboarding is the new-hire onboarding pipeline.
func Onboarding() models.WorkflowDefinition {
	return models.WorkflowDefinition{
		ID:      OnboardingID,
		Name:    "New hire onboarding",
		Version: 1,
		States: []models.StateNode{
			{
				Key:        "offer_accepted",
				Label:      "Offer Accepted",
				Stage:      models.StageActive,
				Order:      1,
				NextStates: []string{"documents_pending", "dropped_out"},
			},
			{
				Key:        "documents_pending",
				Label:      "Documents Pending",
				Stage:      models.StagePending,
				Order:      2,
				NextStates: []string{"documents_verified", "dropped_out"},
			},
			{
				Key:          "documents_verified",
				Label:        "Documents Verified",
				Stage:        models.StageActive,
				Order:        3,
				NextStates:   []string{"induction"},
				RequiresNote: true,
			},
			{
				Key:        "induction",
				Label:      "Induction",
				Stage:      models.StageActive,
				Order:      4,
				NextStates: []string{"probation"},
			},
			{
				Key:        "probation",
				Label:      "Probation",
				Stage:      models.StageActive,
				Order:      5,
				NextStates: []string{"confirmed", "dropped_out"},
			},
			{
				Key:        "confirmed",
				Label:      "Confirmed",
				Stage:      models.StageSuccess,
				Order:      6,
				NextStates: []string{},
			},
			{
				Key:          "dropped_out",
				Label:        "Dropped Out",
				Stage:        models.StageFailed,
				Order:        7,
				NextStates:   []string{},
				RequiresNote: true,
			},
		},
	}
}

// PerformanceReview is the review cycle state machine. A disputed review goes
// back through calibration rather than ending the cycle.
func PerformanceReview() models.WorkflowDefinition {
	return models.WorkflowDefinition{
		ID:      PerformanceReviewID,
		Name:    "Performance review cycle",
		Version: 1,
		States: []models.StateNode{
			{
				Key:        "not_started",
				Label:      "Not Started",
				Stage:      models.StagePending,
				Order:      1,
				NextStates: []string{"self_review"},
			},
			{
				Key:        "self_review",
				Label:      "Self Review",
				Stage:      models.StageActive,
				Order:      2,
				NextStates: []string{"manager_review"},
			},
			{
				Key:          "manager_review",
				Label:        "Manager Review",
				Stage:        models.StageActive,
				Order:        3,
				NextStates:   []string{"calibration"},
				RequiresNote: true,
			},
			{
				Key:        "calibration",
				Label:      "Calibration",
				Stage:      models.StageActive,
				Order:      4,
				NextStates: []string{"closed", "disputed"},
				Automated:  true,
			},
			{
				Key:        "closed",
				Label:      "Closed",
				Stage:      models.StageSuccess,
				Order:      5,
				NextStates: []string{},
			},
			{
				Key:          "disputed",
				Label:        "Disputed",
				Stage:        models.StageFailed,
				Order:        6,
				NextStates:   []string{"calibration"},
				RequiresNote: true,
			},
		},
	}
}

// All returns every built-in definition.
func All() []models.WorkflowDefinition {
	return []models.WorkflowDefinition{
		LeadPipeline(),
		ExitProcess(),
		Onboarding(),
		PerformanceReview(),
	}
}

// RegisterAll registers every built-in pipeline on the registry.
func RegisterAll(reg *registry.Registry) error {
	for _, def := range All() {
		if err := reg.Register(def); err != nil {
			return err
		}
	}

	return nil
}
