package web

import "github.com/stageflow/stageflow/pkg/models"

// WorkflowSummary is the listing shape for registered workflows.
type WorkflowSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Version    int    `json:"version"`
	StateCount int    `json:"state_count"`
}

// TransitionBody is the payload of POST /entities/:id/transitions. The entity
// id comes from the path, not the body.
type TransitionBody struct {
	ToState string `json:"to_state" validate:"required"`
	Note    string `json:"note"`
	Actor   string `json:"actor"`
}

// BucketsRequest is the payload of POST /workflows/:id/buckets.
type BucketsRequest struct {
	Buckets []models.StageBucket `json:"buckets" validate:"required,min=1,dive"`
}
