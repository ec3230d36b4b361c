// Package events defines the event types published on entity lifecycle and
// transition activity.
package events

import (
	"time"

	"github.com/stageflow/stageflow/pkg/models"
)

type EventType string

// Topic is the single stream all engine events are published on.
const Topic = "stageflow.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	EntityCreatedEvent      EventType = "entity.created"
	EntityTransitionedEvent EventType = "entity.transitioned"
	TransitionRejectedEvent EventType = "entity.transition.rejected"
)

type BaseEvent struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	Timestamp  time.Time      `json:"timestamp"`
	WorkflowID string         `json:"workflow_id"`
	EntityID   string         `json:"entity_id"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

type EntityCreated struct {
	BaseEvent

	InitialState string `json:"initial_state"`
}

func (e EntityCreated) GetType() EventType {
	return EntityCreatedEvent
}

type EntityTransitioned struct {
	BaseEvent

	Record models.TransitionRecord `json:"record"`
	// Terminal reports whether the entity landed on a state with no outgoing
	// edges.
	Terminal bool `json:"terminal"`
}

func (e EntityTransitioned) GetType() EventType {
	return EntityTransitionedEvent
}

type TransitionRejected struct {
	BaseEvent

	FromState string `json:"from_state"`
	ToState   string `json:"to_state"`
	Reason    string `json:"reason"`
}

func (e TransitionRejected) GetType() EventType {
	return TransitionRejectedEvent
}
