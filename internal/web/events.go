package web

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/albrtbc/mv-thread-digest/internal/thread"
)

// WebSocket event types
const (
	EventSummaryStarted   = "summary.started"
	EventSummaryProgress  = "summary.progress"
	EventSummaryCompleted = "summary.completed"
	EventSummaryFailed    = "summary.failed"
)

// WSEvent represents a structured WebSocket message.
type WSEvent struct {
	Type    string      `json:"type"`
	RunID   string      `json:"run_id"`
	Payload interface{} `json:"payload,omitempty"`
}

// StartedEvent announces a new summarization run.
func StartedEvent(runID uuid.UUID, threadSlug string, from, to int) []byte {
	return marshalEvent(WSEvent{
		Type:  EventSummaryStarted,
		RunID: runID.String(),
		Payload: map[string]interface{}{
			"thread": threadSlug,
			"from":   from,
			"to":     to,
		},
	})
}

// ProgressEvent wraps a pipeline progress update.
func ProgressEvent(runID uuid.UUID, p thread.Progress) []byte {
	return marshalEvent(WSEvent{
		Type:    EventSummaryProgress,
		RunID:   runID.String(),
		Payload: p,
	})
}

// CompletedEvent carries the final summary.
func CompletedEvent(runID uuid.UUID, summary *thread.Summary) []byte {
	return marshalEvent(WSEvent{
		Type:    EventSummaryCompleted,
		RunID:   runID.String(),
		Payload: summary,
	})
}

// FailedEvent announces a failed run.
func FailedEvent(runID uuid.UUID, reason string) []byte {
	return marshalEvent(WSEvent{
		Type:    EventSummaryFailed,
		RunID:   runID.String(),
		Payload: map[string]string{"reason": reason},
	})
}

func marshalEvent(evt WSEvent) []byte {
	b, _ := json.Marshal(evt)
	return b
}
