package consumer

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/logger"
)

// EventTypePipelineTriggerRequested asks for one pipeline stage to run.
const EventTypePipelineTriggerRequested = "PipelineTriggerRequested"

// PipelineTriggerPayload is the payload of a PipelineTriggerRequested event.
type PipelineTriggerPayload struct {
	Stage       string `json:"stage"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	BatchSize   int    `json:"batch_size,omitempty"`
	MaxAttempts int    `json:"max_attempts,omitempty"`
}

// RunStarter launches a pipeline run in the background.
type RunStarter interface {
	Start(ctx context.Context, stage domain.PipelineStage, params domain.RunParams) string
}

// TriggerEventHandler starts pipeline runs for trigger events.
type TriggerEventHandler struct {
	runs   RunStarter
	logger *slog.Logger
}

// NewTriggerEventHandler creates a new TriggerEventHandler.
func NewTriggerEventHandler(runs RunStarter, logger *slog.Logger) *TriggerEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TriggerEventHandler{
		runs:   runs,
		logger: logger,
	}
}

// HandleEvent processes a single event based on its type. Triggers that can
// never succeed are logged and dropped so they are acknowledged.
func (h *TriggerEventHandler) HandleEvent(ctx context.Context, event Event) error {
	h.logger.InfoContext(ctx, "handling event",
		"event_id", event.EventID,
		"event_type", event.EventType,
		"message_id", event.MessageID,
	)

	switch event.EventType {
	case EventTypePipelineTriggerRequested:
		return h.handleTrigger(ctx, event)
	default:
		h.logger.DebugContext(ctx, "ignoring unknown event type", "event_type", event.EventType)
		return nil
	}
}

func (h *TriggerEventHandler) handleTrigger(ctx context.Context, event Event) error {
	var payload PipelineTriggerPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		h.logger.ErrorContext(ctx, "dropping trigger with malformed payload",
			"event_id", event.EventID,
			"error", err,
		)
		return nil
	}

	stage, err := domain.ParseStage(payload.Stage)
	if err != nil {
		h.logger.ErrorContext(ctx, "dropping trigger for unknown stage", "event_id", event.EventID, "error", err)
		return nil
	}
	params, err := domain.ParseRunParams(payload.StartDate, payload.EndDate, payload.BatchSize, payload.MaxAttempts)
	if err != nil {
		h.logger.ErrorContext(ctx, "dropping trigger with invalid parameters", "event_id", event.EventID, "error", err)
		return nil
	}

	runID := h.runs.Start(ctx, stage, params)
	h.logger.InfoContext(logger.WithRunID(ctx, runID), "pipeline run triggered from stream",
		"event_id", event.EventID,
		"source", event.Source,
		"stage", stage,
	)
	return nil
}
