package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	apperrors "github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/errors"
)

// PipelineHandler exposes pipeline triggers and run status over HTTP.
type PipelineHandler struct {
	trigger PipelineTrigger
	logger  *slog.Logger
}

// NewPipelineHandler creates a new pipeline handler.
func NewPipelineHandler(trigger PipelineTrigger, logger *slog.Logger) *PipelineHandler {
	return &PipelineHandler{
		trigger: trigger,
		logger:  logger,
	}
}

// TriggerRequest is the optional body of a trigger call.
type TriggerRequest struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	BatchSize   int    `json:"batch_size"`
	MaxAttempts int    `json:"max_attempts"`
	Sync        bool   `json:"sync"`
}

// TriggerResponse is returned when a run is accepted for background execution.
type TriggerResponse struct {
	RunID string               `json:"run_id"`
	Stage domain.PipelineStage `json:"stage"`
	State domain.RunState      `json:"state"`
}

// HandleTrigger handles POST /api/v1/pipeline/:stage.
func (h *PipelineHandler) HandleTrigger(c echo.Context) error {
	ctx := c.Request().Context()

	stage, err := domain.ParseStage(c.Param("stage"))
	if err != nil {
		return apperrors.FromDomainError(err, "handler", "PipelineHandler", "HandleTrigger")
	}

	var req TriggerRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			h.logger.WarnContext(ctx, "failed to bind trigger request", "error", err)
			return apperrors.NewValidationContextError("invalid request body", "handler", "PipelineHandler", "HandleTrigger", nil)
		}
	}

	params, err := req.RunParams()
	if err != nil {
		return apperrors.FromDomainError(err, "handler", "PipelineHandler", "HandleTrigger")
	}

	if !req.Sync {
		runID := h.trigger.Start(ctx, stage, params)
		return c.JSON(http.StatusAccepted, TriggerResponse{
			RunID: runID,
			Stage: stage,
			State: domain.RunNotStarted,
		})
	}

	result := h.trigger.Run(ctx, stage, params)
	if err := result.Err(); err != nil {
		status := apperrors.FromDomainError(err, "handler", "PipelineHandler", "HandleTrigger").HTTPStatusCode()
		h.logger.ErrorContext(ctx, "synchronous pipeline run failed", "run_id", result.RunID, "stage", stage, "error", err)
		return c.JSON(status, result)
	}
	return c.JSON(http.StatusOK, result)
}

// HandleStatus handles GET /api/v1/pipeline/runs/:run_id.
func (h *PipelineHandler) HandleStatus(c echo.Context) error {
	runID := c.Param("run_id")
	if _, err := uuid.Parse(runID); err != nil {
		return apperrors.NewValidationContextError("run_id must be a UUID", "handler", "PipelineHandler", "HandleStatus",
			map[string]any{"run_id": runID})
	}

	status, err := h.trigger.Status(c.Request().Context(), runID)
	if err != nil {
		return apperrors.FromDomainError(err, "handler", "PipelineHandler", "HandleStatus")
	}
	return c.JSON(http.StatusOK, status)
}

// RunParams validates the request into pipeline knobs.
func (r TriggerRequest) RunParams() (domain.RunParams, error) {
	return domain.ParseRunParams(r.StartDate, r.EndDate, r.BatchSize, r.MaxAttempts)
}
