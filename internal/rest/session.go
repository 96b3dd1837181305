package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"commCoach/business/engine"
	"commCoach/domain"
	"commCoach/pkg/logger"
	"commCoach/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

type SessionService interface {
	StartSession(ctx context.Context) (string, error)
	ProcessFrame(ctx context.Context, id string, frame domain.LandmarkFrame) (domain.FrameMetrics, error)
	SessionStatus(ctx context.Context, id string) (engine.SessionStatus, error)
	ResetSession(ctx context.Context, id string) error
	StopSession(ctx context.Context, id string) (domain.SessionReport, error)
}

type SessionHandler struct {
	sessionService SessionService
	timeout        time.Duration
}

func NewSessionHandler(svc SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: svc,
		timeout:        10 * time.Second,
	}
}

// POST /api/v1/sessions
func (h *SessionHandler) Start(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	id, err := h.sessionService.StartSession(ctx)
	if err != nil {
		logger.Error("Failed to start session", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.SessionsStarted.Inc()

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(map[string]any{
		"session_id": id,
	}))
}

// POST /api/v1/sessions/:id/frames
// body: LandmarkFrame JSON
func (h *SessionHandler) ProcessFrame(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.FrameIngestLatency.Observe(time.Since(start).Seconds())
	}()

	id := c.Param("id")

	var frame domain.LandmarkFrame
	if err := c.Bind(&frame); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.sessionService.ProcessFrame(ctx, id, frame)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrSessionNotFound):
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		case errors.Is(err, engine.ErrSessionStopped):
			return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
		default:
			logger.Error("Failed to process frame", "session_id", id, "error", err)
			return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
		}
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// GET /api/v1/sessions/:id/metrics
func (h *SessionHandler) Metrics(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	status, err := h.sessionService.SessionStatus(ctx, id)
	if err != nil {
		if errors.Is(err, engine.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(status))
}

// POST /api/v1/sessions/:id/reset
func (h *SessionHandler) Reset(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.sessionService.ResetSession(ctx, id); err != nil {
		if errors.Is(err, engine.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("session reset"))
}

// DELETE /api/v1/sessions/:id
// Stops the session and returns its final report.
func (h *SessionHandler) Stop(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	report, err := h.sessionService.StopSession(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrSessionNotFound):
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		case errors.Is(err, engine.ErrEmptySession):
			return c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: err.Error()})
		default:
			logger.Error("Failed to stop session", "session_id", id, "error", err)
			return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
		}
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(report))
}
