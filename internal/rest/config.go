package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"commCoach/business/engine"
	"commCoach/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type ConfigService interface {
	GetConfig() engine.Config
	UpdateConfig(ctx context.Context, patch engine.ConfigPatch) (engine.Config, error)
}

type ConfigHandler struct {
	configService ConfigService
	timeout       time.Duration
}

func NewConfigHandler(svc ConfigService) *ConfigHandler {
	return &ConfigHandler{
		configService: svc,
		timeout:       10 * time.Second,
	}
}

// GET /api/v1/admin/config
func (h *ConfigHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.configService.GetConfig()))
}

// PATCH /api/v1/admin/config
// body: { "posture": { "min_score": 40 }, "weights": { "gesture": 0.4 } }
func (h *ConfigHandler) Update(c echo.Context) error {
	var patch engine.ConfigPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if len(patch) == 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "empty config patch"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	merged, err := h.configService.UpdateConfig(ctx, patch)
	if err != nil {
		var verr *engine.ConfigValidationError
		if errors.As(err, &verr) {
			// Accepted keys are applied; the caller learns which were not.
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{
				"config":        merged,
				"rejected_keys": verr.Rejected,
			})
		}
		logger.Error("Failed to update scoring config", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(merged))
}
