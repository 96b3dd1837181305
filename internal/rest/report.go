package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"commCoach/business/report"
	"commCoach/domain"
	"commCoach/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type ReportService interface {
	List(ctx context.Context, limit int) ([]domain.SessionReportRecord, error)
	GetBySessionID(ctx context.Context, sessionID string) (domain.SessionReportRecord, error)
	GetLatest(ctx context.Context) (domain.SessionReportRecord, error)
	Delete(ctx context.Context, sessionID string) error
	Statistics(ctx context.Context) (domain.ReportStatistics, error)
	ExportHistory(ctx context.Context) ([]byte, error)
}

type ReportHandler struct {
	reportService ReportService
	timeout       time.Duration
}

func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: svc,
		timeout:       10 * time.Second,
	}
}

// GET /api/v1/reports?limit=50
func (h *ReportHandler) List(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	records, err := h.reportService.List(ctx, limit)
	if err != nil {
		logger.Error("Failed to list reports", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(records))
}

// GET /api/v1/reports/latest
func (h *ReportHandler) Latest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rec, err := h.reportService.GetLatest(ctx)
	if err != nil {
		if errors.Is(err, report.ErrReportNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rec))
}

// GET /api/v1/reports/statistics
func (h *ReportHandler) Statistics(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stats, err := h.reportService.Statistics(ctx)
	if err != nil {
		logger.Error("Failed to compute report statistics", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(stats))
}

// GET /api/v1/reports/export
func (h *ReportHandler) Export(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	data, err := h.reportService.ExportHistory(ctx)
	if err != nil {
		logger.Error("Failed to export report history", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	filename := fmt.Sprintf("session-history-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// GET /api/v1/reports/:session_id
func (h *ReportHandler) GetBySessionID(c echo.Context) error {
	sessionID := c.Param("session_id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rec, err := h.reportService.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, report.ErrReportNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rec))
}

// DELETE /api/v1/reports/:session_id
func (h *ReportHandler) Delete(c echo.Context) error {
	sessionID := c.Param("session_id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.reportService.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, report.ErrReportNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to delete report", "session_id", sessionID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("report deleted"))
}
