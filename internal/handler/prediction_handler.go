package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/payment_probability/internal/domain"
	"github.com/locvowork/payment_probability/internal/history"
	"github.com/locvowork/payment_probability/internal/logger"
	"github.com/locvowork/payment_probability/internal/service"
	"github.com/locvowork/payment_probability/internal/service/serviceutils"
)

const defaultRunsLimit = 20

type PredictionHandler struct {
	svc            service.PredictionService
	history        history.Store
	requireTrigger bool
}

func NewPredictionHandler(svc service.PredictionService, hist history.Store, requireTrigger bool) *PredictionHandler {
	if hist == nil {
		hist = history.Nop{}
	}
	return &PredictionHandler{svc: svc, history: hist, requireTrigger: requireTrigger}
}

// TriggerHandler handles GET /. The batch runs only for ?trigger=true unless the trigger is disabled.
func (h *PredictionHandler) TriggerHandler(c echo.Context) error {
	if h.requireTrigger && c.QueryParam("trigger") != "true" {
		params := map[string]string{}
		for k, v := range c.QueryParams() {
			if len(v) > 0 {
				params[k] = v[0]
			}
		}
		return serviceutils.ResponseSuccess(c, http.StatusOK, "Waiting for trigger=true", params)
	}
	return h.run(c)
}

// RunHandler handles POST /run and always starts a batch.
func (h *PredictionHandler) RunHandler(c echo.Context) error {
	return h.run(c)
}

func (h *PredictionHandler) run(c echo.Context) error {
	ctx := c.Request().Context()
	logger.InfoLog(ctx, "Batch processing triggered")

	summary, err := h.svc.Run(ctx)
	if err != nil {
		var headerErr *domain.HeaderError
		if errors.As(err, &headerErr) {
			return serviceutils.ResponseError(c, http.StatusUnprocessableEntity, "Sheet header validation failed", err)
		}
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Batch processing failed", err)
	}

	msg := "Spreadsheet updated"
	if !summary.Written {
		msg = "No data found, nothing written"
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, msg, summary)
}

// ListRunsHandler handles GET /runs?limit=N
func (h *PredictionHandler) ListRunsHandler(c echo.Context) error {
	limit := defaultRunsLimit
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return serviceutils.ResponseError(c, http.StatusBadRequest, "limit must be a positive integer", err)
		}
		limit = n
	}

	runs, err := h.history.Recent(c.Request().Context(), limit)
	if err != nil {
		logger.ErrorLog(c.Request().Context(), "failed to list runs: %v", err)
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to list runs", err)
	}
	if runs == nil {
		runs = []domain.RunRecord{}
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", runs)
}

// GetRunHandler handles GET /runs/:id
func (h *PredictionHandler) GetRunHandler(c echo.Context) error {
	ctx := c.Request().Context()
	run, err := h.history.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, history.ErrRunNotFound) {
			return serviceutils.ResponseError(c, http.StatusNotFound, "Run not found", err)
		}
		logger.ErrorLog(ctx, "failed to get run %s: %v", c.Param("id"), err)
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to get run", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", run)
}

// HealthHandler handles GET /healthz
func (h *PredictionHandler) HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
