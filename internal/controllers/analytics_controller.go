package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/fsdevblog/linkly/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type AnalyticsController struct {
	analytics Analyzer
}

func NewAnalyticsController(analytics Analyzer) *AnalyticsController {
	return &AnalyticsController{analytics: analytics}
}

// Summary обрабатывает GET /summary.
func (a *AnalyticsController) Summary(ctx *gin.Context) {
	identity, ok := mustIdentity(ctx)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	summary, err := a.analytics.Summary(reqCtx, identity)
	if err != nil {
		respondError(ctx, "summary", err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// ClicksOverTime обрабатывает GET /clicks-over-time?days=N. По умолчанию 7 дней.
// Значения оценочные, см. services.AnalyticsService.ClicksOverTime.
func (a *AnalyticsController) ClicksOverTime(ctx *gin.Context) {
	identity, ok := mustIdentity(ctx)
	if !ok {
		return
	}

	days := services.DefaultWindowDays
	if raw := ctx.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(ctx, "clicks over time", errors.Wrapf(services.ErrInvalidInput, "days=%q", raw))
			return
		}
		days = parsed
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	result, err := a.analytics.ClicksOverTime(reqCtx, identity, days)
	if err != nil {
		respondError(ctx, "clicks over time", err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// AdminOverview обрабатывает GET /admin/analytics.
func (a *AnalyticsController) AdminOverview(ctx *gin.Context) {
	identity, ok := mustIdentity(ctx)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	overview, err := a.analytics.AdminOverview(reqCtx, identity)
	if err != nil {
		respondError(ctx, "admin overview", err)
		return
	}
	ctx.JSON(http.StatusOK, overview)
}

// AdminClicksOverTime обрабатывает GET /admin/clicks-over-time.
func (a *AnalyticsController) AdminClicksOverTime(ctx *gin.Context) {
	identity, ok := mustIdentity(ctx)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	result, err := a.analytics.AdminClicksOverTime(reqCtx, identity)
	if err != nil {
		respondError(ctx, "admin clicks over time", err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
