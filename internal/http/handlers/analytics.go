package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/geocoder89/hallulies/internal/domain/analytics"
	"github.com/gin-gonic/gin"
)

type DashboardReader interface {
	Dashboard(ctx context.Context) (analytics.Dashboard, error)
}

type AnalyticsHandler struct {
	repo DashboardReader
	log  *slog.Logger
}

func NewAnalyticsHandler(repo DashboardReader, log *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{repo: repo, log: log}
}

func (h *AnalyticsHandler) Dashboard(ctx *gin.Context) {
	cctx, cancel := requestContext(ctx)
	defer cancel()

	d, err := h.repo.Dashboard(cctx)
	if err != nil {
		RespondInternal(ctx, h.log, "analytics.dashboard", err)
		return
	}

	ctx.JSON(http.StatusOK, d)
}
