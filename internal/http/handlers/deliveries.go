package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/geocoder89/hallulies/internal/domain/delivery"
	"github.com/gin-gonic/gin"
)

const (
	defaultDeliveriesLimit = 50
	maxDeliveriesLimit     = 200
)

type DeliveryReader interface {
	Recent(ctx context.Context, kind string, limit int) ([]delivery.Delivery, error)
}

// DeliveriesHandler exposes the mail audit trail to admins.
type DeliveriesHandler struct {
	repo DeliveryReader
	log  *slog.Logger
}

func NewDeliveriesHandler(repo DeliveryReader, log *slog.Logger) *DeliveriesHandler {
	return &DeliveriesHandler{repo: repo, log: log}
}

func (h *DeliveriesHandler) Recent(ctx *gin.Context) {
	limit := defaultDeliveriesLimit

	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxDeliveriesLimit {
			RespondValidation(ctx, "Invalid field values", gin.H{"fields": []FieldError{{
				Field:   "limit",
				Rule:    "range",
				Param:   "1-200",
				Message: "must be between 1 and 200",
			}}})
			return
		}
		limit = n
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	items, err := h.repo.Recent(cctx, ctx.Query("kind"), limit)
	if err != nil {
		RespondInternal(ctx, h.log, "deliveries.recent", err)
		return
	}

	ctx.JSON(http.StatusOK, items)
}
