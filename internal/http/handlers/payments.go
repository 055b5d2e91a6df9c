package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/geocoder89/hallulies/internal/domain/payment"
	"github.com/geocoder89/hallulies/internal/payments"
	"github.com/gin-gonic/gin"
)

type PaymentService interface {
	CreateIntent(ctx context.Context, req payment.IntentRequest) (payment.Payment, payment.Intent, error)
	Charge(ctx context.Context, req payment.ChargeRequest) (payment.Payment, error)
	Get(ctx context.Context, id string) (payment.Payment, error)
}

type PaymentsHandler struct {
	svc PaymentService
	log *slog.Logger
}

func NewPaymentsHandler(svc PaymentService, log *slog.Logger) *PaymentsHandler {
	return &PaymentsHandler{svc: svc, log: log}
}

func (h *PaymentsHandler) CreateIntent(ctx *gin.Context) {
	var req payment.IntentRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	p, intent, err := h.svc.CreateIntent(cctx, req)
	if err != nil {
		RespondInternal(ctx, h.log, "payments.intent", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"payment_id":    p.ID,
		"client_secret": intent.ClientSecret,
	})
}

func (h *PaymentsHandler) Charge(ctx *gin.Context) {
	var req payment.ChargeRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	p, err := h.svc.Charge(cctx, req)
	if err != nil {
		if errors.Is(err, payments.ErrUnsupportedMethod) {
			RespondValidation(ctx, "Invalid field values", nil)
			return
		}
		RespondInternal(ctx, h.log, "payments.charge", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": payments.Instructions(p),
		"payment": p,
	})
}

func (h *PaymentsHandler) GetByID(ctx *gin.Context) {
	cctx, cancel := requestContext(ctx)
	defer cancel()

	p, err := h.svc.Get(cctx, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			RespondNotFound(ctx, "Payment not found")
			return
		}
		RespondInternal(ctx, h.log, "payments.get", err)
		return
	}

	ctx.JSON(http.StatusOK, p)
}
