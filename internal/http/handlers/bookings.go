package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/geocoder89/hallulies/internal/domain/booking"
	"github.com/geocoder89/hallulies/internal/notifications"
	"github.com/gin-gonic/gin"
)

type BookingStore interface {
	Create(ctx context.Context, req booking.CreateRequest) (booking.Booking, error)
	List(ctx context.Context) ([]booking.Booking, error)
	GetByID(ctx context.Context, id int64) (booking.Booking, error)
	Update(ctx context.Context, id int64, p booking.Patch) (booking.Booking, error)
	Cancel(ctx context.Context, id int64) error
}

type BookingComposer interface {
	BookingConfirmation(b booking.Booking) (notifications.Message, error)
}

type BookingsHandler struct {
	repo     BookingStore
	mailer   notifications.Mailer
	composer BookingComposer
	log      *slog.Logger
}

func NewBookingsHandler(repo BookingStore, mailer notifications.Mailer, composer BookingComposer, log *slog.Logger) *BookingsHandler {
	return &BookingsHandler{repo: repo, mailer: mailer, composer: composer, log: log}
}

const msgBookingNotFound = "Booking not found"

func (h *BookingsHandler) Create(ctx *gin.Context) {
	var req booking.CreateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if _, err := booking.ParseStay(req.CheckinDate, req.CheckoutDate); err != nil {
		RespondValidation(ctx, "Checkout date must be after checkin date", nil)
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	b, err := h.repo.Create(cctx, req.Normalize())
	if err != nil {
		RespondInternal(ctx, h.log, "bookings.create", err)
		return
	}

	resp := gin.H{
		"message":    "Booking created successfully",
		"booking_id": b.ID,
	}

	sent := notify(ctx, h.log, h.mailer, func() (notifications.Message, error) {
		return h.composer.BookingConfirmation(b)
	})
	if !sent {
		resp["warning"] = "Booking created but confirmation email failed to send. Please contact us directly."
	}

	ctx.JSON(http.StatusCreated, resp)
}

func (h *BookingsHandler) List(ctx *gin.Context) {
	cctx, cancel := requestContext(ctx)
	defer cancel()

	items, err := h.repo.List(cctx)
	if err != nil {
		RespondInternal(ctx, h.log, "bookings.list", err)
		return
	}

	ctx.JSON(http.StatusOK, items)
}

func (h *BookingsHandler) GetByID(ctx *gin.Context) {
	id, ok := pathID(ctx, msgBookingNotFound)
	if !ok {
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	b, err := h.repo.GetByID(cctx, id)
	if err != nil {
		h.respondLookup(ctx, "bookings.get", err)
		return
	}

	ctx.JSON(http.StatusOK, b)
}

func (h *BookingsHandler) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, msgBookingNotFound)
	if !ok {
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	current, err := h.repo.GetByID(cctx, id)
	if err != nil {
		h.respondLookup(ctx, "bookings.get", err)
		return
	}

	var patch booking.Patch
	if !BindJSON(ctx, &patch) {
		return
	}

	if patch.IsEmpty() {
		RespondValidation(ctx, msgNoFieldsToUpdate, nil)
		return
	}

	if _, err := patch.MergedStay(current); err != nil {
		RespondValidation(ctx, "Checkout date must be after checkin date", nil)
		return
	}

	if _, err := h.repo.Update(cctx, id, patch); err != nil {
		h.respondLookup(ctx, "bookings.update", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Booking updated successfully"})
}

// Delete cancels the booking. The row is kept.
func (h *BookingsHandler) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, msgBookingNotFound)
	if !ok {
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	if err := h.repo.Cancel(cctx, id); err != nil {
		h.respondLookup(ctx, "bookings.cancel", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}

func (h *BookingsHandler) respondLookup(ctx *gin.Context, op string, err error) {
	if errors.Is(err, booking.ErrNotFound) {
		RespondNotFound(ctx, msgBookingNotFound)
		return
	}
	RespondInternal(ctx, h.log, op, err)
}
