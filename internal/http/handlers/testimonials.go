package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/geocoder89/hallulies/internal/domain/testimonial"
	"github.com/geocoder89/hallulies/internal/notifications"
	"github.com/gin-gonic/gin"
)

type TestimonialStore interface {
	Create(ctx context.Context, req testimonial.CreateRequest) (testimonial.Testimonial, error)
	ListByStatus(ctx context.Context, status string) ([]testimonial.Testimonial, error)
	GetByID(ctx context.Context, id int64) (testimonial.Testimonial, error)
	Update(ctx context.Context, id int64, p testimonial.Patch) (testimonial.Testimonial, error)
	SoftDelete(ctx context.Context, id int64) error
}

type TestimonialComposer interface {
	TestimonialNotice(t testimonial.Testimonial) (notifications.Message, error)
}

type TestimonialsHandler struct {
	repo      TestimonialStore
	sanitizer testimonial.Sanitizer
	mailer    notifications.Mailer
	composer  TestimonialComposer
	log       *slog.Logger
}

func NewTestimonialsHandler(
	repo TestimonialStore,
	sanitizer testimonial.Sanitizer,
	mailer notifications.Mailer,
	composer TestimonialComposer,
	log *slog.Logger,
) *TestimonialsHandler {
	return &TestimonialsHandler{
		repo:      repo,
		sanitizer: sanitizer,
		mailer:    mailer,
		composer:  composer,
		log:       log,
	}
}

const msgTestimonialNotFound = "Testimonial not found"

// ListApproved is the public wall of reviews.
func (h *TestimonialsHandler) ListApproved(ctx *gin.Context) {
	h.list(ctx, testimonial.StatusApproved)
}

// ListForModeration returns every testimonial, or those in ?status=.
func (h *TestimonialsHandler) ListForModeration(ctx *gin.Context) {
	status := ctx.Query("status")

	if status != "" && !testimonial.ValidStatus(status) {
		RespondValidation(ctx, "Invalid field values", gin.H{"fields": []FieldError{{
			Field:   "status",
			Rule:    "oneof",
			Param:   "pending approved deleted",
			Message: validationMessage("oneof", "pending approved deleted"),
		}}})
		return
	}

	h.list(ctx, status)
}

func (h *TestimonialsHandler) list(ctx *gin.Context, status string) {
	cctx, cancel := requestContext(ctx)
	defer cancel()

	items, err := h.repo.ListByStatus(cctx, status)
	if err != nil {
		RespondInternal(ctx, h.log, "testimonials.list", err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, items)
}

func (h *TestimonialsHandler) Create(ctx *gin.Context) {
	var req testimonial.CreateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	req = req.Sanitized(h.sanitizer)

	// markup only fields are empty once stripped
	if req.Name == "" || req.Title == "" || req.Content == "" {
		RespondValidation(ctx, msgMissingFields, nil)
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	t, err := h.repo.Create(cctx, req)
	if err != nil {
		RespondInternal(ctx, h.log, "testimonials.create", err)
		return
	}

	resp := gin.H{
		"message":        "Testimonial submitted successfully",
		"testimonial_id": t.ID,
	}

	sent := notify(ctx, h.log, h.mailer, func() (notifications.Message, error) {
		return h.composer.TestimonialNotice(t)
	})
	if !sent {
		resp["warning"] = "Testimonial submitted but admin notification email failed to send."
	}

	ctx.JSON(http.StatusCreated, resp)
}

func (h *TestimonialsHandler) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, msgTestimonialNotFound)
	if !ok {
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	if _, err := h.repo.GetByID(cctx, id); err != nil {
		h.respondLookup(ctx, "testimonials.get", err)
		return
	}

	var patch testimonial.Patch
	if !BindJSON(ctx, &patch) {
		return
	}

	if patch.IsEmpty() {
		RespondValidation(ctx, msgNoFieldsToUpdate, nil)
		return
	}

	patch = patch.Sanitized(h.sanitizer)
	if blank := patch.BlankRequired(); len(blank) > 0 {
		fields := make([]FieldError, 0, len(blank))
		for _, f := range blank {
			fields = append(fields, FieldError{Field: f, Rule: "required", Message: validationMessage("required", "")})
		}
		RespondValidation(ctx, msgMissingFields, gin.H{"fields": fields})
		return
	}

	if _, err := h.repo.Update(cctx, id, patch); err != nil {
		h.respondLookup(ctx, "testimonials.update", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Testimonial updated successfully"})
}

func (h *TestimonialsHandler) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, msgTestimonialNotFound)
	if !ok {
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	if err := h.repo.SoftDelete(cctx, id); err != nil {
		h.respondLookup(ctx, "testimonials.delete", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Testimonial deleted successfully"})
}

func (h *TestimonialsHandler) respondLookup(ctx *gin.Context, op string, err error) {
	if errors.Is(err, testimonial.ErrNotFound) {
		RespondNotFound(ctx, msgTestimonialNotFound)
		return
	}
	RespondInternal(ctx, h.log, op, err)
}
