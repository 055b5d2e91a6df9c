package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/geocoder89/hallulies/internal/domain/document"
	"github.com/gin-gonic/gin"
)

type DocumentStore interface {
	Create(ctx context.Context, req document.CreateRequest) (document.Document, error)
	List(ctx context.Context, view string) ([]document.Document, error)
	GetByID(ctx context.Context, id string) (document.Document, error)
	SoftDelete(ctx context.Context, id string) error
}

// DocumentsHandler manages invoice and receipt metadata for the front desk.
type DocumentsHandler struct {
	repo      DocumentStore
	sanitizer document.Sanitizer
	currency  string
	shareBase string
	log       *slog.Logger
}

func NewDocumentsHandler(repo DocumentStore, sanitizer document.Sanitizer, currency, shareBase string, log *slog.Logger) *DocumentsHandler {
	return &DocumentsHandler{
		repo:      repo,
		sanitizer: sanitizer,
		currency:  currency,
		shareBase: shareBase,
		log:       log,
	}
}

const msgDocumentNotFound = "Document not found"

func (h *DocumentsHandler) List(ctx *gin.Context) {
	view := ctx.DefaultQuery("view", document.ViewAll)
	if !document.ValidView(view) {
		RespondValidation(ctx, msgInvalidFields, gin.H{"fields": []FieldError{{
			Field:   "view",
			Rule:    "oneof",
			Param:   "all invoice receipt contract other",
			Message: validationMessage("oneof", "all invoice receipt contract other"),
		}}})
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	docs, err := h.repo.List(cctx, view)
	if err != nil {
		RespondInternal(ctx, h.log, "documents.list", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"documents": docs})
}

func (h *DocumentsHandler) Upload(ctx *gin.Context) {
	var req document.CreateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	req = req.Sanitized(h.sanitizer).WithDefaults(h.currency)
	if req.Title == "" {
		RespondValidation(ctx, msgMissingFields, gin.H{"fields": []FieldError{{
			Field:   "title",
			Rule:    "required",
			Message: validationMessage("required", ""),
		}}})
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	d, err := h.repo.Create(cctx, req)
	if err != nil {
		RespondInternal(ctx, h.log, "documents.create", err)
		return
	}

	h.log.InfoContext(ctx.Request.Context(), "document.uploaded", "document_id", d.ID, "type", d.Type)

	ctx.JSON(http.StatusCreated, gin.H{
		"message":  "Document uploaded successfully",
		"document": d,
	})
}

// View returns the metadata and where the file is served from.
func (h *DocumentsHandler) View(ctx *gin.Context) {
	d, ok := h.load(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":       d.ID,
		"document": d,
		"url":      "/documents/" + url.PathEscape(d.Filename),
	})
}

func (h *DocumentsHandler) ShareLink(ctx *gin.Context) {
	d, ok := h.load(ctx)
	if !ok {
		return
	}

	link, err := url.JoinPath(h.shareBase, "share", d.ID)
	if err != nil {
		RespondInternal(ctx, h.log, "documents.share_link", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"share_link": link})
}

func (h *DocumentsHandler) Delete(ctx *gin.Context) {
	cctx, cancel := requestContext(ctx)
	defer cancel()

	if err := h.repo.SoftDelete(cctx, ctx.Param("id")); err != nil {
		if errors.Is(err, document.ErrNotFound) {
			RespondNotFound(ctx, msgDocumentNotFound)
			return
		}
		RespondInternal(ctx, h.log, "documents.delete", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}

func (h *DocumentsHandler) load(ctx *gin.Context) (document.Document, bool) {
	cctx, cancel := requestContext(ctx)
	defer cancel()

	d, err := h.repo.GetByID(cctx, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			RespondNotFound(ctx, msgDocumentNotFound)
			return document.Document{}, false
		}
		RespondInternal(ctx, h.log, "documents.get", err)
		return document.Document{}, false
	}
	return d, true
}
