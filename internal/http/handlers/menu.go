package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/geocoder89/hallulies/internal/domain/menu"
	"github.com/gin-gonic/gin"
)

type MenuStore interface {
	ListActive(ctx context.Context) ([]menu.Item, error)
	ListActiveByCategory(ctx context.Context, category string) ([]menu.Item, error)
	Create(ctx context.Context, req menu.CreateRequest) (menu.Item, error)
	GetByID(ctx context.Context, id int64) (menu.Item, error)
	Update(ctx context.Context, id int64, p menu.Patch) (menu.Item, error)
	Deactivate(ctx context.Context, id int64) error
}

type MenuHandler struct {
	repo MenuStore
	log  *slog.Logger
}

func NewMenuHandler(repo MenuStore, log *slog.Logger) *MenuHandler {
	return &MenuHandler{repo: repo, log: log}
}

const msgMenuNotFound = "Menu item not found"

func (h *MenuHandler) List(ctx *gin.Context) {
	cctx, cancel := requestContext(ctx)
	defer cancel()

	items, err := h.repo.ListActive(cctx)
	if err != nil {
		RespondInternal(ctx, h.log, "menu.list", err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, items)
}

func (h *MenuHandler) ListByCategory(ctx *gin.Context) {
	category := strings.TrimSpace(ctx.Param("category"))

	cctx, cancel := requestContext(ctx)
	defer cancel()

	items, err := h.repo.ListActiveByCategory(cctx, category)
	if err != nil {
		RespondInternal(ctx, h.log, "menu.list_category", err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, items)
}

func (h *MenuHandler) Create(ctx *gin.Context) {
	var req menu.CreateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	it, err := h.repo.Create(cctx, req)
	if err != nil {
		RespondInternal(ctx, h.log, "menu.create", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Menu item created successfully",
		"menu_id": it.ID,
	})
}

func (h *MenuHandler) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, msgMenuNotFound)
	if !ok {
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	if _, err := h.repo.GetByID(cctx, id); err != nil {
		h.respondLookup(ctx, "menu.get", err)
		return
	}

	var patch menu.Patch
	if !BindJSON(ctx, &patch) {
		return
	}

	if patch.IsEmpty() {
		RespondValidation(ctx, msgNoFieldsToUpdate, nil)
		return
	}

	if _, err := h.repo.Update(cctx, id, patch); err != nil {
		h.respondLookup(ctx, "menu.update", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Menu item updated successfully"})
}

// Delete hides the item from the public menu.
func (h *MenuHandler) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, msgMenuNotFound)
	if !ok {
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	if err := h.repo.Deactivate(cctx, id); err != nil {
		h.respondLookup(ctx, "menu.deactivate", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Menu item deactivated successfully"})
}

func (h *MenuHandler) respondLookup(ctx *gin.Context, op string, err error) {
	if errors.Is(err, menu.ErrNotFound) {
		RespondNotFound(ctx, msgMenuNotFound)
		return
	}
	RespondInternal(ctx, h.log, op, err)
}
