package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/geocoder89/hallulies/internal/domain/menu"
	"github.com/geocoder89/hallulies/internal/domain/search"
	"github.com/gin-gonic/gin"
)

type MenuLister interface {
	ListActive(ctx context.Context) ([]menu.Item, error)
}

type SearchHandler struct {
	menu MenuLister
	log  *slog.Logger
}

func NewSearchHandler(menu MenuLister, log *slog.Logger) *SearchHandler {
	return &SearchHandler{menu: menu, log: log}
}

// Search matches ?q= against the hotel catalog and the live menu.
func (h *SearchHandler) Search(ctx *gin.Context) {
	category := ctx.DefaultQuery("category", search.CategoryAll)
	if !search.ValidCategory(category) {
		RespondValidation(ctx, msgInvalidFields, gin.H{"fields": []FieldError{{
			Field:   "category",
			Rule:    "oneof",
			Param:   "all rooms services events menu",
			Message: validationMessage("oneof", "all rooms services events menu"),
		}}})
		return
	}

	limit := search.DefaultLimit
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > search.MaxLimit {
			RespondValidation(ctx, msgInvalidFields, gin.H{"fields": []FieldError{{
				Field:   "limit",
				Rule:    "range",
				Param:   "1-50",
				Message: "must be between 1 and 50",
			}}})
			return
		}
		limit = n
	}

	candidates := search.Catalog
	if search.WantsMenu(category) {
		cctx, cancel := requestContext(ctx)
		defer cancel()

		items, err := h.menu.ListActive(cctx)
		if err != nil {
			RespondInternal(ctx, h.log, "search.menu", err)
			return
		}
		candidates = append(append([]search.Result(nil), search.Catalog...), search.FromMenu(items)...)
	}

	matched := search.Filter(candidates, ctx.Query("q"), category)
	total := len(matched)
	if len(matched) > limit {
		matched = matched[:limit]
	}

	ctx.JSON(http.StatusOK, gin.H{
		"results": matched,
		"total":   total,
	})
}
