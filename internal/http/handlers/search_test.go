package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/geocoder89/hallulies/internal/domain/menu"
	"github.com/geocoder89/hallulies/internal/domain/search"
	"github.com/geocoder89/hallulies/internal/http/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchBody struct {
	Results []search.Result `json:"results"`
	Total   int             `json:"total"`
}

func TestSearch(t *testing.T) {
	menuCalls := 0
	store := &fakeMenuStore{
		ListActiveFn: func(context.Context) ([]menu.Item, error) {
			menuCalls++
			return []menu.Item{
				{ID: 3, Name: "Grilled Tilapia", Description: "Served with banku", IsActive: true},
				{ID: 9, Name: "Room Service Breakfast", Description: "Delivered to your suite", IsActive: true},
			}, nil
		},
	}
	r := setupRouter(http.MethodGet, "/api/search", handlers.NewSearchHandler(store, discardLogger()).Search)

	tests := []struct {
		name      string
		path      string
		wantIDs   []string
		wantTotal int
		wantMenu  bool
	}{
		{"menu item by description", "/api/search?q=banku", []string{"menu-3"}, 1, true},
		{"catalog and menu together", "/api/search?q=suite", []string{"1", "menu-9"}, 2, true},
		{"rooms skip the menu", "/api/search?q=room&category=rooms", []string{"1", "4", "5"}, 3, false},
		{"limit keeps the full total", "/api/search?category=rooms&limit=2", []string{"1", "4"}, 3, false},
		{"nothing found", "/api/search?q=helipad", []string{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			menuCalls = 0

			w := doJSON(r, http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var body searchBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

			ids := make([]string, 0, len(body.Results))
			for _, res := range body.Results {
				ids = append(ids, res.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantTotal, body.Total)
			assert.Equal(t, tt.wantMenu, menuCalls > 0)
		})
	}
}

func TestSearchRejectsBadQuery(t *testing.T) {
	store := &fakeMenuStore{
		ListActiveFn: func(context.Context) ([]menu.Item, error) {
			t.Fatal("menu must not be read")
			return nil, nil
		},
	}
	r := setupRouter(http.MethodGet, "/api/search", handlers.NewSearchHandler(store, discardLogger()).Search)

	for _, path := range []string{
		"/api/search?category=spa",
		"/api/search?limit=0",
		"/api/search?limit=51",
		"/api/search?limit=ten",
	} {
		w := doJSON(r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestSearchMenuFailure(t *testing.T) {
	store := &fakeMenuStore{
		ListActiveFn: func(context.Context) ([]menu.Item, error) { return nil, errBoom },
	}
	r := setupRouter(http.MethodGet, "/api/search", handlers.NewSearchHandler(store, discardLogger()).Search)

	w := doJSON(r, http.MethodGet, "/api/search?q=rice", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
