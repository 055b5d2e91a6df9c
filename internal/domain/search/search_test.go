package search

import (
	"testing"

	"github.com/geocoder89/hallulies/internal/domain/menu"
	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		category string
		want     []string
	}{
		{"everything", "", CategoryAll, []string{"1", "2", "3", "4", "5", "6", "7"}},
		{"rooms only", "", CategoryRooms, []string{"1", "4", "5"}},
		{"title match ignores case", "SUITE", CategoryAll, []string{"1"}},
		{"description match", "celebration", CategoryAll, []string{"3"}},
		{"category narrows a match", "room", CategoryEvents, []string{"7"}},
		{"no match", "helipad", CategoryAll, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(Catalog, tt.query, tt.category)

			ids := make([]string, 0, len(got))
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterIgnoresAccents(t *testing.T) {
	results := FromMenu([]menu.Item{{ID: 4, Name: "Crème Brûlée", Description: "Vanilla custard"}})

	got := Filter(results, "creme brulee", CategoryMenu)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "menu-4", got[0].ID)
		assert.Equal(t, "creme-brulee", got[0].Slug)
		assert.Equal(t, "/menu.html#item-4", got[0].URL)
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "jollof-rice-chicken", Slugify("Jollof Rice & Chicken"))
	assert.Equal(t, "kelewele", Slugify("  Kelewele! "))
	assert.Equal(t, "", Slugify("***"))
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(CategoryMenu))
	assert.False(t, ValidCategory("spa"))
	assert.True(t, WantsMenu(CategoryAll))
	assert.False(t, WantsMenu(CategoryRooms))
}
