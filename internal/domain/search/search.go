// Package search answers the site search box from the fixed hotel catalog
// and the live menu.
package search

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/geocoder89/hallulies/internal/domain/menu"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	CategoryAll      = "all"
	CategoryRooms    = "rooms"
	CategoryServices = "services"
	CategoryEvents   = "events"
	CategoryMenu     = "menu"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

type Result struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Slug        string `json:"slug"`
	URL         string `json:"url"`
}

// Catalog is what the hotel offers outside the menu.
var Catalog = []Result{
	{ID: "1", Title: "Luxury Suite Room", Description: "Premium accommodation with stunning views", Category: CategoryRooms, Type: "room", Slug: "luxury-suite", URL: "/booking.html?room=luxury-suite"},
	{ID: "2", Title: "Fine Dining Restaurant", Description: "Exquisite cuisine featuring local delicacies", Category: CategoryServices, Type: "service", Slug: "fine-dining", URL: "#restaurant"},
	{ID: "3", Title: "Wedding Event Hall", Description: "Perfect venue for your special celebration", Category: CategoryEvents, Type: "event", Slug: "wedding-hall", URL: "/events.html?id=wedding-hall"},
	{ID: "4", Title: "Deluxe Room", Description: "Comfortable room with a king size bed and city views", Category: CategoryRooms, Type: "room", Slug: "deluxe", URL: "/booking.html?room=deluxe"},
	{ID: "5", Title: "Standard Room", Description: "Cosy room for short stays", Category: CategoryRooms, Type: "room", Slug: "standard", URL: "/booking.html?room=standard"},
	{ID: "6", Title: "Spa and Wellness", Description: "Massage, sauna and relaxation treatments", Category: CategoryServices, Type: "service", Slug: "spa", URL: "#spa"},
	{ID: "7", Title: "Conference Room", Description: "Meeting space with projector and catering", Category: CategoryEvents, Type: "event", Slug: "conference-room", URL: "/events.html?id=conference-room"},
}

func ValidCategory(c string) bool {
	switch c {
	case CategoryAll, CategoryRooms, CategoryServices, CategoryEvents, CategoryMenu:
		return true
	}
	return false
}

// WantsMenu reports whether the menu has to be loaded for category.
func WantsMenu(category string) bool {
	return category == CategoryAll || category == CategoryMenu
}

// FromMenu turns active menu items into search results.
func FromMenu(items []menu.Item) []Result {
	out := make([]Result, 0, len(items))
	for _, it := range items {
		id := strconv.FormatInt(it.ID, 10)
		out = append(out, Result{
			ID:          "menu-" + id,
			Title:       it.Name,
			Description: it.Description,
			Category:    CategoryMenu,
			Type:        "menu_item",
			Slug:        Slugify(it.Name),
			URL:         "/menu.html#item-" + id,
		})
	}
	return out
}

// Filter keeps results in category whose title or description contains
// query, ignoring case and accents. An empty query matches everything.
func Filter(results []Result, query, category string) []Result {
	q := fold(strings.TrimSpace(query))

	out := make([]Result, 0, len(results))
	for _, r := range results {
		if category != CategoryAll && r.Category != category {
			continue
		}
		if q != "" && !strings.Contains(fold(r.Title), q) && !strings.Contains(fold(r.Description), q) {
			continue
		}
		out = append(out, r)
	}
	return out
}

var (
	nonSlug    = regexp.MustCompile(`[^a-z0-9-]+`)
	dashes     = regexp.MustCompile(`-{2,}`)
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// fold lowercases s and drops accents, so "cafe" finds "Café".
func fold(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

func Slugify(s string) string {
	out := strings.ReplaceAll(fold(s), " ", "-")
	out = nonSlug.ReplaceAllString(out, "")
	out = dashes.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}
