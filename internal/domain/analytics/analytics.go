package analytics

import "math"

// WindowDays is how far back "recent" reaches on the dashboard.
const WindowDays = 30

type Dashboard struct {
	TotalBookings        int64   `json:"total_bookings"`
	RecentBookings       int64   `json:"recent_bookings"`
	ApprovedTestimonials int64   `json:"approved_testimonials"`
	AverageRating        float64 `json:"average_rating"`
	Revenue30Days        float64 `json:"revenue_30_days"`
}

// RoundRating rounds to one decimal place.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
