package delivery

import "time"

const (
	KindBookingConfirmation = "booking.confirmation"
	KindTestimonialNotice   = "testimonial.notice"
	KindContactNotice       = "contact.notice"
)

const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Delivery is one recorded mail attempt.
type Delivery struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	LastError *string   `json:"last_error"`
	CreatedAt time.Time `json:"created_at"`
}
