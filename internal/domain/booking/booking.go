package booking

import (
	"errors"
	"time"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// DateLayout is the wire and storage format for stay dates.
const DateLayout = "2006-01-02"

var (
	ErrNotFound    = errors.New("booking not found")
	ErrInvalidStay = errors.New("checkout_date must be after checkin_date")
	ErrEmptyPatch  = errors.New("no valid fields to update")
)

type Booking struct {
	ID              int64     `json:"id"`
	GuestName       string    `json:"guest_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	CheckinDate     string    `json:"checkin_date"`
	CheckoutDate    string    `json:"checkout_date"`
	RoomType        string    `json:"room_type"`
	Adults          int       `json:"adults"`
	Children        int       `json:"children"`
	SpecialRequests string    `json:"special_requests"`
	Status          string    `json:"status"`
	TotalAmount     *float64  `json:"total_amount"`
	CreatedAt       time.Time `json:"created_at"`
}

type CreateRequest struct {
	GuestName       string   `json:"guest_name" binding:"required,max=120"`
	Email           string   `json:"email" binding:"required,email,max=254"`
	Phone           string   `json:"phone" binding:"omitempty,max=40"`
	CheckinDate     string   `json:"checkin_date" binding:"required,datetime=2006-01-02"`
	CheckoutDate    string   `json:"checkout_date" binding:"required,datetime=2006-01-02"`
	RoomType        string   `json:"room_type" binding:"required,max=60"`
	Adults          *int     `json:"adults" binding:"omitempty,min=1,max=20"`
	Children        *int     `json:"children" binding:"omitempty,min=0,max=20"`
	SpecialRequests string   `json:"special_requests" binding:"omitempty,max=2000"`
	TotalAmount     *float64 `json:"total_amount" binding:"omitempty,gte=0,lte=1000000000,money"`
}

// Patch carries only the fields the caller sent. A nil field is left untouched.
type Patch struct {
	GuestName       *string  `json:"guest_name" binding:"omitempty,min=1,max=120"`
	Email           *string  `json:"email" binding:"omitempty,email,max=254"`
	Phone           *string  `json:"phone" binding:"omitempty,max=40"`
	CheckinDate     *string  `json:"checkin_date" binding:"omitempty,datetime=2006-01-02"`
	CheckoutDate    *string  `json:"checkout_date" binding:"omitempty,datetime=2006-01-02"`
	RoomType        *string  `json:"room_type" binding:"omitempty,min=1,max=60"`
	Adults          *int     `json:"adults" binding:"omitempty,min=1,max=20"`
	Children        *int     `json:"children" binding:"omitempty,min=0,max=20"`
	SpecialRequests *string  `json:"special_requests" binding:"omitempty,max=2000"`
	Status          *string  `json:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	TotalAmount     *float64 `json:"total_amount" binding:"omitempty,gte=0,lte=1000000000,money"`
}

func (p Patch) IsEmpty() bool {
	return p.GuestName == nil && p.Email == nil && p.Phone == nil &&
		p.CheckinDate == nil && p.CheckoutDate == nil && p.RoomType == nil &&
		p.Adults == nil && p.Children == nil && p.SpecialRequests == nil &&
		p.Status == nil && p.TotalAmount == nil
}

// Stay is a validated pair of stay dates.
type Stay struct {
	Checkin  time.Time
	Checkout time.Time
}

func ParseStay(checkin, checkout string) (Stay, error) {
	in, err := time.Parse(DateLayout, checkin)
	if err != nil {
		return Stay{}, ErrInvalidStay
	}
	out, err := time.Parse(DateLayout, checkout)
	if err != nil {
		return Stay{}, ErrInvalidStay
	}
	if !out.After(in) {
		return Stay{}, ErrInvalidStay
	}
	return Stay{Checkin: in, Checkout: out}, nil
}

// Nights is the number of nights between checkin and checkout.
func (s Stay) Nights() int {
	return int(s.Checkout.Sub(s.Checkin).Hours() / 24)
}

// Normalize fills the defaults a new booking gets when the guest omits them.
func (r CreateRequest) Normalize() CreateRequest {
	if r.Adults == nil {
		one := 1
		r.Adults = &one
	}
	if r.Children == nil {
		zero := 0
		r.Children = &zero
	}
	return r
}

// MergedStay checks the stay that results from applying p to b.
func (p Patch) MergedStay(b Booking) (Stay, error) {
	in, out := b.CheckinDate, b.CheckoutDate
	if p.CheckinDate != nil {
		in = *p.CheckinDate
	}
	if p.CheckoutDate != nil {
		out = *p.CheckoutDate
	}
	return ParseStay(in, out)
}
