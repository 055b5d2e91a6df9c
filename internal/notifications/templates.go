package notifications

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/geocoder89/hallulies/internal/domain/booking"
	"github.com/geocoder89/hallulies/internal/domain/contact"
	"github.com/geocoder89/hallulies/internal/domain/delivery"
	"github.com/geocoder89/hallulies/internal/domain/testimonial"
)

//go:embed templates/*.html
var templateFS embed.FS

type Hotel struct {
	Name    string
	Address string
	Email   string
	Phone   string
}

var DefaultHotel = Hotel{
	Name:    "Hallulies Hotel & Restaurant/Bar",
	Address: "Asufufu-Sunyani, Ghana",
	Email:   "hallulies6@gmail.com",
	Phone:   "0247533518",
}

// Composer renders the transactional emails. Every template shares one
// layout and is parsed once at construction.
type Composer struct {
	hotel       Hotel
	adminTo     string
	booking     *template.Template
	testimonial *template.Template
	contact     *template.Template
}

func NewComposer(hotel Hotel, adminTo string) (*Composer, error) {
	parse := func(name string) (*template.Template, error) {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		return t, nil
	}

	c := &Composer{hotel: hotel, adminTo: adminTo}

	var err error
	if c.booking, err = parse("booking_confirmation.html"); err != nil {
		return nil, err
	}
	if c.testimonial, err = parse("testimonial_notice.html"); err != nil {
		return nil, err
	}
	if c.contact, err = parse("contact_notice.html"); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Composer) BookingConfirmation(b booking.Booking) (Message, error) {
	html, err := render(c.booking, map[string]any{"Hotel": c.hotel, "Booking": b})
	if err != nil {
		return Message{}, err
	}
	return Message{
		Kind:    delivery.KindBookingConfirmation,
		To:      b.Email,
		Subject: "Booking Confirmation - " + b.GuestName,
		HTML:    html,
	}, nil
}

func (c *Composer) TestimonialNotice(t testimonial.Testimonial) (Message, error) {
	html, err := render(c.testimonial, map[string]any{"Hotel": c.hotel, "Testimonial": t})
	if err != nil {
		return Message{}, err
	}
	return Message{
		Kind:    delivery.KindTestimonialNotice,
		To:      c.adminTo,
		Subject: "New Testimonial Submitted - " + t.Name,
		HTML:    html,
	}, nil
}

func (c *Composer) ContactNotice(r contact.Request) (Message, error) {
	html, err := render(c.contact, map[string]any{"Hotel": c.hotel, "Contact": r})
	if err != nil {
		return Message{}, err
	}
	return Message{
		Kind:    delivery.KindContactNotice,
		To:      c.adminTo,
		Subject: "New Contact Message - " + r.Name,
		HTML:    html,
	}, nil
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
