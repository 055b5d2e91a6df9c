package testimonial

import (
	"errors"
	"time"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDeleted  = "deleted"
)

var (
	ErrNotFound   = errors.New("testimonial not found")
	ErrEmptyPatch = errors.New("no valid fields to update")
)

type Testimonial struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Location string `json:"location" binding:"omitempty,max=120"`
	Title    string `json:"title" binding:"required,max=200"`
	Content  string `json:"content" binding:"required,max=5000"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
}

type Patch struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=120"`
	Location *string `json:"location" binding:"omitempty,max=120"`
	Title    *string `json:"title" binding:"omitempty,min=1,max=200"`
	Content  *string `json:"content" binding:"omitempty,min=1,max=5000"`
	Rating   *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Status   *string `json:"status" binding:"omitempty,oneof=pending approved deleted"`
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Location == nil && p.Title == nil &&
		p.Content == nil && p.Rating == nil && p.Status == nil
}

// Sanitizer strips markup from guest supplied text.
type Sanitizer interface {
	Sanitize(s string) string
}

func (r CreateRequest) Sanitized(s Sanitizer) CreateRequest {
	r.Name = s.Sanitize(r.Name)
	r.Location = s.Sanitize(r.Location)
	r.Title = s.Sanitize(r.Title)
	r.Content = s.Sanitize(r.Content)
	return r
}

func (p Patch) Sanitized(s Sanitizer) Patch {
	for _, f := range []**string{&p.Name, &p.Location, &p.Title, &p.Content} {
		if *f != nil {
			v := s.Sanitize(**f)
			*f = &v
		}
	}
	return p
}

// BlankRequired lists the json names of required fields the patch sets to
// an empty string. Run it after Sanitized: markup only input ends up empty.
func (p Patch) BlankRequired() []string {
	var blank []string
	for _, f := range []struct {
		name string
		v    *string
	}{{"name", p.Name}, {"title", p.Title}, {"content", p.Content}} {
		if f.v != nil && *f.v == "" {
			blank = append(blank, f.name)
		}
	}
	return blank
}

// ValidStatus reports whether status can be used as a moderation filter.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusDeleted:
		return true
	}
	return false
}
