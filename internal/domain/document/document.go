package document

import (
	"errors"
	"path"
	"strings"
	"time"
)

const (
	TypeInvoice  = "invoice"
	TypeReceipt  = "receipt"
	TypeContract = "contract"
	TypeOther    = "other"
)

const (
	StatusDraft   = "draft"
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusDeleted = "deleted"
)

// ViewAll lists every type.
const ViewAll = "all"

var ErrNotFound = errors.New("document not found")

type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Amount      *float64  `json:"amount"`
	Currency    string    `json:"currency"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	FileSize    int64     `json:"file_size"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateRequest carries document metadata. The file body itself lives in
// external storage and is referenced by Filename.
type CreateRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Type        string   `json:"type" binding:"required,oneof=invoice receipt contract other"`
	Description string   `json:"description" binding:"omitempty,max=1000"`
	Amount      *float64 `json:"amount" binding:"omitempty,gte=0,lte=1000000000,money"`
	Currency    string   `json:"currency" binding:"omitempty,len=3,alpha"`
	Filename    string   `json:"filename" binding:"required,max=200"`
	ContentType string   `json:"content_type" binding:"omitempty,max=100"`
	FileSize    int64    `json:"file_size" binding:"omitempty,gte=0,lte=52428800"`
	Status      string   `json:"status" binding:"omitempty,oneof=draft pending paid"`
}

type Sanitizer interface {
	Sanitize(s string) string
}

func (r CreateRequest) Sanitized(s Sanitizer) CreateRequest {
	r.Title = s.Sanitize(r.Title)
	r.Description = s.Sanitize(r.Description)
	return r
}

// WithDefaults fills the optional fields the store needs.
func (r CreateRequest) WithDefaults(currency string) CreateRequest {
	if r.Currency == "" {
		r.Currency = currency
	}
	r.Currency = strings.ToUpper(r.Currency)
	if r.ContentType == "" {
		r.ContentType = "application/pdf"
	}
	if r.Status == "" {
		r.Status = StatusDraft
	}
	return r
}

// StoredFilename prefixes the client's file name with the document id so
// two uploads of "invoice.pdf" never collide. Directory parts are dropped.
func StoredFilename(id, name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	if base == "." || base == "/" {
		base = "file"
	}
	return id + "_" + base
}

func ValidView(view string) bool {
	switch view {
	case ViewAll, TypeInvoice, TypeReceipt, TypeContract, TypeOther:
		return true
	}
	return false
}
