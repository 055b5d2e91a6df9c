package testimonial

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type upper struct{}

func (upper) Sanitize(s string) string { return strings.ToUpper(s) }

func TestSanitizedPatchLeavesNilFields(t *testing.T) {
	title := "lovely"
	p := Patch{Title: &title}.Sanitized(upper{})

	assert.Nil(t, p.Name)
	assert.Nil(t, p.Content)
	assert.Equal(t, "LOVELY", *p.Title)
	assert.Equal(t, "lovely", title)
}

func TestSanitizedCreate(t *testing.T) {
	r := CreateRequest{Name: "ama", Title: "t", Content: "c", Rating: 5}.Sanitized(upper{})
	assert.Equal(t, "AMA", r.Name)
	assert.Equal(t, 5, r.Rating)
}

type stripAll struct{}

func (stripAll) Sanitize(string) string { return "" }

func TestBlankRequiredAfterSanitizing(t *testing.T) {
	title, content, location := "<b></b>", "<img src=x>", "<i></i>"
	p := Patch{Title: &title, Content: &content, Location: &location}.Sanitized(stripAll{})

	assert.Equal(t, []string{"title", "content"}, p.BlankRequired())
	assert.Empty(t, Patch{}.BlankRequired())
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusApproved))
	assert.False(t, ValidStatus("archived"))
}
