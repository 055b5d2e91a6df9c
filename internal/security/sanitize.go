package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// maxDecodeRounds bounds how many layers of entity encoding are peeled off.
const maxDecodeRounds = 4

// TextSanitizer reduces guest input to plain text. The stored value is text
// and is escaped wherever it is rendered, so entities are decoded; decoded
// output goes back through the policy until it stops changing, which keeps
// "&lt;script&gt;" from turning into markup.
type TextSanitizer struct {
	policy *bluemonday.Policy
}

func NewTextSanitizer() *TextSanitizer {
	return &TextSanitizer{policy: bluemonday.StrictPolicy()}
}

func (s *TextSanitizer) Sanitize(in string) string {
	cur := in
	for i := 0; i < maxDecodeRounds; i++ {
		next := html.UnescapeString(s.policy.Sanitize(cur))
		if next == cur {
			return strings.TrimSpace(next)
		}
		cur = next
	}

	// still unwrapping: keep it escaped rather than guess
	return strings.TrimSpace(s.policy.Sanitize(cur))
}
