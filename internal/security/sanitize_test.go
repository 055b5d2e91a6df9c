package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextSanitizer(t *testing.T) {
	s := NewTextSanitizer()

	tests := []struct {
		in   string
		want string
	}{
		{in: "Lovely stay", want: "Lovely stay"},
		{in: "<b>Great</b> food", want: "Great food"},
		{in: "Tom & Jerry", want: "Tom & Jerry"},
		{in: `<a href="http://x">click</a>`, want: "click"},
		{in: "  padded  ", want: "padded"},
		{in: "&lt;b&gt;bold&lt;/b&gt; claim", want: "bold claim"},
		{in: "5 &gt; 4 &amp; 3 &lt; 4", want: "5 > 4 & 3 < 4"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Sanitize(tt.in))
		})
	}
}

func TestTextSanitizerStripsEncodedMarkup(t *testing.T) {
	s := NewTextSanitizer()

	for _, in := range []string{
		"&lt;script&gt;alert(1)&lt;/script&gt; nice stay",
		"&amp;lt;img src=x onerror=alert(1)&amp;gt; nice stay",
		"<scr<script>ipt>alert(1)</script> nice stay",
	} {
		t.Run(in, func(t *testing.T) {
			out := s.Sanitize(in)
			assert.NotContains(t, out, "<script")
			assert.NotContains(t, out, "<img")
			assert.Contains(t, out, "nice stay")
		})
	}
}
