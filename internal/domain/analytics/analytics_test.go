package analytics

import "testing"

func TestRoundRating(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{4.333333, 4.3},
		{4.25, 4.3},
		{4.96, 5.0},
	}

	for _, tt := range tests {
		if got := RoundRating(tt.in); got != tt.want {
			t.Fatalf("RoundRating(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
