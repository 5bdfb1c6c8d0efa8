package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantLength int
		wantRatio  float64
	}{
		{
			name:       "empty text is maximal noise",
			text:       "",
			wantLength: 0,
			wantRatio:  1.0,
		},
		{
			name:       "clean alphanumeric text",
			text:       "Signed on 15 March 2022",
			wantLength: 23,
			wantRatio:  0.0,
		},
		{
			name:       "two noise characters in seven",
			text:       "AB 12!!",
			wantLength: 7,
			wantRatio:  0.2857,
		},
		{
			name:       "all punctuation",
			text:       "!!!???",
			wantLength: 6,
			wantRatio:  1.0,
		},
		{
			name:       "unicode letters are signal",
			text:       "naïve café",
			wantLength: 10,
			wantRatio:  0.0,
		},
		{
			name:       "currency symbols are noise",
			text:       "€500",
			wantLength: 4,
			wantRatio:  0.25,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.text)
			assert.Equal(t, tt.wantLength, got.TextLength)
			assert.Equal(t, tt.wantRatio, got.NoiseRatio)
		})
	}
}

func TestScoreBounds(t *testing.T) {
	for _, text := range []string{"", "a", "!", "a!", "  \n  ", "£$%^&*", "plain text"} {
		got := Score(text)
		assert.GreaterOrEqual(t, got.NoiseRatio, 0.0, "text %q", text)
		assert.LessOrEqual(t, got.NoiseRatio, 1.0, "text %q", text)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "collapses horizontal whitespace",
			in:   "a  b\t\tc",
			want: "a b c",
		},
		{
			name: "collapses newline runs",
			in:   "para one\n\n\npara two",
			want: "para one\npara two",
		},
		{
			name: "trims the ends",
			in:   "  \n text \n ",
			want: "text",
		},
		{
			name: "already normalized",
			in:   "a b\nc",
			want: "a b\nc",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}
