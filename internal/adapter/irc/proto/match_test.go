package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		input string
		mask  string
		want  bool
	}{
		{"nick!username@host", "nick", false},
		{"nick!username@host", "nick*", true},
		{"nick!username@host", "*@host", true},
		{"nick!username@host", "*user*", true},
		{"nick!username@host", "nick!username@host", true},
		{"nick!username@host", "n?ck*", true},
		{"nick!username@host", "n?k*", false},
		{"nick", "*", true},
		{"", "*", true},
		{"", "", true},
		{"", "?", false},
		{"abc", "a*b*c", true},
		{"abc", "a*b*c*d", false},
		{"aaab", "a*ab", true},
	}

	for _, tt := range tests {
		t.Run(tt.mask, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.input, tt.mask), "match(%q, %q)", tt.input, tt.mask)
		})
	}
}
