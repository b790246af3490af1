package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.com "))
	assert.Equal(t, "user@example.com", NormalizeEmail("USER@EXAMPLE.COM"))
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		valid bool
	}{
		{"simple", "a@x.com", "a@x.com", true},
		{"uppercase normalized", " Bob@Example.COM ", "bob@example.com", true},
		{"missing at", "not-an-email", "", false},
		{"missing domain dot", "a@localhost", "", false},
		{"embedded space", "a b@x.com", "", false},
		{"double at", "a@@x.com", "", false},
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ValidateEmail(tt.input)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "u***@example.com", MaskEmail("user@example.com"))
	masked := MaskEmail("a@x.com")
	assert.NotContains(t, masked, "a@")
}
