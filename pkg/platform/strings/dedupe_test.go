package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrimUpper(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "upper-cases and dedupes",
			input:    []string{"email", "EMAIL", "Email"},
			expected: []string{"EMAIL"},
		},
		{
			name:     "removes empty strings preserving order",
			input:    []string{" phone ", "", "  ", "email", "PHONE"},
			expected: []string{"PHONE", "EMAIL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DedupeAndTrimUpper(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}
