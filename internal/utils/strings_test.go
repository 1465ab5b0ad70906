package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "single value",
			input:    "owner_updated",
			expected: []string{"owner_updated"},
		},
		{
			name:     "two values",
			input:    "owner_updated, account_updated",
			expected: []string{"owner_updated", "account_updated"},
		},
		{
			name:     "varied spacing",
			input:    "funding_changed,  navigation_moved , snapshot_saved",
			expected: []string{"funding_changed", "navigation_moved", "snapshot_saved"},
		},
		{
			name:     "trailing comma",
			input:    "owner_created,",
			expected: []string{"owner_created"},
		},
		{
			name:     "leading comma",
			input:    ",account_deleted",
			expected: []string{"account_deleted"},
		},
		{
			name:     "only spaces",
			input:    "   ",
			expected: nil,
		},
		{
			name:     "comma only",
			input:    ",",
			expected: nil,
		},
		{
			name:     "multiple commas",
			input:    ",,owner_updated,,account_updated,,",
			expected: []string{"owner_updated", "account_updated"},
		},
		{
			name:     "internal spaces preserved",
			input:    "household changed, navigation moved",
			expected: []string{"household changed", "navigation moved"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseCSV(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseCSV_PreservesInput(t *testing.T) {
	input := "owner_updated, account_updated"
	originalInput := input

	_ = ParseCSV(input)

	assert.Equal(t, originalInput, input, "input should not be modified")
}
