package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"avery@example.com", true},
		{"a.b+c@mail.example.co", true},
		{"avery@example", false},
		{"@example.com", false},
		{"avery@", false},
		{"avery example@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidEmail(tt.input))
		})
	}
}

func TestValidSSN(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"123-45-6789", true},
		{"123456789", false},
		{"123-456-789", false},
		{"12-345-6789", false},
		{"123-45-678", false},
		{"abc-de-fghi", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidSSN(tt.input))
		})
	}
}

func TestValidEIN(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"12-3456789", true},
		{"123456789", false},
		{"12-345678", false},
		{"1-23456789", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidEIN(tt.input))
		})
	}
}

func TestValidRoutingNumber(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"011401533", true},
		{"01140153", false},
		{"0114015331", false},
		{"01140153a", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidRoutingNumber(tt.input))
		})
	}
}

func TestValidAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		positive bool
		valid    bool
	}{
		{"positive deposit", "5000", true, true},
		{"decimal deposit", "12500.50", true, true},
		{"zero deposit rejected", "0", true, false},
		{"negative deposit rejected", "-100", true, false},
		{"zero minimum allowed", "0", false, true},
		{"negative minimum rejected", "-1", false, false},
		{"not a number", "lots", true, false},
		{"empty", "", true, false},
		{"whitespace tolerated", "  250  ", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidAmount(tt.input, tt.positive))
		})
	}
}

func TestValidDateOfBirth(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"adult", "1984-03-12", true},
		{"exactly eighteen today", "2008-06-01", true},
		{"seventeen", "2009-01-15", false},
		{"future date", "2030-01-01", false},
		{"not a date", "March 12 1984", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidDateOfBirth(tt.input, now))
		})
	}
}
