package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Format patterns shared by every rule set. These used to be duplicated
// (with drift) across the three front ends.
var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	ssnPattern     = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)
	einPattern     = regexp.MustCompile(`^\d{2}-\d{7}$`)
	routingPattern = regexp.MustCompile(`^\d{9}$`)
	digitsPattern  = regexp.MustCompile(`^\d+$`)
)

// MinimumOwnerAge is the youngest age at which an individual may open an account
const MinimumOwnerAge = 18

// isBlank reports whether a value is empty after trimming whitespace
func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// ValidEmail reports whether the value looks like local@domain.tld
func ValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// ValidSSN reports whether the value matches NNN-NN-NNNN
func ValidSSN(value string) bool {
	return ssnPattern.MatchString(value)
}

// ValidEIN reports whether the value matches NN-NNNNNNN
func ValidEIN(value string) bool {
	return einPattern.MatchString(value)
}

// ValidRoutingNumber reports whether the value is exactly 9 digits
func ValidRoutingNumber(value string) bool {
	return routingPattern.MatchString(value)
}

// ValidDigits reports whether the value is digits only
func ValidDigits(value string) bool {
	return digitsPattern.MatchString(value)
}

// ValidAmount reports whether the value parses to a finite number. When
// positive is true the amount must be strictly greater than zero, otherwise
// zero is allowed.
func ValidAmount(value string, positive bool) bool {
	amount, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsInf(amount, 0) || math.IsNaN(amount) {
		return false
	}
	if positive {
		return amount > 0
	}
	return amount >= 0
}

// ValidDateOfBirth reports whether the value is a real YYYY-MM-DD date at
// least MinimumOwnerAge years in the past.
func ValidDateOfBirth(value string, now time.Time) bool {
	dob, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return false
	}

	cutoff := now.AddDate(-MinimumOwnerAge, 0, 0)
	return !dob.After(cutoff)
}
