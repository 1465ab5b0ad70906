package domain

import "fmt"

// FieldErrors maps field names to human-readable validation messages.
// An empty map means the entity is valid. Validation is total: it never
// panics and never refuses an input, it only reports.
type FieldErrors map[string]string

// Add records a message for a field, keeping the first message when the
// field already has one.
func (e FieldErrors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

// Merge copies all entries from other, keeping existing messages
func (e FieldErrors) Merge(other FieldErrors) {
	for field, message := range other {
		e.Add(field, message)
	}
}

// Valid reports whether no field failed validation
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// CapacityScope identifies which funding ledger limit was hit
type CapacityScope string

const (
	// CapacityScopeType means the per-type bucket limit was exceeded
	CapacityScopeType CapacityScope = "type"
	// CapacityScopeAccount means the account-wide total limit was exceeded
	CapacityScopeAccount CapacityScope = "account"
)

// CapacityError is returned when adding a funding instance would exceed a
// ledger limit. The add is refused and existing state is left untouched;
// it is the only refusable mutation in the engine.
type CapacityError struct {
	AccountID string
	Type      FundingType
	Scope     CapacityScope
	Limit     int
}

// Error implements the error interface
func (e *CapacityError) Error() string {
	if e.Scope == CapacityScopeType {
		return fmt.Sprintf("funding type %s already holds %d instances for account %s", e.Type, e.Limit, e.AccountID)
	}
	return fmt.Sprintf("account %s already holds %d funding instances", e.AccountID, e.Limit)
}
