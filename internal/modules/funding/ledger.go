// Package funding implements the bounded CRUD sub-ledger for funding
// instances attached to an account. Instances live in per-type buckets with
// a hard cap per bucket and per account; the add operation is the only
// refusable mutation in the engine.
package funding

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arcadia-advisors/intake/internal/domain"
)

// ListedInstance is one row of the flattened ledger listing, tagged with
// its type and the human-readable type name for display.
type ListedInstance struct {
	domain.FundingInstance
	TypeName string `json:"type_name"`
}

// Ledger performs funding instance operations against an account
type Ledger struct {
	log zerolog.Logger
	now func() time.Time
}

// NewLedger creates a funding ledger service
func NewLedger(log zerolog.Logger) *Ledger {
	return &Ledger{
		log: log.With().Str("component", "funding_ledger").Logger(),
		now: func() time.Time { return time.Now().UTC() },
	}
}

func validType(t domain.FundingType) bool {
	_, ok := domain.FundingTypeNames[t]
	return ok
}

// Add appends a new funding instance to the given type bucket. It returns a
// CapacityError when the bucket already holds the per-type maximum or the
// account already holds the total maximum; the ledger is left untouched on
// refusal and data is never silently dropped.
func (l *Ledger) Add(a *domain.Account, fundingType domain.FundingType, data domain.FundingInstance) (*domain.FundingInstance, error) {
	if a == nil {
		return nil, fmt.Errorf("account is nil")
	}
	if !validType(fundingType) {
		return nil, fmt.Errorf("unknown funding type: %s", fundingType)
	}

	if a.Funding == nil {
		a.Funding = domain.FundingLedger{}
	}

	if len(a.Funding[fundingType]) >= domain.MaxInstancesPerType {
		return nil, &domain.CapacityError{
			AccountID: a.ID,
			Type:      fundingType,
			Scope:     domain.CapacityScopeType,
			Limit:     domain.MaxInstancesPerType,
		}
	}
	if a.Funding.Total() >= domain.MaxInstancesPerAccount {
		return nil, &domain.CapacityError{
			AccountID: a.ID,
			Type:      fundingType,
			Scope:     domain.CapacityScopeAccount,
			Limit:     domain.MaxInstancesPerAccount,
		}
	}

	now := l.now()
	instance := data
	instance.ID = uuid.New().String()
	instance.Type = fundingType
	instance.CreatedAt = now
	instance.UpdatedAt = now

	a.Funding[fundingType] = append(a.Funding[fundingType], instance)

	l.log.Debug().
		Str("account_id", a.ID).
		Str("funding_type", string(fundingType)).
		Str("instance_id", instance.ID).
		Msg("Added funding instance")

	return &instance, nil
}

// Update replaces the editable fields of an existing instance, preserving
// its identity and CreatedAt and refreshing UpdatedAt.
func (l *Ledger) Update(a *domain.Account, fundingType domain.FundingType, instanceID string, data domain.FundingInstance) (*domain.FundingInstance, error) {
	if a == nil {
		return nil, fmt.Errorf("account is nil")
	}

	bucket := a.Funding[fundingType]
	for i := range bucket {
		if bucket[i].ID != instanceID {
			continue
		}

		updated := data
		updated.ID = bucket[i].ID
		updated.Type = fundingType
		updated.CreatedAt = bucket[i].CreatedAt
		updated.UpdatedAt = l.now()
		bucket[i] = updated
		return &bucket[i], nil
	}

	return nil, fmt.Errorf("funding instance not found: %s", instanceID)
}

// Remove deletes an instance by identity, not by position, so concurrent
// edits to other instances in the same bucket are unaffected.
func (l *Ledger) Remove(a *domain.Account, fundingType domain.FundingType, instanceID string) error {
	if a == nil {
		return fmt.Errorf("account is nil")
	}

	bucket := a.Funding[fundingType]
	for i := range bucket {
		if bucket[i].ID != instanceID {
			continue
		}

		a.Funding[fundingType] = append(bucket[:i:i], bucket[i+1:]...)
		l.log.Debug().
			Str("account_id", a.ID).
			Str("instance_id", instanceID).
			Msg("Removed funding instance")
		return nil
	}

	return fmt.Errorf("funding instance not found: %s", instanceID)
}

// List returns all funding instances for an account flattened across type
// buckets in declared type order, each tagged with its human type name.
func (l *Ledger) List(a *domain.Account) []ListedInstance {
	if a == nil {
		return nil
	}

	listed := make([]ListedInstance, 0, a.Funding.Total())
	for _, fundingType := range domain.FundingTypes {
		for _, instance := range a.Funding[fundingType] {
			listed = append(listed, ListedInstance{
				FundingInstance: instance,
				TypeName:        domain.FundingTypeNames[fundingType],
			})
		}
	}
	return listed
}
