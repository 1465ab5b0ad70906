// Package completion derives the boolean completion state per (entity,
// section) from current data and the shared requirement tables. Completion
// is a pure function of the household: it is recomputed eagerly after every
// mutation and never hand-edited.
package completion

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/arcadia-advisors/intake/internal/domain"
)

// Tracker computes and caches section completion for a household
type Tracker struct {
	log zerolog.Logger
}

// NewTracker creates a completion tracker
func NewTracker(log zerolog.Logger) *Tracker {
	return &Tracker{
		log: log.With().Str("component", "completion").Logger(),
	}
}

func present(value string) bool {
	return strings.TrimSpace(value) != ""
}

// IsOwnerSectionComplete reports whether every resolved required field for
// the section holds a non-blank value. Boolean disclosure fields always
// count as present: a false checkbox is an answer, not a gap.
func (t *Tracker) IsOwnerSectionComplete(o *domain.Owner, section domain.Section) bool {
	if o == nil {
		return false
	}

	for _, field := range domain.RequiredOwnerFields(o, section) {
		if domain.IsOwnerBoolField(field) {
			continue
		}
		value, ok := domain.OwnerFieldValue(o, field)
		if !ok || !present(value) {
			return false
		}
	}
	return true
}

// IsAccountSectionComplete reports section completion for an account. The
// funding section is special-cased: it is complete when the funding ledger
// holds at least one instance in any type bucket. Account setup additionally
// requires at least one linked owner.
func (t *Tracker) IsAccountSectionComplete(a *domain.Account, section domain.Section) bool {
	if a == nil {
		return false
	}

	if section == domain.SectionFunding {
		return a.Funding.Total() > 0
	}

	if section == domain.SectionAccountSetup && len(a.OwnerIDs) == 0 {
		return false
	}

	for _, field := range domain.RequiredAccountFields(a, section) {
		value, ok := domain.AccountFieldValue(a, field)
		if !ok || !present(value) {
			return false
		}
	}
	return true
}

// Recompute rebuilds the household's completion map in place. The pass is
// O(entities x required fields), cheap enough to run after every mutation
// instead of memoizing.
func (t *Tracker) Recompute(h *domain.Household) {
	if h == nil {
		return
	}

	status := make(map[domain.CompletionKey]bool, len(h.Owners)*len(domain.OwnerSectionOrder)+len(h.Accounts)*len(domain.AccountSectionOrder))

	for i := range h.Owners {
		owner := &h.Owners[i]
		for _, section := range domain.OwnerSectionOrder {
			status[domain.CompletionKey{EntityID: owner.ID, Section: section}] = t.IsOwnerSectionComplete(owner, section)
		}
	}

	for i := range h.Accounts {
		account := &h.Accounts[i]
		for _, section := range domain.AccountSectionOrder {
			status[domain.CompletionKey{EntityID: account.ID, Section: section}] = t.IsAccountSectionComplete(account, section)
		}
	}

	h.Completion = status
}

// IsSectionComplete looks up the recomputed state for one (entity, section).
// Unknown entities are never complete.
func (t *Tracker) IsSectionComplete(h *domain.Household, entityID string, section domain.Section) bool {
	if h == nil || h.Completion == nil {
		return false
	}
	return h.Completion[domain.CompletionKey{EntityID: entityID, Section: section}]
}

// AllComplete reports whether every section of every entity is complete.
// Used by the UI to enable the final submission control on the summary step.
func (t *Tracker) AllComplete(h *domain.Household) bool {
	if h == nil || h.Completion == nil {
		return false
	}
	if len(h.Owners) == 0 && len(h.Accounts) == 0 {
		return false
	}
	for _, complete := range h.Completion {
		if !complete {
			return false
		}
	}
	return true
}
