// Package navigation computes the ordered wizard traversal across all
// entities and sections and answers next/previous/can-advance queries.
// The machine is pure: no transition mutates domain data, and the cursor is
// applied by the household service, not here.
package navigation

import (
	"github.com/rs/zerolog"

	"github.com/arcadia-advisors/intake/internal/domain"
)

// Step is one position in the traversal: a section of one owner or account,
// or the terminal summary screen. The review-mode flag is orthogonal display
// state and deliberately not part of a step.
type Step struct {
	OwnerID   string         `json:"owner_id,omitempty"`
	AccountID string         `json:"account_id,omitempty"`
	Section   domain.Section `json:"section,omitempty"`
	OnSummary bool           `json:"on_summary,omitempty"`
}

// SummaryStep is the terminal traversal position. Entering it clears the
// current owner/account focus.
var SummaryStep = Step{OnSummary: true}

// Machine answers traversal queries over a household
type Machine struct {
	log zerolog.Logger
}

// NewMachine creates a navigation machine
func NewMachine(log zerolog.Logger) *Machine {
	return &Machine{
		log: log.With().Str("component", "navigation").Logger(),
	}
}

// orderedAccounts returns the accounts in traversal order: grouped by
// registration (each registration's accounts in its declared order) when
// registrations exist, followed by any ungrouped accounts in household
// order. Without registrations this is simply the household account order.
func orderedAccounts(h *domain.Household) []*domain.Account {
	ordered := make([]*domain.Account, 0, len(h.Accounts))
	seen := make(map[string]bool, len(h.Accounts))

	for i := range h.Registrations {
		for _, accountID := range h.Registrations[i].AccountIDs {
			account := h.AccountByID(accountID)
			if account == nil || seen[account.ID] {
				continue
			}
			seen[account.ID] = true
			ordered = append(ordered, account)
		}
	}

	for i := range h.Accounts {
		if seen[h.Accounts[i].ID] {
			continue
		}
		ordered = append(ordered, &h.Accounts[i])
	}

	return ordered
}

// Steps builds the full traversal: every owner through its section list in
// household order, then every account through its section list, then the
// terminal summary. There is no step after summary.
func (m *Machine) Steps(h *domain.Household) []Step {
	if h == nil {
		return []Step{SummaryStep}
	}

	steps := make([]Step, 0, len(h.Owners)*len(domain.OwnerSectionOrder)+len(h.Accounts)*len(domain.AccountSectionOrder)+1)

	for i := range h.Owners {
		for _, section := range domain.OwnerSectionOrder {
			steps = append(steps, Step{OwnerID: h.Owners[i].ID, Section: section})
		}
	}

	for _, account := range orderedAccounts(h) {
		for _, section := range domain.AccountSectionOrder {
			steps = append(steps, Step{AccountID: account.ID, Section: section})
		}
	}

	steps = append(steps, SummaryStep)
	return steps
}

// Initial returns the first traversal position, or the summary step for an
// empty household.
func (m *Machine) Initial(h *domain.Household) Step {
	return m.Steps(h)[0]
}

func (m *Machine) indexOf(steps []Step, current Step) int {
	for i, step := range steps {
		if step == current {
			return i
		}
	}
	return -1
}

// Next advances one section within the current entity, crossing to the next
// entity's first section at an entity boundary and to summary after the
// last account's last section. Returns nil only at summary (terminal), or
// when the current step no longer exists in the traversal.
func (m *Machine) Next(h *domain.Household, current Step) *Step {
	if current.OnSummary {
		return nil
	}

	steps := m.Steps(h)
	idx := m.indexOf(steps, current)
	if idx < 0 || idx+1 >= len(steps) {
		return nil
	}

	next := steps[idx+1]
	return &next
}

// Previous is the symmetric inverse of Next. Returns nil only at the very
// first owner's first section (the initial state). Stepping back from
// summary restores focus to the last account's last section.
func (m *Machine) Previous(h *domain.Household, current Step) *Step {
	steps := m.Steps(h)

	idx := m.indexOf(steps, current)
	if idx <= 0 {
		return nil
	}

	previous := steps[idx-1]
	return &previous
}

// SelectOwner jumps directly to an owner's first section. Returns nil for
// an unknown owner.
func (m *Machine) SelectOwner(h *domain.Household, ownerID string) *Step {
	if h == nil || h.OwnerByID(ownerID) == nil {
		return nil
	}
	return &Step{OwnerID: ownerID, Section: domain.OwnerSectionOrder[0]}
}

// SelectAccount jumps directly to an account's first section. Returns nil
// for an unknown account.
func (m *Machine) SelectAccount(h *domain.Household, accountID string) *Step {
	if h == nil || h.AccountByID(accountID) == nil {
		return nil
	}
	return &Step{AccountID: accountID, Section: domain.AccountSectionOrder[0]}
}

// CanAdvance reports whether the current step's section is complete, which
// is what the UI uses to enable the next-step control. The summary step
// never advances.
func (m *Machine) CanAdvance(h *domain.Household, current Step) bool {
	if h == nil || current.OnSummary {
		return false
	}

	entityID := current.OwnerID
	if entityID == "" {
		entityID = current.AccountID
	}
	return h.Completion[domain.CompletionKey{EntityID: entityID, Section: current.Section}]
}

// StepForCursor converts a persisted cursor back into a traversal step
func StepForCursor(c domain.Cursor) Step {
	if c.OnSummary {
		return SummaryStep
	}
	return Step{OwnerID: c.OwnerID, AccountID: c.AccountID, Section: c.Section}
}
