// Package household implements the domain model service for the intake
// engine: the single owner of the Household aggregate. All mutations go
// through here, every mutation triggers a synchronous completion recompute
// and an event, and saving is a best-effort side effect that never blocks
// or fails a mutation.
package household

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/arcadia-advisors/intake/internal/domain"
	"github.com/arcadia-advisors/intake/internal/events"
	"github.com/arcadia-advisors/intake/internal/modules/completion"
	"github.com/arcadia-advisors/intake/internal/modules/funding"
	"github.com/arcadia-advisors/intake/internal/modules/navigation"
	"github.com/arcadia-advisors/intake/internal/modules/validation"
)

// saveDebounce is how long the service waits after the last mutation before
// persisting a snapshot.
const saveDebounce = 2 * time.Second

// Store abstracts the persistence collaborator. Save is best-effort and
// Load returns nil when no snapshot exists yet.
type Store interface {
	Save(h *domain.Household) error
	Load() (*domain.Household, error)
}

// Service owns one household aggregate for one intake session. Exactly one
// logical session acts on the aggregate at a time; the mutex only shields
// the aggregate from concurrent HTTP handler calls.
type Service struct {
	mu      sync.Mutex
	h       *domain.Household
	tracker *completion.Tracker
	ledger  *funding.Ledger
	machine *navigation.Machine
	store   Store
	bus     *events.Bus
	log     zerolog.Logger

	saveTimer *time.Timer
}

// NewService creates the household service. When the store holds a snapshot
// the session resumes from it, otherwise a fresh household is created with
// the cursor at the initial traversal position.
func NewService(store Store, bus *events.Bus, log zerolog.Logger) (*Service, error) {
	s := &Service{
		tracker: completion.NewTracker(log),
		ledger:  funding.NewLedger(log),
		machine: navigation.NewMachine(log),
		store:   store,
		bus:     bus,
		log:     log.With().Str("component", "household").Logger(),
	}

	if store != nil {
		loaded, err := store.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load household snapshot: %w", err)
		}
		s.h = loaded
	}

	if s.h == nil {
		s.h = &domain.Household{
			ID:        uuid.New().String(),
			UpdatedAt: time.Now().UTC(),
		}
		s.h.Cursor = cursorForStep(s.machine.Initial(s.h), s.h.Cursor.ReviewMode)
		s.log.Info().Str("household_id", s.h.ID).Msg("Created new household")
	} else {
		s.log.Info().
			Str("household_id", s.h.ID).
			Int("owners", len(s.h.Owners)).
			Int("accounts", len(s.h.Accounts)).
			Msg("Resumed household from snapshot")
	}

	s.tracker.Recompute(s.h)
	return s, nil
}

// cursorForStep converts a traversal step into a cursor, carrying the
// orthogonal review-mode flag through unchanged.
func cursorForStep(step navigation.Step, reviewMode bool) domain.Cursor {
	return domain.Cursor{
		OwnerID:    step.OwnerID,
		AccountID:  step.AccountID,
		Section:    step.Section,
		OnSummary:  step.OnSummary,
		ReviewMode: reviewMode,
	}
}

// Snapshot returns a deep copy of the aggregate for read-only use. The
// completion map is recomputed on the copy since it is derived state and
// excluded from encoding.
func (s *Service) Snapshot() *domain.Household {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clone()
}

func (s *Service) clone() *domain.Household {
	raw, err := msgpack.Marshal(s.h)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to encode household for cloning")
		return &domain.Household{ID: s.h.ID}
	}

	var copied domain.Household
	if err := msgpack.Unmarshal(raw, &copied); err != nil {
		s.log.Error().Err(err).Msg("Failed to decode household clone")
		return &domain.Household{ID: s.h.ID}
	}

	s.tracker.Recompute(&copied)
	return &copied
}

// mutated finalizes a mutation: timestamps, recompute, event, debounced save
func (s *Service) mutated(eventType events.EventType, data interface{}) {
	s.h.UpdatedAt = time.Now().UTC()
	s.tracker.Recompute(s.h)

	if s.bus != nil {
		s.bus.Emit(eventType, "household", data)
	}

	s.scheduleSave()
}

// scheduleSave debounces snapshot persistence. Saving is fire-and-forget:
// failures are logged, never surfaced to the mutating caller.
func (s *Service) scheduleSave() {
	if s.store == nil {
		return
	}

	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}

	snapshot := s.clone()
	s.saveTimer = time.AfterFunc(saveDebounce, func() {
		if err := s.store.Save(snapshot); err != nil {
			s.log.Warn().Err(err).Msg("Failed to save household snapshot")
			return
		}
		if s.bus != nil {
			s.bus.Emit(events.SnapshotSaved, "household", &events.SnapshotSavedData{HouseholdID: snapshot.ID})
		}
	})
}

// Save persists the current snapshot immediately (used at shutdown)
func (s *Service) Save() error {
	s.mu.Lock()
	snapshot := s.clone()
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	return s.store.Save(snapshot)
}

// CreateOwner appends a new owner of the given kind with a fresh id and
// empty required fields. Creation always succeeds; completeness is derived.
func (s *Service) CreateOwner(kind domain.OwnerKind) domain.Owner {
	s.mu.Lock()
	defer s.mu.Unlock()

	if kind != domain.OwnerKindTrust {
		kind = domain.OwnerKindIndividual
	}

	now := time.Now().UTC()
	owner := domain.Owner{
		ID:        uuid.New().String(),
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.h.Owners = append(s.h.Owners, owner)

	s.mutated(events.OwnerCreated, &events.EntityChangedData{EntityID: owner.ID})
	return owner
}

// CreateAccount appends a new draft account with a fresh id. OwnerIDs may
// stay empty while the account is a draft; validation reports the gap
// without blocking edits.
func (s *Service) CreateAccount() domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	account := domain.Account{
		ID:        uuid.New().String(),
		Funding:   domain.FundingLedger{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.h.Accounts = append(s.h.Accounts, account)

	s.mutated(events.AccountCreated, &events.EntityChangedData{EntityID: account.ID})
	return account
}

// CreateRegistration adds a named legal grouping for accounts
func (s *Service) CreateRegistration(name, legalType string, ownerIDs []string) domain.Registration {
	s.mu.Lock()
	defer s.mu.Unlock()

	registration := domain.Registration{
		ID:        uuid.New().String(),
		Name:      name,
		LegalType: legalType,
		OwnerIDs:  append([]string(nil), ownerIDs...),
	}
	s.h.Registrations = append(s.h.Registrations, registration)

	s.mutated(events.HouseholdChanged, &events.EntityChangedData{EntityID: registration.ID})
	return registration
}

// UpdateOwnerField replaces the value of one named owner field. Mutations
// always succeed for known owner/field pairs, invalid values included;
// correctness feedback is deferred to validation and completion.
func (s *Service) UpdateOwnerField(ownerID, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner := s.h.OwnerByID(ownerID)
	if owner == nil {
		return fmt.Errorf("owner not found: %s", ownerID)
	}
	if !domain.SetOwnerField(owner, field, value) {
		return fmt.Errorf("unknown owner field: %s", field)
	}
	owner.UpdatedAt = time.Now().UTC()

	s.mutated(events.OwnerUpdated, &events.EntityChangedData{EntityID: ownerID, Field: field})
	return nil
}

// UpdateAccountField replaces the value of one named account field
func (s *Service) UpdateAccountField(accountID, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.h.AccountByID(accountID)
	if account == nil {
		return fmt.Errorf("account not found: %s", accountID)
	}
	if !domain.SetAccountField(account, field, value) {
		return fmt.Errorf("unknown account field: %s", field)
	}
	account.UpdatedAt = time.Now().UTC()

	s.mutated(events.AccountUpdated, &events.EntityChangedData{EntityID: accountID, Field: field})
	return nil
}

// SetTrustedContact attaches or replaces an owner's trusted contact
func (s *Service) SetTrustedContact(ownerID string, contact *domain.TrustedContact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner := s.h.OwnerByID(ownerID)
	if owner == nil {
		return fmt.Errorf("owner not found: %s", ownerID)
	}
	owner.TrustedContact = contact
	owner.UpdatedAt = time.Now().UTC()

	s.mutated(events.OwnerUpdated, &events.EntityChangedData{EntityID: ownerID, Field: "trusted_contact"})
	return nil
}

// SetAccountOwners replaces the owner linkage of an account. The primary
// owner is a named field: it must be one of the linked owners, and defaults
// to the first linked owner when unset or no longer a member.
func (s *Service) SetAccountOwners(accountID string, ownerIDs []string, primaryOwnerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.h.AccountByID(accountID)
	if account == nil {
		return fmt.Errorf("account not found: %s", accountID)
	}

	linked := make([]string, 0, len(ownerIDs))
	for _, id := range ownerIDs {
		if s.h.OwnerByID(id) == nil {
			return fmt.Errorf("owner not found: %s", id)
		}
		linked = append(linked, id)
	}

	account.OwnerIDs = linked
	account.PrimaryOwnerID = resolvePrimaryOwner(linked, primaryOwnerID)
	account.UpdatedAt = time.Now().UTC()

	s.mutated(events.AccountUpdated, &events.EntityChangedData{EntityID: accountID, Field: "owner_ids"})
	return nil
}

// resolvePrimaryOwner keeps the requested primary when it is a member of
// the linked set, otherwise falls back to the first linked owner.
func resolvePrimaryOwner(ownerIDs []string, requested string) string {
	for _, id := range ownerIDs {
		if id == requested {
			return requested
		}
	}
	if len(ownerIDs) > 0 {
		return ownerIDs[0]
	}
	return ""
}

// DeleteOwner removes an owner and cascades: the id is removed from every
// account's owner list and every registration's owner list, primary owners
// are reassigned, completion entries for the owner disappear with the
// recompute, and a cursor pointing at the owner falls back to the initial
// step.
func (s *Service) DeleteOwner(ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.h.Owners {
		if s.h.Owners[i].ID == ownerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("owner not found: %s", ownerID)
	}

	s.h.Owners = append(s.h.Owners[:idx], s.h.Owners[idx+1:]...)

	for i := range s.h.Accounts {
		account := &s.h.Accounts[i]
		account.OwnerIDs = removeID(account.OwnerIDs, ownerID)
		if account.PrimaryOwnerID == ownerID {
			account.PrimaryOwnerID = resolvePrimaryOwner(account.OwnerIDs, "")
		}
	}
	for i := range s.h.Registrations {
		s.h.Registrations[i].OwnerIDs = removeID(s.h.Registrations[i].OwnerIDs, ownerID)
	}

	if s.h.Cursor.OwnerID == ownerID {
		s.h.Cursor = cursorForStep(s.machine.Initial(s.h), s.h.Cursor.ReviewMode)
	}

	s.mutated(events.OwnerDeleted, &events.EntityChangedData{EntityID: ownerID})
	return nil
}

// DeleteAccount removes an account and cascades to registration lists and
// the cursor.
func (s *Service) DeleteAccount(accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.h.Accounts {
		if s.h.Accounts[i].ID == accountID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("account not found: %s", accountID)
	}

	s.h.Accounts = append(s.h.Accounts[:idx], s.h.Accounts[idx+1:]...)

	for i := range s.h.Registrations {
		s.h.Registrations[i].AccountIDs = removeID(s.h.Registrations[i].AccountIDs, accountID)
	}

	if s.h.Cursor.AccountID == accountID {
		s.h.Cursor = cursorForStep(s.machine.Initial(s.h), s.h.Cursor.ReviewMode)
	}

	s.mutated(events.AccountDeleted, &events.EntityChangedData{EntityID: accountID})
	return nil
}

func removeID(ids []string, target string) []string {
	filtered := ids[:0]
	for _, id := range ids {
		if id != target {
			filtered = append(filtered, id)
		}
	}
	return filtered
}

// AddBankingEntry appends a bank relationship to an account
func (s *Service) AddBankingEntry(accountID string, entry domain.BankingEntry) (*domain.BankingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.h.AccountByID(accountID)
	if account == nil {
		return nil, fmt.Errorf("account not found: %s", accountID)
	}

	entry.ID = uuid.New().String()
	account.Banking = append(account.Banking, entry)
	account.UpdatedAt = time.Now().UTC()

	s.mutated(events.AccountUpdated, &events.EntityChangedData{EntityID: accountID, Field: "banking"})
	return &account.Banking[len(account.Banking)-1], nil
}

// RemoveBankingEntry deletes a bank relationship by id
func (s *Service) RemoveBankingEntry(accountID, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.h.AccountByID(accountID)
	if account == nil {
		return fmt.Errorf("account not found: %s", accountID)
	}

	for i := range account.Banking {
		if account.Banking[i].ID == entryID {
			account.Banking = append(account.Banking[:i], account.Banking[i+1:]...)
			account.UpdatedAt = time.Now().UTC()
			s.mutated(events.AccountUpdated, &events.EntityChangedData{EntityID: accountID, Field: "banking"})
			return nil
		}
	}
	return fmt.Errorf("banking entry not found: %s", entryID)
}

// AddFunding queues a funding instance against an account. A CapacityError
// refuses the add and leaves all existing state untouched.
func (s *Service) AddFunding(accountID string, fundingType domain.FundingType, data domain.FundingInstance) (*domain.FundingInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.h.AccountByID(accountID)
	if account == nil {
		return nil, fmt.Errorf("account not found: %s", accountID)
	}

	instance, err := s.ledger.Add(account, fundingType, data)
	if err != nil {
		return nil, err
	}
	account.UpdatedAt = time.Now().UTC()

	s.mutated(events.FundingChanged, &events.FundingChangedData{
		AccountID:   accountID,
		FundingType: string(fundingType),
		InstanceID:  instance.ID,
		Action:      "added",
	})
	return instance, nil
}

// UpdateFunding edits an existing funding instance in place
func (s *Service) UpdateFunding(accountID string, fundingType domain.FundingType, instanceID string, data domain.FundingInstance) (*domain.FundingInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.h.AccountByID(accountID)
	if account == nil {
		return nil, fmt.Errorf("account not found: %s", accountID)
	}

	instance, err := s.ledger.Update(account, fundingType, instanceID, data)
	if err != nil {
		return nil, err
	}
	account.UpdatedAt = time.Now().UTC()

	s.mutated(events.FundingChanged, &events.FundingChangedData{
		AccountID:   accountID,
		FundingType: string(fundingType),
		InstanceID:  instanceID,
		Action:      "updated",
	})
	return instance, nil
}

// RemoveFunding deletes a funding instance by identity
func (s *Service) RemoveFunding(accountID string, fundingType domain.FundingType, instanceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.h.AccountByID(accountID)
	if account == nil {
		return fmt.Errorf("account not found: %s", accountID)
	}

	if err := s.ledger.Remove(account, fundingType, instanceID); err != nil {
		return err
	}
	account.UpdatedAt = time.Now().UTC()

	s.mutated(events.FundingChanged, &events.FundingChangedData{
		AccountID:   accountID,
		FundingType: string(fundingType),
		InstanceID:  instanceID,
		Action:      "removed",
	})
	return nil
}

// ListFunding returns the flattened funding ledger for an account
func (s *Service) ListFunding(accountID string) ([]funding.ListedInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.h.AccountByID(accountID)
	if account == nil {
		return nil, fmt.Errorf("account not found: %s", accountID)
	}
	return s.ledger.List(account), nil
}

// ValidateOwner runs the owner rule set against current data
func (s *Service) ValidateOwner(ownerID string) (domain.FieldErrors, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner := s.h.OwnerByID(ownerID)
	if owner == nil {
		return nil, fmt.Errorf("owner not found: %s", ownerID)
	}
	return validation.ValidateOwner(owner), nil
}

// ValidateAccount runs the account rule set against current data
func (s *Service) ValidateAccount(accountID string) (domain.FieldErrors, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.h.AccountByID(accountID)
	if account == nil {
		return nil, fmt.Errorf("account not found: %s", accountID)
	}
	return validation.ValidateAccount(account), nil
}

// IsSectionComplete reports the derived completion state for one section
func (s *Service) IsSectionComplete(entityID string, section domain.Section) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.IsSectionComplete(s.h, entityID, section)
}

// AllComplete reports whether the whole wizard is complete
func (s *Service) AllComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.AllComplete(s.h)
}

// Current returns the cursor's traversal step
func (s *Service) Current() navigation.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return navigation.StepForCursor(s.h.Cursor)
}

// Next advances the cursor one step. Returns false at the terminal summary.
func (s *Service) Next() (navigation.Step, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.machine.Next(s.h, navigation.StepForCursor(s.h.Cursor))
	if next == nil {
		return navigation.StepForCursor(s.h.Cursor), false
	}

	s.applyStep(*next)
	return *next, true
}

// Previous steps the cursor back. Returns false at the initial state.
func (s *Service) Previous() (navigation.Step, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.machine.Previous(s.h, navigation.StepForCursor(s.h.Cursor))
	if previous == nil {
		return navigation.StepForCursor(s.h.Cursor), false
	}

	s.applyStep(*previous)
	return *previous, true
}

// SelectOwner jumps the cursor to an owner's first section. Jumping always
// exits summary and never changes review mode.
func (s *Service) SelectOwner(ownerID string) (navigation.Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := s.machine.SelectOwner(s.h, ownerID)
	if step == nil {
		return navigation.Step{}, fmt.Errorf("owner not found: %s", ownerID)
	}

	s.applyStep(*step)
	return *step, nil
}

// SelectAccount jumps the cursor to an account's first section
func (s *Service) SelectAccount(accountID string) (navigation.Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := s.machine.SelectAccount(s.h, accountID)
	if step == nil {
		return navigation.Step{}, fmt.Errorf("account not found: %s", accountID)
	}

	s.applyStep(*step)
	return *step, nil
}

// SetReviewMode toggles the read-only display flag. Review mode is
// orthogonal to position: toggling it never moves the cursor.
func (s *Service) SetReviewMode(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.h.Cursor.ReviewMode = enabled
	s.scheduleSave()
}

// CanAdvance reports whether the current section is complete
func (s *Service) CanAdvance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.CanAdvance(s.h, navigation.StepForCursor(s.h.Cursor))
}

// applyStep moves the cursor and publishes a navigation event. Domain data
// is never touched by navigation.
func (s *Service) applyStep(step navigation.Step) {
	s.h.Cursor = cursorForStep(step, s.h.Cursor.ReviewMode)

	if s.bus != nil {
		s.bus.Emit(events.NavigationMoved, "navigation", &events.NavigationMovedData{
			OwnerID:   step.OwnerID,
			AccountID: step.AccountID,
			Section:   string(step.Section),
			OnSummary: step.OnSummary,
		})
	}

	s.scheduleSave()
}
