package household_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-advisors/intake/internal/domain"
	"github.com/arcadia-advisors/intake/internal/events"
	"github.com/arcadia-advisors/intake/internal/modules/household"
	intaketesting "github.com/arcadia-advisors/intake/internal/testing"
)

func newService(t *testing.T) (*household.Service, *intaketesting.MockSnapshotStore) {
	t.Helper()
	store := intaketesting.NewMockSnapshotStore()
	svc, err := household.NewService(store, events.NewBus(zerolog.Nop()), zerolog.Nop())
	require.NoError(t, err)
	return svc, store
}

func TestNewService_FreshHousehold(t *testing.T) {
	svc, _ := newService(t)

	h := svc.Snapshot()
	assert.NotEmpty(t, h.ID)
	assert.Empty(t, h.Owners)
	assert.True(t, h.Cursor.OnSummary, "empty household starts at summary")
	assert.False(t, svc.AllComplete())
}

func TestNewService_ResumesFromSnapshot(t *testing.T) {
	store := intaketesting.NewMockSnapshotStore()
	saved := intaketesting.NewHouseholdFixture()
	store.SetSnapshot(saved)

	svc, err := household.NewService(store, nil, zerolog.Nop())
	require.NoError(t, err)

	h := svc.Snapshot()
	assert.Equal(t, saved.ID, h.ID)
	require.Len(t, h.Owners, 1)

	// Completion is derived state and rebuilt on load
	assert.True(t, svc.IsSectionComplete(h.Owners[0].ID, domain.SectionOwnerDetails))
}

func TestCreateOwner(t *testing.T) {
	svc, _ := newService(t)

	owner := svc.CreateOwner(domain.OwnerKindTrust)
	assert.NotEmpty(t, owner.ID)
	assert.Equal(t, domain.OwnerKindTrust, owner.Kind)

	// Unknown kinds default to individual
	other := svc.CreateOwner(domain.OwnerKind("llc"))
	assert.Equal(t, domain.OwnerKindIndividual, other.Kind)

	h := svc.Snapshot()
	assert.Len(t, h.Owners, 2)
	assert.False(t, svc.IsSectionComplete(owner.ID, domain.SectionOwnerDetails))
}

func TestUpdateOwnerField(t *testing.T) {
	svc, _ := newService(t)
	owner := svc.CreateOwner(domain.OwnerKindIndividual)

	require.NoError(t, svc.UpdateOwnerField(owner.ID, "first_name", "Avery"))
	require.NoError(t, svc.UpdateOwnerField(owner.ID, "ssn", "not-an-ssn"))

	h := svc.Snapshot()
	stored := h.OwnerByID(owner.ID)
	assert.Equal(t, "Avery", stored.FirstName)
	assert.Equal(t, "not-an-ssn", stored.SSN, "invalid values are stored, not refused")

	errs, err := svc.ValidateOwner(owner.ID)
	require.NoError(t, err)
	assert.Contains(t, errs, "ssn")

	assert.Error(t, svc.UpdateOwnerField(owner.ID, "shoe_size", "42"))
	assert.Error(t, svc.UpdateOwnerField("ghost", "first_name", "x"))
}

func TestSectionCompletionTracksEdits(t *testing.T) {
	svc, _ := newService(t)
	fixture := intaketesting.NewOwnerFixture()
	owner := svc.CreateOwner(domain.OwnerKindIndividual)

	for _, field := range []string{
		"first_name", "last_name", "date_of_birth", "ssn", "citizenship",
		"phone", "email", "home_street", "home_city", "home_state", "home_zip",
		"employment_status", "employer_name", "occupation",
	} {
		value, ok := domain.OwnerFieldValue(&fixture, field)
		require.True(t, ok)
		require.NoError(t, svc.UpdateOwnerField(owner.ID, field, value))
	}

	assert.True(t, svc.IsSectionComplete(owner.ID, domain.SectionOwnerDetails))
	assert.False(t, svc.IsSectionComplete(owner.ID, domain.SectionFirmDetails))

	require.NoError(t, svc.UpdateOwnerField(owner.ID, "email", ""))
	assert.False(t, svc.IsSectionComplete(owner.ID, domain.SectionOwnerDetails))
}

func TestSetAccountOwners_PrimaryResolution(t *testing.T) {
	svc, _ := newService(t)
	a := svc.CreateOwner(domain.OwnerKindIndividual)
	b := svc.CreateOwner(domain.OwnerKindIndividual)
	account := svc.CreateAccount()

	// Requested primary is kept when it is a member
	require.NoError(t, svc.SetAccountOwners(account.ID, []string{a.ID, b.ID}, b.ID))
	h := svc.Snapshot()
	assert.Equal(t, b.ID, h.AccountByID(account.ID).PrimaryOwnerID)

	// Non-member primary falls back to the first linked owner
	require.NoError(t, svc.SetAccountOwners(account.ID, []string{a.ID, b.ID}, "ghost"))
	h = svc.Snapshot()
	assert.Equal(t, a.ID, h.AccountByID(account.ID).PrimaryOwnerID)

	// Unknown owners in the linkage are rejected whole
	assert.Error(t, svc.SetAccountOwners(account.ID, []string{a.ID, "ghost"}, a.ID))
}

func TestDeleteOwner_Cascades(t *testing.T) {
	svc, _ := newService(t)
	a := svc.CreateOwner(domain.OwnerKindIndividual)
	b := svc.CreateOwner(domain.OwnerKindIndividual)
	account := svc.CreateAccount()
	require.NoError(t, svc.SetAccountOwners(account.ID, []string{a.ID, b.ID}, a.ID))
	registration := svc.CreateRegistration("Joint", "jtwros", []string{a.ID, b.ID})

	require.NoError(t, svc.DeleteOwner(a.ID))

	h := svc.Snapshot()
	assert.Nil(t, h.OwnerByID(a.ID))

	stored := h.AccountByID(account.ID)
	assert.Equal(t, []string{b.ID}, stored.OwnerIDs)
	assert.Equal(t, b.ID, stored.PrimaryOwnerID, "primary reassigned to surviving owner")

	reg := h.RegistrationByID(registration.ID)
	assert.Equal(t, []string{b.ID}, reg.OwnerIDs)
}

func TestDeleteOwner_LastOwnerLeavesAccountIncomplete(t *testing.T) {
	svc, _ := newService(t)
	owner := svc.CreateOwner(domain.OwnerKindIndividual)
	account := svc.CreateAccount()
	require.NoError(t, svc.SetAccountOwners(account.ID, []string{owner.ID}, owner.ID))
	require.NoError(t, svc.UpdateAccountField(account.ID, "type", "individual"))
	require.NoError(t, svc.UpdateAccountField(account.ID, "description", "Core account"))
	require.NoError(t, svc.UpdateAccountField(account.ID, "initial_deposit", "25000"))
	require.NoError(t, svc.UpdateAccountField(account.ID, "investment_amount", "25000"))
	require.True(t, svc.IsSectionComplete(account.ID, domain.SectionAccountSetup))

	require.NoError(t, svc.DeleteOwner(owner.ID))

	h := svc.Snapshot()
	assert.Empty(t, h.AccountByID(account.ID).OwnerIDs)
	assert.False(t, svc.IsSectionComplete(account.ID, domain.SectionAccountSetup))
}

func TestDeleteOwner_CursorFallsBack(t *testing.T) {
	svc, _ := newService(t)
	a := svc.CreateOwner(domain.OwnerKindIndividual)
	b := svc.CreateOwner(domain.OwnerKindIndividual)

	_, err := svc.SelectOwner(b.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOwner(b.ID))

	current := svc.Current()
	assert.Equal(t, a.ID, current.OwnerID, "cursor falls back to initial step")
	assert.Equal(t, domain.SectionOwnerDetails, current.Section)
}

func TestDeleteAccount(t *testing.T) {
	svc, _ := newService(t)
	owner := svc.CreateOwner(domain.OwnerKindIndividual)
	account := svc.CreateAccount()
	require.NoError(t, svc.SetAccountOwners(account.ID, []string{owner.ID}, owner.ID))

	require.NoError(t, svc.DeleteAccount(account.ID))

	h := svc.Snapshot()
	assert.Nil(t, h.AccountByID(account.ID))
	assert.Error(t, svc.DeleteAccount(account.ID))
}

func TestBankingEntries(t *testing.T) {
	svc, _ := newService(t)
	account := svc.CreateAccount()

	entry, err := svc.AddBankingEntry(account.ID, intaketesting.NewBankingEntryFixture())
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)

	require.NoError(t, svc.RemoveBankingEntry(account.ID, entry.ID))
	assert.Error(t, svc.RemoveBankingEntry(account.ID, entry.ID))

	h := svc.Snapshot()
	assert.Empty(t, h.AccountByID(account.ID).Banking)
}

func TestFundingLifecycle(t *testing.T) {
	svc, _ := newService(t)
	account := svc.CreateAccount()

	assert.False(t, svc.IsSectionComplete(account.ID, domain.SectionFunding))

	instance, err := svc.AddFunding(account.ID, domain.FundingInitialTransfer, intaketesting.NewFundingInstanceFixture())
	require.NoError(t, err)

	assert.True(t, svc.IsSectionComplete(account.ID, domain.SectionFunding))

	listed, err := svc.ListFunding(account.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Initial Transfer", listed[0].TypeName)

	updated, err := svc.UpdateFunding(account.ID, domain.FundingInitialTransfer, instance.ID, domain.FundingInstance{
		Name:   "Larger transfer",
		Amount: "9000",
	})
	require.NoError(t, err)
	assert.Equal(t, instance.ID, updated.ID)

	require.NoError(t, svc.RemoveFunding(account.ID, domain.FundingInitialTransfer, instance.ID))
	assert.False(t, svc.IsSectionComplete(account.ID, domain.SectionFunding))
}

func TestAddFunding_CapacityRefusal(t *testing.T) {
	svc, _ := newService(t)
	account := svc.CreateAccount()

	for i := 0; i < domain.MaxInstancesPerType; i++ {
		_, err := svc.AddFunding(account.ID, domain.FundingLinkedBank, intaketesting.NewFundingInstanceFixture())
		require.NoError(t, err)
	}

	_, err := svc.AddFunding(account.ID, domain.FundingLinkedBank, intaketesting.NewFundingInstanceFixture())
	var capErr *domain.CapacityError
	require.ErrorAs(t, err, &capErr)

	listed, err := svc.ListFunding(account.ID)
	require.NoError(t, err)
	assert.Len(t, listed, domain.MaxInstancesPerType)
}

func TestNavigation(t *testing.T) {
	svc, _ := newService(t)
	a := svc.CreateOwner(domain.OwnerKindIndividual)
	b := svc.CreateOwner(domain.OwnerKindIndividual)
	account := svc.CreateAccount()
	require.NoError(t, svc.SetAccountOwners(account.ID, []string{a.ID, b.ID}, a.ID))

	// Creating the first owner moved nothing; position starts at the
	// initial step once entities exist.
	_, err := svc.SelectOwner(a.ID)
	require.NoError(t, err)

	current := svc.Current()
	assert.Equal(t, a.ID, current.OwnerID)

	_, moved := svc.Previous()
	assert.False(t, moved, "previous at initial stays put")

	steps := 0
	for {
		_, moved := svc.Next()
		if !moved {
			break
		}
		steps++
	}
	assert.Equal(t, 7, steps)
	assert.True(t, svc.Current().OnSummary)

	step, moved := svc.Previous()
	assert.True(t, moved)
	assert.Equal(t, account.ID, step.AccountID)
	assert.Equal(t, domain.SectionFirmDetails, step.Section)
}

func TestReviewModeOrthogonal(t *testing.T) {
	svc, _ := newService(t)
	owner := svc.CreateOwner(domain.OwnerKindIndividual)

	_, err := svc.SelectOwner(owner.ID)
	require.NoError(t, err)
	before := svc.Snapshot().Cursor

	svc.SetReviewMode(true)

	after := svc.Snapshot().Cursor
	assert.True(t, after.ReviewMode)
	assert.Equal(t, before.OwnerID, after.OwnerID)
	assert.Equal(t, before.Section, after.Section)

	// Navigating keeps review mode on
	_, moved := svc.Next()
	require.True(t, moved)
	assert.True(t, svc.Snapshot().Cursor.ReviewMode)
}

func TestCanAdvance(t *testing.T) {
	svc, _ := newService(t)
	fixture := intaketesting.NewOwnerFixture()
	owner := svc.CreateOwner(domain.OwnerKindIndividual)
	_, err := svc.SelectOwner(owner.ID)
	require.NoError(t, err)

	assert.False(t, svc.CanAdvance())

	for _, field := range []string{
		"first_name", "last_name", "date_of_birth", "ssn", "citizenship",
		"phone", "email", "home_street", "home_city", "home_state", "home_zip",
		"employment_status", "employer_name", "occupation",
	} {
		value, ok := domain.OwnerFieldValue(&fixture, field)
		require.True(t, ok)
		require.NoError(t, svc.UpdateOwnerField(owner.ID, field, value))
	}

	assert.True(t, svc.CanAdvance())
}

func TestSave_Immediate(t *testing.T) {
	svc, store := newService(t)
	svc.CreateOwner(domain.OwnerKindIndividual)

	require.NoError(t, svc.Save())
	assert.GreaterOrEqual(t, store.SaveCount(), 1)
}

func TestSetTrustedContact(t *testing.T) {
	svc, _ := newService(t)
	owner := svc.CreateOwner(domain.OwnerKindIndividual)

	contact := &domain.TrustedContact{Name: "Jordan Whitfield", Phone: "555-0199", Relationship: "sibling"}
	require.NoError(t, svc.SetTrustedContact(owner.ID, contact))

	h := svc.Snapshot()
	stored := h.OwnerByID(owner.ID)
	require.NotNil(t, stored.TrustedContact)
	assert.Equal(t, "Jordan Whitfield", stored.TrustedContact.Name)

	require.NoError(t, svc.SetTrustedContact(owner.ID, nil))
	h = svc.Snapshot()
	assert.Nil(t, h.OwnerByID(owner.ID).TrustedContact)
}

func TestEventsEmitted(t *testing.T) {
	store := intaketesting.NewMockSnapshotStore()
	bus := events.NewBus(zerolog.Nop())

	var seen []events.EventType
	for _, eventType := range []events.EventType{
		events.OwnerCreated, events.OwnerDeleted, events.FundingChanged, events.NavigationMoved,
	} {
		et := eventType
		bus.Subscribe(et, func(e *events.Event) {
			seen = append(seen, e.Type)
		})
	}

	svc, err := household.NewService(store, bus, zerolog.Nop())
	require.NoError(t, err)

	owner := svc.CreateOwner(domain.OwnerKindIndividual)
	account := svc.CreateAccount()
	_, err = svc.AddFunding(account.ID, domain.FundingLinkedBank, intaketesting.NewFundingInstanceFixture())
	require.NoError(t, err)
	_, err = svc.SelectOwner(owner.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteOwner(owner.ID))

	assert.Contains(t, seen, events.OwnerCreated)
	assert.Contains(t, seen, events.FundingChanged)
	assert.Contains(t, seen, events.NavigationMoved)
	assert.Contains(t, seen, events.OwnerDeleted)
}
