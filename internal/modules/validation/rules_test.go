package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-advisors/intake/internal/domain"
	intaketesting "github.com/arcadia-advisors/intake/internal/testing"
)

func TestValidateOwner_CompleteIndividual(t *testing.T) {
	owner := intaketesting.NewOwnerFixture()

	errs := ValidateOwner(&owner)

	assert.True(t, errs.Valid(), "expected no errors, got %v", errs)
}

func TestValidateOwner_MissingRequiredFields(t *testing.T) {
	owner := intaketesting.NewOwnerFixture()
	owner.Email = ""
	owner.Phone = "   "
	owner.HomeAddress.City = ""

	errs := ValidateOwner(&owner)

	assert.False(t, errs.Valid())
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "phone")
	assert.Contains(t, errs, "home_city")
}

func TestValidateOwner_FormatChecksOnPopulatedValues(t *testing.T) {
	owner := intaketesting.NewOwnerFixture()
	owner.SSN = "123456789"
	owner.Email = "avery@nowhere"

	errs := ValidateOwner(&owner)

	assert.Contains(t, errs, "ssn")
	assert.Contains(t, errs, "email")
}

func TestValidateOwner_TrustRules(t *testing.T) {
	owner := intaketesting.NewTrustOwnerFixture()

	errs := ValidateOwner(&owner)
	require.True(t, errs.Valid(), "expected no errors, got %v", errs)

	// Trust owners never need individual identity fields
	assert.NotContains(t, errs, "first_name")
	assert.NotContains(t, errs, "ssn")

	owner.TrustEIN = "123456789"
	errs = ValidateOwner(&owner)
	assert.Contains(t, errs, "trust_ein")

	owner.TrustEIN = ""
	errs = ValidateOwner(&owner)
	assert.Contains(t, errs, "trust_ein")
}

func TestValidateOwner_EmploymentConditional(t *testing.T) {
	owner := intaketesting.NewOwnerFixture()
	owner.EmploymentStatus = "retired"
	owner.EmployerName = ""
	owner.Occupation = ""

	errs := ValidateOwner(&owner)
	assert.True(t, errs.Valid(), "retired owners need no employer, got %v", errs)

	owner.EmploymentStatus = "employed"
	errs = ValidateOwner(&owner)
	assert.Contains(t, errs, "employer_name")
	assert.Contains(t, errs, "occupation")
}

func TestValidateOwner_Nil(t *testing.T) {
	errs := ValidateOwner(nil)
	assert.False(t, errs.Valid())
}

func TestValidateAccount_CompleteAccount(t *testing.T) {
	owner := intaketesting.NewOwnerFixture()
	account := intaketesting.NewAccountFixture(owner.ID)
	account.Banking = []domain.BankingEntry{intaketesting.NewBankingEntryFixture()}
	account.Funding = domain.FundingLedger{
		domain.FundingInitialTransfer: {intaketesting.NewFundingInstanceFixture()},
	}

	errs := ValidateAccount(&account)

	assert.True(t, errs.Valid(), "expected no errors, got %v", errs)
}

func TestValidateAccount_EmptyBankingAndFunding(t *testing.T) {
	owner := intaketesting.NewOwnerFixture()
	account := intaketesting.NewAccountFixture(owner.ID)

	errs := ValidateAccount(&account)

	assert.Contains(t, errs, "banking")
	assert.Contains(t, errs, "funding")
}

func TestValidateAccount_NoOwners(t *testing.T) {
	account := intaketesting.NewAccountFixture()

	errs := ValidateAccount(&account)

	assert.Contains(t, errs, "owner_ids")
}

func TestValidateAccount_AmountFormats(t *testing.T) {
	owner := intaketesting.NewOwnerFixture()
	account := intaketesting.NewAccountFixture(owner.ID)
	account.InitialDeposit = "0"
	account.MinimumDeposit = "-5"
	account.InvestmentAmount = "plenty"

	errs := ValidateAccount(&account)

	assert.Contains(t, errs, "initial_deposit")
	assert.Contains(t, errs, "minimum_deposit")
	assert.Contains(t, errs, "investment_amount")
}

func TestValidateAccount_InvalidNestedEntriesBubbleAsSummary(t *testing.T) {
	owner := intaketesting.NewOwnerFixture()
	account := intaketesting.NewAccountFixture(owner.ID)

	bad := intaketesting.NewBankingEntryFixture()
	bad.RoutingNumber = "12"
	account.Banking = []domain.BankingEntry{bad}

	instance := intaketesting.NewFundingInstanceFixture()
	instance.Amount = ""
	account.Funding = domain.FundingLedger{
		domain.FundingLinkedBank: {instance},
	}

	errs := ValidateAccount(&account)

	// Nested problems surface as one message per collection, not as the
	// nested field names.
	assert.Contains(t, errs, "banking")
	assert.Contains(t, errs, "funding")
	assert.NotContains(t, errs, "routing_number")
	assert.NotContains(t, errs, "amount")
}

func TestValidateBanking(t *testing.T) {
	entry := intaketesting.NewBankingEntryFixture()
	assert.True(t, ValidateBanking(&entry).Valid())

	entry.RoutingNumber = "12345678"
	errs := ValidateBanking(&entry)
	assert.Contains(t, errs, "routing_number")

	entry = intaketesting.NewBankingEntryFixture()
	entry.AccountNumber = "99-042817"
	errs = ValidateBanking(&entry)
	assert.Contains(t, errs, "account_number")

	errs = ValidateBanking(&domain.BankingEntry{})
	assert.Contains(t, errs, "bank_name")
	assert.Contains(t, errs, "account_number")
	assert.Contains(t, errs, "routing_number")
}

func TestValidateFunding_RecurringNeedsFrequency(t *testing.T) {
	instance := intaketesting.NewFundingInstanceFixture()
	instance.Type = domain.FundingRecurringContribution

	errs := ValidateFunding(&instance)
	assert.Contains(t, errs, "frequency")

	instance.Frequency = "monthly"
	errs = ValidateFunding(&instance)
	assert.True(t, errs.Valid(), "expected no errors, got %v", errs)

	// One-time transfers never need a frequency
	instance = intaketesting.NewFundingInstanceFixture()
	instance.Type = domain.FundingInitialTransfer
	errs = ValidateFunding(&instance)
	assert.NotContains(t, errs, "frequency")
}

func TestValidateFunding_WireDetailsOnlyForWireMethod(t *testing.T) {
	instance := intaketesting.NewFundingInstanceFixture()
	instance.Method = "ach"

	errs := ValidateFunding(&instance)
	assert.NotContains(t, errs, "bank_name")
	assert.NotContains(t, errs, "swift_bic")

	instance.Method = "wire"
	errs = ValidateFunding(&instance)
	assert.Contains(t, errs, "bank_name")
	assert.Contains(t, errs, "bank_account_number")
	assert.Contains(t, errs, "bank_routing_number")
	assert.Contains(t, errs, "swift_bic")
	assert.Contains(t, errs, "bank_address")

	instance.BankName = "Coastal Federal"
	instance.BankAccountNumber = "99042817"
	instance.BankRoutingNumber = "011401533"
	instance.SwiftBIC = "CSTLUS33"
	instance.BankAddress = "1 Harbor Sq, Portsmouth NH"
	errs = ValidateFunding(&instance)
	assert.True(t, errs.Valid(), "expected no errors, got %v", errs)
}
