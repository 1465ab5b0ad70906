// Package validation implements the per-section field requirement sets and
// per-field format checks for owners, accounts, banking entries and funding
// instances. Every function here is total: any input, including a partially
// constructed entity, produces a FieldErrors map and never a panic or a Go
// error. An empty map means valid.
package validation

import (
	"time"

	"github.com/arcadia-advisors/intake/internal/domain"
)

// ValidateOwner checks required fields and formats for an owner across all
// of its sections. Requirements are resolved from the shared section rule
// table, so trust fields are only demanded of trust owners and employment
// fields only of employed individuals.
func ValidateOwner(o *domain.Owner) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if o == nil {
		errs.Add("owner", "owner is missing")
		return errs
	}

	for _, section := range domain.OwnerSectionOrder {
		for _, field := range domain.RequiredOwnerFields(o, section) {
			value, ok := domain.OwnerFieldValue(o, field)
			if !ok {
				continue
			}
			if isBlank(value) {
				errs.Add(field, Label(field)+" is required")
			}
		}
	}

	// Format checks apply only to populated values; missing values are
	// already reported above.
	if !isBlank(o.Email) && !ValidEmail(o.Email) {
		errs.Add("email", "Email must look like name@example.com")
	}
	if o.Kind == domain.OwnerKindIndividual {
		if !isBlank(o.SSN) && !ValidSSN(o.SSN) {
			errs.Add("ssn", "SSN must match NNN-NN-NNNN")
		}
		if !isBlank(o.DateOfBirth) && !ValidDateOfBirth(o.DateOfBirth, time.Now()) {
			errs.Add("date_of_birth", "Owner must be a valid date of birth at least 18 years ago")
		}
	}
	if o.Kind == domain.OwnerKindTrust {
		if !isBlank(o.TrustEIN) && !ValidEIN(o.TrustEIN) {
			errs.Add("trust_ein", "EIN must match NN-NNNNNNN")
		}
	}
	if !isBlank(o.AnnualIncome) && !ValidAmount(o.AnnualIncome, false) {
		errs.Add("annual_income", "Annual income must be a number")
	}
	if !isBlank(o.NetWorth) && !ValidAmount(o.NetWorth, false) {
		errs.Add("net_worth", "Net worth must be a number")
	}

	return errs
}

// ValidateAccount checks required fields, monetary formats and the
// aggregate rules for an account. An account with zero banking entries or
// zero funding instances is invalid, and any invalid nested entry bubbles
// up as a single summary message rather than re-listing nested field errors.
func ValidateAccount(a *domain.Account) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if a == nil {
		errs.Add("account", "account is missing")
		return errs
	}

	for _, section := range domain.AccountSectionOrder {
		for _, field := range domain.RequiredAccountFields(a, section) {
			value, ok := domain.AccountFieldValue(a, field)
			if !ok {
				continue
			}
			if isBlank(value) {
				errs.Add(field, Label(field)+" is required")
			}
		}
	}

	if !isBlank(a.InitialDeposit) && !ValidAmount(a.InitialDeposit, true) {
		errs.Add("initial_deposit", "Initial deposit must be a number greater than zero")
	}
	if !isBlank(a.MinimumDeposit) && !ValidAmount(a.MinimumDeposit, false) {
		errs.Add("minimum_deposit", "Minimum deposit must be a number of at least zero")
	}
	if !isBlank(a.InvestmentAmount) && !ValidAmount(a.InvestmentAmount, true) {
		errs.Add("investment_amount", "Investment amount must be a number greater than zero")
	}

	if len(a.OwnerIDs) == 0 {
		errs.Add("owner_ids", "Account needs at least one owner")
	}

	if len(a.Banking) == 0 {
		errs.Add("banking", "Account needs at least one banking entry")
	} else {
		for i := range a.Banking {
			if !ValidateBanking(&a.Banking[i]).Valid() {
				errs.Add("banking", "One or more banking entries are incomplete")
				break
			}
		}
	}

	if a.Funding.Total() == 0 {
		errs.Add("funding", "Account needs at least one funding instance")
	} else {
		invalid := false
		for _, bucket := range a.Funding {
			for i := range bucket {
				if !ValidateFunding(&bucket[i]).Valid() {
					invalid = true
					break
				}
			}
			if invalid {
				break
			}
		}
		if invalid {
			errs.Add("funding", "One or more funding instances are incomplete")
		}
	}

	return errs
}

// ValidateBanking checks one banking entry
func ValidateBanking(b *domain.BankingEntry) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if b == nil {
		errs.Add("banking", "banking entry is missing")
		return errs
	}

	if isBlank(b.BankName) {
		errs.Add("bank_name", Label("bank_name")+" is required")
	}
	if isBlank(b.AccountNumber) {
		errs.Add("account_number", Label("account_number")+" is required")
	} else if !ValidDigits(b.AccountNumber) {
		errs.Add("account_number", "Account number must contain digits only")
	}
	if isBlank(b.RoutingNumber) {
		errs.Add("routing_number", Label("routing_number")+" is required")
	} else if !ValidRoutingNumber(b.RoutingNumber) {
		errs.Add("routing_number", "Routing number must be exactly 9 digits")
	}

	return errs
}

// ValidateFunding checks one funding instance. Wire detail fields are
// required only when the funding method is "wire"; frequency is required
// only for the recurring funding types.
func ValidateFunding(f *domain.FundingInstance) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if f == nil {
		errs.Add("funding", "funding instance is missing")
		return errs
	}

	if isBlank(f.Name) {
		errs.Add("name", Label("name")+" is required")
	}
	if isBlank(f.Amount) {
		errs.Add("amount", Label("amount")+" is required")
	} else if !ValidAmount(f.Amount, true) {
		errs.Add("amount", "Amount must be a number greater than zero")
	}

	if f.Type == domain.FundingRecurringWithdrawal || f.Type == domain.FundingRecurringContribution {
		if isBlank(f.Frequency) {
			errs.Add("frequency", Label("frequency")+" is required")
		}
	}

	if f.Method == "wire" {
		if isBlank(f.BankName) {
			errs.Add("bank_name", Label("bank_name")+" is required")
		}
		if isBlank(f.BankAccountNumber) {
			errs.Add("bank_account_number", Label("bank_account_number")+" is required")
		} else if !ValidDigits(f.BankAccountNumber) {
			errs.Add("bank_account_number", "Bank account number must contain digits only")
		}
		if isBlank(f.BankRoutingNumber) {
			errs.Add("bank_routing_number", Label("bank_routing_number")+" is required")
		} else if !ValidRoutingNumber(f.BankRoutingNumber) {
			errs.Add("bank_routing_number", "Routing number must be exactly 9 digits")
		}
		if isBlank(f.SwiftBIC) {
			errs.Add("swift_bic", Label("swift_bic")+" is required")
		}
		if isBlank(f.BankAddress) {
			errs.Add("bank_address", Label("bank_address")+" is required")
		}
	}

	return errs
}
