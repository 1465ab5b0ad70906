package testing

import (
	"time"

	"github.com/google/uuid"

	"github.com/arcadia-advisors/intake/internal/domain"
)

// NewOwnerFixture returns a fully populated individual owner whose sections
// pass validation as-is. Tests blank out fields to exercise specific rules.
func NewOwnerFixture() domain.Owner {
	now := time.Now()
	return domain.Owner{
		ID:          uuid.New().String(),
		Kind:        domain.OwnerKindIndividual,
		FirstName:   "Avery",
		LastName:    "Whitfield",
		DateOfBirth: "1984-03-12",
		SSN:         "123-45-6789",
		Citizenship: "US",
		Phone:       "555-0142",
		Email:       "avery.whitfield@example.com",
		HomeAddress: domain.Address{
			Street: "18 Harbor Lane",
			City:   "Portsmouth",
			State:  "NH",
			Zip:    "03801",
		},
		EmploymentStatus:     "employed",
		EmployerName:         "Granite Analytics",
		Occupation:           "Data Engineer",
		InvestmentObjective:  "growth",
		InvestmentExperience: "good",
		RiskTolerance:        "moderate",
		TimeHorizon:          "10+",
		AnnualIncome:         "145000",
		NetWorth:             "520000",
		LiquidNetWorth:       "210000",
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// NewTrustOwnerFixture returns a populated trust owner
func NewTrustOwnerFixture() domain.Owner {
	now := time.Now()
	return domain.Owner{
		ID:                   uuid.New().String(),
		Kind:                 domain.OwnerKindTrust,
		TrustName:            "Whitfield Family Trust",
		TrustType:            "revocable",
		TrustEffectiveDate:   "2015-06-01",
		TrustEIN:             "12-3456789",
		TrustState:           "NH",
		TrustPurpose:         "estate planning",
		TrusteeName:          "Avery Whitfield",
		TrusteePhone:         "555-0188",
		TrusteeAddress:       "18 Harbor Lane, Portsmouth NH 03801",
		Phone:                "555-0188",
		Email:                "trustee@example.com",
		InvestmentObjective:  "income",
		InvestmentExperience: "extensive",
		RiskTolerance:        "conservative",
		TimeHorizon:          "5-10",
		AnnualIncome:         "0",
		NetWorth:             "1200000",
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// NewAccountFixture returns a populated account owned by the given owners.
// The first owner becomes the primary.
func NewAccountFixture(ownerIDs ...string) domain.Account {
	now := time.Now()
	account := domain.Account{
		ID:               uuid.New().String(),
		Type:             "individual",
		Description:      "Core advisory account",
		InitialDeposit:   "25000",
		MinimumDeposit:   "0",
		InvestmentAmount: "25000",
		OwnerIDs:         ownerIDs,
		AdvisoryFirm:     "Arcadia Advisors",
		AdvisorName:      "J. Marsh",
		FeeSchedule:      "standard",
		Funding:          domain.FundingLedger{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if len(ownerIDs) > 0 {
		account.PrimaryOwnerID = ownerIDs[0]
	}
	return account
}

// NewBankingEntryFixture returns a valid linked bank account
func NewBankingEntryFixture() domain.BankingEntry {
	return domain.BankingEntry{
		ID:            uuid.New().String(),
		BankName:      "Coastal Federal",
		AccountNumber: "99042817",
		RoutingNumber: "011401533",
		AccountType:   "checking",
	}
}

// NewFundingInstanceFixture returns a valid one-time deposit instance
func NewFundingInstanceFixture() domain.FundingInstance {
	return domain.FundingInstance{
		Name:   "Opening deposit",
		Amount: "5000",
		Method: "ach",
	}
}

// NewHouseholdFixture returns a household with one complete owner and one
// account owned by that owner. Completion starts empty; callers recompute.
func NewHouseholdFixture() *domain.Household {
	owner := NewOwnerFixture()
	account := NewAccountFixture(owner.ID)

	return &domain.Household{
		ID:         uuid.New().String(),
		Owners:     []domain.Owner{owner},
		Accounts:   []domain.Account{account},
		Completion: make(map[domain.CompletionKey]bool),
		UpdatedAt:  time.Now(),
	}
}
