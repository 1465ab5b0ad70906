package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldErrors_AddKeepsFirstMessage(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("email", "Email is required")
	errs.Add("email", "Email looks wrong")

	assert.Equal(t, "Email is required", errs["email"])
	assert.False(t, errs.Valid())
}

func TestFieldErrors_Merge(t *testing.T) {
	errs := FieldErrors{"email": "Email is required"}
	errs.Merge(FieldErrors{"email": "other", "phone": "Phone is required"})

	assert.Equal(t, "Email is required", errs["email"])
	assert.Equal(t, "Phone is required", errs["phone"])
}

func TestCapacityError_Message(t *testing.T) {
	typeErr := &CapacityError{
		AccountID: "acct-1",
		Type:      FundingLinkedBank,
		Scope:     CapacityScopeType,
		Limit:     MaxInstancesPerType,
	}
	assert.Contains(t, typeErr.Error(), "linked-bank")
	assert.Contains(t, typeErr.Error(), "acct-1")

	accountErr := &CapacityError{
		AccountID: "acct-1",
		Scope:     CapacityScopeAccount,
		Limit:     MaxInstancesPerAccount,
	}
	assert.Contains(t, accountErr.Error(), "20")
}

func TestFundingLedgerTotal(t *testing.T) {
	ledger := FundingLedger{
		FundingLinkedBank:      {{ID: "a"}, {ID: "b"}},
		FundingInitialTransfer: {{ID: "c"}},
	}
	assert.Equal(t, 3, ledger.Total())
	assert.Equal(t, 0, FundingLedger{}.Total())
}
