// Package domain provides core domain models and types for the intake engine.
package domain

import "time"

// OwnerKind represents the legal kind of an account holder
type OwnerKind string

const (
	// OwnerKindIndividual represents a natural person
	OwnerKindIndividual OwnerKind = "individual"
	// OwnerKindTrust represents a trust entity
	OwnerKindTrust OwnerKind = "trust"
)

// FundingType represents one of the closed set of funding actions
type FundingType string

const (
	FundingTransferInKind        FundingType = "transfer-in-kind"
	FundingLinkedBank            FundingType = "linked-bank"
	FundingInitialTransfer       FundingType = "initial-transfer"
	FundingRecurringWithdrawal   FundingType = "recurring-withdrawal"
	FundingRecurringContribution FundingType = "recurring-contribution"
)

// FundingTypes lists all funding types in display order
var FundingTypes = []FundingType{
	FundingTransferInKind,
	FundingLinkedBank,
	FundingInitialTransfer,
	FundingRecurringWithdrawal,
	FundingRecurringContribution,
}

// FundingTypeNames maps funding types to human-readable names for display
var FundingTypeNames = map[FundingType]string{
	FundingTransferInKind:        "Transfer in Kind",
	FundingLinkedBank:            "Linked Bank Transfer",
	FundingInitialTransfer:       "Initial Transfer",
	FundingRecurringWithdrawal:   "Recurring Withdrawal",
	FundingRecurringContribution: "Recurring Contribution",
}

// Funding ledger capacity limits per account
const (
	MaxInstancesPerType    = 4
	MaxInstancesPerAccount = 20
)

// Address represents a postal address
type Address struct {
	Street string `json:"street" msgpack:"street"`
	City   string `json:"city" msgpack:"city"`
	State  string `json:"state" msgpack:"state"`
	Zip    string `json:"zip" msgpack:"zip"`
}

// TrustedContact is an optional emergency contact attached to an owner
type TrustedContact struct {
	Name         string `json:"name" msgpack:"name"`
	Phone        string `json:"phone" msgpack:"phone"`
	Email        string `json:"email" msgpack:"email"`
	Relationship string `json:"relationship" msgpack:"relationship"`
}

// Owner represents a natural person or trust entity acting as an account holder.
// The ID is immutable once created. Monetary fields are stored as unformatted
// numeric strings; currency formatting is a presentation concern.
type Owner struct {
	CreatedAt time.Time `json:"created_at" msgpack:"created_at"`
	UpdatedAt time.Time `json:"updated_at" msgpack:"updated_at"`

	ID   string    `json:"id" msgpack:"id"`
	Kind OwnerKind `json:"kind" msgpack:"kind"`

	// Individual identity
	FirstName   string `json:"first_name" msgpack:"first_name"`
	MiddleName  string `json:"middle_name" msgpack:"middle_name"`
	LastName    string `json:"last_name" msgpack:"last_name"`
	DateOfBirth string `json:"date_of_birth" msgpack:"date_of_birth"` // YYYY-MM-DD, empty for trusts
	SSN         string `json:"ssn" msgpack:"ssn"`
	Citizenship string `json:"citizenship" msgpack:"citizenship"`

	// Contact
	Phone          string  `json:"phone" msgpack:"phone"`
	Email          string  `json:"email" msgpack:"email"`
	HomeAddress    Address `json:"home_address" msgpack:"home_address"`
	MailingAddress Address `json:"mailing_address" msgpack:"mailing_address"`

	// Employment
	EmploymentStatus string `json:"employment_status" msgpack:"employment_status"`
	EmployerName     string `json:"employer_name" msgpack:"employer_name"`
	Occupation       string `json:"occupation" msgpack:"occupation"`

	// Financial profile (firm-details section)
	InvestmentObjective  string `json:"investment_objective" msgpack:"investment_objective"`
	InvestmentExperience string `json:"investment_experience" msgpack:"investment_experience"`
	RiskTolerance        string `json:"risk_tolerance" msgpack:"risk_tolerance"`
	TimeHorizon          string `json:"time_horizon" msgpack:"time_horizon"`
	AnnualIncome         string `json:"annual_income" msgpack:"annual_income"`
	NetWorth             string `json:"net_worth" msgpack:"net_worth"`
	LiquidNetWorth       string `json:"liquid_net_worth" msgpack:"liquid_net_worth"`

	// Regulatory disclosures. A false answer is a complete answer, so these
	// never gate section completion.
	EmployedByBrokerage bool `json:"employed_by_brokerage" msgpack:"employed_by_brokerage"`
	PubliclyTradedRole  bool `json:"publicly_traded_role" msgpack:"publicly_traded_role"`
	BackupWithholding   bool `json:"backup_withholding" msgpack:"backup_withholding"`

	// Trust entity fields, required only when Kind == OwnerKindTrust
	TrustName          string `json:"trust_name" msgpack:"trust_name"`
	TrustType          string `json:"trust_type" msgpack:"trust_type"`
	TrustEffectiveDate string `json:"trust_effective_date" msgpack:"trust_effective_date"`
	TrustEIN           string `json:"trust_ein" msgpack:"trust_ein"`
	TrustState         string `json:"trust_state" msgpack:"trust_state"`
	TrustPurpose       string `json:"trust_purpose" msgpack:"trust_purpose"`
	TrusteeName        string `json:"trustee_name" msgpack:"trustee_name"`
	TrusteePhone       string `json:"trustee_phone" msgpack:"trustee_phone"`
	TrusteeAddress     string `json:"trustee_address" msgpack:"trustee_address"`

	// Opaque reference returned by the attachments store; never inspected
	IDDocumentRef string `json:"id_document_ref" msgpack:"id_document_ref"`

	TrustedContact *TrustedContact `json:"trusted_contact,omitempty" msgpack:"trusted_contact,omitempty"`
}

// BankingEntry represents one bank relationship attached to an account
type BankingEntry struct {
	ID            string `json:"id" msgpack:"id"`
	BankName      string `json:"bank_name" msgpack:"bank_name"`
	AccountNumber string `json:"account_number" msgpack:"account_number"`
	RoutingNumber string `json:"routing_number" msgpack:"routing_number"`
	AccountType   string `json:"account_type" msgpack:"account_type"` // checking, savings
}

// FundingInstance represents one funding action queued against an account.
// It belongs to exactly one account and one funding type bucket.
type FundingInstance struct {
	CreatedAt time.Time `json:"created_at" msgpack:"created_at"`
	UpdatedAt time.Time `json:"updated_at" msgpack:"updated_at"`

	ID        string      `json:"id" msgpack:"id"`
	Name      string      `json:"name" msgpack:"name"`
	Type      FundingType `json:"type" msgpack:"type"`
	Amount    string      `json:"amount" msgpack:"amount"` // unformatted numeric string
	Frequency string      `json:"frequency" msgpack:"frequency"`
	Method    string      `json:"method" msgpack:"method"` // ach, wire, check

	// Wire detail fields, required only when Method == "wire"
	BankName          string `json:"bank_name" msgpack:"bank_name"`
	BankAccountNumber string `json:"bank_account_number" msgpack:"bank_account_number"`
	BankRoutingNumber string `json:"bank_routing_number" msgpack:"bank_routing_number"`
	SwiftBIC          string `json:"swift_bic" msgpack:"swift_bic"`
	BankAddress       string `json:"bank_address" msgpack:"bank_address"`
}

// FundingLedger holds funding instances bucketed by funding type
type FundingLedger map[FundingType][]FundingInstance

// Total returns the total number of instances across all type buckets
func (l FundingLedger) Total() int {
	total := 0
	for _, bucket := range l {
		total += len(bucket)
	}
	return total
}

// Account represents a single brokerage/advisory account being opened.
// Monetary fields are unformatted numeric strings, never display strings.
type Account struct {
	CreatedAt time.Time `json:"created_at" msgpack:"created_at"`
	UpdatedAt time.Time `json:"updated_at" msgpack:"updated_at"`

	ID          string `json:"id" msgpack:"id"`
	Type        string `json:"type" msgpack:"type"`
	Subtype     string `json:"subtype" msgpack:"subtype"`
	Description string `json:"description" msgpack:"description"`

	InitialDeposit   string `json:"initial_deposit" msgpack:"initial_deposit"`
	MinimumDeposit   string `json:"minimum_deposit" msgpack:"minimum_deposit"`
	InvestmentAmount string `json:"investment_amount" msgpack:"investment_amount"`

	// PrimaryOwnerID is the named primary owner used for traversal linkage.
	// It must always be a member of OwnerIDs; array position carries no meaning.
	PrimaryOwnerID string   `json:"primary_owner_id" msgpack:"primary_owner_id"`
	OwnerIDs       []string `json:"owner_ids" msgpack:"owner_ids"`
	RegistrationID string   `json:"registration_id" msgpack:"registration_id"`

	// Firm details section
	AdvisoryFirm string `json:"advisory_firm" msgpack:"advisory_firm"`
	AdvisorName  string `json:"advisor_name" msgpack:"advisor_name"`
	FeeSchedule  string `json:"fee_schedule" msgpack:"fee_schedule"`
	Custodian    string `json:"custodian" msgpack:"custodian"`

	Banking []BankingEntry `json:"banking" msgpack:"banking"`
	Funding FundingLedger  `json:"funding" msgpack:"funding"`
}

// Registration is an optional named grouping of accounts under a legal
// registration (joint tenancy, trust). Used for navigation grouping and
// display only.
type Registration struct {
	ID         string   `json:"id" msgpack:"id"`
	Name       string   `json:"name" msgpack:"name"`
	LegalType  string   `json:"legal_type" msgpack:"legal_type"`
	OwnerIDs   []string `json:"owner_ids" msgpack:"owner_ids"`
	AccountIDs []string `json:"account_ids" msgpack:"account_ids"`
}

// Cursor tracks the wizard position within a household
type Cursor struct {
	OwnerID    string  `json:"owner_id" msgpack:"owner_id"`
	AccountID  string  `json:"account_id" msgpack:"account_id"`
	Section    Section `json:"section" msgpack:"section"`
	OnSummary  bool    `json:"on_summary" msgpack:"on_summary"`
	ReviewMode bool    `json:"review_mode" msgpack:"review_mode"`
}

// CompletionKey identifies one (entity, section) completion entry
type CompletionKey struct {
	EntityID string  `json:"entity_id" msgpack:"entity_id"`
	Section  Section `json:"section" msgpack:"section"`
}

// Household is the root aggregate for one intake session: all owners and
// accounts under setup, the wizard cursor, and the derived completion map.
// Completion is recomputed on every mutation and is never hand-edited.
type Household struct {
	ID            string                 `json:"id" msgpack:"id"`
	Owners        []Owner                `json:"owners" msgpack:"owners"`
	Accounts      []Account              `json:"accounts" msgpack:"accounts"`
	Registrations []Registration         `json:"registrations" msgpack:"registrations"`
	Cursor        Cursor                 `json:"cursor" msgpack:"cursor"`
	Completion    map[CompletionKey]bool `json:"-" msgpack:"-"`
	UpdatedAt     time.Time              `json:"updated_at" msgpack:"updated_at"`
}

// OwnerByID returns the owner with the given id, or nil
func (h *Household) OwnerByID(id string) *Owner {
	for i := range h.Owners {
		if h.Owners[i].ID == id {
			return &h.Owners[i]
		}
	}
	return nil
}

// AccountByID returns the account with the given id, or nil
func (h *Household) AccountByID(id string) *Account {
	for i := range h.Accounts {
		if h.Accounts[i].ID == id {
			return &h.Accounts[i]
		}
	}
	return nil
}

// RegistrationByID returns the registration with the given id, or nil
func (h *Household) RegistrationByID(id string) *Registration {
	for i := range h.Registrations {
		if h.Registrations[i].ID == id {
			return &h.Registrations[i]
		}
	}
	return nil
}
