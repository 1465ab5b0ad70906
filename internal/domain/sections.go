package domain

// Section represents one named step of the wizard, scoped to either an
// owner or an account.
type Section string

const (
	SectionOwnerDetails Section = "owner-details"
	SectionAccountSetup Section = "account-setup"
	SectionFunding      Section = "funding"
	SectionFirmDetails  Section = "firm-details"
)

// OwnerSectionOrder is the declared section order for owner entities
var OwnerSectionOrder = []Section{SectionOwnerDetails, SectionFirmDetails}

// AccountSectionOrder is the declared section order for account entities
var AccountSectionOrder = []Section{SectionAccountSetup, SectionFunding, SectionFirmDetails}

// ownerRule is one required-field entry for an owner section. When is nil
// for unconditional requirements.
type ownerRule struct {
	Field string
	When  func(*Owner) bool
}

// accountRule is one required-field entry for an account section
type accountRule struct {
	Field string
	When  func(*Account) bool
}

func ownerIsIndividual(o *Owner) bool { return o.Kind == OwnerKindIndividual }
func ownerIsTrust(o *Owner) bool      { return o.Kind == OwnerKindTrust }
func ownerIsEmployed(o *Owner) bool {
	return o.Kind == OwnerKindIndividual && o.EmploymentStatus == "employed"
}

// ownerSectionRules is the single source of truth for owner required fields.
// The three front ends used to carry divergent copies of these lists; every
// consumer (validation, completion, navigation gating) reads this table.
var ownerSectionRules = map[Section][]ownerRule{
	SectionOwnerDetails: {
		{Field: "phone"},
		{Field: "email"},
		{Field: "first_name", When: ownerIsIndividual},
		{Field: "last_name", When: ownerIsIndividual},
		{Field: "date_of_birth", When: ownerIsIndividual},
		{Field: "ssn", When: ownerIsIndividual},
		{Field: "citizenship", When: ownerIsIndividual},
		{Field: "home_street", When: ownerIsIndividual},
		{Field: "home_city", When: ownerIsIndividual},
		{Field: "home_state", When: ownerIsIndividual},
		{Field: "home_zip", When: ownerIsIndividual},
		{Field: "employment_status", When: ownerIsIndividual},
		{Field: "employer_name", When: ownerIsEmployed},
		{Field: "occupation", When: ownerIsEmployed},
		{Field: "trust_name", When: ownerIsTrust},
		{Field: "trust_type", When: ownerIsTrust},
		{Field: "trust_effective_date", When: ownerIsTrust},
		{Field: "trust_ein", When: ownerIsTrust},
		{Field: "trust_state", When: ownerIsTrust},
		{Field: "trust_purpose", When: ownerIsTrust},
		{Field: "trustee_name", When: ownerIsTrust},
		{Field: "trustee_phone", When: ownerIsTrust},
		{Field: "trustee_address", When: ownerIsTrust},
	},
	SectionFirmDetails: {
		{Field: "investment_objective"},
		{Field: "investment_experience"},
		{Field: "risk_tolerance"},
		{Field: "time_horizon"},
		{Field: "annual_income"},
		{Field: "net_worth"},
	},
}

// accountSectionRules is the single source of truth for account required
// fields. The funding section has no field rules: it is complete when the
// funding ledger holds at least one instance.
var accountSectionRules = map[Section][]accountRule{
	SectionAccountSetup: {
		{Field: "type"},
		{Field: "description"},
		{Field: "initial_deposit"},
		{Field: "investment_amount"},
	},
	SectionFunding: {},
	SectionFirmDetails: {
		{Field: "advisory_firm"},
		{Field: "advisor_name"},
		{Field: "fee_schedule"},
	},
}

// RequiredOwnerFields resolves the conditional requirement table for one
// owner section against a concrete owner.
func RequiredOwnerFields(o *Owner, section Section) []string {
	rules, ok := ownerSectionRules[section]
	if !ok {
		return nil
	}

	fields := make([]string, 0, len(rules))
	for _, rule := range rules {
		if rule.When == nil || rule.When(o) {
			fields = append(fields, rule.Field)
		}
	}
	return fields
}

// RequiredAccountFields resolves the conditional requirement table for one
// account section against a concrete account.
func RequiredAccountFields(a *Account, section Section) []string {
	rules, ok := accountSectionRules[section]
	if !ok {
		return nil
	}

	fields := make([]string, 0, len(rules))
	for _, rule := range rules {
		if rule.When == nil || rule.When(a) {
			fields = append(fields, rule.Field)
		}
	}
	return fields
}
