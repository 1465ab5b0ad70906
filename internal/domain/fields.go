package domain

import "strconv"

// FieldAccessor pairs a getter and setter for one string-backed field.
// The registry replaces the untyped field bags of the original front ends:
// every field name resolves to a typed struct member, and unknown names are
// rejected instead of silently creating new keys.
type FieldAccessor[T any] struct {
	Get func(*T) string
	Set func(*T, string)
}

// OwnerFields maps field names to typed accessors on Owner
var OwnerFields = map[string]FieldAccessor[Owner]{
	"first_name":           {Get: func(o *Owner) string { return o.FirstName }, Set: func(o *Owner, v string) { o.FirstName = v }},
	"middle_name":          {Get: func(o *Owner) string { return o.MiddleName }, Set: func(o *Owner, v string) { o.MiddleName = v }},
	"last_name":            {Get: func(o *Owner) string { return o.LastName }, Set: func(o *Owner, v string) { o.LastName = v }},
	"date_of_birth":        {Get: func(o *Owner) string { return o.DateOfBirth }, Set: func(o *Owner, v string) { o.DateOfBirth = v }},
	"ssn":                  {Get: func(o *Owner) string { return o.SSN }, Set: func(o *Owner, v string) { o.SSN = v }},
	"citizenship":          {Get: func(o *Owner) string { return o.Citizenship }, Set: func(o *Owner, v string) { o.Citizenship = v }},
	"phone":                {Get: func(o *Owner) string { return o.Phone }, Set: func(o *Owner, v string) { o.Phone = v }},
	"email":                {Get: func(o *Owner) string { return o.Email }, Set: func(o *Owner, v string) { o.Email = v }},
	"home_street":          {Get: func(o *Owner) string { return o.HomeAddress.Street }, Set: func(o *Owner, v string) { o.HomeAddress.Street = v }},
	"home_city":            {Get: func(o *Owner) string { return o.HomeAddress.City }, Set: func(o *Owner, v string) { o.HomeAddress.City = v }},
	"home_state":           {Get: func(o *Owner) string { return o.HomeAddress.State }, Set: func(o *Owner, v string) { o.HomeAddress.State = v }},
	"home_zip":             {Get: func(o *Owner) string { return o.HomeAddress.Zip }, Set: func(o *Owner, v string) { o.HomeAddress.Zip = v }},
	"mailing_street":       {Get: func(o *Owner) string { return o.MailingAddress.Street }, Set: func(o *Owner, v string) { o.MailingAddress.Street = v }},
	"mailing_city":         {Get: func(o *Owner) string { return o.MailingAddress.City }, Set: func(o *Owner, v string) { o.MailingAddress.City = v }},
	"mailing_state":        {Get: func(o *Owner) string { return o.MailingAddress.State }, Set: func(o *Owner, v string) { o.MailingAddress.State = v }},
	"mailing_zip":          {Get: func(o *Owner) string { return o.MailingAddress.Zip }, Set: func(o *Owner, v string) { o.MailingAddress.Zip = v }},
	"employment_status":    {Get: func(o *Owner) string { return o.EmploymentStatus }, Set: func(o *Owner, v string) { o.EmploymentStatus = v }},
	"employer_name":        {Get: func(o *Owner) string { return o.EmployerName }, Set: func(o *Owner, v string) { o.EmployerName = v }},
	"occupation":           {Get: func(o *Owner) string { return o.Occupation }, Set: func(o *Owner, v string) { o.Occupation = v }},
	"investment_objective": {Get: func(o *Owner) string { return o.InvestmentObjective }, Set: func(o *Owner, v string) { o.InvestmentObjective = v }},
	"investment_experience": {Get: func(o *Owner) string { return o.InvestmentExperience }, Set: func(o *Owner, v string) {
		o.InvestmentExperience = v
	}},
	"risk_tolerance":       {Get: func(o *Owner) string { return o.RiskTolerance }, Set: func(o *Owner, v string) { o.RiskTolerance = v }},
	"time_horizon":         {Get: func(o *Owner) string { return o.TimeHorizon }, Set: func(o *Owner, v string) { o.TimeHorizon = v }},
	"annual_income":        {Get: func(o *Owner) string { return o.AnnualIncome }, Set: func(o *Owner, v string) { o.AnnualIncome = v }},
	"net_worth":            {Get: func(o *Owner) string { return o.NetWorth }, Set: func(o *Owner, v string) { o.NetWorth = v }},
	"liquid_net_worth":     {Get: func(o *Owner) string { return o.LiquidNetWorth }, Set: func(o *Owner, v string) { o.LiquidNetWorth = v }},
	"trust_name":           {Get: func(o *Owner) string { return o.TrustName }, Set: func(o *Owner, v string) { o.TrustName = v }},
	"trust_type":           {Get: func(o *Owner) string { return o.TrustType }, Set: func(o *Owner, v string) { o.TrustType = v }},
	"trust_effective_date": {Get: func(o *Owner) string { return o.TrustEffectiveDate }, Set: func(o *Owner, v string) { o.TrustEffectiveDate = v }},
	"trust_ein":            {Get: func(o *Owner) string { return o.TrustEIN }, Set: func(o *Owner, v string) { o.TrustEIN = v }},
	"trust_state":          {Get: func(o *Owner) string { return o.TrustState }, Set: func(o *Owner, v string) { o.TrustState = v }},
	"trust_purpose":        {Get: func(o *Owner) string { return o.TrustPurpose }, Set: func(o *Owner, v string) { o.TrustPurpose = v }},
	"trustee_name":         {Get: func(o *Owner) string { return o.TrusteeName }, Set: func(o *Owner, v string) { o.TrusteeName = v }},
	"trustee_phone":        {Get: func(o *Owner) string { return o.TrusteePhone }, Set: func(o *Owner, v string) { o.TrusteePhone = v }},
	"trustee_address":      {Get: func(o *Owner) string { return o.TrusteeAddress }, Set: func(o *Owner, v string) { o.TrusteeAddress = v }},
	"id_document_ref":      {Get: func(o *Owner) string { return o.IDDocumentRef }, Set: func(o *Owner, v string) { o.IDDocumentRef = v }},
}

// ownerBoolFields maps field names for boolean disclosure answers. Boolean
// fields always count as present for completion purposes.
var ownerBoolFields = map[string]func(*Owner, bool){
	"employed_by_brokerage": func(o *Owner, v bool) { o.EmployedByBrokerage = v },
	"publicly_traded_role":  func(o *Owner, v bool) { o.PubliclyTradedRole = v },
	"backup_withholding":    func(o *Owner, v bool) { o.BackupWithholding = v },
}

// AccountFields maps field names to typed accessors on Account
var AccountFields = map[string]FieldAccessor[Account]{
	"type":              {Get: func(a *Account) string { return a.Type }, Set: func(a *Account, v string) { a.Type = v }},
	"subtype":           {Get: func(a *Account) string { return a.Subtype }, Set: func(a *Account, v string) { a.Subtype = v }},
	"description":       {Get: func(a *Account) string { return a.Description }, Set: func(a *Account, v string) { a.Description = v }},
	"initial_deposit":   {Get: func(a *Account) string { return a.InitialDeposit }, Set: func(a *Account, v string) { a.InitialDeposit = v }},
	"minimum_deposit":   {Get: func(a *Account) string { return a.MinimumDeposit }, Set: func(a *Account, v string) { a.MinimumDeposit = v }},
	"investment_amount": {Get: func(a *Account) string { return a.InvestmentAmount }, Set: func(a *Account, v string) { a.InvestmentAmount = v }},
	"advisory_firm":     {Get: func(a *Account) string { return a.AdvisoryFirm }, Set: func(a *Account, v string) { a.AdvisoryFirm = v }},
	"advisor_name":      {Get: func(a *Account) string { return a.AdvisorName }, Set: func(a *Account, v string) { a.AdvisorName = v }},
	"fee_schedule":      {Get: func(a *Account) string { return a.FeeSchedule }, Set: func(a *Account, v string) { a.FeeSchedule = v }},
	"custodian":         {Get: func(a *Account) string { return a.Custodian }, Set: func(a *Account, v string) { a.Custodian = v }},
}

// SetOwnerField sets a named field on an owner. Returns false when the
// field name is unknown; the owner is unchanged in that case.
func SetOwnerField(o *Owner, field, value string) bool {
	if acc, ok := OwnerFields[field]; ok {
		acc.Set(o, value)
		return true
	}
	if set, ok := ownerBoolFields[field]; ok {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			parsed = false
		}
		set(o, parsed)
		return true
	}
	return false
}

// OwnerFieldValue reads a named string field from an owner
func OwnerFieldValue(o *Owner, field string) (string, bool) {
	acc, ok := OwnerFields[field]
	if !ok {
		return "", false
	}
	return acc.Get(o), true
}

// SetAccountField sets a named field on an account. Returns false when the
// field name is unknown; the account is unchanged in that case.
func SetAccountField(a *Account, field, value string) bool {
	acc, ok := AccountFields[field]
	if !ok {
		return false
	}
	acc.Set(a, value)
	return true
}

// AccountFieldValue reads a named string field from an account
func AccountFieldValue(a *Account, field string) (string, bool) {
	acc, ok := AccountFields[field]
	if !ok {
		return "", false
	}
	return acc.Get(a), true
}

// IsOwnerBoolField reports whether the field name is a boolean disclosure
func IsOwnerBoolField(field string) bool {
	_, ok := ownerBoolFields[field]
	return ok
}
