package validation

// fieldLabels maps internal field names to human-readable labels for error
// display. Purely cosmetic: labels never affect validation outcomes.
var fieldLabels = map[string]string{
	"first_name":            "First name",
	"middle_name":           "Middle name",
	"last_name":             "Last name",
	"date_of_birth":         "Date of birth",
	"ssn":                   "SSN",
	"citizenship":           "Citizenship",
	"phone":                 "Phone number",
	"email":                 "Email",
	"home_street":           "Home street",
	"home_city":             "Home city",
	"home_state":            "Home state",
	"home_zip":              "Home ZIP code",
	"mailing_street":        "Mailing street",
	"mailing_city":          "Mailing city",
	"mailing_state":         "Mailing state",
	"mailing_zip":           "Mailing ZIP code",
	"employment_status":     "Employment status",
	"employer_name":         "Employer name",
	"occupation":            "Occupation",
	"investment_objective":  "Investment objective",
	"investment_experience": "Investment experience",
	"risk_tolerance":        "Risk tolerance",
	"time_horizon":          "Time horizon",
	"annual_income":         "Annual income",
	"net_worth":             "Net worth",
	"liquid_net_worth":      "Liquid net worth",
	"trust_name":            "Trust name",
	"trust_type":            "Trust type",
	"trust_effective_date":  "Trust effective date",
	"trust_ein":             "Trust EIN",
	"trust_state":           "Trust state",
	"trust_purpose":         "Trust purpose",
	"trustee_name":          "Trustee name",
	"trustee_phone":         "Trustee phone",
	"trustee_address":       "Trustee address",
	"id_document_ref":       "ID document",
	"type":                  "Account type",
	"subtype":               "Account subtype",
	"description":           "Description",
	"initial_deposit":       "Initial deposit",
	"minimum_deposit":       "Minimum deposit",
	"investment_amount":     "Investment amount",
	"advisory_firm":         "Advisory firm",
	"advisor_name":          "Advisor name",
	"fee_schedule":          "Fee schedule",
	"custodian":             "Custodian",
	"owner_ids":             "Account owners",
	"name":                  "Name",
	"amount":                "Amount",
	"frequency":             "Frequency",
	"bank_name":             "Bank name",
	"account_number":        "Account number",
	"routing_number":        "Routing number",
	"bank_account_number":   "Bank account number",
	"bank_routing_number":   "Bank routing number",
	"swift_bic":             "SWIFT/BIC",
	"bank_address":          "Bank address",
}

// Label returns the human-readable label for a field name, falling back to
// the raw name when no label is registered.
func Label(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}
