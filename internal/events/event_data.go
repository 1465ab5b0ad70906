package events

// EventData is the interface that typed event payloads implement. It keeps
// payloads type-safe while the bus itself stays payload-agnostic.
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// EntityChangedData describes a mutation to one owner or account
type EntityChangedData struct {
	EntityID string `json:"entity_id"`
	Field    string `json:"field,omitempty"`
}

// EventType returns the event type for EntityChangedData
func (d *EntityChangedData) EventType() EventType {
	return HouseholdChanged
}

// FundingChangedData describes a funding ledger mutation
type FundingChangedData struct {
	AccountID   string `json:"account_id"`
	FundingType string `json:"funding_type"`
	InstanceID  string `json:"instance_id"`
	Action      string `json:"action"` // added, updated, removed
}

// EventType returns the event type for FundingChangedData
func (d *FundingChangedData) EventType() EventType {
	return FundingChanged
}

// NavigationMovedData describes a cursor move
type NavigationMovedData struct {
	OwnerID   string `json:"owner_id,omitempty"`
	AccountID string `json:"account_id,omitempty"`
	Section   string `json:"section,omitempty"`
	OnSummary bool   `json:"on_summary"`
}

// EventType returns the event type for NavigationMovedData
func (d *NavigationMovedData) EventType() EventType {
	return NavigationMoved
}

// SnapshotSavedData describes a persisted household snapshot
type SnapshotSavedData struct {
	HouseholdID string `json:"household_id"`
	SizeBytes   int    `json:"size_bytes"`
}

// EventType returns the event type for SnapshotSavedData
func (d *SnapshotSavedData) EventType() EventType {
	return SnapshotSaved
}
