package events

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_EmitDeliversToSubscribers(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	var received *Event
	bus.Subscribe(OwnerCreated, func(e *Event) {
		received = e
	})

	bus.Emit(OwnerCreated, "household", &EntityChangedData{EntityID: "o-1"})

	require.NotNil(t, received)
	assert.Equal(t, OwnerCreated, received.Type)
	assert.Equal(t, "household", received.Module)
	assert.False(t, received.Timestamp.IsZero())

	data, ok := received.Data.(*EntityChangedData)
	require.True(t, ok)
	assert.Equal(t, "o-1", data.EntityID)
}

func TestBus_OnlyMatchingTypeFires(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	fired := map[EventType]int{}
	bus.Subscribe(OwnerCreated, func(e *Event) { fired[OwnerCreated]++ })
	bus.Subscribe(AccountCreated, func(e *Event) { fired[AccountCreated]++ })

	bus.Emit(OwnerCreated, "household", nil)

	assert.Equal(t, 1, fired[OwnerCreated])
	assert.Zero(t, fired[AccountCreated])
}

func TestBus_MultipleHandlersRunInOrder(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	var order []int
	bus.Subscribe(FundingChanged, func(e *Event) { order = append(order, 1) })
	bus.Subscribe(FundingChanged, func(e *Event) { order = append(order, 2) })
	bus.Subscribe(FundingChanged, func(e *Event) { order = append(order, 3) })

	bus.Emit(FundingChanged, "household", nil)

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestBus_EmitWithNoSubscribers(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	// No handlers registered; emitting must not panic
	bus.Emit(SnapshotSaved, "household", &SnapshotSavedData{HouseholdID: "h-1"})
}
