package testing

import (
	"sync"

	"github.com/arcadia-advisors/intake/internal/domain"
)

// MockSnapshotStore is an in-memory snapshot store for service tests.
// It implements the household Store interface.
type MockSnapshotStore struct {
	mu       sync.Mutex
	snapshot *domain.Household
	saveErr  error
	loadErr  error
	saves    int
}

// NewMockSnapshotStore creates a new mock snapshot store
func NewMockSnapshotStore() *MockSnapshotStore {
	return &MockSnapshotStore{}
}

// SetSnapshot seeds the snapshot returned by Load
func (m *MockSnapshotStore) SetSnapshot(h *domain.Household) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = h
}

// SetSaveError sets the error returned by Save
func (m *MockSnapshotStore) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// SetLoadError sets the error returned by Load
func (m *MockSnapshotStore) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// Save records the snapshot
func (m *MockSnapshotStore) Save(h *domain.Household) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snapshot = h
	m.saves++
	return nil
}

// Load returns the seeded snapshot, or nil when none was set
func (m *MockSnapshotStore) Load() (*domain.Household, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.snapshot, nil
}

// SaveCount returns how many times Save succeeded
func (m *MockSnapshotStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
