package engine

import (
	"sync"
	"time"
)

// MockTimeProvider provides a controllable time source for testing
// When Step is non-zero every Now call advances the clock by Step after reading it
type MockTimeProvider struct {
	mu          sync.Mutex
	currentTime time.Time
	step        time.Duration
}

// NewMockTimeProvider creates a new mock time provider with the given start time
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{
		currentTime: startTime,
	}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.currentTime
	m.currentTime = m.currentTime.Add(m.step)
	return now
}

// SetStep sets the automatic advance applied after each Now call
func (m *MockTimeProvider) SetStep(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.step = d
}

// Advance advances the current time by the given duration, negative values rewind it
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}
