package audio

import "sync"

// MockPlayer implements Player for testing. It records the paths it was
// asked to play and can be configured to fail.
type MockPlayer struct {
	mu     sync.Mutex
	played []string
	closed bool

	// Err, if set, is returned from every Play call.
	Err error

	// OnPlay, if set, is invoked with each path before Play returns.
	OnPlay func(path string)
}

// NewMockPlayer returns an empty mock player.
func NewMockPlayer() *MockPlayer {
	return &MockPlayer{}
}

// Play records path and returns the configured error, if any.
func (m *MockPlayer) Play(path string) error {
	m.mu.Lock()
	m.played = append(m.played, path)
	cb := m.OnPlay
	m.mu.Unlock()

	if cb != nil {
		cb(path)
	}
	return m.Err
}

// Played returns a copy of the recorded paths.
func (m *MockPlayer) Played() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.played))
	copy(out, m.played)
	return out
}

// PlayCount reports how many times Play was called.
func (m *MockPlayer) PlayCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.played)
}

// Close marks the mock closed.
func (m *MockPlayer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockPlayer) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.closed
}
