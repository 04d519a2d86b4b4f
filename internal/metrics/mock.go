package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	matchesCreated       int
	matchesJoined        int
	matchesCompleted     int
	joinConflicts        int
	activationsDelivered int
	scoreUpdates         int
	slotNotFound         int
	matchmakingDurations []float64
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		matchmakingDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesCreated++
}

func (m *Mock) IncMatchesJoined() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesJoined++
}

func (m *Mock) IncMatchesCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesCompleted++
}

func (m *Mock) IncJoinConflicts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.joinConflicts++
}

func (m *Mock) IncActivationsDelivered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activationsDelivered++
}

func (m *Mock) IncScoreUpdates() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoreUpdates++
}

func (m *Mock) IncSlotNotFound() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slotNotFound++
}

func (m *Mock) ObserveMatchmakingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchmakingDurations = append(m.matchmakingDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesCreated returns the number of times IncMatchesCreated was called.
func (m *Mock) MatchesCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesCreated
}

// MatchesJoined returns the number of times IncMatchesJoined was called.
func (m *Mock) MatchesJoined() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesJoined
}

// MatchesCompleted returns the number of times IncMatchesCompleted was called.
func (m *Mock) MatchesCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesCompleted
}

// JoinConflicts returns the number of times IncJoinConflicts was called.
func (m *Mock) JoinConflicts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.joinConflicts
}

// ActivationsDelivered returns the number of times IncActivationsDelivered was called.
func (m *Mock) ActivationsDelivered() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activationsDelivered
}

// ScoreUpdates returns the number of times IncScoreUpdates was called.
func (m *Mock) ScoreUpdates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scoreUpdates
}

// SlotNotFound returns the number of times IncSlotNotFound was called.
func (m *Mock) SlotNotFound() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slotNotFound
}
