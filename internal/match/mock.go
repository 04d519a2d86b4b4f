package match

import "sync"

// MockStore is a mock implementation of the MatchStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateFunc          func(slotA PlayerState) (*Match, error)
	GetFunc             func(id string) (*Match, error)
	FindWaitingFunc     func(excludeUserID string) (*Match, error)
	JoinFunc            func(id string, slotB PlayerState) (*Match, error)
	ApplyScoreDeltaFunc func(id, userID string, delta int64) (*Match, error)
	CompleteFunc        func(id string) (*Match, error)
	ListFunc            func(ids []string) ([]*Match, error)
	ListWaitingFunc     func() ([]*Match, error)
	WatchFunc           func(id string) (<-chan Match, func())

	// Call records
	CreateCalls      []PlayerState
	JoinCalls        []JoinCall
	ScoreDeltaCalls  []ScoreDeltaCall
	CompleteCalls    []string
	FindWaitingCalls []string
	WatchCalls       []string
}

// JoinCall holds the arguments for a call to Join.
type JoinCall struct {
	ID    string
	SlotB PlayerState
}

// ScoreDeltaCall holds the arguments for a call to ApplyScoreDelta.
type ScoreDeltaCall struct {
	ID     string
	UserID string
	Delta  int64
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = nil
	m.JoinCalls = nil
	m.ScoreDeltaCalls = nil
	m.CompleteCalls = nil
	m.FindWaitingCalls = nil
	m.WatchCalls = nil
}

func (m *MockStore) Create(slotA PlayerState) (*Match, error) {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, slotA)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(slotA)
	}
	return &Match{ID: "mock-match", Status: StatusWaiting, SlotA: slotA, Questions: []string{}}, nil
}

func (m *MockStore) Get(id string) (*Match, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return nil, ErrNotFound
}

func (m *MockStore) FindWaiting(excludeUserID string) (*Match, error) {
	m.mu.Lock()
	m.FindWaitingCalls = append(m.FindWaitingCalls, excludeUserID)
	m.mu.Unlock()
	if m.FindWaitingFunc != nil {
		return m.FindWaitingFunc(excludeUserID)
	}
	return nil, ErrNoWaitingMatch
}

func (m *MockStore) Join(id string, slotB PlayerState) (*Match, error) {
	m.mu.Lock()
	m.JoinCalls = append(m.JoinCalls, JoinCall{ID: id, SlotB: slotB})
	m.mu.Unlock()
	if m.JoinFunc != nil {
		return m.JoinFunc(id, slotB)
	}
	return nil, ErrConflictingJoin
}

func (m *MockStore) ApplyScoreDelta(id, userID string, delta int64) (*Match, error) {
	m.mu.Lock()
	m.ScoreDeltaCalls = append(m.ScoreDeltaCalls, ScoreDeltaCall{ID: id, UserID: userID, Delta: delta})
	m.mu.Unlock()
	if m.ApplyScoreDeltaFunc != nil {
		return m.ApplyScoreDeltaFunc(id, userID, delta)
	}
	return nil, ErrNotFound
}

func (m *MockStore) Complete(id string) (*Match, error) {
	m.mu.Lock()
	m.CompleteCalls = append(m.CompleteCalls, id)
	m.mu.Unlock()
	if m.CompleteFunc != nil {
		return m.CompleteFunc(id)
	}
	return nil, ErrNotFound
}

func (m *MockStore) List(ids []string) ([]*Match, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ids)
	}
	return []*Match{}, nil
}

func (m *MockStore) ListWaiting() ([]*Match, error) {
	if m.ListWaitingFunc != nil {
		return m.ListWaitingFunc()
	}
	return []*Match{}, nil
}

func (m *MockStore) Watch(id string) (<-chan Match, func()) {
	m.mu.Lock()
	m.WatchCalls = append(m.WatchCalls, id)
	m.mu.Unlock()
	if m.WatchFunc != nil {
		return m.WatchFunc(id)
	}
	ch := make(chan Match)
	return ch, func() { close(ch) }
}

func (m *MockStore) Clear() {}

func (m *MockStore) ClearMatch(matchID string) {}
