package players

import "sync"

// MockStore is a mock implementation of the PlayerStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertFunc           func(player PlayerInfo) error
	GetFunc              func(id string) (*PlayerInfo, error)
	TouchLastActiveFunc  func(id string) error
	RecordMembershipFunc func(userID, matchID string) error
	MatchIDsFunc         func(userID string) ([]string, error)

	// Call records
	UpsertCalls           []PlayerInfo
	TouchLastActiveCalls  []string
	RecordMembershipCalls []MembershipCall
}

// MembershipCall holds the arguments for a call to RecordMembership.
type MembershipCall struct {
	UserID  string
	MatchID string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertCalls = nil
	m.TouchLastActiveCalls = nil
	m.RecordMembershipCalls = nil
}

// Memberships returns a copy of the recorded membership calls.
func (m *MockStore) Memberships() []MembershipCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MembershipCall(nil), m.RecordMembershipCalls...)
}

func (m *MockStore) Upsert(player PlayerInfo) error {
	m.mu.Lock()
	m.UpsertCalls = append(m.UpsertCalls, player)
	m.mu.Unlock()
	if m.UpsertFunc != nil {
		return m.UpsertFunc(player)
	}
	return nil
}

func (m *MockStore) Get(id string) (*PlayerInfo, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return &PlayerInfo{ID: id}, nil
}

func (m *MockStore) TouchLastActive(id string) error {
	m.mu.Lock()
	m.TouchLastActiveCalls = append(m.TouchLastActiveCalls, id)
	m.mu.Unlock()
	if m.TouchLastActiveFunc != nil {
		return m.TouchLastActiveFunc(id)
	}
	return nil
}

func (m *MockStore) RecordMembership(userID, matchID string) error {
	m.mu.Lock()
	m.RecordMembershipCalls = append(m.RecordMembershipCalls, MembershipCall{UserID: userID, MatchID: matchID})
	m.mu.Unlock()
	if m.RecordMembershipFunc != nil {
		return m.RecordMembershipFunc(userID, matchID)
	}
	return nil
}

func (m *MockStore) MatchIDs(userID string) ([]string, error) {
	if m.MatchIDsFunc != nil {
		return m.MatchIDsFunc(userID)
	}
	return []string{}, nil
}

func (m *MockStore) Clear() {}
