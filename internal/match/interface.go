package match

// MatchStore defines storage and subscription operations for matches. The
// database row is always ground truth; values returned from mutators are
// fresh reads, never locally patched copies.
type MatchStore interface {
	// Create inserts a new waiting match with slotA populated and slotB empty.
	Create(slotA PlayerState) (*Match, error)

	// Get performs a point read of a single match.
	Get(id string) (*Match, error)

	// FindWaiting returns any one waiting match not created by excludeUserID.
	// Ties are broken by the store. Returns ErrNoWaitingMatch when the pool
	// is empty.
	FindWaiting(excludeUserID string) (*Match, error)

	// Join claims the waiting match with a conditional write: slotB is
	// populated and status flips to active only if the match is still
	// waiting at write time. Returns ErrConflictingJoin when the condition
	// fails.
	Join(id string, slotB PlayerState) (*Match, error)

	// ApplyScoreDelta adds delta to the score of the slot owned by userID
	// using a single atomic increment. Returns ErrSlotNotFound when userID
	// holds neither slot.
	ApplyScoreDelta(id, userID string, delta int64) (*Match, error)

	// Complete transitions an active match to completed. Completing an
	// already completed match is a no-op.
	Complete(id string) (*Match, error)

	// List returns the matches for the given IDs, newest first.
	List(ids []string) ([]*Match, error)

	// ListWaiting returns the current waiting pool, newest first.
	ListWaiting() ([]*Match, error)

	// Watch subscribes to change notifications for a single match. The
	// returned channel receives a fresh snapshot after every observed
	// mutation. The cancel func releases the listener and must be called
	// on every exit path.
	Watch(id string) (<-chan Match, func())

	Clear()
	ClearMatch(matchID string)
}
