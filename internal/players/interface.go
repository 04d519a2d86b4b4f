package players

// PlayerStore defines identity and membership operations for players.
type PlayerStore interface {
	// Upsert inserts or refreshes a player's identity fields.
	Upsert(player PlayerInfo) error

	// Get retrieves a player by ID.
	Get(id string) (*PlayerInfo, error)

	// TouchLastActive advances the player's "last active" marker. The
	// marker is advisory, not correctness-critical.
	TouchLastActive(id string) error

	// RecordMembership associates a player with a match. Idempotent:
	// recording an already-present match ID is a no-op.
	RecordMembership(userID, matchID string) error

	// MatchIDs returns the IDs of the matches the player has joined,
	// newest first.
	MatchIDs(userID string) ([]string, error)

	Clear()
}
