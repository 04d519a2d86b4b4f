package players

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new player store.
func New(db *sql.DB) PlayerStore {
	return &store{db: db}
}

// Upsert inserts or refreshes a player's identity fields.
func (s *store) Upsert(player PlayerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO players (id, display_name, avatar_ref)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET display_name = excluded.display_name, avatar_ref = excluded.avatar_ref
	`
	if _, err := s.db.Exec(query, player.ID, player.DisplayName, player.AvatarRef); err != nil {
		return fmt.Errorf("failed to upsert player %s: %w", player.ID, err)
	}
	return nil
}

// Get retrieves a player by ID.
func (s *store) Get(id string) (*PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT id, display_name, avatar_ref, last_active_at FROM players WHERE id = ?`, id)

	var p PlayerInfo
	var lastActive sql.NullInt64
	if err := row.Scan(&p.ID, &p.DisplayName, &p.AvatarRef, &lastActive); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("player not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if lastActive.Valid {
		t := time.Unix(lastActive.Int64, 0)
		p.LastActiveAt = &t
	}
	return &p, nil
}

// TouchLastActive advances the player's "last active" marker.
func (s *store) TouchLastActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE players SET last_active_at = ? WHERE id = ?`, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to touch last active for %s: %w", id, err)
	}
	return nil
}

// RecordMembership associates a player with a match. The keyed insert
// makes repeated calls no-ops, so membership never grows duplicates.
func (s *store) RecordMembership(userID, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT OR IGNORE INTO player_matches (player_id, match_id, joined_at)
		VALUES (?, ?, ?)
	`
	if _, err := s.db.Exec(query, userID, matchID, time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to record membership %s -> %s: %w", userID, matchID, err)
	}
	log.Debug("Recorded membership", "user", userID, "match", matchID)
	return nil
}

// MatchIDs returns the IDs of the matches the player has joined, newest
// first.
func (s *store) MatchIDs(userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT match_id FROM player_matches
		WHERE player_id = ?
		ORDER BY joined_at DESC, match_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Clear removes all players and memberships from the store.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM player_matches"); err != nil {
		log.Error("Failed to clear memberships", "error", err)
	}
	if _, err := s.db.Exec("DELETE FROM players"); err != nil {
		log.Error("Failed to clear players", "error", err)
	}
}
