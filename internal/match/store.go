package match

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new match store.
func New(db *sql.DB) MatchStore {
	return &store{
		db:  db,
		hub: newHub(),
	}
}

const matchColumns = `id, status,
	slot_a_user_id, slot_a_name, slot_a_avatar, slot_a_score,
	slot_b_user_id, slot_b_name, slot_b_avatar, slot_b_score,
	created_at, questions_json`

// Create inserts a new waiting match owned by slotA.
func (s *store) Create(slotA PlayerState) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := &Match{
		ID:        uuid.New().String(),
		Status:    StatusWaiting,
		SlotA:     slotA,
		CreatedAt: time.Now(),
		Questions: []string{},
	}
	m.SlotA.Score = 0

	query := `
		INSERT INTO matches (
			id, status, slot_a_user_id, slot_a_name, slot_a_avatar, slot_a_score,
			created_at, questions_json
		) VALUES (?, ?, ?, ?, ?, 0, ?, '[]')
	`
	_, err := s.db.Exec(query,
		m.ID,
		string(m.Status),
		m.SlotA.UserID,
		m.SlotA.DisplayName,
		m.SlotA.AvatarRef,
		m.CreatedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	log.Info("Created match", "id", m.ID, "slotA", m.SlotA.UserID)
	s.hub.notify(*m)
	return m, nil
}

// Get retrieves a match by ID.
func (s *store) Get(id string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(id)
}

// get is the lock-free variant used by mutators that already hold the lock.
func (s *store) get(id string) (*Match, error) {
	row := s.db.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE id = ?`, id)
	m, err := scanMatch(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return m, nil
}

// FindWaiting returns any one waiting match not created by excludeUserID.
// No ordering is imposed; the store picks the candidate.
func (s *store) FindWaiting(excludeUserID string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT `+matchColumns+`
		FROM matches
		WHERE status = ? AND slot_a_user_id != ?
		LIMIT 1
	`, string(StatusWaiting), excludeUserID)

	m, err := scanMatch(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoWaitingMatch
		}
		return nil, fmt.Errorf("failed to find waiting match: %w", err)
	}
	return m, nil
}

// Join populates slotB and flips the match to active in a single
// conditional write. The status guard closes the race between two
// requesters that both saw the same waiting match: exactly one write
// succeeds, the loser gets ErrConflictingJoin.
func (s *store) Join(id string, slotB PlayerState) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE matches
		SET slot_b_user_id = ?, slot_b_name = ?, slot_b_avatar = ?, slot_b_score = 0,
		    status = ?
		WHERE id = ? AND status = ?
	`, slotB.UserID, slotB.DisplayName, slotB.AvatarRef,
		string(StatusActive), id, string(StatusWaiting))
	if err != nil {
		return nil, fmt.Errorf("failed to join match: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		if _, err := s.get(id); err != nil {
			return nil, err
		}
		log.Debug("Lost join race", "id", id, "slotB", slotB.UserID)
		return nil, ErrConflictingJoin
	}

	m, err := s.get(id)
	if err != nil {
		return nil, err
	}
	log.Info("Joined match", "id", id, "slotB", slotB.UserID)
	s.hub.notify(*m)
	return m, nil
}

// ApplyScoreDelta adds delta to the score of the slot owned by userID.
// The increment happens inside the store, never as a read-modify-write,
// so concurrent deltas from both players commute.
func (s *store) ApplyScoreDelta(id, userID string, delta int64) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE matches
		SET slot_a_score = slot_a_score + (CASE WHEN slot_a_user_id = ? THEN ? ELSE 0 END),
		    slot_b_score = slot_b_score + (CASE WHEN slot_b_user_id = ? THEN ? ELSE 0 END)
		WHERE id = ? AND (slot_a_user_id = ? OR slot_b_user_id = ?)
	`, userID, delta, userID, delta, id, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to apply score delta: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		if _, err := s.get(id); err != nil {
			return nil, err
		}
		return nil, ErrSlotNotFound
	}

	m, err := s.get(id)
	if err != nil {
		return nil, err
	}
	log.Debug("Applied score delta", "id", id, "user", userID, "delta", delta)
	s.hub.notify(*m)
	return m, nil
}

// Complete transitions an active match to completed. The status guard
// keeps the lifecycle monotonic.
func (s *store) Complete(id string) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE matches SET status = ? WHERE id = ? AND status = ?
	`, string(StatusCompleted), id, string(StatusActive))
	if err != nil {
		return nil, fmt.Errorf("failed to complete match: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		m, err := s.get(id)
		if err != nil {
			return nil, err
		}
		if m.Status == StatusCompleted {
			return m, nil
		}
		return nil, ErrNotActive
	}

	m, err := s.get(id)
	if err != nil {
		return nil, err
	}
	log.Info("Completed match", "id", id)
	s.hub.notify(*m)
	return m, nil
}

// List returns the matches for the given IDs, newest first.
func (s *store) List(ids []string) ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(ids) == 0 {
		return []*Match{}, nil
	}

	placeholders := ""
	args := make([]any, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += "?"
		args = append(args, id)
	}

	rows, err := s.db.Query(`
		SELECT `+matchColumns+`
		FROM matches
		WHERE id IN (`+placeholders+`)
		ORDER BY created_at DESC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	return collectMatches(rows)
}

// ListWaiting returns the current waiting pool, newest first.
func (s *store) ListWaiting() ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT `+matchColumns+`
		FROM matches
		WHERE status = ?
		ORDER BY created_at DESC
	`, string(StatusWaiting))
	if err != nil {
		return nil, fmt.Errorf("failed to list waiting matches: %w", err)
	}
	defer rows.Close()

	return collectMatches(rows)
}

// Watch subscribes to change notifications for a single match.
func (s *store) Watch(id string) (<-chan Match, func()) {
	return s.hub.subscribe(id)
}

// Clear removes all matches from the store.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM matches"); err != nil {
		log.Error("Failed to clear matches", "error", err)
	}
}

// ClearMatch removes a single match from the store.
func (s *store) ClearMatch(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM matches WHERE id = ?", matchID); err != nil {
		log.Error("Failed to clear match", "matchID", matchID, "error", err)
	}
}

// scanner abstracts *sql.Row and *sql.Rows for scanMatch.
type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (*Match, error) {
	var m Match
	var status string
	var createdAt int64
	var questionsJSON string
	var slotBUserID, slotBName, slotBAvatar sql.NullString
	var slotBScore int64

	err := row.Scan(
		&m.ID,
		&status,
		&m.SlotA.UserID,
		&m.SlotA.DisplayName,
		&m.SlotA.AvatarRef,
		&m.SlotA.Score,
		&slotBUserID,
		&slotBName,
		&slotBAvatar,
		&slotBScore,
		&createdAt,
		&questionsJSON,
	)
	if err != nil {
		return nil, err
	}

	m.Status = Status(status)
	m.CreatedAt = time.Unix(createdAt, 0)

	if slotBUserID.Valid {
		m.SlotB = &PlayerState{
			UserID:      slotBUserID.String,
			DisplayName: slotBName.String,
			AvatarRef:   slotBAvatar.String,
			Score:       slotBScore,
		}
	}

	if err := json.Unmarshal([]byte(questionsJSON), &m.Questions); err != nil {
		log.Warn("Failed to unmarshal match questions", "matchID", m.ID, "error", err)
		m.Questions = []string{}
	}
	if m.Questions == nil {
		m.Questions = []string{}
	}

	return &m, nil
}

func collectMatches(rows *sql.Rows) ([]*Match, error) {
	matches := []*Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
