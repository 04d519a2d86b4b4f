package questions

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new question store.
func New(db *sql.DB) QuestionStore {
	return &store{db: db}
}

// Seed writes the given lessons, replacing any existing set with the
// same id. Safe to run repeatedly.
func (s *store) Seed(lessons []Lesson) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO question_sets (id, questions_json)
		VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET questions_json = excluded.questions_json
	`
	for _, lesson := range lessons {
		raw, err := json.Marshal(lesson.Questions)
		if err != nil {
			return fmt.Errorf("failed to marshal questions for %s: %w", lesson.ID, err)
		}
		if _, err := tx.Exec(query, lesson.ID, string(raw)); err != nil {
			return fmt.Errorf("failed to seed question set %s: %w", lesson.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	log.Info("Seeded question sets", "count", len(lessons))
	return nil
}

// Get retrieves a question set by lesson id.
func (s *store) Get(id string) (*Lesson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT id, questions_json FROM question_sets WHERE id = ?`, id)

	var lesson Lesson
	var raw string
	if err := row.Scan(&lesson.ID, &raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get question set: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &lesson.Questions); err != nil {
		return nil, fmt.Errorf("failed to decode question set %s: %w", id, err)
	}
	return &lesson, nil
}

// IDs lists the available question set ids.
func (s *store) IDs() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id FROM question_sets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query question sets: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan question set row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Clear removes all question sets from the store.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM question_sets"); err != nil {
		log.Error("Failed to clear question sets", "error", err)
	}
}
