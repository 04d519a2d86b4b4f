package match

import (
	"database/sql"
	"errors"
	"sync"
	"time"
)

// Status represents the lifecycle state of a match. Transitions are
// monotonic: waiting -> active -> completed, never backwards.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// PlayerState is one player's slot within a match. The identity fields are
// write-once, set when the slot is claimed; Score is the only field that
// keeps changing afterwards.
type PlayerState struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	AvatarRef   string `json:"avatar_ref"`
	Score       int64  `json:"score"`
}

// Match is the shared record coordinating a two-player session. SlotA is
// populated at creation; SlotB exactly once, at the moment the match
// becomes active.
type Match struct {
	ID        string       `json:"id"`
	Status    Status       `json:"status"`
	SlotA     PlayerState  `json:"slot_a"`
	SlotB     *PlayerState `json:"slot_b,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	Questions []string     `json:"questions"` // reserved for per-match question assignment
}

var (
	// ErrNotFound is returned when no match exists for the given ID.
	ErrNotFound = errors.New("match not found")
	// ErrNoWaitingMatch is returned when the waiting pool is empty.
	ErrNoWaitingMatch = errors.New("no waiting match available")
	// ErrConflictingJoin is returned when a waiting match was claimed by
	// another player between the candidate search and the join write.
	ErrConflictingJoin = errors.New("waiting match already claimed")
	// ErrSlotNotFound is returned when a score update names a user that
	// holds neither slot of the match.
	ErrSlotNotFound = errors.New("user holds no slot in this match")
	// ErrNotActive is returned when completing a match that never became
	// active.
	ErrNotActive = errors.New("match is not active")
)

// store handles all database operations for matches and fans out change
// notifications to watchers.
type store struct {
	db  *sql.DB
	mu  sync.RWMutex
	hub *hub
}
