package players

import (
	"database/sql"
	"sync"
	"time"
)

// PlayerInfo is the identity record for a player. Identity is opaque,
// pre-authenticated input; this subsystem never validates it.
type PlayerInfo struct {
	ID           string     `json:"id"`
	DisplayName  string     `json:"display_name"`
	AvatarRef    string     `json:"avatar_ref"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
}

// store handles all database operations for players and their match
// membership.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
