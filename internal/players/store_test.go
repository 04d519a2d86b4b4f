package players_test

import (
	"testing"

	"github.com/mavikus/quizduel/internal/database"
	"github.com/mavikus/quizduel/internal/players"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (players.PlayerStore, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return players.New(db), dbTeardown
}

func TestUpsertAndGet(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	err := store.Upsert(players.PlayerInfo{ID: "user-x", DisplayName: "Player X", AvatarRef: "pp_8"})
	require.NoError(t, err)

	p, err := store.Get("user-x")
	require.NoError(t, err)
	assert.Equal(t, "Player X", p.DisplayName)
	assert.Equal(t, "pp_8", p.AvatarRef)
	assert.Nil(t, p.LastActiveAt)

	// Upserting again refreshes identity fields.
	err = store.Upsert(players.PlayerInfo{ID: "user-x", DisplayName: "Player X2", AvatarRef: "pp_1"})
	require.NoError(t, err)

	p, err = store.Get("user-x")
	require.NoError(t, err)
	assert.Equal(t, "Player X2", p.DisplayName)

	_, err = store.Get("nobody")
	assert.Error(t, err)
}

func TestTouchLastActive(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	err := store.Upsert(players.PlayerInfo{ID: "user-x", DisplayName: "Player X"})
	require.NoError(t, err)

	err = store.TouchLastActive("user-x")
	require.NoError(t, err)

	p, err := store.Get("user-x")
	require.NoError(t, err)
	require.NotNil(t, p.LastActiveAt)
	assert.False(t, p.LastActiveAt.IsZero())
}

func TestRecordMembershipIsIdempotent(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	require.NoError(t, store.RecordMembership("user-x", "match-1"))
	require.NoError(t, store.RecordMembership("user-x", "match-1"))
	require.NoError(t, store.RecordMembership("user-x", "match-1"))

	ids, err := store.MatchIDs("user-x")
	require.NoError(t, err)
	assert.Equal(t, []string{"match-1"}, ids)
}

func TestMatchIDsGrowMonotonically(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	require.NoError(t, store.RecordMembership("user-x", "match-1"))
	require.NoError(t, store.RecordMembership("user-x", "match-2"))
	require.NoError(t, store.RecordMembership("user-y", "match-2"))

	ids, err := store.MatchIDs("user-x")
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, "match-1")
	assert.Contains(t, ids, "match-2")

	ids, err = store.MatchIDs("user-y")
	require.NoError(t, err)
	assert.Equal(t, []string{"match-2"}, ids)

	ids, err = store.MatchIDs("nobody")
	require.NoError(t, err)
	assert.Empty(t, ids)
}
