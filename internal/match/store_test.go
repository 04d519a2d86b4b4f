package match_test

import (
	"sync"
	"testing"

	"github.com/mavikus/quizduel/internal/database"
	"github.com/mavikus/quizduel/internal/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a match store backed by a temporary in-memory
// SQLite database.
func setupTestStore(t *testing.T) (match.MatchStore, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := match.New(db)
	return store, dbTeardown
}

func playerX() match.PlayerState {
	return match.PlayerState{UserID: "user-x", DisplayName: "Player X", AvatarRef: "pp_8"}
}

func playerY() match.PlayerState {
	return match.PlayerState{UserID: "user-y", DisplayName: "Player Y", AvatarRef: "pp_3"}
}

func TestCreateAndGetMatch(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	m, err := store.Create(playerX())
	require.NoError(t, err)

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, match.StatusWaiting, m.Status)
	assert.Equal(t, "user-x", m.SlotA.UserID)
	assert.Equal(t, int64(0), m.SlotA.Score)
	assert.Nil(t, m.SlotB)
	assert.Empty(t, m.Questions)

	retrieved, err := store.Get(m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, retrieved.ID)
	assert.Equal(t, match.StatusWaiting, retrieved.Status)
	assert.Nil(t, retrieved.SlotB)
	assert.NotZero(t, retrieved.CreatedAt)

	_, err = store.Get("no-such-match")
	assert.ErrorIs(t, err, match.ErrNotFound)
}

func TestFindWaitingExcludesOwnMatch(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	m, err := store.Create(playerX())
	require.NoError(t, err)

	// The creator must never be offered their own waiting match.
	_, err = store.FindWaiting("user-x")
	assert.ErrorIs(t, err, match.ErrNoWaitingMatch)

	found, err := store.FindWaiting("user-y")
	require.NoError(t, err)
	assert.Equal(t, m.ID, found.ID)
}

func TestJoinWaitingMatch(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	m, err := store.Create(playerX())
	require.NoError(t, err)

	joined, err := store.Join(m.ID, playerY())
	require.NoError(t, err)

	assert.Equal(t, match.StatusActive, joined.Status)
	require.NotNil(t, joined.SlotB)
	assert.Equal(t, "user-y", joined.SlotB.UserID)
	assert.Equal(t, "Player Y", joined.SlotB.DisplayName)
	assert.Equal(t, int64(0), joined.SlotB.Score)
	// Slot A is untouched by the join.
	assert.Equal(t, "user-x", joined.SlotA.UserID)
}

func TestJoinIsConditional(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	m, err := store.Create(playerX())
	require.NoError(t, err)

	_, err = store.Join(m.ID, playerY())
	require.NoError(t, err)

	// A third join against the same match must lose the conditional write.
	_, err = store.Join(m.ID, match.PlayerState{UserID: "user-z", DisplayName: "Player Z"})
	assert.ErrorIs(t, err, match.ErrConflictingJoin)

	// Slot B still belongs to the first joiner.
	current, err := store.Get(m.ID)
	require.NoError(t, err)
	require.NotNil(t, current.SlotB)
	assert.Equal(t, "user-y", current.SlotB.UserID)

	_, err = store.Join("no-such-match", playerY())
	assert.ErrorIs(t, err, match.ErrNotFound)
}

func TestJoinRaceHasSingleWinner(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	m, err := store.Create(playerX())
	require.NoError(t, err)

	// Both requesters saw the same waiting match; fire the claims
	// concurrently and require exactly one winner.
	contenders := []match.PlayerState{
		{UserID: "user-y", DisplayName: "Player Y"},
		{UserID: "user-z", DisplayName: "Player Z"},
	}

	errs := make([]error, len(contenders))
	var wg sync.WaitGroup
	for i, p := range contenders {
		wg.Add(1)
		go func(i int, p match.PlayerState) {
			defer wg.Done()
			_, errs[i] = store.Join(m.ID, p)
		}(i, p)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, match.ErrConflictingJoin)
		}
	}
	assert.Equal(t, 1, winners)

	current, err := store.Get(m.ID)
	require.NoError(t, err)
	assert.Equal(t, match.StatusActive, current.Status)
	require.NotNil(t, current.SlotB)
	assert.NotEqual(t, current.SlotA.UserID, current.SlotB.UserID)
}

func TestApplyScoreDelta(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	m, err := store.Create(playerX())
	require.NoError(t, err)
	_, err = store.Join(m.ID, playerY())
	require.NoError(t, err)

	updated, err := store.ApplyScoreDelta(m.ID, "user-x", 20)
	require.NoError(t, err)
	assert.Equal(t, int64(20), updated.SlotA.Score)
	assert.Equal(t, int64(0), updated.SlotB.Score)

	// Wrong answers subtract; negative scores are valid.
	updated, err = store.ApplyScoreDelta(m.ID, "user-y", -10)
	require.NoError(t, err)
	assert.Equal(t, int64(20), updated.SlotA.Score)
	assert.Equal(t, int64(-10), updated.SlotB.Score)

	_, err = store.ApplyScoreDelta(m.ID, "user-z", 5)
	assert.ErrorIs(t, err, match.ErrSlotNotFound)

	_, err = store.ApplyScoreDelta("no-such-match", "user-x", 5)
	assert.ErrorIs(t, err, match.ErrNotFound)
}

func TestScoreDeltasCommute(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	deltas := []int64{20, -10, 20}

	orders := [][]int{
		{0, 1, 2},
		{2, 0, 1},
		{1, 2, 0},
	}

	for _, order := range orders {
		m, err := store.Create(playerX())
		require.NoError(t, err)
		_, err = store.Join(m.ID, playerY())
		require.NoError(t, err)

		for _, i := range order {
			_, err := store.ApplyScoreDelta(m.ID, "user-x", deltas[i])
			require.NoError(t, err)
		}

		final, err := store.Get(m.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(30), final.SlotA.Score, "order %v must converge to 30", order)
	}
}

func TestConcurrentScoreDeltas(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	m, err := store.Create(playerX())
	require.NoError(t, err)
	_, err = store.Join(m.ID, playerY())
	require.NoError(t, err)

	// Both players hammer their own slot concurrently; increments must
	// never be lost regardless of interleaving.
	const rounds = 25
	var wg sync.WaitGroup
	for _, userID := range []string{"user-x", "user-y"} {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				_, err := store.ApplyScoreDelta(m.ID, userID, 2)
				assert.NoError(t, err)
			}
		}(userID)
	}
	wg.Wait()

	final, err := store.Get(m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2*rounds), final.SlotA.Score)
	assert.Equal(t, int64(2*rounds), final.SlotB.Score)
}

func TestStatusIsMonotonic(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	m, err := store.Create(playerX())
	require.NoError(t, err)

	// A waiting match cannot be completed.
	_, err = store.Complete(m.ID)
	assert.ErrorIs(t, err, match.ErrNotActive)

	_, err = store.Join(m.ID, playerY())
	require.NoError(t, err)

	completed, err := store.Complete(m.ID)
	require.NoError(t, err)
	assert.Equal(t, match.StatusCompleted, completed.Status)

	// Completing again is a no-op, and a completed match never accepts
	// another join.
	again, err := store.Complete(m.ID)
	require.NoError(t, err)
	assert.Equal(t, match.StatusCompleted, again.Status)

	_, err = store.Join(m.ID, match.PlayerState{UserID: "user-z"})
	assert.ErrorIs(t, err, match.ErrConflictingJoin)

	_, err = store.Complete("no-such-match")
	assert.ErrorIs(t, err, match.ErrNotFound)
}

func TestListWaitingAndList(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	m1, err := store.Create(playerX())
	require.NoError(t, err)
	m2, err := store.Create(match.PlayerState{UserID: "user-z", DisplayName: "Player Z"})
	require.NoError(t, err)

	_, err = store.Join(m2.ID, playerY())
	require.NoError(t, err)

	waiting, err := store.ListWaiting()
	require.NoError(t, err)
	require.Len(t, waiting, 1)
	assert.Equal(t, m1.ID, waiting[0].ID)

	listed, err := store.List([]string{m1.ID, m2.ID})
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	empty, err := store.List(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestWatchDeliversChanges(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	m, err := store.Create(playerX())
	require.NoError(t, err)

	updates, cancel := store.Watch(m.ID)
	defer cancel()

	_, err = store.Join(m.ID, playerY())
	require.NoError(t, err)

	snapshot := <-updates
	assert.Equal(t, m.ID, snapshot.ID)
	assert.Equal(t, match.StatusActive, snapshot.Status)
	require.NotNil(t, snapshot.SlotB)
	assert.Equal(t, "user-y", snapshot.SlotB.UserID)

	_, err = store.ApplyScoreDelta(m.ID, "user-x", 20)
	require.NoError(t, err)

	snapshot = <-updates
	assert.Equal(t, int64(20), snapshot.SlotA.Score)
}

func TestWatchCancelReleasesListener(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	m, err := store.Create(playerX())
	require.NoError(t, err)

	updates, cancel := store.Watch(m.ID)
	cancel()

	// The channel is closed and later mutations do not panic.
	_, ok := <-updates
	assert.False(t, ok)

	_, err = store.Join(m.ID, playerY())
	require.NoError(t, err)

	// Cancel is idempotent.
	cancel()
}
