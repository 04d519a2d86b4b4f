package metrics_test

import (
	"testing"

	"github.com/mavikus/quizduel/internal/database"
	"github.com/mavikus/quizduel/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementAndGetAll(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	store := metrics.New(db)

	store.Increment("matchmake")
	store.Increment("matchmake")
	store.Increment("score")

	all, err := store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, 2, all["matchmake"])
	assert.Equal(t, 1, all["score"])

	_, ok := all["never-touched"]
	assert.False(t, ok)
}
