package questions_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mavikus/quizduel/internal/database"
	"github.com/mavikus/quizduel/internal/questions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `{
	"lessons": [
		{
			"id": "math",
			"questions": [
				{
					"question": "2 + 2 = ?",
					"options": ["3", "4", "5", "6"],
					"answer": "4"
				},
				{
					"question": "3 * 3 = ?",
					"options": ["6", "7", "8", "9"],
					"answer": "9"
				}
			]
		},
		{
			"id": "empty-lesson",
			"questions": []
		},
		{
			"id": "history",
			"questions": [
				{
					"question": "First moon landing?",
					"options": ["1965", "1969", "1972", "1975"],
					"answer": "1969"
				}
			]
		}
	]
}`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCatalog(t *testing.T) {
	lessons, err := questions.Load(writeCatalog(t, sampleCatalog))
	require.NoError(t, err)

	// The empty lesson is dropped.
	require.Len(t, lessons, 2)
	assert.Equal(t, "math", lessons[0].ID)
	assert.Len(t, lessons[0].Questions, 2)
	assert.Equal(t, "4", lessons[0].Questions[0].CorrectAnswer)
	assert.Equal(t, []string{"3", "4", "5", "6"}, lessons[0].Questions[0].Options)
	assert.Equal(t, "history", lessons[1].ID)
}

func TestLoadCatalogErrors(t *testing.T) {
	_, err := questions.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = questions.Load(writeCatalog(t, "not json"))
	assert.Error(t, err)

	_, err = questions.Load(writeCatalog(t, `{"lessons": []}`))
	assert.Error(t, err)
}

func TestSeedAndGet(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()
	store := questions.New(db)

	lessons, err := questions.Load(writeCatalog(t, sampleCatalog))
	require.NoError(t, err)
	require.NoError(t, store.Seed(lessons))

	ids, err := store.IDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"history", "math"}, ids)

	lesson, err := store.Get("math")
	require.NoError(t, err)
	assert.Len(t, lesson.Questions, 2)
	assert.Equal(t, "2 + 2 = ?", lesson.Questions[0].Question)

	_, err = store.Get("geography")
	assert.ErrorIs(t, err, questions.ErrNotFound)

	// Reseeding overwrites rather than duplicating.
	require.NoError(t, store.Seed(lessons))
	ids, err = store.IDs()
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	store.Clear()
	ids, err = store.IDs()
	require.NoError(t, err)
	assert.Empty(t, ids)
}
