package repository

import (
	"path/filepath"
	"testing"
	"time"

	"crewfit/database"
	"crewfit/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBodyRepo(t *testing.T) *BodyHistoryRepository {
	t.Helper()
	store, err := database.OpenBodyStore(filepath.Join(t.TempDir(), "body.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewBodyHistoryRepository(store)
}

func TestBodyHistoryLatestAndList(t *testing.T) {
	repo := newBodyRepo(t)
	base := time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)

	for i, weight := range []float64{70, 69, 68} {
		require.NoError(t, repo.Save(models.BodyHistory{
			ID:        string(rune('a' + i)),
			UserID:    7,
			Weight:    weight,
			CreatedAt: base.AddDate(0, 0, i),
		}))
	}
	require.NoError(t, repo.Save(models.BodyHistory{ID: "other", UserID: 8, Weight: 90, CreatedAt: base}))

	latest, err := repo.FindLatestByUser(7)
	require.NoError(t, err)
	assert.Equal(t, 68.0, latest.Weight)
	assert.True(t, latest.CreatedAt.Equal(base.AddDate(0, 0, 2)))

	list, err := repo.ListByUser(7)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []float64{68, 69, 70}, []float64{list[0].Weight, list[1].Weight, list[2].Weight})
}

func TestBodyHistoryNotFound(t *testing.T) {
	repo := newBodyRepo(t)

	_, err := repo.FindLatestByUser(42)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := repo.ListByUser(42)
	require.NoError(t, err)
	assert.Empty(t, list)
}
