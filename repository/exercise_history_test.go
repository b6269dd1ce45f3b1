package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindUserRankingsByCrewSince(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExerciseHistoryRepository(db)
	since := time.Date(2026, time.October, 11, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"user_id", "nickname", "user_profile_image", "exercise_time"}).
		AddRow(4, "mina", "mina.png", 1800).
		AddRow(7, "joon", "", 0)
	mock.ExpectQuery(`FROM "user_crews" ` +
		`JOIN crews ON crews.id = user_crews.crew_id ` +
		`JOIN users ON users.id = user_crews.user_id ` +
		`LEFT JOIN exercise_histories ON exercise_histories.user_id = users.id ` +
		`AND exercise_histories.exercise_id = crews.exercise_id ` +
		`AND exercise_histories.created_at >= \$1 ` +
		`WHERE user_crews.crew_id = \$2`).
		WithArgs(since, 1).
		WillReturnRows(rows)

	rankings, err := repo.FindUserRankingsByCrewSince(context.Background(), 1, since)
	require.NoError(t, err)
	require.Len(t, rankings, 2)
	assert.Equal(t, uint(4), rankings[0].UserID)
	assert.Equal(t, int64(1800), rankings[0].ExerciseTime)
	assert.Equal(t, uint(7), rankings[1].UserID)
	assert.Zero(t, rankings[1].ExerciseTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}
