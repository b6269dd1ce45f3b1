package repository

import (
	"context"
	"testing"

	"crewfit/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByCrewAndStatusNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBattleRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "battles" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByCrewAndStatus(context.Background(), 1, models.BattleStatusStarted)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByCrewAndStatusFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBattleRepository(db)

	rows := sqlmock.NewRows([]string{"id", "home_crew_id", "away_crew_id", "status"}).
		AddRow(9, 1, 2, "STARTED")
	mock.ExpectQuery(`SELECT \* FROM "battles"`).WillReturnRows(rows)

	battle, err := repo.FindByCrewAndStatus(context.Background(), 2, models.BattleStatusStarted)
	require.NoError(t, err)
	assert.Equal(t, uint(9), battle.ID)
	assert.Equal(t, models.BattleStatusStarted, battle.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountTotalAndWon(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBattleRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) AS total`).
		WillReturnRows(sqlmock.NewRows([]string{"total", "won"}).AddRow(5, 2))

	stats, err := repo.CountTotalAndWon(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.BattleStats{Total: 5, Won: 2}, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountTotalAndWonDrawIsNotAWin(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBattleRepository(db)

	mock.ExpectQuery(`WHEN \(home_crew_id = \$1 AND home_crew_score > away_crew_score\) ` +
		`OR \(away_crew_id = \$2 AND away_crew_score > home_crew_score\) THEN 1 ELSE 0 END`).
		WithArgs(3, 3, 3, 3, "FINISHED").
		WillReturnRows(sqlmock.NewRows([]string{"total", "won"}).AddRow(1, 0))

	stats, err := repo.CountTotalAndWon(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, models.BattleStats{Total: 1, Won: 0}, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindRecentFinishedByCrewIDsEmptyInput(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBattleRepository(db)

	battles, err := repo.FindRecentFinishedByCrewIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, battles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinishMissingBattle(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBattleRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "battles" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Finish(context.Background(), 404, 10, 12)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
