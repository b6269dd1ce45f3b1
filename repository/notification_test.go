package repository

import (
	"context"
	"testing"

	"crewfit/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStatusReturnsPrevious(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "notification_status", "user_id"}).AddRow(3, "UNREAD", 7))
	mock.ExpectExec(`UPDATE "notifications" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	previous, err := repo.UpdateStatus(context.Background(), 3, models.NotificationStatusRead)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationStatusUnread, previous)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "notifications"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.UpdateStatus(context.Background(), 3, models.NotificationStatusRead)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
