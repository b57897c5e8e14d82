package notification

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TutorBookingService/internal/domain"
	"github.com/m04kA/TutorBookingService/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO notifications \(user_id,type,title,message\)`).
		WithArgs(int64(1), domain.NotificationBookingCreated, "New booking", "Bob booked Math").
		WillReturnRows(sqlmock.NewRows([]string{"id", "read", "created_at"}).AddRow(int64(9), false, now))

	n, err := repo.Create(context.Background(), &domain.Notification{
		UserID:  1,
		Type:    domain.NotificationBookingCreated,
		Title:   "New booking",
		Message: "Bob booked Math",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(9), n.ID)
	assert.False(t, n.Read)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByUser(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(`FROM notifications WHERE user_id = \$1 ORDER BY created_at DESC, id DESC LIMIT 10`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(2), int64(1), "info", "B", "b", false, now).
			AddRow(int64(1), int64(1), "info", "A", "a", true, now.Add(-time.Minute)))

	list, err := repo.ListByUser(context.Background(), 1, domain.NotificationsListLimit)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)
	assert.True(t, list[1].Read)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM notifications WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 3)

	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkRead(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`UPDATE notifications SET read = \$1 WHERE id = \$2`).
		WithArgs(true, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE notifications SET read = \$1 WHERE id = \$2`).
		WithArgs(true, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.MarkRead(context.Background(), 3))
	assert.ErrorIs(t, repo.MarkRead(context.Background(), 4), ErrNotificationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
