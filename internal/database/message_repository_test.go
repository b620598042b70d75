package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tattoospace/station-booking-backend/internal/models"
)

var messageTestColumns = []string{
	"id", "sender_id", "receiver_id", "sender_type", "receiver_type",
	"content", "timestamp", "read",
}

func TestMessageRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewMessageRepository(mockDB)

	now := time.Now()

	mock.ExpectQuery(`INSERT INTO messages`).
		WithArgs(sqlmock.AnyArg(), "user-1", "admin-1", models.ParticipantUser, models.ParticipantAdmin, "Need help with a booking").
		WillReturnRows(sqlmock.NewRows([]string{"timestamp"}).AddRow(now))

	message := &models.Message{
		SenderID:     "user-1",
		ReceiverID:   "admin-1",
		SenderType:   models.ParticipantUser,
		ReceiverType: models.ParticipantAdmin,
		Content:      "Need help with a booking",
	}

	require.NoError(t, repo.Create(message))
	assert.NotEmpty(t, message.ID)
	assert.Equal(t, now, message.Timestamp)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepositoryGetForParticipant(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewMessageRepository(mockDB)

	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM messages\s+WHERE sender_id = \$1 OR receiver_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(messageTestColumns).
			AddRow("m1", "user-1", "admin-1", "user", "admin", "Hello", now, true).
			AddRow("m2", "admin-1", "user-1", "admin", "user", "Hi, how can we help?", now, false))

	messages, err := repo.GetForParticipant("user-1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, models.ParticipantAdmin, messages[1].SenderType)
	assert.False(t, messages[1].Read)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepositoryMarkRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewMessageRepository(mockDB)

	t.Run("Receiver marks own message", func(t *testing.T) {
		mock.ExpectExec(`UPDATE messages SET read = TRUE WHERE id = \$1 AND receiver_id = \$2`).
			WithArgs("m1", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.MarkRead("m1", "user-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Non-receiver matches no rows", func(t *testing.T) {
		mock.ExpectExec(`UPDATE messages SET read = TRUE WHERE id = \$1 AND receiver_id = \$2`).
			WithArgs("m1", "user-2").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.MarkRead("m1", "user-2"), sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing message", func(t *testing.T) {
		mock.ExpectExec(`UPDATE messages SET read = TRUE WHERE id = \$1 AND receiver_id = \$2`).
			WithArgs("ghost", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.MarkRead("ghost", "user-1"), sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMessageRepositoryCountUnread(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewMessageRepository(mockDB)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM messages WHERE receiver_id = \$1 AND read = FALSE`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountUnread("user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
