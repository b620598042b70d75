package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tattoospace/station-booking-backend/internal/models"
)

var bookingTestColumns = []string{
	"id", "space_id", "user_id", "host_id", "start_date", "end_date",
	"total_price", "status", "created_at", "updated_at",
}

func TestBookingRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		start := now.Add(24 * time.Hour)
		end := start.Add(3 * time.Hour)

		mock.ExpectQuery(`INSERT INTO bookings`).
			WithArgs(sqlmock.AnyArg(), "space-1", "user-1", "host-1", start, end, 225.0, models.BookingStatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		booking := &models.Booking{
			SpaceID:    "space-1",
			UserID:     "user-1",
			HostID:     "host-1",
			StartDate:  start,
			EndDate:    end,
			TotalPrice: 225,
			Status:     models.BookingStatusPending,
		}

		err := repo.Create(booking)
		require.NoError(t, err)
		assert.NotEmpty(t, booking.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnError(fmt.Errorf("database error"))

		err := repo.Create(&models.Booking{SpaceID: "space-1"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create booking")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepositoryGetActiveOverlapping(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)

	t.Run("Overlap found", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM bookings\s+WHERE space_id`).
			WithArgs("space-1", start, end).
			WillReturnRows(sqlmock.NewRows(bookingTestColumns).AddRow(
				"booking-1", "space-1", "user-2", "host-1",
				start.Add(-time.Hour), start.Add(time.Hour),
				150.0, "confirmed", now, now,
			))

		bookings, err := repo.GetActiveOverlapping("space-1", start, end)
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, models.BookingStatusConfirmed, bookings[0].Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No overlap", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM bookings\s+WHERE space_id`).
			WithArgs("space-1", start, end).
			WillReturnRows(sqlmock.NewRows(bookingTestColumns))

		bookings, err := repo.GetActiveOverlapping("space-1", start, end)
		require.NoError(t, err)
		assert.Empty(t, bookings)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepositoryUpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings SET status`).
			WithArgs("booking-1", models.BookingStatusConfirmed).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateStatus("booking-1", models.BookingStatusConfirmed))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings SET status`).
			WithArgs("missing", models.BookingStatusCancelled).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateStatus("missing", models.BookingStatusCancelled), sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepositoryGetByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE user_id`).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows(bookingTestColumns).
				AddRow("b1", "space-1", "user-1", "host-1", now, now.Add(time.Hour), 75.0, "pending", now, now).
				AddRow("b2", "space-2", "user-1", "host-2", now, now.Add(time.Hour), 40.0, "completed", now, now))

		bookings, err := repo.GetByUserID("user-1")
		require.NoError(t, err)
		assert.Len(t, bookings, 2)
		assert.Equal(t, "b1", bookings[0].ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty Result", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE user_id`).
			WithArgs("user-9").
			WillReturnRows(sqlmock.NewRows(bookingTestColumns))

		bookings, err := repo.GetByUserID("user-9")
		require.NoError(t, err)
		assert.Empty(t, bookings)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepositoryGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id`).
			WithArgs("booking-1").
			WillReturnRows(sqlmock.NewRows(bookingTestColumns).
				AddRow("booking-1", "space-1", "user-1", "host-1", now, now.Add(time.Hour), 75.0, "pending", now, now))

		booking, err := repo.GetByID("booking-1")
		require.NoError(t, err)
		assert.Equal(t, "booking-1", booking.ID)
		assert.Equal(t, models.BookingStatusPending, booking.Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		booking, err := repo.GetByID("missing")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, booking)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepositoryGetByHostID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE host_id`).
		WithArgs("host-1").
		WillReturnRows(sqlmock.NewRows(bookingTestColumns).
			AddRow("b1", "space-1", "user-1", "host-1", now, now.Add(time.Hour), 75.0, "confirmed", now, now))

	bookings, err := repo.GetByHostID("host-1")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "host-1", bookings[0].HostID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
