package database

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tattoospace/station-booking-backend/internal/models"
)

var userTestColumns = []string{
	"id", "name", "email", "password_hash",
	"avatar", "bio", "phone", "website", "instagram", "portfolio",
	"is_host", "is_artist",
	"subscription_id", "subscription_type", "subscription_active", "subscription_expires_at",
	"subscription_price", "subscription_billing_cycle", "subscription_setup_fee",
	"created_at", "updated_at",
}

func userTestRow(id string, now time.Time, sub []driver.Value) []driver.Value {
	row := []driver.Value{
		id, "Mia Torres", "mia@example.com", "$2a$10$hash",
		nil, nil, nil, nil, nil, []byte(`{}`),
		false, false,
	}
	row = append(row, sub...)
	return append(row, now, now)
}

func noSubscription() []driver.Value {
	return []driver.Value{nil, nil, nil, nil, nil, nil, nil}
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewUserRepository(mockDB)

	t.Run("Without subscription", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
			WithArgs("mia@example.com").
			WillReturnRows(sqlmock.NewRows(userTestColumns).
				AddRow(userTestRow("user-1", now, noSubscription())...))

		user, err := repo.GetByEmail("mia@example.com")
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Nil(t, user.Subscription)
		assert.False(t, user.IsHost)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("With subscription", func(t *testing.T) {
		now := time.Now()
		expires := now.AddDate(0, 0, 28)
		sub := []driver.Value{"plan-1", "host", true, expires, 29.99, "monthly", 10.0}

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
			WithArgs("mia@example.com").
			WillReturnRows(sqlmock.NewRows(userTestColumns).
				AddRow(userTestRow("user-1", now, sub)...))

		user, err := repo.GetByEmail("mia@example.com")
		require.NoError(t, err)
		require.NotNil(t, user.Subscription)
		assert.Equal(t, models.SubscriptionTypeHost, user.Subscription.Type)
		assert.True(t, user.Subscription.Active)
		require.NotNil(t, user.Subscription.SetupFee)
		assert.Equal(t, 10.0, *user.Subscription.SetupFee)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
			WithArgs("ghost@example.com").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetByEmail("ghost@example.com")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepositoryGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewUserRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE id`).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows(userTestColumns).
				AddRow(userTestRow("user-1", now, noSubscription())...))

		user, err := repo.GetByID("user-1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, "mia@example.com", user.Email)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE id`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetByID("missing")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepositorySetSubscription(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewUserRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		expires := time.Now().AddDate(0, 0, 28)
		sub := &models.UserSubscription{
			ID:           "plan-1",
			Type:         models.SubscriptionTypeHost,
			Active:       true,
			ExpiresAt:    expires,
			Price:        29.99,
			BillingCycle: models.BillingCycleMonthly,
		}

		mock.ExpectExec(`UPDATE users\s+SET subscription_id`).
			WithArgs("user-1", "plan-1", models.SubscriptionTypeHost, true, expires, 29.99, models.BillingCycleMonthly, nil).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SetSubscription("user-1", sub))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("User Not Found", func(t *testing.T) {
		sub := &models.UserSubscription{ID: "plan-1", Type: models.SubscriptionTypeArtist}

		mock.ExpectExec(`UPDATE users\s+SET subscription_id`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetSubscription("missing", sub), sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepositoryClearSubscription(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewUserRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users\s+SET subscription_id = NULL`).
			WithArgs("user-1", models.SubscriptionTypeHost).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.ClearSubscription("user-1", models.SubscriptionTypeHost))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("User Not Found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users\s+SET subscription_id = NULL`).
			WithArgs("missing", models.SubscriptionTypeArtist).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.ClearSubscription("missing", models.SubscriptionTypeArtist), sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepositoryToggleFavorite(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewUserRepository(mockDB)

	t.Run("Adds when absent", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM user_favorites`).
			WithArgs("user-1", "space-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO user_favorites`).
			WithArgs("user-1", "space-1").
			WillReturnResult(sqlmock.NewResult(1, 1))

		favorited, err := repo.ToggleFavorite("user-1", "space-1")
		require.NoError(t, err)
		assert.True(t, favorited)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Removes when present", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM user_favorites`).
			WithArgs("user-1", "space-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		favorited, err := repo.ToggleFavorite("user-1", "space-1")
		require.NoError(t, err)
		assert.False(t, favorited)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM user_favorites`).
			WithArgs("user-1", "space-1").
			WillReturnError(fmt.Errorf("database error"))

		_, err := repo.ToggleFavorite("user-1", "space-1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to toggle favorite")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
