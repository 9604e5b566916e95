package user

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"kebab-sayank-be/internal/auth"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "email", "username", "display_name", "phone", "address", "role", "password_hash", "created_at"}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	u := &User{ID: uuid.New(), Email: "budi@example.com", Username: "budi", DisplayName: "Budi", Role: auth.RoleCustomer, PasswordHash: "hash"}

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.ID, u.Email, u.Username, u.DisplayName, "", "", u.Role, u.PasswordHash).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

		require.NoError(t, repo.Create(context.Background(), u))
		assert.Equal(t, now, u.CreatedAt)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		assert.ErrorIs(t, repo.Create(context.Background(), u), ErrEmailExists)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})

		assert.ErrorIs(t, repo.Create(context.Background(), u), ErrUsernameTaken)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").WillReturnError(errors.New("db error"))
		assert.Error(t, repo.Create(context.Background(), u))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE LOWER(email) = LOWER($1)")).
			WithArgs("budi@example.com").
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow(id.String(), "budi@example.com", "budi", "Budi", "0812", "Surabaya", "customer", "hash", time.Now()))

		u, err := repo.GetByEmail(context.Background(), "budi@example.com")
		require.NoError(t, err)
		assert.Equal(t, id, u.ID)
		assert.Equal(t, auth.RoleCustomer, u.Role)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("FROM users").WillReturnRows(sqlmock.NewRows(userCols))

		_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_UpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()
	phone := " 0812 "

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET phone = $1, updated_at = NOW() WHERE id = $2")).
			WithArgs("0812", id).
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow(id.String(), "budi@example.com", "budi", "Budi", "0812", "", "customer", "hash", time.Now()))

		u, err := repo.UpdateProfile(context.Background(), id, UpdateProfileInput{Phone: &phone})
		require.NoError(t, err)
		assert.Equal(t, "0812", u.Phone)
	})

	t.Run("NothingToUpdate", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow(id.String(), "budi@example.com", "budi", "Budi", "0812", "", "customer", "hash", time.Now()))

		_, err := repo.UpdateProfile(context.Background(), id, UpdateProfileInput{})
		require.NoError(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListCustomers(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("FROM users WHERE role = \\$1 AND \\(username ILIKE \\$2").
		WithArgs(auth.RoleCustomer, "%bu%").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(uuid.NewString(), "budi@example.com", "budi", "Budi", "0812", "", "customer", "hash", time.Now()))

	users, err := repo.ListCustomers(context.Background(), "bu")
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
