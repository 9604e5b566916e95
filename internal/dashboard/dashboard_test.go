package dashboard

import (
	"context"
	"errors"
	"testing"

	"kebab-sayank-be/internal/auth"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Summary(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(NewRepository(db))
	admin := &auth.Session{UserID: uuid.New(), Role: auth.RoleAdmin}
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		kebab := uuid.New()
		mock.ExpectQuery("SELECT COUNT").
			WillReturnRows(sqlmock.NewRows([]string{"p", "c", "o", "pending", "revenue"}).
				AddRow(12, 3, 40, 5, int64(1250000)))
		mock.ExpectQuery("FROM categories c LEFT JOIN products p").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "count"}).
				AddRow(kebab.String(), "Kebab", 8).
				AddRow(uuid.NewString(), "Minuman", 4))

		s, err := svc.Summary(ctx, admin)
		require.NoError(t, err)
		assert.Equal(t, 12, s.TotalProducts)
		assert.Equal(t, 5, s.PendingOrders)
		assert.Equal(t, int64(1250000), s.Revenue)
		require.Len(t, s.Categories, 2)
		assert.Equal(t, CategoryShare{ID: kebab, Name: "Kebab", ProductCount: 8}, s.Categories[0])
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("db down"))

		_, err := svc.Summary(ctx, admin)
		assert.Error(t, err)
	})

	t.Run("CategoryRowsError", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT").
			WillReturnRows(sqlmock.NewRows([]string{"p", "c", "o", "pending", "revenue"}).
				AddRow(12, 3, 40, 5, int64(1250000)))
		mock.ExpectQuery("FROM categories c LEFT JOIN products p").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "count"}).
				AddRow(uuid.NewString(), "Kebab", 8).
				RowError(0, errors.New("connection reset")))

		s, err := svc.Summary(ctx, admin)
		assert.EqualError(t, err, "connection reset")
		assert.Nil(t, s)
	})

	t.Run("AdminOnly", func(t *testing.T) {
		_, err := svc.Summary(ctx, &auth.Session{UserID: uuid.New(), Role: auth.RoleCustomer})
		assert.ErrorIs(t, err, auth.ErrForbidden)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
