package product

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productColumns = []string{"id", "name", "description", "price", "stock", "category_id", "created_at", "name"}

func TestNormalizeCategories(t *testing.T) {
	id := uuid.New()

	t.Run("Present", func(t *testing.T) {
		refs := normalizeCategories(uuid.NullUUID{UUID: id, Valid: true}, sql.NullString{String: "Kebab", Valid: true})
		assert.Equal(t, []CategoryRef{{ID: id, Name: "Kebab"}}, refs)
	})

	t.Run("Missing", func(t *testing.T) {
		refs := normalizeCategories(uuid.NullUUID{}, sql.NullString{})
		assert.NotNil(t, refs)
		assert.Empty(t, refs)
	})
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	categoryID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(productColumns).
			AddRow(uuid.NewString(), "Kebab Sapi", "", int64(25000), 10, categoryID.String(), time.Now(), "Kebab").
			AddRow(uuid.NewString(), "Es Teh", "", int64(5000), 0, nil, time.Now(), nil)

		mock.ExpectQuery("FROM products p LEFT JOIN categories c .* ORDER BY p.created_at DESC").
			WillReturnRows(rows)

		res, err := repo.List(context.Background(), ListFilter{})
		require.NoError(t, err)
		require.Len(t, res, 2)

		assert.Equal(t, []CategoryRef{{ID: categoryID, Name: "Kebab"}}, res[0].Categories)
		assert.Equal(t, categoryID, *res[0].CategoryID)
		assert.Nil(t, res[1].CategoryID)
		assert.Empty(t, res[1].Categories)
		assert.Equal(t, UnknownCategoryName, res[1].PrimaryCategory().Name)
	})

	t.Run("WithFilters", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("WHERE p.category_id = $1 AND p.name ILIKE $2 AND p.stock > 0")).
			WithArgs(categoryID, "%kebab%").
			WillReturnRows(sqlmock.NewRows(productColumns))

		res, err := repo.List(context.Background(), ListFilter{CategoryID: &categoryID, Search: "kebab", InStockOnly: true})
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("FROM products").WillReturnError(errors.New("db error"))
		_, err := repo.List(context.Background(), ListFilter{})
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(productColumns).
				AddRow(id.String(), "Kebab Sapi", "Daging sapi", int64(25000), 3, nil, time.Now(), nil))

		p, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, p.ID)
		assert.Equal(t, int64(25000), p.Price)
		assert.True(t, p.Purchasable())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("FROM products p").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(productColumns))

		_, err := repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	categoryID := uuid.New()

	newProduct := func() *Product {
		return &Product{ID: uuid.New(), Name: "Kebab Sapi", Price: 25000, Stock: 10, CategoryID: &categoryID}
	}

	t.Run("Success", func(t *testing.T) {
		p := newProduct()
		now := time.Now()
		mock.ExpectQuery("INSERT INTO products").
			WithArgs(p.ID, p.Name, p.Description, p.Price, p.Stock, p.CategoryID).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

		require.NoError(t, repo.Create(context.Background(), p))
		assert.Equal(t, now, p.CreatedAt)
	})

	t.Run("DuplicateName", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO products").
			WillReturnError(&pq.Error{Code: "23505", Constraint: constraintNameUnique})

		err := repo.Create(context.Background(), newProduct())
		assert.ErrorIs(t, err, ErrProductNameTaken)
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO products").
			WillReturnError(&pq.Error{Code: "23503"})

		err := repo.Create(context.Background(), newProduct())
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO products").WillReturnError(errors.New("boom"))

		err := repo.Create(context.Background(), newProduct())
		assert.ErrorContains(t, err, "create product failed")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	p := &Product{ID: uuid.New(), Name: "Kebab Ayam", Price: 20000, Stock: 5}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("UPDATE products").
			WithArgs(p.Name, p.Description, p.Price, p.Stock, p.CategoryID, p.ID).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

		assert.NoError(t, repo.Update(context.Background(), p))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("UPDATE products").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}))

		assert.ErrorIs(t, repo.Update(context.Background(), p), ErrProductNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM products").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, repo.Delete(context.Background(), id))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM products").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrProductNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_NameExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	t.Run("WithoutExclude", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("LOWER(name) = LOWER($1))")).
			WithArgs("kebab sapi").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		exists, err := repo.NameExists(context.Background(), "kebab sapi", nil)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("WithExclude", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("AND id <> $2")).
			WithArgs("Kebab Sapi", id).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		exists, err := repo.NameExists(context.Background(), "Kebab Sapi", &id)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
