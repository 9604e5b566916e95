package order

import (
	"context"
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

var (
	orderColumns = []string{
		"id", "order_number", "customer_ref", "customer_name", "customer_phone",
		"customer_address", "cashier", "order_type", "total_items", "total_price",
		"payment_method", "payment_amount", "income_amount", "status",
		"printed_at", "created_at",
	}
	lineColumns = []string{
		"id", "order_id", "product_id", "product_name", "category_id",
		"category_name", "unit_price", "quantity", "subtotal", "created_at",
	}
)

func newOrder() *Order {
	productID := uuid.New()
	return &Order{
		ID:            uuid.New(),
		OrderNumber:   123456,
		CustomerRef:   uuid.New(),
		Customer:      Customer{Name: "Budi", Phone: "0812", Address: "Jl. Merdeka"},
		Cashier:       "Sari",
		OrderType:     OrderTypeTakeAway,
		TotalItems:    2,
		TotalPrice:    50000,
		PaymentMethod: PaymentQRIS,
		PaymentAmount: 50000,
		IncomeAmount:  50000,
		Status:        StatusPending,
		Products: []OrderProduct{{
			ProductID:    &productID,
			ProductName:  "Kebab Sapi",
			CategoryName: "Kebab",
			UnitPrice:    25000,
			Quantity:     2,
			Subtotal:     50000,
		}},
	}
}

func orderRow(id, customerRef uuid.UUID, status Status) *sqlmock.Rows {
	return sqlmock.NewRows(orderColumns).AddRow(
		id.String(), int64(42), customerRef.String(), "Budi", "0812", "Jl. Merdeka",
		"Sari", "Dine In", 3, int64(80000), "Cash", int64(100000), int64(100000),
		string(status), nil, time.Now(),
	)
}

func TestRepository_CreateOrderTx(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)
		o := newOrder()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO orders").
			WithArgs(o.ID, o.OrderNumber, o.CustomerRef, "Budi", "0812", "Jl. Merdeka", "Sari",
				"Take Away", 2, int64(50000), "QRIS", int64(50000), int64(50000), "pending", nil).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
		mock.ExpectQuery("INSERT INTO order_products").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
		mock.ExpectExec("UPDATE products").
			WithArgs(2, *o.Products[0].ProductID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.CreateOrderTx(ctx, o))
		assert.Equal(t, now, o.CreatedAt)
		assert.NotEqual(t, uuid.Nil, o.Products[0].ID)
		assert.Equal(t, o.ID, o.Products[0].OrderID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StockConflictRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)
		o := newOrder()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO orders").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		mock.ExpectQuery("INSERT INTO order_products").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		mock.ExpectExec("UPDATE products").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT stock FROM products").
			WithArgs(*o.Products[0].ProductID).
			WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(1))
		mock.ExpectRollback()

		err = repo.CreateOrderTx(ctx, o)

		var conflict *StockConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, 1, conflict.Available)
		assert.Equal(t, 2, conflict.Requested)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("OrderNumberCollision", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO orders").
			WillReturnError(&pq.Error{Code: "23505", Constraint: constraintOrderNumber})
		mock.ExpectRollback()

		err = repo.CreateOrderTx(ctx, newOrder())
		assert.ErrorIs(t, err, ErrOrderNumberTaken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("LineInsertFailsRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO orders").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		mock.ExpectQuery("INSERT INTO order_products").WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err = repo.CreateOrderTx(ctx, newOrder())

		var storeErr *RemoteStoreError
		require.True(t, errors.As(err, &storeErr))
		assert.Equal(t, "insert order line", storeErr.Op)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("BeginFails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

		err = NewRepository(db).CreateOrderTx(ctx, newOrder())
		assert.Error(t, err)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()
	customerRef := uuid.New()
	productID := uuid.New()

	t.Run("SuccessWithLines", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("WHERE o.id = $1")).
			WithArgs(id).
			WillReturnRows(orderRow(id, customerRef, StatusPending))
		mock.ExpectQuery("FROM order_products").
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(lineColumns).
				AddRow(uuid.NewString(), id.String(), productID.String(), "Kebab Sapi", uuid.NewString(), "Kebab", int64(25000), 2, int64(50000), time.Now()).
				AddRow(uuid.NewString(), id.String(), nil, "Es Teh", uuid.Nil.String(), "Unknown Category", int64(30000), 1, int64(30000), time.Now()))

		o, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)

		assert.Equal(t, OrderTypeDineIn, o.OrderType)
		assert.Equal(t, customerRef, o.Customer.ID)
		assert.Nil(t, o.PrintedAt)
		require.Len(t, o.Products, 2)
		assert.Equal(t, productID, *o.Products[0].ProductID)
		assert.Nil(t, o.Products[1].ProductID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("FROM orders o").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(orderColumns))

		_, err := repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("CustomerScopedWithFilters", func(t *testing.T) {
		customerRef := uuid.New()
		status := StatusPending
		id := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta("AND o.customer_ref = $1 AND o.status = $2 AND (o.customer_name ILIKE $3")).
			WithArgs(customerRef, "pending", "%budi%", int32(20), int32(0)).
			WillReturnRows(orderRow(id, customerRef, StatusPending))
		mock.ExpectQuery("FROM order_products").
			WillReturnRows(sqlmock.NewRows(lineColumns))

		orders, err := repo.List(context.Background(), ListFilter{CustomerRef: &customerRef, Status: &status, Search: "budi"})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Empty(t, orders[0].Products)
	})

	t.Run("EmptySkipsLines", func(t *testing.T) {
		limit := int32(500)
		mock.ExpectQuery("FROM orders o").
			WithArgs(int32(100), int32(0)).
			WillReturnRows(sqlmock.NewRows(orderColumns))

		orders, err := repo.List(context.Background(), ListFilter{Limit: &limit})
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery("FROM orders o").WillReturnError(errors.New("db down"))

		_, err := repo.List(context.Background(), ListFilter{})

		var storeErr *RemoteStoreError
		assert.True(t, errors.As(err, &storeErr))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders").
			WithArgs("completed", nil, id, "pending").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(context.Background(), id, StatusPending, StatusCompleted, nil))
	})

	t.Run("Conflict", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := repo.UpdateStatus(context.Background(), id, StatusPending, StatusCancelled, nil)
		assert.ErrorIs(t, err, ErrOrderConflict)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := repo.UpdateStatus(context.Background(), id, StatusPending, StatusCancelled, nil)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetPrintedAtAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()
	at := time.Now()

	mock.ExpectExec("UPDATE orders SET printed_at").WithArgs(at, id).WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.SetPrintedAt(context.Background(), id, at))

	mock.ExpectExec("UPDATE orders SET printed_at").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.SetPrintedAt(context.Background(), id, at), ErrOrderNotFound)

	mock.ExpectExec("DELETE FROM orders").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(context.Background(), id))

	mock.ExpectExec("DELETE FROM orders").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrOrderNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
