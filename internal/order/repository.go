package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"kebab-sayank-be/internal/db"
	"kebab-sayank-be/internal/logger"
	"kebab-sayank-be/internal/metrics"
	"kebab-sayank-be/internal/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	// CreateOrderTx writes the header, its lines and the stock decrements in
	// one transaction. Nothing is persisted when any step fails.
	CreateOrderTx(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, filter ListFilter) ([]*Order, error)
	// UpdateStatus moves the order from one status to another. A nil
	// printedAt keeps the stored value.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status, printedAt *time.Time) error
	SetPrintedAt(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func storeError(op string, err error) error {
	return &RemoteStoreError{Op: op, Err: err}
}

func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	log := logger.For(ctx, "repository", "CreateOrderTx").With(
		zap.String("order_id", o.ID.String()),
		zap.Int64("order_number", o.OrderNumber),
		zap.Int("line_count", len(o.Products)),
	)
	defer metrics.StartTimer().ObserveDB("order_create_tx")

	log.Debug("starting order transaction")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return storeError("begin order transaction", err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			} else {
				log.Debug("transaction rolled back")
			}
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			id, order_number, customer_ref, customer_name, customer_phone,
			customer_address, cashier, order_type, total_items, total_price,
			payment_method, payment_amount, income_amount, status, printed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING created_at
	`,
		o.ID,
		o.OrderNumber,
		o.CustomerRef,
		o.Customer.Name,
		o.Customer.Phone,
		o.Customer.Address,
		o.Cashier,
		string(o.OrderType),
		o.TotalItems,
		o.TotalPrice,
		string(o.PaymentMethod),
		o.PaymentAmount,
		o.IncomeAmount,
		string(o.Status),
		o.PrintedAt,
	).Scan(&o.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err, constraintOrderNumber) {
			log.Warn("order number collision")
			return ErrOrderNumberTaken
		}
		log.Error("failed to insert order", zap.Error(err))
		return storeError("insert order", err)
	}

	for i := range o.Products {
		line := &o.Products[i]
		if line.ID == uuid.Nil {
			line.ID = uuid.New()
		}
		line.OrderID = o.ID

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_products (
				id, order_id, product_id, product_name, category_id,
				category_name, unit_price, quantity, subtotal
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			RETURNING created_at
		`,
			line.ID,
			line.OrderID,
			line.ProductID,
			line.ProductName,
			line.CategoryID,
			line.CategoryName,
			line.UnitPrice,
			line.Quantity,
			line.Subtotal,
		).Scan(&line.CreatedAt)
		if err != nil {
			log.Error("failed to insert order line", zap.Int("line_index", i), zap.Error(err))
			return storeError("insert order line", err)
		}

		if line.ProductID == nil {
			continue
		}

		if err := decrementStock(ctx, tx, line); err != nil {
			log.Warn("stock decrement refused", zap.Int("line_index", i), zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return storeError("commit order", err)
	}

	committed = true
	log.Info("order transaction committed")
	return nil
}

// decrementStock refuses to take stock below zero.
func decrementStock(ctx context.Context, tx *sql.Tx, line *OrderProduct) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1
	`, line.Quantity, *line.ProductID)
	if err != nil {
		return storeError("decrement stock", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storeError("decrement stock", err)
	}
	if n > 0 {
		return nil
	}

	var available int
	err = tx.QueryRowContext(ctx, `SELECT stock FROM products WHERE id = $1`, *line.ProductID).Scan(&available)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return storeError("read stock", err)
	}

	return &StockConflictError{
		ProductID:   *line.ProductID,
		ProductName: line.ProductName,
		Requested:   line.Quantity,
		Available:   available,
	}
}

const selectOrder = `
	SELECT
		o.id, o.order_number, o.customer_ref, o.customer_name, o.customer_phone,
		o.customer_address, o.cashier, o.order_type, o.total_items, o.total_price,
		o.payment_method, o.payment_amount, o.income_amount, o.status,
		o.printed_at, o.created_at
	FROM orders o
`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var (
		o         Order
		printedAt sql.NullTime
	)

	err := row.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.CustomerRef,
		&o.Customer.Name,
		&o.Customer.Phone,
		&o.Customer.Address,
		&o.Cashier,
		&o.OrderType,
		&o.TotalItems,
		&o.TotalPrice,
		&o.PaymentMethod,
		&o.PaymentAmount,
		&o.IncomeAmount,
		&o.Status,
		&printedAt,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.Customer.ID = o.CustomerRef
	if printedAt.Valid {
		t := printedAt.Time
		o.PrintedAt = &t
	}
	o.Products = []OrderProduct{}
	return &o, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	log := logger.For(ctx, "repository", "GetOrder").With(zap.String("order_id", id.String()))

	o, err := scanOrder(r.db.QueryRowContext(ctx, selectOrder+" WHERE o.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, storeError("get order", err)
	}

	if err := r.attachLines(ctx, []*Order{o}); err != nil {
		log.Error("failed to load order lines", zap.Error(err))
		return nil, err
	}
	return o, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	limit, offset := utils.Pagination(filter.Limit, filter.Page)

	log := logger.For(ctx, "repository", "ListOrders").With(
		zap.Int32("limit", limit),
		zap.Int32("offset", offset),
	)

	query := selectOrder + " WHERE 1=1"
	args := []any{}
	argIndex := 1

	if filter.CustomerRef != nil {
		query += fmt.Sprintf(" AND o.customer_ref = $%d", argIndex)
		args = append(args, *filter.CustomerRef)
		argIndex++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND o.status = $%d", argIndex)
		args = append(args, string(*filter.Status))
		argIndex++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(
			" AND (o.customer_name ILIKE $%d OR o.cashier ILIKE $%d OR CAST(o.order_number AS TEXT) ILIKE $%d)",
			argIndex, argIndex, argIndex,
		)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}
	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND o.created_at >= $%d", argIndex)
		args = append(args, *filter.DateFrom)
		argIndex++
	}
	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND o.created_at < $%d", argIndex)
		args = append(args, *filter.DateTo)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	log.Debug("executing list orders query", zap.String("query", query))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, storeError("list orders", err)
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, storeError("list orders", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, storeError("list orders", err)
	}

	if err := r.attachLines(ctx, orders); err != nil {
		log.Error("failed to load order lines", zap.Error(err))
		return nil, err
	}

	return orders, nil
}

// attachLines loads the lines of every order in one query.
func (r *repository) attachLines(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, 0, len(orders))
	byID := make(map[uuid.UUID]*Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID.String())
		byID[o.ID] = o
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, category_id,
		       category_name, unit_price, quantity, subtotal, created_at
		FROM order_products
		WHERE order_id = ANY($1)
		ORDER BY created_at, id
	`, pq.Array(ids))
	if err != nil {
		return storeError("list order lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			line      OrderProduct
			productID uuid.NullUUID
		)
		if err := rows.Scan(
			&line.ID,
			&line.OrderID,
			&productID,
			&line.ProductName,
			&line.CategoryID,
			&line.CategoryName,
			&line.UnitPrice,
			&line.Quantity,
			&line.Subtotal,
			&line.CreatedAt,
		); err != nil {
			return storeError("scan order line", err)
		}
		if productID.Valid {
			id := productID.UUID
			line.ProductID = &id
		}

		if o, ok := byID[line.OrderID]; ok {
			o.Products = append(o.Products, line)
		}
	}

	if err := rows.Err(); err != nil {
		return storeError("list order lines", err)
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status, printedAt *time.Time) error {
	log := logger.For(ctx, "repository", "UpdateOrderStatus").With(
		zap.String("order_id", id.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, printed_at = COALESCE($2::timestamptz, printed_at), updated_at = NOW()
		WHERE id = $3 AND status = $4
	`, string(to), printedAt, id, string(from))
	if err != nil {
		log.Error("DB exec failed", zap.Error(err))
		return storeError("update order status", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storeError("update order status", err)
	}
	if n > 0 {
		return nil
	}

	// Nothing matched: either the order is gone or its status moved on.
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return storeError("update order status", err)
	}
	if !exists {
		return ErrOrderNotFound
	}
	log.Warn("status changed concurrently")
	return ErrOrderConflict
}

func (r *repository) SetPrintedAt(ctx context.Context, id uuid.UUID, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET printed_at = $1, updated_at = NOW() WHERE id = $2`, at, id)
	if err != nil {
		logger.For(ctx, "repository", "SetPrintedAt").Error("DB exec failed", zap.Error(err))
		return storeError("set printed_at", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storeError("set printed_at", err)
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// Delete removes the order. Lines go with it, stock is left as is.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		logger.For(ctx, "repository", "DeleteOrder").Error("DB exec failed", zap.Error(err))
		return storeError("delete order", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storeError("delete order", err)
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}
