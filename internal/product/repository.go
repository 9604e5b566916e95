package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"kebab-sayank-be/internal/db"
	"kebab-sayank-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	NameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectProduct = `
	SELECT p.id, p.name, p.description, p.price, p.stock, p.category_id, p.created_at, c.name
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
`

// scanProduct reads one joined row and normalizes the optional category into
// the Categories slice.
func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var (
		p            Product
		categoryID   uuid.NullUUID
		categoryName sql.NullString
	)

	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &categoryID, &p.CreatedAt, &categoryName)
	if err != nil {
		return nil, err
	}

	p.Categories = normalizeCategories(categoryID, categoryName)
	if categoryID.Valid {
		id := categoryID.UUID
		p.CategoryID = &id
	}
	return &p, nil
}

func normalizeCategories(id uuid.NullUUID, name sql.NullString) []CategoryRef {
	if !id.Valid || !name.Valid {
		return []CategoryRef{}
	}
	return []CategoryRef{{ID: id.UUID, Name: name.String}}
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	log := logger.For(ctx, "repository", "ListProducts").With(
		zap.String("search", filter.Search),
		zap.Bool("in_stock_only", filter.InStockOnly),
	)

	query := selectProduct
	where := []string{}
	args := []interface{}{}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where = append(where, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("p.name ILIKE $%d", len(args)))
	}
	if filter.InStockOnly {
		where = append(where, "p.stock > 0")
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY p.created_at DESC"

	log.Debug("Executing ListProducts query", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed ListProducts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return products, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, selectProduct+" WHERE p.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.For(ctx, "repository", "GetProduct").Error("DB query failed", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func mapWriteError(err error) error {
	switch {
	case db.IsUniqueViolation(err, constraintNameUnique):
		return ErrProductNameTaken
	case db.IsForeignKeyViolation(err):
		return ErrCategoryNotFound
	}
	return err
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	log := logger.For(ctx, "repository", "CreateProduct").With(zap.String("name", p.Name))

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (id, name, description, price, stock, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, p.ID, p.Name, p.Description, p.Price, p.Stock, p.CategoryID).Scan(&p.CreatedAt)
	if err != nil {
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		log.Error("CreateProduct DB query failed", zap.Error(err))
		return fmt.Errorf("create product failed: %w", err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	log := logger.For(ctx, "repository", "UpdateProduct").With(zap.String("product_id", p.ID.String()))

	err := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4, category_id = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING created_at
	`, p.Name, p.Description, p.Price, p.Stock, p.CategoryID, p.ID).Scan(&p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		log.Error("UpdateProduct DB query failed", zap.Error(err))
		return fmt.Errorf("update product failed: %w", err)
	}
	return nil
}

// Delete removes the product. Order lines keep their snapshot and lose only
// the reference.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		logger.For(ctx, "repository", "DeleteProduct").Error("DeleteProduct DB query failed", zap.Error(err))
		return fmt.Errorf("delete product failed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) NameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM products WHERE LOWER(name) = LOWER($1)`
	args := []interface{}{name}

	if excludeID != nil {
		query += ` AND id <> $2`
		args = append(args, *excludeID)
	}
	query += `)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		logger.For(ctx, "repository", "ProductNameExists").Error("DB query failed", zap.Error(err))
		return false, err
	}
	return exists, nil
}
