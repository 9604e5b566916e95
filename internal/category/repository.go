package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kebab-sayank-be/internal/db"
	"kebab-sayank-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	NameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]*Category, error) {
	log := logger.For(ctx, "repository", "ListCategories")

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.description, c.created_at, COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id
		ORDER BY c.created_at DESC
	`)
	if err != nil {
		log.Error("DB query failed ListCategories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.ProductCount); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return categories, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx, `
		SELECT c.id, c.name, c.description, c.created_at,
			(SELECT COUNT(*) FROM products p WHERE p.category_id = c.id)
		FROM categories c
		WHERE c.id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.ProductCount)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		logger.For(ctx, "repository", "GetCategory").Error("DB query failed", zap.Error(err))
		return nil, err
	}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, c *Category) error {
	log := logger.For(ctx, "repository", "CreateCategory").With(zap.String("name", c.Name))

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (id, name, description)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, c.ID, c.Name, c.Description).Scan(&c.CreatedAt)

	if db.IsUniqueViolation(err, constraintNameUnique) {
		return ErrCategoryNameTaken
	}
	if err != nil {
		log.Error("CreateCategory DB query failed", zap.Error(err))
		return fmt.Errorf("create category failed: %w", err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, c *Category) error {
	log := logger.For(ctx, "repository", "UpdateCategory").With(zap.String("category_id", c.ID.String()))

	err := r.db.QueryRowContext(ctx, `
		UPDATE categories
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING created_at
	`, c.Name, c.Description, c.ID).Scan(&c.CreatedAt)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrCategoryNotFound
	case db.IsUniqueViolation(err, constraintNameUnique):
		return ErrCategoryNameTaken
	case err != nil:
		log.Error("UpdateCategory DB query failed", zap.Error(err))
		return fmt.Errorf("update category failed: %w", err)
	}
	return nil
}

// Delete removes the category. Products keep existing with a NULL category.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		logger.For(ctx, "repository", "DeleteCategory").Error("DeleteCategory DB query failed", zap.Error(err))
		return fmt.Errorf("delete category failed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// NameExists compares names case-insensitively, optionally ignoring the
// category being edited.
func (r *repository) NameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE LOWER(name) = LOWER($1)`
	args := []interface{}{name}

	if excludeID != nil {
		query += ` AND id <> $2`
		args = append(args, *excludeID)
	}
	query += `)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		logger.For(ctx, "repository", "CategoryNameExists").Error("DB query failed", zap.Error(err))
		return false, err
	}
	return exists, nil
}
