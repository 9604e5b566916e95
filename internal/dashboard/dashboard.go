package dashboard

import (
	"context"
	"database/sql"

	"kebab-sayank-be/internal/auth"
	"kebab-sayank-be/internal/logger"
	"kebab-sayank-be/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CategoryShare struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ProductCount int       `json:"productCount"`
}

type Summary struct {
	TotalProducts   int             `json:"totalProducts"`
	TotalCategories int             `json:"totalCategories"`
	TotalOrders     int             `json:"totalOrders"`
	PendingOrders   int             `json:"pendingOrders"`
	Revenue         int64           `json:"revenue"`
	Categories      []CategoryShare `json:"categories"`
}

type Repository interface {
	Summary(ctx context.Context) (*Summary, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Summary(ctx context.Context) (*Summary, error) {
	log := logger.For(ctx, "repository", "DashboardSummary")
	defer metrics.StartTimer().ObserveDB("dashboard_summary")

	var s Summary
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM orders WHERE status = 'pending'),
			(SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE status = 'completed')
	`).Scan(&s.TotalProducts, &s.TotalCategories, &s.TotalOrders, &s.PendingOrders, &s.Revenue)
	if err != nil {
		log.Error("failed to read totals", zap.Error(err))
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name, COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id, c.name, c.created_at
		ORDER BY c.created_at DESC
	`)
	if err != nil {
		log.Error("failed to read category shares", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	s.Categories = []CategoryShare{}
	for rows.Next() {
		var c CategoryShare
		if err := rows.Scan(&c.ID, &c.Name, &c.ProductCount); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		s.Categories = append(s.Categories, c)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	return &s, nil
}

type Service interface {
	Summary(ctx context.Context, sess *auth.Session) (*Summary, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Summary(ctx context.Context, sess *auth.Session) (*Summary, error) {
	if err := sess.Authorize(auth.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.Summary(ctx)
}
