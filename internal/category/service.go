package category

import (
	"context"
	"strings"

	"kebab-sayank-be/internal/auth"
	"kebab-sayank-be/internal/cache"
	"kebab-sayank-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*Category, error)
	Get(ctx context.Context, id uuid.UUID) (*Category, error)
	Create(ctx context.Context, sess *auth.Session, in Input) (*Category, error)
	Update(ctx context.Context, sess *auth.Session, id uuid.UUID, in Input) (*Category, error)
	Delete(ctx context.Context, sess *auth.Session, id uuid.UUID) error
}

type service struct {
	repo  Repository
	cache cache.Cache
}

func NewService(repo Repository, c cache.Cache) Service {
	if c == nil {
		c = cache.Nop{}
	}
	return &service{repo: repo, cache: c}
}

func (s *service) List(ctx context.Context) ([]*Category, error) {
	log := logger.For(ctx, "service", "ListCategories")

	categories, err := s.repo.List(ctx)
	if err != nil {
		log.Error("failed to list categories", zap.Error(err))
		return nil, err
	}

	log.Info("ListCategories success", zap.Int("count", len(categories)))
	return categories, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) validate(ctx context.Context, in Input, excludeID *uuid.UUID) (Input, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	if in.Name == "" {
		return in, ErrCategoryNameRequired
	}

	exists, err := s.repo.NameExists(ctx, in.Name, excludeID)
	if err != nil {
		return in, err
	}
	if exists {
		return in, ErrCategoryNameTaken
	}
	return in, nil
}

func (s *service) Create(ctx context.Context, sess *auth.Session, in Input) (*Category, error) {
	if err := sess.Authorize(auth.RoleAdmin); err != nil {
		return nil, err
	}

	log := logger.For(ctx, "service", "CreateCategory").With(zap.String("name", in.Name))
	log.Info("CreateCategory started")

	in, err := s.validate(ctx, in, nil)
	if err != nil {
		log.Warn("CreateCategory rejected", zap.Error(err))
		return nil, err
	}

	c := &Category{ID: uuid.New(), Name: in.Name, Description: in.Description}
	if err := s.repo.Create(ctx, c); err != nil {
		log.Error("failed to create category", zap.Error(err))
		return nil, err
	}

	log.Info("CreateCategory success", zap.String("category_id", c.ID.String()))
	return c, nil
}

func (s *service) Update(ctx context.Context, sess *auth.Session, id uuid.UUID, in Input) (*Category, error) {
	if err := sess.Authorize(auth.RoleAdmin); err != nil {
		return nil, err
	}

	log := logger.For(ctx, "service", "UpdateCategory").With(zap.String("category_id", id.String()))

	in, err := s.validate(ctx, in, &id)
	if err != nil {
		log.Warn("UpdateCategory rejected", zap.Error(err))
		return nil, err
	}

	c := &Category{ID: id, Name: in.Name, Description: in.Description}
	if err := s.repo.Update(ctx, c); err != nil {
		log.Error("failed to update category", zap.Error(err))
		return nil, err
	}

	// Product listings embed the category name.
	s.invalidateProducts(ctx)
	return c, nil
}

func (s *service) Delete(ctx context.Context, sess *auth.Session, id uuid.UUID) error {
	if err := sess.Authorize(auth.RoleAdmin); err != nil {
		return err
	}

	log := logger.For(ctx, "service", "DeleteCategory").With(zap.String("category_id", id.String()))
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete category", zap.Error(err))
		return err
	}

	s.invalidateProducts(ctx)
	log.Info("DeleteCategory success")
	return nil
}

func (s *service) invalidateProducts(ctx context.Context) {
	if err := s.cache.Del(ctx, cache.KeyProductList); err != nil {
		logger.FromCtx(ctx).Warn("failed to invalidate product cache", zap.Error(err))
	}
}
