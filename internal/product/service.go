package product

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
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
	Get(ctx context.Context, id uuid.UUID) (*Product, error)
	Create(ctx context.Context, sess *auth.Session, in Input) (*Product, error)
	Update(ctx context.Context, sess *auth.Session, id uuid.UUID, in Input) (*Product, error)
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

// List serves the unfiltered listing from cache; filtered listings always
// hit the database.
func (s *service) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	log := logger.For(ctx, "service", "ListProducts")

	filter.Search = strings.TrimSpace(filter.Search)
	cacheable := filter.IsZero()

	if cacheable {
		var cached []*Product
		found, err := s.cache.GetJSON(ctx, cache.KeyProductList, &cached)
		if err != nil {
			log.Warn("product cache read failed", zap.Error(err))
		}
		if found {
			return cached, nil
		}
	}

	products, err := s.repo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list products", zap.Error(err))
		return nil, err
	}

	if cacheable {
		if err := s.cache.SetJSON(ctx, cache.KeyProductList, products, cache.TTLProductList); err != nil {
			log.Warn("product cache write failed", zap.Error(err))
		}
	}

	log.Info("ListProducts success", zap.Int("count", len(products)))
	return products, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) validate(ctx context.Context, in Input, excludeID *uuid.UUID) (Input, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	switch {
	case in.Name == "":
		return in, ErrProductNameRequired
	case in.CategoryID == nil || *in.CategoryID == uuid.Nil:
		return in, ErrCategoryRequired
	case in.Price < 0:
		return in, ErrInvalidPrice
	case in.Stock < 0:
		return in, ErrInvalidStock
	}

	exists, err := s.repo.NameExists(ctx, in.Name, excludeID)
	if err != nil {
		return in, err
	}
	if exists {
		return in, ErrProductNameTaken
	}
	return in, nil
}

func (s *service) Create(ctx context.Context, sess *auth.Session, in Input) (*Product, error) {
	if err := sess.Authorize(auth.RoleAdmin); err != nil {
		return nil, err
	}

	log := logger.For(ctx, "service", "CreateProduct").With(zap.String("name", in.Name))
	log.Info("CreateProduct started")

	in, err := s.validate(ctx, in, nil)
	if err != nil {
		log.Warn("CreateProduct rejected", zap.Error(err))
		return nil, err
	}

	p := &Product{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx)

	// Re-read so the category reference is populated.
	created, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		log.Warn("failed to reload created product", zap.Error(err))
		p.Categories = []CategoryRef{}
		return p, nil
	}

	log.Info("CreateProduct success", zap.String("product_id", p.ID.String()))
	return created, nil
}

func (s *service) Update(ctx context.Context, sess *auth.Session, id uuid.UUID, in Input) (*Product, error) {
	if err := sess.Authorize(auth.RoleAdmin); err != nil {
		return nil, err
	}

	log := logger.For(ctx, "service", "UpdateProduct").With(zap.String("product_id", id.String()))

	in, err := s.validate(ctx, in, &id)
	if err != nil {
		log.Warn("UpdateProduct rejected", zap.Error(err))
		return nil, err
	}

	p := &Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
	}
	if err := s.repo.Update(ctx, p); err != nil {
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx)

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Warn("failed to reload updated product", zap.Error(err))
		p.Categories = []CategoryRef{}
		return p, nil
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, sess *auth.Session, id uuid.UUID) error {
	if err := sess.Authorize(auth.RoleAdmin); err != nil {
		return err
	}

	log := logger.For(ctx, "service", "DeleteProduct").With(zap.String("product_id", id.String()))
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete product", zap.Error(err))
		return err
	}

	s.invalidate(ctx)
	log.Info("DeleteProduct success")
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if err := s.cache.Del(ctx, cache.KeyProductList); err != nil {
		logger.FromCtx(ctx).Warn("failed to invalidate product cache", zap.Error(err))
	}
}
