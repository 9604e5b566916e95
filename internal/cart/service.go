package cart

import (
	"context"
	"errors"

	"kebab-sayank-be/internal/auth"
	"kebab-sayank-be/internal/logger"
	"kebab-sayank-be/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductReader is the slice of the catalog the cart needs.
type ProductReader interface {
	Get(ctx context.Context, id uuid.UUID) (*product.Product, error)
}

type Service interface {
	Get(ctx context.Context, sess *auth.Session) (*Cart, error)
	Add(ctx context.Context, sess *auth.Session, productID uuid.UUID, qty int) (*Cart, error)
	Remove(ctx context.Context, sess *auth.Session, productID uuid.UUID) (*Cart, error)
	UpdateQuantity(ctx context.Context, sess *auth.Session, productID uuid.UUID, delta int) (*Cart, error)
	Clear(ctx context.Context, sess *auth.Session) error
}

type service struct {
	store    Store
	products ProductReader
}

func NewService(store Store, products ProductReader) Service {
	return &service{store: store, products: products}
}

func (s *service) Get(ctx context.Context, sess *auth.Session) (*Cart, error) {
	if err := sess.Authorize(); err != nil {
		return nil, err
	}
	return s.store.Load(ctx, sess.UserID)
}

func (s *service) Add(ctx context.Context, sess *auth.Session, productID uuid.UUID, qty int) (*Cart, error) {
	if err := sess.Authorize(); err != nil {
		return nil, err
	}

	log := logger.For(ctx, "service", "AddToCart").With(
		zap.String("user_id", sess.UserID.String()),
		zap.String("product_id", productID.String()),
		zap.Int("quantity", qty),
	)

	if productID == uuid.Nil || qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.products.Get(ctx, productID)
	if errors.Is(err, product.ErrProductNotFound) {
		return nil, ErrInvalidPrice
	}
	if err != nil {
		log.Error("failed to load product", zap.Error(err))
		return nil, err
	}

	c, err := s.store.Load(ctx, sess.UserID)
	if err != nil {
		log.Error("failed to load cart", zap.Error(err))
		return nil, err
	}

	if err := c.AddLine(*p, qty); err != nil {
		log.Info("AddToCart rejected", zap.Error(err))
		return nil, err
	}

	if err := s.store.Save(ctx, sess.UserID, c); err != nil {
		log.Error("failed to save cart", zap.Error(err))
		return nil, err
	}

	log.Info("AddToCart success")
	return c, nil
}

func (s *service) Remove(ctx context.Context, sess *auth.Session, productID uuid.UUID) (*Cart, error) {
	return s.mutate(ctx, sess, "RemoveFromCart", func(c *Cart) error {
		return c.RemoveLine(productID)
	})
}

// UpdateQuantity refreshes the product stock from the catalog before applying
// the step so an increment is checked against the current figure.
func (s *service) UpdateQuantity(ctx context.Context, sess *auth.Session, productID uuid.UUID, delta int) (*Cart, error) {
	return s.mutate(ctx, sess, "UpdateCartQuantity", func(c *Cart) error {
		if delta > 0 {
			p, err := s.products.Get(ctx, productID)
			if err != nil {
				return err
			}
			c.SyncStock(productID, p.Stock)
		}
		return c.UpdateQuantity(productID, delta)
	})
}

func (s *service) Clear(ctx context.Context, sess *auth.Session) error {
	if err := sess.Authorize(); err != nil {
		return err
	}
	return s.store.Delete(ctx, sess.UserID)
}

func (s *service) mutate(ctx context.Context, sess *auth.Session, method string, fn func(*Cart) error) (*Cart, error) {
	if err := sess.Authorize(); err != nil {
		return nil, err
	}

	log := logger.For(ctx, "service", method).With(zap.String("user_id", sess.UserID.String()))

	c, err := s.store.Load(ctx, sess.UserID)
	if err != nil {
		log.Error("failed to load cart", zap.Error(err))
		return nil, err
	}

	if err := fn(c); err != nil {
		log.Info(method+" rejected", zap.Error(err))
		return nil, err
	}

	if err := s.store.Save(ctx, sess.UserID, c); err != nil {
		log.Error("failed to save cart", zap.Error(err))
		return nil, err
	}
	return c, nil
}
