package cart

import (
	"context"
	"fmt"

	"kebab-sayank-be/internal/cache"

	"github.com/google/uuid"
)

// Store persists carts keyed by the owning user.
type Store interface {
	Load(ctx context.Context, userID uuid.UUID) (*Cart, error)
	Save(ctx context.Context, userID uuid.UUID, c *Cart) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type store struct {
	cache cache.Cache
}

// NewStore keeps carts in c. Pass a redis backed cache in production and
// cache.NewMemory for a single instance.
func NewStore(c cache.Cache) Store {
	return &store{cache: c}
}

func key(userID uuid.UUID) string {
	return fmt.Sprintf(cache.KeyCart, userID)
}

func (s *store) Load(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	c := New()
	found, err := s.cache.GetJSON(ctx, key(userID), c)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoadCart, err)
	}
	if !found {
		return New(), nil
	}
	c.ensure()
	return c, nil
}

func (s *store) Save(ctx context.Context, userID uuid.UUID, c *Cart) error {
	if err := s.cache.SetJSON(ctx, key(userID), c, cache.TTLCart); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}
	return nil
}

func (s *store) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.cache.Del(ctx, key(userID))
}
