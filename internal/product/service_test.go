package product

import (
	"context"
	"errors"
	"testing"

	"kebab-sayank-be/internal/auth"
	"kebab-sayank-be/internal/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, p *Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, p *Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) NameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

// --- Tests ---

var (
	admin    = &auth.Session{UserID: uuid.New(), Role: auth.RoleAdmin}
	customer = &auth.Session{UserID: uuid.New(), Role: auth.RoleCustomer}
)

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("CachesUnfilteredListing", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, cache.NewMemory())

		products := []*Product{{ID: uuid.New(), Name: "Kebab Sapi", Price: 25000, Categories: []CategoryRef{}}}
		repo.On("List", ctx, ListFilter{}).Return(products, nil).Once()

		first, err := svc.List(ctx, ListFilter{})
		require.NoError(t, err)
		second, err := svc.List(ctx, ListFilter{Search: "   "})
		require.NoError(t, err)

		assert.Equal(t, first[0].ID, second[0].ID)
		repo.AssertNumberOfCalls(t, "List", 1)
	})

	t.Run("FilteredBypassesCache", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, cache.NewMemory())

		filter := ListFilter{Search: "ayam"}
		repo.On("List", ctx, filter).Return([]*Product{}, nil).Twice()

		_, err := svc.List(ctx, filter)
		require.NoError(t, err)
		_, err = svc.List(ctx, filter)
		require.NoError(t, err)

		repo.AssertExpectations(t)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)

		repo.On("List", ctx, ListFilter{}).Return(nil, errors.New("db error"))

		_, err := svc.List(ctx, ListFilter{})
		assert.Error(t, err)
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	categoryID := uuid.New()
	valid := Input{Name: "  Kebab Sapi ", Price: 25000, Stock: 10, CategoryID: &categoryID}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		c := cache.NewMemory()
		require.NoError(t, c.SetJSON(ctx, cache.KeyProductList, []*Product{}, cache.TTLProductList))
		svc := NewService(repo, c)

		repo.On("NameExists", ctx, "Kebab Sapi", (*uuid.UUID)(nil)).Return(false, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(p *Product) bool {
			return p.Name == "Kebab Sapi" && p.ID != uuid.Nil
		})).Return(nil)
		repo.On("GetByID", ctx, mock.Anything).Return(&Product{
			Name:       "Kebab Sapi",
			Categories: []CategoryRef{{ID: categoryID, Name: "Kebab"}},
		}, nil)

		p, err := svc.Create(ctx, admin, valid)
		require.NoError(t, err)
		assert.Equal(t, "Kebab", p.Categories[0].Name)

		var cached []*Product
		found, _ := c.GetJSON(ctx, cache.KeyProductList, &cached)
		assert.False(t, found)
	})

	t.Run("Forbidden", func(t *testing.T) {
		svc := NewService(new(MockRepository), nil)
		_, err := svc.Create(ctx, customer, valid)
		assert.ErrorIs(t, err, auth.ErrForbidden)
	})

	t.Run("Validation", func(t *testing.T) {
		svc := NewService(new(MockRepository), nil)

		cases := []struct {
			name string
			in   Input
			want error
		}{
			{"EmptyName", Input{Name: " ", Price: 1, CategoryID: &categoryID}, ErrProductNameRequired},
			{"NoCategory", Input{Name: "Kebab", Price: 1}, ErrCategoryRequired},
			{"NegativePrice", Input{Name: "Kebab", Price: -1, CategoryID: &categoryID}, ErrInvalidPrice},
			{"NegativeStock", Input{Name: "Kebab", Price: 1, Stock: -1, CategoryID: &categoryID}, ErrInvalidStock},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Create(ctx, admin, tc.in)
				assert.ErrorIs(t, err, tc.want)
			})
		}
	})

	t.Run("FreeItem", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)

		repo.On("NameExists", ctx, "Air Putih", (*uuid.UUID)(nil)).Return(false, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(p *Product) bool { return p.Price == 0 })).Return(nil)
		repo.On("GetByID", ctx, mock.Anything).Return(&Product{Name: "Air Putih", Price: 0, Stock: 5}, nil)

		p, err := svc.Create(ctx, admin, Input{Name: "Air Putih", Price: 0, Stock: 5, CategoryID: &categoryID})
		require.NoError(t, err)
		assert.Equal(t, int64(0), p.Price)
		repo.AssertExpectations(t)
	})

	t.Run("DuplicateName", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)

		repo.On("NameExists", ctx, "Kebab Sapi", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := svc.Create(ctx, admin, valid)
		assert.ErrorIs(t, err, ErrProductNameTaken)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	categoryID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)

		repo.On("NameExists", ctx, "Kebab Ayam", &id).Return(false, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*product.Product")).Return(nil)
		repo.On("GetByID", ctx, id).Return(&Product{ID: id, Name: "Kebab Ayam", Categories: []CategoryRef{}}, nil)

		p, err := svc.Update(ctx, admin, id, Input{Name: "Kebab Ayam", Price: 20000, CategoryID: &categoryID})
		require.NoError(t, err)
		assert.Equal(t, id, p.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)

		repo.On("NameExists", ctx, "Kebab Ayam", &id).Return(false, nil)
		repo.On("Update", ctx, mock.Anything).Return(ErrProductNotFound)

		_, err := svc.Update(ctx, admin, id, Input{Name: "Kebab Ayam", Price: 20000, CategoryID: &categoryID})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)
		repo.On("Delete", ctx, id).Return(nil)

		assert.NoError(t, svc.Delete(ctx, admin, id))
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		svc := NewService(new(MockRepository), nil)
		assert.ErrorIs(t, svc.Delete(ctx, nil, id), auth.ErrUnauthenticated)
	})
}
