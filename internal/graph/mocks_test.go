package graph

import (
	"context"

	"kebab-sayank-be/internal/auth"
	"kebab-sayank-be/internal/cart"
	"kebab-sayank-be/internal/order"
	"kebab-sayank-be/internal/product"
	"kebab-sayank-be/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, filter product.ListFilter) ([]*product.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, sess *auth.Session, in product.Input) (*product.Product, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, sess *auth.Session, id uuid.UUID, in product.Input) (*product.Product, error) {
	args := m.Called(ctx, sess, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, sess *auth.Session, id uuid.UUID) error {
	return m.Called(ctx, sess, id).Error(0)
}

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Get(ctx context.Context, sess *auth.Session) (*cart.Cart, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) Add(ctx context.Context, sess *auth.Session, productID uuid.UUID, qty int) (*cart.Cart, error) {
	args := m.Called(ctx, sess, productID, qty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) Remove(ctx context.Context, sess *auth.Session, productID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, sess, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, sess *auth.Session, productID uuid.UUID, delta int) (*cart.Cart, error) {
	args := m.Called(ctx, sess, productID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, sess *auth.Session) error {
	return m.Called(ctx, sess).Error(0)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) orderResult(args mock.Arguments) (*order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) Create(ctx context.Context, sess *auth.Session, in order.CheckoutInput, c *cart.Cart) (*order.Order, error) {
	return m.orderResult(m.Called(ctx, sess, in, c))
}

func (m *MockOrderService) Checkout(ctx context.Context, sess *auth.Session, in order.CheckoutInput) (*order.Order, error) {
	return m.orderResult(m.Called(ctx, sess, in))
}

func (m *MockOrderService) List(ctx context.Context, sess *auth.Session, filter order.ListFilter) ([]*order.Order, error) {
	args := m.Called(ctx, sess, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, sess *auth.Session, id uuid.UUID) (*order.Order, error) {
	return m.orderResult(m.Called(ctx, sess, id))
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, sess *auth.Session, id uuid.UUID, in order.EditInput) (*order.Order, error) {
	return m.orderResult(m.Called(ctx, sess, id, in))
}

func (m *MockOrderService) Cancel(ctx context.Context, sess *auth.Session, id uuid.UUID) (*order.Order, error) {
	return m.orderResult(m.Called(ctx, sess, id))
}

func (m *MockOrderService) ConfirmPayment(ctx context.Context, sess *auth.Session, id uuid.UUID) (*order.PaymentResult, error) {
	args := m.Called(ctx, sess, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.PaymentResult), args.Error(1)
}

func (m *MockOrderService) MarkPrinted(ctx context.Context, sess *auth.Session, id uuid.UUID) (*order.Order, error) {
	return m.orderResult(m.Called(ctx, sess, id))
}

func (m *MockOrderService) Delete(ctx context.Context, sess *auth.Session, id uuid.UUID) error {
	return m.Called(ctx, sess, id).Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, in user.RegisterInput) (*user.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*user.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockUserService) Profile(ctx context.Context, sess *auth.Session) (*user.User, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, sess *auth.Session, in user.UpdateProfileInput) (*user.User, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) ListCustomers(ctx context.Context, sess *auth.Session, search string) ([]*user.User, error) {
	args := m.Called(ctx, sess, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}
