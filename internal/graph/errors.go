package graph

import (
	"context"
	"errors"

	"kebab-sayank-be/internal/auth"
	"kebab-sayank-be/internal/cart"
	"kebab-sayank-be/internal/category"
	"kebab-sayank-be/internal/logger"
	"kebab-sayank-be/internal/order"
	"kebab-sayank-be/internal/product"
	"kebab-sayank-be/internal/receipt"
	"kebab-sayank-be/internal/user"

	"go.uber.org/zap"
)

var ErrInvalidID = errors.New("ID tidak valid")

// Messages of these errors are safe to show to the user as is.
var publicErrors = []error{
	ErrInvalidID,
	auth.ErrUnauthenticated,
	auth.ErrForbidden,

	user.ErrEmailRequired,
	user.ErrUsernameTooShort,
	user.ErrPasswordTooShort,
	user.ErrEmailExists,
	user.ErrUsernameTaken,
	user.ErrInvalidCredentials,
	user.ErrUserNotFound,

	category.ErrCategoryNotFound,
	category.ErrCategoryNameRequired,
	category.ErrCategoryNameTaken,

	product.ErrProductNotFound,
	product.ErrCategoryNotFound,
	product.ErrProductNameRequired,
	product.ErrProductNameTaken,
	product.ErrCategoryRequired,
	product.ErrInvalidPrice,
	product.ErrInvalidStock,

	cart.ErrInvalidQuantity,
	cart.ErrInvalidPrice,
	cart.ErrLineNotFound,

	order.ErrOrderNotFound,
	order.ErrInvalidTransition,
	order.ErrOrderConflict,
	order.ErrNotPending,
	order.ErrDuplicateSubmission,

	receipt.ErrIncompleteOrder,
	receipt.ErrCancelledOrder,
}

// codedError carries a machine readable code next to the user message.
type codedError struct {
	err        error
	extensions map[string]interface{}
}

func (e *codedError) Error() string { return e.err.Error() }

func (e *codedError) Unwrap() error { return e.err }

func (e *codedError) Extensions() map[string]interface{} { return e.extensions }

// present turns a service error into what the client gets to see. Anything
// not known to be user facing is logged and replaced by a generic message.
func present(ctx context.Context, method string, err error) error {
	if err == nil {
		return nil
	}

	var validation *order.ValidationError
	if errors.As(err, &validation) {
		ext := map[string]interface{}{"code": "VALIDATION", "field": validation.Field}
		if validation.Shortfall > 0 {
			ext["shortfall"] = validation.Shortfall
		}
		return &codedError{err: validation, extensions: ext}
	}

	var conflict *order.StockConflictError
	if errors.As(err, &conflict) {
		return &codedError{err: conflict, extensions: map[string]interface{}{
			"code":      "STOCK_CONFLICT",
			"productId": conflict.ProductID.String(),
			"available": conflict.Available,
		}}
	}

	var insufficient *cart.InsufficientStockError
	if errors.As(err, &insufficient) {
		return &codedError{err: insufficient, extensions: map[string]interface{}{
			"code":      "INSUFFICIENT_STOCK",
			"available": insufficient.Available,
		}}
	}

	for _, known := range publicErrors {
		if errors.Is(err, known) {
			return known
		}
	}

	logger.For(ctx, "graph", method).Error("request failed", zap.Error(err))
	return order.ErrRemoteStoreUnavailable
}
