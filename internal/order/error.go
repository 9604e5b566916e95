package order

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// -- Lookup --
	ErrOrderNotFound = errors.New("pesanan tidak ditemukan")

	// -- Lifecycle --
	ErrInvalidTransition = errors.New("status pesanan tidak dapat diubah")
	ErrOrderConflict     = errors.New("pesanan sudah diubah oleh proses lain")
	ErrNotPending        = errors.New("pesanan sudah tidak dalam status pending")

	// -- Persistence --
	ErrOrderNumberTaken       = errors.New("order number already used")
	ErrOrderNumberExhausted   = errors.New("failed to allocate a unique order number")
	ErrDuplicateSubmission    = errors.New("pesanan sedang diproses")
	ErrRemoteStoreUnavailable = errors.New("Terjadi kesalahan, silakan coba lagi")
)

const constraintOrderNumber = "orders_order_number_key"

// ValidationError is a user correctable problem with the submitted form.
type ValidationError struct {
	Field   string
	Message string
	// Shortfall is set when the payment does not cover the total.
	Shortfall int64
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StockConflictError is returned when a product ran out between the cart
// check and the commit. The whole order is rolled back.
type StockConflictError struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int
	Available   int
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("Kuantitas untuk %s melebihi stok yang tersedia. Stok tersisa: %d.", e.ProductName, e.Available)
}

// RemoteStoreError wraps a failed store call. Callers show a generic message.
type RemoteStoreError struct {
	Op  string
	Err error
}

func (e *RemoteStoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteStoreError) Unwrap() error {
	return e.Err
}
