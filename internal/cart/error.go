package cart

import (
	"errors"
	"fmt"
)

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("Pilih produk dan masukkan kuantitas yang valid.")
	ErrInvalidPrice    = errors.New("Produk tidak ditemukan atau harga tidak valid.")

	// -- Resource State --
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrLineNotFound      = errors.New("produk tidak ada di keranjang")

	// -- Store Failures --
	ErrFailedLoadCart = errors.New("failed to load cart")
	ErrFailedSaveCart = errors.New("failed to save cart")
)

// InsufficientStockError reports a quantity that exceeds what is left.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Kuantitas untuk %s melebihi stok yang tersedia. Stok tersisa: %d.", e.ProductName, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
