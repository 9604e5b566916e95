package product

import (
	"time"

	"github.com/google/uuid"
)

// UnknownCategoryName labels products whose category was removed.
const UnknownCategoryName = "Unknown Category"

// CategoryRef is the category a product belongs to, as read through the
// product listing join.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type Product struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       int64      `json:"price"`
	Stock       int        `json:"stock"`
	CategoryID  *uuid.UUID `json:"categoryId"`
	// Categories is never nil. It holds zero or one entry today.
	Categories []CategoryRef `json:"categories"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// Purchasable reports whether the product may be offered for sale.
func (p *Product) Purchasable() bool {
	return p.Stock > 0
}

// PrimaryCategory returns the first category reference, or a placeholder
// with a nil id when the product has none.
func (p *Product) PrimaryCategory() CategoryRef {
	if len(p.Categories) > 0 {
		return p.Categories[0]
	}
	return CategoryRef{ID: uuid.Nil, Name: UnknownCategoryName}
}

type ListFilter struct {
	CategoryID  *uuid.UUID
	Search      string
	InStockOnly bool
}

func (f ListFilter) IsZero() bool {
	return f.CategoryID == nil && f.Search == "" && !f.InStockOnly
}

type Input struct {
	Name        string
	Description string
	Price       int64
	Stock       int
	CategoryID  *uuid.UUID
}
