package cart

import (
	"kebab-sayank-be/internal/product"

	"github.com/google/uuid"
)

type Line struct {
	ProductID    uuid.UUID `json:"productId"`
	ProductName  string    `json:"productName"`
	CategoryID   uuid.UUID `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	UnitPrice    int64     `json:"unitPrice"`
	Quantity     int       `json:"quantity"`
	Subtotal     int64     `json:"subtotal"`
}

// Cart is a customer's selection before checkout. Stock holds the optimistic
// remaining stock per product, already reduced by the quantity in the cart.
type Cart struct {
	Lines []Line            `json:"lines"`
	Stock map[uuid.UUID]int `json:"stock"`
}

func New() *Cart {
	return &Cart{Lines: []Line{}, Stock: map[uuid.UUID]int{}}
}

func (c *Cart) ensure() {
	if c.Lines == nil {
		c.Lines = []Line{}
	}
	if c.Stock == nil {
		c.Stock = map[uuid.UUID]int{}
	}
}

func (c *Cart) find(productID uuid.UUID) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddLine merges qty of p into the cart. On error the cart is unchanged.
func (c *Cart) AddLine(p product.Product, qty int) error {
	c.ensure()

	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}

	idx := c.find(p.ID)
	existing := 0
	if idx >= 0 {
		existing = c.Lines[idx].Quantity
	}

	if existing+qty > p.Stock {
		return &InsufficientStockError{ProductName: p.Name, Available: p.Stock - existing}
	}

	if idx >= 0 {
		line := &c.Lines[idx]
		line.Quantity += qty
		line.UnitPrice = p.Price
		line.Subtotal = int64(line.Quantity) * p.Price
	} else {
		ref := p.PrimaryCategory()
		c.Lines = append(c.Lines, Line{
			ProductID:    p.ID,
			ProductName:  p.Name,
			CategoryID:   ref.ID,
			CategoryName: ref.Name,
			UnitPrice:    p.Price,
			Quantity:     qty,
			Subtotal:     int64(qty) * p.Price,
		})
	}

	c.Stock[p.ID] = p.Stock - existing - qty
	return nil
}

// RemoveLine drops the line and gives its quantity back to the optimistic stock.
func (c *Cart) RemoveLine(productID uuid.UUID) error {
	c.ensure()

	idx := c.find(productID)
	if idx < 0 {
		return ErrLineNotFound
	}

	c.Stock[productID] += c.Lines[idx].Quantity
	c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
	return nil
}

// UpdateQuantity applies a step of -1 or +1. Decrements floor at one.
func (c *Cart) UpdateQuantity(productID uuid.UUID, delta int) error {
	c.ensure()

	if delta != 1 && delta != -1 {
		return ErrInvalidQuantity
	}

	idx := c.find(productID)
	if idx < 0 {
		return ErrLineNotFound
	}
	line := &c.Lines[idx]

	next := line.Quantity + delta
	if next < 1 {
		next = 1
	}

	limit := c.Stock[productID] + line.Quantity
	if next > limit {
		return &InsufficientStockError{ProductName: line.ProductName, Available: c.Stock[productID]}
	}

	c.Stock[productID] -= next - line.Quantity
	line.Quantity = next
	line.Subtotal = int64(next) * line.UnitPrice
	return nil
}

// SyncStock records the latest catalog stock for a product already in the
// cart, keeping the optimistic figure relative to the cart quantity.
func (c *Cart) SyncStock(productID uuid.UUID, stock int) {
	c.ensure()

	idx := c.find(productID)
	if idx < 0 {
		return
	}
	c.Stock[productID] = stock - c.Lines[idx].Quantity
}

// AvailableStock returns the optimistic remaining stock, and false when the
// product has not been seen by this cart.
func (c *Cart) AvailableStock(productID uuid.UUID) (int, bool) {
	n, ok := c.Stock[productID]
	return n, ok
}

func (c *Cart) Totals() (totalItems int, totalPrice int64) {
	for _, l := range c.Lines {
		totalItems += l.Quantity
		totalPrice += l.Subtotal
	}
	return totalItems, totalPrice
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) Clear() {
	c.Lines = []Line{}
	c.Stock = map[uuid.UUID]int{}
}
