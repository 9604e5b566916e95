package order

import (
	"time"

	"github.com/google/uuid"
)

type OrderType string

const (
	OrderTypeDineIn   OrderType = "Dine In"
	OrderTypeTakeAway OrderType = "Take Away"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeDineIn || t == OrderTypeTakeAway
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "Cash"
	PaymentQRIS PaymentMethod = "QRIS"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentQRIS
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Customer is the contact snapshot taken when the order was placed.
type Customer struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Phone   string    `json:"phone"`
	Address string    `json:"address"`
}

type Order struct {
	ID            uuid.UUID      `json:"id"`
	OrderNumber   int64          `json:"orderNumber"`
	CustomerRef   uuid.UUID      `json:"customerRef"`
	Customer      Customer       `json:"customer"`
	Cashier       string         `json:"cashier"`
	OrderType     OrderType      `json:"orderType"`
	TotalItems    int            `json:"totalItems"`
	TotalPrice    int64          `json:"totalPrice"`
	PaymentMethod PaymentMethod  `json:"paymentMethod"`
	PaymentAmount int64          `json:"paymentAmount"`
	IncomeAmount  int64          `json:"incomeAmount"`
	Status        Status         `json:"status"`
	PrintedAt     *time.Time     `json:"printedAt"`
	CreatedAt     time.Time      `json:"createdAt"`
	Products      []OrderProduct `json:"products"`
}

// Change is the amount handed back to the customer.
func (o *Order) Change() int64 {
	return o.PaymentAmount - o.TotalPrice
}

// OrderProduct is an immutable snapshot of a cart line.
type OrderProduct struct {
	ID           uuid.UUID  `json:"id"`
	OrderID      uuid.UUID  `json:"orderId"`
	ProductID    *uuid.UUID `json:"productId"`
	ProductName  string     `json:"productName"`
	CategoryID   uuid.UUID  `json:"categoryId"`
	CategoryName string     `json:"categoryName"`
	UnitPrice    int64      `json:"unitPrice"`
	Quantity     int        `json:"quantity"`
	Subtotal     int64      `json:"subtotal"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// CheckoutInput is the submitted order form. PaymentAmount is kept as the
// raw text the cashier typed.
type CheckoutInput struct {
	CustomerRef     *uuid.UUID
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Cashier         string
	OrderType       string
	PaymentMethod   string
	PaymentAmount   string
	Status          string
	IdempotencyKey  string
}

type EditInput struct {
	Status    string
	PrintedAt *time.Time
}

type ListFilter struct {
	CustomerRef *uuid.UUID
	Status      *Status
	Search      string
	DateFrom    *time.Time
	DateTo      *time.Time
	Limit       *int32
	Page        *int32
}

// PaymentResult is returned when a pending order's payment is confirmed.
type PaymentResult struct {
	Order        *Order   `json:"order"`
	Change       int64    `json:"change"`
	Instructions []string `json:"instructions"`
}
