package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderCreated       = "OrderCreated"
	EventOrderStatusChanged = "OrderStatusChanged"
	EventOrderDeleted       = "OrderDeleted"
)

const (
	producerName  = "kebab-sayank-be"
	schemaVersion = 1
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type OrderLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

type OrderCreatedPayload struct {
	OrderID       string      `json:"order_id"`
	OrderNumber   int64       `json:"order_number"`
	CustomerRef   string      `json:"customer_ref"`
	OrderType     string      `json:"order_type"`
	PaymentMethod string      `json:"payment_method"`
	TotalItems    int         `json:"total_items"`
	TotalPrice    int64       `json:"total_price"`
	Lines         []OrderLine `json:"lines"`
}

type OrderStatusChangedPayload struct {
	OrderID     string     `json:"order_id"`
	OrderNumber int64      `json:"order_number"`
	From        string     `json:"from"`
	To          string     `json:"to"`
	PrintedAt   *time.Time `json:"printed_at,omitempty"`
}

type OrderDeletedPayload struct {
	OrderID     string `json:"order_id"`
	OrderNumber int64  `json:"order_number"`
}

// NewEnvelope wraps payload into a versioned event. correlationID is usually
// the order id, traceID the request id.
func NewEnvelope(eventType, correlationID, traceID string, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}

	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  schemaVersion,
		OccurredAt:    time.Now().UTC(),
		Producer:      producerName,
		TraceID:       traceID,
		CorrelationID: correlationID,
		Payload:       raw,
	}, nil
}

// UnwrapPayload decodes the payload of an envelope into T.
func UnwrapPayload[T any](payload json.RawMessage) (T, error) {
	var t T
	if err := json.Unmarshal(payload, &t); err != nil {
		return t, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
