package graph

import (
	"math"
	"strings"
	"time"

	"kebab-sayank-be/internal/cart"
	"kebab-sayank-be/internal/category"
	"kebab-sayank-be/internal/dashboard"
	"kebab-sayank-be/internal/order"
	"kebab-sayank-be/internal/product"
	"kebab-sayank-be/internal/receipt"
	"kebab-sayank-be/internal/user"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
)

// Resolver holds the services the schema resolves against.
type Resolver struct {
	UserSvc      user.Service
	CategorySvc  category.Service
	ProductSvc   product.Service
	CartSvc      cart.Service
	OrderSvc     order.Service
	DashboardSvc dashboard.Service

	Store          receipt.Store
	WhatsAppNumber string

	// TokenTTL and SecureCookies shape the access token cookie set on login.
	TokenTTL      time.Duration
	SecureCookies bool
}

func NewSchema(r *Resolver) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    r.queryType(),
		Mutation: r.mutationType(),
	})
}

// -- Argument helpers --

func argString(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}

func argStringPtr(args map[string]interface{}, name string) *string {
	s, ok := args[name].(string)
	if !ok {
		return nil
	}
	return &s
}

func argInt(args map[string]interface{}, name string) int {
	n, _ := args[name].(int)
	return n
}

// argMoney reads a Float money argument as whole rupiah. Fractions and
// values outside int64 are rejected with invalid.
func argMoney(args map[string]interface{}, name string, invalid error) (int64, error) {
	switch v := args[name].(type) {
	case int:
		return int64(v), nil
	case float64:
		if math.IsNaN(v) || math.Trunc(v) != v || math.Abs(v) >= math.MaxInt64 {
			return 0, invalid
		}
		return int64(v), nil
	default:
		return 0, nil
	}
}

func argInt32Ptr(args map[string]interface{}, name string) *int32 {
	n, ok := args[name].(int)
	if !ok {
		return nil
	}
	v := int32(n)
	return &v
}

func argBool(args map[string]interface{}, name string) bool {
	b, _ := args[name].(bool)
	return b
}

func argObject(args map[string]interface{}, name string) map[string]interface{} {
	m, _ := args[name].(map[string]interface{})
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}

func argUUID(args map[string]interface{}, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(argString(args, name)))
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}

// argUUIDPtr returns nil when the argument is absent or empty.
func argUUIDPtr(args map[string]interface{}, name string) (*uuid.UUID, error) {
	if strings.TrimSpace(argString(args, name)) == "" {
		return nil, nil
	}
	id, err := argUUID(args, name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// argDate accepts RFC3339 or a plain YYYY-MM-DD date.
func argDate(args map[string]interface{}, name string) (*time.Time, error) {
	raw := strings.TrimSpace(argString(args, name))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, &order.ValidationError{Field: name, Message: "Format tanggal tidak valid"}
}

func idArg() *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}
}
