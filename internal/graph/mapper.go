package graph

import (
	"time"

	"kebab-sayank-be/internal/cart"
	"kebab-sayank-be/internal/category"
	"kebab-sayank-be/internal/dashboard"
	"kebab-sayank-be/internal/order"
	"kebab-sayank-be/internal/product"
	"kebab-sayank-be/internal/user"

	"github.com/google/uuid"
)

type object = map[string]interface{}

func formatTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func optionalID(id *uuid.UUID) interface{} {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	return id.String()
}

func toCategory(c *category.Category) object {
	return object{
		"id":           c.ID.String(),
		"name":         c.Name,
		"description":  c.Description,
		"productCount": c.ProductCount,
		"createdAt":    formatTime(c.CreatedAt),
	}
}

func toCategories(list []*category.Category) []object {
	out := make([]object, 0, len(list))
	for _, c := range list {
		out = append(out, toCategory(c))
	}
	return out
}

func toProduct(p *product.Product) object {
	refs := make([]object, 0, len(p.Categories))
	for _, c := range p.Categories {
		refs = append(refs, object{"id": c.ID.String(), "name": c.Name})
	}

	return object{
		"id":           p.ID.String(),
		"name":         p.Name,
		"description":  p.Description,
		"price":        p.Price,
		"stock":        p.Stock,
		"categoryId":   optionalID(p.CategoryID),
		"categoryName": p.PrimaryCategory().Name,
		"categories":   refs,
		"purchasable":  p.Purchasable(),
		"createdAt":    formatTime(p.CreatedAt),
	}
}

func toProducts(list []*product.Product) []object {
	out := make([]object, 0, len(list))
	for _, p := range list {
		out = append(out, toProduct(p))
	}
	return out
}

func toCart(c *cart.Cart) object {
	if c == nil {
		c = cart.New()
	}

	lines := make([]object, 0, len(c.Lines))
	for _, l := range c.Lines {
		line := object{
			"productId":    l.ProductID.String(),
			"productName":  l.ProductName,
			"categoryId":   optionalID(&l.CategoryID),
			"categoryName": l.CategoryName,
			"unitPrice":    l.UnitPrice,
			"quantity":     l.Quantity,
			"subtotal":     l.Subtotal,
		}
		if stock, ok := c.AvailableStock(l.ProductID); ok {
			line["availableStock"] = stock
		}
		lines = append(lines, line)
	}

	items, total := c.Totals()
	return object{
		"lines":      lines,
		"totalItems": items,
		"totalPrice": total,
	}
}

func toUser(u *user.User) object {
	return object{
		"id":          u.ID.String(),
		"email":       u.Email,
		"username":    u.Username,
		"displayName": u.DisplayName,
		"phone":       u.Phone,
		"address":     u.Address,
		"role":        string(u.Role),
		"createdAt":   formatTime(u.CreatedAt),
	}
}

func toUsers(list []*user.User) []object {
	out := make([]object, 0, len(list))
	for _, u := range list {
		out = append(out, toUser(u))
	}
	return out
}

func toOrder(o *order.Order) object {
	products := make([]object, 0, len(o.Products))
	for _, p := range o.Products {
		products = append(products, object{
			"id":           p.ID.String(),
			"productId":    optionalID(p.ProductID),
			"productName":  p.ProductName,
			"categoryId":   optionalID(&p.CategoryID),
			"categoryName": p.CategoryName,
			"unitPrice":    p.UnitPrice,
			"quantity":     p.Quantity,
			"subtotal":     p.Subtotal,
		})
	}

	return object{
		"id":          o.ID.String(),
		"orderNumber": o.OrderNumber,
		"customerRef": optionalID(&o.CustomerRef),
		"customer": object{
			"id":      optionalID(&o.Customer.ID),
			"name":    o.Customer.Name,
			"phone":   o.Customer.Phone,
			"address": o.Customer.Address,
		},
		"cashier":       o.Cashier,
		"orderType":     string(o.OrderType),
		"totalItems":    o.TotalItems,
		"totalPrice":    o.TotalPrice,
		"paymentMethod": string(o.PaymentMethod),
		"paymentAmount": o.PaymentAmount,
		"incomeAmount":  o.IncomeAmount,
		"change":        o.Change(),
		"status":        string(o.Status),
		"printedAt":     formatTimePtr(o.PrintedAt),
		"createdAt":     formatTime(o.CreatedAt),
		"products":      products,
	}
}

func toOrders(list []*order.Order) []object {
	out := make([]object, 0, len(list))
	for _, o := range list {
		out = append(out, toOrder(o))
	}
	return out
}

func toPaymentResult(res *order.PaymentResult) object {
	return object{
		"order":        toOrder(res.Order),
		"change":       res.Change,
		"instructions": res.Instructions,
	}
}

func toDashboard(s *dashboard.Summary) object {
	shares := make([]object, 0, len(s.Categories))
	for _, c := range s.Categories {
		shares = append(shares, object{
			"id":           c.ID.String(),
			"name":         c.Name,
			"productCount": c.ProductCount,
		})
	}

	return object{
		"totalProducts":   s.TotalProducts,
		"totalCategories": s.TotalCategories,
		"totalOrders":     s.TotalOrders,
		"pendingOrders":   s.PendingOrders,
		"revenue":         s.Revenue,
		"categories":      shares,
	}
}
