package graph

import (
	"strings"

	"kebab-sayank-be/internal/auth"
	"kebab-sayank-be/internal/messaging"
	"kebab-sayank-be/internal/order"
	"kebab-sayank-be/internal/payment"
	"kebab-sayank-be/internal/product"
	"kebab-sayank-be/internal/receipt"

	"github.com/graphql-go/graphql"
)

func (r *Resolver) queryType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"categories":          r.categoriesField(),
			"category":            r.categoryField(),
			"products":            r.productsField(),
			"product":             r.productField(),
			"cart":                r.cartField(),
			"orders":              r.ordersField(),
			"order":               r.orderField(),
			"receipt":             r.receiptField(),
			"whatsappLink":        r.whatsappLinkField(),
			"paymentInstructions": r.paymentInstructionsField(),
			"me":                  r.meField(),
			"customers":           r.customersField(),
			"dashboard":           r.dashboardField(),
		},
	})
}

// --- CATALOG ---

func (r *Resolver) categoriesField() *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(categoryType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			list, err := r.CategorySvc.List(p.Context)
			if err != nil {
				return nil, present(p.Context, "Categories", err)
			}
			return toCategories(list), nil
		},
	}
}

func (r *Resolver) categoryField() *graphql.Field {
	return &graphql.Field{
		Type: categoryType,
		Args: graphql.FieldConfigArgument{"id": idArg()},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, err := argUUID(p.Args, "id")
			if err != nil {
				return nil, err
			}
			c, err := r.CategorySvc.Get(p.Context, id)
			if err != nil {
				return nil, present(p.Context, "Category", err)
			}
			return toCategory(c), nil
		},
	}
}

func (r *Resolver) productsField() *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(productType),
		Args: graphql.FieldConfigArgument{
			"categoryId":  &graphql.ArgumentConfig{Type: graphql.ID},
			"search":      &graphql.ArgumentConfig{Type: graphql.String},
			"inStockOnly": &graphql.ArgumentConfig{Type: graphql.Boolean},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			categoryID, err := argUUIDPtr(p.Args, "categoryId")
			if err != nil {
				return nil, err
			}

			list, err := r.ProductSvc.List(p.Context, product.ListFilter{
				CategoryID:  categoryID,
				Search:      argString(p.Args, "search"),
				InStockOnly: argBool(p.Args, "inStockOnly"),
			})
			if err != nil {
				return nil, present(p.Context, "Products", err)
			}
			return toProducts(list), nil
		},
	}
}

func (r *Resolver) productField() *graphql.Field {
	return &graphql.Field{
		Type: productType,
		Args: graphql.FieldConfigArgument{"id": idArg()},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, err := argUUID(p.Args, "id")
			if err != nil {
				return nil, err
			}
			prod, err := r.ProductSvc.Get(p.Context, id)
			if err != nil {
				return nil, present(p.Context, "Product", err)
			}
			return toProduct(prod), nil
		},
	}
}

// --- CART ---

func (r *Resolver) cartField() *graphql.Field {
	return &graphql.Field{
		Type: cartType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			c, err := r.CartSvc.Get(p.Context, auth.SessionFrom(p.Context))
			if err != nil {
				return nil, present(p.Context, "Cart", err)
			}
			return toCart(c), nil
		},
	}
}

// --- ORDERS ---

func (r *Resolver) ordersField() *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(orderType),
		Args: graphql.FieldConfigArgument{
			"customerRef": &graphql.ArgumentConfig{Type: graphql.ID},
			"status":      &graphql.ArgumentConfig{Type: graphql.String},
			"search":      &graphql.ArgumentConfig{Type: graphql.String},
			"dateFrom":    &graphql.ArgumentConfig{Type: graphql.String},
			"dateTo":      &graphql.ArgumentConfig{Type: graphql.String},
			"limit":       &graphql.ArgumentConfig{Type: graphql.Int},
			"page":        &graphql.ArgumentConfig{Type: graphql.Int},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			filter, err := orderFilter(p.Args)
			if err != nil {
				return nil, err
			}

			list, err := r.OrderSvc.List(p.Context, auth.SessionFrom(p.Context), filter)
			if err != nil {
				return nil, present(p.Context, "Orders", err)
			}
			return toOrders(list), nil
		},
	}
}

func orderFilter(args map[string]interface{}) (order.ListFilter, error) {
	var (
		filter order.ListFilter
		err    error
	)

	if filter.CustomerRef, err = argUUIDPtr(args, "customerRef"); err != nil {
		return filter, err
	}
	if raw := strings.TrimSpace(argString(args, "status")); raw != "" {
		status, ok := order.ParseStatus(raw)
		if !ok {
			return filter, &order.ValidationError{Field: "status", Message: "Status pesanan tidak valid"}
		}
		filter.Status = &status
	}
	if filter.DateFrom, err = argDate(args, "dateFrom"); err != nil {
		return filter, err
	}
	if filter.DateTo, err = argDate(args, "dateTo"); err != nil {
		return filter, err
	}

	filter.Search = argString(args, "search")
	filter.Limit = argInt32Ptr(args, "limit")
	filter.Page = argInt32Ptr(args, "page")
	return filter, nil
}

func (r *Resolver) orderField() *graphql.Field {
	return &graphql.Field{
		Type: orderType,
		Args: graphql.FieldConfigArgument{"id": idArg()},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			o, err := r.loadOrder(p)
			if err != nil {
				return nil, err
			}
			return toOrder(o), nil
		},
	}
}

func (r *Resolver) loadOrder(p graphql.ResolveParams) (*order.Order, error) {
	id, err := argUUID(p.Args, "id")
	if err != nil {
		return nil, err
	}
	o, err := r.OrderSvc.Get(p.Context, auth.SessionFrom(p.Context), id)
	if err != nil {
		return nil, present(p.Context, "Order", err)
	}
	return o, nil
}

// receiptField renders the plain text receipt, e.g. for thermal printers.
func (r *Resolver) receiptField() *graphql.Field {
	return &graphql.Field{
		Type: graphql.String,
		Args: graphql.FieldConfigArgument{"id": idArg()},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			o, err := r.loadOrder(p)
			if err != nil {
				return nil, err
			}
			text, err := receipt.Render(o, r.Store)
			if err != nil {
				return nil, present(p.Context, "Receipt", err)
			}
			return text, nil
		},
	}
}

func (r *Resolver) whatsappLinkField() *graphql.Field {
	return &graphql.Field{
		Type: graphql.String,
		Args: graphql.FieldConfigArgument{"id": idArg()},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			o, err := r.loadOrder(p)
			if err != nil {
				return nil, err
			}
			link, err := messaging.WhatsAppLink(r.WhatsAppNumber, messaging.ReceiptMessage(o))
			if err != nil {
				return nil, present(p.Context, "WhatsAppLink", err)
			}
			return link, nil
		},
	}
}

func (r *Resolver) paymentInstructionsField() *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(graphql.String),
		Args: graphql.FieldConfigArgument{
			"method":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"amount":      &graphql.ArgumentConfig{Type: graphql.Int},
			"orderNumber": &graphql.ArgumentConfig{Type: graphql.Int},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			vars := payment.AmountVars(int64(argInt(p.Args, "amount")), int64(argInt(p.Args, "orderNumber")))
			return payment.Instructions(argString(p.Args, "method"), vars), nil
		},
	}
}

// --- USERS ---

func (r *Resolver) meField() *graphql.Field {
	return &graphql.Field{
		Type: userType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			u, err := r.UserSvc.Profile(p.Context, auth.SessionFrom(p.Context))
			if err != nil {
				return nil, present(p.Context, "Me", err)
			}
			return toUser(u), nil
		},
	}
}

func (r *Resolver) customersField() *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(userType),
		Args: graphql.FieldConfigArgument{
			"search": &graphql.ArgumentConfig{Type: graphql.String},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			list, err := r.UserSvc.ListCustomers(p.Context, auth.SessionFrom(p.Context), argString(p.Args, "search"))
			if err != nil {
				return nil, present(p.Context, "Customers", err)
			}
			return toUsers(list), nil
		},
	}
}

func (r *Resolver) dashboardField() *graphql.Field {
	return &graphql.Field{
		Type: dashboardType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			s, err := r.DashboardSvc.Summary(p.Context, auth.SessionFrom(p.Context))
			if err != nil {
				return nil, present(p.Context, "Dashboard", err)
			}
			return toDashboard(s), nil
		},
	}
}
