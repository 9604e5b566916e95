package graph

import (
	"context"
	"net/http"
	"strings"

	"kebab-sayank-be/internal/auth"
	"kebab-sayank-be/internal/category"
	"kebab-sayank-be/internal/order"
	"kebab-sayank-be/internal/product"
	"kebab-sayank-be/internal/transport"
	"kebab-sayank-be/internal/user"
	"kebab-sayank-be/internal/utils"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
)

const idempotencyHeader = "Idempotency-Key"

func (r *Resolver) mutationType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register":      r.registerField(),
			"login":         r.loginField(),
			"logout":        r.logoutField(),
			"updateProfile": r.updateProfileField(),

			"createCategory": r.createCategoryField(),
			"updateCategory": r.updateCategoryField(),
			"deleteCategory": r.deleteCategoryField(),

			"createProduct": r.createProductField(),
			"updateProduct": r.updateProductField(),
			"deleteProduct": r.deleteProductField(),

			"addToCart":          r.addToCartField(),
			"removeFromCart":     r.removeFromCartField(),
			"updateCartQuantity": r.updateCartQuantityField(),
			"clearCart":          r.clearCartField(),

			"checkout":          r.checkoutField(),
			"updateOrderStatus": r.updateOrderStatusField(),
			"cancelOrder":       r.orderActionField("CancelOrder", order.Service.Cancel),
			"markOrderPrinted":  r.orderActionField("MarkOrderPrinted", order.Service.MarkPrinted),
			"confirmPayment":    r.confirmPaymentField(),
			"deleteOrder":       r.deleteOrderField(),
		},
	})
}

// --- AUTH ---

func (r *Resolver) registerField() *graphql.Field {
	return &graphql.Field{
		Type: authPayloadType,
		Args: graphql.FieldConfigArgument{
			"email":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"password":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"username":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"displayName": &graphql.ArgumentConfig{Type: graphql.String},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			res, err := r.UserSvc.Register(p.Context, user.RegisterInput{
				Email:       argString(p.Args, "email"),
				Password:    argString(p.Args, "password"),
				Username:    argString(p.Args, "username"),
				DisplayName: argString(p.Args, "displayName"),
			})
			if err != nil {
				return nil, present(p.Context, "Register", err)
			}

			r.setAccessCookie(p, res.Token)
			return object{"token": res.Token, "user": toUser(res.User)}, nil
		},
	}
}

func (r *Resolver) loginField() *graphql.Field {
	return &graphql.Field{
		Type: authPayloadType,
		Args: graphql.FieldConfigArgument{
			"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			res, err := r.UserSvc.Login(p.Context, argString(p.Args, "email"), argString(p.Args, "password"))
			if err != nil {
				return nil, present(p.Context, "Login", err)
			}

			r.setAccessCookie(p, res.Token)
			return object{"token": res.Token, "user": toUser(res.User)}, nil
		},
	}
}

func (r *Resolver) logoutField() *graphql.Field {
	return &graphql.Field{
		Type: graphql.Boolean,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if w := transport.GetResponseWriter(p.Context); w != nil {
				cookie := auth.AccessTokenCookieFor("", 0, r.SecureCookies)
				cookie.MaxAge = -1
				http.SetCookie(w, cookie)
			}
			return true, nil
		},
	}
}

func (r *Resolver) setAccessCookie(p graphql.ResolveParams, token string) {
	w := transport.GetResponseWriter(p.Context)
	if w == nil {
		return
	}
	ttl := r.TokenTTL
	if ttl <= 0 {
		ttl = auth.DefaultTokenTTL
	}
	http.SetCookie(w, auth.AccessTokenCookieFor(token, ttl, r.SecureCookies))
}

func (r *Resolver) updateProfileField() *graphql.Field {
	return &graphql.Field{
		Type: userType,
		Args: graphql.FieldConfigArgument{
			"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(profileInputType)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			in := argObject(p.Args, "input")
			u, err := r.UserSvc.UpdateProfile(p.Context, auth.SessionFrom(p.Context), user.UpdateProfileInput{
				DisplayName: argStringPtr(in, "displayName"),
				Phone:       argStringPtr(in, "phone"),
				Address:     argStringPtr(in, "address"),
			})
			if err != nil {
				return nil, present(p.Context, "UpdateProfile", err)
			}
			return toUser(u), nil
		},
	}
}

// --- CATEGORIES ---

func categoryInput(args map[string]interface{}) category.Input {
	in := argObject(args, "input")
	return category.Input{
		Name:        argString(in, "name"),
		Description: argString(in, "description"),
	}
}

func (r *Resolver) createCategoryField() *graphql.Field {
	return &graphql.Field{
		Type: categoryType,
		Args: graphql.FieldConfigArgument{
			"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(categoryInputType)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			c, err := r.CategorySvc.Create(p.Context, auth.SessionFrom(p.Context), categoryInput(p.Args))
			if err != nil {
				return nil, present(p.Context, "CreateCategory", err)
			}
			return toCategory(c), nil
		},
	}
}

func (r *Resolver) updateCategoryField() *graphql.Field {
	return &graphql.Field{
		Type: categoryType,
		Args: graphql.FieldConfigArgument{
			"id":    idArg(),
			"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(categoryInputType)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, err := argUUID(p.Args, "id")
			if err != nil {
				return nil, err
			}
			c, err := r.CategorySvc.Update(p.Context, auth.SessionFrom(p.Context), id, categoryInput(p.Args))
			if err != nil {
				return nil, present(p.Context, "UpdateCategory", err)
			}
			return toCategory(c), nil
		},
	}
}

func (r *Resolver) deleteCategoryField() *graphql.Field {
	return &graphql.Field{
		Type: graphql.Boolean,
		Args: graphql.FieldConfigArgument{"id": idArg()},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, err := argUUID(p.Args, "id")
			if err != nil {
				return nil, err
			}
			if err := r.CategorySvc.Delete(p.Context, auth.SessionFrom(p.Context), id); err != nil {
				return nil, present(p.Context, "DeleteCategory", err)
			}
			return true, nil
		},
	}
}

// --- PRODUCTS ---

func productInput(args map[string]interface{}) (product.Input, error) {
	in := argObject(args, "input")
	categoryID, err := argUUIDPtr(in, "categoryId")
	if err != nil {
		return product.Input{}, err
	}
	price, err := argMoney(in, "price", product.ErrInvalidPrice)
	if err != nil {
		return product.Input{}, err
	}

	return product.Input{
		Name:        argString(in, "name"),
		Description: argString(in, "description"),
		Price:       price,
		Stock:       argInt(in, "stock"),
		CategoryID:  categoryID,
	}, nil
}

func (r *Resolver) createProductField() *graphql.Field {
	return &graphql.Field{
		Type: productType,
		Args: graphql.FieldConfigArgument{
			"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInputType)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			in, err := productInput(p.Args)
			if err != nil {
				return nil, err
			}
			prod, err := r.ProductSvc.Create(p.Context, auth.SessionFrom(p.Context), in)
			if err != nil {
				return nil, present(p.Context, "CreateProduct", err)
			}
			return toProduct(prod), nil
		},
	}
}

func (r *Resolver) updateProductField() *graphql.Field {
	return &graphql.Field{
		Type: productType,
		Args: graphql.FieldConfigArgument{
			"id":    idArg(),
			"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInputType)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, err := argUUID(p.Args, "id")
			if err != nil {
				return nil, err
			}
			in, err := productInput(p.Args)
			if err != nil {
				return nil, err
			}
			prod, err := r.ProductSvc.Update(p.Context, auth.SessionFrom(p.Context), id, in)
			if err != nil {
				return nil, present(p.Context, "UpdateProduct", err)
			}
			return toProduct(prod), nil
		},
	}
}

func (r *Resolver) deleteProductField() *graphql.Field {
	return &graphql.Field{
		Type: graphql.Boolean,
		Args: graphql.FieldConfigArgument{"id": idArg()},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, err := argUUID(p.Args, "id")
			if err != nil {
				return nil, err
			}
			if err := r.ProductSvc.Delete(p.Context, auth.SessionFrom(p.Context), id); err != nil {
				return nil, present(p.Context, "DeleteProduct", err)
			}
			return true, nil
		},
	}
}

// --- CART ---

func (r *Resolver) addToCartField() *graphql.Field {
	return &graphql.Field{
		Type: cartType,
		Args: graphql.FieldConfigArgument{
			"productId": idArg(),
			"quantity":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			productID, err := argUUID(p.Args, "productId")
			if err != nil {
				return nil, err
			}
			c, err := r.CartSvc.Add(p.Context, auth.SessionFrom(p.Context), productID, argInt(p.Args, "quantity"))
			if err != nil {
				return nil, present(p.Context, "AddToCart", err)
			}
			return toCart(c), nil
		},
	}
}

func (r *Resolver) removeFromCartField() *graphql.Field {
	return &graphql.Field{
		Type: cartType,
		Args: graphql.FieldConfigArgument{"productId": idArg()},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			productID, err := argUUID(p.Args, "productId")
			if err != nil {
				return nil, err
			}
			c, err := r.CartSvc.Remove(p.Context, auth.SessionFrom(p.Context), productID)
			if err != nil {
				return nil, present(p.Context, "RemoveFromCart", err)
			}
			return toCart(c), nil
		},
	}
}

func (r *Resolver) updateCartQuantityField() *graphql.Field {
	return &graphql.Field{
		Type: cartType,
		Args: graphql.FieldConfigArgument{
			"productId": idArg(),
			// +1 or -1
			"delta": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			productID, err := argUUID(p.Args, "productId")
			if err != nil {
				return nil, err
			}
			c, err := r.CartSvc.UpdateQuantity(p.Context, auth.SessionFrom(p.Context), productID, argInt(p.Args, "delta"))
			if err != nil {
				return nil, present(p.Context, "UpdateCartQuantity", err)
			}
			return toCart(c), nil
		},
	}
}

func (r *Resolver) clearCartField() *graphql.Field {
	return &graphql.Field{
		Type: graphql.Boolean,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if err := r.CartSvc.Clear(p.Context, auth.SessionFrom(p.Context)); err != nil {
				return nil, present(p.Context, "ClearCart", err)
			}
			return true, nil
		},
	}
}

// --- ORDERS ---

func checkoutInput(p graphql.ResolveParams) (order.CheckoutInput, error) {
	in := argObject(p.Args, "input")
	customerRef, err := argUUIDPtr(in, "customerRef")
	if err != nil {
		return order.CheckoutInput{}, err
	}

	key := strings.TrimSpace(argString(in, "idempotencyKey"))
	if key == "" {
		if req := transport.GetRequest(p.Context); req != nil {
			key = strings.TrimSpace(req.Header.Get(idempotencyHeader))
		}
	}

	return order.CheckoutInput{
		CustomerRef:     customerRef,
		CustomerName:    argString(in, "customerName"),
		CustomerPhone:   argString(in, "customerPhone"),
		CustomerAddress: argString(in, "customerAddress"),
		Cashier:         argString(in, "cashier"),
		OrderType:       argString(in, "orderType"),
		PaymentMethod:   argString(in, "paymentMethod"),
		PaymentAmount:   argString(in, "paymentAmount"),
		Status:          argString(in, "status"),
		IdempotencyKey:  key,
	}, nil
}

func (r *Resolver) checkoutField() *graphql.Field {
	return &graphql.Field{
		Type: orderType,
		Args: graphql.FieldConfigArgument{
			"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(checkoutInputType)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			in, err := checkoutInput(p)
			if err != nil {
				return nil, err
			}
			o, err := r.OrderSvc.Checkout(p.Context, auth.SessionFrom(p.Context), in)
			if err != nil {
				return nil, present(p.Context, "Checkout", err)
			}
			return toOrder(o), nil
		},
	}
}

func (r *Resolver) updateOrderStatusField() *graphql.Field {
	return &graphql.Field{
		Type: orderType,
		Args: graphql.FieldConfigArgument{
			"id":        idArg(),
			"status":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"printedAt": &graphql.ArgumentConfig{Type: graphql.String},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, err := argUUID(p.Args, "id")
			if err != nil {
				return nil, err
			}
			printedAt, err := argDate(p.Args, "printedAt")
			if err != nil {
				return nil, err
			}

			o, err := r.OrderSvc.UpdateStatus(p.Context, auth.SessionFrom(p.Context), id, order.EditInput{
				Status:    utils.TrimmedPtr(argStringPtr(p.Args, "status")),
				PrintedAt: printedAt,
			})
			if err != nil {
				return nil, present(p.Context, "UpdateOrderStatus", err)
			}
			return toOrder(o), nil
		},
	}
}

type orderAction func(svc order.Service, ctx context.Context, sess *auth.Session, id uuid.UUID) (*order.Order, error)

// orderActionField serves the mutations that take an order id and return
// the updated order.
func (r *Resolver) orderActionField(method string, action orderAction) *graphql.Field {
	return &graphql.Field{
		Type: orderType,
		Args: graphql.FieldConfigArgument{"id": idArg()},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, err := argUUID(p.Args, "id")
			if err != nil {
				return nil, err
			}
			o, err := action(r.OrderSvc, p.Context, auth.SessionFrom(p.Context), id)
			if err != nil {
				return nil, present(p.Context, method, err)
			}
			return toOrder(o), nil
		},
	}
}

func (r *Resolver) confirmPaymentField() *graphql.Field {
	return &graphql.Field{
		Type: paymentResultType,
		Args: graphql.FieldConfigArgument{"id": idArg()},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, err := argUUID(p.Args, "id")
			if err != nil {
				return nil, err
			}
			res, err := r.OrderSvc.ConfirmPayment(p.Context, auth.SessionFrom(p.Context), id)
			if err != nil {
				return nil, present(p.Context, "ConfirmPayment", err)
			}
			return toPaymentResult(res), nil
		},
	}
}

func (r *Resolver) deleteOrderField() *graphql.Field {
	return &graphql.Field{
		Type: graphql.Boolean,
		Args: graphql.FieldConfigArgument{"id": idArg()},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, err := argUUID(p.Args, "id")
			if err != nil {
				return nil, err
			}
			if err := r.OrderSvc.Delete(p.Context, auth.SessionFrom(p.Context), id); err != nil {
				return nil, present(p.Context, "DeleteOrder", err)
			}
			return true, nil
		},
	}
}
