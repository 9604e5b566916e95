package graph

import "github.com/graphql-go/graphql"

// Money fields are Float: rupiah totals can outgrow the 32 bit Int scalar.

var categoryRefType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CategoryRef",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Category",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description":  &graphql.Field{Type: graphql.String},
		"productCount": &graphql.Field{Type: graphql.Int},
		"createdAt":    &graphql.Field{Type: graphql.String},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description":  &graphql.Field{Type: graphql.String},
		"price":        &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"stock":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"categoryId":   &graphql.Field{Type: graphql.ID},
		"categoryName": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"categories":   &graphql.Field{Type: graphql.NewList(categoryRefType)},
		"purchasable":  &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"createdAt":    &graphql.Field{Type: graphql.String},
	},
})

var cartLineType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CartLine",
	Fields: graphql.Fields{
		"productId":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"productName":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"categoryId":     &graphql.Field{Type: graphql.ID},
		"categoryName":   &graphql.Field{Type: graphql.String},
		"unitPrice":      &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"quantity":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"subtotal":       &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"availableStock": &graphql.Field{Type: graphql.Int},
	},
})

var cartType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Cart",
	Fields: graphql.Fields{
		"lines":      &graphql.Field{Type: graphql.NewList(cartLineType)},
		"totalItems": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"totalPrice": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"email":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"username":    &graphql.Field{Type: graphql.String},
		"displayName": &graphql.Field{Type: graphql.String},
		"phone":       &graphql.Field{Type: graphql.String},
		"address":     &graphql.Field{Type: graphql.String},
		"role":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"createdAt":   &graphql.Field{Type: graphql.String},
	},
})

var authPayloadType = graphql.NewObject(graphql.ObjectConfig{
	Name: "AuthPayload",
	Fields: graphql.Fields{
		"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"user":  &graphql.Field{Type: userType},
	},
})

var customerType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Customer",
	Fields: graphql.Fields{
		"id":      &graphql.Field{Type: graphql.ID},
		"name":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"phone":   &graphql.Field{Type: graphql.String},
		"address": &graphql.Field{Type: graphql.String},
	},
})

var orderProductType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrderProduct",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"productId":    &graphql.Field{Type: graphql.ID},
		"productName":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"categoryId":   &graphql.Field{Type: graphql.ID},
		"categoryName": &graphql.Field{Type: graphql.String},
		"unitPrice":    &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"quantity":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"subtotal":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
	},
})

var orderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Order",
	Fields: graphql.Fields{
		"id":            &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"orderNumber":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"customerRef":   &graphql.Field{Type: graphql.ID},
		"customer":      &graphql.Field{Type: customerType},
		"cashier":       &graphql.Field{Type: graphql.String},
		"orderType":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"totalItems":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"totalPrice":    &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"paymentMethod": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"paymentAmount": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"incomeAmount":  &graphql.Field{Type: graphql.Float},
		"change":        &graphql.Field{Type: graphql.Float},
		"status":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"printedAt":     &graphql.Field{Type: graphql.String},
		"createdAt":     &graphql.Field{Type: graphql.String},
		"products":      &graphql.Field{Type: graphql.NewList(orderProductType)},
	},
})

var paymentResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PaymentResult",
	Fields: graphql.Fields{
		"order":        &graphql.Field{Type: orderType},
		"change":       &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"instructions": &graphql.Field{Type: graphql.NewList(graphql.String)},
	},
})

var categoryShareType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CategoryShare",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"productCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

var dashboardType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DashboardSummary",
	Fields: graphql.Fields{
		"totalProducts":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"totalCategories": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"totalOrders":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"pendingOrders":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"revenue":         &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"categories":      &graphql.Field{Type: graphql.NewList(categoryShareType)},
	},
})

// -- Inputs --

var productInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProductInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"price":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		"stock":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		"categoryId":  &graphql.InputObjectFieldConfig{Type: graphql.ID},
	},
})

var categoryInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CategoryInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var checkoutInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CheckoutInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"customerRef":     &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"customerName":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"customerPhone":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		"customerAddress": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"cashier":         &graphql.InputObjectFieldConfig{Type: graphql.String},
		"orderType":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"paymentMethod":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		// Raw text as typed, parsed server side.
		"paymentAmount":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"status":         &graphql.InputObjectFieldConfig{Type: graphql.String},
		"idempotencyKey": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var profileInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProfileInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"displayName": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"phone":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"address":     &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})
