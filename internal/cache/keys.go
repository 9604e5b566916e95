package cache

import "time"

const (
	// Product catalogue listing without filters: products:list -> []product.Product
	KeyProductList = "products:list"

	// Cart per session owner: cart:{user_id} -> cart.Cart
	KeyCart = "cart:%s"

	// Idempotent checkout: idem:order:create:{user_id}:{key} -> order id
	KeyIdemOrderCreate = "idem:order:create:%s"
)

var (
	TTLProductList = 5 * time.Minute
	TTLCart        = 24 * time.Hour
	TTLIdempotency = 24 * time.Hour
)
