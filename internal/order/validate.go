package order

import (
	"strconv"
	"strings"

	"kebab-sayank-be/internal/cart"
	"kebab-sayank-be/internal/utils"
)

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ValidateCheckout runs the checkout checks in order and stops at the first
// failure. It returns the parsed payment amount.
// parseAmount accepts plain digits only, no sign, separators or decimals.
func parseAmount(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || amount <= 0 {
		return 0, false
	}
	return amount, true
}

func ValidateCheckout(in CheckoutInput, c *cart.Cart) (int64, error) {
	switch {
	case strings.TrimSpace(in.CustomerName) == "":
		return 0, invalid("customerName", "Nama customer harus diisi")
	case strings.TrimSpace(in.CustomerPhone) == "":
		return 0, invalid("customerPhone", "Nomor telepon customer harus diisi")
	case strings.TrimSpace(in.CustomerAddress) == "":
		return 0, invalid("customerAddress", "Alamat customer harus diisi")
	case strings.TrimSpace(in.Cashier) == "":
		return 0, invalid("cashier", "Nama kasir harus diisi")
	case !OrderType(in.OrderType).Valid():
		return 0, invalid("orderType", "Tipe order harus diisi")
	case !PaymentMethod(in.PaymentMethod).Valid():
		return 0, invalid("paymentMethod", "Metode pembayaran harus diisi")
	}

	amount, ok := parseAmount(in.PaymentAmount)
	if !ok {
		return 0, invalid("paymentAmount", "Jumlah pembayaran harus berupa angka positif")
	}

	if c == nil || c.IsEmpty() {
		return 0, invalid("cart", "Pesanan harus memiliki setidaknya satu produk.")
	}

	_, total := c.Totals()
	if amount < total {
		shortfall := total - amount
		return 0, &ValidationError{
			Field:     "paymentAmount",
			Message:   "Jumlah pembayaran kurang dari total harga. Kekurangan: Rp. " + utils.FormatThousands(shortfall),
			Shortfall: shortfall,
		}
	}

	return amount, nil
}

// validateEdit checks the status edit form.
func validateEdit(in EditInput) (Status, error) {
	raw := strings.TrimSpace(in.Status)
	if raw == "" {
		return "", invalid("status", "Status pesanan harus diisi")
	}
	status, ok := ParseStatus(raw)
	if !ok {
		return "", invalid("status", "Status pesanan tidak valid")
	}
	return status, nil
}
