package messaging

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"kebab-sayank-be/internal/order"
	"kebab-sayank-be/internal/receipt"
	"kebab-sayank-be/internal/utils"
)

const waBaseURL = "https://wa.me/"

// DefaultReceiptMessage accompanies a receipt sent by the customer.
const DefaultReceiptMessage = "Halo, saya ingin mengirimkan resi pesanan saya. Silakan lihat file terlampir."

var ErrInvalidNumber = errors.New("nomor WhatsApp tidak valid")

// WhatsAppLink builds a click-to-chat link with a pre-filled message. Only
// the digits of number are kept, so "+62 858-2024" and "62858 2024" are
// equivalent.
func WhatsAppLink(number, message string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if digits == "" {
		return "", ErrInvalidNumber
	}

	link := waBaseURL + digits
	if message != "" {
		link += "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	}
	return link, nil
}

// ReceiptMessage is the pre-filled text for sharing a specific order.
func ReceiptMessage(o *order.Order) string {
	if o == nil {
		return DefaultReceiptMessage
	}
	return DefaultReceiptMessage + "\n\nNo. Pesanan: #" + strconv.FormatInt(o.OrderNumber, 10) +
		"\nTotal: " + utils.FormatRupiah(o.TotalPrice) +
		"\nFile: " + receipt.Filename(o)
}
