package messaging

import (
	"testing"

	"kebab-sayank-be/internal/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhatsAppLink(t *testing.T) {
	t.Run("DefaultMessage", func(t *testing.T) {
		link, err := WhatsAppLink("+6285820247769", DefaultReceiptMessage)
		require.NoError(t, err)
		assert.Equal(t,
			"https://wa.me/6285820247769?text=Halo%2C%20saya%20ingin%20mengirimkan%20resi%20pesanan%20saya.%20Silakan%20lihat%20file%20terlampir.",
			link,
		)
	})

	t.Run("StripsFormatting", func(t *testing.T) {
		link, err := WhatsAppLink("+62 858-2024-7769", "")
		require.NoError(t, err)
		assert.Equal(t, "https://wa.me/6285820247769", link)
	})

	t.Run("EscapesReservedCharacters", func(t *testing.T) {
		link, err := WhatsAppLink("62812", "a&b=c #1")
		require.NoError(t, err)
		assert.Equal(t, "https://wa.me/62812?text=a%26b%3Dc%20%231", link)
	})

	t.Run("InvalidNumber", func(t *testing.T) {
		_, err := WhatsAppLink("n/a", "hi")
		assert.ErrorIs(t, err, ErrInvalidNumber)
	})
}

func TestReceiptMessage(t *testing.T) {
	assert.Equal(t, DefaultReceiptMessage, ReceiptMessage(nil))

	msg := ReceiptMessage(&order.Order{OrderNumber: 77, TotalPrice: 80000})
	assert.Contains(t, msg, "No. Pesanan: #77")
	assert.Contains(t, msg, "Total: Rp 80.000")
	assert.Contains(t, msg, "Resi_Pesanan_77.html")
}
