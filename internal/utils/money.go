package utils

import (
	"strconv"
	"strings"
)

// FormatThousands groups digits with '.' the way id-ID locale does.
func FormatThousands(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}

	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}

// FormatRupiah renders an amount as "Rp 25.000".
func FormatRupiah(n int64) string {
	return "Rp " + FormatThousands(n)
}
