package payment

import (
	"strconv"
	"strings"

	"kebab-sayank-be/internal/utils"
)

const (
	MethodCash = "Cash"
	MethodQRIS = "QRIS"
)

var InstructionMap = map[string][]string{
	MethodCash: {
		"Lakukan pembayaran di kasir Kebab Sayank",
		"Siapkan uang tunai sebesar {{amount}}",
		"Kasir akan memberikan kembalian bila pembayaran melebihi total",
		"Simpan resi pesanan sebagai bukti pembayaran",
	},

	MethodQRIS: {
		"Buka aplikasi e-wallet atau mobile banking yang mendukung QRIS",
		"Pilih menu Scan / Bayar",
		"Pindai kode QR yang ditampilkan di kasir",
		"Periksa nominal pembayaran {{amount}}",
		"Konfirmasi dan selesaikan pembayaran",
		"Tunjukkan bukti pembayaran kepada kasir untuk pesanan #{{order_number}}",
	},
}

func GetInstructions(method string) []string {
	if steps, ok := InstructionMap[method]; ok {
		return steps
	}

	return []string{
		"Ikuti instruksi pembayaran dari kasir",
	}
}

type InstructionVars map[string]string

// AmountVars builds the common variables for an order payment.
func AmountVars(amount int64, orderNumber int64) InstructionVars {
	return InstructionVars{
		"amount":       utils.FormatRupiah(amount),
		"order_number": strconv.FormatInt(orderNumber, 10),
	}
}

func InjectVariables(
	steps []string,
	vars InstructionVars,
) []string {
	result := make([]string, 0, len(steps))

	for _, step := range steps {
		updated := step
		for key, value := range vars {
			updated = strings.ReplaceAll(
				updated,
				"{{"+key+"}}",
				value,
			)
		}
		result = append(result, updated)
	}

	return result
}

// Instructions returns the steps for method with vars applied.
func Instructions(method string, vars InstructionVars) []string {
	return InjectVariables(GetInstructions(method), vars)
}
