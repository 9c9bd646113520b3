package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var rupiahPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders amount with Indonesian digit grouping, e.g. "Rp 215.000".
func FormatRupiah(amount int64) string {
	if amount < 0 {
		return "-" + rupiahPrinter.Sprintf("Rp %d", -amount)
	}
	return rupiahPrinter.Sprintf("Rp %d", amount)
}
