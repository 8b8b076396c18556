// Package money formats rupee amounts for display.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatINR renders whole rupees with the rupee sign and thousands separators, e.g. ₹2,500.
func FormatINR(amount int) string {
	return printer.Sprintf("₹%d", amount)
}

// FormatINRPlain renders amounts for outputs without the rupee glyph (PDF core fonts), e.g. INR 2,500.
func FormatINRPlain(amount int) string {
	return printer.Sprintf("INR %d", amount)
}
