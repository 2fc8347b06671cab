package insurance

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCharge renders an amount as US dollars with thousands separators and
// two decimals, e.g. 25900 → "$25,900.00". The sign follows the dollar
// sign: -1234.5 → "$-1,234.50".
func FormatCharge(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// PredictionMessage is the sentence shown after a successful prediction.
func PredictionMessage(v float64) string {
	return "Predicted insurance charge: " + FormatCharge(v)
}
