package settings

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatValue renders v with the language's separators and at most two
// fraction digits (no trailing zeros).
func FormatValue(v float64, lang LanguageCode) string {
	rounded := decimal.NewFromFloat(v).Round(2).InexactFloat64()
	opts := []number.Option{number.MaxFractionDigits(2)}
	if lang == Spanish && math.Abs(rounded) < spanishGroupingThreshold {
		opts = append(opts, number.NoSeparator())
	}
	p := message.NewPrinter(localeTag(lang))
	return p.Sprint(number.Decimal(rounded, opts...))
}

// Spanish only groups thousands from five integer digits up ("1234,5" but
// "12.345,5").
const spanishGroupingThreshold = 10000

// FormatCurrency renders v followed by the currency symbol, e.g. "1,234.5$".
func FormatCurrency(v float64, lang LanguageCode, cur Currency) string {
	return FormatValue(v, lang) + cur.Symbol
}

// Fixed2 renders v with exactly two decimals and a dot separator, the way
// figures are quoted inside prompts.
func Fixed2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
