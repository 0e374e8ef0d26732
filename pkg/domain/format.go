package domain

import (
	"strings"
)

// CurrencyFormat describes how one currency is rendered.
type CurrencyFormat struct {
	Symbol    string
	Thousands string
	Decimal   string
	Places    int32
}

// Formatter renders Money using a per-currency table. Currencies missing from
// the table are rendered as "<CODE> 1,234.56".
type Formatter struct {
	formats map[Currency]CurrencyFormat
}

// DefaultFormatter knows EUR, USD and GBP.
var DefaultFormatter = NewFormatter(map[Currency]CurrencyFormat{
	EUR: {Symbol: "€", Thousands: ".", Decimal: ",", Places: 2},
	USD: {Symbol: "$", Thousands: ",", Decimal: ".", Places: 2},
	GBP: {Symbol: "£", Thousands: ",", Decimal: ".", Places: 2},
})

func NewFormatter(formats map[Currency]CurrencyFormat) *Formatter {
	table := make(map[Currency]CurrencyFormat, len(formats))
	for c, f := range formats {
		table[c] = f
	}
	return &Formatter{formats: table}
}

// Lookup returns the format for c, falling back to a code-prefixed format.
func (f *Formatter) Lookup(c Currency) CurrencyFormat {
	if format, ok := f.formats[c]; ok {
		return format
	}
	return CurrencyFormat{Symbol: string(c) + " ", Thousands: ",", Decimal: ".", Places: 2}
}

func (f *Formatter) Format(m Money) string {
	return f.FormatPlaces(m, f.Lookup(m.currency).Places)
}

// FormatPlaces renders m rounded half away from zero to places decimals.
func (f *Formatter) FormatPlaces(m Money, places int32) string {
	format := f.Lookup(m.currency)
	if places < 0 {
		places = 0
	}

	fixed := m.amount.StringFixed(places)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(format.Symbol)
	b.WriteString(groupThousands(whole, format.Thousands))
	if frac != "" {
		b.WriteString(format.Decimal)
		b.WriteString(frac)
	}
	return b.String()
}

func groupThousands(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
