package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

type PriceFormatter struct {
	ac accounting.Accounting
}

// NewPriceFormatter builds a formatter with the given currency symbol, two decimal places.
func NewPriceFormatter(symbol string) *PriceFormatter {
	return &PriceFormatter{
		ac: accounting.Accounting{Symbol: symbol, Precision: 2, Thousand: ",", Decimal: "."},
	}
}

func (f *PriceFormatter) Format(amount decimal.Decimal) string {
	return f.ac.FormatMoneyDecimal(amount)
}

// FormatNullable renders "-" for an absent amount.
func (f *PriceFormatter) FormatNullable(amount decimal.NullDecimal) string {
	if !amount.Valid {
		return "-"
	}
	return f.Format(amount.Decimal)
}
