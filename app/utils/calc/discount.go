package calc

import "github.com/shopspring/decimal"

// NormalizeDiscountPrice keeps a discount price only when 0 < discount < price.
func NormalizeDiscountPrice(price decimal.Decimal, discount decimal.NullDecimal) decimal.NullDecimal {
	if !discount.Valid {
		return decimal.NullDecimal{}
	}
	if !discount.Decimal.IsPositive() || !discount.Decimal.LessThan(price) {
		return decimal.NullDecimal{}
	}
	return discount
}

// DiscountPercentOf derives the percentage a discount price takes off the base price,
// rounded to two places. It returns zero for a non-positive price.
func DiscountPercentOf(price, discountPrice decimal.Decimal) decimal.Decimal {
	if !price.IsPositive() {
		return decimal.Zero
	}
	return price.Sub(discountPrice).Mul(decimal.NewFromInt(100)).Div(price).Round(2)
}
