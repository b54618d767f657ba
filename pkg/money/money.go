// Package money 购物车与订单共用的金额计算
package money

import "github.com/shopspring/decimal"

// Round2 四舍五入到分
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineTotal is price × quantity.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// Shipping 小计严格大于 threshold 免运费，否则收取固定运费
func Shipping(subtotal, threshold, fee decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(threshold) {
		return decimal.Zero
	}
	return fee
}

// Totals 返回取整后的 小计/运费/总计
func Totals(subtotal, threshold, fee decimal.Decimal) (sub, shipping, total decimal.Decimal) {
	sub = Round2(subtotal)
	shipping = Round2(Shipping(sub, threshold, fee))
	total = Round2(sub.Add(shipping))
	return sub, shipping, total
}

// Trend 相对 prev 的变化百分比，保留两位小数
func Trend(cur, prev decimal.Decimal) decimal.Decimal {
	if prev.IsZero() {
		if cur.IsZero() {
			return decimal.Zero
		}
		return decimal.NewFromInt(100)
	}
	return Round2(cur.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)))
}
