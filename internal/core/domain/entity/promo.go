package entity

type Promo struct {
	Code            string `json:"code"`
	DiscountPercent int64  `json:"discountPercent"`
	Active          bool   `json:"active"`
}

// Discount returns the promo's share of subtotal, truncated toward zero and
// kept within [0, subtotal]. The split form cannot overflow.
func (p Promo) Discount(subtotal int64) int64 {
	if subtotal <= 0 || p.DiscountPercent <= 0 {
		return 0
	}
	if p.DiscountPercent >= 100 {
		return subtotal
	}
	return subtotal/100*p.DiscountPercent + subtotal%100*p.DiscountPercent/100
}
