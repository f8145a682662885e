package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType tells how Coupon.Discount is applied.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFlat       DiscountType = "flat"
)

type Coupon struct {
	BaseModel
	Code     string          `gorm:"uniqueIndex" json:"code"`
	Discount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discount"`
	Type     DiscountType    `gorm:"type:varchar(16);not null" json:"type"`
	MinOrder decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"min_order"`
	Expiry   time.Time       `json:"expiry"`
	IsActive bool            `gorm:"default:true" json:"is_active"`
}

// DiscountFor returns the discount granted on total, capped at total.
func (c *Coupon) DiscountFor(total decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal
	if c.Type == DiscountPercentage {
		amount = total.Mul(c.Discount).Div(decimal.NewFromInt(100)).Round(2)
	} else {
		amount = c.Discount
	}
	if amount.GreaterThan(total) {
		return total
	}
	return amount
}
