package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer pays for an order.
type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentWallet PaymentMethod = "wallet"
	PaymentUPI    PaymentMethod = "upi"
)

// IsValid reports whether m is a supported payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCOD, PaymentWallet, PaymentUPI:
		return true
	}
	return false
}

// Refundable reports whether money was collected up front and must be returned on cancel.
func (m PaymentMethod) Refundable() bool {
	return m == PaymentWallet || m == PaymentUPI
}

// Substitution is the customer's choice when an item turns out to be unavailable.
type Substitution string

const (
	SubstitutionRefund  Substitution = "refund"
	SubstitutionReplace Substitution = "replace"
)

type Order struct {
	BaseModel
	UserID        uuid.UUID       `gorm:"type:uuid;index;not null" json:"user_id"`
	User          *User           `json:"user,omitempty"`
	WarehouseID   uuid.UUID       `gorm:"type:uuid;index;not null" json:"warehouse_id"`
	Warehouse     *Warehouse      `json:"warehouse,omitempty"`
	AddressID     uuid.UUID       `gorm:"type:uuid;not null" json:"address_id"`
	Address       *Address        `json:"address,omitempty"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(16);not null" json:"payment_method"`
	Status        OrderStatus     `gorm:"type:varchar(32);index;not null" json:"status"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`
	CouponID      *uuid.UUID      `gorm:"type:uuid" json:"coupon_id"`
	Coupon        *Coupon         `json:"coupon,omitempty"`
	Items         []OrderItem     `json:"items,omitempty"`
	Delivery      *Delivery       `json:"delivery,omitempty"`
}

type OrderItem struct {
	BaseModel
	OrderID      uuid.UUID       `gorm:"type:uuid;index;not null" json:"order_id"`
	ProductID    uuid.UUID       `gorm:"type:uuid;index;not null" json:"product_id"`
	Product      *Product        `json:"product,omitempty"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Substitution Substitution    `gorm:"type:varchar(16);default:refund" json:"substitution"`
}

// ShortID is the human-facing order reference used in receipts and refunds.
func (o *Order) ShortID() string {
	s := o.ID.String()
	return s[len(s)-6:]
}
