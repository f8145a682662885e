package models

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryStatus is the driver-facing projection of an order's status.
type DeliveryStatus string

const (
	DeliveryPending        DeliveryStatus = "pending"
	DeliveryOutForDelivery DeliveryStatus = "out_for_delivery"
	DeliveryDelivered      DeliveryStatus = "delivered"
	DeliveryCancelled      DeliveryStatus = "cancelled"
)

// Delivery tracks the driver assignment of an order. Its Status is derived
// from the order status through DeliveryStatusFor and never set on its own.
type Delivery struct {
	BaseModel
	OrderID     uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"order_id"`
	Order       *Order         `json:"order,omitempty"`
	DriverID    *uuid.UUID     `gorm:"type:uuid;index" json:"driver_id"`
	Driver      *DriverContact `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	Status      DeliveryStatus `gorm:"type:varchar(32);index;not null" json:"status"`
	PickedUpAt  *time.Time     `json:"picked_up_at"`
	DeliveredAt *time.Time     `json:"delivered_at"`
}

// DriverContact is the part of a driver's account shown alongside an order.
type DriverContact struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
}

func (DriverContact) TableName() string { return "users" }

// DeliveryStatusFor maps an order status onto the delivery state space.
func DeliveryStatusFor(s OrderStatus) DeliveryStatus {
	switch s {
	case StatusOutForDelivery:
		return DeliveryOutForDelivery
	case StatusDelivered:
		return DeliveryDelivered
	case StatusCancelled:
		return DeliveryCancelled
	default:
		return DeliveryPending
	}
}
