package models

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPacking        OrderStatus = "packing"
	StatusReadyForPickup OrderStatus = "ready_for_pickup"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// OrderAction is a named move through the order lifecycle.
type OrderAction string

const (
	ActionConfirm      OrderAction = "confirm"
	ActionStartPacking OrderAction = "start_packing"
	ActionMarkReady    OrderAction = "mark_ready"
	ActionDispatch     OrderAction = "dispatch"
	ActionDeliver      OrderAction = "deliver"
	ActionCancel       OrderAction = "cancel"
)

// Transition describes which states an action may start from and where it lands.
type Transition struct {
	From []OrderStatus
	To   OrderStatus
}

// Transitions is the order state machine.
var Transitions = map[OrderAction]Transition{
	ActionConfirm:      {From: []OrderStatus{StatusPending}, To: StatusConfirmed},
	ActionStartPacking: {From: []OrderStatus{StatusPending, StatusConfirmed}, To: StatusPacking},
	ActionMarkReady:    {From: []OrderStatus{StatusPacking}, To: StatusReadyForPickup},
	ActionDispatch:     {From: []OrderStatus{StatusReadyForPickup}, To: StatusOutForDelivery},
	ActionDeliver:      {From: []OrderStatus{StatusOutForDelivery}, To: StatusDelivered},
	ActionCancel: {
		From: []OrderStatus{StatusPending, StatusConfirmed, StatusPacking, StatusReadyForPickup},
		To:   StatusCancelled,
	},
}

var allStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPacking,
	StatusReadyForPickup,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

// IsValid reports whether s is a known status.
func (s OrderStatus) IsValid() bool {
	for _, known := range allStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Allows reports whether action may be applied in state s.
func (s OrderStatus) Allows(action OrderAction) bool {
	t, ok := Transitions[action]
	if !ok {
		return false
	}
	for _, from := range t.From {
		if s == from {
			return true
		}
	}
	return false
}

// Cancellable reports whether the order has not been dispatched yet.
func (s OrderStatus) Cancellable() bool {
	return s.Allows(ActionCancel)
}
