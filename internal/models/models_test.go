package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCancellableOnlyBeforeDispatch(t *testing.T) {
	for _, s := range []OrderStatus{StatusPending, StatusConfirmed, StatusPacking, StatusReadyForPickup} {
		assert.True(t, s.Cancellable(), s)
	}
	for _, s := range []OrderStatus{StatusOutForDelivery, StatusDelivered, StatusCancelled} {
		assert.False(t, s.Cancellable(), s)
	}
}

func TestTransitionTable(t *testing.T) {
	assert.True(t, StatusPending.Allows(ActionConfirm))
	assert.False(t, StatusPacking.Allows(ActionConfirm))
	assert.True(t, StatusConfirmed.Allows(ActionStartPacking))
	assert.True(t, StatusPacking.Allows(ActionMarkReady))
	assert.True(t, StatusReadyForPickup.Allows(ActionDispatch))
	assert.False(t, StatusPacking.Allows(ActionDispatch))
	assert.True(t, StatusOutForDelivery.Allows(ActionDeliver))
	assert.False(t, StatusDelivered.Allows(ActionDeliver))
	assert.False(t, StatusPending.Allows(OrderAction("teleport")))

	for _, s := range allStatuses {
		if s.IsTerminal() {
			for action := range Transitions {
				assert.False(t, s.Allows(action), "%s allows %s", s, action)
			}
		}
	}
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, StatusReadyForPickup.IsValid())
	assert.False(t, OrderStatus("READY").IsValid())
}

func TestDeliveryStatusProjection(t *testing.T) {
	assert.Equal(t, DeliveryPending, DeliveryStatusFor(StatusPacking))
	assert.Equal(t, DeliveryOutForDelivery, DeliveryStatusFor(StatusOutForDelivery))
	assert.Equal(t, DeliveryDelivered, DeliveryStatusFor(StatusDelivered))
	assert.Equal(t, DeliveryCancelled, DeliveryStatusFor(StatusCancelled))
}

func TestPaymentMethods(t *testing.T) {
	assert.True(t, PaymentWallet.Refundable())
	assert.True(t, PaymentUPI.Refundable())
	assert.False(t, PaymentCOD.Refundable())
	assert.False(t, PaymentMethod("card").IsValid())
}

func TestCouponDiscount(t *testing.T) {
	pct := Coupon{Type: DiscountPercentage, Discount: decimal.NewFromInt(10)}
	assert.True(t, decimal.RequireFromString("25.05").Equal(pct.DiscountFor(decimal.RequireFromString("250.50"))))

	flat := Coupon{Type: DiscountFlat, Discount: decimal.NewFromInt(80)}
	assert.True(t, decimal.NewFromInt(80).Equal(flat.DiscountFor(decimal.NewFromInt(100))))
	assert.True(t, decimal.NewFromInt(50).Equal(flat.DiscountFor(decimal.NewFromInt(50))))
}

func TestAddressPoint(t *testing.T) {
	lat, lng := 26.9, 75.8
	assert.Nil(t, (&Address{Lat: &lat}).Point())
	p := (&Address{Lat: &lat, Lng: &lng}).Point()
	if assert.NotNil(t, p) {
		assert.Equal(t, lat, p.Lat)
		assert.Equal(t, lng, p.Lng)
	}
}

func TestOrderShortID(t *testing.T) {
	o := Order{BaseModel: BaseModel{ID: uuid.MustParse("11111111-2222-3333-4444-555555abcdef")}}
	assert.Equal(t, "abcdef", o.ShortID())
}
