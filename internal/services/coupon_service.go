package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/quickcart/internal/apperrors"
	"github.com/example/quickcart/internal/models"
)

// CouponQuote is the discount a coupon grants on a cart.
type CouponQuote struct {
	CouponID       string          `json:"coupon_id"`
	Code           string          `json:"code"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

type CouponService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCouponService(db *gorm.DB) *CouponService {
	return &CouponService{db: db, now: time.Now}
}

// Validate checks a code against a cart total and computes its discount.
func (s *CouponService) Validate(ctx context.Context, code string, cartTotal decimal.Decimal) (*CouponQuote, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, apperrors.Validation("Coupon code is required")
	}

	var coupon models.Coupon
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "Invalid coupon code")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "load coupon")
	}

	if !coupon.IsActive || s.now().After(coupon.Expiry) {
		return nil, apperrors.New(apperrors.CodeBusinessRule, "Coupon has expired")
	}
	if cartTotal.LessThan(coupon.MinOrder) {
		return nil, apperrors.Newf(apperrors.CodeBusinessRule, "Minimum order of ₹%s required", coupon.MinOrder.StringFixed(2))
	}

	return &CouponQuote{
		CouponID:       coupon.ID.String(),
		Code:           coupon.Code,
		DiscountAmount: coupon.DiscountFor(cartTotal),
	}, nil
}
