package service

import (
	"context"
	"fmt"

	"github.com/rentloft/rentloft-api/internal/domain"
	"github.com/rentloft/rentloft-api/internal/repo/mongodb"
)

// UnavailableMessage is deliberately the same for a missing code and
// an inactive one: callers cannot tell the two apart.
const UnavailableMessage = "coupon not found or unavailable"

type CouponCheckResult struct {
	Valid    bool   `json:"valid"`
	Discount int64  `json:"discount,omitempty"`
	Message  string `json:"message"`
}

type CouponService interface {
	Check(ctx context.Context, code string) (*CouponCheckResult, error)
}

type couponService struct {
	coupons mongodb.CouponRepository
}

func NewCouponService(coupons mongodb.CouponRepository) CouponService {
	return &couponService{coupons: coupons}
}

func (s *couponService) Check(ctx context.Context, code string) (*CouponCheckResult, error) {
	coupon, err := s.coupons.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}
	if coupon == nil || coupon.Status != domain.CouponActive {
		return &CouponCheckResult{Message: UnavailableMessage}, nil
	}

	return &CouponCheckResult{
		Valid:    true,
		Discount: coupon.Discount,
		Message:  "coupon applied",
	}, nil
}
