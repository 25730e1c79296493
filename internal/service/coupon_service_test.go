package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rentloft/rentloft-api/internal/domain"
	"github.com/rentloft/rentloft-api/internal/service"
)

type mockCouponRepo struct {
	byCode map[string]*domain.Coupon
}

func newMockCouponRepo() *mockCouponRepo {
	return &mockCouponRepo{byCode: make(map[string]*domain.Coupon)}
}

func (m *mockCouponRepo) Insert(_ context.Context, c *domain.Coupon) (*domain.Coupon, error) {
	c.ID = primitive.NewObjectID()
	m.byCode[c.Code] = c
	return c, nil
}

func (m *mockCouponRepo) FindByCode(_ context.Context, code string) (*domain.Coupon, error) {
	return m.byCode[code], nil
}

func (m *mockCouponRepo) List(_ context.Context) ([]domain.Coupon, error) { return nil, nil }

func (m *mockCouponRepo) SetStatus(_ context.Context, id primitive.ObjectID, status domain.CouponStatus) (bool, error) {
	for _, c := range m.byCode {
		if c.ID == id {
			c.Status = status
			return true, nil
		}
	}
	return false, nil
}

func TestCheckActiveCoupon(t *testing.T) {
	repo := newMockCouponRepo()
	repo.Insert(context.Background(), &domain.Coupon{
		Code:     "NEWYEAR",
		Discount: 150,
		Status:   domain.CouponActive,
	})

	svc := service.NewCouponService(repo)
	result, err := svc.Check(context.Background(), "NEWYEAR")
	require.NoError(t, err)
	require.True(t, result.Valid)
	require.Equal(t, int64(150), result.Discount)
}

func TestInactiveAndMissingAreIndistinguishable(t *testing.T) {
	repo := newMockCouponRepo()
	repo.Insert(context.Background(), &domain.Coupon{
		Code:     "OLDCODE",
		Discount: 50,
		Status:   domain.CouponInactive,
	})

	svc := service.NewCouponService(repo)

	inactive, err := svc.Check(context.Background(), "OLDCODE")
	require.NoError(t, err)
	require.False(t, inactive.Valid)
	require.Zero(t, inactive.Discount)

	missing, err := svc.Check(context.Background(), "NOCODE")
	require.NoError(t, err)
	require.False(t, missing.Valid)

	require.Equal(t, inactive.Message, missing.Message,
		"a caller must not be able to tell inactive from not found")
}
