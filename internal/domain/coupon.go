package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CouponStatus string

const (
	CouponActive   CouponStatus = "active"
	CouponInactive CouponStatus = "inactive"
)

func ParseCouponStatus(s string) (CouponStatus, bool) {
	switch CouponStatus(s) {
	case CouponActive, CouponInactive:
		return CouponStatus(s), true
	default:
		return "", false
	}
}

type Coupon struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code        string             `bson:"code" json:"code"`
	Discount    int64              `bson:"discount" json:"discount"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      CouponStatus       `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

type CouponCreateReq struct {
	Code        string `json:"code"`
	Discount    int64  `json:"discount"`
	Description string `json:"description"`
}

type CouponCheckReq struct {
	Code string `json:"code"`
}
