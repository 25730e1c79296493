package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email         string             `bson:"email" json:"email"`
	ApartmentID   string             `bson:"apartment_id,omitempty" json:"apartment_id,omitempty"`
	Amount        int64              `bson:"amount" json:"amount"`
	TransactionID string             `bson:"transaction_id" json:"transaction_id"`
	Month         string             `bson:"month,omitempty" json:"month,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

type PaymentCreateReq struct {
	Email         string `json:"email"`
	ApartmentID   string `json:"apartmentId"`
	Amount        int64  `json:"amount"`
	TransactionID string `json:"transactionId"`
	Month         string `json:"month"`
}

type PaymentIntentReq struct {
	Price float64 `json:"price"`
}

type PaymentIntentRes struct {
	ClientSecret string `json:"clientSecret"`
}
