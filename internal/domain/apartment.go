package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Apartment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Location  string             `bson:"location" json:"location"`
	Bedrooms  int                `bson:"bedrooms" json:"bedrooms"`
	Rent      int64              `bson:"rent" json:"rent"`
	Available bool               `bson:"available" json:"available"`
	ImageURL  string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type ApartmentCreateReq struct {
	Title    string `json:"title"`
	Location string `json:"location"`
	Bedrooms int    `json:"bedrooms"`
	Rent     int64  `json:"rent"`
	ImageURL string `json:"image_url"`
}

type RentRangeReq struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}
