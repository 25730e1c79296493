package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApplicationStatus string

const (
	ApplicationPending ApplicationStatus = "pending"
	ApplicationChecked ApplicationStatus = "checked"
)

func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	switch ApplicationStatus(s) {
	case ApplicationPending, ApplicationChecked:
		return ApplicationStatus(s), true
	default:
		return "", false
	}
}

// Application is a rental application. Approved stays nil until an
// admin decides; AcceptDate is set only on acceptance.
type Application struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email"`
	ApartmentID string             `bson:"apartment_id" json:"apartment_id"`
	Status      ApplicationStatus  `bson:"status" json:"status"`
	Approved    *bool              `bson:"approved,omitempty" json:"approved,omitempty"`
	AcceptDate  string             `bson:"accept_date,omitempty" json:"accept_date,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

type SubmitReq struct {
	Email       string `json:"email"`
	ApartmentID string `json:"apartmentId"`
}

type AcceptReq struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	ApartmentID string `json:"apartmentId"`
	Date        string `json:"date"`
}

type RejectReq struct {
	ID          string `json:"id"`
	ApartmentID string `json:"apartmentId"`
}

type DegradeReq struct {
	Email string `json:"email"`
}
