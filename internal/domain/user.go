package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// ParseRole rejects anything outside the closed role set. A stored
// role that fails to parse is treated as no role at all by the guards.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleMember, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Role         Role               `bson:"role" json:"role"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
