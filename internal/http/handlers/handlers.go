package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rentloft/rentloft-api/internal/http/middleware"
	"github.com/rentloft/rentloft-api/internal/http/response"
	"github.com/rentloft/rentloft-api/internal/platform/auth"
	"github.com/rentloft/rentloft-api/internal/platform/payments"
	"github.com/rentloft/rentloft-api/internal/repo/mongodb"
	"github.com/rentloft/rentloft-api/internal/service"
	"github.com/rentloft/rentloft-api/pkg/events"
)

type Deps struct {
	Users         mongodb.UserRepository
	Apartments    mongodb.ApartmentRepository
	Coupons       mongodb.CouponRepository
	Payments      mongodb.PaymentRepository
	Announcements mongodb.AnnouncementRepository
	Applications  service.ApplicationService
	CouponCheck   service.CouponService
	Intents       payments.IntentCreator
	Publisher     events.Publisher
	JWTSecret     string
	TokenTTL      time.Duration
}

type Handlers struct {
	deps Deps
}

func New(deps Deps) *Handlers {
	return &Handlers{deps: deps}
}

// Helper to get verified claims from context
func getClaims(r *http.Request) *auth.Claims {
	return middleware.Claims(r)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	response.WriteJSON(w, statusCode, data)
}
