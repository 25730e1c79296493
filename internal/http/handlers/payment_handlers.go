package handlers

import (
	"math"
	"net/http"
	"strings"

	"github.com/rentloft/rentloft-api/internal/domain"
	"github.com/rentloft/rentloft-api/internal/http/response"
	"github.com/rentloft/rentloft-api/pkg/logger"
)

func (h *Handlers) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req domain.PaymentCreateReq
	if !decodeJSON(w, r, &req) {
		return
	}

	email := strings.ToLower(req.Email)
	if email == "" {
		if claims := getClaims(r); claims != nil {
			email = claims.Email
		}
	}
	if email == "" || req.Amount <= 0 {
		response.BadRequest(w, "email and a positive amount are required")
		return
	}

	payment := &domain.Payment{
		Email:         email,
		ApartmentID:   req.ApartmentID,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		Month:         req.Month,
	}

	created, err := h.deps.Payments.Insert(r.Context(), payment)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to insert payment", "error", err)
		response.InternalError(w)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type paymentHistoryReq struct {
	Email string `json:"email"`
}

func (h *Handlers) PaymentHistory(w http.ResponseWriter, r *http.Request) {
	var req paymentHistoryReq
	if !decodeJSON(w, r, &req) {
		return
	}

	email := strings.ToLower(req.Email)
	if email == "" {
		if claims := getClaims(r); claims != nil {
			email = claims.Email
		}
	}

	history, err := h.deps.Payments.ListByEmail(r.Context(), email)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list payments", "error", err)
		response.InternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// CreatePaymentIntent delegates to the payment gateway: the posted
// price is converted to the smallest currency unit and exchanged for
// a client secret.
func (h *Handlers) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req domain.PaymentIntentReq
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Price <= 0 {
		response.BadRequest(w, "a positive price is required")
		return
	}

	amount := int64(math.Round(req.Price * 100))
	secret, err := h.deps.Intents.CreateIntent(r.Context(), amount)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to create payment intent", "error", err)
		response.InternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, domain.PaymentIntentRes{ClientSecret: secret})
}
