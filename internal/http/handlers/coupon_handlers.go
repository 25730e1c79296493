package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rentloft/rentloft-api/internal/domain"
	"github.com/rentloft/rentloft-api/internal/http/response"
	"github.com/rentloft/rentloft-api/pkg/logger"
)

func (h *Handlers) ListCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.deps.Coupons.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list coupons", "error", err)
		response.InternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, coupons)
}

func (h *Handlers) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req domain.CouponCreateReq
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Code == "" || req.Discount <= 0 {
		response.BadRequest(w, "code and a positive discount are required")
		return
	}

	coupon := &domain.Coupon{
		Code:        req.Code,
		Discount:    req.Discount,
		Description: req.Description,
		Status:      domain.CouponActive,
	}

	created, err := h.deps.Coupons.Insert(r.Context(), coupon)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to insert coupon", "error", err)
		response.InternalError(w)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// CheckCoupon reports the discount for an active code. A missing code
// and an inactive one produce the identical message.
func (h *Handlers) CheckCoupon(w http.ResponseWriter, r *http.Request) {
	var req domain.CouponCheckReq
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.deps.CouponCheck.Check(r.Context(), req.Code)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to check coupon", "error", err)
		response.InternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) ActivateCoupon(w http.ResponseWriter, r *http.Request) {
	h.setCouponStatus(w, r, domain.CouponActive)
}

func (h *Handlers) DeactivateCoupon(w http.ResponseWriter, r *http.Request) {
	h.setCouponStatus(w, r, domain.CouponInactive)
}

func (h *Handlers) setCouponStatus(w http.ResponseWriter, r *http.Request, status domain.CouponStatus) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid coupon id")
		return
	}

	ok, err := h.deps.Coupons.SetStatus(r.Context(), id, status)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to update coupon status", "error", err)
		response.InternalError(w)
		return
	}
	if !ok {
		response.NotFound(w, "coupon not found")
		return
	}
	writeJSON(w, http.StatusOK, response.MessageResponse{Message: "coupon " + string(status)})
}
