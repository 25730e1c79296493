package handlers

import (
	"net/http"

	"github.com/rentloft/rentloft-api/internal/domain"
	"github.com/rentloft/rentloft-api/internal/http/response"
	"github.com/rentloft/rentloft-api/pkg/logger"
)

func (h *Handlers) ListApartments(w http.ResponseWriter, r *http.Request) {
	apartments, err := h.deps.Apartments.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list apartments", "error", err)
		response.InternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, apartments)
}

// ApartmentsByRent runs the public price-range search.
func (h *Handlers) ApartmentsByRent(w http.ResponseWriter, r *http.Request) {
	var req domain.RentRangeReq
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Max < req.Min {
		response.BadRequest(w, "max must not be below min")
		return
	}

	apartments, err := h.deps.Apartments.ListByRentRange(r.Context(), req.Min, req.Max)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to search apartments", "error", err)
		response.InternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, apartments)
}

func (h *Handlers) CreateApartment(w http.ResponseWriter, r *http.Request) {
	var req domain.ApartmentCreateReq
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" || req.Rent <= 0 {
		response.BadRequest(w, "title and a positive rent are required")
		return
	}

	apartment := &domain.Apartment{
		Title:     req.Title,
		Location:  req.Location,
		Bedrooms:  req.Bedrooms,
		Rent:      req.Rent,
		ImageURL:  req.ImageURL,
		Available: true,
	}

	created, err := h.deps.Apartments.Insert(r.Context(), apartment)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to insert apartment", "error", err)
		response.InternalError(w)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
