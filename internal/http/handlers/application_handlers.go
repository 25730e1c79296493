package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rentloft/rentloft-api/internal/domain"
	"github.com/rentloft/rentloft-api/internal/http/response"
	"github.com/rentloft/rentloft-api/internal/service"
	"github.com/rentloft/rentloft-api/pkg/logger"
)

// SubmitApplication runs the Submit transition. A duplicate submission
// is a success-shaped "already applied" response, not an error.
func (h *Handlers) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmitReq
	if !decodeJSON(w, r, &req) {
		return
	}

	email := strings.ToLower(req.Email)
	if email == "" {
		if claims := getClaims(r); claims != nil {
			email = claims.Email
		}
	}
	if email == "" || req.ApartmentID == "" {
		response.BadRequest(w, "email and apartmentId are required")
		return
	}

	result, err := h.deps.Applications.Submit(r.Context(), email, req.ApartmentID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidID) {
			response.BadRequest(w, "invalid apartment id")
			return
		}
		logger.ErrorContext(r.Context(), "Failed to submit application", "error", err)
		response.InternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.deps.Applications.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list applications", "error", err)
		response.InternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

type applicationInfoReq struct {
	Email string `json:"email"`
}

// MyApplication returns the caller's own application, if any.
func (h *Handlers) MyApplication(w http.ResponseWriter, r *http.Request) {
	var req applicationInfoReq
	if !decodeJSON(w, r, &req) {
		return
	}

	email := strings.ToLower(req.Email)
	if email == "" {
		if claims := getClaims(r); claims != nil {
			email = claims.Email
		}
	}

	app, err := h.deps.Applications.GetByEmail(r.Context(), email)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to fetch application", "error", err)
		response.InternalError(w)
		return
	}
	if app == nil {
		response.NotFound(w, "no application found")
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// AcceptApplication runs the Accept transition: decision, promotion,
// and apartment hold, each surfaced individually.
func (h *Handlers) AcceptApplication(w http.ResponseWriter, r *http.Request) {
	var req domain.AcceptReq
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(req.Email)

	result, err := h.deps.Applications.Accept(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidID) {
			response.BadRequest(w, "invalid id")
			return
		}
		logger.ErrorContext(r.Context(), "Failed to accept application", "error", err)
		response.InternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) RejectApplication(w http.ResponseWriter, r *http.Request) {
	var req domain.RejectReq
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.deps.Applications.Reject(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidID) {
			response.BadRequest(w, "invalid id")
			return
		}
		logger.ErrorContext(r.Context(), "Failed to reject application", "error", err)
		response.InternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// DegradeMember revokes member status out-of-band, independent of any
// application state.
func (h *Handlers) DegradeMember(w http.ResponseWriter, r *http.Request) {
	var req domain.DegradeReq
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		response.BadRequest(w, "email is required")
		return
	}

	ok, err := h.deps.Applications.Degrade(r.Context(), strings.ToLower(req.Email))
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to degrade member", "error", err)
		response.InternalError(w)
		return
	}
	if !ok {
		response.NotFound(w, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, response.MessageResponse{Message: "member degraded"})
}
