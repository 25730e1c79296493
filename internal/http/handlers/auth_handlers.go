package handlers

import (
	"net/http"
	"strings"

	"github.com/alexedwards/argon2id"

	"github.com/rentloft/rentloft-api/internal/domain"
	"github.com/rentloft/rentloft-api/internal/http/response"
	"github.com/rentloft/rentloft-api/internal/platform/auth"
	"github.com/rentloft/rentloft-api/pkg/logger"
)

type issueTokenReq struct {
	Email string `json:"email"`
}

type issueTokenRes struct {
	Token string `json:"token"`
}

// IssueToken signs a token for the posted identity. Issuance is open:
// possession of a token grants nothing until a guard resolves a role.
func (h *Handlers) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req issueTokenReq
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		response.BadRequest(w, "email is required")
		return
	}

	token, err := auth.NewAccessToken(strings.ToLower(req.Email), h.deps.JWTSecret, h.deps.TokenTTL)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to sign token", "error", err)
		response.InternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, issueTokenRes{Token: token})
}

type addUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AddUser registers a user with the default role. Password is
// optional; when present it is stored as an argon2id hash.
func (h *Handlers) AddUser(w http.ResponseWriter, r *http.Request) {
	var req addUserReq
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		response.BadRequest(w, "email is required")
		return
	}
	email := strings.ToLower(req.Email)

	existing, err := h.deps.Users.FindByEmail(r.Context(), email)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to look up user", "error", err)
		response.InternalError(w)
		return
	}
	if existing != nil {
		writeJSON(w, http.StatusOK, response.MessageResponse{Message: "user already exists"})
		return
	}

	user := &domain.User{
		Name:  req.Name,
		Email: email,
		Role:  domain.RoleUser,
	}
	if req.Password != "" {
		hash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
		if err != nil {
			logger.ErrorContext(r.Context(), "Failed to hash password", "error", err)
			response.InternalError(w)
			return
		}
		user.PasswordHash = hash
	}

	created, err := h.deps.Users.Insert(r.Context(), user)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to insert user", "error", err)
		response.InternalError(w)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

type checkRoleReq struct {
	Email string `json:"email"`
}

type checkRoleRes struct {
	Role *domain.Role `json:"role"`
}

// CheckRole returns the current role for an email, or null when the
// user is absent or carries an unknown role value.
func (h *Handlers) CheckRole(w http.ResponseWriter, r *http.Request) {
	var req checkRoleReq
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.deps.Users.FindByEmail(r.Context(), strings.ToLower(req.Email))
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to look up user", "error", err)
		response.InternalError(w)
		return
	}

	var res checkRoleRes
	if user != nil {
		if role, ok := domain.ParseRole(string(user.Role)); ok {
			res.Role = &role
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) ListAllUsers(w http.ResponseWriter, r *http.Request) {
	h.listUsers(w, r, nil)
}

func (h *Handlers) ListPlainUsers(w http.ResponseWriter, r *http.Request) {
	role := domain.RoleUser
	h.listUsers(w, r, &role)
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	role := domain.RoleMember
	h.listUsers(w, r, &role)
}

func (h *Handlers) ListAdmins(w http.ResponseWriter, r *http.Request) {
	role := domain.RoleAdmin
	h.listUsers(w, r, &role)
}

func (h *Handlers) listUsers(w http.ResponseWriter, r *http.Request, role *domain.Role) {
	users, err := h.deps.Users.List(r.Context(), role)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list users", "error", err)
		response.InternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
