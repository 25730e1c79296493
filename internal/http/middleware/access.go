package middleware

import (
	"context"
	"net/http"

	"github.com/rentloft/rentloft-api/internal/domain"
	"github.com/rentloft/rentloft-api/internal/http/response"
	"github.com/rentloft/rentloft-api/internal/platform/auth"
	"github.com/rentloft/rentloft-api/internal/repo/mongodb"
	"github.com/rentloft/rentloft-api/pkg/logger"
)

type ctxKey string

const CtxClaims ctxKey = "claims"

// Access composes token verification with a live role lookup. Role is
// resolved from the store on every gated request, so a role change
// takes effect on the very next call.
type Access struct {
	users  mongodb.UserRepository
	secret string
}

func NewAccess(users mongodb.UserRepository, secret string) *Access {
	return &Access{users: users, secret: secret}
}

// RequireAuth authenticates the request. The Authorization header
// carries the token verbatim, without a Bearer prefix.
func (a *Access) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.Parse(token, a.secret)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), CtxClaims, claims)
		ctx = context.WithValue(ctx, logger.UserEmailKey, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Access) RequireAdmin(next http.Handler) http.Handler {
	return a.requireRole(next, domain.RoleAdmin)
}

func (a *Access) RequireMember(next http.Handler) http.Handler {
	return a.requireRole(next, domain.RoleMember)
}

func (a *Access) RequireAdminOrMember(next http.Handler) http.Handler {
	return a.requireRole(next, domain.RoleAdmin, domain.RoleMember)
}

func (a *Access) requireRole(next http.Handler, allowed ...domain.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := Claims(r)
		if claims == nil {
			response.Unauthorized(w)
			return
		}

		user, err := a.users.FindByEmail(r.Context(), claims.Email)
		if err != nil {
			logger.ErrorContext(r.Context(), "Role lookup failed", "error", err)
			response.InternalError(w)
			return
		}
		if user == nil {
			response.Forbidden(w)
			return
		}

		role, ok := domain.ParseRole(string(user.Role))
		if !ok {
			// A role outside the closed set never passes a guard.
			response.Forbidden(w)
			return
		}

		for _, want := range allowed {
			if role == want {
				next.ServeHTTP(w, r)
				return
			}
		}
		response.Forbidden(w)
	})
}

// Claims returns the verified identity claims, or nil on an ungated route.
func Claims(r *http.Request) *auth.Claims {
	v := r.Context().Value(CtxClaims)
	if v == nil {
		return nil
	}
	return v.(*auth.Claims)
}
