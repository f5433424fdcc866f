package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/webwhiz/hrms-backend/internal/domain/auth"
	"github.com/webwhiz/hrms-backend/internal/domain/user"
	"github.com/webwhiz/hrms-backend/internal/handler/http/response"
	"github.com/webwhiz/hrms-backend/internal/pkg/jwt"
)

// Identity is the authenticated caller as stored in the database.
type Identity struct {
	UserID string
	Email  string
	Role   user.Role
}

type identityKey struct{}

// AuthRequired rejects requests without a valid, unrevoked access token whose
// user still exists and is active. It must run after jwtauth.Verifier. The
// role is read from the user row, so role changes apply on the next request.
func AuthRequired(jwtService jwt.Service, users user.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			revoked, err := jwtService.IsTokenRevoked(r.Context(), jwtauth.TokenFromHeader(r))
			if err != nil {
				slog.Error("failed to check token revocation", "error", err)
				response.InternalServerError(w, "Could not verify token")
				return
			}
			if revoked {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			account, err := users.GetByID(r.Context(), userID)
			if errors.Is(err, user.ErrUserNotFound) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			if err != nil {
				slog.Error("failed to load token owner", "user_id", userID, "error", err)
				response.InternalServerError(w, "Could not verify token")
				return
			}
			if !account.IsActive() {
				response.HandleError(w, auth.ErrUserInactive)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey{}, Identity{
				UserID: account.ID,
				Email:  account.Email,
				Role:   account.RoleKind(),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// CurrentUser returns the identity AuthRequired attached to ctx.
func CurrentUser(ctx context.Context) (Identity, error) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	if !ok {
		return Identity{}, auth.ErrInvalidToken
	}
	return identity, nil
}
