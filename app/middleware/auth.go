package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"inkwell/app/models"
	"inkwell/app/services"
)

type contextKey string

const identityKey contextKey = "identity"

// ErrNoCredential is returned by BearerToken when the request carries no
// usable Authorization header.
var ErrNoCredential = errors.New("missing bearer credential")

// Authenticator resolves a bearer token to the identity behind it.
type Authenticator interface {
	Authenticate(token string) (services.Identity, error)
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id services.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the identity attached by RequireAuth.
func IdentityFrom(ctx context.Context) (services.Identity, bool) {
	id, ok := ctx.Value(identityKey).(services.Identity)
	return id, ok
}

// BearerToken extracts the token of an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrNoCredential
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrNoCredential
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrNoCredential
	}
	return token, nil
}

// RequireAuth rejects requests without a valid bearer credential and
// attaches the caller's identity to the request context.
func RequireAuth(auth Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}

			id, err := auth.Authenticate(token)
			switch {
			case err == nil:
			case errors.Is(err, services.ErrUnauthenticated):
				WriteError(w, http.StatusUnauthorized, services.MessageOf(err))
				return
			default:
				logger.Error("failed to authenticate request", "error", err, "path", r.URL.Path)
				WriteError(w, http.StatusInternalServerError, "Server Error")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireRole allows only callers holding one of roles. It must run after
// RequireAuth.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFrom(r.Context())
			if !ok {
				WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}
			for _, role := range roles {
				if id.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			WriteError(w, http.StatusForbidden, "User role "+string(id.Role)+" is not authorized to access this route")
		})
	}
}
