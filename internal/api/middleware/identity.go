package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Identity is the caller as asserted by the external identity provider.
// This layer trusts the identity it is given; verification happens upstream.
type Identity struct {
	UserID string
	Email  string
}

// emailRegex validates email addresses per RFC 5322 (simplified).
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// RequireIdentity extracts the provider-asserted identity headers and makes
// them available on the request context. Requests without a complete,
// well-formed identity are rejected.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-LiveDocs-User-Id")
		email := r.Header.Get("X-LiveDocs-User-Email")

		if userID == "" || email == "" {
			jsonError(w, http.StatusUnauthorized, "missing identity headers")
			return
		}
		if len(email) > 254 || !emailRegex.MatchString(email) {
			jsonError(w, http.StatusUnauthorized, "invalid email format")
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, Identity{
			UserID: userID,
			Email:  email,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetIdentity retrieves the caller identity from the request context. The
// zero Identity means RequireIdentity did not run.
func GetIdentity(ctx context.Context) Identity {
	id, _ := ctx.Value(identityContextKey).(Identity)
	return id
}

func jsonError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
