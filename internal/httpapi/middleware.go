package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const buyerIDKey contextKey = "buyerID"

// TokenVerifier validates a session token and returns the buyer it belongs to.
type TokenVerifier interface {
	VerifyToken(token string) (uuid.UUID, error)
}

var errMissingToken = errors.New("missing or malformed authorization header")

// authMiddleware requires a valid bearer token and stores the buyer id in the
// request context.
func authMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respondErr(w, http.StatusUnauthorized, errMissingToken)
				return
			}

			buyerID, err := verifier.VerifyToken(token)
			if err != nil {
				respondErr(w, http.StatusUnauthorized, errors.New("invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), buyerIDKey, buyerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// buyerIDFromContext returns the authenticated buyer id set by authMiddleware.
func buyerIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(buyerIDKey).(uuid.UUID)
	return id, ok
}
