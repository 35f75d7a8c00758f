package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard/pkg/respond"
)

const SessionCookie = "session"

// RequireSession rejects requests without a valid session token and stores
// the principal in the request context otherwise.
func RequireSession(tokens *TokenManager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromRequest(r)
			if raw == "" {
				respond.Error(w, r, http.StatusUnauthorized, "unauthorized")
				return
			}

			principal, err := tokens.Validate(raw)
			if err != nil {
				logger.Debug("rejected session token", zap.Error(err))
				respond.Error(w, r, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}
