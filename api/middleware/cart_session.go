package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/soft99/storefront-backend/pkg/logger"
)

const (
	CartSessionHeader = "X-Cart-Session"
	maxSessionLength  = 128
)

// CartSession resolves the cart session from X-Cart-Session, minting a new
// one when the header is absent or unusable. The session is echoed back on
// every response.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(CartSessionHeader))
			if sessionID == "" || len(sessionID) > maxSessionLength {
				sessionID = uuid.NewString()
			}
			w.Header().Set(CartSessionHeader, sessionID)

			ctx := WithCartSession(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
