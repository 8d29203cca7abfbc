package middleware

import (
	"net/http"

	"github.com/zaikanghel/Photo-Earn/internal/domain"
	"github.com/zaikanghel/Photo-Earn/pkg/logger"
)

// WithAdmin must sit behind WithAuth; it trusts the User-Role header the
// auth middleware set from the token.
func WithAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Role") != domain.RoleAdmin {
			logger.Log.Warn("forbidden request", logger.String("url", r.RequestURI))
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
