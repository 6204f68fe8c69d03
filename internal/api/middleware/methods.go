package middleware

import (
	"net/http"

	"github.com/mcoot/qrclock-gateway/internal/api/apierr"
)

// AllowMethods rejects any method outside allowed with a plain-text 405,
// before routing
func AllowMethods(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, m := range allowed {
		set[m] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := set[r.Method]; !ok {
				apierr.WriteDispatchError(w, apierr.NewMethodNotAllowedError(r.Method))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
