package middleware

import (
	"net/http"

	"github.com/mcoot/qrclock-gateway/internal/api/response"
)

// CORS headers set on every response
const (
	CORSOrigin  = "*"
	CORSMethods = "GET, POST, PUT, DELETE, OPTIONS"
	CORSHeaders = "Content-Type"
)

// CORS sets the cross-origin headers on every response and answers
// OPTIONS preflights on any path with an empty 200
func CORS() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", CORSOrigin)
			h.Set("Access-Control-Allow-Methods", CORSMethods)
			h.Set("Access-Control-Allow-Headers", CORSHeaders)

			if r.Method == http.MethodOptions {
				response.Empty(w, http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
