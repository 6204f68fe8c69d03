package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mcoot/qrclock-gateway/internal/api/apierr"
	"github.com/mcoot/qrclock-gateway/internal/middleware"
)

// Recovery creates panic recovery middleware for the API
// Returns the dispatcher's JSON 500 on panic
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, v any) {
	err, ok := v.(error)
	if !ok {
		err = fmt.Errorf("%v", v)
	}
	apierr.WriteDispatchError(w, apierr.NewUnhandledError(err))
}
