package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/qrclock-gateway/internal/api/apierr"
	"github.com/mcoot/qrclock-gateway/internal/api/handler"
	apimiddleware "github.com/mcoot/qrclock-gateway/internal/api/middleware"
	"github.com/mcoot/qrclock-gateway/internal/dependencies/clock"
	"github.com/mcoot/qrclock-gateway/internal/middleware"
	"github.com/mcoot/qrclock-gateway/internal/services/auth"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service

	// Clock times requests for the access log; defaults to the system clock
	Clock clock.Clock
}

// NewRouter creates the dispatcher: the single entry point for every request.
//
// Policy is applied outside the route table, so it covers every path:
// CORS headers on all responses, OPTIONS answered before routing, and any
// method other than GET or POST rejected with 405. Paths are matched
// exactly; the query string is ignored.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	r := mux.NewRouter()
	r.SkipClean(true)

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)

	r.Handle("/api/test", dispatch(logger, authHandler.Probe)).Methods(http.MethodGet)
	r.Handle("/api/admin/login", dispatch(logger, authHandler.Login)).Methods(http.MethodPost)
	r.Handle("/api/admin/verify-pin", dispatch(logger, authHandler.VerifyPIN)).Methods(http.MethodPost)

	// A known path with the other allowed method is still "not found"
	r.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(notFoundHandler)

	var h http.Handler = r
	h = apimiddleware.AllowMethods(http.MethodGet, http.MethodPost)(h)
	h = apimiddleware.Recovery(logger)(h)
	h = apimiddleware.CORS()(h)
	h = middleware.Logging(logger, clk)(h)
	h = middleware.RequestID()(h)
	return h
}

// dispatch adapts a handler.Func, turning a returned error into the
// last-resort 500 response
func dispatch(logger *slog.Logger, fn handler.Func) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			logger.ErrorContext(r.Context(), "unhandled error",
				slog.String("request_id", middleware.GetRequestID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("error", err.Error()),
			)
			apierr.WriteDispatchError(w, apierr.NewUnhandledError(err))
		}
	})
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteDispatchError(w, apierr.NewNotFoundError())
}
