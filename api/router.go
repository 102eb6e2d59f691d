// Package api assembles the HTTP surface of the calculator.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/kilianp07/gigwage/api/calculate"
	"github.com/kilianp07/gigwage/core/logger"
	"github.com/kilianp07/gigwage/core/model"
)

// NewRouter mounts the calculator endpoints. A nil limiter disables rate
// limiting.
func NewRouter(calc calculate.Calculator, defaults model.Inputs, limiter *RateLimiter, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}
		r.Method(http.MethodPost, "/calculate", calculate.NewHandler(calc, defaults, log))
		r.Method(http.MethodGet, "/defaults", calculate.NewDefaultsHandler(defaults))
	})
	return r
}

func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debugw("http request", map[string]any{
				"method": r.Method,
				"path":   r.URL.Path,
				"status": ww.Status(),
				"remote": r.RemoteAddr,
			})
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
