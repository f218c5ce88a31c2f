package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"credauth/internal/keymaterial"
	obsmw "credauth/internal/observability/middleware"
	"credauth/internal/service"
)

func NewRouter(auth service.AuthService, tokens service.TokenService, keys *keymaterial.KeyMaterial) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(obsmw.WithRequestAndTrace)
	r.Use(obsmw.WithMetrics)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/.well-known/jwks.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"keys": []map[string]any{keys.PublicJWK()},
		})
	})

	// Credential endpoints are the brute-force surface; keep them
	// behind a per-IP limit.
	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(20, 1*time.Minute))

		r.Post("/v1/auth/login", handleLogin(auth))
		r.Post("/v1/auth/otp", handleRequestOtp(auth))
		r.Post("/v1/auth/recover", handleRecoverPassword(auth))
		r.Post("/v1/auth/verify", handleVerifyToken(tokens))
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
