package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"lead_gen/internal/lib/metrics"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Buyer    *BuyerHandler
	Property *PropertyHandler
	Interest *InterestHandler
	Lead     *LeadHandler
}

// NewRouter builds the full HTTP surface.
func NewRouter(h Handlers, verifier TokenVerifier, funnel *metrics.FunnelMetrics) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
		})

		r.Get("/properties", h.Property.List)
		r.Get("/properties/{id}", h.Property.GetByID)

		// Authenticated surface.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(verifier))

			r.Get("/buyers/me", h.Buyer.Me)
			r.Put("/buyers/me/preferences", h.Buyer.UpdatePreferences)

			r.Post("/properties", h.Property.Create)
			r.Put("/properties/{id}", h.Property.Update)
			r.Post("/properties/{id}/interest", h.Interest.Express)

			r.Get("/leads", h.Lead.List)
			r.Get("/leads/{id}", h.Lead.GetByID)
			r.Patch("/leads/{id}/status", h.Lead.UpdateStatus)
		})
	})

	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		respond(w, http.StatusOK, funnel.GetStats())
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		respond(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept-Language"},
		AllowCredentials: false,
	})

	return c.Handler(r)
}
