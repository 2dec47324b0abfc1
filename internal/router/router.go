package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"reachout/internal/config"
	"reachout/internal/handler"
	"reachout/internal/middleware"
)

// Deps are the injected collaborators for the route layer.
type Deps struct {
	Gateway interface {
		handler.GatewayAuth
		handler.GatewayProfiles
		handler.MessageSender
	}
	Generator handler.Generator
	Limiter   middleware.CounterStore
	Log       *zap.Logger
}

// New builds the HTTP router.
func New(cfg *config.Config, deps Deps) http.Handler {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	limiter := deps.Limiter
	if limiter == nil {
		limiter = middleware.NewMemoryStore()
	}

	production := cfg.IsProduction()
	authH := handler.NewAuthHandler(deps.Gateway, cfg.Frontend.BaseURL, production)
	profileH := handler.NewProfileHandler(deps.Gateway, production)
	messageH := handler.NewMessageHandler(deps.Generator, deps.Gateway, production)
	healthH := handler.NewHealthHandler()

	origins := append([]string{cfg.Frontend.BaseURL, "http://localhost:3000"}, cfg.CORSAllowedOrigins...)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Trace)
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.CORS(origins))
	r.Use(middleware.RateLimit(limiter, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window, log))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthH.Health)

		r.Get("/auth/linkedin/url", authH.OAuthURL)
		r.Get("/auth/connected-account", authH.ConnectedAccount)

		r.Get("/profile/me/{accountId}", profileH.Me)
		r.Post("/profile/fetch", profileH.Fetch)

		r.Post("/message/generate", messageH.Generate)
		r.Post("/message/send", messageH.Send)
	})

	r.NotFound(routeNotFound)
	r.MethodNotAllowed(routeNotFound)

	return r
}

func routeNotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Route not found"})
}
