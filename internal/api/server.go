package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dgallion1/headingnav/internal/config"
	"github.com/dgallion1/headingnav/internal/content"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
)

// Server is the HTTP API server for headingnav.
type Server struct {
	router chi.Router
	store  *content.Store
	log    *slog.Logger
	cfg    config.Config

	upgrader websocket.Upgrader
}

// NewServer creates and configures the HTTP server.
func NewServer(store *content.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store: store,
		log:   log,
		cfg:   cfg,
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: originAllowed(cfg.AllowedOrigins)}
	s.setupRoutes()
	return s
}

// originAllowed accepts a websocket handshake when the request carries no
// Origin header, when "*" is configured, or when the origin is listed.
func originAllowed(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Get("/posts/*", s.handlePage)
	r.Get("/ws/posts/*", s.handleNavigatorSession)

	r.Get("/api/posts", s.handleListPosts)
	r.Get("/api/posts/*", s.handleGetPost)
	r.Post("/api/outline", s.handleExtractOutline)

	if s.cfg.AdminAPIKey != "" {
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(s.cfg.AdminAPIKey, s.log))
			r.Post("/api/reload", s.handleReload)
		})
	}

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"posts":  s.store.Len(),
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
