package api

import (
	"context"
	"encoding/json"
	"net/http"

	"superadmin/navigation/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"
)

// Navigation is what the HTTP layer needs from the service
type Navigation interface {
	Language(lang string) string
	MenuTypes() []domain.MenuTypeCode
	Menu(ctx context.Context, menuType domain.MenuTypeCode, lang string, includeInactive bool) domain.MenuState
	PeekMenu(ctx context.Context, menuType domain.MenuTypeCode, lang string) domain.MenuState
	RouteTable(ctx context.Context, lang string) domain.RouteTable
	Breadcrumbs(ctx context.Context, pathname string) []domain.BreadcrumbItem
	RequestInvalidation(ctx context.Context, menuType domain.MenuTypeCode, lang, reason string) error
}

// Server holds the HTTP server dependencies
type Server struct {
	nav            Navigation
	router         chi.Router
	allowedOrigins []string
}

// New creates a new API server
func New(nav Navigation, allowedOrigins []string) *Server {
	s := &Server{
		nav:            nav,
		router:         chi.NewRouter(),
		allowedOrigins: allowedOrigins,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(forwardToken)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/menus", s.handleListMenus)
		r.Get("/menus/{menuType}", s.handleGetMenu)
		r.Post("/menus/{menuType}/invalidate", s.handleInvalidateMenu)

		r.Get("/routes", s.handleGetRoutes)
		r.Get("/breadcrumbs", s.handleGetBreadcrumbs)
	})

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warnf("Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
