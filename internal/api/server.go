// Package api provides the HTTP API server and handlers for the book discovery application.
package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/logger"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/service"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store              store.Store
	catalogService     *service.CatalogService
	statsService       *service.StatsService
	userService        *service.UserService
	readingListService *service.ReadingListService
	router             *chi.Mux
	api                huma.API
	log                *logger.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	st store.Store,
	catalogService *service.CatalogService,
	statsService *service.StatsService,
	userService *service.UserService,
	readingListService *service.ReadingListService,
	log *logger.Logger,
) *Server {
	router := chi.NewRouter()

	humaConfig := huma.DefaultConfig("Book Discovery API", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	humaAPI := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:              st,
		catalogService:     catalogService,
		statsService:       statsService,
		userService:        userService,
		readingListService: readingListService,
		router:             router,
		api:                humaAPI,
		log:                log,
	}

	s.setupMiddleware()
	s.registerHealthRoutes()
	s.registerSearchRoutes()
	s.registerBookRoutes()
	s.registerStatsRoutes()
	s.registerUserRoutes()
	s.registerReadingListRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}
