package web

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/mgnrega-backend/internal/store"
	"github.com/mgnrega-backend/internal/web/handlers"
	"github.com/mgnrega-backend/internal/web/middleware"
)

// Server is the read-side HTTP API for dashboards.
type Server struct {
	config     *Config
	db         *sql.DB
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates the API server on an existing connection pool.
func NewServer(config *Config, conn *sql.DB) *Server {
	s := &Server{
		config: config,
		db:     conn,
	}
	s.setupRoutes()

	// The API is read-only and consumed by browser dashboards; allow
	// cross-origin GETs.
	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}).Handler(s.router)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	st := store.New(s.db)
	dataHandler := &handlers.DataHandler{Store: st, CacheLimit: s.config.CacheLimit}
	statusHandler := &handlers.StatusHandler{DB: s.db, Info: handlers.ServiceInfo(s.config.Info)}

	s.router.HandleFunc("/", statusHandler.Root).Methods("GET")
	s.router.HandleFunc("/healthz", statusHandler.Health).Methods("GET")
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := s.router.PathPrefix("/mgnrega").Subrouter()
	api.HandleFunc("/all", dataHandler.GetAll).Methods("GET")
	api.HandleFunc("/summary", dataHandler.GetSummary).Methods("GET")

	s.router.Use(middleware.RequestLogging())
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("Starting server on http://%s\n", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
