// Package api provides the HTTP API server implementation.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/stockfolio/stockfolio/internal/logging"
	"github.com/stockfolio/stockfolio/internal/marketdata"
	"github.com/stockfolio/stockfolio/internal/models"
	"github.com/stockfolio/stockfolio/internal/service"
	"github.com/stockfolio/stockfolio/internal/session"
)

// Service interfaces for dependency injection and testing

// AccountServiceInterface defines the interface for account operations
type AccountServiceInterface interface {
	Register(ctx context.Context, input *service.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// PortfolioServiceInterface defines the interface for portfolio operations
type PortfolioServiceInterface interface {
	ListPortfolios(ctx context.Context, userID string) ([]*service.PortfolioView, error)
	AddHolding(ctx context.Context, input *service.AddHoldingInput) (*models.Holding, error)
}

// WatchlistServiceInterface defines the interface for watchlist operations
type WatchlistServiceInterface interface {
	List(ctx context.Context, userID string) ([]service.WatchlistEntryView, error)
	Add(ctx context.Context, userID, symbol string) (*models.WatchlistEntry, error)
	Remove(ctx context.Context, userID, entryID string) error
}

// MarketServiceInterface defines the interface for market data operations
type MarketServiceInterface interface {
	GetStockDetail(ctx context.Context, symbol, period, interval string) (*service.StockDetail, error)
	Search(query string) ([]marketdata.Listing, error)
	Recommendations() []marketdata.Recommendation
}

// Server represents the HTTP API server.
type Server struct {
	router           *mux.Router
	httpServer       *http.Server
	accountService   AccountServiceInterface
	portfolioService PortfolioServiceInterface
	watchlistService WatchlistServiceInterface
	marketService    MarketServiceInterface
	sessions         session.Store
	config           *ServerConfig
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Host              string
	Port              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	SessionCookieName string
	SessionTTL        time.Duration
	AllowedOrigin     string
	RateLimitRPS      int
	RateLimitBurst    int
}

// NewServer creates a new API server instance.
func NewServer(
	config *ServerConfig,
	accountService AccountServiceInterface,
	portfolioService PortfolioServiceInterface,
	watchlistService WatchlistServiceInterface,
	marketService MarketServiceInterface,
	sessions session.Store,
) *Server {
	s := &Server{
		router:           mux.NewRouter(),
		accountService:   accountService,
		portfolioService: portfolioService,
		watchlistService: watchlistService,
		marketService:    marketService,
		sessions:         sessions,
		config:           config,
	}

	s.setupRouter()

	return s
}

// setupRouter configures the router with middleware and routes
func (s *Server) setupRouter() {
	rateLimiter := NewRateLimiter(s.config.RateLimitRPS, s.config.RateLimitBurst)

	// Middleware order matters: log first, recover inside logging, rate
	// limit after CORS so preflights are never throttled.
	s.router.Use(LoggingMiddleware)
	s.router.Use(RecoveryMiddleware)
	s.router.Use(CORSMiddleware(s.config.AllowedOrigin))
	s.router.Use(RateLimitMiddleware(rateLimiter, s.config.SessionCookieName))

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.config.Host, s.config.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Preflights must match a route for the middleware chain to run; the
	// CORS middleware answers them before this handler is reached.
	s.router.PathPrefix("/").Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	api := s.router.PathPrefix("/api").Subrouter()

	// Auth endpoints
	api.HandleFunc("/register", s.handleRegister).Methods("POST")
	api.HandleFunc("/login", s.handleLogin).Methods("POST")
	api.HandleFunc("/logout", s.handleLogout).Methods("POST")
	api.HandleFunc("/user", s.requireAuth(s.handleGetUser)).Methods("GET")

	// Market data endpoints
	api.HandleFunc("/market/stock/{symbol}", s.handleGetStock).Methods("GET")
	api.HandleFunc("/market/search", s.handleSearch).Methods("GET")
	api.HandleFunc("/recommendations", s.requireAuth(s.handleRecommendations)).Methods("GET")

	// Portfolio endpoints
	api.HandleFunc("/portfolio", s.requireAuth(s.handleListPortfolios)).Methods("GET")
	api.HandleFunc("/portfolio/{id}/add", s.requireAuth(s.handleAddHolding)).Methods("POST")

	// Watchlist endpoints
	api.HandleFunc("/watchlist", s.requireAuth(s.handleListWatchlist)).Methods("GET")
	api.HandleFunc("/watchlist/add", s.requireAuth(s.handleAddToWatchlist)).Methods("POST")
	api.HandleFunc("/watchlist/remove/{id}", s.requireAuth(s.handleRemoveFromWatchlist)).Methods("DELETE")
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "stockfolio",
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	logging.GetGlobalLogger().WithField("addr", s.httpServer.Addr).Info("starting API server")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.GetGlobalLogger().Info("shutting down API server")
	return s.httpServer.Shutdown(ctx)
}
