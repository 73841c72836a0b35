package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	dataownerHTTP "github.com/allisson/delegations/internal/dataowner/http"
	delegationHTTP "github.com/allisson/delegations/internal/delegation/http"
	exchangeHTTP "github.com/allisson/delegations/internal/exchange/http"
	"github.com/allisson/delegations/internal/metrics"
	recoveryHTTP "github.com/allisson/delegations/internal/recovery/http"
)

const readinessTimeout = 2 * time.Second

// Server is the public HTTP API server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// RouterConfig holds the middleware settings applied by SetupRouter.
type RouterConfig struct {
	CORSEnabled      bool
	CORSAllowOrigins string

	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int

	// MetricsProvider enables HTTP request metrics when non-nil.
	MetricsProvider  *metrics.Provider
	MetricsNamespace string
}

// Handlers groups the bounded-context handlers mounted under /v1.
type Handlers struct {
	SecurityMetadata *delegationHTTP.SecurityMetadataHandler
	ExchangeData     *exchangeHTTP.ExchangeDataHandler
	ExchangeDataMap  *exchangeHTTP.ExchangeDataMapHandler
	RecoveryData     *recoveryHTTP.RecoveryDataHandler
	CryptoActor      *dataownerHTTP.CryptoActorHandler
}

// NewServer creates a Server listening on host:port. SetupRouter must be called before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db: db,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// SetupRouter builds the gin engine with the middleware chain and every /v1 route.
// ctx bounds background work started by middleware, such as the rate limiter sweep.
func (s *Server) SetupRouter(ctx context.Context, cfg RouterConfig, h Handlers) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}
	if cfg.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MetricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if cfg.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	if h.SecurityMetadata != nil {
		md := v1.Group("/security-metadata/:entityType/:entityId")
		md.GET("", h.SecurityMetadata.GetHandler)
		md.PUT("", h.SecurityMetadata.SaveHandler)
		md.POST("/conflicts", h.SecurityMetadata.ResolveConflictsHandler)
		md.POST("/duplicates", h.SecurityMetadata.MergeDuplicatesHandler)
		md.POST("/delegations", h.SecurityMetadata.ShareWithHandler)
		md.GET("/delegations/:key", h.SecurityMetadata.GetDelegationHandler)
		md.GET("/aliases/:key", h.SecurityMetadata.GetAliasesHandler)
	}

	if h.ExchangeData != nil {
		ed := v1.Group("/exchange-data")
		ed.POST("", h.ExchangeData.CreateHandler)
		ed.GET("", h.ExchangeData.ListByParticipantsHandler)
		ed.GET("/participant/:ownerId", h.ExchangeData.ListByParticipantHandler)
		ed.GET("/:id", h.ExchangeData.GetHandler)
		ed.PUT("/:id", h.ExchangeData.UpdateHandler)
	}

	if h.ExchangeDataMap != nil {
		edm := v1.Group("/exchange-data-map")
		edm.PUT("/batch", h.ExchangeDataMap.CreateOrAppendHandler)
		edm.POST("/batch/get", h.ExchangeDataMap.GetManyHandler)
		edm.GET("/:id", h.ExchangeDataMap.GetHandler)
	}

	if h.RecoveryData != nil {
		rd := v1.Group("/recovery-data")
		rd.POST("", h.RecoveryData.CreateHandler)
		rd.GET("", h.RecoveryData.ListHandler)
		rd.GET("/:id", h.RecoveryData.GetHandler)
		rd.DELETE("/:id", h.RecoveryData.PurgeHandler)
		rd.DELETE("/recipient/:recipient", h.RecoveryData.PurgeAllForHandler)
	}

	if h.CryptoActor != nil {
		ca := v1.Group("/crypto-actors/:type/:id")
		ca.GET("", h.CryptoActor.GetHandler)
		ca.PUT("", h.CryptoActor.PutHandler)
	}

	s.router = router
}

// GetHandler returns the configured router, mainly for tests.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves requests until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured, call SetupRouter first")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start http server: %w", err)
	}

	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
