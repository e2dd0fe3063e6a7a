// Package main is the entry point for the Yelay action provider server,
// exposing vault listing, deposit, redeem, claim, and balance actions
// over HTTP for agent hosts.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Traf333/agentkit/internal/config"
	"github.com/Traf333/agentkit/internal/otel"
	"github.com/Traf333/agentkit/internal/wallet"
	"github.com/Traf333/agentkit/internal/yelay"
)

// startTime records when the service was initialized for uptime reporting
var startTime = time.Now()

// Server hosts one action provider over HTTP.
type Server struct {
	// Configuration for the server
	config config.Config

	// The hosted action provider
	provider *yelay.Provider

	// Signing wallet; nil when no private key is configured, which leaves
	// the read-only actions functional and the transacting ones reporting
	// the missing wallet
	wallet wallet.Provider

	// HTTP server instance
	server *http.Server

	// Metrics registry
	metrics *serverMetrics

	// Rate limiter for the action endpoint
	rateLimit *rate.Limiter
}

// serverMetrics holds Prometheus metrics for the server
type serverMetrics struct {
	actionCounter  *prometheus.CounterVec
	actionDuration *prometheus.HistogramVec
	rateLimited    prometheus.Counter
}

// registerMetrics sets up Prometheus metrics collection
func registerMetrics() *serverMetrics {
	m := &serverMetrics{
		actionCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yelay_actions_total",
				Help: "Total number of actions executed",
			},
			[]string{"action"},
		),
		actionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "yelay_action_duration_seconds",
				Help:    "Action execution duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"action"},
		),
		rateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "yelay_rate_limited_total",
				Help: "Total number of requests rejected by the rate limiter",
			},
		),
	}

	prometheus.MustRegister(
		m.actionCounter,
		m.actionDuration,
		m.rateLimited,
	)

	return m
}

// main is the entry point for the application
func main() {
	setupLogging()

	cfg := config.Load()

	shutdownTracing := otel.InitTracer(cfg.OtelEndpoint)
	defer shutdownTracing()

	provider, err := newProvider(cfg)
	if err != nil {
		logrus.Fatalf("Error creating action provider: %v", err)
	}

	w, err := newWallet(context.Background(), cfg, provider)
	if err != nil {
		logrus.Fatalf("Error creating wallet: %v", err)
	}

	server := NewServer(cfg, provider, w)
	server.Start()
}

// setupLogging configures the logging for the application
func setupLogging() {
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	logLevel := strings.ToLower(os.Getenv("LOG_LEVEL"))

	// Set log formatter based on environment
	switch logFormat {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	// Set log level based on environment
	switch logLevel {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn", "warning":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}

	logrus.Info("Logging configured")
}

// newProvider builds the Yelay provider from configuration.
func newProvider(cfg config.Config) (*yelay.Provider, error) {
	opts := []yelay.Option{yelay.WithPoolID(cfg.PoolID)}
	if cfg.BackendURL != "" {
		opts = append(opts, yelay.WithBackendURL(cfg.BackendURL))
	}
	return yelay.New(cfg.ChainID, cfg.TestMode, opts...)
}

// newWallet dials the chain's RPC endpoint when a private key is
// configured. Without a key the server runs read-only.
func newWallet(ctx context.Context, cfg config.Config, provider *yelay.Provider) (wallet.Provider, error) {
	if cfg.PrivateKey == "" {
		logrus.Info("No private key configured, running read-only")
		return nil, nil
	}

	rpcEndpoint := provider.Chain().RPCEndpoint
	if cfg.RPCEndpoint != "" {
		rpcEndpoint = cfg.RPCEndpoint
	}

	return wallet.NewEthWallet(ctx, rpcEndpoint, cfg.PrivateKey)
}

// NewServer creates a new server instance hosting the provider
func NewServer(cfg config.Config, provider *yelay.Provider, w wallet.Provider) *Server {
	server := &Server{
		config:    cfg,
		provider:  provider,
		wallet:    w,
		metrics:   registerMetrics(),
		rateLimit: rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	}

	logrus.WithFields(logrus.Fields{
		"port":     cfg.Port,
		"chainId":  cfg.ChainID,
		"testMode": cfg.TestMode,
		"poolId":   cfg.PoolID,
		"wallet":   w != nil,
		"actions":  len(provider.Actions()),
	}).Info("Server initialized")

	return server
}

// Start begins the HTTP server and sets up graceful shutdown
func (s *Server) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleAction)          // Action execution endpoint
	mux.HandleFunc("/actions", s.handleActions)  // Action catalog endpoint
	mux.HandleFunc("/health", s.handleHealth)    // Health check endpoint
	mux.HandleFunc("/status", s.handleStatus)    // Service status endpoint
	mux.Handle("/metrics", promhttp.Handler())   // Prometheus metrics endpoint

	// Configure server with timeouts
	s.server = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.config.RequestTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		logrus.Infof("Server starting on port %s", s.config.Port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Error starting server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server shutdown failed: %v", err)
	}

	logrus.Info("Server stopped")
}

// handleAction executes one named action against the hosted provider.
// Handlers render their own failures; the transport only distinguishes
// malformed requests and unknown actions.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		errorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if !s.rateLimit.Allow() {
		s.metrics.rateLimited.Inc()
		errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.RequestTimeout)
	defer cancel()

	ctx, span := otel.Tracer().Start(ctx, "handle_action")
	defer span.End()

	var request ActionRequest
	if err := decodeRequest(r, &request); err != nil {
		otel.RecordError(ctx, err)
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	action, ok := s.provider.Registry().Get(request.Action)
	if !ok {
		otel.RecordError(ctx, fmt.Errorf("unknown action %q", request.Action))
		errorResponse(w, http.StatusNotFound, "Unknown action: "+request.Action)
		return
	}

	span.SetName("action." + action.Name)
	result := action.Handler(ctx, s.wallet, request.Input)

	s.metrics.actionCounter.WithLabelValues(action.Name).Inc()
	s.metrics.actionDuration.WithLabelValues(action.Name).Observe(time.Since(start).Seconds())

	logrus.WithFields(logrus.Fields{
		"action":    action.Name,
		"latencyMs": time.Since(start).Milliseconds(),
	}).Info("Action executed")

	writeJSON(w, http.StatusOK, ActionResponse{
		Provider: s.provider.Name(),
		Action:   action.Name,
		Result:   result,
	})
}

// handleActions lists the provider's actions with their input schemas.
func (s *Server) handleActions(w http.ResponseWriter, _ *http.Request) {
	actions := s.provider.Actions()
	catalog := make([]ActionDescriptor, len(actions))
	for i, a := range actions {
		catalog[i] = ActionDescriptor{
			Name:        a.Name,
			Description: a.Description,
			Schema:      a.Schema,
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"provider": s.provider.Name(),
		"actions":  catalog,
	})
}

// handleHealth is a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"version":   "1.0.0",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleStatus provides detailed service status information
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "operational",
		"uptime":  time.Since(startTime).String(),
		"version": "1.0.0",
		"actions": s.provider.Registry().Names(),
		"configuration": map[string]interface{}{
			"chainId":  s.config.ChainID,
			"chain":    s.provider.Chain().Name,
			"testMode": s.config.TestMode,
			"poolId":   s.config.PoolID,
			"wallet":   s.wallet != nil,
		},
	})
}
