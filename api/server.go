// Package api provides the HTTP API server for the economic model service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"econ-api/internal/demand"
	"econ-api/internal/production"
	apiv1 "econ-api/pkg/api"
	econerrors "econ-api/pkg/errors"
	"econ-api/pkg/util"
)

// Version is reported by /version, /health and the service index.
const Version = "1.0.0"

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
	config     *Config
	log        zerolog.Logger
}

// Config holds server configuration.
type Config struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestTimeout time.Duration
	MaxRequestSize int64
	CORSOrigins    []string
}

// DefaultConfig returns default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:           8000,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		RequestTimeout: 60 * time.Second,
		MaxRequestSize: 1 << 20, // requests are a handful of scalars
		CORSOrigins:    []string{"*"},
	}
}

// NewServer creates a new API server.
func NewServer(config *Config, log zerolog.Logger) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	return &Server{config: config, log: log}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.config.RequestTimeout))
	r.Use(s.corsMiddleware)

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Get("/health/live", s.handleLiveness)
	r.Get("/health/ready", s.handleReadiness)
	r.Get("/version", s.handleVersion)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/production", s.handleProduction)
		r.Post("/optimize", s.handleOptimize)
		r.Post("/demand", s.handleDemand)
		r.Post("/optimal-price", s.handleOptimalPrice)
	})

	return r
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.log.Info().
		Int("port", s.config.Port).
		Str("version", Version).
		Msg("🚀 econ-api server starting")
	return s.httpServer.ListenAndServe()
}

// StartWithGracefulShutdown starts the server and drains it on SIGINT/SIGTERM.
func (s *Server) StartWithGracefulShutdown() error {
	errChan := make(chan error, 1)
	go func() {
		if err := s.Start(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-quit:
		s.log.Info().Msg("📴 shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

type requestIDKey struct{}

func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		id, _ := r.Context().Value(requestIDKey{}).(string)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Str("request_id", id).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		allowed := false
		for _, o := range s.config.CORSOrigins {
			if o == "*" || o == origin {
				allowed = true
				break
			}
		}

		if allowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// SERVICE ENDPOINTS
// =============================================================================

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"message": "Economic Model API",
		"endpoints": []string{
			"/api/v1/production",
			"/api/v1/optimize",
			"/api/v1/demand",
			"/api/v1/optimal-price",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "econ-api",
		"version": Version,
	})
}

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	// Stateless service: ready as soon as it serves requests.
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"version": Version,
	})
}

// =============================================================================
// MODEL ENDPOINTS
// =============================================================================

func (s *Server) handleProduction(w http.ResponseWriter, r *http.Request) {
	var req apiv1.ProductionRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.econError(w, err)
		return
	}

	model := newModel(req.TFP, req.Alpha, req.Beta)

	output, err := model.Output(req.Capital, req.Labor)
	if err != nil {
		s.econError(w, err)
		return
	}
	mpk, err := model.MarginalProductCapital(req.Capital, req.Labor)
	if err != nil {
		s.econError(w, err)
		return
	}
	mpl, err := model.MarginalProductLabor(req.Capital, req.Labor)
	if err != nil {
		s.econError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, apiv1.ProductionResponse{
		Output:                 util.Round2(output),
		MarginalProductCapital: util.Round4(mpk),
		MarginalProductLabor:   util.Round4(mpl),
		ReturnsToScale:         model.ReturnsToScale(),
	})
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req apiv1.OptimizationRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.econError(w, err)
		return
	}

	model := newModel(req.TFP, req.Alpha, req.Beta)
	alloc, err := model.OptimalAllocation(req.Budget, req.CapitalPrice, req.LaborPrice)
	if err != nil {
		s.econError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, apiv1.OptimizationResponse{
		Capital: alloc.Capital,
		Labor:   alloc.Labor,
		Output:  alloc.Output,
		MPK:     alloc.MPK,
		MPL:     alloc.MPL,
	})
}

func (s *Server) handleDemand(w http.ResponseWriter, r *http.Request) {
	var req apiv1.DemandRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.econError(w, err)
		return
	}

	basePrice := apiv1.FloatOrDefault(req.BasePrice, demand.DefaultBasePrice)
	baseQuantity := apiv1.FloatOrDefault(req.BaseQuantity, demand.DefaultBaseQuantity)

	quantity, err := demand.Quantity(req.Price, req.Elasticity, basePrice, baseQuantity)
	if err != nil {
		s.econError(w, err)
		return
	}
	revenue, err := demand.Revenue(req.Price, req.Elasticity, basePrice, baseQuantity)
	if err != nil {
		s.econError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, apiv1.DemandResponse{
		Price:            req.Price,
		QuantityDemanded: util.Round2(quantity),
		TotalRevenue:     util.Round2(revenue),
		Elasticity:       req.Elasticity,
	})
}

func (s *Server) handleOptimalPrice(w http.ResponseWriter, r *http.Request) {
	var req apiv1.OptimalPriceRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.econError(w, err)
		return
	}

	markup, err := demand.OptimalPrice(req.Elasticity, req.MarginalCost)
	if err != nil {
		s.econError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, apiv1.OptimalPriceResponse{
		OptimalPrice:     markup.OptimalPrice,
		MarkupPercentage: markup.MarkupPercentage,
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func newModel(tfp, alpha, beta *float64) *production.Model {
	return production.New(
		apiv1.FloatOrDefault(tfp, production.DefaultTFP),
		apiv1.FloatOrDefault(alpha, production.DefaultAlpha),
		apiv1.FloatOrDefault(beta, production.DefaultBeta),
	)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.jsonError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return false
	}
	return true
}

// econError maps structured model errors onto HTTP status codes.
func (s *Server) econError(w http.ResponseWriter, err error) {
	var ee *econerrors.EconError
	if errors.As(err, &ee) {
		switch ee.Code {
		case econerrors.ErrCodeInvalidElasticity:
			s.jsonError(w, http.StatusUnprocessableEntity, ee.Message)
		case econerrors.ErrCodeSolverFailed:
			s.jsonError(w, http.StatusInternalServerError, ee.Message)
		default:
			s.jsonError(w, http.StatusBadRequest, ee.Message)
		}
		return
	}
	s.jsonError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) jsonError(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, apiv1.ErrorResponse{Error: message})
}
