package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/openalpha/syndicate/api/middleware"
	"github.com/openalpha/syndicate/api/types"
	"github.com/openalpha/syndicate/api/websocket"
	"github.com/openalpha/syndicate/metrics"
)

// Server is the REST and websocket gateway in front of a SchemeService.
type Server struct {
	httpServer *http.Server
	hub        *websocket.Hub
	config     *Config

	service types.SchemeService

	rateLimiter *middleware.RateLimiter
	collector   *metrics.Collector
}

// Config contains server configuration
type Config struct {
	Host             string
	Port             int
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	DisableRateLimit bool // For benchmarking
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// NewServer creates a gateway around the given service
func NewServer(config *Config, service types.SchemeService) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	collector := metrics.GetCollector()
	hub := websocket.NewHub(func(delta int) {
		collector.WSConnections.Add(float64(delta))
	})

	s := &Server{
		hub:       hub,
		config:    config,
		service:   service,
		collector: collector,
	}
	if !config.DisableRateLimit {
		s.rateLimiter = middleware.NewRateLimiter(nil)
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	var handler http.Handler = mux
	if s.rateLimiter != nil {
		handler = s.rateLimiter.Middleware(handler)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      handler,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	return s
}

// Hub returns the websocket hub so service implementations can stream events
func (s *Server) Hub() *websocket.Hub {
	return s.hub
}

// Start runs the hub and serves HTTP until Stop is called
func (s *Server) Start() error {
	go s.hub.Run()
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	s.hub.Stop()
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.collector.Handler())
	mux.HandleFunc("GET /ws", s.hub.ServeWS)

	mux.HandleFunc("POST /v1/schemes", s.instrument("create_scheme", s.handleCreateScheme))
	mux.HandleFunc("GET /v1/schemes", s.instrument("list_schemes", s.handleListSchemes))
	mux.HandleFunc("GET /v1/schemes/{id}", s.instrument("get_scheme", s.handleGetScheme))
	mux.HandleFunc("GET /v1/schemes/{id}/ledger", s.instrument("get_ledger", s.handleGetLedger))

	mux.HandleFunc("POST /v1/schemes/{id}/deposit", s.instrument("deposit", s.handleDeposit))
	mux.HandleFunc("POST /v1/schemes/{id}/withdraw", s.instrument("withdraw", s.handleWithdraw))

	mux.HandleFunc("POST /v1/schemes/{id}/buy-order", s.instrument("make_buy_order", s.lifecycleHandler(s.service.MakeBuyOrder)))
	mux.HandleFunc("POST /v1/schemes/{id}/publish", s.instrument("publish_token", s.lifecycleHandler(s.service.PublishToken)))
	mux.HandleFunc("POST /v1/schemes/{id}/sell", s.instrument("sell_asset", s.lifecycleHandler(s.service.SellAsset)))
	mux.HandleFunc("POST /v1/schemes/{id}/sell-update", s.instrument("update_sell_order", s.lifecycleHandler(s.service.UpdateSellOrder)))
	mux.HandleFunc("POST /v1/schemes/{id}/redeem", s.instrument("redeem", s.lifecycleHandler(s.service.Redeem)))
}

// instrument wraps a handler with request metrics
func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.collector.ObserveHTTP(route, r.Method, strconv.Itoa(rec.status), time.Since(start))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

func (s *Server) handleCreateScheme(w http.ResponseWriter, r *http.Request) {
	var req types.CreateSchemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := s.service.CreateScheme(&req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleListSchemes(w http.ResponseWriter, r *http.Request) {
	views, err := s.service.ListSchemes(r.URL.Query().Get("state"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"schemes": views,
		"total":   len(views),
	})
}

func (s *Server) handleGetScheme(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.GetScheme(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetLedger(w http.ResponseWriter, r *http.Request) {
	ledger, err := s.service.GetLedger(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ledger)
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	var req types.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ledger, err := s.service.Deposit(r.PathValue("id"), &req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ledger)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req types.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ledger, err := s.service.Withdraw(r.PathValue("id"), &req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ledger)
}

// lifecycleHandler adapts the caller-only operations to a shared handler shape
func (s *Server) lifecycleHandler(op func(schemeID, caller string) (*types.OperationResponse, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.OperationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		resp, err := op(r.PathValue("id"), req.Caller)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("api: response encoding failed: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
