// Package api provides the HTTP server for the fleetshare daemon. It
// exposes the administrative, holder-facing and read-only operations of the
// ownership ledger as JSON endpoints.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fleetshare-network/fleetshare/internal/app"
	"github.com/fleetshare-network/fleetshare/internal/domain"
)

// Server is the fleetshare HTTP API server.
type Server struct {
	svc            *app.Service
	adminKey       string
	metricsEnabled bool
}

// NewServer creates a new API server. adminKey is the externally verified
// administrator credential presented as the X-Admin-Key header.
func NewServer(svc *app.Service, adminKey string) *Server {
	return &Server{svc: svc, adminKey: adminKey}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Minute))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		// Administrative operations
		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Post("/assets", s.handleCreateAsset)
			r.Patch("/assets/{id}/status", s.handleSetStatus)
			r.Post("/assets/{id}/revenue", s.handleDepositRevenue)
			r.Post("/assets/{id}/expense", s.handleRecordExpense)
			r.Post("/treasury/withdraw", s.handleWithdraw)
		})

		// Holder-facing operations
		r.Post("/assets/{id}/buy", s.handleBuy)
		r.Post("/assets/{id}/sell", s.handleSell)
		r.Post("/assets/{id}/claim", s.handleClaim)
		r.Post("/claims", s.handleClaimAll)

		// Ambient receive entrypoint
		r.Post("/treasury/receive", s.handleReceive)

		// Read-only operations
		r.Get("/assets", s.handleListAssets)
		r.Get("/assets/count", s.handleAssetCount)
		r.Get("/assets/{id}", s.handleGetAsset)
		r.Get("/assets/{id}/sold", s.handleSoldShares)
		r.Get("/assets/{id}/holdings/{holder}", s.handleHoldingOf)
		r.Get("/assets/{id}/pending/{holder}", s.handlePendingOf)
		r.Get("/holders/{holder}/portfolio", s.handlePortfolio)
		r.Get("/treasury/balance", s.handleContractBalance)
		r.Get("/admin/check", s.handleAdminCheck)
		r.Get("/events", s.handleEvents)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// requireAdmin gates administrative operations on the configured admin key.
// Caller identity itself is verified outside this system; the header is the
// interface boundary.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminKey == "" || r.Header.Get("X-Admin-Key") != s.adminKey {
			writeError(w, http.StatusForbidden, "administrator credential required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeLedgerError maps a domain error to its HTTP status.
func writeLedgerError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrAssetNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientShares),
		errors.Is(err, domain.ErrInsufficientHolding),
		errors.Is(err, domain.ErrInsufficientPayment),
		errors.Is(err, domain.ErrAssetInactive),
		errors.Is(err, domain.ErrNothingToDistribute),
		errors.Is(err, domain.ErrNothingToClaim):
		return http.StatusConflict
	case errors.Is(err, domain.ErrTransferFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Admin-Key")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
