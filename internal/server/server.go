// Package server exposes the simulation engine over HTTP. The engine stays
// transport-agnostic; this layer only maps requests and responses onto the
// two core contracts and adds the permissive CORS handling browser clients
// need.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/quantbio/qemd/internal/engine"
	"github.com/quantbio/qemd/internal/logging"
	"github.com/quantbio/qemd/internal/models"
	"github.com/quantbio/qemd/internal/omics"
)

// Server is the HTTP front end for the simulation engine.
type Server struct {
	addr  string
	log   *slog.Logger
	trace *logging.TraceLogger
}

// New creates a server listening on addr. trace may be nil.
func New(addr string, log *slog.Logger, trace *logging.TraceLogger) *Server {
	return &Server{addr: addr, log: log, trace: trace}
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	s.log.Info("qemd server starting", "addr", s.addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Handler returns the routed handler with middleware applied, for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/simulate", s.handleSimulate)
	mux.HandleFunc("/api/sweep", s.handleSweep)
	mux.HandleFunc("/api/map", s.handleMap)
	mux.HandleFunc("/api/health", s.handleHealth)
	return corsMiddleware(s.loggingMiddleware(mux))
}

// handleSimulate runs one simulation from a SimulateRequest body.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	params := req.Resolve(deriveFromOmics(req))

	res, points, err := engine.SimulateTrajectory(params)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusUnprocessableEntity, verr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "simulation failed")
		return
	}
	s.trace.Record("http-simulate", points)

	writeJSON(w, http.StatusOK, res)
}

// handleSweep runs the ENAQT decoherence sweep for the resolved parameters.
func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	params := req.Resolve(deriveFromOmics(req))

	curve, err := engine.Sweep(params, nil)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusUnprocessableEntity, verr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "sweep failed")
		return
	}

	gammaStar, etePeak := engine.FindGammaStar(curve)
	writeJSON(w, http.StatusOK, map[string]any{
		"curve":      curve,
		"gamma_star": gammaStar,
		"ete_peak":   etePeak,
	})
}

// handleMap derives site energies and decoherence rate from an omics payload.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		OmicsData string `json:"omicsData"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	writeJSON(w, http.StatusOK, omics.MapRaw(req.OmicsData))
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// deriveFromOmics maps the request's omics payload, or returns nil when the
// request carries none.
func deriveFromOmics(req models.SimulateRequest) *models.Derived {
	if req.OmicsData == "" {
		return nil
	}
	derived := omics.MapRaw(req.OmicsData)
	return &derived
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}
