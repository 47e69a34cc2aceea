package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/example/gtmscan/internal/app"
	"github.com/example/gtmscan/internal/logging"
	"github.com/example/gtmscan/internal/model"
	"github.com/example/gtmscan/internal/output"
)

// Server is the HTTP + WebSocket API surface for the scanner.
type Server struct {
	cfg          Config
	orchestrator *app.Orchestrator
	router       chi.Router
	upgrader     websocket.Upgrader
	logger       logging.Logger
}

// NewServer creates a new Server with its own Orchestrator.
func NewServer(cfg Config) (*Server, error) {
	if cfg.AppConfig == nil {
		cfg.AppConfig = app.DefaultConfig()
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = cfg.AppConfig.ListenAddr
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("Server")
	}

	orch, err := app.NewOrchestrator(cfg.AppConfig, logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	s := &Server{
		cfg:          cfg,
		orchestrator: orch,
		router:       r,
		logger:       logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: tighten for production
				return true
			},
		},
	}

	s.routes()
	return s, nil
}

// Orchestrator returns the underlying orchestrator for advanced use (tests, etc.).
func (s *Server) Orchestrator() *app.Orchestrator {
	return s.orchestrator
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/scans", s.optionsHandler("GET, POST"))
	r.Options("/scans/{scanID}", s.optionsHandler("GET, DELETE"))
	r.Options("/scans/{scanID}/export", s.optionsHandler("GET"))
	r.Options("/ws/scans/{scanID}", s.optionsHandler("GET"))

	// Scan jobs over REST
	r.Post("/scans", s.handleStartScan)
	r.Get("/scans", s.handleListScans)
	r.Get("/scans/{scanID}", s.handleGetScan)
	r.Delete("/scans/{scanID}", s.handleCancelScan)
	r.Get("/scans/{scanID}/export", s.handleExportScan)

	// WebSocket for job progress
	r.Get("/ws/scans/{scanID}", s.handleScanWS)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}

	if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch) {
		if bodyBytes, err := io.ReadAll(r.Body); err == nil {
			fields = append(fields, logging.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// Close shuts down the orchestrator and underlying resources.
func (s *Server) Close() {
	if s.orchestrator != nil {
		s.orchestrator.Close()
	}
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// --- HTTP handlers ---

func (s *Server) scanConfigFrom(body StartScanRequest) model.ScanConfig {
	cfg := s.orchestrator.ScanDefaults()
	if body.MaxConcurrency != 0 {
		cfg.MaxConcurrency = body.MaxConcurrency
	}
	if body.TimeoutSeconds != 0 {
		cfg.TimeoutSeconds = body.TimeoutSeconds
	}
	return cfg
}

func (s *Server) handleStartScan(w http.ResponseWriter, r *http.Request) {
	var body StartScanRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("decoding start scan body", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	job, err := s.orchestrator.StartScanJob(body.URLs, s.scanConfigFrom(body))
	if err != nil {
		s.logger.Warn("starting scan job", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Info("started scan job", logging.Field{Key: "job_id", Value: job.ID}, logging.Field{Key: "url_count", Value: job.URLCount})
	writeJSON(w, http.StatusAccepted, job)
}

func (s *Server) handleListScans(w http.ResponseWriter, r *http.Request) {
	jobs := s.orchestrator.ListJobs()
	s.logger.Info("listed scan jobs", logging.Field{Key: "count", Value: len(jobs)})
	writeJSON(w, http.StatusOK, jobs)
}

func (s *Server) handleGetScan(w http.ResponseWriter, r *http.Request) {
	scanID := chi.URLParam(r, "scanID")
	job := s.orchestrator.GetJob(scanID)
	if job == nil {
		s.logger.Warn("getting scan job: not found", logging.Field{Key: "job_id", Value: scanID})
		writeError(w, http.StatusNotFound, "scan job not found")
		return
	}
	s.logger.Info("got scan job", logging.Field{Key: "job_id", Value: job.ID})
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleCancelScan(w http.ResponseWriter, r *http.Request) {
	scanID := chi.URLParam(r, "scanID")
	if !s.orchestrator.CancelJob(scanID) {
		writeError(w, http.StatusNotFound, "scan job not found")
		return
	}
	s.logger.Info("canceled scan job", logging.Field{Key: "job_id", Value: scanID})
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleExportScan(w http.ResponseWriter, r *http.Request) {
	scanID := chi.URLParam(r, "scanID")
	job := s.orchestrator.GetJob(scanID)
	if job == nil {
		writeError(w, http.StatusNotFound, "scan job not found")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="gtm_scan_results.csv"`)
		if err := output.WriteCSV(w, job.Results); err != nil {
			s.logger.Warn("exporting csv", logging.Field{Key: "job_id", Value: scanID}, logging.Field{Key: "error", Value: err.Error()})
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="gtm_scan_results.xlsx"`)
		if err := output.WriteXLSX(w, job.Results); err != nil {
			s.logger.Warn("exporting xlsx", logging.Field{Key: "job_id", Value: scanID}, logging.Field{Key: "error", Value: err.Error()})
		}
	default:
		writeError(w, http.StatusBadRequest, "unsupported format: "+format)
		return
	}
	s.logger.Info("exported scan job", logging.Field{Key: "job_id", Value: scanID}, logging.Field{Key: "format", Value: format})
}

// WebSocket

func (s *Server) handleScanWS(w http.ResponseWriter, r *http.Request) {
	scanID := chi.URLParam(r, "scanID")

	job := s.orchestrator.GetJob(scanID)
	if job == nil {
		writeError(w, http.StatusNotFound, "scan job not found")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	// Send the current job snapshot first so late subscribers see state.
	_ = conn.WriteJSON(job)

	events := s.orchestrator.Events(scanID)
	if events == nil {
		// Job already finished; snapshot above carries the final state.
		return
	}

	for ev := range events {
		if err := conn.WriteJSON(ev); err != nil {
			// Assume client disconnected; cancel job
			s.orchestrator.CancelJob(scanID)
			return
		}
	}
}
