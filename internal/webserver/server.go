// Package webserver serves the read-only dashboard over the record store:
// a JSON API, a CSV export, an SSE stream of record changes, prometheus
// metrics, and the embedded frontend page.
package webserver

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vanlineshq/moveline/internal/events"
	"github.com/vanlineshq/moveline/internal/store"
)

const healthStatus = "moveline-ok"

type Server struct {
	store  *store.Store
	broker *events.Broker
	logger *slog.Logger
	static fs.FS
}

type Option func(*Server)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithStaticFS serves the embedded frontend at the root path.
func WithStaticFS(fsys fs.FS) Option {
	return func(s *Server) { s.static = fsys }
}

func New(st *store.Store, broker *events.Broker, opts ...Option) *Server {
	s := &Server{
		store:  st,
		broker: broker,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the full route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/requests", s.handleListRequests)
	mux.HandleFunc("GET /api/requests/export", s.handleExportCSV)
	mux.HandleFunc("GET /api/requests/{id}", s.handleGetRequest)
	mux.HandleFunc("DELETE /api/requests/{id}", s.handleDeleteRequest)
	mux.HandleFunc("GET /api/events", s.handleSSE)
	mux.HandleFunc("OPTIONS /api/", handleCORS)
	mux.Handle("GET /metrics", promhttp.Handler())

	if s.static != nil {
		mux.Handle("/", http.FileServer(http.FS(s.static)))
	}

	return corsMiddleware(mux)
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	s.logger.Info("dashboard listening", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next.ServeHTTP(w, r)
	})
}

func handleCORS(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":   healthStatus,
		"database": s.store.TestConnection(),
	})
}

// handleListRequests lists records newest-first, with the dashboard's two
// filters: a search term matched against customer name and request id, and
// a building-type filter.
func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.ListAll()
	if err != nil {
		s.serverError(w, err)
		return
	}

	search := strings.ToLower(r.URL.Query().Get("search"))
	buildingType := strings.ToLower(r.URL.Query().Get("building_type"))

	filtered := make([]store.MovingRequest, 0, len(recs))
	for _, rec := range recs {
		if search != "" &&
			!strings.Contains(strings.ToLower(rec.CustomerName), search) &&
			!strings.Contains(rec.RequestID, search) {
			continue
		}
		if buildingType != "" && rec.FromBuildingType != buildingType {
			continue
		}
		filtered = append(filtered, rec)
	}

	writeJSON(w, filtered)
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		s.serverError(w, err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, rec)
}

// handleDeleteRequest is the administrative delete; the conversational flow
// never removes records.
func (s *Server) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	deleted, err := s.store.Delete(id)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, map[string]string{"status": "deleted", "request_id": id})
}

func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := s.broker.Subscribe()
	defer s.broker.Unsubscribe(ch)

	// Initial keepalive so the client sees the stream open.
	writeSSEComment(w, "keepalive")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			writeSSEEvent(w, "record-change", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	s.logger.Error("dashboard request failed", slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, "storage unavailable, retry shortly")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders the JSON payload the frontend shows as an inline,
// non-fatal banner.
func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
