// Package server exposes QR generation and history over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/sadopc/qrpop/internal/controller"
	"github.com/sadopc/qrpop/internal/core/history"
	"github.com/sadopc/qrpop/internal/core/qr"
	"github.com/sadopc/qrpop/internal/export"
)

// Server serves generated QR codes and the shared history.
type Server struct {
	renderer controller.QRRenderer
	history  controller.HistoryRepository
	log      *slog.Logger

	port       int
	corsOrigin string
	level      qr.Level
	size       int
	dark       string
	light      string

	router *mux.Router
}

// Option configures a Server.
type Option func(*Server)

// WithPort sets the listen port. Zero picks a free port.
func WithPort(port int) Option {
	return func(s *Server) { s.port = port }
}

// WithCORSOrigin sets the Access-Control-Allow-Origin value.
func WithCORSOrigin(origin string) Option {
	return func(s *Server) { s.corsOrigin = origin }
}

// WithLevel sets the error correction level used when a request omits one.
func WithLevel(l qr.Level) Option {
	return func(s *Server) { s.level = l }
}

// WithAppearance sets the PNG size and colors.
func WithAppearance(size int, dark, light string) Option {
	return func(s *Server) {
		if size > 0 {
			s.size = size
		}
		if dark != "" {
			s.dark = dark
		}
		if light != "" {
			s.light = light
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// New creates a Server. History may be nil, in which case nothing is recorded
// and /history is not routed.
func New(renderer controller.QRRenderer, hist controller.HistoryRepository, opts ...Option) *Server {
	s := &Server{
		renderer:   renderer,
		history:    hist,
		log:        slog.New(slog.DiscardHandler),
		port:       8080,
		corsOrigin: "*",
		level:      qr.Medium,
		size:       qr.DefaultSize,
		dark:       qr.DefaultDark,
		light:      qr.DefaultLight,
	}
	for _, o := range opts {
		o(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.cors)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)
	r.HandleFunc("/qr", s.handleQR).Methods(http.MethodGet)
	r.HandleFunc("/qr", preflight).Methods(http.MethodOptions)
	if s.history != nil {
		r.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)
		r.HandleFunc("/history", s.handleClearHistory).Methods(http.MethodDelete)
		r.HandleFunc("/history", preflight).Methods(http.MethodOptions)
	}
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+strconv.Itoa(s.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", s.port, err)
	}
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.log.Info("server started", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, DELETE, OPTIONS")
		next.ServeHTTP(w, r)
	})
}

// preflight answers CORS preflight requests; the headers come from cors.
func preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// handleQR renders ?text= at ?level= and records it in history. With
// ?format=datauri the PNG is returned as a data URI instead of raw bytes.
func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := strings.TrimSpace(q.Get("text"))
	if text == "" {
		writeError(w, http.StatusBadRequest, controller.ErrEmptyInput.Error())
		return
	}

	level := s.level
	if v := q.Get("level"); v != "" {
		l, err := qr.ParseLevel(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		level = l
	}

	opts := qr.DefaultOptions(text, level)
	opts.Width, opts.Height = s.size, s.size
	opts.ColorDark, opts.ColorLight = s.dark, s.light
	code, err := s.renderer.Render(opts)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.log.Debug("rendered", "level", level.String(), "modules", code.Modules())

	if s.history != nil {
		_, err := s.history.Record(r.Context(), text)
		switch {
		case errors.Is(err, history.ErrReset):
			s.log.Warn("unreadable history replaced", "err", err)
		case err != nil:
			s.log.Warn("history not saved", "err", err)
		}
	}

	if q.Get("format") == "datauri" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, export.DataURI(code.PNG))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", export.Filename(text)))
	w.Header().Set("Content-Length", strconv.Itoa(len(code.PNG)))
	w.Write(code.PNG)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	list, err := s.history.Load(r.Context())
	if err != nil {
		s.log.Warn("history unreadable", "err", err)
		list = history.List{}
	}
	if list == nil {
		list = history.List{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.history.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
