// internal/httpserver/server.go
//
// Read-only HTTP view of the local game history.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs).
//   - Diagnostics: "/", "/health".
//   - History: GET /results, GET /results/{id}, GET /stats.
//
// Notes:
//   - Records hold commitments only; nothing here can reveal a secret word.
//   - Explorer links are derived per record from the configured template.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordtia/internal/attest"
	"github.com/robalobadob/wordtia/internal/store"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Server bundles router and history store.
type Server struct {
	r        *chi.Mux
	store    store.Store
	explorer string
}

// New constructs a Server, installs middleware, and registers routes.
// explorer is an attest.ExplorerLink template.
func New(st store.Store, explorer string) *Server {
	s := &Server{r: chi.NewRouter(), store: st, explorer: explorer}

	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(requestLogger)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordtia","endpoints":["/health","/results","/results/{id}","/stats"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Get("/results", s.handleList)
	s.r.Get("/results/{id}", s.handleGet)
	s.r.Get("/stats", s.handleStats)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Handler exposes the router (useful for tests and custom http.Server setups).
func (s *Server) Handler() http.Handler { return s.r }

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Str("requestId", chimw.GetReqID(r.Context())).
			Dur("took", time.Since(start)).
			Msg("http")
	})
}

// resultRes is the wire form of a record.
type resultRes struct {
	store.Record
	Explorer string `json:"explorer,omitempty"`
}

func (s *Server) toRes(rec store.Record) resultRes {
	res := resultRes{Record: rec}
	if rec.Attested() {
		res.Explorer = attest.ExplorerLink(s.explorer, rec.TxHash)
	}
	return res
}

// handleList serves GET /results?limit=N (default 20, capped at 100).
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = min(n, maxLimit)
	}
	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list results")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	out := make([]resultRes, 0, len(recs))
	for _, rec := range recs {
		out = append(out, s.toRes(rec))
	}
	_ = json.NewEncoder(w).Encode(out)
}

// handleGet serves GET /results/{id}.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("get result")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(s.toRes(rec))
}

// handleStats serves GET /stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("stats")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(st)
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
