package web

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/pefman/alpha-counter/internal/game"
	"github.com/pefman/alpha-counter/internal/models"
	"github.com/pefman/alpha-counter/internal/roster"
	"github.com/pefman/alpha-counter/internal/stats"
	"github.com/pefman/alpha-counter/internal/view"
)

// Build metadata served on /version.
type Build struct {
	Version string `json:"version"`
	Time    string `json:"time"`
}

type Config struct {
	Store   *game.Store
	Router  *view.Router
	Catalog *roster.Catalog
	Stats   *stats.Tracker
	Build   Build
	Logger  zerolog.Logger
	// SendBuffer is the per-client WebSocket queue length.
	SendBuffer int
}

// Server is the browser host: it serves the page, keeps every open tab in
// sync over WebSocket and exposes the same actions as JSON.
type Server struct {
	store   *game.Store
	router  *view.Router
	catalog *roster.Catalog
	stats   *stats.Tracker
	build   Build
	hub     *Hub
	log     zerolog.Logger

	upgrader    websocket.Upgrader
	unsubscribe func()
}

func NewServer(cfg Config) *Server {
	log := cfg.Logger.With().Str("component", "web").Logger()
	s := &Server{
		store:    cfg.Store,
		router:   cfg.Router,
		catalog:  cfg.Catalog,
		stats:    cfg.Stats,
		build:    cfg.Build,
		hub:      NewHub(cfg.Router, cfg.SendBuffer, cfg.Logger),
		log:      log,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
	if s.stats == nil {
		s.stats = stats.NewTracker()
	}
	s.unsubscribe = s.store.Subscribe(s.hub.Broadcast)
	return s
}

// Close detaches the server from the store.
func (s *Server) Close() { s.unsubscribe() }

func (s *Server) Hub() *Hub { return s.hub }

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.serveIndex).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWS)
	r.HandleFunc("/version", s.handleVersion).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(withCORS)
	api.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	api.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	api.HandleFunc("/characters", s.handleCharacters).Methods(http.MethodGet)
	api.HandleFunc("/actions", s.handleAction).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/stats", s.handleStatsReset).Methods(http.MethodDelete)
	return r
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Current()
	templ.Handler(Page(s.router.Render(snap.State), snap.Version, s.build.Version)).ServeHTTP(w, r)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		s.log.Warn().Err(err).Msg("ws: upgrade failed")
		return
	}
	s.hub.serve(conn, s.store.Current)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.build)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, newStateView(s.router, s.store.Current()))
}

func (s *Server) handleCharacters(w http.ResponseWriter, r *http.Request) {
	list := s.catalog.List()
	out := make([]models.Character, 0, len(list))
	for _, c := range list {
		out = append(out, *c)
	}
	writeJSON(w, out)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.stats.Picks())
}

func (s *Server) handleStatsReset(w http.ResponseWriter, r *http.Request) {
	s.stats.Reset()
	s.log.Info().Msg("pick statistics reset")
	writeJSON(w, s.stats.Picks())
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var click view.Click
	dec := json.NewDecoder(io.LimitReader(r.Body, maxMessageSize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&click); err != nil {
		writeError(w, http.StatusBadRequest, "malformed click: "+err.Error())
		return
	}
	if strings.TrimSpace(string(click.Control)) == "" {
		writeError(w, http.StatusBadRequest, "control is required")
		return
	}
	if _, err := s.router.Dispatch(click); err != nil {
		code := statusFor(err)
		if code >= http.StatusInternalServerError {
			s.log.Error().Err(err).Msg("action failed")
		}
		writeError(w, code, err.Error())
		return
	}
	writeJSON(w, newStateView(s.router, s.store.Current()))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, view.ErrControlDisabled), errors.Is(err, view.ErrNotOnScreen):
		return http.StatusConflict
	case errors.Is(err, view.ErrUnknownCharacter), errors.Is(err, view.ErrUnknownControl):
		return http.StatusNotFound
	case errors.Is(err, game.ErrInvalidTransaction):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":   http.StatusText(code),
		"message": msg,
		"status":  code,
	})
}

// simple CORS for GET/POST/DELETE/OPTIONS
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
