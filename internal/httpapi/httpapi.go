// Package httpapi exposes the pipeline's small outer surface: the ingress
// HTTP injection point and the state read endpoint, alongside health and
// metrics.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/openmohaa/match-pipeline/internal/gamestate"
	"github.com/openmohaa/match-pipeline/internal/metrics"
)

// MaxBodySize limits ingest request bodies to 1MB.
const MaxBodySize = 1048576

// EventPublisher is the narrow broker capability the ingest endpoint needs
// to hand a raw event body to the events queue.
type EventPublisher interface {
	Publish(ctx context.Context, body []byte) error
}

// Config wires a Handler's dependencies.
type Config struct {
	Reader      *gamestate.Reader
	Publisher   EventPublisher
	IngestToken string
	Origins     []string
	Logger      *zap.Logger
}

// Handler serves the pipeline's HTTP surface.
type Handler struct {
	reader      *gamestate.Reader
	publisher   EventPublisher
	ingestToken string
	logger      *zap.SugaredLogger
}

// New builds the chi router for the pipeline's HTTP surface.
func New(cfg Config) http.Handler {
	h := &Handler{
		reader:      cfg.Reader,
		publisher:   cfg.Publisher,
		ingestToken: cfg.IngestToken,
		logger:      cfg.Logger.Sugar(),
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Origins,
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Ingest-Token"},
		AllowCredentials: false,
	}))

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/games/{matchID}", h.GetGame)
		api.With(h.requireIngestToken).Post("/ingest/events", h.IngestEvent)
	})

	return r
}

// Health reports process liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetGame serves the assembled GameState for a match.
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	if matchID == "" {
		errorResponse(w, http.StatusBadRequest, "missing matchID")
		return
	}

	state, err := h.reader.Read(r.Context(), matchID)
	if err != nil {
		if errors.Is(err, gamestate.ErrMatchNotFound) {
			errorResponse(w, http.StatusNotFound, "match not found")
			return
		}
		h.logger.Errorw("failed to read game state", "match_id", matchID, "error", err)
		errorResponse(w, http.StatusInternalServerError, "failed to read game state")
		return
	}

	jsonResponse(w, http.StatusOK, state)
}

// requireIngestToken guards the ingest endpoint when INGEST_TOKEN is set.
// An empty token disables the guard, which is the default for local
// development.
func (h *Handler) requireIngestToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.ingestToken == "" {
			next.ServeHTTP(w, r)
			return
		}
		token := r.Header.Get("X-Ingest-Token")
		if token == "" {
			token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		}
		if token != h.ingestToken {
			errorResponse(w, http.StatusUnauthorized, "missing or invalid ingest token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IngestEvent accepts newline-delimited JSON event envelopes over HTTP and
// republishes each line onto the events queue unchanged, giving the
// pipeline an injection point that does not require a broker client. Each
// line is handled independently: a malformed line is logged and skipped
// rather than failing the whole batch, and the response reports how many
// lines were actually enqueued.
func (h *Handler) IngestEvent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		errorResponse(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	defer r.Body.Close()

	lines := strings.Split(string(body), "\n")
	processed := 0
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !json.Valid([]byte(line)) {
			h.logger.Warnw("skipping malformed line in ingest batch", "line_num", i)
			metrics.EventsIngestDropped.WithLabelValues("invalid_json").Inc()
			continue
		}

		if err := h.publisher.Publish(r.Context(), []byte(line)); err != nil {
			h.logger.Errorw("failed to publish ingested event", "line_num", i, "error", err)
			metrics.EventsIngestDropped.WithLabelValues("publish_failed").Inc()
			errorResponse(w, http.StatusServiceUnavailable, "failed to enqueue event")
			return
		}
		processed++
	}

	jsonResponse(w, http.StatusAccepted, map[string]any{
		"status":    "accepted",
		"processed": processed,
	})
}

func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}
