package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/albrtbc/mv-thread-digest/internal/logger"
	"github.com/albrtbc/mv-thread-digest/internal/summarize"
	"github.com/albrtbc/mv-thread-digest/internal/thread"
)

// RangeFetcher pulls a page range of a thread.
type RangeFetcher interface {
	FetchRange(ctx context.Context, thread string, from, to int, onProgress thread.ProgressFunc) (*thread.FetchResult, error)
}

// Summarizer produces the final summary for a fetch result.
type Summarizer interface {
	Summarize(ctx context.Context, result *thread.FetchResult, onProgress thread.ProgressFunc) (*thread.Summary, error)
}

// SummarizeHandler runs the full pipeline for an HTTP request. Summarizers
// are keyed by provider name; a request may pick one, otherwise the default
// provider is used.
type SummarizeHandler struct {
	fetcher         RangeFetcher
	summarizers     map[string]Summarizer
	defaultProvider string
	hub             *Hub
	maxSpan         int
	log             *logger.Logger
}

// NewSummarizeHandler creates the handler. defaultProvider must be a key of
// summarizers.
func NewSummarizeHandler(fetcher RangeFetcher, summarizers map[string]Summarizer, defaultProvider string, hub *Hub, maxSpan int, log *logger.Logger) *SummarizeHandler {
	return &SummarizeHandler{
		fetcher:         fetcher,
		summarizers:     summarizers,
		defaultProvider: defaultProvider,
		hub:             hub,
		maxSpan:         maxSpan,
		log:             log,
	}
}

// SummarizeRequest is the POST body for a summarization run. Provider is
// optional and defaults to the configured provider.
type SummarizeRequest struct {
	From     int    `json:"from"`
	To       int    `json:"to"`
	Provider string `json:"provider,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Summarize handles POST /api/v1/threads/{thread}/summarize.
func (h *SummarizeHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	threadSlug := chi.URLParam(r, "thread")
	if threadSlug == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing thread"})
		return
	}

	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}

	if req.From < 1 || req.From > req.To {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "invalid page range"})
		return
	}
	if span := req.To - req.From + 1; span > h.maxSpan {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "page range too large"})
		return
	}

	provider := req.Provider
	if provider == "" {
		provider = h.defaultProvider
	}
	summarizer, ok := h.summarizers[provider]
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "unknown provider"})
		return
	}

	runID := uuid.New()
	log := h.log.With().Str("run_id", runID.String()).Str("thread", threadSlug).Str("provider", provider).Logger()

	h.emit(StartedEvent(runID, threadSlug, req.From, req.To))
	onProgress := func(p thread.Progress) {
		h.emit(ProgressEvent(runID, p))
	}

	result, err := h.fetcher.FetchRange(r.Context(), threadSlug, req.From, req.To, onProgress)
	if err != nil {
		log.Error().Err(err).Msg("fetch failed")
		h.emit(FailedEvent(runID, "fetch failed"))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "fetch failed"})
		return
	}

	summary, err := summarizer.Summarize(r.Context(), result, onProgress)
	if err != nil {
		log.Error().Err(err).Msg("summarization failed")
		h.emit(FailedEvent(runID, "summarization failed"))

		status := http.StatusBadGateway
		if errors.Is(err, summarize.ErrNoPages) {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, errorResponse{Error: "summarization failed"})
		return
	}

	h.emit(CompletedEvent(runID, summary))
	log.Info().Str("coverage", summary.Coverage).Msg("run completed")
	writeJSON(w, http.StatusOK, summary)
}

func (h *SummarizeHandler) emit(message []byte) {
	if h.hub != nil {
		h.hub.Broadcast(message)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
