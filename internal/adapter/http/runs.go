package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"wander-ads/internal/adapter/usecase"
)

// handleAllocationRun triggers one allocation pass synchronously. An
// optional `seed` query parameter fixes the exploration shuffle for
// reproducible runs; without it the current time seeds the shuffle.
// Invariant violations return HTTP 409 since the pass produced no valid
// campaign set; other failures return HTTP 500.
func (h *Handler) handleAllocationRun(w http.ResponseWriter, r *http.Request) {
	seed := time.Now().UnixNano()
	if s := r.URL.Query().Get("seed"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			http.Error(w, "invalid seed", http.StatusBadRequest)
			return
		}
		seed = v
	}

	run, err := h.allocator.Run(r.Context(), seed)
	if err != nil {
		h.logger.Error("allocation run error", slog.Any("error", err))
		if usecase.IsInvariantViolation(err) {
			http.Error(w, "allocation invariant violated", http.StatusConflict)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(run); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// handleOptimizerRun triggers one optimizer sweep synchronously.
func (h *Handler) handleOptimizerRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.optimizer.Sweep(r.Context())
	if err != nil {
		h.logger.Error("optimizer sweep error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(run); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// handleListRuns returns recent pass summaries, newest first. The
// optional `limit` query parameter defaults to 20.
func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil || v < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = v
	}

	runs, err := h.runs.ListRuns(r.Context(), limit)
	if err != nil {
		h.logger.Error("list runs error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(runs); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
