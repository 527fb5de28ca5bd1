package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"wander-ads/internal/core/domain"
	"wander-ads/internal/core/port"
)

// handleListCampaigns returns persisted campaigns, newest first. It
// accepts optional `status`, `site`, `platform` and `limit` query
// parameters.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := port.CampaignFilter{
		Status:   domain.CampaignStatus(q.Get("status")),
		SiteID:   q.Get("site"),
		Platform: domain.Platform(q.Get("platform")),
	}
	if l := q.Get("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil || v < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		f.Limit = v
	}

	campaigns, err := h.campaigns.List(r.Context(), f)
	if err != nil {
		h.logger.Error("list campaigns error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(campaigns); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// handleGetCampaign returns one campaign by id, including its audit
// metadata. Unknown ids produce HTTP 404.
func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	c, err := h.campaigns.Get(r.Context(), id)
	if errors.Is(err, port.ErrCampaignNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error("get campaign error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(c); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
