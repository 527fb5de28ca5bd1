package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"log/slog"

	"wander-ads/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP: manual pass triggers, campaign listing and recent pass
// summaries. Routes are registered on a chi.Router for convenient
// method handling.
type Handler struct {
	allocator port.AllocationRunner
	optimizer port.OptimizerRunner
	campaigns port.CampaignRepository
	runs      port.RunRepository
	logger    *slog.Logger
	router    chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(
	allocator port.AllocationRunner,
	optimizer port.OptimizerRunner,
	campaigns port.CampaignRepository,
	runs port.RunRepository,
	logger *slog.Logger,
) *Handler {
	h := &Handler{
		allocator: allocator,
		optimizer: optimizer,
		campaigns: campaigns,
		runs:      runs,
		logger:    logger,
	}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/runs/allocation", h.handleAllocationRun)
		r.Post("/runs/optimizer", h.handleOptimizerRun)
		r.Get("/runs", h.handleListRuns)
		r.Get("/campaigns", h.handleListCampaigns)
		r.Get("/campaigns/{id}", h.handleGetCampaign)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
