package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PJ-Pooja16/ReliefDAO/internal/dao"
	"github.com/PJ-Pooja16/ReliefDAO/internal/models"
)

func (h *Handler) ListDisasters(w http.ResponseWriter, r *http.Request) {
	disasters, err := h.Disasters.List(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, disasters)
}

func (h *Handler) GetDisaster(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, err := h.Disasters.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	proposals, err := h.Proposals.ListByDisaster(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"disaster":  d,
		"proposals": proposals,
	})
}

func (h *Handler) CreateDisaster(w http.ResponseWriter, r *http.Request) {
	u, err := h.currentUser(r)
	if err != nil {
		h.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required", Kind: "authorization"})
		return
	}

	var draft dao.DisasterDraft
	if !h.decode(w, r, &draft) {
		return
	}

	d, err := h.Disasters.Create(r.Context(), u, draft)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, d)
}

type advanceRequest struct {
	Status string `json:"status"`
}

func (h *Handler) AdvanceDisaster(w http.ResponseWriter, r *http.Request) {
	u, err := h.currentUser(r)
	if err != nil {
		h.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required", Kind: "authorization"})
		return
	}

	var req advanceRequest
	if !h.decode(w, r, &req) {
		return
	}

	d, err := h.Disasters.AdvanceStatus(r.Context(), u, chi.URLParam(r, "id"), models.DisasterStatus(req.Status))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, d)
}

// RecomputeFunding forces a funding recompute for a disaster. Idempotent;
// normally runs automatically after donations and completions.
func (h *Handler) RecomputeFunding(w http.ResponseWriter, r *http.Request) {
	raised, deployed, err := h.Funding.Recompute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]int64{
		"funds_raised":   raised,
		"funds_deployed": deployed,
	})
}
