package handlers

import (
	"net/http"

	"github.com/PJ-Pooja16/ReliefDAO/internal/ai"
)

// DraftProposalPlan asks the AI for a detailed execution plan a Responder
// can paste into a proposal description. Generation failures surface to
// the caller; nothing in the proposal lifecycle depends on them.
func (h *Handler) DraftProposalPlan(w http.ResponseWriter, r *http.Request) {
	var in ai.ProposalPlanInput
	if !h.decode(w, r, &in) {
		return
	}

	plan, err := h.AI.GenerateProposalPlan(r.Context(), in)
	if err != nil {
		h.respondJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Kind: "external"})
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"detailed_plan": plan})
}
