package handlers

import "net/http"

type donateRequest struct {
	DisasterID string `json:"disaster_id"`
	Amount     int64  `json:"amount"`
	Type       string `json:"type"`
}

func (h *Handler) Donate(w http.ResponseWriter, r *http.Request) {
	u, err := h.currentUser(r)
	if err != nil {
		h.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required", Kind: "authorization"})
		return
	}

	var req donateRequest
	if !h.decode(w, r, &req) {
		return
	}

	d, err := h.Donations.Donate(r.Context(), u, req.DisasterID, req.Amount, req.Type)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, d)
}

func (h *Handler) MyDonations(w http.ResponseWriter, r *http.Request) {
	u, err := h.currentUser(r)
	if err != nil {
		h.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required", Kind: "authorization"})
		return
	}

	donations, err := h.Donations.ListByDonor(r.Context(), u.ID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, donations)
}
