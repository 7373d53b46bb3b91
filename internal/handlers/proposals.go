package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/PJ-Pooja16/ReliefDAO/internal/ai"
	"github.com/PJ-Pooja16/ReliefDAO/internal/dao"
	"github.com/PJ-Pooja16/ReliefDAO/internal/storage"
)

func (h *Handler) CreateProposal(w http.ResponseWriter, r *http.Request) {
	u, err := h.currentUser(r)
	if err != nil {
		h.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required", Kind: "authorization"})
		return
	}

	var draft dao.ProposalDraft
	if !h.decode(w, r, &draft) {
		return
	}

	p, err := h.Proposals.Create(r.Context(), u, draft)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, p)
}

func (h *Handler) GetProposal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.Proposals.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	yes, no, err := h.Voting.Tally(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"proposal": p,
		"tally":    map[string]int{"yes": yes, "no": no},
	})
}

func (h *Handler) MyProposals(w http.ResponseWriter, r *http.Request) {
	u, err := h.currentUser(r)
	if err != nil {
		h.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required", Kind: "authorization"})
		return
	}
	proposals, err := h.Proposals.ListByAuthor(r.Context(), u.ID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, proposals)
}

type voteRequest struct {
	Approve bool `json:"approve"`
}

func (h *Handler) CastVote(w http.ResponseWriter, r *http.Request) {
	u, err := h.currentUser(r)
	if err != nil {
		h.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required", Kind: "authorization"})
		return
	}

	var req voteRequest
	if !h.decode(w, r, &req) {
		return
	}

	v, err := h.Voting.CastVote(r.Context(), u, chi.URLParam(r, "id"), req.Approve)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, v)
}

func (h *Handler) CloseVoting(w http.ResponseWriter, r *http.Request) {
	p, err := h.Proposals.CloseVoting(r.Context(), chi.URLParam(r, "id"), h.Quorum)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, p)
}

// SubmitVerification accepts delivery-proof uploads, stores them, has the
// AI summarize them, and returns the artifact reference used by
// CompleteProposal. A failed summary does not lose the uploads.
func (h *Handler) SubmitVerification(w http.ResponseWriter, r *http.Request) {
	proposalID := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form", Kind: "validation"})
		return
	}

	photos := r.MultipartForm.File["photos"]
	receipts := r.MultipartForm.File["receipts"]
	if len(photos)+len(receipts) == 0 {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "at least one photo or receipt is required", Kind: "validation"})
		return
	}

	paths, err := storage.SaveVerificationArtifacts(proposalID, append(photos, receipts...))
	if err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "validation"})
		return
	}

	summary, err := h.AI.SummarizeVerification(r.Context(), ai.VerificationInput{
		Photos:      paths[:len(photos)],
		Receipts:    paths[len(photos):],
		GPSLocation: r.FormValue("gps_location"),
		Notes:       r.FormValue("notes"),
	})
	if err != nil {
		// Artifacts are saved either way; the summary is a convenience.
		summary = ""
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"verification_ref": strings.Join(paths, ","),
		"summary":          summary,
	})
}

type completeRequest struct {
	VerificationRef string `json:"verification_ref"`
}

func (h *Handler) CompleteProposal(w http.ResponseWriter, r *http.Request) {
	u, err := h.currentUser(r)
	if err != nil {
		h.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required", Kind: "authorization"})
		return
	}

	var req completeRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := h.Proposals.MarkCompleted(r.Context(), u, chi.URLParam(r, "id"), req.VerificationRef)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, p)
}
