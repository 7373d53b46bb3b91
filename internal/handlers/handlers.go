package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/PJ-Pooja16/ReliefDAO/internal/ai"
	"github.com/PJ-Pooja16/ReliefDAO/internal/dao"
	"github.com/PJ-Pooja16/ReliefDAO/internal/models"
	"github.com/PJ-Pooja16/ReliefDAO/internal/store"
)

type Handler struct {
	Store     store.Store
	Sessions  *sessions.CookieStore
	Disasters *dao.DisasterService
	Proposals *dao.ProposalService
	Voting    *dao.VotingEngine
	Funding   *dao.FundingAggregator
	Donations *dao.DonationService
	AI        *ai.Client
	Quorum    dao.QuorumPolicy
}

func New(s store.Store, sessionStore *sessions.CookieStore, disasters *dao.DisasterService,
	proposals *dao.ProposalService, voting *dao.VotingEngine, funding *dao.FundingAggregator,
	donations *dao.DonationService, aiClient *ai.Client, quorum dao.QuorumPolicy) *Handler {
	return &Handler{
		Store:     s,
		Sessions:  sessionStore,
		Disasters: disasters,
		Proposals: proposals,
		Voting:    voting,
		Funding:   funding,
		Donations: donations,
		AI:        aiClient,
		Quorum:    quorum,
	}
}

// currentUser resolves the session's user against the store. The stored
// role, not the session claim, is what the services authorize on.
func (h *Handler) currentUser(r *http.Request) (*models.User, error) {
	session, _ := h.Sessions.Get(r, "session")
	userID, ok := session.Values["user_id"].(string)
	if !ok || userID == "" {
		return nil, errors.New("not authenticated")
	}
	return h.Store.GetUser(r.Context(), userID)
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// respondError maps the service error taxonomy onto HTTP statuses without
// collapsing the kinds.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var validation *dao.ValidationError
	var storeErr *dao.StoreError
	var external *dao.ExternalError

	switch {
	case errors.As(err, &validation):
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: validation.Reason, Kind: "validation"})
	case errors.Is(err, dao.ErrNotAllowed):
		h.respondJSON(w, http.StatusForbidden, errorResponse{Error: err.Error(), Kind: "authorization"})
	case errors.Is(err, dao.ErrInvalidState):
		h.respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Kind: "invalid_state"})
	case errors.Is(err, dao.ErrDuplicateVote):
		h.respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Kind: "duplicate_vote"})
	case errors.Is(err, dao.ErrVotingClosed):
		h.respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Kind: "voting_closed"})
	case errors.Is(err, store.ErrNotFound):
		h.respondJSON(w, http.StatusNotFound, errorResponse{Error: "not found", Kind: "not_found"})
	case errors.As(err, &storeErr):
		log.Printf("store error: %v", storeErr.Err)
		h.respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "storage temporarily unavailable", Kind: "store"})
	case errors.As(err, &external):
		log.Printf("external service error: %v", external)
		h.respondJSON(w, http.StatusBadGateway, errorResponse{Error: external.Error(), Kind: "external"})
	default:
		log.Printf("unhandled error: %v", err)
		h.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Kind: "internal"})
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Kind: "validation"})
		return false
	}
	return true
}
