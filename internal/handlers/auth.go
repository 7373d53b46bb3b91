package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/PJ-Pooja16/ReliefDAO/internal/auth"
	"github.com/PJ-Pooja16/ReliefDAO/internal/models"
	"github.com/PJ-Pooja16/ReliefDAO/internal/reputation"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register creates an account. Role is fixed at creation; Admin accounts
// are only created by the create-admin tool.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}

	role := models.Role(req.Role)
	switch role {
	case models.RoleDonor, models.RoleResponder, models.RoleValidator:
	default:
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "role must be Donor, Responder or Validator", Kind: "validation"})
		return
	}
	if req.Email == "" || req.Name == "" {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "name and email are required", Kind: "validation"})
		return
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "validation"})
		return
	}

	if _, err := h.Store.GetUserByEmail(r.Context(), req.Email); err == nil {
		h.respondJSON(w, http.StatusConflict, errorResponse{Error: "email already registered", Kind: "validation"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.Store.CreateUser(r.Context(), u); err != nil {
		h.respondError(w, err)
		return
	}

	h.startSession(w, r, u)
	h.respondJSON(w, http.StatusCreated, u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	u, err := h.Store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		h.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid email or password", Kind: "authorization"})
		return
	}
	if err := auth.CheckPassword(req.Password, u.PasswordHash); err != nil {
		h.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid email or password", Kind: "authorization"})
		return
	}

	h.startSession(w, r, u)
	h.respondJSON(w, http.StatusOK, u)
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, u *models.User) {
	session, _ := h.Sessions.Get(r, "session")
	session.Values["user_id"] = u.ID
	session.Values["role"] = string(u.Role)
	session.Save(r, w)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, "session")
	session.Options.MaxAge = -1
	session.Save(r, w)
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated user with their standing tier, plus their
// proposals and donations for the impact dashboard.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
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
	donations, err := h.Donations.ListByDonor(r.Context(), u.ID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"user":      u,
		"tier":      reputation.TierFor(u),
		"proposals": proposals,
		"donations": donations,
	})
}
