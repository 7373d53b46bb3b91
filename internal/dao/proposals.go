// Package dao holds the ReliefDAO core: the proposal lifecycle, the
// voting ledger, and funding aggregation. Authorization is re-checked
// inside every operation; the HTTP layer is not trusted to do it.
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/PJ-Pooja16/ReliefDAO/internal/models"
	"github.com/PJ-Pooja16/ReliefDAO/internal/store"
)

// ProposalService owns proposal creation and status transitions. The
// state machine is Pending -> (Approved | Rejected) via CloseVoting and
// Approved -> Completed via MarkCompleted; everything else is rejected.
type ProposalService struct {
	store   store.Store
	funding *FundingAggregator
}

func NewProposalService(s store.Store, funding *FundingAggregator) *ProposalService {
	return &ProposalService{store: s, funding: funding}
}

// ProposalDraft carries the author-supplied fields of a new proposal.
type ProposalDraft struct {
	DisasterID       string          `json:"disaster_id"`
	Title            string          `json:"title"`
	Category         models.Category `json:"category"`
	AmountRequested  int64           `json:"amount_requested"`
	Timeline         string          `json:"timeline"`
	Description      string          `json:"description"`
	Beneficiaries    int             `json:"beneficiaries"`
	Location         string          `json:"location"`
	VerificationPlan []string        `json:"verification_plan"`
}

// Create validates and persists a new Pending proposal authored by a
// Responder, and registers it on the parent disaster.
func (s *ProposalService) Create(ctx context.Context, author *models.User, draft ProposalDraft) (*models.Proposal, error) {
	if author.Role != models.RoleResponder {
		return nil, ErrNotAllowed
	}
	if draft.Title == "" {
		return nil, validationf("title is required")
	}
	if !draft.Category.Valid() {
		return nil, validationf("unknown category %q", draft.Category)
	}
	if draft.AmountRequested <= 0 {
		return nil, validationf("amount requested must be positive")
	}
	if draft.Beneficiaries <= 0 {
		return nil, validationf("beneficiaries must be positive")
	}
	if len(draft.VerificationPlan) == 0 {
		return nil, validationf("at least one verification method is required")
	}

	if _, err := s.store.GetDisaster(ctx, draft.DisasterID); err != nil {
		return nil, wrapStore(err)
	}

	p := &models.Proposal{
		ID:               uuid.NewString(),
		DisasterID:       draft.DisasterID,
		Title:            draft.Title,
		Category:         draft.Category,
		AmountRequested:  draft.AmountRequested,
		Status:           models.ProposalPending,
		Timeline:         draft.Timeline,
		CreatedBy:        author.ID,
		Description:      draft.Description,
		Beneficiaries:    draft.Beneficiaries,
		Location:         draft.Location,
		VerificationPlan: draft.VerificationPlan,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.store.CreateProposal(ctx, p); err != nil {
		return nil, wrapStore(err)
	}
	if err := s.store.AppendDisasterProposal(ctx, p.DisasterID, p.ID); err != nil {
		return nil, wrapStore(err)
	}
	return p, nil
}

// CloseVoting decides a Pending proposal's outcome under the given quorum
// policy. The Pending check rides on the store's conditional write, so a
// second close of the same proposal fails with ErrInvalidState rather
// than silently passing.
func (s *ProposalService) CloseVoting(ctx context.Context, proposalID string, policy QuorumPolicy) (*models.Proposal, error) {
	p, err := s.store.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, wrapStore(err)
	}
	if p.Status != models.ProposalPending {
		return nil, ErrInvalidState
	}

	outcome := policy.Decide(p.VotesYes, p.VotesNo)
	err = s.store.TransitionProposalStatus(ctx, proposalID, models.ProposalPending, outcome, "")
	if errors.Is(err, store.ErrConflict) {
		return nil, ErrInvalidState
	}
	if err != nil {
		return nil, wrapStore(err)
	}
	p.Status = outcome
	return p, nil
}

// MarkCompleted records verified delivery of an Approved proposal. Only a
// Validator or Admin may verify, and a verification artifact reference is
// required. Completion triggers a funding recompute on the parent
// disaster and credits the author's reputation.
func (s *ProposalService) MarkCompleted(ctx context.Context, verifier *models.User, proposalID, verificationRef string) (*models.Proposal, error) {
	if verifier.Role != models.RoleValidator && verifier.Role != models.RoleAdmin {
		return nil, ErrNotAllowed
	}
	if verificationRef == "" {
		return nil, validationf("verification artifact reference is required")
	}

	p, err := s.store.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, wrapStore(err)
	}
	if p.Status != models.ProposalApproved {
		return nil, ErrInvalidState
	}

	err = s.store.TransitionProposalStatus(ctx, proposalID, models.ProposalApproved, models.ProposalCompleted, verificationRef)
	if errors.Is(err, store.ErrConflict) {
		return nil, ErrInvalidState
	}
	if err != nil {
		return nil, wrapStore(err)
	}
	p.Status = models.ProposalCompleted
	p.VerificationRef = verificationRef

	if _, _, err := s.funding.Recompute(ctx, p.DisasterID); err != nil {
		return nil, err
	}
	// Reputation credit for the responder whose delivery was verified.
	if err := s.store.AdjustReputation(ctx, p.CreatedBy, completedReputationCredit); err != nil {
		return nil, wrapStore(err)
	}
	return p, nil
}

const completedReputationCredit = 5

func (s *ProposalService) Get(ctx context.Context, proposalID string) (*models.Proposal, error) {
	p, err := s.store.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, wrapStore(err)
	}
	return p, nil
}

func (s *ProposalService) ListByDisaster(ctx context.Context, disasterID string) ([]models.Proposal, error) {
	ps, err := s.store.ListProposalsByDisaster(ctx, disasterID)
	if err != nil {
		return nil, wrapStore(err)
	}
	return ps, nil
}

func (s *ProposalService) ListByAuthor(ctx context.Context, userID string) ([]models.Proposal, error) {
	ps, err := s.store.ListProposalsByAuthor(ctx, userID)
	if err != nil {
		return nil, wrapStore(err)
	}
	return ps, nil
}
