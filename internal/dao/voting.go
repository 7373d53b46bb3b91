package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/PJ-Pooja16/ReliefDAO/internal/models"
	"github.com/PJ-Pooja16/ReliefDAO/internal/store"
)

// VotingEngine records one vote per (proposal, voter) and keeps tallies
// consistent under concurrent voters. Uniqueness and the tally increment
// are a single atomic unit inside the store; there is no read-then-write
// window between them.
type VotingEngine struct {
	store store.Store
}

func NewVotingEngine(s store.Store) *VotingEngine {
	return &VotingEngine{store: s}
}

// CastVote records a Validator's decision on a Pending proposal.
func (e *VotingEngine) CastVote(ctx context.Context, voter *models.User, proposalID string, approve bool) (*models.Vote, error) {
	if voter.Role != models.RoleValidator {
		return nil, ErrNotAllowed
	}

	p, err := e.store.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, wrapStore(err)
	}
	// Fast-path rejection. The authoritative Pending check happens inside
	// InsertVote, under the same atomic unit as the uniqueness check.
	if p.Status != models.ProposalPending {
		return nil, ErrVotingClosed
	}

	v := &models.Vote{
		ID:         uuid.NewString(),
		ProposalID: proposalID,
		VoterID:    voter.ID,
		Decision:   approve,
		CreatedAt:  time.Now().UTC(),
	}
	err = e.store.InsertVote(ctx, v)
	switch {
	case errors.Is(err, store.ErrDuplicateVote):
		return nil, ErrDuplicateVote
	case errors.Is(err, store.ErrConflict):
		return nil, ErrVotingClosed
	case err != nil:
		return nil, wrapStore(err)
	}
	return v, nil
}

// Tally derives the yes/no counts from the vote ledger itself. Readers
// who want the cached fields use the proposal record; this is the ground
// truth the cached fields must agree with.
func (e *VotingEngine) Tally(ctx context.Context, proposalID string) (yes, no int, err error) {
	votes, err := e.store.ListVotes(ctx, proposalID)
	if err != nil {
		return 0, 0, wrapStore(err)
	}
	for _, v := range votes {
		if v.Decision {
			yes++
		} else {
			no++
		}
	}
	return yes, no, nil
}
