// Package store defines the record-store contract the ReliefDAO services
// run against. Two implementations exist: the in-memory store in this
// package and the Postgres store in internal/db.
package store

import (
	"context"
	"errors"

	"github.com/PJ-Pooja16/ReliefDAO/internal/models"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateVote is returned by InsertVote when a vote already
	// exists for the same (proposal, voter) pair. It is produced by the
	// atomic insert itself, never by a prior read.
	ErrDuplicateVote = errors.New("vote already recorded for this voter")

	// ErrConflict is returned by conditional writes when the record is no
	// longer in the expected state.
	ErrConflict = errors.New("record state changed concurrently")
)

// Store is the persistence contract for the proposal lifecycle, voting
// ledger, and funding aggregation. Conditional writes (InsertVote,
// TransitionProposalStatus, TransitionDisasterStatus, SettleDonation) must
// be atomic: the state check and the mutation happen as one unit against
// the backing store.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	AdjustReputation(ctx context.Context, userID string, delta int) error

	CreateDisaster(ctx context.Context, d *models.Disaster) error
	GetDisaster(ctx context.Context, id string) (*models.Disaster, error)
	ListDisasters(ctx context.Context) ([]models.Disaster, error)
	AppendDisasterProposal(ctx context.Context, disasterID, proposalID string) error
	TransitionDisasterStatus(ctx context.Context, id string, from, to models.DisasterStatus) error
	UpdateDisasterFunding(ctx context.Context, id string, raised, deployed int64, proposalsFunded int) error

	CreateProposal(ctx context.Context, p *models.Proposal) error
	GetProposal(ctx context.Context, id string) (*models.Proposal, error)
	ListProposalsByDisaster(ctx context.Context, disasterID string) ([]models.Proposal, error)
	ListProposalsByAuthor(ctx context.Context, userID string) ([]models.Proposal, error)
	// TransitionProposalStatus moves a proposal from one status to another
	// only if it is still in the from status; otherwise ErrConflict.
	TransitionProposalStatus(ctx context.Context, id string, from, to models.ProposalStatus, verificationRef string) error

	// InsertVote records a vote and increments the matching tally on the
	// proposal in one atomic unit. Returns ErrDuplicateVote if the voter
	// already voted on this proposal, ErrConflict if the proposal is no
	// longer Pending, ErrNotFound if the proposal does not exist.
	InsertVote(ctx context.Context, v *models.Vote) error
	ListVotes(ctx context.Context, proposalID string) ([]models.Vote, error)

	CreateDonation(ctx context.Context, d *models.Donation) error
	GetDonation(ctx context.Context, id string) (*models.Donation, error)
	// SettleDonation resolves a Pending donation to Confirmed or Failed.
	// A donation that is no longer Pending returns ErrConflict.
	SettleDonation(ctx context.Context, id string, status models.DonationStatus, txSignature string) error
	ListDonationsByDisaster(ctx context.Context, disasterID string) ([]models.Donation, error)
	ListDonationsByDonor(ctx context.Context, donorID string) ([]models.Donation, error)
}
