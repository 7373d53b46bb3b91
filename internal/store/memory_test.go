package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/PJ-Pooja16/ReliefDAO/internal/models"
)

func seedProposal(t *testing.T, m *Memory) *models.Proposal {
	t.Helper()
	ctx := context.Background()
	p := &models.Proposal{
		ID:              "p1",
		DisasterID:      "d1",
		Title:           "Shelter Kits",
		Category:        models.CategoryShelter,
		AmountRequested: 1000,
		Status:          models.ProposalPending,
		CreatedBy:       "u1",
	}
	if err := m.CreateProposal(ctx, p); err != nil {
		t.Fatalf("seeding proposal: %v", err)
	}
	return p
}

func TestMemory_GetMissing(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.GetProposal(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetProposal: expected ErrNotFound, got: %v", err)
	}
	if _, err := m.GetUser(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUser: expected ErrNotFound, got: %v", err)
	}
	if _, err := m.GetDisaster(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetDisaster: expected ErrNotFound, got: %v", err)
	}
}

func TestMemory_TransitionProposalStatusConditional(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	p := seedProposal(t, m)

	err := m.TransitionProposalStatus(ctx, p.ID, models.ProposalPending, models.ProposalApproved, "")
	if err != nil {
		t.Fatalf("transition: %v", err)
	}

	// Same precondition again fails: the record moved on.
	err = m.TransitionProposalStatus(ctx, p.ID, models.ProposalPending, models.ProposalRejected, "")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("stale transition: expected ErrConflict, got: %v", err)
	}

	got, _ := m.GetProposal(ctx, p.ID)
	if got.Status != models.ProposalApproved {
		t.Errorf("status: got %q, want Approved", got.Status)
	}
}

func TestMemory_InsertVoteAtomicity(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	p := seedProposal(t, m)

	v := &models.Vote{ID: "v1", ProposalID: p.ID, VoterID: "u1", Decision: true}
	if err := m.InsertVote(ctx, v); err != nil {
		t.Fatalf("insert: %v", err)
	}

	dup := &models.Vote{ID: "v2", ProposalID: p.ID, VoterID: "u1", Decision: false}
	if err := m.InsertVote(ctx, dup); !errors.Is(err, ErrDuplicateVote) {
		t.Fatalf("duplicate: expected ErrDuplicateVote, got: %v", err)
	}

	got, _ := m.GetProposal(ctx, p.ID)
	if got.VotesYes != 1 || got.VotesNo != 0 {
		t.Errorf("tally: got yes=%d no=%d, want 1/0", got.VotesYes, got.VotesNo)
	}
}

func TestMemory_InsertVoteRejectsNonPending(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	p := seedProposal(t, m)

	if err := m.TransitionProposalStatus(ctx, p.ID, models.ProposalPending, models.ProposalRejected, ""); err != nil {
		t.Fatalf("transition: %v", err)
	}

	v := &models.Vote{ID: "v1", ProposalID: p.ID, VoterID: "u1", Decision: true}
	if err := m.InsertVote(ctx, v); !errors.Is(err, ErrConflict) {
		t.Fatalf("vote on closed proposal: expected ErrConflict, got: %v", err)
	}
}

// Concurrent distinct voters all land; the tally never drops a vote.
func TestMemory_InsertVoteConcurrent(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	p := seedProposal(t, m)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v := &models.Vote{
				ID:         fmt.Sprintf("v-%d", i),
				ProposalID: p.ID,
				VoterID:    fmt.Sprintf("voter-%d", i),
				Decision:   true,
			}
			if err := m.InsertVote(ctx, v); err != nil {
				t.Errorf("vote %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	got, _ := m.GetProposal(ctx, p.ID)
	if got.VotesYes != n {
		t.Errorf("tally: got %d, want %d", got.VotesYes, n)
	}
}

func TestMemory_SettleDonationOnce(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	d := &models.Donation{ID: "dn1", DisasterID: "d1", DonorID: "u1", Amount: 100, Status: models.DonationPending}
	if err := m.CreateDonation(ctx, d); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := m.SettleDonation(ctx, "dn1", models.DonationConfirmed, "sig"); err != nil {
		t.Fatalf("settle: %v", err)
	}
	if err := m.SettleDonation(ctx, "dn1", models.DonationFailed, ""); !errors.Is(err, ErrConflict) {
		t.Fatalf("second settle: expected ErrConflict, got: %v", err)
	}

	got, _ := m.GetDonation(ctx, "dn1")
	if got.Status != models.DonationConfirmed || got.TxSignature != "sig" {
		t.Errorf("donation: got status=%q sig=%q", got.Status, got.TxSignature)
	}
}

func TestMemory_ReadsDoNotAliasInternalState(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	seedProposal(t, m)

	p1, _ := m.GetProposal(ctx, "p1")
	p1.Status = models.ProposalCompleted
	p1.VotesYes = 99

	p2, _ := m.GetProposal(ctx, "p1")
	if p2.Status != models.ProposalPending || p2.VotesYes != 0 {
		t.Errorf("mutating a returned record leaked into the store: %+v", p2)
	}
}
