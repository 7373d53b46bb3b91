package dao

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/PJ-Pooja16/ReliefDAO/internal/models"
)

func TestCastVote_RequiresValidator(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.mustCreateProposal(t)

	for _, u := range []*models.User{env.donor, env.responder, env.admin} {
		if _, err := env.voting.CastVote(ctx, u, p.ID, true); !errors.Is(err, ErrNotAllowed) {
			t.Errorf("role %s: expected ErrNotAllowed, got: %v", u.Role, err)
		}
	}
}

func TestCastVote_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.mustCreateProposal(t)

	if _, err := env.voting.CastVote(ctx, env.validator, p.ID, true); err != nil {
		t.Fatalf("first vote: %v", err)
	}

	_, err := env.voting.CastVote(ctx, env.validator, p.ID, false)
	if !errors.Is(err, ErrDuplicateVote) {
		t.Fatalf("second vote: expected ErrDuplicateVote, got: %v", err)
	}

	// Tally moved by exactly 1, not 2, and the first decision stands.
	after, _ := env.store.GetProposal(ctx, p.ID)
	if after.VotesYes != 1 || after.VotesNo != 0 {
		t.Errorf("tally after duplicate: got yes=%d no=%d, want 1/0", after.VotesYes, after.VotesNo)
	}
}

func TestCastVote_VotingClosed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.mustCreateProposal(t)

	if _, err := env.voting.CastVote(ctx, env.validator, p.ID, true); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if _, err := env.proposals.CloseVoting(ctx, p.ID, SimpleMajority(1)); err != nil {
		t.Fatalf("close: %v", err)
	}

	late := env.mustAddValidator(t, 0)
	if _, err := env.voting.CastVote(ctx, late, p.ID, true); !errors.Is(err, ErrVotingClosed) {
		t.Fatalf("late vote: expected ErrVotingClosed, got: %v", err)
	}
}

func TestCastVote_UnknownProposal(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.voting.CastVote(context.Background(), env.validator, "no-such-proposal", true)
	if err == nil {
		t.Fatal("expected error for unknown proposal")
	}
}

// N distinct validators voting concurrently on the same Pending proposal:
// every vote lands exactly once and the cached tallies equal the ledger.
func TestCastVote_Concurrent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.mustCreateProposal(t)

	const n = 40
	voters := make([]*models.User, n)
	for i := range voters {
		voters[i] = env.mustAddValidator(t, i)
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range voters {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.voting.CastVote(ctx, voters[i], p.ID, i%2 == 0)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("vote %d failed: %v", i, err)
		}
	}

	after, _ := env.store.GetProposal(ctx, p.ID)
	if after.VotesYes+after.VotesNo != n {
		t.Errorf("total tally: got %d, want %d", after.VotesYes+after.VotesNo, n)
	}
	if after.VotesYes != n/2 || after.VotesNo != n/2 {
		t.Errorf("tally split: got yes=%d no=%d, want %d/%d", after.VotesYes, after.VotesNo, n/2, n/2)
	}

	votes, _ := env.store.ListVotes(ctx, p.ID)
	if len(votes) != n {
		t.Errorf("ledger: got %d votes, want %d", len(votes), n)
	}
}

// Same voter retrying concurrently: exactly one attempt wins.
func TestCastVote_ConcurrentDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.mustCreateProposal(t)

	const attempts = 10
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.voting.CastVote(ctx, env.validator, p.ID, true)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrDuplicateVote):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("successful votes: got %d, want 1", succeeded)
	}

	after, _ := env.store.GetProposal(ctx, p.ID)
	if after.VotesYes != 1 || after.VotesNo != 0 {
		t.Errorf("tally: got yes=%d no=%d, want 1/0", after.VotesYes, after.VotesNo)
	}
}

// The invariant from the voting ledger contract: cached tallies always
// equal the partitioned count of vote records.
func TestTallyMatchesCachedFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.mustCreateProposal(t)

	decisions := []bool{true, false, true, true, false}
	for i, approve := range decisions {
		voter := env.mustAddValidator(t, i)
		if _, err := env.voting.CastVote(ctx, voter, p.ID, approve); err != nil {
			t.Fatalf("vote %d: %v", i, err)
		}

		yes, no, err := env.voting.Tally(ctx, p.ID)
		if err != nil {
			t.Fatalf("tally: %v", err)
		}
		cached, _ := env.store.GetProposal(ctx, p.ID)
		if cached.VotesYes != yes || cached.VotesNo != no {
			t.Fatalf("after vote %d: cached yes=%d no=%d, ledger yes=%d no=%d",
				i, cached.VotesYes, cached.VotesNo, yes, no)
		}
	}
}
