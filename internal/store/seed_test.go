package store

import (
	"context"
	"testing"

	"github.com/PJ-Pooja16/ReliefDAO/internal/models"
)

// The seed data must satisfy the same invariants the services enforce:
// tallies match the vote ledger, funding totals match their sources.
func TestSeedConsistency(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := Seed(ctx, m); err != nil {
		t.Fatalf("seed: %v", err)
	}

	disasters, err := m.ListDisasters(ctx)
	if err != nil {
		t.Fatalf("listing disasters: %v", err)
	}
	if len(disasters) == 0 {
		t.Fatal("no disasters seeded")
	}

	for _, d := range disasters {
		proposals, err := m.ListProposalsByDisaster(ctx, d.ID)
		if err != nil {
			t.Fatalf("listing proposals for %s: %v", d.ID, err)
		}
		for _, p := range proposals {
			votes, err := m.ListVotes(ctx, p.ID)
			if err != nil {
				t.Fatalf("listing votes for %s: %v", p.ID, err)
			}
			yes, no := 0, 0
			for _, v := range votes {
				if v.Decision {
					yes++
				} else {
					no++
				}
			}
			if p.VotesYes != yes || p.VotesNo != no {
				t.Errorf("proposal %s: cached tally yes=%d no=%d, ledger yes=%d no=%d",
					p.ID, p.VotesYes, p.VotesNo, yes, no)
			}
		}

		var raised, deployed int64
		donations, _ := m.ListDonationsByDisaster(ctx, d.ID)
		for _, dn := range donations {
			if dn.Status == models.DonationConfirmed {
				raised += dn.Amount
			}
		}
		for _, p := range proposals {
			if p.Status == models.ProposalCompleted {
				deployed += p.AmountRequested
			}
		}
		if d.FundsRaised != raised {
			t.Errorf("disaster %s: funds raised %d, donations sum %d", d.ID, d.FundsRaised, raised)
		}
		if d.FundsDeployed != deployed {
			t.Errorf("disaster %s: funds deployed %d, completed proposals sum %d", d.ID, d.FundsDeployed, deployed)
		}
	}
}
