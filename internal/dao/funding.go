package dao

import (
	"context"

	"github.com/PJ-Pooja16/ReliefDAO/internal/models"
	"github.com/PJ-Pooja16/ReliefDAO/internal/store"
)

// FundingAggregator recomputes a disaster's derived funding totals from
// the records that source them: confirmed donations feed fundsRaised,
// completed proposals feed fundsDeployed. Re-running it with no
// intervening changes writes back the same values.
type FundingAggregator struct {
	store store.Store
}

func NewFundingAggregator(s store.Store) *FundingAggregator {
	return &FundingAggregator{store: s}
}

// Recompute sums the disaster's sources and writes the derived fields
// back. Runs after a donation confirms and after a proposal completes.
func (a *FundingAggregator) Recompute(ctx context.Context, disasterID string) (raised, deployed int64, err error) {
	if _, err := a.store.GetDisaster(ctx, disasterID); err != nil {
		return 0, 0, wrapStore(err)
	}

	donations, err := a.store.ListDonationsByDisaster(ctx, disasterID)
	if err != nil {
		return 0, 0, wrapStore(err)
	}
	for _, d := range donations {
		if d.Status == models.DonationConfirmed {
			raised += d.Amount
		}
	}

	proposals, err := a.store.ListProposalsByDisaster(ctx, disasterID)
	if err != nil {
		return 0, 0, wrapStore(err)
	}
	funded := 0
	for _, p := range proposals {
		if p.Status == models.ProposalCompleted {
			deployed += p.AmountRequested
			funded++
		}
	}

	if err := a.store.UpdateDisasterFunding(ctx, disasterID, raised, deployed, funded); err != nil {
		return 0, 0, wrapStore(err)
	}
	return raised, deployed, nil
}
