package dao

import (
	"testing"

	"github.com/PJ-Pooja16/ReliefDAO/internal/models"
)

func TestQuorumDecide(t *testing.T) {
	cases := []struct {
		name     string
		minVotes int
		yes, no  int
		want     models.ProposalStatus
	}{
		{"clear majority", 3, 3, 1, models.ProposalApproved},
		{"clear rejection", 3, 1, 3, models.ProposalRejected},
		{"tie rejects", 2, 2, 2, models.ProposalRejected},
		{"below threshold rejects", 5, 3, 0, models.ProposalRejected},
		{"exactly at threshold", 4, 3, 1, models.ProposalApproved},
		{"no votes", 1, 0, 0, models.ProposalRejected},
		{"zero threshold unanimous", 0, 1, 0, models.ProposalApproved},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SimpleMajority(tc.minVotes).Decide(tc.yes, tc.no)
			if got != tc.want {
				t.Errorf("Decide(%d, %d) with min %d: got %q, want %q",
					tc.yes, tc.no, tc.minVotes, got, tc.want)
			}
		})
	}
}
