package reputation

import (
	"testing"

	"github.com/PJ-Pooja16/ReliefDAO/internal/models"
)

func TestTierFor(t *testing.T) {
	cases := []struct {
		reputation int
		want       string
	}{
		{0, "newcomer"},
		{24, "newcomer"},
		{25, "contributor"},
		{59, "contributor"},
		{60, "trusted"},
		{95, "pillar"},
	}

	for _, tc := range cases {
		got := TierFor(&models.User{Reputation: tc.reputation})
		if got.ID != tc.want {
			t.Errorf("reputation %d: got tier %q, want %q", tc.reputation, got.ID, tc.want)
		}
	}
}
