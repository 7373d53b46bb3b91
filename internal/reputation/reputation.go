// Package reputation maps a user's reputation score to the standing tier
// shown on the impact dashboard.
package reputation

import "github.com/PJ-Pooja16/ReliefDAO/internal/models"

type Tier struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Threshold   int    `json:"threshold"`
}

// Tiers in ascending order of threshold.
var Tiers = []Tier{
	{
		ID:          "newcomer",
		Title:       "Newcomer",
		Description: "Welcome to ReliefDAO",
		Threshold:   0,
	},
	{
		ID:          "contributor",
		Title:       "Contributor",
		Description: "Active participant in relief operations",
		Threshold:   25,
	},
	{
		ID:          "trusted",
		Title:       "Trusted Member",
		Description: "Consistent record of verified contributions",
		Threshold:   60,
	},
	{
		ID:          "pillar",
		Title:       "Community Pillar",
		Description: "Among the most reliable members of the DAO",
		Threshold:   90,
	},
}

// TierFor returns the highest tier the user's reputation qualifies for.
func TierFor(u *models.User) Tier {
	tier := Tiers[0]
	for _, t := range Tiers {
		if u.Reputation >= t.Threshold {
			tier = t
		}
	}
	return tier
}
