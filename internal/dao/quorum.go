package dao

import "github.com/PJ-Pooja16/ReliefDAO/internal/models"

// QuorumPolicy decides a proposal's outcome when voting closes: simple
// majority of cast votes, with a minimum participation threshold. A
// proposal that fails to attract MinVotes votes is rejected.
type QuorumPolicy struct {
	MinVotes int
}

// SimpleMajority returns the default policy used by the API.
func SimpleMajority(minVotes int) QuorumPolicy {
	return QuorumPolicy{MinVotes: minVotes}
}

func (q QuorumPolicy) Decide(yes, no int) models.ProposalStatus {
	if yes+no < q.MinVotes {
		return models.ProposalRejected
	}
	if yes > no {
		return models.ProposalApproved
	}
	return models.ProposalRejected
}
