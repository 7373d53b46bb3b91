package store

import (
	"context"
	"sync"

	"github.com/PJ-Pooja16/ReliefDAO/internal/models"
)

// Memory is an in-process Store guarded by a single mutex. Every
// conditional write holds the lock across its check and mutation, which
// gives the same atomicity the Postgres store gets from transactions.
// Used by the test suite and by the server in dev mode.
type Memory struct {
	mu        sync.Mutex
	users     map[string]*models.User
	disasters map[string]*models.Disaster
	proposals map[string]*models.Proposal
	votes     map[string]*models.Vote // keyed proposalID + "/" + voterID
	donations map[string]*models.Donation
}

func NewMemory() *Memory {
	return &Memory{
		users:     make(map[string]*models.User),
		disasters: make(map[string]*models.Disaster),
		proposals: make(map[string]*models.Proposal),
		votes:     make(map[string]*models.Vote),
		donations: make(map[string]*models.Donation),
	}
}

func voteKey(proposalID, voterID string) string {
	return proposalID + "/" + voterID
}

func (m *Memory) CreateUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *Memory) GetUser(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *Memory) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) AdjustReputation(ctx context.Context, userID string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Reputation += delta
	return nil
}

func (m *Memory) CreateDisaster(ctx context.Context, d *models.Disaster) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *d
	cp.Proposals = append([]string(nil), d.Proposals...)
	m.disasters[d.ID] = &cp
	return nil
}

func (m *Memory) GetDisaster(ctx context.Context, id string) (*models.Disaster, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.disasters[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	cp.Proposals = append([]string(nil), d.Proposals...)
	return &cp, nil
}

func (m *Memory) ListDisasters(ctx context.Context) ([]models.Disaster, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Disaster, 0, len(m.disasters))
	for _, d := range m.disasters {
		cp := *d
		cp.Proposals = append([]string(nil), d.Proposals...)
		out = append(out, cp)
	}
	return out, nil
}

func (m *Memory) AppendDisasterProposal(ctx context.Context, disasterID, proposalID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.disasters[disasterID]
	if !ok {
		return ErrNotFound
	}
	d.Proposals = append(d.Proposals, proposalID)
	return nil
}

func (m *Memory) TransitionDisasterStatus(ctx context.Context, id string, from, to models.DisasterStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.disasters[id]
	if !ok {
		return ErrNotFound
	}
	if d.Status != from {
		return ErrConflict
	}
	d.Status = to
	return nil
}

func (m *Memory) UpdateDisasterFunding(ctx context.Context, id string, raised, deployed int64, proposalsFunded int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.disasters[id]
	if !ok {
		return ErrNotFound
	}
	d.FundsRaised = raised
	d.FundsDeployed = deployed
	d.ProposalsFunded = proposalsFunded
	return nil
}

func (m *Memory) CreateProposal(ctx context.Context, p *models.Proposal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.VerificationPlan = append([]string(nil), p.VerificationPlan...)
	m.proposals[p.ID] = &cp
	return nil
}

func (m *Memory) GetProposal(ctx context.Context, id string) (*models.Proposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.proposals[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	cp.VerificationPlan = append([]string(nil), p.VerificationPlan...)
	return &cp, nil
}

func (m *Memory) ListProposalsByDisaster(ctx context.Context, disasterID string) ([]models.Proposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Proposal
	for _, p := range m.proposals {
		if p.DisasterID == disasterID {
			cp := *p
			cp.VerificationPlan = append([]string(nil), p.VerificationPlan...)
			out = append(out, cp)
		}
	}
	return out, nil
}

func (m *Memory) ListProposalsByAuthor(ctx context.Context, userID string) ([]models.Proposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Proposal
	for _, p := range m.proposals {
		if p.CreatedBy == userID {
			cp := *p
			cp.VerificationPlan = append([]string(nil), p.VerificationPlan...)
			out = append(out, cp)
		}
	}
	return out, nil
}

func (m *Memory) TransitionProposalStatus(ctx context.Context, id string, from, to models.ProposalStatus, verificationRef string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.proposals[id]
	if !ok {
		return ErrNotFound
	}
	if p.Status != from {
		return ErrConflict
	}
	p.Status = to
	if verificationRef != "" {
		p.VerificationRef = verificationRef
	}
	return nil
}

func (m *Memory) InsertVote(ctx context.Context, v *models.Vote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.proposals[v.ProposalID]
	if !ok {
		return ErrNotFound
	}
	if p.Status != models.ProposalPending {
		return ErrConflict
	}
	key := voteKey(v.ProposalID, v.VoterID)
	if _, exists := m.votes[key]; exists {
		return ErrDuplicateVote
	}
	cp := *v
	m.votes[key] = &cp
	if v.Decision {
		p.VotesYes++
	} else {
		p.VotesNo++
	}
	return nil
}

func (m *Memory) ListVotes(ctx context.Context, proposalID string) ([]models.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Vote
	for _, v := range m.votes {
		if v.ProposalID == proposalID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *Memory) CreateDonation(ctx context.Context, d *models.Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *d
	m.donations[d.ID] = &cp
	return nil
}

func (m *Memory) GetDonation(ctx context.Context, id string) (*models.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.donations[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *Memory) SettleDonation(ctx context.Context, id string, status models.DonationStatus, txSignature string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.donations[id]
	if !ok {
		return ErrNotFound
	}
	if d.Status != models.DonationPending {
		return ErrConflict
	}
	d.Status = status
	d.TxSignature = txSignature
	return nil
}

func (m *Memory) ListDonationsByDisaster(ctx context.Context, disasterID string) ([]models.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Donation
	for _, d := range m.donations {
		if d.DisasterID == disasterID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *Memory) ListDonationsByDonor(ctx context.Context, donorID string) ([]models.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Donation
	for _, d := range m.donations {
		if d.DonorID == donorID {
			out = append(out, *d)
		}
	}
	return out, nil
}
