package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/PJ-Pooja16/ReliefDAO/internal/models"
	"github.com/PJ-Pooja16/ReliefDAO/internal/store"
)

type testEnv struct {
	store     *store.Memory
	funding   *FundingAggregator
	proposals *ProposalService
	voting    *VotingEngine
	disasters *DisasterService

	responder *models.User
	validator *models.User
	donor     *models.User
	admin     *models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mem := store.NewMemory()
	funding := NewFundingAggregator(mem)

	env := &testEnv{
		store:     mem,
		funding:   funding,
		proposals: NewProposalService(mem, funding),
		voting:    NewVotingEngine(mem),
		disasters: NewDisasterService(mem),
		responder: &models.User{ID: "resp-1", Name: "Local NGO", Role: models.RoleResponder, Email: "ngo@example.org"},
		validator: &models.User{ID: "val-1", Name: "Field Validator", Role: models.RoleValidator, Email: "val@example.org"},
		donor:     &models.User{ID: "donor-1", Name: "Major Donor", Role: models.RoleDonor, Email: "donor@example.org"},
		admin:     &models.User{ID: "admin-1", Name: "Ops Admin", Role: models.RoleAdmin, Email: "admin@example.org"},
	}

	ctx := context.Background()
	for _, u := range []*models.User{env.responder, env.validator, env.donor, env.admin} {
		if err := mem.CreateUser(ctx, u); err != nil {
			t.Fatalf("seeding user %s: %v", u.ID, err)
		}
	}

	disaster := &models.Disaster{
		ID:          "d1",
		Name:        "Bengaluru Floods",
		Location:    "Bengaluru, India",
		Status:      models.DisasterResponseOngoing,
		FundsNeeded: 500000,
		DateStarted: time.Now().UTC(),
	}
	if err := mem.CreateDisaster(ctx, disaster); err != nil {
		t.Fatalf("seeding disaster: %v", err)
	}

	return env
}

func (env *testEnv) validDraft() ProposalDraft {
	return ProposalDraft{
		DisasterID:       "d1",
		Title:            "Emergency Food Distribution",
		Category:         models.CategoryFood,
		AmountRequested:  15000,
		Timeline:         "48 hours",
		Description:      "Distribute essential food supplies to 2000 families.",
		Beneficiaries:    2000,
		Location:         "Bengaluru, India",
		VerificationPlan: []string{"GPS Photos", "Recipient Signatures"},
	}
}

// mustCreateProposal seeds a Pending proposal via the service.
func (env *testEnv) mustCreateProposal(t *testing.T) *models.Proposal {
	t.Helper()
	p, err := env.proposals.Create(context.Background(), env.responder, env.validDraft())
	if err != nil {
		t.Fatalf("creating proposal: %v", err)
	}
	return p
}

// mustAddValidator registers an extra validator account.
func (env *testEnv) mustAddValidator(t *testing.T, n int) *models.User {
	t.Helper()
	u := &models.User{
		ID:    fmt.Sprintf("val-extra-%d", n),
		Name:  fmt.Sprintf("Validator %d", n),
		Role:  models.RoleValidator,
		Email: fmt.Sprintf("val%d@example.org", n),
	}
	if err := env.store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seeding validator %d: %v", n, err)
	}
	return u
}
