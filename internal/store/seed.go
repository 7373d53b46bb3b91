package store

import (
	"context"
	"time"

	"github.com/PJ-Pooja16/ReliefDAO/internal/models"
)

// Seed loads a small sample dataset so the server is usable in dev mode
// without a Postgres instance. Tallies and funding totals are consistent
// with the seeded votes and donations.
func Seed(ctx context.Context, s Store) error {
	users := []models.User{
		{ID: "u1", Name: "Local NGO Bengaluru", Role: models.RoleResponder, Reputation: 92, Email: "contact@local-ngo.org", Activity: "Active in 3 disaster responses"},
		{ID: "u2", Name: "Dr. Sharma Clinic", Role: models.RoleResponder, Reputation: 88, Email: "clinic@sharma.med", Activity: "Provided medical aid in Kerala"},
		{ID: "u3", Name: "Rapid Response Team", Role: models.RoleValidator, Reputation: 95, Email: "verify@rapid-response.org", Activity: "Validated 50+ proposals"},
		{ID: "u5", Name: "Global Aid Foundation", Role: models.RoleDonor, Reputation: 98, Email: "donate@global-aid.org", Activity: "Top donor for cyclone relief"},
		{ID: "u6", Name: "Vijay", Role: models.RoleAdmin, Reputation: 100, Email: "vijay@reliefdao.org", Activity: "Overseeing all operations"},
		{ID: "u9", Name: "Dr. Mehta", Role: models.RoleValidator, Reputation: 95, Email: "mehta@example.com", Activity: "Validated 23 proofs"},
	}
	for i := range users {
		users[i].CreatedAt = time.Now()
		if err := s.CreateUser(ctx, &users[i]); err != nil {
			return err
		}
	}

	disasters := []models.Disaster{
		{
			ID: "d1", Name: "Bengaluru Floods", Location: "Bengaluru, India",
			Status: models.DisasterResponseOngoing, Type: "Flood",
			Impact: "15,000+ people assisted", AlertLevel: 3, Affected: 50000,
			FundsNeeded: 500000, DateStarted: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "d2", Name: "Kerala Landslides", Location: "Kerala, India",
			Status: models.DisasterFundsDeploying, Type: "Landslide",
			Impact: "4,000+ people sheltered", AlertLevel: 4, Affected: 12000,
			FundsNeeded: 150000, DateStarted: time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC),
		},
	}
	for i := range disasters {
		if err := s.CreateDisaster(ctx, &disasters[i]); err != nil {
			return err
		}
	}

	proposals := []models.Proposal{
		{
			ID: "p1", DisasterID: "d1", Title: "Emergency Food Distribution",
			Category: models.CategoryFood, AmountRequested: 15000,
			Status: models.ProposalPending, Timeline: "48 hours", CreatedBy: "u1",
			Description:      "Distribute essential food supplies to 2000 families in the most affected areas, procured from local vendors.",
			Beneficiaries:    2000, Location: "Bengaluru, India",
			VerificationPlan: []string{"GPS Photos", "Recipient Signatures"},
			CreatedAt:        time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC),
		},
		{
			ID: "p2", DisasterID: "d1", Title: "Medical Supplies for Clinics",
			Category: models.CategoryMedical, AmountRequested: 8000,
			Status: models.ProposalApproved, Timeline: "24 hours", CreatedBy: "u2",
			Description:      "Procurement and delivery of essential medical supplies to makeshift clinics in flood-affected zones.",
			Beneficiaries:    500, Location: "Bengaluru, India",
			VerificationPlan: []string{"Video Documentation", "Third-party Verification"},
			CreatedAt:        time.Date(2026, 1, 9, 14, 30, 0, 0, time.UTC),
		},
		{
			ID: "p3", DisasterID: "d2", Title: "Temporary Shelter Kits",
			Category: models.CategoryShelter, AmountRequested: 30000,
			Status: models.ProposalCompleted, Timeline: "72 hours", CreatedBy: "u1",
			Description:      "Distribution of temporary shelter kits for families who have lost their homes in the landslides.",
			Beneficiaries:    300, Location: "Kerala, India",
			VerificationPlan: []string{"GPS Photos"},
			VerificationRef:  "delivery-summary-p3",
			CreatedAt:        time.Date(2026, 1, 8, 18, 0, 0, 0, time.UTC),
		},
	}
	for i := range proposals {
		if err := s.CreateProposal(ctx, &proposals[i]); err != nil {
			return err
		}
		if err := s.AppendDisasterProposal(ctx, proposals[i].DisasterID, proposals[i].ID); err != nil {
			return err
		}
	}

	votes := []models.Vote{
		{ID: "v1", ProposalID: "p1", VoterID: "u3", Decision: true, CreatedAt: time.Now()},
		{ID: "v2", ProposalID: "p1", VoterID: "u9", Decision: false, CreatedAt: time.Now()},
	}
	for i := range votes {
		if err := s.InsertVote(ctx, &votes[i]); err != nil {
			return err
		}
	}

	donations := []models.Donation{
		{ID: "dn1", DisasterID: "d1", DonorID: "u5", Amount: 25000, Type: "One-time", Status: models.DonationConfirmed, TxSignature: "seed-tx-1", CreatedAt: time.Now()},
		{ID: "dn2", DisasterID: "d2", DonorID: "u5", Amount: 40000, Type: "One-time", Status: models.DonationConfirmed, TxSignature: "seed-tx-2", CreatedAt: time.Now()},
	}
	for i := range donations {
		if err := s.CreateDonation(ctx, &donations[i]); err != nil {
			return err
		}
	}

	if err := s.UpdateDisasterFunding(ctx, "d1", 25000, 0, 0); err != nil {
		return err
	}
	return s.UpdateDisasterFunding(ctx, "d2", 40000, 30000, 1)
}
