package dao

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/PJ-Pooja16/ReliefDAO/internal/models"
	"github.com/PJ-Pooja16/ReliefDAO/internal/store"
	"github.com/PJ-Pooja16/ReliefDAO/internal/wallet"
)

// DonationService records donations in two phases: the record is created
// Pending, then settled to Confirmed with the signer's transaction
// signature, or to Failed. A failed or abandoned payment is never left
// looking like a confirmed donation, and never fabricates one.
type DonationService struct {
	store   store.Store
	signer  wallet.Signer
	funding *FundingAggregator
}

func NewDonationService(s store.Store, signer wallet.Signer, funding *FundingAggregator) *DonationService {
	return &DonationService{store: s, signer: signer, funding: funding}
}

// Donate transfers amount to the treasury on behalf of donor and records
// the confirmed donation against the disaster. The signer call is
// cancellable through ctx; cancellation settles the record as Failed.
func (s *DonationService) Donate(ctx context.Context, donor *models.User, disasterID string, amount int64, donationType string) (*models.Donation, error) {
	if amount <= 0 {
		return nil, validationf("donation amount must be positive")
	}
	if donationType == "" {
		donationType = "One-time"
	}
	if _, err := s.store.GetDisaster(ctx, disasterID); err != nil {
		return nil, wrapStore(err)
	}

	d := &models.Donation{
		ID:         uuid.NewString(),
		DisasterID: disasterID,
		DonorID:    donor.ID,
		Amount:     amount,
		Type:       donationType,
		Status:     models.DonationPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.CreateDonation(ctx, d); err != nil {
		return nil, wrapStore(err)
	}

	sig, err := s.signer.Transfer(ctx, amount, d.ID)
	if err != nil {
		// Settle with a background context so a cancelled payment still
		// gets its record marked Failed instead of lingering Pending.
		if settleErr := s.store.SettleDonation(context.WithoutCancel(ctx), d.ID, models.DonationFailed, ""); settleErr != nil {
			return nil, wrapStore(settleErr)
		}
		return nil, &ExternalError{Service: "wallet", Err: err}
	}

	if err := s.store.SettleDonation(ctx, d.ID, models.DonationConfirmed, sig); err != nil {
		return nil, wrapStore(err)
	}
	d.Status = models.DonationConfirmed
	d.TxSignature = sig

	if _, _, err := s.funding.Recompute(ctx, disasterID); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DonationService) ListByDonor(ctx context.Context, donorID string) ([]models.Donation, error) {
	ds, err := s.store.ListDonationsByDonor(ctx, donorID)
	if err != nil {
		return nil, wrapStore(err)
	}
	return ds, nil
}
