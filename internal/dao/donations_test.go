package dao

import (
	"context"
	"errors"
	"testing"

	"github.com/PJ-Pooja16/ReliefDAO/internal/models"
	"github.com/PJ-Pooja16/ReliefDAO/internal/wallet"
)

// signerFunc adapts a function to the wallet.Signer interface.
type signerFunc func(ctx context.Context, amount int64, memo string) (string, error)

func (f signerFunc) Transfer(ctx context.Context, amount int64, memo string) (string, error) {
	return f(ctx, amount, memo)
}

func (env *testEnv) donationService(signer wallet.Signer) *DonationService {
	return NewDonationService(env.store, signer, env.funding)
}

func TestDonate_Success(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	svc := env.donationService(signerFunc(func(ctx context.Context, amount int64, memo string) (string, error) {
		return "sig-abc123", nil
	}))

	d, err := svc.Donate(ctx, env.donor, "d1", 5000, "One-time")
	if err != nil {
		t.Fatalf("donate: %v", err)
	}
	if d.Status != models.DonationConfirmed {
		t.Errorf("status: got %q, want Confirmed", d.Status)
	}
	if d.TxSignature != "sig-abc123" {
		t.Errorf("signature: got %q, want sig-abc123", d.TxSignature)
	}

	disaster, _ := env.store.GetDisaster(ctx, "d1")
	if disaster.FundsRaised != 5000 {
		t.Errorf("funds raised: got %d, want 5000", disaster.FundsRaised)
	}
}

func TestDonate_SignerFailureSettlesFailed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	svc := env.donationService(signerFunc(func(ctx context.Context, amount int64, memo string) (string, error) {
		return "", wallet.ErrInsufficientFunds
	}))

	_, err := svc.Donate(ctx, env.donor, "d1", 5000, "One-time")
	var external *ExternalError
	if !errors.As(err, &external) {
		t.Fatalf("expected ExternalError, got: %v", err)
	}
	if !errors.Is(err, wallet.ErrInsufficientFunds) {
		t.Errorf("cause not preserved: %v", err)
	}

	// The record exists, is marked Failed, and is never counted as raised.
	donations, _ := env.store.ListDonationsByDonor(ctx, env.donor.ID)
	if len(donations) != 1 {
		t.Fatalf("donation records: got %d, want 1", len(donations))
	}
	if donations[0].Status != models.DonationFailed {
		t.Errorf("status: got %q, want Failed", donations[0].Status)
	}

	if _, _, err := env.funding.Recompute(ctx, "d1"); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	disaster, _ := env.store.GetDisaster(ctx, "d1")
	if disaster.FundsRaised != 0 {
		t.Errorf("failed payment counted as raised funds: %d", disaster.FundsRaised)
	}
}

func TestDonate_CancelledPaymentSettlesFailed(t *testing.T) {
	env := newTestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	svc := env.donationService(signerFunc(func(ctx context.Context, amount int64, memo string) (string, error) {
		cancel()
		return "", ctx.Err()
	}))

	if _, err := svc.Donate(ctx, env.donor, "d1", 5000, ""); err == nil {
		t.Fatal("expected error from cancelled payment")
	}

	donations, _ := env.store.ListDonationsByDonor(context.Background(), env.donor.ID)
	if len(donations) != 1 {
		t.Fatalf("donation records: got %d, want 1", len(donations))
	}
	if donations[0].Status != models.DonationFailed {
		t.Errorf("abandoned donation left as %q, want Failed", donations[0].Status)
	}
}

func TestDonate_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	svc := env.donationService(signerFunc(func(ctx context.Context, amount int64, memo string) (string, error) {
		t.Fatal("signer must not be called for invalid input")
		return "", nil
	}))

	var validation *ValidationError
	if _, err := svc.Donate(ctx, env.donor, "d1", 0, ""); !errors.As(err, &validation) {
		t.Errorf("zero amount: expected ValidationError, got: %v", err)
	}
	if _, err := svc.Donate(ctx, env.donor, "d1", -10, ""); !errors.As(err, &validation) {
		t.Errorf("negative amount: expected ValidationError, got: %v", err)
	}
}
