package dao

import (
	"errors"
	"fmt"

	"github.com/PJ-Pooja16/ReliefDAO/internal/store"
)

var (
	// ErrNotAllowed means the caller's role does not permit the operation.
	ErrNotAllowed = errors.New("role not permitted for this operation")

	// ErrInvalidState means the operation is not valid for the record's
	// current lifecycle state.
	ErrInvalidState = errors.New("operation not valid in current state")

	// ErrDuplicateVote means the voter already voted on this proposal.
	ErrDuplicateVote = errors.New("duplicate vote")

	// ErrVotingClosed means the proposal is no longer accepting votes.
	ErrVotingClosed = errors.New("voting is closed for this proposal")
)

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// StoreError wraps a transient infrastructure failure from the record
// store. It is the only error kind callers may retry.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string { return "store: " + e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }

// ExternalError wraps a failure from a third-party collaborator (payment
// signer, text generation). Surfaced to the caller, never retried here.
type ExternalError struct {
	Service string
	Err     error
}

func (e *ExternalError) Error() string { return e.Service + ": " + e.Err.Error() }
func (e *ExternalError) Unwrap() error { return e.Err }

// wrapStore passes through the store's semantic sentinels and classifies
// anything else as a retryable StoreError.
func wrapStore(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, store.ErrDuplicateVote) ||
		errors.Is(err, store.ErrConflict) {
		return err
	}
	return &StoreError{Err: err}
}
