package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/PJ-Pooja16/ReliefDAO/internal/models"
	"github.com/PJ-Pooja16/ReliefDAO/internal/store"
)

// DisasterService owns the administratively managed disaster records.
type DisasterService struct {
	store store.Store
}

func NewDisasterService(s store.Store) *DisasterService {
	return &DisasterService{store: s}
}

// DisasterDraft carries the admin-supplied fields of a new disaster.
type DisasterDraft struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	AlertLevel  int    `json:"alert_level"`
	Affected    int    `json:"affected"`
	FundsNeeded int64  `json:"funds_needed"`
}

// Create registers a new Active disaster. Funding totals start at zero
// and are only ever written by the aggregator afterwards.
func (s *DisasterService) Create(ctx context.Context, admin *models.User, draft DisasterDraft) (*models.Disaster, error) {
	if admin.Role != models.RoleAdmin {
		return nil, ErrNotAllowed
	}
	if draft.Name == "" || draft.Location == "" {
		return nil, validationf("name and location are required")
	}
	if draft.FundsNeeded <= 0 {
		return nil, validationf("funds needed must be positive")
	}

	d := &models.Disaster{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Location:    draft.Location,
		Status:      models.DisasterActive,
		Type:        draft.Type,
		AlertLevel:  draft.AlertLevel,
		Affected:    draft.Affected,
		FundsNeeded: draft.FundsNeeded,
		DateStarted: time.Now().UTC(),
	}
	if err := s.store.CreateDisaster(ctx, d); err != nil {
		return nil, wrapStore(err)
	}
	return d, nil
}

// AdvanceStatus moves a disaster forward in its lifecycle. Status never
// moves backwards and Archived is terminal.
func (s *DisasterService) AdvanceStatus(ctx context.Context, admin *models.User, disasterID string, to models.DisasterStatus) (*models.Disaster, error) {
	if admin.Role != models.RoleAdmin {
		return nil, ErrNotAllowed
	}
	if !to.Valid() {
		return nil, validationf("unknown disaster status %q", to)
	}

	d, err := s.store.GetDisaster(ctx, disasterID)
	if err != nil {
		return nil, wrapStore(err)
	}
	if !d.Status.CanAdvanceTo(to) {
		return nil, ErrInvalidState
	}

	err = s.store.TransitionDisasterStatus(ctx, disasterID, d.Status, to)
	if errors.Is(err, store.ErrConflict) {
		return nil, ErrInvalidState
	}
	if err != nil {
		return nil, wrapStore(err)
	}
	d.Status = to
	return d, nil
}

func (s *DisasterService) Get(ctx context.Context, disasterID string) (*models.Disaster, error) {
	d, err := s.store.GetDisaster(ctx, disasterID)
	if err != nil {
		return nil, wrapStore(err)
	}
	return d, nil
}

func (s *DisasterService) List(ctx context.Context) ([]models.Disaster, error) {
	ds, err := s.store.ListDisasters(ctx)
	if err != nil {
		return nil, wrapStore(err)
	}
	return ds, nil
}
