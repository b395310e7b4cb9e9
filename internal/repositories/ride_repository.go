package repositories

import (
	"context"
	"errors"

	"tripplanner/internal/infra"
	"tripplanner/internal/models/db_models"
)

// RideRepositoryInterface stores ride search sessions. The options a search
// returns are cached, not stored.
type RideRepositoryInterface interface {
	SaveSearchSession(ctx context.Context, s *db_models.RideSearchSession) error
	GetSearchSession(ctx context.Context, rideID string) (*db_models.RideSearchSession, error)
	ListSearchSessionsByOwner(ctx context.Context, email string) ([]db_models.RideSearchSession, error)
}

func NewRideRepository(store infra.DocumentStore) RideRepositoryInterface {
	return &RideRepository{store: store}
}

type RideRepository struct {
	store infra.DocumentStore
}

func (r *RideRepository) SaveSearchSession(ctx context.Context, s *db_models.RideSearchSession) error {
	return r.store.Set(ctx, db_models.CollectionRideSessions, s.ID, s)
}

func (r *RideRepository) GetSearchSession(ctx context.Context, rideID string) (*db_models.RideSearchSession, error) {
	var s db_models.RideSearchSession
	if err := r.store.Get(ctx, db_models.CollectionRideSessions, rideID, &s); err != nil {
		if errors.Is(err, infra.ErrDocumentNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *RideRepository) ListSearchSessionsByOwner(ctx context.Context, email string) ([]db_models.RideSearchSession, error) {
	return infra.ListAs[db_models.RideSearchSession](ctx, r.store, db_models.CollectionRideSessions, infra.Where("ownerEmail", email))
}
