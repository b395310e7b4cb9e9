package repositories

import (
	"context"
	"errors"
	"sort"

	"tripplanner/internal/infra"
	"tripplanner/internal/models/db_models"
)

type TripRepositoryInterface interface {
	SaveTrip(ctx context.Context, trip *db_models.TripPlan) error
	// GetTripByID returns nil, nil when the trip does not exist.
	GetTripByID(ctx context.Context, tripID string) (*db_models.TripPlan, error)
	// ListTripsByOwner returns newest first.
	ListTripsByOwner(ctx context.Context, email string) ([]db_models.TripPlan, error)
}

func NewTripRepository(store infra.DocumentStore) TripRepositoryInterface {
	return &TripRepository{store: store}
}

type TripRepository struct {
	store infra.DocumentStore
}

func (t *TripRepository) SaveTrip(ctx context.Context, trip *db_models.TripPlan) error {
	return t.store.Set(ctx, db_models.CollectionTrips, trip.ID, trip)
}

func (t *TripRepository) GetTripByID(ctx context.Context, tripID string) (*db_models.TripPlan, error) {
	var trip db_models.TripPlan
	if err := t.store.Get(ctx, db_models.CollectionTrips, tripID, &trip); err != nil {
		if errors.Is(err, infra.ErrDocumentNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}

func (t *TripRepository) ListTripsByOwner(ctx context.Context, email string) ([]db_models.TripPlan, error) {
	trips, err := infra.ListAs[db_models.TripPlan](ctx, t.store, db_models.CollectionTrips, infra.Where("ownerEmail", email))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(trips, func(i, j int) bool { return trips[i].CreatedAt.After(trips[j].CreatedAt) })
	return trips, nil
}
