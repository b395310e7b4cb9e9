package repositories

import (
	"context"
	"errors"
	"sort"

	"tripplanner/internal/infra"
	"tripplanner/internal/models/db_models"
)

type BookingRepositoryInterface interface {
	SaveHotelBooking(ctx context.Context, b *db_models.HotelBooking) error
	GetHotelBookingByID(ctx context.Context, bookingID string) (*db_models.HotelBooking, error)
	ListHotelBookingsByOwner(ctx context.Context, email string) ([]db_models.HotelBooking, error)

	SaveRideBooking(ctx context.Context, b *db_models.RideBooking) error
	ListRideBookingsByOwner(ctx context.Context, email string) ([]db_models.RideBooking, error)
}

func NewBookingRepository(store infra.DocumentStore) BookingRepositoryInterface {
	return &BookingRepository{store: store}
}

type BookingRepository struct {
	store infra.DocumentStore
}

func (r *BookingRepository) SaveHotelBooking(ctx context.Context, b *db_models.HotelBooking) error {
	return r.store.Set(ctx, db_models.CollectionHotelBookings, b.ID, b)
}

func (r *BookingRepository) GetHotelBookingByID(ctx context.Context, bookingID string) (*db_models.HotelBooking, error) {
	var b db_models.HotelBooking
	if err := r.store.Get(ctx, db_models.CollectionHotelBookings, bookingID, &b); err != nil {
		if errors.Is(err, infra.ErrDocumentNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListHotelBookingsByOwner(ctx context.Context, email string) ([]db_models.HotelBooking, error) {
	out, err := infra.ListAs[db_models.HotelBooking](ctx, r.store, db_models.CollectionHotelBookings, infra.Where("ownerEmail", email))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *BookingRepository) SaveRideBooking(ctx context.Context, b *db_models.RideBooking) error {
	return r.store.Set(ctx, db_models.CollectionBookedRides, b.ID, b)
}

func (r *BookingRepository) ListRideBookingsByOwner(ctx context.Context, email string) ([]db_models.RideBooking, error) {
	out, err := infra.ListAs[db_models.RideBooking](ctx, r.store, db_models.CollectionBookedRides, infra.Where("ownerEmail", email))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
