package services

import (
	"context"
	"fmt"
	"time"

	"tripplanner/internal/models/request_models"
	resp "tripplanner/internal/models/response_models"
	"tripplanner/internal/repositories"
	"tripplanner/internal/stats"
	"tripplanner/pkg/utils"
)

const recentTripsLimit = 5

type DashboardServiceInterface interface {
	BuildDashboard(ctx context.Context, session request_models.Session) (*resp.DashboardResponse, error)
}

type dashboardService struct {
	trips      repositories.TripRepositoryInterface
	rides      repositories.RideRepositoryInterface
	bookings   repositories.BookingRepositoryInterface
	aggregator *stats.Aggregator
	loc        *time.Location
	now        func() time.Time
}

func NewDashboardService(
	trips repositories.TripRepositoryInterface,
	rides repositories.RideRepositoryInterface,
	bookings repositories.BookingRepositoryInterface,
	aggregator *stats.Aggregator,
	loc *time.Location,
) DashboardServiceInterface {
	if loc == nil {
		loc = utils.Location("")
	}
	return &dashboardService{trips: trips, rides: rides, bookings: bookings, aggregator: aggregator, loc: loc, now: time.Now}
}

func (d *dashboardService) BuildDashboard(ctx context.Context, session request_models.Session) (*resp.DashboardResponse, error) {
	if session.IsZero() {
		return nil, utils.ErrUnauthorized
	}

	trips, err := d.trips.ListTripsByOwner(ctx, session.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: list trips: %v", utils.ErrDatabaseError, err)
	}
	rides, err := d.rides.ListSearchSessionsByOwner(ctx, session.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: list rides: %v", utils.ErrDatabaseError, err)
	}
	hotels, err := d.bookings.ListHotelBookingsByOwner(ctx, session.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: list bookings: %v", utils.ErrDatabaseError, err)
	}

	today := civilIn(d.now(), d.loc)
	out := &resp.DashboardResponse{
		Stats:       d.aggregator.Aggregate(trips, rides, hotels, today),
		RecentTrips: []resp.TripSummary{},
	}
	out.TotalBudgetSpentText = utils.FormatPKR(out.Stats.TotalBudgetSpent)

	for i := range trips {
		if i == recentTripsLimit {
			break
		}
		t := &trips[i]
		out.RecentTrips = append(out.RecentTrips, resp.TripSummary{
			ID:           t.ID,
			TripName:     t.TripName,
			Destination:  t.Destination,
			DurationDays: t.DurationDays,
			BudgetTier:   string(t.BudgetTier),
			StartDate:    t.StartDate,
			Upcoming:     stats.IsUpcoming(t, today),
			CreatedAt:    t.CreatedAt,
		})
	}
	return out, nil
}

// civilIn is the calendar date of t in loc, as UTC midnight.
func civilIn(t time.Time, loc *time.Location) time.Time {
	y, m, day := t.In(loc).Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
