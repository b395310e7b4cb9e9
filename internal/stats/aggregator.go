// Package stats folds a user's stored trips and bookings into dashboard figures.
package stats

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"tripplanner/internal/models/db_models"
	"tripplanner/internal/pricing"
)

const DefaultLuxurySurcharge = 50000

type DashboardStats struct {
	TotalTrips         int     `json:"totalTrips"`
	TotalRideBookings  int     `json:"totalRideBookings"`
	TotalHotelBookings int     `json:"totalHotelBookings"`
	TotalBudgetSpent   float64 `json:"totalBudgetSpent"`
	UpcomingTrips      int     `json:"upcomingTrips"`
}

type Aggregator struct {
	LuxurySurcharge float64
}

func NewAggregator(luxurySurcharge float64) *Aggregator {
	if luxurySurcharge < 0 {
		luxurySurcharge = DefaultLuxurySurcharge
	}
	return &Aggregator{LuxurySurcharge: luxurySurcharge}
}

// Aggregate never fails. Records it cannot interpret simply do not count
// towards spend or upcoming trips.
func (a *Aggregator) Aggregate(
	trips []db_models.TripPlan,
	rides []db_models.RideSearchSession,
	hotels []db_models.HotelBooking,
	today time.Time,
) DashboardStats {
	out := DashboardStats{
		TotalTrips:         len(trips),
		TotalRideBookings:  len(rides),
		TotalHotelBookings: len(hotels),
	}

	for _, h := range hotels {
		if pricing.IsValidAmount(h.TotalPrice) {
			out.TotalBudgetSpent += h.TotalPrice
		}
	}
	for _, r := range rides {
		if spend := r.Budget.Spend(); pricing.IsValidAmount(spend) {
			out.TotalBudgetSpent += spend
		}
	}
	for i := range trips {
		if trips[i].BudgetTier == db_models.BudgetLuxury {
			out.TotalBudgetSpent += a.LuxurySurcharge
		}
		if IsUpcoming(&trips[i], today) {
			out.UpcomingTrips++
		}
	}
	return out
}

var isoDate = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)

// IsUpcoming reports whether a trip starts after today. Trips without a start
// date fall back to the first date mentioned in day one's first activity,
// counted only when it is in the current year.
func IsUpcoming(trip *db_models.TripPlan, today time.Time) bool {
	ref := civil(today)
	if trip.StartDate != "" {
		start, err := pricing.ParseDate(trip.StartDate)
		return err == nil && start.After(ref)
	}

	day := trip.Day(1)
	if day == nil || len(day.Activities) == 0 {
		return false
	}
	details := day.Activities[0].PlaceDetails
	if !strings.Contains(details, strconv.Itoa(ref.Year())) {
		return false
	}
	m := isoDate.FindStringSubmatch(details)
	if m == nil {
		return false
	}
	d, err := pricing.ParseDate(m[1])
	return err == nil && d.After(ref)
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
