package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tripplanner/internal/itinerary"
	"tripplanner/internal/models/request_models"
	"tripplanner/pkg/utils"
)

func TestGenerateTripStoresNormalizedPlan(t *testing.T) {
	f := newFixture(t)
	trip := f.seedTrip(t)

	if trip.ID == "" || trip.CreatedAt.IsZero() {
		t.Fatalf("id and creation time must be assigned: %+v", trip)
	}
	if trip.NumberOfPeople != 2 || trip.CompanionType != "A Couple" || trip.BudgetTier != "Moderate" {
		t.Fatalf("inputs not canonicalized: %+v", trip)
	}
	if got := trip.HotelOptions[0].ImageURL; got != "https://photos.example.org/p.jpg" {
		t.Fatalf("placeholder hotel image not enriched: %q", got)
	}
	if got := trip.Day(1).Activities[0].ImageURL; got != "https://images.example.org/badshahi.jpg" {
		t.Fatalf("real image replaced: %q", got)
	}
	if got := trip.Day(2).Activities[0].ImageURL; got != "https://photos.example.org/p.jpg" {
		t.Fatalf("missing activity image not enriched: %q", got)
	}

	req := f.oracle.requests[0]
	if !req.JSONOutput || len(req.Examples) != 1 {
		t.Fatalf("trip request must ask for JSON with one example: %+v", req)
	}
	if !strings.Contains(req.Prompt, "Lahore, Pakistan, for 2 Days for 2 Number of People for A Couple") {
		t.Fatalf("prompt = %q", req.Prompt)
	}

	stored, err := f.trips.GetTrip(context.Background(), sara, trip.ID)
	if err != nil || stored.TripName != "Lahore for Two" {
		t.Fatalf("GetTrip = %+v, %v", stored, err)
	}
	list, err := f.trips.ListTrips(context.Background(), sara)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListTrips = %d, %v", len(list), err)
	}
}

func TestGenerateTripRetriesRejectedOutput(t *testing.T) {
	f := newFixture(t)
	f.oracle.replies = []string{"Sorry, I cannot help with that.", twoDayTrip}
	if _, err := f.trips.GenerateTrip(context.Background(), sara, tripRequest()); err != nil {
		t.Fatalf("GenerateTrip: %v", err)
	}
	if f.oracle.calls() != 2 {
		t.Fatalf("oracle calls = %d, want 2", f.oracle.calls())
	}

	f = newFixture(t)
	f.oracle.replies = []string{"still not json"}
	_, err := f.trips.GenerateTrip(context.Background(), sara, tripRequest())
	if !errors.Is(err, itinerary.ErrMalformedJSON) {
		t.Fatalf("err = %v, want ErrMalformedJSON", err)
	}
	if list, _ := f.trips.ListTrips(context.Background(), sara); len(list) != 0 {
		t.Fatal("rejected output must not be stored")
	}
}

func TestGenerateTripValidatesBeforeCallingOracle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bad := tripRequest()
	bad.DurationDays = 9
	if _, err := f.trips.GenerateTrip(ctx, sara, bad); !errors.Is(err, itinerary.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	past := tripRequest()
	past.StartDate = dateFromToday(-1)
	if _, err := f.trips.GenerateTrip(ctx, sara, past); !errors.Is(err, utils.ErrDateInPast) {
		t.Fatalf("err = %v, want ErrDateInPast", err)
	}
	if _, err := f.trips.GenerateTrip(ctx, request_models.Session{}, tripRequest()); !errors.Is(err, utils.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if f.oracle.calls() != 0 {
		t.Fatalf("oracle called %d times for invalid input", f.oracle.calls())
	}
}

func TestGenerateTripRejectsConcurrentRequest(t *testing.T) {
	f := newFixture(t)
	svc := f.trips.(*TripService)
	svc.inFlight.Store(sara.Email, struct{}{})

	if _, err := f.trips.GenerateTrip(context.Background(), sara, tripRequest()); !errors.Is(err, utils.ErrRequestInFlight) {
		t.Fatalf("err = %v, want ErrRequestInFlight", err)
	}
	svc.inFlight.Delete(sara.Email)
	f.oracle.replies = []string{twoDayTrip}
	if _, err := f.trips.GenerateTrip(context.Background(), sara, tripRequest()); err != nil {
		t.Fatalf("after release: %v", err)
	}
}

func TestGenerateTripOracleFailure(t *testing.T) {
	f := newFixture(t)
	f.oracle.err = errors.New("quota exceeded")
	if _, err := f.trips.GenerateTrip(context.Background(), sara, tripRequest()); !errors.Is(err, utils.ErrOracleUnavailable) {
		t.Fatalf("err = %v, want ErrOracleUnavailable", err)
	}
}

func TestGetTripOwnership(t *testing.T) {
	f := newFixture(t)
	trip := f.seedTrip(t)
	ctx := context.Background()

	if _, err := f.trips.GetTrip(ctx, ali, trip.ID); !errors.Is(err, utils.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if _, err := f.trips.GetTrip(ctx, sara, "404"); !errors.Is(err, utils.ErrTripNotFound) {
		t.Fatalf("err = %v, want ErrTripNotFound", err)
	}
}
