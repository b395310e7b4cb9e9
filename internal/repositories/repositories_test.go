package repositories

import (
	"context"
	"strconv"
	"testing"
	"time"

	"tripplanner/internal/infra"
	"tripplanner/internal/models/db_models"
)

func TestTripRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTripRepository(infra.NewMemoryStore())

	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	for i, owner := range []string{"sara@example.com", "sara@example.com", "ali@example.com"} {
		trip := &db_models.TripPlan{
			ID:         strconv.Itoa(i + 1),
			OwnerEmail: owner,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
			BudgetTier: db_models.BudgetLuxury,
			HotelOptions: []db_models.HotelOption{
				{Name: "Serena", Rating: db_models.Unrated},
			},
		}
		if err := repo.SaveTrip(ctx, trip); err != nil {
			t.Fatalf("SaveTrip: %v", err)
		}
	}

	got, err := repo.GetTripByID(ctx, "1")
	if err != nil || got == nil {
		t.Fatalf("GetTripByID = %v, %v", got, err)
	}
	if got.HotelOptions[0].Rating.IsRated() {
		t.Fatalf("unrated sentinel lost in storage: %v", got.HotelOptions[0].Rating)
	}

	missing, err := repo.GetTripByID(ctx, "nope")
	if err != nil || missing != nil {
		t.Fatalf("missing trip = %v, %v", missing, err)
	}

	mine, err := repo.ListTripsByOwner(ctx, "sara@example.com")
	if err != nil || len(mine) != 2 {
		t.Fatalf("ListTripsByOwner = %d, %v", len(mine), err)
	}
	if !mine[0].CreatedAt.After(mine[1].CreatedAt) {
		t.Fatal("trips must be newest first")
	}
}

func TestRideRepositoryBudget(t *testing.T) {
	ctx := context.Background()
	repo := NewRideRepository(infra.NewMemoryStore())
	_ = repo.SaveSearchSession(ctx, &db_models.RideSearchSession{ID: "r1", OwnerEmail: "sara@example.com", Budget: db_models.UnlimitedBudget()})
	_ = repo.SaveSearchSession(ctx, &db_models.RideSearchSession{ID: "r2", OwnerEmail: "sara@example.com", Budget: db_models.RideBudget{Amount: 3000}})

	sessions, err := repo.ListSearchSessionsByOwner(ctx, "sara@example.com")
	if err != nil || len(sessions) != 2 {
		t.Fatalf("ListSearchSessionsByOwner = %d, %v", len(sessions), err)
	}
	if !sessions[0].Budget.Unlimited || sessions[1].Budget.Amount != 3000 {
		t.Fatalf("budgets = %+v / %+v", sessions[0].Budget, sessions[1].Budget)
	}
}

func TestBookingRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository(infra.NewMemoryStore())
	if err := repo.SaveHotelBooking(ctx, &db_models.HotelBooking{ID: "h1", OwnerEmail: "sara@example.com", TotalPrice: 127500}); err != nil {
		t.Fatalf("SaveHotelBooking: %v", err)
	}
	if err := repo.SaveRideBooking(ctx, &db_models.RideBooking{ID: "x1", OwnerEmail: "sara@example.com", TotalPrice: 1500}); err != nil {
		t.Fatalf("SaveRideBooking: %v", err)
	}
	b, err := repo.GetHotelBookingByID(ctx, "h1")
	if err != nil || b == nil || b.TotalPrice != 127500 {
		t.Fatalf("GetHotelBookingByID = %+v, %v", b, err)
	}
	rides, err := repo.ListRideBookingsByOwner(ctx, "sara@example.com")
	if err != nil || len(rides) != 1 {
		t.Fatalf("ListRideBookingsByOwner = %d, %v", len(rides), err)
	}
	if hotels, _ := repo.ListHotelBookingsByOwner(ctx, "ali@example.com"); len(hotels) != 0 {
		t.Fatalf("other owner sees %d bookings", len(hotels))
	}
}
