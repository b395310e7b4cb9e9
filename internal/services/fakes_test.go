package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"tripplanner/internal/infra"
	"tripplanner/internal/itinerary"
	"tripplanner/internal/models/db_models"
	"tripplanner/internal/models/request_models"
	"tripplanner/internal/pricing"
	"tripplanner/internal/repositories"
	"tripplanner/pkg/logger"
	mem "tripplanner/pkg/memcache"
	"tripplanner/pkg/places"
	"tripplanner/pkg/utils"
)

var (
	sara = request_models.Session{Email: "sara@example.com", Name: "Sara Khan"}
	ali  = request_models.Session{Email: "ali@example.com", Name: "Ali Raza"}
)

type fakeOracle struct {
	mu       sync.Mutex
	replies  []string
	err      error
	requests []*utils.GenerationRequest
}

func (f *fakeOracle) Generate(_ context.Context, req *utils.GenerationRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", errors.New("no reply queued")
	}
	r := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return r, nil
}

func (f *fakeOracle) Close() error { return nil }

func (f *fakeOracle) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type fakePhotos struct{ url string }

func (f fakePhotos) FindPhoto(context.Context, string) (string, error) {
	if f.url == "" {
		return "", places.ErrNoPhoto
	}
	return f.url, nil
}

type fakeRoutes struct{ route *places.Route }

func (f fakeRoutes) EstimateRoute(context.Context, string, string) (*places.Route, error) {
	if f.route == nil {
		return nil, places.ErrNoRoute
	}
	return f.route, nil
}

type fakeProvider struct {
	mu      sync.Mutex
	created []*CheckoutRequest
	paid    map[string]bool
	err     error
	paidErr error
}

func (f *fakeProvider) CreateCheckoutSession(_ context.Context, req *CheckoutRequest) (*CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, req)
	id := fmt.Sprintf("cs_test_%d", len(f.created))
	return &CheckoutSession{ID: id, URL: "https://checkout.stripe.test/" + id}, nil
}

func (f *fakeProvider) IsSessionPaid(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.paidErr != nil {
		return false, f.paidErr
	}
	return f.paid[id], nil
}

func (f *fakeProvider) failLookups(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paidErr = err
}

func (f *fakeProvider) markPaid(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.paid == nil {
		f.paid = map[string]bool{}
	}
	f.paid[id] = true
}

type sentMail struct {
	to          string
	subject     string
	attachments []Attachment
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (f *fakeMailer) SendBookingConfirmation(to, subject, _, _, _ string, attachments ...Attachment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to: to, subject: subject, attachments: attachments})
	return nil
}

type fakeVouchers struct{}

func (fakeVouchers) HotelVoucher(b *db_models.HotelBooking) ([]byte, error) {
	return []byte("%PDF hotel " + b.ID), nil
}

func (fakeVouchers) RideVoucher(b *db_models.RideBooking) ([]byte, error) {
	return []byte("%PDF ride " + b.ID), nil
}

const twoDayTrip = "```json\n" + `{
  "tripName": "Lahore for Two",
  "hotelOptions": [
    {"hotelName": "Pearl Continental", "hotelAddress": "The Mall, Lahore", "price": "25,000 - 50,000",
     "hotelImageUrl": "https://placehold.co/800x600", "rating": 4.5},
    {"hotelName": "Budget Inn", "price": "Contact hotel"}
  ],
  "itinerary": {
    "day1": {"theme": "Old City", "activities": [{"placeName": "Badshahi Mosque", "placeImageUrl": "https://images.example.org/badshahi.jpg"}]},
    "day2": {"theme": "Gardens", "activities": [{"placeName": "Shalimar Gardens"}]}
  }
}` + "\n```"

func tripRequest() request_models.GenerateTripRequest {
	return request_models.GenerateTripRequest{
		Destination:   "Lahore, Pakistan",
		DurationDays:  2,
		BudgetTier:    "moderate",
		CompanionType: "a couple",
	}
}

// dateFromToday is a YYYY-MM-DD date n days after today in Pakistan time.
func dateFromToday(n int) string {
	return utils.Today(utils.Location("")).AddDate(0, 0, n).Format(pricing.DateLayout)
}

type fixture struct {
	store    *infra.MemoryStore
	drafts   *mem.MemoryDrafts
	oracle   *fakeOracle
	provider *fakeProvider
	mailer   *fakeMailer

	tripRepo    repositories.TripRepositoryInterface
	rideRepo    repositories.RideRepositoryInterface
	bookingRepo repositories.BookingRepositoryInterface

	trips    TripServiceInterface
	rides    RideServiceInterface
	payments PaymentServiceInterface
	bookings BookingServiceInterface
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewNop()
	f := &fixture{
		store:    infra.NewMemoryStore(),
		drafts:   mem.NewMemoryDrafts(),
		oracle:   &fakeOracle{},
		provider: &fakeProvider{},
		mailer:   &fakeMailer{},
	}
	f.tripRepo = repositories.NewTripRepository(f.store)
	f.rideRepo = repositories.NewRideRepository(f.store)
	f.bookingRepo = repositories.NewBookingRepository(f.store)

	normalizer := itinerary.NewNormalizer(itinerary.Options{MaxTripDays: 7, HotelFeeOffset: 5000})
	f.trips = NewTripService(f.oracle, normalizer, fakePhotos{url: "https://photos.example.org/p.jpg"}, f.tripRepo, log, nil)
	f.rides = NewRideService(f.oracle, f.rideRepo, fakeRoutes{}, f.drafts, time.Hour, log)
	f.payments = NewPaymentService(f.provider, PaymentConfig{
		SuccessURL:     "https://app.test/success",
		CancelURL:      "https://app.test/cancel",
		RideSuccessURL: "https://app.test/ride-success",
		RideCancelURL:  "https://app.test/ride-cancel",
		PKRPerUSD:      291,
	}, log)
	f.bookings = NewBookingService(f.trips, f.rides, f.bookingRepo, f.payments, f.drafts, fakeVouchers{}, f.mailer,
		BookingConfig{HotelFeeOffset: 5000, DraftTTL: time.Hour, AppBaseURL: "https://app.test"}, log)
	return f
}

// seedTrip generates and stores a two-day Lahore trip owned by sara.
func (f *fixture) seedTrip(t *testing.T) *db_models.TripPlan {
	t.Helper()
	f.oracle.replies = []string{twoDayTrip}
	trip, err := f.trips.GenerateTrip(context.Background(), sara, tripRequest())
	if err != nil {
		t.Fatalf("GenerateTrip: %v", err)
	}
	return trip
}
