package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"tripplanner/internal/itinerary"
	"tripplanner/internal/models/db_models"
	"tripplanner/internal/models/request_models"
	"tripplanner/internal/pricing"
	"tripplanner/internal/repositories"
	"tripplanner/pkg/logger"
	"tripplanner/pkg/metrics"
	"tripplanner/pkg/places"
	"tripplanner/pkg/utils"
)

const maxTripAttempts = 2

type TripServiceInterface interface {
	GenerateTrip(ctx context.Context, session request_models.Session, req request_models.GenerateTripRequest) (*db_models.TripPlan, error)
	GetTrip(ctx context.Context, session request_models.Session, tripID string) (*db_models.TripPlan, error)
	ListTrips(ctx context.Context, session request_models.Session) ([]db_models.TripPlan, error)
}

type TripService struct {
	oracle     utils.TextOracle
	normalizer *itinerary.Normalizer
	photos     places.PhotoFinder
	tripRepo   repositories.TripRepositoryInterface
	log        *logger.Logger
	loc        *time.Location
	now        func() time.Time

	inFlight sync.Map
}

func NewTripService(
	oracle utils.TextOracle,
	normalizer *itinerary.Normalizer,
	photos places.PhotoFinder,
	tripRepo repositories.TripRepositoryInterface,
	log *logger.Logger,
	loc *time.Location,
) TripServiceInterface {
	if photos == nil {
		photos = places.NoPhotos{}
	}
	if loc == nil {
		loc = utils.Location("")
	}
	return &TripService{
		oracle:     oracle,
		normalizer: normalizer,
		photos:     photos,
		tripRepo:   tripRepo,
		log:        log,
		loc:        loc,
		now:        time.Now,
	}
}

func (t *TripService) GenerateTrip(ctx context.Context, session request_models.Session, req request_models.GenerateTripRequest) (*db_models.TripPlan, error) {
	if session.IsZero() {
		return nil, utils.ErrUnauthorized
	}

	in, err := t.tripInputs(session, req)
	if err != nil {
		return nil, err
	}

	if _, busy := t.inFlight.LoadOrStore(session.Email, struct{}{}); busy {
		return nil, utils.ErrRequestInFlight
	}
	defer t.inFlight.Delete(session.Email)

	log := t.log.WithUser(session.Email).WithField("destination", in.Destination)
	prompt := BuildTripPrompt(in.Destination, in.DurationDays, in.NumberOfPeople, in.CompanionType, in.BudgetTier)

	var plan *db_models.TripPlan
	for attempt := 1; attempt <= maxTripAttempts; attempt++ {
		raw, err := callOracle(ctx, t.oracle, "trip", &utils.GenerationRequest{
			Prompt:     prompt,
			Examples:   []utils.PromptExample{tripExample},
			JSONOutput: true,
		})
		if err != nil {
			return nil, err
		}

		plan, err = t.normalizer.Normalize(raw, in)
		if err == nil {
			break
		}
		metrics.NormalizationFailures.WithLabelValues("trip", failureReason(err)).Inc()
		log.WithError(err).Warnf("Trip output rejected on attempt %d/%d", attempt, maxTripAttempts)
		if attempt == maxTripAttempts {
			return nil, err
		}
	}

	t.enrichImages(ctx, plan)

	now := t.now()
	plan.ID = utils.TripID(now)
	plan.CreatedAt = now.UTC()
	if err := t.tripRepo.SaveTrip(ctx, plan); err != nil {
		log.WithError(err).Error("Failed to store trip")
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	metrics.TripsGenerated.Inc()
	log.WithField("trip_id", plan.ID).Info("Trip generated")
	return plan, nil
}

func (t *TripService) tripInputs(session request_models.Session, req request_models.GenerateTripRequest) (itinerary.TripInputs, error) {
	tier, _ := db_models.ParseBudgetTier(req.BudgetTier)
	companion, _ := db_models.ParseCompanion(req.CompanionType)

	in := itinerary.TripInputs{
		Destination:    strings.TrimSpace(req.Destination),
		DurationDays:   req.DurationDays,
		BudgetTier:     tier,
		CompanionType:  companion,
		NumberOfPeople: req.NumberOfPeople,
		StartDate:      strings.TrimSpace(req.StartDate),
		OwnerEmail:     session.Email,
	}
	if tier == "" {
		in.BudgetTier = db_models.BudgetTier(req.BudgetTier)
	}
	if companion == "" {
		in.CompanionType = req.CompanionType
	}
	if in.NumberOfPeople == 0 {
		for _, c := range db_models.Companions {
			if c.Title == companion {
				in.NumberOfPeople = c.MinPeople
			}
		}
	}

	if err := t.normalizer.ValidateInputs(in); err != nil {
		return in, err
	}
	if in.StartDate != "" {
		start, _ := pricing.ParseDate(in.StartDate)
		if start.Before(utils.Today(t.loc)) {
			return in, fmt.Errorf("%w: startDate %s", utils.ErrDateInPast, in.StartDate)
		}
	}
	return in, nil
}

// enrichImages swaps placeholder images for place photos. Lookups are best
// effort.
func (t *TripService) enrichImages(ctx context.Context, plan *db_models.TripPlan) {
	lookup := func(query string) (string, bool) {
		u, err := t.photos.FindPhoto(ctx, query)
		if err != nil {
			if !errors.Is(err, places.ErrNoPhoto) {
				t.log.WithError(err).WithField("query", query).Debug("Photo lookup failed")
			}
			return "", false
		}
		return u, true
	}

	for i := range plan.HotelOptions {
		h := &plan.HotelOptions[i]
		if itinerary.NeedsImage(h.ImageURL) {
			if u, ok := lookup(h.Name + " " + plan.Destination); ok {
				h.ImageURL = u
			}
		}
	}
	for d := range plan.Itinerary {
		for a := range plan.Itinerary[d].Activities {
			act := &plan.Itinerary[d].Activities[a]
			if itinerary.NeedsImage(act.ImageURL) {
				if u, ok := lookup(act.PlaceName + " " + plan.Destination); ok {
					act.ImageURL = u
				}
			}
		}
	}
}

func (t *TripService) GetTrip(ctx context.Context, session request_models.Session, tripID string) (*db_models.TripPlan, error) {
	if session.IsZero() {
		return nil, utils.ErrUnauthorized
	}
	trip, err := t.tripRepo.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	if trip.OwnerEmail != session.Email {
		return nil, utils.ErrForbidden
	}
	return trip, nil
}

func (t *TripService) ListTrips(ctx context.Context, session request_models.Session) ([]db_models.TripPlan, error) {
	if session.IsZero() {
		return nil, utils.ErrUnauthorized
	}
	trips, err := t.tripRepo.ListTripsByOwner(ctx, session.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return trips, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, itinerary.ErrMalformedJSON):
		return "malformed_json"
	case errors.Is(err, itinerary.ErrMissingField):
		return "missing_field"
	case errors.Is(err, itinerary.ErrInvalidDay):
		return "invalid_day"
	default:
		return "other"
	}
}
