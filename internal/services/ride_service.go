package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"tripplanner/internal/itinerary"
	"tripplanner/internal/models/db_models"
	"tripplanner/internal/models/request_models"
	"tripplanner/internal/models/response_models"
	"tripplanner/internal/repositories"
	"tripplanner/pkg/logger"
	mem "tripplanner/pkg/memcache"
	"tripplanner/pkg/metrics"
	"tripplanner/pkg/places"
	"tripplanner/pkg/utils"
)

const rideMaxOutputTokens = 2048

type RideServiceInterface interface {
	Search(ctx context.Context, session request_models.Session, req request_models.RideSearchRequest) (*response_models.RideSearchResponse, error)
	// GetOption returns a cached option from one of the caller's searches.
	GetOption(ctx context.Context, session request_models.Session, rideID, optionID string) (*db_models.RideOption, *db_models.RideSearchSession, error)
}

type RideService struct {
	oracle   utils.TextOracle
	rideRepo repositories.RideRepositoryInterface
	routes   places.RouteEstimator
	cache    mem.DraftCache
	ttl      time.Duration
	log      *logger.Logger
	now      func() time.Time
}

type cachedRides struct {
	Owner   string                 `json:"owner"`
	Options []db_models.RideOption `json:"options"`
}

func NewRideService(
	oracle utils.TextOracle,
	rideRepo repositories.RideRepositoryInterface,
	routes places.RouteEstimator,
	cache mem.DraftCache,
	ttl time.Duration,
	log *logger.Logger,
) RideServiceInterface {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if routes == nil {
		routes = places.NoRoutes{}
	}
	return &RideService{oracle: oracle, rideRepo: rideRepo, routes: routes, cache: cache, ttl: ttl, log: log, now: time.Now}
}

func rideCacheKey(rideID string) string { return "rides:" + rideID }

// ParseRideBudget reads a positive PKR amount. Empty and "unlimited" mean no
// limit.
func ParseRideBudget(s string) (db_models.RideBudget, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "unlimited") {
		return db_models.UnlimitedBudget(), nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || v <= 0 {
		return db_models.RideBudget{}, fmt.Errorf("%w: budget must be a positive number", utils.ErrInvalidInput)
	}
	return db_models.RideBudget{Amount: v}, nil
}

func (r *RideService) validate(req request_models.RideSearchRequest) (*db_models.RideSearchSession, error) {
	s := &db_models.RideSearchSession{
		Departure:      strings.TrimSpace(req.Departure),
		Destination:    strings.TrimSpace(req.Destination),
		NumberOfPeople: req.NumberOfPeople,
		TripID:         req.TripID,
	}
	if s.Departure == "" || s.Destination == "" {
		return nil, fmt.Errorf("%w: departure and destination are required", utils.ErrInvalidInput)
	}
	if s.NumberOfPeople == 0 {
		s.NumberOfPeople = 1
	}
	if s.NumberOfPeople < 1 {
		return nil, fmt.Errorf("%w: numberOfPeople must be at least 1", utils.ErrInvalidInput)
	}
	budget, err := ParseRideBudget(string(req.Budget))
	if err != nil {
		return nil, err
	}
	s.Budget = budget

	vehicle, ok := db_models.ParseVehicle(req.PreferredVehicle)
	if !ok {
		return nil, fmt.Errorf("%w: unknown vehicle type %q", utils.ErrInvalidInput, req.PreferredVehicle)
	}
	s.PreferredVehicle = vehicle

	limit := vehicle.Capacity()
	if vehicle == db_models.VehicleAny {
		limit = db_models.MaxCapacity()
	}
	if s.NumberOfPeople > limit {
		return nil, fmt.Errorf("%w: %d passengers for %s (max %d)", utils.ErrCapacityExceeded, s.NumberOfPeople, vehicle, limit)
	}
	return s, nil
}

func (r *RideService) Search(ctx context.Context, session request_models.Session, req request_models.RideSearchRequest) (*response_models.RideSearchResponse, error) {
	if session.IsZero() {
		return nil, utils.ErrUnauthorized
	}
	search, err := r.validate(req)
	if err != nil {
		return nil, err
	}

	now := r.now()
	search.ID = uuid.NewString()
	search.OwnerEmail = session.Email
	search.Timestamp = now.UTC()
	log := r.log.WithUser(session.Email).WithField("ride_id", search.ID)

	if err := r.rideRepo.SaveSearchSession(ctx, search); err != nil {
		log.WithError(err).Error("Failed to store ride search")
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	route, err := r.routes.EstimateRoute(ctx, search.Departure, search.Destination)
	if err != nil {
		if !errors.Is(err, places.ErrNoRoute) {
			log.WithError(err).Debug("Route estimate unavailable")
		}
		route = nil
	}

	raw, err := callOracle(ctx, r.oracle, "ride", &utils.GenerationRequest{
		Prompt:          BuildRidePrompt(search, now, route),
		JSONOutput:      true,
		JSONArray:       true,
		MaxOutputTokens: rideMaxOutputTokens,
	})
	if err != nil {
		return nil, err
	}

	result, err := itinerary.ParseRideOptions(raw)
	if err != nil {
		metrics.NormalizationFailures.WithLabelValues("ride", failureReason(err)).Inc()
		log.WithError(err).Warn("Ride output rejected")
		return nil, err
	}

	resp := &response_models.RideSearchResponse{RideID: search.ID, Options: []db_models.RideOption{}}
	if result.Warning != nil {
		resp.Warning = &response_models.RideWarning{Title: result.Warning.Title, Message: result.Warning.Message}
		return resp, nil
	}

	for i := range result.Options {
		result.Options[i].RideOptionID = uuid.NewString()
		result.Options[i].RideID = search.ID
	}
	resp.Options = result.Options

	payload, err := json.Marshal(cachedRides{Owner: session.Email, Options: result.Options})
	if err != nil {
		return nil, err
	}
	if err := r.cache.Put(ctx, rideCacheKey(search.ID), payload, r.ttl); err != nil {
		log.WithError(err).Error("Failed to cache ride options")
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	log.Infof("Found %d ride options", len(resp.Options))
	return resp, nil
}

func (r *RideService) GetOption(ctx context.Context, session request_models.Session, rideID, optionID string) (*db_models.RideOption, *db_models.RideSearchSession, error) {
	if session.IsZero() {
		return nil, nil, utils.ErrUnauthorized
	}
	search, err := r.rideRepo.GetSearchSession(ctx, rideID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if search == nil {
		return nil, nil, utils.ErrRideNotFound
	}
	if search.OwnerEmail != session.Email {
		return nil, nil, utils.ErrForbidden
	}

	payload, err := r.cache.Get(ctx, rideCacheKey(rideID))
	if errors.Is(err, mem.ErrMiss) {
		return nil, nil, utils.ErrRideOptionExpired
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	var cached cachedRides
	if err := json.Unmarshal(payload, &cached); err != nil {
		return nil, nil, utils.ErrRideOptionExpired
	}
	for i := range cached.Options {
		if cached.Options[i].RideOptionID == optionID {
			return &cached.Options[i], search, nil
		}
	}
	return nil, nil, utils.ErrRideOptionExpired
}
