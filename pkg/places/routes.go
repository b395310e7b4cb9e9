package places

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"googlemaps.github.io/maps"
)

var ErrNoRoute = errors.New("places: no driving route found")

type Route struct {
	DistanceMeters int
	Duration       time.Duration
}

func (r Route) String() string {
	return fmt.Sprintf("%.0f km, about %.0f minutes by road", float64(r.DistanceMeters)/1000, r.Duration.Minutes())
}

// RouteEstimator measures the driving route between two free-text places.
type RouteEstimator interface {
	EstimateRoute(ctx context.Context, from, to string) (*Route, error)
}

type routeKey struct{ from, to string }

type routeEntry struct {
	route     Route
	expiresAt time.Time
}

// RouteCache keeps measured routes for a fixed time. Place pairs are
// directional.
type RouteCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	store map[routeKey]routeEntry
}

func NewRouteCache(ttl time.Duration) *RouteCache {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RouteCache{ttl: ttl, store: make(map[routeKey]routeEntry)}
}

func keyFor(from, to string) routeKey {
	return routeKey{strings.ToLower(strings.TrimSpace(from)), strings.ToLower(strings.TrimSpace(to))}
}

func (c *RouteCache) Get(from, to string) (Route, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.store[keyFor(from, to)]
	if !ok || time.Now().After(e.expiresAt) {
		return Route{}, false
	}
	return e.route, true
}

func (c *RouteCache) Set(from, to string, r Route) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[keyFor(from, to)] = routeEntry{route: r, expiresAt: time.Now().Add(c.ttl)}
}

// EstimateRoute asks the Distance Matrix API for a driving route inside
// Pakistan.
func (g *GooglePlaces) EstimateRoute(ctx context.Context, from, to string) (*Route, error) {
	if r, ok := g.routes.Get(from, to); ok {
		return &r, nil
	}
	resp, err := g.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{from},
		Destinations: []string{to},
		Mode:         maps.TravelModeDriving,
		Region:       "pk",
	})
	if err != nil {
		return nil, fmt.Errorf("distance matrix request failed: %w", err)
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return nil, ErrNoRoute
	}
	el := resp.Rows[0].Elements[0]
	if el.Status != "OK" || el.Distance.Meters <= 0 {
		return nil, ErrNoRoute
	}
	r := Route{DistanceMeters: el.Distance.Meters, Duration: el.Duration}
	g.routes.Set(from, to, r)
	return &r, nil
}

type NoRoutes struct{}

func (NoRoutes) EstimateRoute(context.Context, string, string) (*Route, error) { return nil, ErrNoRoute }
