package places

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"googlemaps.github.io/maps"
)

var ErrNoPhoto = errors.New("places: no photo found")

// PhotoFinder returns a displayable photo URL for a free-text place query.
type PhotoFinder interface {
	FindPhoto(ctx context.Context, query string) (string, error)
}

const photoEndpoint = "https://maps.googleapis.com/maps/api/place/photo"

type GooglePlaces struct {
	client   *maps.Client
	apiKey   string
	maxWidth int
	routes   *RouteCache
}

func NewGooglePlaces(apiKey string, maxWidth int) (*GooglePlaces, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}
	if maxWidth <= 0 {
		maxWidth = 800
	}
	return &GooglePlaces{client: client, apiKey: apiKey, maxWidth: maxWidth, routes: NewRouteCache(0)}, nil
}

func (g *GooglePlaces) FindPhoto(ctx context.Context, query string) (string, error) {
	resp, err := g.client.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		return "", fmt.Errorf("place search request failed: %w", err)
	}
	for _, result := range resp.Results {
		if len(result.Photos) == 0 || result.Photos[0].PhotoReference == "" {
			continue
		}
		return g.photoURL(result.Photos[0].PhotoReference), nil
	}
	return "", ErrNoPhoto
}

func (g *GooglePlaces) photoURL(ref string) string {
	q := url.Values{}
	q.Set("maxwidth", strconv.Itoa(g.maxWidth))
	q.Set("photo_reference", ref)
	q.Set("key", g.apiKey)
	return photoEndpoint + "?" + q.Encode()
}

// NoPhotos is used when no Maps key is configured; every lookup misses.
type NoPhotos struct{}

func (NoPhotos) FindPhoto(context.Context, string) (string, error) { return "", ErrNoPhoto }
