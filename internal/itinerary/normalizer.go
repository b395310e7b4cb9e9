// Package itinerary validates the model's trip JSON and reshapes it into a
// TripPlan that is safe to store and render.
package itinerary

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"tripplanner/internal/models/db_models"
	"tripplanner/internal/pricing"
)

var (
	ErrMalformedJSON = errors.New("model output is not valid JSON")
	ErrMissingField  = errors.New("required field missing")
	ErrInvalidDay    = errors.New("invalid itinerary day")
	ErrInvalidInput  = errors.New("invalid trip input")
)

const (
	PlaceholderImage   = "https://placehold.co/800x600?text=Image+Unavailable"
	NotAvailable       = "N/A"
	FreeEntry          = "Free"
	NoDetails          = "No details available"
	AnyTime            = "Anytime"
	DefaultMaxTripDays = 7
)

// TripInputs are the requester's choices that accompany the model output.
type TripInputs struct {
	Destination    string
	DurationDays   int
	BudgetTier     db_models.BudgetTier
	CompanionType  string
	NumberOfPeople int
	StartDate      string
	OwnerEmail     string
}

type Options struct {
	MaxTripDays      int
	HotelFeeOffset   float64
	PlaceholderImage string
}

type Normalizer struct {
	maxDays     int
	placeholder string
	rates       pricing.Extractor
}

func NewNormalizer(opts Options) *Normalizer {
	if opts.MaxTripDays <= 0 {
		opts.MaxTripDays = DefaultMaxTripDays
	}
	if opts.PlaceholderImage == "" {
		opts.PlaceholderImage = PlaceholderImage
	}
	return &Normalizer{
		maxDays:     opts.MaxTripDays,
		placeholder: opts.PlaceholderImage,
		rates:       pricing.HotelRates(opts.HotelFeeOffset),
	}
}

// ValidateInputs checks the requester's trip choices.
func (n *Normalizer) ValidateInputs(in TripInputs) error {
	switch {
	case strings.TrimSpace(in.Destination) == "":
		return fmt.Errorf("%w: destination is required", ErrInvalidInput)
	case in.DurationDays < 1 || in.DurationDays > n.maxDays:
		return fmt.Errorf("%w: durationDays must be between 1 and %d", ErrInvalidInput, n.maxDays)
	case in.NumberOfPeople < 1:
		return fmt.Errorf("%w: numberOfPeople must be at least 1", ErrInvalidInput)
	}
	if _, ok := db_models.ParseBudgetTier(string(in.BudgetTier)); !ok {
		return fmt.Errorf("%w: budget must be Cheap, Moderate or Luxury", ErrInvalidInput)
	}
	if _, ok := db_models.ParseCompanion(in.CompanionType); !ok {
		return fmt.Errorf("%w: unknown companion type %q", ErrInvalidInput, in.CompanionType)
	}
	if in.StartDate != "" {
		if _, err := pricing.ParseDate(in.StartDate); err != nil {
			return fmt.Errorf("%w: startDate must be YYYY-MM-DD", ErrInvalidInput)
		}
	}
	return nil
}

// Normalize turns raw model text into a TripPlan. The result has no ID or
// creation time; the caller assigns those when persisting. The same input
// always yields the same plan.
func (n *Normalizer) Normalize(raw string, in TripInputs) (*db_models.TripPlan, error) {
	if err := n.ValidateInputs(in); err != nil {
		return nil, err
	}

	cleaned := ExtractJSON(raw)
	var probe json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	root, ok := asObject(probe)
	if !ok {
		return nil, fmt.Errorf("%w: top level must be an object", ErrMalformedJSON)
	}
	root = unwrap(root)

	hotelsRaw, ok := root.get("hotelOptions", "hotels", "hotelList")
	if !ok {
		return nil, fmt.Errorf("%w: hotelOptions", ErrMissingField)
	}
	hotelItems, ok := asArray(hotelsRaw)
	if !ok {
		return nil, fmt.Errorf("%w: hotelOptions must be a list", ErrMissingField)
	}
	itineraryRaw, ok := root.get("itinerary", "dailyPlan", "days")
	if !ok {
		return nil, fmt.Errorf("%w: itinerary", ErrMissingField)
	}

	budget, _ := db_models.ParseBudgetTier(string(in.BudgetTier))
	companion, _ := db_models.ParseCompanion(in.CompanionType)
	destination := strings.TrimSpace(in.Destination)

	plan := &db_models.TripPlan{
		TripName:       root.str("tripName", "name", "title"),
		Destination:    destination,
		DurationDays:   in.DurationDays,
		BudgetTier:     budget,
		CompanionType:  companion,
		NumberOfPeople: in.NumberOfPeople,
		StartDate:      in.StartDate,
		OwnerEmail:     in.OwnerEmail,
		HotelOptions:   make([]db_models.HotelOption, 0, len(hotelItems)),
	}
	if plan.TripName == "" {
		plan.TripName = fmt.Sprintf("%d-day trip to %s", in.DurationDays, destination)
	}

	for i, item := range hotelItems {
		h, err := n.hotel(item)
		if err != nil {
			return nil, fmt.Errorf("hotelOptions[%d]: %w", i, err)
		}
		plan.HotelOptions = append(plan.HotelOptions, h)
	}

	days, err := n.days(itineraryRaw, in.DurationDays, destination)
	if err != nil {
		return nil, err
	}
	plan.Itinerary = days
	return plan, nil
}

// unwrap descends into a single wrapper object such as {"tripData": {...}}
// when the expected keys are not at the top level.
func unwrap(root object) object {
	if _, ok := root.get("hotelOptions", "hotels", "itinerary"); ok {
		return root
	}
	for _, key := range []string{"tripData", "travelPlan", "trip", "plan"} {
		if v, ok := root.get(key); ok {
			if inner, ok := asObject(v); ok {
				return inner
			}
		}
	}
	return root
}

func (n *Normalizer) hotel(raw json.RawMessage) (db_models.HotelOption, error) {
	o, ok := asObject(raw)
	if !ok {
		return db_models.HotelOption{}, fmt.Errorf("%w: hotel entry must be an object", ErrMissingField)
	}
	name := o.str("hotelName", "name")
	if name == "" {
		return db_models.HotelOption{}, fmt.Errorf("%w: hotelName", ErrMissingField)
	}

	priceText := o.str("price", "priceRange", "priceRangeText", "priceRangePerNight")
	fallback := o.str("pricePerNight", "nightlyPrice")

	h := db_models.HotelOption{
		Name:           name,
		Address:        orDefault(o.str("hotelAddress", "address"), NotAvailable),
		PriceRangeText: orDefault(priceText, NotAvailable),
		ImageURL:       n.image(o.str("hotelImageUrl", "imageUrl", "image", "hotelImage")),
		Description:    orDefault(o.str("description", "details"), NoDetails),
	}
	if rate, err := n.rates.ExtractWithFallback(priceText, fallback); err == nil {
		h.NightlyRate = &rate
	}
	r, present := o.get("rating", "hotelRating", "stars")
	h.Rating = asRating(r, present)
	g, present := o.get("geoCoordinates", "coordinates", "geo", "location")
	h.Geo = asGeo(g, present)
	return h, nil
}

var dayIndexPattern = regexp.MustCompile(`\d+`)

type indexedDay struct {
	index int
	raw   json.RawMessage
}

func (n *Normalizer) days(raw json.RawMessage, duration int, destination string) ([]db_models.DayPlan, error) {
	var entries []indexedDay

	// Raw keys, not asObject: "day1" and "Day 1" both have to reach the
	// duplicate check below.
	if o, ok := rawObject(raw); ok {
		for key, v := range o {
			m := dayIndexPattern.FindString(key)
			if m == "" {
				return nil, fmt.Errorf("%w: key %q has no day number", ErrInvalidDay, key)
			}
			idx, err := strconv.Atoi(m)
			if err != nil {
				return nil, fmt.Errorf("%w: key %q", ErrInvalidDay, key)
			}
			entries = append(entries, indexedDay{index: idx, raw: v})
		}
	} else if items, ok := asArray(raw); ok {
		for i, v := range items {
			idx := i + 1
			if d, ok := asObject(v); ok {
				if dv, ok := d.get("day", "dayNumber"); ok {
					if f, ok := asFloat(dv); ok {
						idx = int(f)
					}
				}
			}
			entries = append(entries, indexedDay{index: idx, raw: v})
		}
	} else {
		return nil, fmt.Errorf("%w: itinerary must be an object keyed by day", ErrMissingField)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].index < entries[j].index })

	out := make([]db_models.DayPlan, 0, len(entries))
	for i, e := range entries {
		if e.index < 1 || e.index > duration {
			return nil, fmt.Errorf("%w: day %d is outside 1..%d", ErrInvalidDay, e.index, duration)
		}
		if i > 0 && entries[i-1].index == e.index {
			return nil, fmt.Errorf("%w: day %d appears twice", ErrInvalidDay, e.index)
		}
		day, err := n.day(e.index, e.raw, destination)
		if err != nil {
			return nil, err
		}
		out = append(out, day)
	}
	if len(out) != duration {
		return nil, fmt.Errorf("%w: expected %d days, got %d", ErrInvalidDay, duration, len(out))
	}
	return out, nil
}

func (n *Normalizer) day(index int, raw json.RawMessage, destination string) (db_models.DayPlan, error) {
	day := db_models.DayPlan{Day: index, Theme: NotAvailable, BestTimeToVisit: AnyTime}

	var activityItems []json.RawMessage
	if o, ok := asObject(raw); ok {
		day.Theme = orDefault(o.str("theme", "title"), NotAvailable)
		day.BestTimeToVisit = orDefault(o.str("bestTimeToVisit", "bestTime"), AnyTime)
		if v, ok := o.get("activities", "plan", "places", "schedule"); ok {
			activityItems, _ = asArray(v)
		}
	} else if items, ok := asArray(raw); ok {
		activityItems = items
	} else {
		return day, fmt.Errorf("%w: day %d must be an object", ErrInvalidDay, index)
	}

	day.Activities = make([]db_models.Activity, 0, len(activityItems))
	for i, item := range activityItems {
		a, err := n.activity(item, day.BestTimeToVisit, destination)
		if err != nil {
			return day, fmt.Errorf("day %d activity %d: %w", index, i, err)
		}
		day.Activities = append(day.Activities, a)
	}
	return day, nil
}

func (n *Normalizer) activity(raw json.RawMessage, dayBestTime, destination string) (db_models.Activity, error) {
	o, ok := asObject(raw)
	if !ok {
		return db_models.Activity{}, fmt.Errorf("%w: activity must be an object", ErrMissingField)
	}
	name := o.str("placeName", "name", "place", "activity")
	if name == "" {
		return db_models.Activity{}, fmt.Errorf("%w: placeName", ErrMissingField)
	}
	a := db_models.Activity{
		PlaceName:       name,
		PlaceDetails:    orDefault(o.str("placeDetails", "details", "description"), NoDetails),
		ImageURL:        n.image(o.str("placeImageUrl", "imageUrl", "image", "placeImage")),
		TicketPricing:   orDefault(o.str("ticketPricing", "ticketPrice", "entryFee"), FreeEntry),
		TravelTime:      orDefault(o.str("travelTimeFromHotel", "timeTravel", "travelTime", "timeToTravel"), NotAvailable),
		BestTimeToVisit: orDefault(o.str("bestTimeToVisit", "bestTime", "time"), dayBestTime),
		MapsURL:         "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(name+", "+destination),
	}
	r, present := o.get("rating")
	a.Rating = asRating(r, present)
	g, present := o.get("geoCoordinates", "coordinates", "geo", "location")
	a.Geo = asGeo(g, present)
	return a, nil
}

func (n *Normalizer) image(u string) string {
	if u == "" || NeedsImage(u) {
		return n.placeholder
	}
	parsed, err := url.Parse(u)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return n.placeholder
	}
	return u
}

// NeedsImage reports whether u is empty or a placeholder that a photo lookup
// should replace.
func NeedsImage(u string) bool {
	u = strings.ToLower(strings.TrimSpace(u))
	return u == "" || u == "n/a" || strings.Contains(u, "placehold") || strings.Contains(u, "example.com")
}

func orDefault(s, def string) string {
	if s == "" || strings.EqualFold(s, "null") {
		return def
	}
	return s
}
