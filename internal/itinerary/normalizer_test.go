package itinerary

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"tripplanner/internal/models/db_models"
)

const sampleOutput = "Here is the itinerary:\n```json\n" + `{
  "tripName": "Lahore Getaway",
  "hotelOptions": [
    {
      "hotelName": "Pearl Continental",
      "hotelAddress": "Shahrah-e-Quaid-e-Azam, Lahore",
      "price": "25,000 - 50,000",
      "hotelImageUrl": "",
      "geoCoordinates": {"latitude": 31.5546, "longitude": 74.3293},
      "rating": "4.5",
      "description": "Five star hotel on the Mall"
    },
    {
      "hotel_name": "Budget Inn",
      "price": "Contact hotel",
      "rating": 0,
      "geoCoordinates": "31.52, 74.35"
    }
  ],
  "itinerary": {
    "day3": {"theme": "Food Street", "activities": [{"placeName": "Fort Road Food Street", "ticketPricing": "", "rating": 4.2}]},
    "Day 1": {
      "theme": "Old City",
      "bestTimeToVisit": "Morning",
      "activities": [
        {"placeName": "Badshahi Mosque", "placeDetails": "Visit on 2026-11-02 before noon", "placeImageUrl": "https://images.example.org/badshahi.jpg", "timeTravel": "15 mins"},
        {"placeName": "Lahore Fort"}
      ]
    },
    "day_2": {"theme": "Gardens", "activities": []}
  }
}` + "\n```"

func sampleInputs() TripInputs {
	return TripInputs{
		Destination:    "Lahore, Pakistan",
		DurationDays:   3,
		BudgetTier:     db_models.BudgetModerate,
		CompanionType:  "A Couple",
		NumberOfPeople: 2,
		OwnerEmail:     "sara@example.com",
	}
}

func newTestNormalizer() *Normalizer {
	return NewNormalizer(Options{MaxTripDays: 7, HotelFeeOffset: 5000})
}

func TestNormalizeSortsDaysAndDefaults(t *testing.T) {
	plan, err := newTestNormalizer().Normalize(sampleOutput, sampleInputs())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if plan.TripName != "Lahore Getaway" || plan.DurationDays != 3 || plan.OwnerEmail != "sara@example.com" {
		t.Fatalf("unexpected metadata: %+v", plan)
	}
	if len(plan.Itinerary) != 3 {
		t.Fatalf("got %d days, want 3", len(plan.Itinerary))
	}
	for i, want := range []string{"Old City", "Gardens", "Food Street"} {
		if plan.Itinerary[i].Day != i+1 || plan.Itinerary[i].Theme != want {
			t.Fatalf("day %d = %d/%q, want %d/%q", i, plan.Itinerary[i].Day, plan.Itinerary[i].Theme, i+1, want)
		}
	}

	pc := plan.HotelOptions[0]
	if pc.NightlyRate == nil || *pc.NightlyRate != 42500 {
		t.Fatalf("nightly rate = %v, want 42500", pc.NightlyRate)
	}
	if pc.ImageURL != PlaceholderImage {
		t.Fatalf("missing image should default to placeholder, got %q", pc.ImageURL)
	}
	if pc.Rating != 4.5 {
		t.Fatalf("rating = %v, want 4.5", pc.Rating)
	}
	if pc.Geo == nil || pc.Geo.Latitude != 31.5546 {
		t.Fatalf("geo = %+v", pc.Geo)
	}

	inn := plan.HotelOptions[1]
	if inn.Name != "Budget Inn" {
		t.Fatalf("snake_case key not matched: %q", inn.Name)
	}
	if inn.NightlyRate != nil {
		t.Fatalf("unparseable price must leave the rate absent, got %v", *inn.NightlyRate)
	}
	if inn.Address != NotAvailable || inn.Rating.IsRated() {
		t.Fatalf("defaults not applied: %+v", inn)
	}
	if inn.Geo == nil || inn.Geo.Longitude != 74.35 {
		t.Fatalf("string coordinates not parsed: %+v", inn.Geo)
	}

	day1 := plan.Day(1)
	mosque := day1.Activities[0]
	if mosque.TravelTime != "15 mins" || mosque.TicketPricing != FreeEntry {
		t.Fatalf("activity fields: %+v", mosque)
	}
	if mosque.ImageURL != "https://images.example.org/badshahi.jpg" {
		t.Fatalf("valid image replaced: %q", mosque.ImageURL)
	}
	fort := day1.Activities[1]
	if fort.PlaceDetails != NoDetails || fort.BestTimeToVisit != "Morning" || fort.Rating.IsRated() {
		t.Fatalf("activity defaults: %+v", fort)
	}
	if !strings.Contains(fort.MapsURL, "Lahore+Fort") {
		t.Fatalf("maps url = %q", fort.MapsURL)
	}
	if got := plan.Day(3).Activities[0].TicketPricing; got != FreeEntry {
		t.Fatalf("empty ticket pricing = %q, want Free", got)
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	n := newTestNormalizer()
	a, err := n.Normalize(sampleOutput, sampleInputs())
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	b, err := n.Normalize(sampleOutput, sampleInputs())
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("normalizing the same output twice produced different plans")
	}
}

func TestNormalizeRejectsNonJSON(t *testing.T) {
	plan, err := newTestNormalizer().Normalize("not json", sampleInputs())
	if !errors.Is(err, ErrMalformedJSON) {
		t.Fatalf("err = %v, want ErrMalformedJSON", err)
	}
	if plan != nil {
		t.Fatal("no plan may be returned on failure")
	}
	if _, err := newTestNormalizer().Normalize(`{"hotelOptions": [`, sampleInputs()); !errors.Is(err, ErrMalformedJSON) {
		t.Fatalf("truncated JSON: err = %v", err)
	}
	if _, err := newTestNormalizer().Normalize(`[1, 2]`, sampleInputs()); !errors.Is(err, ErrMalformedJSON) {
		t.Fatalf("array top level: err = %v", err)
	}
}

func TestNormalizeMissingRequired(t *testing.T) {
	cases := map[string]string{
		"no hotels":        `{"itinerary": {"day1": {}, "day2": {}, "day3": {}}}`,
		"no itinerary":     `{"hotelOptions": []}`,
		"hotels not list":  `{"hotelOptions": {}, "itinerary": {}}`,
		"hotel no name":    `{"hotelOptions": [{"price": "100"}], "itinerary": {"day1": {}, "day2": {}, "day3": {}}}`,
		"activity no name": `{"hotelOptions": [], "itinerary": {"day1": {"activities": [{"ticketPricing": "Free"}]}, "day2": {}, "day3": {}}}`,
	}
	for name, raw := range cases {
		if _, err := newTestNormalizer().Normalize(raw, sampleInputs()); !errors.Is(err, ErrMissingField) {
			t.Fatalf("%s: err = %v, want ErrMissingField", name, err)
		}
	}
}

func TestNormalizeInvalidDays(t *testing.T) {
	cases := map[string]string{
		"out of range": `{"hotelOptions": [], "itinerary": {"day1": {}, "day2": {}, "day4": {}}}`,
		"missing day":  `{"hotelOptions": [], "itinerary": {"day1": {}, "day2": {}}}`,
		"no index":     `{"hotelOptions": [], "itinerary": {"day1": {}, "day2": {}, "day3": {}, "notes": {}}}`,
		"day zero":     `{"hotelOptions": [], "itinerary": {"day0": {}, "day1": {}, "day2": {}}}`,
		"same day":     `{"hotelOptions": [], "itinerary": {"day1": {"theme": "X"}, "Day 1": {"theme": "Y"}, "day2": {}, "day3": {}}}`,
		"same index":   `{"hotelOptions": [], "itinerary": {"day_2": {}, "day1": {}, "day2": {}, "day3": {}}}`,
	}
	for name, raw := range cases {
		if _, err := newTestNormalizer().Normalize(raw, sampleInputs()); !errors.Is(err, ErrInvalidDay) {
			t.Fatalf("%s: err = %v, want ErrInvalidDay", name, err)
		}
	}
}

func TestNormalizeArrayItineraryAndWrapper(t *testing.T) {
	raw := `{"tripData": {
		"hotels": [{"name": "Serena", "price": "30000 - 40000"}],
		"itinerary": [
			{"day": 2, "theme": "Second", "plan": [{"name": "Minar-e-Pakistan"}]},
			{"day": 1, "theme": "First"},
			{"day": 3, "theme": "Third"}
		]}}`
	plan, err := newTestNormalizer().Normalize(raw, sampleInputs())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if plan.Itinerary[0].Theme != "First" || plan.Itinerary[1].Activities[0].PlaceName != "Minar-e-Pakistan" {
		t.Fatalf("array itinerary not sorted: %+v", plan.Itinerary)
	}
	if *plan.HotelOptions[0].NightlyRate != 40000 {
		t.Fatalf("rate = %v", *plan.HotelOptions[0].NightlyRate)
	}
	if !strings.HasPrefix(plan.TripName, "3-day trip to") {
		t.Fatalf("default trip name = %q", plan.TripName)
	}
}

func TestValidateInputs(t *testing.T) {
	n := newTestNormalizer()
	bad := []func(*TripInputs){
		func(in *TripInputs) { in.Destination = "  " },
		func(in *TripInputs) { in.DurationDays = 0 },
		func(in *TripInputs) { in.DurationDays = 8 },
		func(in *TripInputs) { in.NumberOfPeople = 0 },
		func(in *TripInputs) { in.BudgetTier = "Premium" },
		func(in *TripInputs) { in.CompanionType = "Coworkers" },
		func(in *TripInputs) { in.StartDate = "next week" },
	}
	for i, mutate := range bad {
		in := sampleInputs()
		mutate(&in)
		if err := n.ValidateInputs(in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: err = %v, want ErrInvalidInput", i, err)
		}
	}
	in := sampleInputs()
	in.BudgetTier = "luxury"
	in.CompanionType = "family"
	in.NumberOfPeople = 4
	if err := n.ValidateInputs(in); err != nil {
		t.Fatalf("case-insensitive enums rejected: %v", err)
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct{ in, want string }{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{`Sure! {"a":"}"} trailing words`, `{"a":"}"}`},
		{"```\n[{\"x\":[1,2]}]\n```", `[{"x":[1,2]}]`},
		{"not json", "not json"},
		{"```json\nnot json\n```", "not json"},
		{"Plan:\n```json\n{\"d\":\"use ```code``` here\"}\n```", `{"d":"use ` + "```code```" + ` here"}`},
	}
	for _, tc := range cases {
		if got := ExtractJSON(tc.in); got != tc.want {
			t.Fatalf("ExtractJSON(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
