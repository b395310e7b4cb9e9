package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tripplanner/internal/models/db_models"
	"tripplanner/pkg/places"
	"tripplanner/pkg/utils"
)

const tripPromptTemplate = `Generate Travel Plan For Location: {destination}, for {days} Days for {numberOfPeople} Number of People for {companion} with a {budget} budget in PKR in the format lowest range - highest range (e.g., 25000 - 50000). ` +
	`Ensure all prices, including budget, hotel prices, and ticket pricing, are provided in PKR. If prices are available in dollars, convert them to PKR using the current exchange rate (e.g., 1 USD = 291 PKR, or the most recent rate available). ` +
	`Provide a Hotel options list with HotelName, Hotel address, Price in the format lowest range - highest range (e.g., 25000 - 50000), hotel image url, geo coordinates, rating, descriptions ` +
	`and suggest itinerary keyed day1..day{days} with placeName, Place Details, Place Image url, Geo Coordinates, ticket Pricing, rating, Time travel each of the location for {days} days with each day plan with best time to visit in JSON format.`

func BuildTripPrompt(destination string, days, people int, companion string, budget db_models.BudgetTier) string {
	return strings.NewReplacer(
		"{destination}", destination,
		"{days}", strconv.Itoa(days),
		"{numberOfPeople}", strconv.Itoa(people),
		"{companion}", companion,
		"{budget}", string(budget),
	).Replace(tripPromptTemplate)
}

// tripExample seeds the model with the expected shape.
var tripExample = utils.PromptExample{
	User: BuildTripPrompt("Islamabad, Pakistan", 1, 2, "A Couple", db_models.BudgetCheap),
	Model: `{
  "tripName": "Islamabad on a Budget: 1 Day for Couples",
  "hotelOptions": [
    {
      "hotelName": "Hotel Margala Inn",
      "hotelAddress": "Jinnah Avenue, Blue Area, Islamabad",
      "price": "8000 - 12000",
      "hotelImageUrl": "https://placehold.co/800x600?text=Hotel+Margala+Inn",
      "geoCoordinates": {"latitude": 33.7104, "longitude": 73.0580},
      "rating": 3.8,
      "description": "Simple, clean rooms close to the Blue Area food streets."
    }
  ],
  "itinerary": {
    "day1": {
      "theme": "Margalla Hills and Mosques",
      "bestTimeToVisit": "Morning to evening",
      "activities": [
        {
          "placeName": "Faisal Mosque",
          "placeDetails": "The largest mosque in Pakistan, set against the Margalla Hills.",
          "placeImageUrl": "https://placehold.co/800x600?text=Faisal+Mosque",
          "geoCoordinates": {"latitude": 33.7295, "longitude": 73.0372},
          "ticketPricing": "Free",
          "rating": 4.8,
          "travelTimeFromHotel": "15 minutes",
          "bestTimeToVisit": "Late afternoon"
        },
        {
          "placeName": "Daman-e-Koh",
          "placeDetails": "Viewpoint over the city with a short walking trail.",
          "placeImageUrl": "https://placehold.co/800x600?text=Daman-e-Koh",
          "geoCoordinates": {"latitude": 33.7380, "longitude": 73.0583},
          "ticketPricing": "Free",
          "rating": 4.5,
          "travelTimeFromHotel": "20 minutes",
          "bestTimeToVisit": "Sunset"
        }
      ]
    }
  }
}`,
}

const ridePromptTemplate = `Suggest ride options for a trip from {departure} to {destination} for {numberOfPeople} people with a budget of {budget} PKR and preferred vehicle type {preferredVehicle}, in Pakistan as of {now}.
- For valid rides, return a JSON array of objects with:
  - "company": Ride-sharing company (e.g., Careem, inDrive, Uber).
  - "vehicleType": Type of vehicle (e.g., Sedan, SUV, Van, Luxury).
  - "vehicleModel": Specific model (e.g., Toyota Corolla, Honda CR-V).
  - "cost": Cost in PKR (e.g., "1500 PKR").
  - "duration": Estimated travel time (e.g., "45 minutes").
  - "distance": Distance in kilometers (e.g., "30 km").
  - "estimatedArrivalTime": Estimated arrival time based on current time ({time}).
  - "amenities": Array of amenities (e.g., ["AC", "Wi-Fi"]).
- Consider realistic pricing and durations based on the distance between {departure} and {destination}, using Pakistan's ride-sharing market (Careem, inDrive, Uber).
- If the budget is too low (less than Rs. 750 per person), the number of people exceeds vehicle capacity (more than 4 for sedan, 7 for SUV, 12 for van, 4 for luxury), or any input is invalid (e.g., negative budget, invalid vehicle type, unrealistic locations), return a JSON array with a single object: {"type": "warning", "title": "appropriate title", "message": "detailed professional message explaining the issue", "duration": "N/A"}.
- Do not include any additional text, markdown, or explanations outside the JSON array.`

// BuildRidePrompt renders the ride prompt. route is the measured road
// distance when one is known.
func BuildRidePrompt(s *db_models.RideSearchSession, now time.Time, route *places.Route) string {
	local := now.In(utils.Location(""))
	prompt := strings.NewReplacer(
		"{departure}", s.Departure,
		"{destination}", s.Destination,
		"{numberOfPeople}", strconv.Itoa(s.NumberOfPeople),
		"{budget}", s.Budget.String(),
		"{preferredVehicle}", string(s.PreferredVehicle),
		"{now}", local.Format("January 2, 2006, 3:04 PM MST"),
		"{time}", local.Format("3:04 PM MST"),
	).Replace(ridePromptTemplate)
	if route != nil {
		prompt += fmt.Sprintf("\n- The measured driving route is %s; keep distance and duration consistent with it.", route)
	}
	return prompt
}

const chatPromptTemplate = `You are a helpful and friendly travel expert assistant for a trip planning website.

%s

Please respond to the following user query in a friendly, informative manner as a travel guide would.
Focus only on travel-related inquiries, including:
1. Trip details and changes
2. Transportation options and schedules
3. Local attractions and activities
4. Common travel-related questions
5. Website support for the trip planning service

Keep responses concise, practical, and conversational. Format important information clearly using proper markdown with headers (##) for sections and bullet points for lists. If you don't have specific information about the user's trip details, provide general travel advice or ask for clarification.

USER QUERY: %s`

// TripContext summarizes a stored trip for the chat assistant.
func TripContext(trip *db_models.TripPlan) string {
	if trip == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Trip Details:\n- Destination: %s\n- Duration: %d days\n- Budget: %s\n- Traveling with: %s (%d people)",
		orNotSpecified(trip.Destination), trip.DurationDays, orNotSpecified(string(trip.BudgetTier)),
		orNotSpecified(trip.CompanionType), trip.NumberOfPeople)
	if trip.StartDate != "" {
		fmt.Fprintf(&b, "\n- Starting: %s", trip.StartDate)
	}
	if len(trip.HotelOptions) > 0 {
		b.WriteString("\nSelected Hotels:")
		for _, h := range trip.HotelOptions {
			price := "Price not available"
			if h.NightlyRate != nil {
				price = utils.FormatPKR(*h.NightlyRate) + " per night"
			}
			fmt.Fprintf(&b, "\n- %s (%s)", h.Name, price)
		}
	}
	if len(trip.Itinerary) > 0 {
		b.WriteString("\nPlaces to Visit:")
		for _, d := range trip.Itinerary {
			fmt.Fprintf(&b, "\n- Day %d: %s", d.Day, d.Theme)
			for _, a := range d.Activities {
				fmt.Fprintf(&b, "\n  - %s", a.PlaceName)
			}
		}
	}
	return b.String()
}

func BuildChatPrompt(trip *db_models.TripPlan, message string) string {
	return fmt.Sprintf(chatPromptTemplate, TripContext(trip), message)
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}
