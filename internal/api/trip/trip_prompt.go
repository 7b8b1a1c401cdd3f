package trip

import (
	"fmt"
	"strings"

	"github.com/dreamtrip-app/dreamtrip-api/internal/types"
)

// Questionnaire options presented by the client. The titles double as
// preference tags for catalog personalization.
var (
	SelectTravelerList = []types.TravelerOption{
		{ID: 1, Title: "Just Me", Desc: "A solo traveller", People: "1 Person"},
		{ID: 2, Title: "Couple", Desc: "Two travelers in tandem", People: "2 People"},
		{ID: 3, Title: "Family", Desc: "A group of fun loving adv", People: "4 People"},
		{ID: 4, Title: "Friends", Desc: "A bunch of thrill seekers", People: "Group"},
	}

	SelectBudgetOptions = []types.BudgetOption{
		{ID: 1, Title: "Cheap", Desc: "Stay concious of costs"},
		{ID: 2, Title: "Moderate", Desc: "Keep cost on average side"},
		{ID: 3, Title: "Luxury", Desc: "Don't worry about cost"},
	}

	SelectAttractionOptions = []types.AttractionOption{
		{ID: 1, Title: "Cultural", Desc: "Explore the local culture"},
		{ID: 2, Title: "Hiking", Desc: "Hiking in scenic places"},
		{ID: 3, Title: "Sports", Desc: "A thrilling experience"},
		{ID: 4, Title: "Music", Desc: "Refresh the soul"},
		{ID: 5, Title: "Festivals", Desc: "Explore the festivals"},
	}
)

// BuildPlanPrompt renders the generation prompt for a trip request. The
// prompt pins the exact JSON structure the normalizer expects back and
// repeats the no-markdown instruction because the model does not always
// honor the JSON response MIME type.
func BuildPlanPrompt(req *types.TripRequest) string {
	location := req.Destination.Name
	if location == "" {
		location = "your destination"
	}

	totalDays := req.TotalDays
	if totalDays <= 0 {
		totalDays = 3
	}
	totalNights := totalDays

	travelerTitle := "traveler"
	if req.Traveler != nil && req.Traveler.Title != "" {
		travelerTitle = req.Traveler.Title
	}

	budgetTitle := "moderate"
	if req.Budget != nil && req.Budget.Title != "" {
		budgetTitle = req.Budget.Title
	}

	attractionTitles := "various"
	if len(req.SelectedAttractions) > 0 {
		titles := make([]string, 0, len(req.SelectedAttractions))
		for _, attr := range req.SelectedAttractions {
			titles = append(titles, attr.Title)
		}
		attractionTitles = strings.Join(titles, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Generate a complete travel plan in valid JSON format only. Do not include any text before or after the JSON object. The JSON must be complete and valid.

Requirements:
- Location: %s
- Duration: %d Days and %d nights
- Traveler type: %s
- Budget: %s
- Attractions focus: %s`, location, totalDays, totalNights, travelerTitle, budgetTitle, attractionTitles)

	if len(req.CustomAttractions) > 0 {
		fmt.Fprintf(&b, "\n- MUST INCLUDE these specific places: %s", strings.Join(req.CustomAttractions, ", "))
	}
	if req.Origin != nil && req.Origin.Name != "" {
		fmt.Fprintf(&b, "\n- Origin city for flights: %s", req.Origin.Name)
	}

	fmt.Fprintf(&b, `

JSON Structure Required:
{
  "travel_plan": {
    "location": "%s",
    "duration": "%d Days, %d Nights",
    "traveler_type": "%s",
    "budget": "%s",
    "attraction_focus": "%s",
    "flight_details": {
      "origin": "origin city",
      "destination": "%s",
      "airline": "airline name",
      "estimated_price_round_trip": "price in Rupees",
      "booking_url": "flight booking URL"
    },
    "hotels": [
      {
        "name": "hotel name",
        "address": "hotel address",
        "price_per_night": "price in Rupees",
        "image_url": "hotel image URL",
        "coordinates": {"lat": 0, "lng": 0},
        "rating": 4.5,
        "description": "short description"
      }
    ],
    "daily_plan": [
      {
        "day": 1,
        "date": "date",
        "activities": [
          {
            "name": "activity name",
            "description": "activity description",
            "time": "best time to visit (e.g., Morning 9:00-11:00 or Afternoon 14:00-16:00)",
            "location": "location name",
            "coordinates": {"lat": 0, "lng": 0},
            "image_url": "image URL",
            "ticket_price": "price if applicable"
          }
        ]
      }
    ]
  }
}

Give a list of exactly 3 hotel options and limit to 3 activities per day. Keep descriptions short (max 15 words).

IMPORTANT: Return ONLY valid JSON. No markdown, no code blocks, no explanations. Just the JSON object. Do not wrap in `+"```json ... ```"+` tags. Start with { and end with }.`,
		location, totalDays, totalNights, travelerTitle, budgetTitle, attractionTitles, location)

	return b.String()
}
