package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Coordinates is a lat/lng pair as emitted by the model.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Destination describes a searched place. Coordinates, PhotoRef and URL are
// only present when the place came from a places-search result.
type Destination struct {
	Name        string       `json:"name"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	PhotoRef    *string      `json:"photo_ref,omitempty"`
	URL         *string      `json:"url,omitempty"`
}

// TravelerOption is one entry of the traveler-type questionnaire step.
type TravelerOption struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Desc   string `json:"desc,omitempty"`
	People string `json:"people,omitempty"`
}

// BudgetOption is one entry of the budget questionnaire step.
type BudgetOption struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Desc  string `json:"desc,omitempty"`
}

// AttractionOption is one entry of the attraction-interest questionnaire step.
type AttractionOption struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Desc  string `json:"desc,omitempty"`
}

// TripRequest carries everything the questionnaire collected. It is immutable
// once handed to the prompt builder and is persisted as a serialized snapshot
// alongside the generated plan.
type TripRequest struct {
	Destination         Destination        `json:"location_info"`
	Origin              *Destination       `json:"origin_info,omitempty"`
	Traveler            *TravelerOption    `json:"traveler,omitempty"`
	Budget              *BudgetOption      `json:"budget,omitempty"`
	TotalDays           int                `json:"total_no_of_days"`
	StartDate           string             `json:"start_date,omitempty"`
	EndDate             string             `json:"end_date,omitempty"`
	SelectedAttractions []AttractionOption `json:"selected_attractions,omitempty"`
	CustomAttractions   []string           `json:"custom_attractions,omitempty"`
}

// FlightDetails is the optional flight summary of a generated plan. Every
// field is optional; the model frequently omits or truncates them.
type FlightDetails struct {
	Origin                  *string `json:"origin,omitempty"`
	Destination             *string `json:"destination,omitempty"`
	Airline                 *string `json:"airline,omitempty"`
	EstimatedPriceRoundTrip *string `json:"estimated_price_round_trip,omitempty"`
	BookingURL              *string `json:"booking_url,omitempty"`
}

// Hotel is one hotel candidate of a generated plan.
type Hotel struct {
	Name          string       `json:"name,omitempty"`
	Address       string       `json:"address,omitempty"`
	PricePerNight *string      `json:"price_per_night,omitempty"`
	ImageURL      *string      `json:"image_url,omitempty"`
	Coordinates   *Coordinates `json:"coordinates,omitempty"`
	Rating        *float64     `json:"rating,omitempty"`
	Description   string       `json:"description,omitempty"`
}

// Activity is one entry of a day plan. The model emits the time hint under
// several alternative keys; BestVisitTime resolves them in priority order.
type Activity struct {
	Name         string       `json:"name,omitempty"`
	Description  string       `json:"description,omitempty"`
	Time         *string      `json:"time,omitempty"`
	BestTime     *string      `json:"best_time,omitempty"`
	VisitingTime *string      `json:"visiting_time,omitempty"`
	TimeSlot     *string      `json:"time_slot,omitempty"`
	Location     *string      `json:"location,omitempty"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
	ImageURL     *string      `json:"image_url,omitempty"`
	TicketPrice  *string      `json:"ticket_price,omitempty"`
}

// BestVisitTime returns the first populated time-of-day hint.
func (a Activity) BestVisitTime() string {
	for _, t := range []*string{a.Time, a.BestTime, a.VisitingTime, a.TimeSlot} {
		if t != nil && *t != "" {
			return *t
		}
	}
	return ""
}

// DayPlan is one day of the itinerary with its ordered activities.
type DayPlan struct {
	Day        int        `json:"day,omitempty"`
	Date       string     `json:"date,omitempty"`
	Activities []Activity `json:"activities"`
}

// TravelPlan is the structured itinerary decoded from the model output.
type TravelPlan struct {
	Location        string         `json:"location,omitempty"`
	Duration        string         `json:"duration,omitempty"`
	TravelerType    string         `json:"traveler_type,omitempty"`
	Budget          string         `json:"budget,omitempty"`
	AttractionFocus string         `json:"attraction_focus,omitempty"`
	FlightDetails   *FlightDetails `json:"flight_details,omitempty"`
	Hotels          []Hotel        `json:"hotels"`
	DailyPlan       []DayPlan      `json:"daily_plan"`
}

// GeneratedPlan wraps a TravelPlan. The model inconsistently nests the plan
// under an outer "travel_plan" key; UnmarshalJSON accepts both shapes so
// downstream readers never have to care.
type GeneratedPlan struct {
	TravelPlan TravelPlan `json:"travel_plan"`
}

func (p *GeneratedPlan) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		TravelPlan *TravelPlan `json:"travel_plan"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	if wrapped.TravelPlan != nil {
		p.TravelPlan = *wrapped.TravelPlan
		p.normalizeLists()
		return nil
	}
	var bare TravelPlan
	if err := json.Unmarshal(data, &bare); err != nil {
		return err
	}
	p.TravelPlan = bare
	p.normalizeLists()
	return nil
}

// normalizeLists guarantees every list is non-nil so a persisted plan always
// round-trips as a valid (possibly empty) JSON array.
func (p *GeneratedPlan) normalizeLists() {
	if p.TravelPlan.Hotels == nil {
		p.TravelPlan.Hotels = []Hotel{}
	}
	if p.TravelPlan.DailyPlan == nil {
		p.TravelPlan.DailyPlan = []DayPlan{}
	}
	for i := range p.TravelPlan.DailyPlan {
		if p.TravelPlan.DailyPlan[i].Activities == nil {
			p.TravelPlan.DailyPlan[i].Activities = []Activity{}
		}
	}
}

// TripRecord is a persisted TripRequest + GeneratedPlan pair owned by a user.
// RequestSnapshot holds the request exactly as serialized at generation time.
type TripRecord struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.UUID     `json:"user_id"`
	DocID           string        `json:"doc_id"`
	Plan            GeneratedPlan `json:"trip_plan"`
	RequestSnapshot string        `json:"trip_data"`
	Notes           string        `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Request decodes the stored snapshot back into a TripRequest.
func (t *TripRecord) Request() (*TripRequest, error) {
	var req TripRequest
	if err := json.Unmarshal([]byte(t.RequestSnapshot), &req); err != nil {
		return nil, err
	}
	return &req, nil
}
