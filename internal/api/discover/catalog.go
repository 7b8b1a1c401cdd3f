package discover

import (
	"github.com/dreamtrip-app/dreamtrip-api/internal/types"
)

// TripPackages is the curated catalog shown on the discover screen. Each
// entry carries a ready-to-generate trip template so a single tap can start
// plan generation.
var TripPackages = []types.TripPackage{
	{
		ID:       1,
		Name:     "Bali Escapade",
		Desc:     "Top-rated luxury couple trip",
		Price:    "Luxury",
		Duration: "5 Days",
		Tags:     []string{"Beach", "Romantic", "Luxury", "Nature"},
		Template: types.TripRequest{
			Destination: types.Destination{Name: "Bali, Indonesia"},
			Traveler:    &types.TravelerOption{ID: 2, Title: "Couple", People: "2 People"},
			Budget:      &types.BudgetOption{ID: 3, Title: "Luxury"},
			TotalDays:   5,
			SelectedAttractions: []types.AttractionOption{
				{ID: 1, Title: "Nature"},
				{ID: 2, Title: "Beach"},
			},
		},
	},
	{
		ID:       2,
		Name:     "New York City",
		Desc:     "Urban exploration & food",
		Price:    "Moderate",
		Duration: "3 Days",
		Tags:     []string{"City", "Food", "Cultural", "Solo"},
		Template: types.TripRequest{
			Destination: types.Destination{Name: "New York City, USA"},
			Traveler:    &types.TravelerOption{ID: 1, Title: "Just Me", People: "1 Person"},
			Budget:      &types.BudgetOption{ID: 2, Title: "Moderate"},
			TotalDays:   3,
			SelectedAttractions: []types.AttractionOption{
				{ID: 1, Title: "City"},
				{ID: 2, Title: "Food"},
			},
		},
	},
	{
		ID:       3,
		Name:     "Swiss Alps",
		Desc:     "Hiking & scenic family trip",
		Price:    "High End",
		Duration: "6 Days",
		Tags:     []string{"Hiking", "Nature", "Family", "Adventure"},
		Template: types.TripRequest{
			Destination: types.Destination{Name: "Swiss Alps, Switzerland"},
			Traveler:    &types.TravelerOption{ID: 3, Title: "Family", People: "4 People"},
			Budget:      &types.BudgetOption{ID: 3, Title: "Luxury"},
			TotalDays:   6,
			SelectedAttractions: []types.AttractionOption{
				{ID: 1, Title: "Hiking"},
				{ID: 2, Title: "Nature"},
			},
		},
	},
	{
		ID:       4,
		Name:     "Paris Romance",
		Desc:     "Art, cuisine & culture",
		Price:    "Luxury",
		Duration: "4 Days",
		Tags:     []string{"Romantic", "Cultural", "Food", "Couple"},
		Template: types.TripRequest{
			Destination: types.Destination{Name: "Paris, France"},
			Traveler:    &types.TravelerOption{ID: 2, Title: "Couple", People: "2 People"},
			Budget:      &types.BudgetOption{ID: 3, Title: "Luxury"},
			TotalDays:   4,
			SelectedAttractions: []types.AttractionOption{
				{ID: 1, Title: "Cultural"},
				{ID: 4, Title: "Music"},
			},
		},
	},
	{
		ID:       5,
		Name:     "Dubai Extravaganza",
		Desc:     "Luxury shopping & beaches",
		Price:    "Luxury",
		Duration: "5 Days",
		Tags:     []string{"Luxury", "Shopping", "Beach", "City"},
		Template: types.TripRequest{
			Destination: types.Destination{Name: "Dubai, UAE"},
			Traveler:    &types.TravelerOption{ID: 4, Title: "Friends", People: "Group"},
			Budget:      &types.BudgetOption{ID: 3, Title: "Luxury"},
			TotalDays:   5,
			SelectedAttractions: []types.AttractionOption{
				{ID: 3, Title: "Sports"},
			},
		},
	},
	{
		ID:       6,
		Name:     "Budget Backpacking",
		Desc:     "Southeast Asia adventure",
		Price:    "Cheap",
		Duration: "7 Days",
		Tags:     []string{"Budget", "Adventure", "Solo", "Cultural"},
		Template: types.TripRequest{
			Destination: types.Destination{Name: "Thailand"},
			Traveler:    &types.TravelerOption{ID: 1, Title: "Just Me", People: "1 Person"},
			Budget:      &types.BudgetOption{ID: 1, Title: "Cheap"},
			TotalDays:   7,
			SelectedAttractions: []types.AttractionOption{
				{ID: 1, Title: "Cultural"},
			},
		},
	},
	{
		ID:       7,
		Name:     "German Festivals",
		Desc:     "Oktoberfest & culture",
		Price:    "Moderate",
		Duration: "4 Days",
		Tags:     []string{"Festivals", "Cultural", "Music", "Friends"},
		Template: types.TripRequest{
			Destination: types.Destination{Name: "Munich, Germany"},
			Traveler:    &types.TravelerOption{ID: 4, Title: "Friends", People: "Group"},
			Budget:      &types.BudgetOption{ID: 2, Title: "Moderate"},
			TotalDays:   4,
			SelectedAttractions: []types.AttractionOption{
				{ID: 5, Title: "Festivals"},
				{ID: 4, Title: "Music"},
			},
		},
	},
	{
		ID:       8,
		Name:     "Australia Wildlife",
		Desc:     "Nature & family fun",
		Price:    "Moderate",
		Duration: "5 Days",
		Tags:     []string{"Nature", "Family", "Adventure", "Wildlife"},
		Template: types.TripRequest{
			Destination: types.Destination{Name: "Sydney, Australia"},
			Traveler:    &types.TravelerOption{ID: 3, Title: "Family", People: "4 People"},
			Budget:      &types.BudgetOption{ID: 2, Title: "Moderate"},
			TotalDays:   5,
			SelectedAttractions: []types.AttractionOption{
				{ID: 1, Title: "Cultural"},
				{ID: 2, Title: "Hiking"},
			},
		},
	},
	{
		ID:       9,
		Name:     "Monaco Luxury",
		Desc:     "Yachts, casinos & glamour",
		Price:    "Luxury",
		Duration: "3 Days",
		Tags:     []string{"Luxury", "Beach", "Romantic", "Sports"},
		Template: types.TripRequest{
			Destination: types.Destination{Name: "Monaco"},
			Traveler:    &types.TravelerOption{ID: 2, Title: "Couple", People: "2 People"},
			Budget:      &types.BudgetOption{ID: 3, Title: "Luxury"},
			TotalDays:   3,
			SelectedAttractions: []types.AttractionOption{
				{ID: 3, Title: "Sports"},
			},
		},
	},
	{
		ID:       10,
		Name:     "Ski Adventure",
		Desc:     "Winter sports thrill",
		Price:    "Moderate",
		Duration: "4 Days",
		Tags:     []string{"Sports", "Adventure", "Friends", "Winter"},
		Template: types.TripRequest{
			Destination: types.Destination{Name: "Aspen, Colorado"},
			Traveler:    &types.TravelerOption{ID: 4, Title: "Friends", People: "Group"},
			Budget:      &types.BudgetOption{ID: 2, Title: "Moderate"},
			TotalDays:   4,
			SelectedAttractions: []types.AttractionOption{
				{ID: 3, Title: "Sports"},
			},
		},
	},
}

// PopularPlaces is the static destination grid of the discover screen.
var PopularPlaces = []types.PopularPlace{
	{ID: 1, Name: "Paris, France", Desc: "The City of Light, known for the Eiffel Tower, Louvre Museum, and romantic ambiance.", Country: "France", Category: "Cultural"},
	{ID: 2, Name: "Dubai, UAE", Desc: "A modern metropolis with stunning architecture, luxury shopping, and desert adventures.", Country: "UAE", Category: "Luxury"},
	{ID: 3, Name: "New York, USA", Desc: "The Big Apple - iconic landmarks, Broadway shows, and endless entertainment.", Country: "USA", Category: "Urban"},
	{ID: 4, Name: "Switzerland", Desc: "Alpine beauty with pristine lakes, mountain peaks, and charming villages.", Country: "Switzerland", Category: "Nature"},
	{ID: 5, Name: "Australia", Desc: "Diverse landscapes from the Outback to stunning coastlines and vibrant cities.", Country: "Australia", Category: "Adventure"},
	{ID: 6, Name: "Germany", Desc: "Rich history, beautiful castles, and world-class beer culture.", Country: "Germany", Category: "Cultural"},
	{ID: 7, Name: "Monaco", Desc: "A glamorous principality known for casinos, Formula 1, and luxury lifestyle.", Country: "Monaco", Category: "Luxury"},
	{ID: 8, Name: "Taj Mahal, India", Desc: "An iconic symbol of love, one of the Seven Wonders of the World.", Country: "India", Category: "Cultural"},
}

// Categories lists the filter pills offered on the discover screen.
var Categories = []string{"All", "Couple", "Family", "Solo", "Friends", "Luxury", "Budget", "Adventure"}
