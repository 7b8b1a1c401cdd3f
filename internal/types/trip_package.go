package types

// TripPackage is a static, pre-authored catalog entry usable as a one-click
// trip template. The canonical template is never mutated; personalization
// annotates a copy with a score.
type TripPackage struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Desc     string      `json:"desc"`
	Price    string      `json:"price"`
	Duration string      `json:"duration"`
	Tags     []string    `json:"tags"`
	Template TripRequest `json:"trip_data"`
}

// ScoredPackage is a catalog entry annotated with its relevance score.
type ScoredPackage struct {
	TripPackage
	Score int `json:"score"`
}

// PopularPlace is a static destination card for the discover screen.
type PopularPlace struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Desc     string `json:"desc"`
	Country  string `json:"country"`
	Category string `json:"category"`
}

// PersonalizedCatalog is the discover response: the frequency-ranked
// preference tags detected in the caller's history (empty means "no
// personalization") and the catalog re-sorted by score.
type PersonalizedCatalog struct {
	Preferences []string        `json:"preferences"`
	Packages    []ScoredPackage `json:"packages"`
}
