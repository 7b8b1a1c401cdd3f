package discover

import (
	"sort"

	"github.com/dreamtrip-app/dreamtrip-api/internal/types"
)

// Preference weights. Budget and traveler type say more about a user than a
// single attraction pick, so they count double.
const (
	budgetWeight     = 2
	travelerWeight   = 2
	attractionWeight = 1

	matchBonus  = 5
	maxTagScore = 10
	soloTitle   = "Solo"
	justMeTitle = "Just Me"
)

// AggregatePreferences distills a user's trip history into an ordered list of
// preference tags, strongest first. Records whose stored request snapshot no
// longer parses are skipped rather than failing the whole run. Ties keep the
// order in which the tags were first seen.
func AggregatePreferences(history []types.TripRecord) []string {
	counts := make(map[string]int)
	var order []string

	bump := func(tag string, weight int) {
		if tag == "" {
			return
		}
		if _, seen := counts[tag]; !seen {
			order = append(order, tag)
		}
		counts[tag] += weight
	}

	for i := range history {
		req, err := history[i].Request()
		if err != nil {
			continue
		}

		if req.Budget != nil {
			bump(req.Budget.Title, budgetWeight)
		}
		if req.Traveler != nil {
			tag := req.Traveler.Title
			if tag == justMeTitle {
				tag = soloTitle
			}
			bump(tag, travelerWeight)
		}
		for _, attr := range req.SelectedAttractions {
			bump(attr.Title, attractionWeight)
		}
	}

	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})
	return order
}

// ScorePackages annotates every catalog entry with a relevance score against
// the given preference list. Order and length of the input are preserved; an
// empty preference list yields all-zero scores.
func ScorePackages(packages []types.TripPackage, prefs []string) []types.ScoredPackage {
	prefIndex := make(map[string]int, len(prefs))
	for i, p := range prefs {
		prefIndex[p] = i
	}

	scored := make([]types.ScoredPackage, 0, len(packages))
	for _, pkg := range packages {
		score := 0

		// Earlier preferences are worth more. A tag past the tenth
		// preference subtracts, which keeps saturated histories from
		// flattening the ranking.
		for _, tag := range pkg.Tags {
			if idx, ok := prefIndex[tag]; ok {
				score += maxTagScore - idx
			}
		}

		if pkg.Template.Traveler != nil {
			if _, ok := prefIndex[pkg.Template.Traveler.Title]; ok {
				score += matchBonus
			}
		}
		if pkg.Template.Budget != nil {
			if _, ok := prefIndex[pkg.Template.Budget.Title]; ok {
				score += matchBonus
			}
		}

		scored = append(scored, types.ScoredPackage{TripPackage: pkg, Score: score})
	}
	return scored
}

// SortByScore orders packages highest score first. The sort is stable so
// equally scored packages keep their catalog order.
func SortByScore(packages []types.ScoredPackage) {
	sort.SliceStable(packages, func(a, b int) bool {
		return packages[a].Score > packages[b].Score
	})
}
