package discover

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamtrip-app/dreamtrip-api/internal/types"
)

func historyRecord(t *testing.T, req types.TripRequest) types.TripRecord {
	t.Helper()
	snapshot, err := json.Marshal(req)
	require.NoError(t, err)
	return types.TripRecord{DocID: "doc", RequestSnapshot: string(snapshot)}
}

func TestAggregatePreferences(t *testing.T) {
	history := []types.TripRecord{
		historyRecord(t, types.TripRequest{
			Budget:   &types.BudgetOption{Title: "Luxury"},
			Traveler: &types.TravelerOption{Title: "Couple"},
			SelectedAttractions: []types.AttractionOption{
				{Title: "Cultural"},
			},
		}),
		historyRecord(t, types.TripRequest{
			Budget:   &types.BudgetOption{Title: "Luxury"},
			Traveler: &types.TravelerOption{Title: "Just Me"},
		}),
	}

	prefs := AggregatePreferences(history)

	// Luxury: 2+2=4, Couple: 2, Solo: 2, Cultural: 1. Couple ties Solo and
	// was seen first.
	assert.Equal(t, []string{"Luxury", "Couple", "Solo", "Cultural"}, prefs)
}

func TestAggregatePreferences_MapsJustMeToSolo(t *testing.T) {
	history := []types.TripRecord{
		historyRecord(t, types.TripRequest{
			Traveler: &types.TravelerOption{Title: "Just Me"},
		}),
	}

	prefs := AggregatePreferences(history)
	assert.Equal(t, []string{"Solo"}, prefs)
	assert.NotContains(t, prefs, "Just Me")
}

func TestAggregatePreferences_SkipsCorruptSnapshots(t *testing.T) {
	history := []types.TripRecord{
		{DocID: "bad", RequestSnapshot: "not json at all"},
		historyRecord(t, types.TripRequest{
			Budget: &types.BudgetOption{Title: "Cheap"},
		}),
	}

	prefs := AggregatePreferences(history)
	assert.Equal(t, []string{"Cheap"}, prefs)
}

func TestAggregatePreferences_EmptyHistory(t *testing.T) {
	assert.Empty(t, AggregatePreferences(nil))
	assert.Empty(t, AggregatePreferences([]types.TripRecord{}))
}

func TestScorePackages_FullMatch(t *testing.T) {
	pkg := types.TripPackage{
		ID:   1,
		Tags: []string{"Luxury", "Romantic"},
		Template: types.TripRequest{
			Traveler: &types.TravelerOption{Title: "Couple"},
			Budget:   &types.BudgetOption{Title: "Luxury"},
		},
	}

	scored := ScorePackages([]types.TripPackage{pkg}, []string{"Luxury", "Couple"})
	require.Len(t, scored, 1)

	// Tag "Luxury" at index 0 scores 10, plus 5 for the traveler match and
	// 5 for the budget match.
	assert.Equal(t, 20, scored[0].Score)
}

func TestScorePackages_EmptyPreferencesScoreZero(t *testing.T) {
	scored := ScorePackages(TripPackages, nil)
	require.Len(t, scored, len(TripPackages))
	for i, pkg := range scored {
		assert.Zero(t, pkg.Score)
		assert.Equal(t, TripPackages[i].ID, pkg.ID, "order must be preserved")
	}
}

func TestScorePackages_LatePreferenceGoesNegative(t *testing.T) {
	prefs := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "Winter"}
	pkg := types.TripPackage{ID: 1, Tags: []string{"Winter"}}

	scored := ScorePackages([]types.TripPackage{pkg}, prefs)
	// "Winter" sits at index 11: 10 - 11 = -1, deliberately unclamped.
	assert.Equal(t, -1, scored[0].Score)
}

func TestSortByScore_StableOnTies(t *testing.T) {
	scored := []types.ScoredPackage{
		{TripPackage: types.TripPackage{ID: 1}, Score: 5},
		{TripPackage: types.TripPackage{ID: 2}, Score: 10},
		{TripPackage: types.TripPackage{ID: 3}, Score: 5},
		{TripPackage: types.TripPackage{ID: 4}, Score: 5},
	}

	SortByScore(scored)

	ids := []int{scored[0].ID, scored[1].ID, scored[2].ID, scored[3].ID}
	assert.Equal(t, []int{2, 1, 3, 4}, ids)
}

func TestFilterByCategory(t *testing.T) {
	scored := ScorePackages(TripPackages, nil)

	t.Run("All keeps everything", func(t *testing.T) {
		assert.Len(t, FilterByCategory(scored, "All"), len(scored))
	})

	t.Run("Solo matches Just Me travelers", func(t *testing.T) {
		filtered := FilterByCategory(scored, "Solo")
		require.NotEmpty(t, filtered)
		for _, pkg := range filtered {
			matches := containsTag(pkg.Tags, "Solo") || pkg.Template.Traveler.Title == "Just Me"
			assert.True(t, matches, "package %d", pkg.ID)
		}
	})

	t.Run("Budget matches Cheap budget", func(t *testing.T) {
		filtered := FilterByCategory(scored, "Budget")
		require.NotEmpty(t, filtered)
		for _, pkg := range filtered {
			matches := containsTag(pkg.Tags, "Budget") || pkg.Template.Budget.Title == "Cheap"
			assert.True(t, matches, "package %d", pkg.ID)
		}
	})

	t.Run("budget title match", func(t *testing.T) {
		filtered := FilterByCategory(scored, "Luxury")
		require.NotEmpty(t, filtered)
	})

	t.Run("unknown category filters everything out", func(t *testing.T) {
		assert.Empty(t, FilterByCategory(scored, "Spelunking"))
	})
}
