// Package feed derives the browse view of the recipe collection: a pure
// filter/sort pipeline plus a session-scoped store that owns the fetched
// recipes and the current filter selections.
package feed

import (
	"sort"
	"strings"

	"github.com/plateup/backend/internal/models"
)

// Sentinel values meaning "no constraint" for each filter.
const (
	AllCuisines   = "All Cuisines"
	AllLevels     = "All Levels"
	AnyTime       = "Any Time"
	AllDiets      = "All Diets"
)

// Cooking-time buckets. Together they partition every non-negative minute
// value: [0,30), [30,60], (60,∞).
const (
	TimeUnder30  = "Under 30 min"
	Time30To60   = "30-60 min"
	TimeOverHour = "1+ hour"
)

// Sort orders.
const (
	SortLatest     = "latest"
	SortPopular    = "popular"
	SortTime       = "time"
	SortDifficulty = "difficulty"
)

// CookingTimes is the bucket vocabulary offered to clients, sentinel first.
var CookingTimes = []string{AnyTime, TimeUnder30, Time30To60, TimeOverHour}

// SortOptions is the sort vocabulary offered to clients.
var SortOptions = []string{SortLatest, SortPopular, SortTime, SortDifficulty}

var difficultyRank = map[string]int{
	models.DifficultyEasy:   1,
	models.DifficultyMedium: 2,
	models.DifficultyHard:   3,
}

// Filters is the browsing session's filter state. The zero value is not
// meaningful; use DefaultFilters.
type Filters struct {
	Search     string
	Cuisine    string
	Difficulty string
	Time       string
	Dietary    string
	SortBy     string
}

// DefaultFilters returns the unconstrained state: every filter at its
// sentinel and the latest-first sort.
func DefaultFilters() Filters {
	return Filters{
		Cuisine:    AllCuisines,
		Difficulty: AllLevels,
		Time:       AnyTime,
		Dietary:    AllDiets,
		SortBy:     SortLatest,
	}
}

// Derive computes the display list for the given filters. It is pure: the
// input slice is never mutated, and equal inputs produce equal outputs.
// Filters apply conjunctively; each stage passes everything when set to its
// sentinel. An unrecognized sort order falls back to latest; an
// unrecognized filter value constrains nothing.
func Derive(recipes []models.Recipe, f Filters) []models.Recipe {
	out := make([]models.Recipe, 0, len(recipes))

	term := strings.ToLower(strings.TrimSpace(f.Search))
	for _, r := range recipes {
		if term != "" && !matchesSearch(r, term) {
			continue
		}
		if f.Cuisine != AllCuisines && f.Cuisine != "" && validCuisine(f.Cuisine) && r.Cuisine != f.Cuisine {
			continue
		}
		if f.Difficulty != AllLevels && f.Difficulty != "" && validDifficulty(f.Difficulty) && r.Difficulty != f.Difficulty {
			continue
		}
		if !matchesTimeBucket(f.Time, r.CookingTime) {
			continue
		}
		if f.Dietary != AllDiets && f.Dietary != "" && validDietary(f.Dietary) && !r.DietaryPreferences.Contains(f.Dietary) {
			continue
		}
		out = append(out, r)
	}

	sortRecipes(out, f.SortBy)
	return out
}

func matchesSearch(r models.Recipe, term string) bool {
	return strings.Contains(strings.ToLower(r.Title), term) ||
		strings.Contains(strings.ToLower(r.Description), term) ||
		strings.Contains(strings.ToLower(r.Cuisine), term)
}

// matchesTimeBucket maps every minute value to exactly one bucket: the
// boundaries 30 and 60 belong to the middle bucket and nowhere else.
func matchesTimeBucket(bucket string, minutes int) bool {
	switch bucket {
	case TimeUnder30:
		return minutes < 30
	case Time30To60:
		return minutes >= 30 && minutes <= 60
	case TimeOverHour:
		return minutes > 60
	default:
		// AnyTime or an unrecognized bucket: no constraint.
		return true
	}
}

// sortRecipes applies a stable sort so that comparators with few distinct
// keys (difficulty has three) preserve the prior relative order of ties.
func sortRecipes(recipes []models.Recipe, sortBy string) {
	switch sortBy {
	case SortPopular:
		sort.SliceStable(recipes, func(i, j int) bool {
			return recipes[i].Likes > recipes[j].Likes
		})
	case SortTime:
		sort.SliceStable(recipes, func(i, j int) bool {
			return recipes[i].CookingTime < recipes[j].CookingTime
		})
	case SortDifficulty:
		sort.SliceStable(recipes, func(i, j int) bool {
			return difficultyRank[recipes[i].Difficulty] < difficultyRank[recipes[j].Difficulty]
		})
	default:
		// SortLatest, and the fallback for anything unrecognized.
		sort.SliceStable(recipes, func(i, j int) bool {
			return recipes[i].CreatedAt.After(recipes[j].CreatedAt)
		})
	}
}

func validCuisine(v string) bool    { return contains(models.CuisineTypes, v) }
func validDifficulty(v string) bool { return contains(models.DifficultyLevels, v) }
func validDietary(v string) bool    { return contains(models.DietaryPreferences, v) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
