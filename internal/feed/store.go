package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/plateup/backend/internal/models"
)

// DefaultSearchDelay is how long search input settles before it is applied.
const DefaultSearchDelay = 300 * time.Millisecond

// Store owns one browsing session's recipe collection and filter state.
// The collection is fetched once; every filter change recomputes the
// derived list. Starting a new fetch cancels the previous in-flight one,
// so an abandoned session can never write stale data into the store.
type Store struct {
	client      *http.Client
	baseURL     string
	searchDelay time.Duration
	log         zerolog.Logger

	mu          sync.Mutex
	recipes     []models.Recipe
	filters     Filters
	derived     []models.Recipe
	searchTimer *time.Timer
	cancelFetch context.CancelFunc
}

// NewStore creates a store fetching from the given API base URL
// (e.g. "http://localhost:8080/api/v1").
func NewStore(baseURL string, log zerolog.Logger) *Store {
	return &Store{
		client:      &http.Client{Timeout: 30 * time.Second},
		baseURL:     baseURL,
		searchDelay: DefaultSearchDelay,
		log:         log.With().Str("component", "feed").Logger(),
		filters:     DefaultFilters(),
	}
}

// SetRecipes replaces the collection with static data, bypassing the fetch.
func (s *Store) SetRecipes(recipes []models.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes = recipes
	s.refresh()
}

// Fetch loads the full recipe collection. It cancels any fetch still in
// flight from an earlier call; a fetch that loses that race does not touch
// the store.
func (s *Store) Fetch(ctx context.Context) error {
	s.mu.Lock()
	if s.cancelFetch != nil {
		s.cancelFetch()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancelFetch = cancel
	s.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/recipes", nil)
	if err != nil {
		return fmt.Errorf("failed to build recipes request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch recipes: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("recipes fetch returned status %d", resp.StatusCode)
	}

	var recipes []models.Recipe
	if err := json.NewDecoder(resp.Body).Decode(&recipes); err != nil {
		return fmt.Errorf("failed to decode recipes: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		// A newer fetch superseded this one while it was decoding.
		return ctx.Err()
	}
	s.recipes = recipes
	s.refresh()
	s.log.Info().Int("count", len(recipes)).Msg("recipe collection loaded")
	return nil
}

// Close cancels any in-flight fetch and pending search propagation.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelFetch != nil {
		s.cancelFetch()
	}
	if s.searchTimer != nil {
		s.searchTimer.Stop()
	}
}

// SetSearch schedules a search-term change. Propagation is debounced:
// only the last value within the delay window is applied.
func (s *Store) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.searchTimer != nil {
		s.searchTimer.Stop()
	}
	s.searchTimer = time.AfterFunc(s.searchDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.filters.Search = term
		s.refresh()
	})
}

// SetCuisine updates the cuisine filter.
func (s *Store) SetCuisine(v string) {
	if v != AllCuisines && !validCuisine(v) {
		s.log.Warn().Str("cuisine", v).Msg("unrecognized cuisine filter, treating as unconstrained")
	}
	s.setFilter(func(f *Filters) { f.Cuisine = v })
}

// SetDifficulty updates the difficulty filter.
func (s *Store) SetDifficulty(v string) {
	if v != AllLevels && !validDifficulty(v) {
		s.log.Warn().Str("difficulty", v).Msg("unrecognized difficulty filter, treating as unconstrained")
	}
	s.setFilter(func(f *Filters) { f.Difficulty = v })
}

// SetTime updates the cooking-time bucket filter.
func (s *Store) SetTime(v string) {
	if v != AnyTime && v != TimeUnder30 && v != Time30To60 && v != TimeOverHour {
		s.log.Warn().Str("time", v).Msg("unrecognized time filter, treating as unconstrained")
	}
	s.setFilter(func(f *Filters) { f.Time = v })
}

// SetDietary updates the dietary-preference filter.
func (s *Store) SetDietary(v string) {
	if v != AllDiets && !validDietary(v) {
		s.log.Warn().Str("dietary", v).Msg("unrecognized dietary filter, treating as unconstrained")
	}
	s.setFilter(func(f *Filters) { f.Dietary = v })
}

// SetSortBy updates the sort order. Unrecognized values sort as latest.
func (s *Store) SetSortBy(v string) {
	if !contains(SortOptions, v) {
		s.log.Warn().Str("sortBy", v).Msg("unrecognized sort order, falling back to latest")
	}
	s.setFilter(func(f *Filters) { f.SortBy = v })
}

// Clear resets every filter to its sentinel and the sort to latest.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.searchTimer != nil {
		s.searchTimer.Stop()
	}
	s.filters = DefaultFilters()
	s.refresh()
}

// Filters returns the current filter state.
func (s *Store) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Recipes returns the current derived list.
func (s *Store) Recipes() []models.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.derived
}

func (s *Store) setFilter(apply func(*Filters)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply(&s.filters)
	s.refresh()
}

// refresh recomputes the derived list. Callers must hold mu.
func (s *Store) refresh() {
	s.derived = Derive(s.recipes, s.filters)
}
