// Package search derives filtered views over an in-memory flight list.
package search

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"airclient/internal/domain"
)

type Filters struct {
	Search      string
	Origin      string
	Destination string
	Status      string
}

// Engine applies a filter set to flight lists. The text search is debounced
// before it affects filtering, so rapid keystrokes do not recompute the
// view; origin, destination and status apply immediately.
type Engine struct {
	mu       sync.Mutex
	debounce time.Duration
	timer    *time.Timer

	filters Filters
	// committed is the search value filtering actually uses; filters.Search
	// holds the raw input and may run ahead of it.
	committed string
}

func NewEngine(debounce time.Duration) *Engine {
	return &Engine{debounce: debounce}
}

// SetSearch updates the raw search value immediately and commits it to the
// filter after the debounce delay. Fresh input cancels a pending commit.
func (e *Engine) SetSearch(value string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.filters.Search = value
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if e.debounce <= 0 {
		e.committed = value
		return
	}
	e.timer = time.AfterFunc(e.debounce, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.committed = value
	})
}

func (e *Engine) SetOrigin(value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filters.Origin = value
}

func (e *Engine) SetDestination(value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filters.Destination = value
}

func (e *Engine) SetStatus(value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filters.Status = value
}

func (e *Engine) Filters() Filters {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filters
}

// HasActiveFilters uses the raw search value, so the indicator can flip
// before the debounced list catches up.
func (e *Engine) HasActiveFilters() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	f := e.filters
	return f.Search != "" || f.Origin != "" || f.Destination != "" || f.Status != ""
}

// Reset clears all filters, including any pending debounced commit.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.filters = Filters{}
	e.committed = ""
}

// Apply returns the flights matching the current filter set. The input
// list is never mutated.
func (e *Engine) Apply(flights []domain.Flight) []domain.Flight {
	e.mu.Lock()
	search := strings.ToLower(e.committed)
	f := e.filters
	e.mu.Unlock()

	matched := make([]domain.Flight, 0, len(flights))
	for _, flight := range flights {
		if !matchesSearch(flight, search) {
			continue
		}
		if f.Origin != "" && flight.Origin != f.Origin {
			continue
		}
		if f.Destination != "" && flight.Destination != f.Destination {
			continue
		}
		// Flights carry no status; any concrete status value matches
		// nothing, same as the original behavior.
		if f.Status != "" && f.Status != "all" {
			continue
		}
		matched = append(matched, flight)
	}
	return matched
}

func matchesSearch(flight domain.Flight, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(flight.Origin), search) ||
		strings.Contains(strings.ToLower(flight.Destination), search) ||
		strings.Contains(strconv.FormatInt(flight.ID, 10), search)
}

// UniqueOrigins returns the sorted distinct origins for dropdowns.
func UniqueOrigins(flights []domain.Flight) []string {
	return uniqueField(flights, func(f domain.Flight) string { return f.Origin })
}

func UniqueDestinations(flights []domain.Flight) []string {
	return uniqueField(flights, func(f domain.Flight) string { return f.Destination })
}

func uniqueField(flights []domain.Flight, field func(domain.Flight) string) []string {
	seen := make(map[string]struct{}, len(flights))
	values := make([]string, 0, len(flights))
	for _, f := range flights {
		v := field(f)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
