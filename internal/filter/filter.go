// Package filter narrows a fixture list down to selected teams and rounds.
//
// It is used for the optional calendar export, where a fan usually only wants
// the games of one or two clubs:
//
//	f := filter.NewFilter()
//	f.Teams = []string{"Trefl", "Legia"}
//	f.Rounds, _ = filter.ParseRounds("1-10")
//
//	games := f.Apply(fixtures)
package filter

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/plk-schedule/internal/fixture"
)

// Filter represents fixture filtering criteria
type Filter struct {
	// Team filtering (case-insensitive substring match on home or away)
	Teams []string `json:"teams,omitempty"`

	// Round filtering (exact round numbers)
	Rounds []int `json:"rounds,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match all fixtures until criteria are added.
func NewFilter() *Filter {
	return &Filter{
		Teams:  []string{},
		Rounds: []int{},
	}
}

// IsEmpty checks if the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return len(f.Teams) == 0 && len(f.Rounds) == 0
}

// Matches checks if a fixture matches all active filter criteria.
// An empty filter matches all fixtures.
//
// Matching logic:
//   - Teams: home or away must contain at least one team name (case-insensitive)
//   - Rounds: fixture round must be one of the listed rounds
func (f *Filter) Matches(fx *fixture.Fixture) bool {
	if f.IsEmpty() {
		return true
	}

	if len(f.Rounds) > 0 {
		matched := false
		for _, r := range f.Rounds {
			if fx.Round == r {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.Teams) > 0 {
		matched := false
		home := strings.ToLower(fx.Home)
		away := strings.ToLower(fx.Away)
		for _, team := range f.Teams {
			team = strings.ToLower(strings.TrimSpace(team))
			if team == "" {
				continue
			}
			if strings.Contains(home, team) || strings.Contains(away, team) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Apply returns the fixtures that match all criteria, preserving order.
// If the filter is empty, returns the original list unchanged.
func (f *Filter) Apply(fixtures []*fixture.Fixture) []*fixture.Fixture {
	if f.IsEmpty() {
		return fixtures
	}

	filtered := make([]*fixture.Fixture, 0, len(fixtures))
	for _, fx := range fixtures {
		if f.Matches(fx) {
			filtered = append(filtered, fx)
		}
	}

	return filtered
}

// String returns a human-readable description of the active filter criteria.
// Returns "No active filters" if the filter is empty.
// Format: "Teams: Trefl, Legia | Rounds: 1-3, 7"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if len(f.Teams) > 0 {
		parts = append(parts, fmt.Sprintf("Teams: %s", strings.Join(f.Teams, ", ")))
	}

	if len(f.Rounds) > 0 {
		parts = append(parts, fmt.Sprintf("Rounds: %s", FormatRounds(f.Rounds)))
	}

	return strings.Join(parts, " | ")
}
