// Package snapshot assembles extracted fixtures and run metadata into the payload
// written to matches.json.
package snapshot

import (
	"time"

	"github.com/pfrederiksen/plk-schedule/internal/fixture"
)

// UpdatedAtLayout is UTC with second precision and a literal Z suffix.
const UpdatedAtLayout = "2006-01-02T15:04:05Z"

// Meta describes one scrape run.
type Meta struct {
	Source    string `json:"source"`
	UpdatedAt string `json:"updated_at"`
	Count     int    `json:"count"`
}

// Snapshot is the output artifact of one run.
type Snapshot struct {
	Meta    Meta               `json:"meta"`
	Matches []*fixture.Fixture `json:"matches"`
}

// Assemble wraps fixtures, in the order given, with run metadata.
func Assemble(source string, now time.Time, fixtures []*fixture.Fixture) *Snapshot {
	matches := make([]*fixture.Fixture, len(fixtures))
	copy(matches, fixtures)

	return &Snapshot{
		Meta: Meta{
			Source:    source,
			UpdatedAt: now.UTC().Format(UpdatedAtLayout),
			Count:     len(matches),
		},
		Matches: matches,
	}
}

// Rounds returns the number of fixtures per round, keyed by round number.
func (s *Snapshot) Rounds() map[int]int {
	rounds := make(map[int]int)
	for _, f := range s.Matches {
		rounds[f.Round]++
	}
	return rounds
}
