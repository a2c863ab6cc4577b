package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/pfrederiksen/plk-schedule/internal/snapshot"
)

// WriteSummary prints the fixture count per round followed by the total.
func WriteSummary(w io.Writer, snap *snapshot.Snapshot) error {
	if snap.Meta.Count == 0 {
		_, err := fmt.Fprintln(w, "No fixtures found.")
		return err
	}

	byRound := snap.Rounds()
	rounds := make([]int, 0, len(byRound))
	for r := range byRound {
		rounds = append(rounds, r)
	}
	sort.Ints(rounds)

	for _, r := range rounds {
		played := 0
		for _, f := range snap.Matches {
			if f.Round == r && f.Score != nil {
				played++
			}
		}
		if _, err := fmt.Fprintf(w, "Round %2d: %d fixtures (%d played)\n", r, byRound[r], played); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nTotal: %d fixtures across %d rounds (updated %s)\n",
		snap.Meta.Count, len(rounds), snap.Meta.UpdatedAt)
	return err
}
