package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/plk-schedule/internal/calendar"
	"github.com/pfrederiksen/plk-schedule/internal/filter"
	"github.com/pfrederiksen/plk-schedule/internal/storage"
)

// Builds an .ics file from an existing matches.json without hitting plk.pl.
//
//	go run ./scripts matches.json Trefl
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: calendar-from-snapshot <matches.json> [team...]")
		os.Exit(1)
	}

	store, err := storage.New(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	snap, err := store.LoadSnapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading snapshot: %v\n", err)
		os.Exit(1)
	}

	f := filter.NewFilter()
	f.Teams = append(f.Teams, os.Args[2:]...)
	selected := f.Apply(snap.Matches)

	icsContent := calendar.GenerateICS(selected, time.Now())

	filename := "plk-schedule.ics"
	if err := store.WriteFile(filename, []byte(icsContent)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated calendar file: %s (%d of %d fixtures, %s)\n",
		filename, len(selected), len(snap.Matches), f)
}
