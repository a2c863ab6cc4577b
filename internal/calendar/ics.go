// Package calendar renders fixtures as an iCalendar feed.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/plk-schedule/internal/fixture"
)

// MatchDuration is the nominal length of a calendar entry.
const MatchDuration = 2 * time.Hour

// GenerateICS generates an iCalendar (.ics) file with one VEVENT per fixture.
// now is used for DTSTAMP.
func GenerateICS(fixtures []*fixture.Fixture, now time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//PLK Schedule//plk-schedule//PL\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("X-WR-CALNAME:PLK terminarz\r\n")

	stamp := formatICSTime(now)
	for _, f := range fixtures {
		writeEvent(&ics, f, stamp)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func writeEvent(ics *strings.Builder, f *fixture.Fixture, stamp string) {
	start := f.Start.Time()

	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s@plk.pl\r\n", f.ID))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", stamp))
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(start)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(start.Add(MatchDuration))))
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary(f))))
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description(f))))
	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

func summary(f *fixture.Fixture) string {
	s := fmt.Sprintf("%s - %s", f.Home, f.Away)
	if f.Score != nil {
		s = fmt.Sprintf("%s (%d:%d)", s, f.Score.Home, f.Score.Away)
	}
	return s
}

func description(f *fixture.Fixture) string {
	lines := []string{fmt.Sprintf("Kolejka %d", f.Round)}
	if f.TV != nil {
		lines = append(lines, "TV: "+*f.TV)
	}
	if f.Score != nil {
		lines = append(lines, fmt.Sprintf("Wynik: %d:%d", f.Score.Home, f.Score.Away))
	}
	return strings.Join(lines, "\n")
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
