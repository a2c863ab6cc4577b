package fixture

import (
	"regexp"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
)

var offsetPattern = regexp.MustCompile(`^([+-])(\d{2}):(\d{2})$`)

// ParseOffset turns "+01:00" style offsets into a fixed-zone location.
func ParseOffset(offset string) (*time.Location, error) {
	m := offsetPattern.FindStringSubmatch(offset)
	if m == nil {
		return nil, errors.Newf("offset %q: want ±HH:MM", offset)
	}
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	if hours > 14 || minutes > 59 {
		return nil, errors.Newf("offset %q out of range", offset)
	}
	secs := hours*3600 + minutes*60
	if m[1] == "-" {
		secs = -secs
	}
	return time.FixedZone(offset, secs), nil
}

// Season maps a bare day/month onto a calendar year. Months on or after
// BoundaryMonth belong to StartYear, earlier months to the year after.
type Season struct {
	StartYear     int
	BoundaryMonth time.Month
	Location      *time.Location
}

// Year infers the calendar year for month.
func (s Season) Year(month time.Month) int {
	if month >= s.BoundaryMonth {
		return s.StartYear
	}
	return s.StartYear + 1
}

// Kickoff builds a start time in the season's zone. It reports false for values
// that do not name a real calendar instant, such as 31.02 or 24:00.
func (s Season) Kickoff(day, month, hour, minute int) (Kickoff, bool) {
	if month < 1 || month > 12 || day < 1 || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Kickoff{}, false
	}
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	t := time.Date(s.Year(time.Month(month)), time.Month(month), day, hour, minute, 0, 0, loc)
	if t.Day() != day || int(t.Month()) != month {
		return Kickoff{}, false
	}
	return Kickoff(t), true
}
