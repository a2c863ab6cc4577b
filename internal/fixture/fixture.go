package fixture

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// Status is the derived state of a fixture.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusPlayed    Status = "played"
)

// KickoffLayout always renders a numeric UTC offset, never "Z".
const KickoffLayout = "2006-01-02T15:04:05-07:00"

// Kickoff is a start time with a fixed UTC offset and minute precision.
type Kickoff time.Time

// Time returns the underlying time.
func (k Kickoff) Time() time.Time {
	return time.Time(k)
}

func (k Kickoff) String() string {
	return time.Time(k).Format(KickoffLayout)
}

// MarshalJSON encodes the kickoff as an ISO-8601 string with its offset.
func (k Kickoff) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON decodes a kickoff written by MarshalJSON.
func (k *Kickoff) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.Newf("kickoff: expected JSON string, got %s", data)
	}
	t, err := time.Parse(KickoffLayout, string(data[1:len(data)-1]))
	if err != nil {
		return errors.Wrap(err, "kickoff")
	}
	*k = Kickoff(t)
	return nil
}

// Score is the final result of a played fixture.
type Score struct {
	Home int `json:"home" validate:"gte=0"`
	Away int `json:"away" validate:"gte=0"`
}

// Fixture represents one scheduled or completed game
type Fixture struct {
	ID     string  `json:"id" validate:"required"`
	Round  int     `json:"round" validate:"gte=1"`
	Home   string  `json:"home" validate:"required"`
	Away   string  `json:"away" validate:"required"`
	Start  Kickoff `json:"start"`
	TV     *string `json:"tv"`
	Status Status  `json:"status" validate:"oneof=scheduled played"`
	Score  *Score  `json:"score"`
	Winner *string `json:"winner"`
}

// New creates a Fixture with ID, Status and Winner derived from the given fields.
// tv may be empty, score may be nil.
func New(round int, home, away string, start Kickoff, tv string, score *Score) *Fixture {
	t := start.Time()
	f := &Fixture{
		ID:     GenerateID(round, t.Day(), int(t.Month()), home, away),
		Round:  round,
		Home:   home,
		Away:   away,
		Start:  start,
		Status: StatusScheduled,
		Score:  score,
	}
	if tv != "" {
		f.TV = &tv
	}
	if score != nil {
		f.Status = StatusPlayed
		f.Winner = winner(home, away, *score)
	}
	return f
}

// winner returns nil on a tie; the league has no drawn games so no draw value exists.
func winner(home, away string, s Score) *string {
	switch {
	case s.Home > s.Away:
		return &home
	case s.Away > s.Home:
		return &away
	default:
		return nil
	}
}

var validate = validator.New()

// Validate checks field constraints and the status/score/winner invariants.
func (f *Fixture) Validate() error {
	if err := validate.Struct(f); err != nil {
		return errors.Wrapf(err, "fixture %s", f.ID)
	}
	if (f.Status == StatusPlayed) != (f.Score != nil) {
		return errors.Newf("fixture %s: status %q disagrees with score", f.ID, f.Status)
	}
	if f.Score == nil {
		if f.Winner != nil {
			return errors.Newf("fixture %s: winner set without score", f.ID)
		}
		return nil
	}
	want := winner(f.Home, f.Away, *f.Score)
	switch {
	case want == nil && f.Winner != nil:
		return errors.Newf("fixture %s: winner set on tied score", f.ID)
	case want != nil && (f.Winner == nil || *f.Winner != *want):
		return errors.Newf("fixture %s: winner does not match score", f.ID)
	}
	return nil
}
