package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/plk-schedule/internal/fixture"
)

// Segment is the part of the page belonging to one round. Text strategies fill Lines,
// the table strategy fills Rows.
type Segment struct {
	Round int
	Lines []string
	Rows  []Row
}

// Row is one table row.
type Row []Cell

// Cell holds a table cell's normalized text and the alt text of its images.
type Cell struct {
	Text string
	Alts []string
}

// Strategy extracts fixtures from one page layout.
type Strategy interface {
	Name() string
	Segments(doc *goquery.Document) ([]Segment, error)
	Extract(seg Segment) []*fixture.Fixture
}

// dateTimePattern matches "DD.MM" followed by optional separators and "HH:MM",
// e.g. "23.12/ 17:30" or "11.01 15:30".
var dateTimePattern = regexp.MustCompile(`(?:^|[^\d.])(\d{1,2})\.(\d{1,2})\.?[\s/,;|-]*(\d{1,2}):(\d{2})(?:\D|$)`)

// dateTime is a parsed kickoff token and the byte offset just past it.
type dateTime struct {
	day, month, hour, minute int
	end                      int
}

func findDateTime(s string) (dateTime, bool) {
	m := dateTimePattern.FindStringSubmatchIndex(s)
	if m == nil {
		return dateTime{}, false
	}
	atoi := func(i int) int {
		n, _ := strconv.Atoi(s[m[2*i]:m[2*i+1]])
		return n
	}
	return dateTime{
		day:    atoi(1),
		month:  atoi(2),
		hour:   atoi(3),
		minute: atoi(4),
		end:    m[9],
	}, true
}

// Rules holds the tunable heuristics shared by both strategies.
type Rules struct {
	Season         fixture.Season
	LookaheadLines int
	Marker         *regexp.Regexp
	Broadcaster    *regexp.Regexp
	HeaderLabels   []string
}

// NewRules compiles the round marker and broadcaster alternation.
func NewRules(season fixture.Season, lookahead int, marker string, broadcasters, headerLabels []string) (*Rules, error) {
	if marker == "" {
		marker = DefaultRoundMarker
	}
	markerRe, err := regexp.Compile(marker)
	if err != nil {
		return nil, err
	}
	if markerRe.NumSubexp() < 1 {
		return nil, errNoRoundGroup
	}

	quoted := make([]string, 0, len(broadcasters))
	for _, b := range broadcasters {
		if b = strings.TrimSpace(b); b != "" {
			quoted = append(quoted, regexp.QuoteMeta(b))
		}
	}
	var broadcasterRe *regexp.Regexp
	if len(quoted) > 0 {
		broadcasterRe = regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)`)
	}

	labels := make([]string, 0, len(headerLabels))
	for _, l := range headerLabels {
		if l = strings.ToLower(fixture.Clean(l)); l != "" {
			labels = append(labels, l)
		}
	}

	return &Rules{
		Season:         season,
		LookaheadLines: lookahead,
		Marker:         markerRe,
		Broadcaster:    broadcasterRe,
		HeaderLabels:   labels,
	}, nil
}

// broadcast returns the text from the first broadcaster name to the end of its line.
func (r *Rules) broadcast(line string) (string, bool) {
	if r.Broadcaster == nil {
		return "", false
	}
	loc := r.Broadcaster.FindStringIndex(line)
	if loc == nil {
		return "", false
	}
	return fixture.Clean(line[loc[0]:]), true
}

// isHeaderLabel reports whether name begins with a table header label such as
// "Gospodarz", so remnants like "Gospodarz:" or "Gospodarze" are not taken for teams.
func (r *Rules) isHeaderLabel(name string) bool {
	lower := strings.ToLower(name)
	for _, label := range r.HeaderLabels {
		if strings.HasPrefix(lower, label) {
			return true
		}
	}
	return false
}

// hasParticipants reports whether both team names survived normalization.
func hasParticipants(home, away string) bool {
	return home != "" && away != ""
}

// hasEnoughCells reports whether a row can carry home, away and kickoff.
func hasEnoughCells(row Row) bool {
	return len(row) >= 3
}

// placeholderAlts are image alt values that carry no broadcaster name.
var placeholderAlts = map[string]bool{
	"":      true,
	"tv":    true,
	"logo":  true,
	"image": true,
	"img":   true,
	"icon":  true,
	"ikona": true,
}

func isPlaceholderAlt(alt string) bool {
	return placeholderAlts[strings.ToLower(alt)]
}

// Detect picks the table strategy when some table row has a kickoff token in its third
// cell, and the text strategy otherwise.
func Detect(doc *goquery.Document, rules *Rules) Strategy {
	tabular := false
	doc.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		cells := tr.ChildrenFiltered("td, th")
		if cells.Length() < 3 {
			return true
		}
		if _, ok := findDateTime(fixture.Clean(cells.Eq(2).Text())); ok {
			tabular = true
			return false
		}
		return true
	})
	if tabular {
		return &TableStrategy{rules: rules}
	}
	return &TextStrategy{rules: rules}
}
