package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/plk-schedule/internal/fixture"
	"github.com/pfrederiksen/plk-schedule/internal/logger"
)

// Logical columns of a schedule table row.
const (
	colHome = iota
	colAway
	colKickoff
	colTV
	colScore
)

// altSeparator joins several broadcaster logos in one cell.
const altSeparator = " / "

// TableStrategy reads fixtures from schedule tables placed under round headings.
type TableStrategy struct {
	rules *Rules
}

// NewTableStrategy returns the tabular strategy.
func NewTableStrategy(rules *Rules) *TableStrategy {
	return &TableStrategy{rules: rules}
}

func (s *TableStrategy) Name() string { return "table" }

// Segments groups table rows under the round heading that precedes them.
func (s *TableStrategy) Segments(doc *goquery.Document) ([]Segment, error) {
	return LocateTableRounds(doc, s.rules.Marker)
}

// Extract reads home, away, kickoff, TV and score from fixed columns of each row.
func (s *TableStrategy) Extract(seg Segment) []*fixture.Fixture {
	fixtures := make([]*fixture.Fixture, 0, len(seg.Rows))
	for _, row := range seg.Rows {
		if !hasEnoughCells(row) {
			logger.IncrCounter("rows.skipped.cells")
			continue
		}

		home, away := row[colHome].Text, row[colAway].Text
		if !hasParticipants(home, away) {
			logger.IncrCounter("candidates.skipped.participants")
			continue
		}
		if s.rules.isHeaderLabel(home) || s.rules.isHeaderLabel(away) {
			logger.IncrCounter("candidates.skipped.header")
			continue
		}

		dt, ok := findDateTime(row[colKickoff].Text)
		if !ok {
			logger.IncrCounter("candidates.skipped.datetime")
			continue
		}
		start, ok := s.rules.Season.Kickoff(dt.day, dt.month, dt.hour, dt.minute)
		if !ok {
			logger.IncrCounter("candidates.skipped.datetime")
			continue
		}

		var tv string
		if len(row) > colTV {
			tv = cellBroadcast(row[colTV])
		}
		var score *fixture.Score
		if len(row) > colScore {
			score, _ = fixture.ParseScore(row[colScore].Text)
		}

		fixtures = append(fixtures, fixture.New(seg.Round, home, away, start, tv, score))
	}
	return fixtures
}

// cellBroadcast prefers the joined alt text of broadcaster logos and falls back to the
// cell's own text.
func cellBroadcast(c Cell) string {
	alts := make([]string, 0, len(c.Alts))
	for _, alt := range c.Alts {
		if !isPlaceholderAlt(alt) {
			alts = append(alts, alt)
		}
	}
	if len(alts) > 0 {
		return strings.Join(alts, altSeparator)
	}
	return c.Text
}

// tableRows converts the direct rows of a table, including those inside thead/tbody.
func tableRows(table *goquery.Selection) []Row {
	var rows []Row
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		// skip rows of nested tables
		if tr.Closest("table").Get(0) != table.Get(0) {
			return
		}
		var row Row
		tr.ChildrenFiltered("td, th").Each(func(_ int, td *goquery.Selection) {
			cell := Cell{Text: fixture.Clean(td.Text())}
			td.Find("img").Each(func(_ int, img *goquery.Selection) {
				alt, _ := img.Attr("alt")
				cell.Alts = append(cell.Alts, fixture.Clean(alt))
			})
			row = append(row, cell)
		})
		rows = append(rows, row)
	})
	return rows
}
