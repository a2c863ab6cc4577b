package scraper

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"

	"github.com/pfrederiksen/plk-schedule/internal/fixture"
)

// ErrNoRoundsFound means the page carried no round markers at all.
var ErrNoRoundsFound = errors.New("no round markers found")

// DefaultRoundMarker matches headings such as "#### 14 kolejka" or "14. Kolejka".
// The first group must capture the round number.
const DefaultRoundMarker = `(?im)^[#*\s\p{P}]*(\d{1,3})\s*\.?\s*kolejka\b`

// TextRound is the slice of page text that belongs to one round.
type TextRound struct {
	Number int
	Text   string
}

// LocateRounds splits text at every marker match. Each round's text runs from the end
// of its marker to the start of the next marker, or to the end of text.
func LocateRounds(text string, marker *regexp.Regexp) ([]TextRound, error) {
	var locs [][]int
	for _, loc := range marker.FindAllStringSubmatchIndex(text, -1) {
		if roundNumber(text[loc[2]:loc[3]]) > 0 {
			locs = append(locs, loc)
		}
	}
	if len(locs) == 0 {
		return nil, ErrNoRoundsFound
	}

	rounds := make([]TextRound, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		rounds = append(rounds, TextRound{
			Number: roundNumber(text[loc[2]:loc[3]]),
			Text:   text[loc[1]:end],
		})
	}
	return rounds, nil
}

// LocateTableRounds assigns each table to the closest preceding element that carries
// a round marker. Labels may sit in headings, paragraphs, divs or a table caption.
// Tables before the first marker are ignored.
func LocateTableRounds(doc *goquery.Document, marker *regexp.Regexp) ([]Segment, error) {
	var segments []Segment
	startRound := func(text string) bool {
		n := markerRound(marker, text)
		if n == 0 {
			return false
		}
		segments = append(segments, Segment{Round: n})
		return true
	}

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		switch goquery.NodeName(sel) {
		case "table":
			startRound(fixture.Clean(sel.ChildrenFiltered("caption").Text()))
			if len(segments) == 0 {
				return
			}
			cur := &segments[len(segments)-1]
			cur.Rows = append(cur.Rows, tableRows(sel)...)
			return
		}
		if !isRoundLabel(sel, marker) {
			return
		}
		startRound(fixture.Clean(sel.Text()))
	})

	if len(segments) == 0 {
		return nil, ErrNoRoundsFound
	}
	return segments, nil
}

// isRoundLabel reports whether sel is the innermost element outside any table whose
// text carries a round marker. Page metadata and scripts never label a round.
func isRoundLabel(sel *goquery.Selection, marker *regexp.Regexp) bool {
	if sel.Closest("table, head, script, style, noscript, template").Length() > 0 || sel.Find("table").Length() > 0 {
		return false
	}
	if markerRound(marker, fixture.Clean(sel.Text())) == 0 {
		return false
	}
	inner := false
	sel.Children().EachWithBreak(func(_ int, child *goquery.Selection) bool {
		if markerRound(marker, fixture.Clean(child.Text())) > 0 {
			inner = true
			return false
		}
		return true
	})
	return !inner
}

// markerRound returns the round number carried by text, or 0.
func markerRound(marker *regexp.Regexp, text string) int {
	m := marker.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	return roundNumber(m[1])
}

// sortSegments orders segments by round, keeping page order for equal rounds.
func sortSegments(segments []Segment) {
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Round < segments[j].Round
	})
}

func roundNumber(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
