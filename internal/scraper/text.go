package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pfrederiksen/plk-schedule/internal/fixture"
	"github.com/pfrederiksen/plk-schedule/internal/logger"
)

// TextStrategy reads fixtures from the page's text flow, where each fixture appears as
// consecutive lines: home, away, "DD.MM/ HH:MM", then optional TV and score lines.
type TextStrategy struct {
	rules *Rules
}

// NewTextStrategy returns the text-flow strategy.
func NewTextStrategy(rules *Rules) *TextStrategy {
	return &TextStrategy{rules: rules}
}

func (s *TextStrategy) Name() string { return "text" }

// Segments flattens the document to lines and splits them at round markers.
func (s *TextStrategy) Segments(doc *goquery.Document) ([]Segment, error) {
	text := strings.Join(documentLines(doc), "\n")
	rounds, err := LocateRounds(text, s.rules.Marker)
	if err != nil {
		return nil, err
	}

	segments := make([]Segment, 0, len(rounds))
	for _, r := range rounds {
		segments = append(segments, Segment{Round: r.Number, Lines: splitLines(r.Text)})
	}
	return segments, nil
}

// Extract yields one fixture per kickoff token whose two preceding lines name the teams.
// The trailing window for TV and score stops before the next fixture's team lines.
func (s *TextStrategy) Extract(seg Segment) []*fixture.Fixture {
	lines := seg.Lines

	var idx []int
	tokens := make(map[int]dateTime)
	for i, line := range lines {
		if dt, ok := findDateTime(line); ok {
			idx = append(idx, i)
			tokens[i] = dt
		}
	}

	fixtures := make([]*fixture.Fixture, 0, len(idx))
	prev := -1
	for k, i := range idx {
		last := prev
		prev = i
		// team lines must sit after the previous kickoff line
		if i-2 <= last {
			logger.IncrCounter("candidates.skipped.participants")
			continue
		}

		home, away := fixture.Clean(lines[i-2]), fixture.Clean(lines[i-1])
		if !hasParticipants(home, away) {
			logger.IncrCounter("candidates.skipped.participants")
			continue
		}
		if s.rules.isHeaderLabel(home) || s.rules.isHeaderLabel(away) {
			logger.IncrCounter("candidates.skipped.header")
			continue
		}

		dt := tokens[i]
		start, ok := s.rules.Season.Kickoff(dt.day, dt.month, dt.hour, dt.minute)
		if !ok {
			logger.IncrCounter("candidates.skipped.datetime")
			continue
		}

		end := i + 1 + s.rules.LookaheadLines
		if k+1 < len(idx) && idx[k+1]-2 < end {
			end = idx[k+1] - 2
		}
		if end > len(lines) {
			end = len(lines)
		}
		window := []string{lines[i][dt.end:]}
		if end > i+1 {
			window = append(window, lines[i+1:end]...)
		}

		tv, score := s.rules.scanWindow(window)
		fixtures = append(fixtures, fixture.New(seg.Round, home, away, start, tv, score))
	}
	return fixtures
}

// scanWindow returns the first broadcaster label and the first score in window.
func (r *Rules) scanWindow(window []string) (string, *fixture.Score) {
	var (
		tv    string
		score *fixture.Score
	)
	for _, line := range window {
		if tv == "" {
			if label, ok := r.broadcast(line); ok {
				tv = label
			}
		}
		if score == nil {
			if sc, ok := fixture.ParseScore(line); ok {
				score = sc
			}
		}
	}
	return tv, score
}

// documentLines returns every non-blank text node of the document, trimmed, in
// document order. Script and style contents are skipped.
func documentLines(doc *goquery.Document) []string {
	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				lines = append(lines, t)
			}
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return lines
}

// splitLines splits text into trimmed non-blank lines.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
