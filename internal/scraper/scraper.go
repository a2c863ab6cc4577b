package scraper

import (
	"context"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"

	"github.com/pfrederiksen/plk-schedule/internal/config"
	"github.com/pfrederiksen/plk-schedule/internal/fixture"
	"github.com/pfrederiksen/plk-schedule/internal/logger"
)

var errNoRoundGroup = errors.New("round marker needs a capture group for the round number")

// Scraper handles fetching and parsing the schedule page
type Scraper struct {
	client    *http.Client
	url       string
	userAgent string
	strategy  string
	rules     *Rules
}

// New creates a Scraper from cfg.
func New(cfg config.Config) (*Scraper, error) {
	season, err := cfg.Season()
	if err != nil {
		return nil, errors.Wrap(err, "building season")
	}
	rules, err := NewRules(season, cfg.LookaheadLines, cfg.RoundMarker, cfg.Broadcasters, cfg.HeaderLabels)
	if err != nil {
		return nil, errors.Wrap(err, "compiling rules")
	}
	return &Scraper{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		url:       cfg.SourceURL,
		userAgent: cfg.UserAgent,
		strategy:  cfg.Strategy,
		rules:     rules,
	}, nil
}

// Source returns the page URL fixtures are read from.
func (s *Scraper) Source() string {
	return s.url
}

// Fetch downloads and parses the schedule page.
func (s *Scraper) Fetch(ctx context.Context) (*goquery.Document, error) {
	start := time.Now()
	defer func() { logger.RecordTiming("fetch", time.Since(start)) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching page")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "parsing HTML")
	}
	return doc, nil
}

// FetchFixtures fetches the page and extracts every fixture on it.
func (s *Scraper) FetchFixtures(ctx context.Context) ([]*fixture.Fixture, error) {
	logger.Info("Fetching schedule page", logger.Fields{"url": s.url})

	doc, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return s.ParseFixtures(doc)
}

// ParseFixtures runs the configured strategy over doc. Fixtures come back ordered by
// round, then by position on the page, with duplicate IDs removed.
func (s *Scraper) ParseFixtures(doc *goquery.Document) ([]*fixture.Fixture, error) {
	strategy := s.selectStrategy(doc)

	segments, err := strategy.Segments(doc)
	if errors.Is(err, ErrNoRoundsFound) && s.strategy != config.StrategyTable && strategy.Name() != "text" {
		// round headings may sit outside h1-h6 even when fixtures are tabulated
		logger.Warn("No round headings above tables, falling back to text flow", nil)
		strategy = NewTextStrategy(s.rules)
		segments, err = strategy.Segments(doc)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "locating rounds (%s layout)", strategy.Name())
	}
	sortSegments(segments)

	var fixtures []*fixture.Fixture
	for _, seg := range segments {
		found := strategy.Extract(seg)
		logger.Debug("Extracted round", logger.Fields{
			"round":    seg.Round,
			"fixtures": len(found),
		})
		fixtures = append(fixtures, found...)
	}

	unique := fixture.Dedupe(fixtures)
	valid := make([]*fixture.Fixture, 0, len(unique))
	for _, f := range unique {
		if err := f.Validate(); err != nil {
			logger.Warn("Dropping invalid fixture", logger.Fields{"id": f.ID, "reason": err.Error()})
			continue
		}
		logger.IncrCounter("fixtures.extracted")
		valid = append(valid, f)
	}

	logger.Info("Parsed schedule", logger.Fields{
		"layout":   strategy.Name(),
		"rounds":   len(segments),
		"fixtures": len(valid),
	})
	return valid, nil
}

func (s *Scraper) selectStrategy(doc *goquery.Document) Strategy {
	switch s.strategy {
	case config.StrategyText:
		return NewTextStrategy(s.rules)
	case config.StrategyTable:
		return NewTableStrategy(s.rules)
	default:
		return Detect(doc, s.rules)
	}
}
