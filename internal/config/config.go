// Package config loads the runtime configuration for plk-schedule.
//
// Every value the scraper used to hard-code (page URL, client identifier, timezone
// offset, season boundary, lookahead window) is read from PLK_* environment variables,
// optionally seeded from a .env file, and validated before the pipeline is built.
package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/pfrederiksen/plk-schedule/internal/filter"
	"github.com/pfrederiksen/plk-schedule/internal/fixture"
)

const (
	DefaultSourceURL           = "https://plk.pl/terminarz"
	DefaultUserAgent           = "plk-schedule/1.1 (github.com/pfrederiksen/plk-schedule)"
	DefaultTimeout             = 40 * time.Second
	DefaultUTCOffset           = "+01:00"
	DefaultSeasonStartYear     = 2025
	DefaultSeasonBoundaryMonth = 7
	DefaultLookaheadLines      = 12
	DefaultOutputPath          = "matches.json"
)

// Strategy names accepted by PLK_STRATEGY.
const (
	StrategyAuto  = "auto"
	StrategyText  = "text"
	StrategyTable = "table"
)

var (
	DefaultBroadcasters = []string{"Polsat", "YouTube", "Emocje"}
	DefaultHeaderLabels = []string{"gospodarz", "gość", "gości", "gosc", "home", "away", "host", "guest"}
)

// Config stores runtime configuration for a single scrape run.
type Config struct {
	SourceURL           string        `validate:"required,url"`
	UserAgent           string        `validate:"required"`
	Timeout             time.Duration `validate:"gt=0"`
	UTCOffset           string        `validate:"required"`
	SeasonStartYear     int           `validate:"gte=2000,lte=2100"`
	SeasonBoundaryMonth int           `validate:"gte=1,lte=12"`
	LookaheadLines      int           `validate:"gte=1,lte=100"`
	RoundMarker         string
	Broadcasters        []string      `validate:"min=1,dive,required"`
	HeaderLabels        []string      `validate:"dive,required"`
	Strategy            string        `validate:"oneof=auto text table"`
	OutputPath          string        `validate:"required"`
	CalendarPath        string
	CalendarTeams       []string
	CalendarRounds      string
	LogLevel            string
}

// Default returns the configuration used when no environment overrides are present.
func Default() Config {
	return Config{
		SourceURL:           DefaultSourceURL,
		UserAgent:           DefaultUserAgent,
		Timeout:             DefaultTimeout,
		UTCOffset:           DefaultUTCOffset,
		SeasonStartYear:     DefaultSeasonStartYear,
		SeasonBoundaryMonth: DefaultSeasonBoundaryMonth,
		LookaheadLines:      DefaultLookaheadLines,
		Broadcasters:        append([]string(nil), DefaultBroadcasters...),
		HeaderLabels:        append([]string(nil), DefaultHeaderLabels...),
		Strategy:            StrategyAuto,
		OutputPath:          DefaultOutputPath,
		LogLevel:            "info",
	}
}

// Load reads an optional .env file from the working directory, applies PLK_* overrides
// on top of Default and validates the result.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrap(err, "loading .env")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (Config, error) {
	cfg := Default()

	cfg.SourceURL = envOrDefault("PLK_SOURCE_URL", cfg.SourceURL)
	cfg.UserAgent = envOrDefault("PLK_USER_AGENT", cfg.UserAgent)
	cfg.UTCOffset = envOrDefault("PLK_UTC_OFFSET", cfg.UTCOffset)
	cfg.Strategy = strings.ToLower(envOrDefault("PLK_STRATEGY", cfg.Strategy))
	cfg.OutputPath = envOrDefault("PLK_OUTPUT", cfg.OutputPath)
	cfg.CalendarPath = envOrDefault("PLK_CALENDAR_OUTPUT", cfg.CalendarPath)
	cfg.LogLevel = envOrDefault("PLK_LOG_LEVEL", cfg.LogLevel)
	cfg.RoundMarker = envOrDefault("PLK_ROUND_MARKER", cfg.RoundMarker)
	cfg.Broadcasters = listEnvOrDefault("PLK_BROADCASTERS", cfg.Broadcasters)
	cfg.HeaderLabels = listEnvOrDefault("PLK_HEADER_LABELS", cfg.HeaderLabels)
	cfg.CalendarTeams = listEnvOrDefault("PLK_CALENDAR_TEAMS", cfg.CalendarTeams)
	cfg.CalendarRounds = envOrDefault("PLK_CALENDAR_ROUNDS", cfg.CalendarRounds)

	var err error
	if cfg.Timeout, err = durationEnv("PLK_TIMEOUT", cfg.Timeout); err != nil {
		return Config{}, err
	}
	if cfg.SeasonStartYear, err = intEnv("PLK_SEASON_START_YEAR", cfg.SeasonStartYear); err != nil {
		return Config{}, err
	}
	if cfg.SeasonBoundaryMonth, err = intEnv("PLK_SEASON_BOUNDARY_MONTH", cfg.SeasonBoundaryMonth); err != nil {
		return Config{}, err
	}
	if cfg.LookaheadLines, err = intEnv("PLK_LOOKAHEAD_LINES", cfg.LookaheadLines); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and that the UTC offset, round marker and
// calendar round selection parse.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if _, err := fixture.ParseOffset(c.UTCOffset); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if c.RoundMarker != "" {
		re, err := regexp.Compile(c.RoundMarker)
		if err != nil {
			return errors.Wrap(err, "invalid config: round marker")
		}
		if re.NumSubexp() < 1 {
			return errors.New("invalid config: round marker needs a capture group")
		}
	}
	if _, err := filter.ParseRounds(c.CalendarRounds); err != nil {
		return errors.Wrap(err, "invalid config: calendar rounds")
	}
	return nil
}

// Offset returns the fixed zone kickoff times are expressed in.
func (c Config) Offset() (*time.Location, error) {
	return fixture.ParseOffset(c.UTCOffset)
}

// Season returns the season model used for year inference.
func (c Config) Season() (fixture.Season, error) {
	loc, err := c.Offset()
	if err != nil {
		return fixture.Season{}, err
	}
	return fixture.Season{
		StartYear:     c.SeasonStartYear,
		BoundaryMonth: time.Month(c.SeasonBoundaryMonth),
		Location:      loc,
	}, nil
}

func envOrDefault(key, defaultValue string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultValue
}

func listEnvOrDefault(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func intEnv(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	return val, nil
}

func durationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	return val, nil
}
