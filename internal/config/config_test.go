package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultSourceURL, cfg.SourceURL)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, "+01:00", cfg.UTCOffset)
	assert.Equal(t, 2025, cfg.SeasonStartYear)
	assert.Equal(t, 7, cfg.SeasonBoundaryMonth)
	assert.Equal(t, 12, cfg.LookaheadLines)
	assert.Equal(t, StrategyAuto, cfg.Strategy)
	assert.Equal(t, "matches.json", cfg.OutputPath)
	assert.Empty(t, cfg.CalendarPath)
	assert.Equal(t, []string{"Polsat", "YouTube", "Emocje"}, cfg.Broadcasters)
	assert.Equal(t, []string{"gospodarz", "gość", "gości", "gosc", "home", "away", "host", "guest"}, cfg.HeaderLabels)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PLK_SOURCE_URL", "https://example.com/terminarz")
	t.Setenv("PLK_UTC_OFFSET", "+02:00")
	t.Setenv("PLK_TIMEOUT", "5s")
	t.Setenv("PLK_SEASON_START_YEAR", "2026")
	t.Setenv("PLK_SEASON_BOUNDARY_MONTH", "8")
	t.Setenv("PLK_LOOKAHEAD_LINES", "6")
	t.Setenv("PLK_STRATEGY", "TABLE")
	t.Setenv("PLK_BROADCASTERS", "Polsat, Canal+ ,")
	t.Setenv("PLK_CALENDAR_OUTPUT", "plk.ics")
	t.Setenv("PLK_CALENDAR_TEAMS", "Trefl,Legia")
	t.Setenv("PLK_CALENDAR_ROUNDS", "1-5")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/terminarz", cfg.SourceURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 2026, cfg.SeasonStartYear)
	assert.Equal(t, 8, cfg.SeasonBoundaryMonth)
	assert.Equal(t, 6, cfg.LookaheadLines)
	assert.Equal(t, StrategyTable, cfg.Strategy)
	assert.Equal(t, []string{"Polsat", "Canal+"}, cfg.Broadcasters)
	assert.Equal(t, "plk.ics", cfg.CalendarPath)
	assert.Equal(t, []string{"Trefl", "Legia"}, cfg.CalendarTeams)
	assert.Equal(t, "1-5", cfg.CalendarRounds)

	season, err := cfg.Season()
	require.NoError(t, err)
	assert.Equal(t, time.August, season.BoundaryMonth)
	_, offset := time.Date(2026, 1, 1, 0, 0, 0, 0, season.Location).Zone()
	assert.Equal(t, 2*60*60, offset)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"boundary month zero", "PLK_SEASON_BOUNDARY_MONTH", "0"},
		{"boundary month thirteen", "PLK_SEASON_BOUNDARY_MONTH", "13"},
		{"non-numeric year", "PLK_SEASON_START_YEAR", "twenty"},
		{"bad duration", "PLK_TIMEOUT", "forever"},
		{"zero lookahead", "PLK_LOOKAHEAD_LINES", "0"},
		{"offset without sign", "PLK_UTC_OFFSET", "01:00"},
		{"offset out of range", "PLK_UTC_OFFSET", "+25:00"},
		{"unknown strategy", "PLK_STRATEGY", "xpath"},
		{"not a url", "PLK_SOURCE_URL", "terminarz"},
		{"marker without group", "PLK_ROUND_MARKER", `kolejka`},
		{"marker does not compile", "PLK_ROUND_MARKER", `(\d+ kolejka`},
		{"calendar rounds reversed", "PLK_CALENDAR_ROUNDS", "9-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PLK_OUTPUT=out/matches.json\n"), 0600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		os.Chdir(wd)
		os.Unsetenv("PLK_OUTPUT")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "out/matches.json", cfg.OutputPath)
}

func TestLoad_WithoutDotEnv(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultOutputPath, cfg.OutputPath)
}

func TestDefault_ListsAreCopies(t *testing.T) {
	cfg := Default()
	cfg.Broadcasters[0] = "changed"

	assert.Equal(t, "Polsat", DefaultBroadcasters[0])
}
