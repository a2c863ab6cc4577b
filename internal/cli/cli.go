package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/plk-schedule/internal/calendar"
	"github.com/pfrederiksen/plk-schedule/internal/config"
	"github.com/pfrederiksen/plk-schedule/internal/filter"
	"github.com/pfrederiksen/plk-schedule/internal/fixture"
	"github.com/pfrederiksen/plk-schedule/internal/logger"
	"github.com/pfrederiksen/plk-schedule/internal/scraper"
	"github.com/pfrederiksen/plk-schedule/internal/snapshot"
	"github.com/pfrederiksen/plk-schedule/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plk-schedule",
		Short: "Scrape the PLK basketball schedule into matches.json",
		Long: `Fetches the Polish basketball league schedule page once, extracts every
fixture it can recognise and writes a JSON snapshot. Configuration is read from
PLK_* environment variables and an optional .env file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runScrape,
	}
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.SetDefault(logger.New(logger.ParseLevel(cfg.LogLevel), cmd.ErrOrStderr()))
	defer logger.Sync()

	return Run(cmd.Context(), cfg, cmd.OutOrStdout(), time.Now())
}

// Run executes one scrape: fetch, extract, persist, report. Nothing is written
// when the page cannot be fetched or carries no round markers.
func Run(ctx context.Context, cfg config.Config, out io.Writer, now time.Time) error {
	start := time.Now()
	logger.ResetMetrics()

	sc, err := scraper.New(cfg)
	if err != nil {
		return errors.Wrap(err, "initializing scraper")
	}

	fixtures, err := sc.FetchFixtures(ctx)
	if err != nil {
		return errors.Wrap(err, "scraping schedule")
	}

	snap := snapshot.Assemble(sc.Source(), now, fixtures)

	store, err := storage.New(cfg.OutputPath)
	if err != nil {
		return errors.Wrap(err, "initializing storage")
	}
	if err := store.SaveSnapshot(snap); err != nil {
		return errors.Wrap(err, "saving snapshot")
	}

	if cfg.CalendarPath != "" {
		if err := writeCalendar(store, cfg, fixtures, now); err != nil {
			return err
		}
	}

	logger.RecordTiming("run", time.Since(start))
	logger.Info("Snapshot written", logger.Fields{
		"path":    store.Path(),
		"count":   snap.Meta.Count,
		"metrics": logger.GetMetricsSnapshot(),
	})

	if err := WriteSummary(out, snap); err != nil {
		return errors.Wrap(err, "writing summary")
	}
	return nil
}

func writeCalendar(store *storage.Storage, cfg config.Config, fixtures []*fixture.Fixture, now time.Time) error {
	rounds, err := filter.ParseRounds(cfg.CalendarRounds)
	if err != nil {
		return errors.Wrap(err, "parsing calendar rounds")
	}

	f := filter.NewFilter()
	f.Teams = append(f.Teams, cfg.CalendarTeams...)
	f.Rounds = append(f.Rounds, rounds...)

	selected := f.Apply(fixtures)
	if err := store.WriteFile(cfg.CalendarPath, []byte(calendar.GenerateICS(selected, now))); err != nil {
		return errors.Wrap(err, "writing calendar")
	}

	logger.Info("Calendar written", logger.Fields{
		"path":   cfg.CalendarPath,
		"events": len(selected),
		"filter": f.String(),
	})
	return nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		logger.Error("Run failed", nil, err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
