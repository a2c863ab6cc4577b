// Package cli implements the command-line interface for plk-schedule.
//
// The root command takes no flags or arguments; everything is configured through
// PLK_* environment variables (see package config). One invocation fetches the
// schedule page, extracts fixtures, writes the JSON snapshot and, when configured,
// an iCalendar export, then prints a per-round summary.
package cli
