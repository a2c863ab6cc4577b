// Package fixture provides the fixture record, its derived fields and the shared
// field normalizers used by every extraction strategy.
//
// A Fixture's ID is built from the round number, the day/month of kickoff and
// sanitized fragments of both team names, so re-running the scraper against an
// unchanged page yields the same IDs without any stored state.
package fixture
