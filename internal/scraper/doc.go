// Package scraper fetches the league schedule page and extracts fixtures from it.
//
// The page has alternated between a text-flow layout and an HTML table layout, so
// extraction is split into two strategies behind the Strategy interface. Both first
// partition the page into per-round segments using "N kolejka" markers; a page with
// no markers at all fails with ErrNoRoundsFound, since any output would be empty or
// wrong. Individual fixture candidates that look like header remnants or lack a
// parsable kickoff are skipped silently.
package scraper
