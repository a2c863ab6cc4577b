// Package storage persists snapshots as indented JSON documents.
//
// Files are written to a temporary sibling first and renamed into place, so a
// failed run never leaves a truncated matches.json behind.
package storage
