/*
errors.go - Validation errors for report and roster ingestion

PURPOSE:
  Malformed individual rows are dropped and counted, never fatal. What IS
  fatal is a required column missing entirely: at that point the report
  cannot be trusted and the run must abort.

USAGE:
  if errors.Is(err, ingest.ErrMissingColumn) { ... }
*/
package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn is returned when a required column is absent from
	// the report or the roster. Always fatal.
	ErrMissingColumn = errors.New("required column not found")

	// ErrNoHeaderRow is returned when no row in the spreadsheet carries
	// the full set of required columns.
	ErrNoHeaderRow = errors.New("header row not found")

	// ErrNoSheet is returned when the workbook has no sheets at all.
	ErrNoSheet = errors.New("workbook has no sheets")
)

// MissingColumnError identifies which required column was absent.
type MissingColumnError struct {
	Column string
	Source string // "report" or "roster"
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in %s", e.Column, e.Source)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }
