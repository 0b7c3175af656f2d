// Package domain holds the report row types and repository contracts for
// the Chinook analytics surface. All queries are read-only; the schema is
// owned by the external Chinook database.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrUnknownTable is returned when an explorer request names a table
	// that does not exist in the public schema.
	ErrUnknownTable = errors.New("unknown table")
	// ErrEmptyRange is returned when a date range has from after to.
	ErrEmptyRange = errors.New("date range is empty")
	// ErrNoData is returned when the invoice table holds no rows to derive
	// date bounds from.
	ErrNoData = errors.New("no invoice data")
	// ErrBadGranularity is returned for trend requests with an unknown
	// bucketing granularity.
	ErrBadGranularity = errors.New("unknown granularity")
)

// DateRange is the invoice-date window almost every report filters on.
// Both bounds are inclusive calendar dates.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Validate reports whether the range is well-formed.
func (r DateRange) Validate() error {
	if r.To.Before(r.From) {
		return ErrEmptyRange
	}
	return nil
}

// IsZero reports whether neither bound has been set.
func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}
