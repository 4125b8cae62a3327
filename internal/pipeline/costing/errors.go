package costing

import (
	"fmt"
	"strings"
)

// MissingTablesError is returned when one or more of the six input tables
// was not uploaded. Missing holds the logical table names, sorted.
type MissingTablesError struct {
	Missing []string
}

func (e *MissingTablesError) Error() string {
	return "missing input tables: " + strings.Join(e.Missing, ", ")
}

// ParseError wraps any failure while reading or validating an input file.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
