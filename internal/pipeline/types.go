package pipeline

import (
	"context"
	"strings"

	"github.com/sabia-pyme/backend-go/internal/domain"
)

// Pipeline defines the interface that all analysis pipelines must implement
type Pipeline interface {
	// Name returns the unique identifier for this pipeline
	Name() string

	// Headers returns the output columns in export order
	Headers() []string

	// Transform processes the uploaded files and returns the output rows
	Transform(ctx context.Context, files []domain.UploadedFile) ([]TransformedRow, error)
}

// TransformedRow represents a single row of transformed data keyed by
// output column name.
type TransformedRow struct {
	Data map[string]interface{}
}

// Table is a parsed delimited text file with a header row.
type Table struct {
	Name      string
	Header    []string
	Rows      [][]string
	Delimiter rune
}

// Index returns the position of the first header matching any of names,
// compared after normalizeColumnName, or -1.
func (t *Table) Index(names ...string) int {
	if len(names) == 0 {
		return -1
	}
	targets := make(map[string]struct{}, len(names))
	for _, name := range names {
		targets[normalizeColumnName(name)] = struct{}{}
	}
	for i, h := range t.Header {
		if _, ok := targets[normalizeColumnName(h)]; ok {
			return i
		}
	}
	return -1
}

// Require resolves every column and fails on the first one that is absent.
func (t *Table) Require(columns ...string) (map[string]int, error) {
	idx := make(map[string]int, len(columns))
	for _, col := range columns {
		i := t.Index(col)
		if i < 0 {
			return nil, &MissingColumnError{Table: t.Name, Column: col}
		}
		idx[col] = i
	}
	return idx, nil
}

// Cell returns the trimmed value at idx, or "" when the row is short.
func Cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// Column returns every value of the column at idx, in row order.
func (t *Table) Column(idx int) []string {
	out := make([]string, len(t.Rows))
	for i, record := range t.Rows {
		out[i] = Cell(record, idx)
	}
	return out
}

// MissingColumnError reports a required column absent from a table header.
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return "column " + e.Column + " not found in " + e.Table
}

var columnNameSanitizer = strings.NewReplacer(" ", "", "_", "", ".", "", "-", "", "/", "")

func normalizeColumnName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return columnNameSanitizer.Replace(name)
}
