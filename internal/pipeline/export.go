package pipeline

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sabia-pyme/backend-go/internal/domain"
)

// Export runs p over files and writes its rows to w as CSV.
func Export(ctx context.Context, p Pipeline, files []domain.UploadedFile, w io.Writer) error {
	rows, err := p.Transform(ctx, files)
	if err != nil {
		return err
	}
	if err := WriteCSV(w, p.Headers(), rows); err != nil {
		return fmt.Errorf("failed to export %s rows: %w", p.Name(), err)
	}
	return nil
}

// WriteCSV writes transformed rows using headers as the column order.
func WriteCSV(w io.Writer, headers []string, rows []TransformedRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, row := range rows {
		record := make([]string, len(headers))
		for i, header := range headers {
			if val, ok := row.Data[header]; ok {
				record[i] = formatValue(val)
			}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes rows to path, creating parent directories as needed.
func WriteCSVFile(path string, headers []string, rows []TransformedRow) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteCSV(file, headers, rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return FormatFloat(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
