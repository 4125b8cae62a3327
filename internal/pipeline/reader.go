package pipeline

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText returns content as UTF-8. A leading BOM is dropped; input that
// is not valid UTF-8 is treated as Latin-1, the usual encoding of regional
// spreadsheet exports.
func DecodeText(content []byte) ([]byte, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if utf8.Valid(content) {
		return content, nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode latin-1 text: %w", err)
	}
	return decoded, nil
}

// SniffDelimiter picks ';' or ',' by counting unquoted occurrences on the
// first line. Ties resolve to ','.
func SniffDelimiter(text []byte) rune {
	line := text
	if i := bytes.IndexByte(text, '\n'); i >= 0 {
		line = text[:i]
	}

	var commas, semicolons int
	inQuotes := false
	for _, b := range line {
		switch b {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				commas++
			}
		case ';':
			if !inQuotes {
				semicolons++
			}
		}
	}
	if semicolons > commas {
		return ';'
	}
	return ','
}

// ReadTable decodes and parses a delimited text file. The first record is
// the header; short rows are padded by Cell at read time, rows wider than
// the header are rejected.
func ReadTable(name string, content []byte) (*Table, error) {
	text, err := DecodeText(content)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(text)) == 0 {
		return nil, fmt.Errorf("%s: file is empty", name)
	}

	delim := SniffDelimiter(text)
	reader := csv.NewReader(bytes.NewReader(text))
	reader.Comma = delim
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read header: %w", name, err)
	}

	table := &Table{
		Name:      name,
		Header:    header,
		Rows:      make([][]string, 0),
		Delimiter: delim,
	}

	line := 1
	for {
		line++
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", name, line, err)
		}
		if isBlank(record) {
			continue
		}
		if len(record) > len(header) {
			return nil, fmt.Errorf("%s: line %d: expected %d fields, got %d", name, line, len(header), len(record))
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
