package csvio

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/riskspectre/internal/inventory"
)

// Source reads inventory records from a CSV file with a header row.
type Source struct {
	Path    string
	Columns inventory.Columns
}

// NewSource creates a CSV source. Unset column names take their defaults.
func NewSource(path string, cols inventory.Columns) *Source {
	return &Source{Path: path, Columns: cols.WithDefaults()}
}

// Read implements inventory.Source.
func (s *Source) Read(_ context.Context) ([]inventory.Record, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open inventory %s: %w", s.Path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("parse inventory %s: %w", s.Path, err)
	}
	return s.Columns.Records(rows), nil
}

// ReadRows parses CSV with a header row into raw rows keyed by header name.
// Short rows leave the missing fields unset. An empty input yields no rows.
func ReadRows(r io.Reader) ([]inventory.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows []inventory.Row
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}

		row := make(inventory.Row, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[name] = fields[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
