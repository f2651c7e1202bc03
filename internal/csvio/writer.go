package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ppiankov/riskspectre/internal/inventory"
)

// RecordFile writes enriched records to a CSV file.
type RecordFile struct {
	Path string
}

// WriteRecords implements inventory.RecordSink.
func (f *RecordFile) WriteRecords(records []inventory.Record, includeIdentifier bool) error {
	return writeFile(f.Path, func(w io.Writer) error {
		return WriteRecords(w, records, includeIdentifier)
	})
}

// ChartFile writes the ranked chart to a CSV file. Detailed adds the service
// name and severity weight columns.
type ChartFile struct {
	Path     string
	Detailed bool
}

// WriteChart implements inventory.ChartSink.
func (f *ChartFile) WriteChart(entries []inventory.RankedEntry) error {
	return writeFile(f.Path, func(w io.Writer) error {
		return WriteChart(w, entries, f.Detailed)
	})
}

// WriteRecords writes records as CSV. The identifier column is left out when
// includeIdentifier is false.
func WriteRecords(w io.Writer, records []inventory.Record, includeIdentifier bool) error {
	cw := csv.NewWriter(w)

	header := []string{inventory.ColumnServiceName}
	if includeIdentifier {
		header = append(header, inventory.ColumnIdentifier)
	}
	header = append(header,
		inventory.ColumnSeverityLabel,
		inventory.ColumnAssetClass,
		inventory.ColumnOccurrenceCount,
		inventory.ColumnSeverityWeight,
		inventory.ColumnRiskScore,
		inventory.ColumnRiskSharePercent,
	)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range records {
		row := []string{r.ServiceName}
		if includeIdentifier {
			row = append(row, r.Identifier)
		}
		row = append(row,
			r.SeverityLabel,
			r.AssetClass,
			strconv.Itoa(r.OccurrenceCount),
			formatFloat(r.SeverityWeight),
			formatFloat(r.RiskScore),
			formatFloat(r.RiskSharePercent),
		)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %s: %w", r.Identifier, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteChart writes ranked entries as CSV.
func WriteChart(w io.Writer, entries []inventory.RankedEntry, detailed bool) error {
	cw := csv.NewWriter(w)

	header := []string{inventory.ColumnRank, inventory.ColumnIdentifier}
	if detailed {
		header = append(header, inventory.ColumnServiceName, inventory.ColumnSeverityWeight)
	}
	header = append(header, inventory.ColumnRiskScore, inventory.ColumnRiskSharePercent)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, e := range entries {
		row := []string{strconv.Itoa(e.Rank), e.Identifier}
		if detailed {
			row = append(row, e.ServiceName, formatFloat(e.SeverityWeight))
		}
		row = append(row, formatFloat(e.RiskScore), formatFloat(e.RiskSharePercent))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write chart rank %d: %w", e.Rank, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
