package inventory

import "context"

// Source produces raw inventory records, one per input row.
type Source interface {
	Read(ctx context.Context) ([]Record, error)
}

// RecordSink persists enriched records. includeIdentifier controls whether the
// identifier field is part of the output, which allows a de-identified export.
type RecordSink interface {
	WriteRecords(records []Record, includeIdentifier bool) error
}

// ChartSink persists the ranked chart.
type ChartSink interface {
	WriteChart(entries []RankedEntry) error
}
