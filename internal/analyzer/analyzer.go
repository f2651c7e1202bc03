package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/ppiankov/riskspectre/internal/inventory"
)

// ErrNoRecords means the source produced no rows at all. A run whose rows are
// all removed by the allow-list is not an error.
var ErrNoRecords = errors.New("no records to analyze")

// Run reads raw records from src and analyzes them.
func Run(ctx context.Context, src inventory.Source, cfg AnalyzerConfig) (*AnalysisResult, error) {
	raw, err := src.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}
	slog.Info("Loaded inventory records", "count", len(raw))
	return Analyze(raw, cfg)
}

// Analyze deduplicates raw records by identifier, applies the allow-list,
// enriches the survivors with risk metrics and ranks them. Empty input returns
// an empty result together with ErrNoRecords.
func Analyze(raw []inventory.Record, cfg AnalyzerConfig) (*AnalysisResult, error) {
	if len(raw) == 0 {
		return &AnalysisResult{}, ErrNoRecords
	}

	normalize, err := cfg.Normalization.Normalizer()
	if err != nil {
		return nil, err
	}

	unique := Deduplicate(raw)
	records := cfg.AllowList.Filter(unique)
	if cfg.AllowList.Enabled() {
		slog.Info("Applied allow-list", "allowed", cfg.AllowList.Len(), "kept", len(records), "dropped", len(unique)-len(records))
	}

	// Counts come from every raw row, not the deduplicated set.
	counts := RestrictCounts(CountOccurrences(raw), cfg.AllowList)

	for i := range records {
		records[i].OccurrenceCount = counts[records[i].Identifier]
		records[i].SeverityWeight = cfg.Mapper.Weight(records[i].SeverityLabel)
		if !cfg.Mapper.Known(records[i].SeverityLabel) {
			slog.Debug("Unmapped severity label", "identifier", records[i].Identifier, "label", records[i].SeverityLabel)
		}
	}
	ComputeRiskScores(records)
	normalize(records)

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Identifier < records[j].Identifier
	})

	return &AnalysisResult{
		Records: records,
		Chart:   Rank(records),
		Summary: summarize(raw, records, counts, len(unique)-len(records), cfg.Normalization),
	}, nil
}

func summarize(raw, records []inventory.Record, counts map[string]int, filteredOut int, n Normalization) Summary {
	summary := Summary{
		TotalRows:         len(raw),
		UniqueIdentifiers: len(counts),
		FilteredOut:       filteredOut,
		TotalRiskScore:    TotalRisk(records),
		Normalization:     n,
		OccurrenceCounts:  counts,
		BySeverity:        make(map[string]int),
	}
	for _, r := range records {
		summary.BySeverity[r.SeverityLabel]++
	}
	return summary
}
