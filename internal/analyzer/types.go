package analyzer

import (
	"github.com/ppiankov/riskspectre/internal/inventory"
	"github.com/ppiankov/riskspectre/internal/scoring"
)

// Summary holds aggregated statistics about an analysis run.
type Summary struct {
	TotalRows         int            `json:"total_rows"`
	UniqueIdentifiers int            `json:"unique_identifiers"`
	FilteredOut       int            `json:"filtered_out"`
	TotalRiskScore    float64        `json:"total_risk_score"`
	Normalization     Normalization  `json:"normalization"`
	OccurrenceCounts  map[string]int `json:"occurrence_counts"`
	BySeverity        map[string]int `json:"by_severity"`
}

// AnalysisResult holds the enriched records, sorted by identifier, and the
// chart ranked by risk share.
type AnalysisResult struct {
	Records []inventory.Record      `json:"records"`
	Chart   []inventory.RankedEntry `json:"chart"`
	Summary Summary                 `json:"summary"`
}

// AnalyzerConfig controls analysis behavior. The zero AllowList admits every
// identifier and the zero Mapper uses the default severity table.
type AnalyzerConfig struct {
	Mapper        scoring.Mapper
	AllowList     AllowList
	Normalization Normalization
}
