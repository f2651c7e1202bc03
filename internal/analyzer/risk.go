package analyzer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/riskspectre/internal/inventory"
)

// Normalization selects how risk scores are turned into percentages.
type Normalization string

const (
	// NormalizeGlobal divides every score by the total across all records.
	NormalizeGlobal Normalization = "global"
	// NormalizeGrouped divides every score by the total of its severity label.
	NormalizeGrouped Normalization = "grouped"
)

// ErrUnknownNormalization is returned for an unrecognized strategy name.
var ErrUnknownNormalization = errors.New("unknown normalization")

// ParseNormalization converts a strategy name into a Normalization.
func ParseNormalization(s string) (Normalization, error) {
	switch n := Normalization(strings.ToLower(strings.TrimSpace(s))); n {
	case NormalizeGlobal, NormalizeGrouped:
		return n, nil
	default:
		return "", fmt.Errorf("%w: %q (use global or grouped)", ErrUnknownNormalization, s)
	}
}

// Normalizer sets RiskSharePercent on every record.
type Normalizer func(records []inventory.Record)

// Normalizer returns the percentage function for n.
func (n Normalization) Normalizer() (Normalizer, error) {
	switch n {
	case NormalizeGlobal:
		return GlobalPercentages, nil
	case NormalizeGrouped:
		return GroupedPercentages, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNormalization, string(n))
	}
}

// CountOccurrences tallies records per identifier.
func CountOccurrences(records []inventory.Record) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Identifier]++
	}
	return counts
}

// RestrictCounts drops the counts of identifiers not admitted by allow.
func RestrictCounts(counts map[string]int, allow AllowList) map[string]int {
	out := make(map[string]int, len(counts))
	for id, n := range counts {
		if allow.Allowed(id) {
			out[id] = n
		}
	}
	return out
}

// ComputeRiskScores sets RiskScore = SeverityWeight * OccurrenceCount.
// OccurrenceCount and SeverityWeight must already be assigned.
func ComputeRiskScores(records []inventory.Record) {
	for i := range records {
		records[i].RiskScore = records[i].SeverityWeight * float64(records[i].OccurrenceCount)
	}
}

// GlobalPercentages expresses each score as a percentage of the total across
// all records. A zero total yields 0 for every record.
func GlobalPercentages(records []inventory.Record) {
	total := TotalRisk(records)
	for i := range records {
		records[i].RiskSharePercent = share(records[i].RiskScore, total)
	}
}

// GroupedPercentages expresses each score as a percentage of the total of the
// records sharing its severity label. Each group applies the zero-total rule
// on its own.
func GroupedPercentages(records []inventory.Record) {
	totals := make(map[string]float64)
	for _, r := range records {
		totals[r.SeverityLabel] += r.RiskScore
	}
	for i := range records {
		records[i].RiskSharePercent = share(records[i].RiskScore, totals[records[i].SeverityLabel])
	}
}

// TotalRisk sums RiskScore over records.
func TotalRisk(records []inventory.Record) float64 {
	var total float64
	for _, r := range records {
		total += r.RiskScore
	}
	return total
}

func share(score, total float64) float64 {
	if total == 0 {
		return 0
	}
	return score / total * 100
}
