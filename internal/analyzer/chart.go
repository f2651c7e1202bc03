package analyzer

import (
	"sort"

	"github.com/ppiankov/riskspectre/internal/inventory"
)

// Rank orders records by RiskSharePercent, highest first, and numbers them
// 1..N. Ties keep input order and still get consecutive ranks.
func Rank(records []inventory.Record) []inventory.RankedEntry {
	sorted := make([]inventory.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RiskSharePercent > sorted[j].RiskSharePercent
	})

	entries := make([]inventory.RankedEntry, 0, len(sorted))
	for i, r := range sorted {
		entries = append(entries, inventory.RankedEntry{
			Rank:             i + 1,
			Identifier:       r.Identifier,
			ServiceName:      r.ServiceName,
			SeverityLabel:    r.SeverityLabel,
			SeverityWeight:   r.SeverityWeight,
			RiskScore:        r.RiskScore,
			RiskSharePercent: r.RiskSharePercent,
		})
	}
	return entries
}
