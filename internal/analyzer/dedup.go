package analyzer

import "github.com/ppiankov/riskspectre/internal/inventory"

// Deduplicate keeps the first record seen for each identifier. Output is in
// first-seen order.
func Deduplicate(records []inventory.Record) []inventory.Record {
	seen := make(map[string]struct{}, len(records))
	unique := make([]inventory.Record, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.Identifier]; ok {
			continue
		}
		seen[r.Identifier] = struct{}{}
		unique = append(unique, r)
	}
	return unique
}
