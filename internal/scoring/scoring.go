package scoring

// Mapper converts severity labels into numeric weights using a fixed table.
// The zero value uses DefaultWeights.
type Mapper struct {
	weights map[string]float64
}

// NewMapper returns a mapper backed by a copy of weights. A nil or empty table
// selects DefaultWeights.
func NewMapper(weights map[string]float64) Mapper {
	if len(weights) == 0 {
		return Mapper{}
	}
	table := make(map[string]float64, len(weights))
	for label, w := range weights {
		table[label] = w
	}
	return Mapper{weights: table}
}

// Weight returns the weight for label, or 0 for labels not in the table.
func (m Mapper) Weight(label string) float64 {
	return m.table()[label]
}

// Known reports whether label has an entry in the table.
func (m Mapper) Known(label string) bool {
	_, ok := m.table()[label]
	return ok
}

func (m Mapper) table() map[string]float64 {
	if m.weights == nil {
		return DefaultWeights
	}
	return m.weights
}
