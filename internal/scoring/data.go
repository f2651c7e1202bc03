package scoring

// DefaultWeights maps severity labels to numeric weights.
var DefaultWeights = map[string]float64{
	"High":          3.0,
	"Moderate High": 2.5,
	"Moderate":      2.0,
	"Low":           1.0,
}
