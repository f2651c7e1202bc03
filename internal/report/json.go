package report

import (
	"encoding/json"
	"fmt"

	"github.com/ppiankov/riskspectre/internal/inventory"
)

type spectreEnvelope struct {
	Schema string `json:"$schema"`
	Data
}

// Generate writes the report wrapped in a spectre/v1 envelope.
func (r *JSONReporter) Generate(data Data) error {
	if data.Records == nil {
		data.Records = []inventory.Record{}
	}
	if data.Chart == nil {
		data.Chart = []inventory.RankedEntry{}
	}

	enc := json.NewEncoder(r.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(spectreEnvelope{Schema: "spectre/v1", Data: data}); err != nil {
		return fmt.Errorf("encode JSON report: %w", err)
	}
	return nil
}
