package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/riskspectre/internal/inventory"
)

const sarifSchema = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json"

// sarifReport is the top-level SARIF v2.1.0 structure.
type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string            `json:"id"`
	ShortDescription sarifMessage      `json:"shortDescription"`
	DefaultConfig    sarifDefaultLevel `json:"defaultConfiguration"`
}

type sarifDefaultLevel struct {
	Level string `json:"level"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string         `json:"ruleId"`
	Level     string         `json:"level"`
	Message   sarifMessage   `json:"message"`
	Locations []sarifLoc     `json:"locations,omitempty"`
	Props     map[string]any `json:"properties,omitempty"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

// Generate writes SARIF v2.1.0 output, one result per chart entry.
func (r *SARIFReporter) Generate(data Data) error {
	rules := buildSARIFRules(data.Chart)
	results := make([]sarifResult, 0, len(data.Chart))

	for _, e := range data.Chart {
		results = append(results, sarifResult{
			RuleID: sarifRuleID(e.SeverityLabel),
			Level:  sarifLevel(e.SeverityWeight),
			Message: sarifMessage{Text: fmt.Sprintf("%s holds %.1f%% of %s risk (score %.1f)",
				e.Identifier, e.RiskSharePercent, data.Summary.Normalization, e.RiskScore)},
			Locations: []sarifLoc{
				{
					PhysicalLocation: sarifPhysical{
						ArtifactLocation: sarifArtifact{
							URI: fmt.Sprintf("inventory://%s", e.Identifier),
						},
					},
				},
			},
			Props: map[string]any{
				"rank":             e.Rank,
				"serviceName":      e.ServiceName,
				"severityWeight":   e.SeverityWeight,
				"riskScore":        e.RiskScore,
				"riskSharePercent": e.RiskSharePercent,
			},
		})
	}

	report := sarifReport{
		Schema:  sarifSchema,
		Version: "2.1.0",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    data.Tool,
						Version: data.Version,
						Rules:   rules,
					},
				},
				Results: results,
			},
		},
	}

	enc := json.NewEncoder(r.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode SARIF report: %w", err)
	}
	return nil
}

// sarifLevel maps a severity weight onto SARIF levels using the default
// table's boundaries: High is an error, Moderate and above a warning.
func sarifLevel(weight float64) string {
	switch {
	case weight >= 3:
		return "error"
	case weight >= 2:
		return "warning"
	default:
		return "note"
	}
}

func sarifRuleID(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "SEVERITY_UNLABELED"
	}
	return "SEVERITY_" + strings.ToUpper(strings.Join(strings.Fields(label), "_"))
}

// buildSARIFRules returns one rule per severity label present, in chart order.
func buildSARIFRules(entries []inventory.RankedEntry) []sarifRule {
	seen := make(map[string]bool)
	rules := make([]sarifRule, 0)
	for _, e := range entries {
		id := sarifRuleID(e.SeverityLabel)
		if seen[id] {
			continue
		}
		seen[id] = true
		label := e.SeverityLabel
		if label == "" {
			label = "unlabeled"
		}
		rules = append(rules, sarifRule{
			ID:               id,
			ShortDescription: sarifMessage{Text: fmt.Sprintf("Risk share for %s severity applications", label)},
			DefaultConfig:    sarifDefaultLevel{Level: sarifLevel(e.SeverityWeight)},
		})
	}
	return rules
}
