package analyzer

import (
	"errors"
	"testing"

	"github.com/ppiankov/riskspectre/internal/inventory"
)

func TestCountOccurrences(t *testing.T) {
	records := []inventory.Record{
		{Identifier: "A1"},
		{Identifier: "A1"},
		{Identifier: "A2"},
	}
	counts := CountOccurrences(records)
	if counts["A1"] != 2 || counts["A2"] != 1 || len(counts) != 2 {
		t.Errorf("counts = %v, want A1=2 A2=1", counts)
	}
}

func TestRestrictCounts(t *testing.T) {
	counts := map[string]int{"A1": 2, "A2": 1, "A3": 4}

	all := RestrictCounts(counts, AllowAll())
	if len(all) != 3 {
		t.Errorf("disabled allow-list should keep all counts, got %v", all)
	}

	some := RestrictCounts(counts, NewAllowList([]string{"A1", "A3"}))
	if len(some) != 2 || some["A1"] != 2 || some["A3"] != 4 {
		t.Errorf("restricted counts = %v, want A1=2 A3=4", some)
	}
}

func TestComputeRiskScores(t *testing.T) {
	records := []inventory.Record{
		{Identifier: "A1", SeverityWeight: 3.0, OccurrenceCount: 5},
		{Identifier: "A2", SeverityWeight: 1.0, OccurrenceCount: 2},
	}
	ComputeRiskScores(records)
	if records[0].RiskScore != 15.0 {
		t.Errorf("A1 RiskScore = %f, want 15", records[0].RiskScore)
	}
	if records[1].RiskScore != 2.0 {
		t.Errorf("A2 RiskScore = %f, want 2", records[1].RiskScore)
	}
}

func TestGlobalPercentages(t *testing.T) {
	records := []inventory.Record{
		{RiskScore: 15.0},
		{RiskScore: 2.0},
	}
	GlobalPercentages(records)
	if !almostEqual(records[0].RiskSharePercent, 15.0/17.0*100) {
		t.Errorf("records[0] = %f, want %f", records[0].RiskSharePercent, 15.0/17.0*100)
	}
	if !almostEqual(records[1].RiskSharePercent, 2.0/17.0*100) {
		t.Errorf("records[1] = %f, want %f", records[1].RiskSharePercent, 2.0/17.0*100)
	}
}

func TestGlobalPercentagesZeroTotal(t *testing.T) {
	records := []inventory.Record{
		{RiskScore: 0, RiskSharePercent: 42},
		{RiskScore: 0, RiskSharePercent: 7},
	}
	GlobalPercentages(records)
	for i, r := range records {
		if r.RiskSharePercent != 0 {
			t.Errorf("records[%d].RiskSharePercent = %f, want 0", i, r.RiskSharePercent)
		}
	}
}

func TestGroupedPercentagesZeroGroup(t *testing.T) {
	records := []inventory.Record{
		{SeverityLabel: "High", RiskScore: 6},
		{SeverityLabel: "High", RiskScore: 2},
		{SeverityLabel: "Critical", RiskScore: 0},
		{SeverityLabel: "Critical", RiskScore: 0},
	}
	GroupedPercentages(records)

	if !almostEqual(records[0].RiskSharePercent, 75) || !almostEqual(records[1].RiskSharePercent, 25) {
		t.Errorf("High group = %f/%f, want 75/25", records[0].RiskSharePercent, records[1].RiskSharePercent)
	}
	if records[2].RiskSharePercent != 0 || records[3].RiskSharePercent != 0 {
		t.Errorf("zero-total group = %f/%f, want 0/0", records[2].RiskSharePercent, records[3].RiskSharePercent)
	}
}

func TestParseNormalization(t *testing.T) {
	tests := []struct {
		in      string
		want    Normalization
		wantErr bool
	}{
		{"global", NormalizeGlobal, false},
		{"grouped", NormalizeGrouped, false},
		{" Grouped ", NormalizeGrouped, false},
		{"", "", true},
		{"severity", "", true},
	}
	for _, tt := range tests {
		got, err := ParseNormalization(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownNormalization) {
				t.Errorf("ParseNormalization(%q) error = %v, want ErrUnknownNormalization", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseNormalization(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseNormalization(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
