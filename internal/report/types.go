package report

import (
	"io"
	"time"

	"github.com/ppiankov/riskspectre/internal/analyzer"
	"github.com/ppiankov/riskspectre/internal/inventory"
)

// Reporter is the interface for output formatters.
type Reporter interface {
	Generate(data Data) error
}

// Data holds all information needed to generate a report.
type Data struct {
	Tool      string                  `json:"tool"`
	Version   string                  `json:"version"`
	Timestamp time.Time               `json:"timestamp"`
	Target    Target                  `json:"target"`
	Config    ReportConfig            `json:"config"`
	Records   []inventory.Record      `json:"records"`
	Chart     []inventory.RankedEntry `json:"chart"`
	Summary   analyzer.Summary        `json:"summary"`
	Artifacts []string                `json:"artifacts,omitempty"`
	Errors    []string                `json:"errors,omitempty"`
}

// Target identifies the inventory being analyzed.
type Target struct {
	Type    string `json:"type"`
	URIHash string `json:"uri_hash"`
}

// ReportConfig captures the analysis configuration used.
type ReportConfig struct {
	Source            string `json:"source"`
	Normalization     string `json:"normalization"`
	AllowListEnabled  bool   `json:"allow_list_enabled"`
	AllowListSize     int    `json:"allow_list_size"`
	IncludeIdentifier bool   `json:"include_identifier"`
}

// TextReporter generates human-readable terminal output.
type TextReporter struct {
	Writer io.Writer
	// SampleSize limits the enriched-record sample; 0 selects the default.
	SampleSize int
}

// JSONReporter generates spectre/v1 envelope JSON output.
type JSONReporter struct {
	Writer io.Writer
}

// SARIFReporter generates SARIF v2.1.0 output.
type SARIFReporter struct {
	Writer io.Writer
}
