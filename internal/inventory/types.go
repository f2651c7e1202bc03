package inventory

import "time"

// Record is one infrastructure asset entry. The first four fields come from the
// raw row; the remaining fields are filled in by enrichment.
type Record struct {
	ServiceName   string `json:"service_name"`
	Identifier    string `json:"identifier"`
	SeverityLabel string `json:"severity_label"`
	AssetClass    string `json:"asset_class"`

	OccurrenceCount  int     `json:"occurrence_count"`
	SeverityWeight   float64 `json:"severity_weight"`
	RiskScore        float64 `json:"risk_score"`
	RiskSharePercent float64 `json:"risk_share_percent"`
}

// RankedEntry is one row of the risk chart.
type RankedEntry struct {
	Rank             int     `json:"rank"`
	Identifier       string  `json:"identifier"`
	ServiceName      string  `json:"service_name,omitempty"`
	SeverityLabel    string  `json:"severity_label,omitempty"`
	SeverityWeight   float64 `json:"severity_weight"`
	RiskScore        float64 `json:"risk_score"`
	RiskSharePercent float64 `json:"risk_share_percent"`
}

// Row is a raw field mapping as produced by a row source.
type Row map[string]string

// Progress reports inventory collection progress to callers.
type Progress struct {
	Region    string
	Source    string
	Message   string
	Timestamp time.Time
}
