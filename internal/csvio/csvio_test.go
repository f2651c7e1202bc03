package csvio

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/riskspectre/internal/inventory"
)

const sampleInventory = `ApplicationService,AppCode,CompositeScore,Class
Test App 1,APP1,High,Server
Test App 1,APP1,High,Server
Test App 2,APP2,Moderate,Database
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSourceRead(t *testing.T) {
	path := writeTemp(t, "inventory.csv", sampleInventory)

	records, err := NewSource(path, inventory.Columns{}).Read(context.Background())
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records len = %d, want 3", len(records))
	}
	if records[0].Identifier != "APP1" {
		t.Errorf("records[0].Identifier = %q, want APP1", records[0].Identifier)
	}
	if records[2].AssetClass != "Database" {
		t.Errorf("records[2].AssetClass = %q, want Database", records[2].AssetClass)
	}
}

func TestSourceReadMissingFile(t *testing.T) {
	_, err := NewSource(filepath.Join(t.TempDir(), "nope.csv"), inventory.Columns{}).Read(context.Background())
	if err == nil {
		t.Fatal("Read() should error on missing file")
	}
}

func TestSourceReadCustomColumns(t *testing.T) {
	path := writeTemp(t, "inventory.csv", "svc,app_id,risk,kind\nBilling,BIL,Low,VM\n")
	cols := inventory.Columns{ServiceName: "svc", Identifier: "app_id", SeverityLabel: "risk", AssetClass: "kind"}

	records, err := NewSource(path, cols).Read(context.Background())
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(records) != 1 || records[0].Identifier != "BIL" || records[0].SeverityLabel != "Low" {
		t.Errorf("records = %+v, want one BIL/Low record", records)
	}
}

func TestReadRowsEmpty(t *testing.T) {
	rows, err := ReadRows(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadRows() error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows len = %d, want 0", len(rows))
	}
}

func TestReadRowsHeaderOnly(t *testing.T) {
	rows, err := ReadRows(strings.NewReader("ApplicationService,AppCode\n"))
	if err != nil {
		t.Fatalf("ReadRows() error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows len = %d, want 0", len(rows))
	}
}

func TestReadRowsShortRow(t *testing.T) {
	rows, err := ReadRows(strings.NewReader("ApplicationService,AppCode,CompositeScore,Class\nOnly Service,APP1\n"))
	if err != nil {
		t.Fatalf("ReadRows() error: %v", err)
	}
	rec := inventory.DefaultColumns().Record(rows[0])
	if rec.Identifier != "APP1" || rec.SeverityLabel != "" || rec.AssetClass != "" {
		t.Errorf("short row = %+v, want missing fields empty", rec)
	}
}

func TestReadRowsStripsBOM(t *testing.T) {
	rows, err := ReadRows(strings.NewReader("\ufeffAppCode\nAPP1\n"))
	if err != nil {
		t.Fatalf("ReadRows() error: %v", err)
	}
	if rows[0]["AppCode"] != "APP1" {
		t.Errorf("AppCode = %q, want APP1", rows[0]["AppCode"])
	}
}

func sampleRecords() []inventory.Record {
	return []inventory.Record{
		{
			ServiceName:      "Test App 1",
			Identifier:       "APP1",
			SeverityLabel:    "High",
			AssetClass:       "Server",
			OccurrenceCount:  2,
			SeverityWeight:   3,
			RiskScore:        6,
			RiskSharePercent: 75,
		},
	}
}

func TestWriteRecordsWithIdentifier(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecords(&buf, sampleRecords(), true); err != nil {
		t.Fatalf("WriteRecords() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	wantHeader := "ApplicationService,AppCode,CompositeScore,Class,TotalInfrastructure,CompositeScoreNumber,CompositeRiskScore,CompositeRiskScorePercent"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}
	if lines[1] != "Test App 1,APP1,High,Server,2,3,6,75" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestWriteRecordsWithoutIdentifier(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecords(&buf, sampleRecords(), false); err != nil {
		t.Fatalf("WriteRecords() error: %v", err)
	}
	if strings.Contains(buf.String(), "AppCode") || strings.Contains(buf.String(), "APP1") {
		t.Errorf("identifier should be excluded, got:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "Test App 1") {
		t.Error("service name missing")
	}
}

func TestWriteChart(t *testing.T) {
	entries := []inventory.RankedEntry{
		{Rank: 1, Identifier: "APP1", ServiceName: "Test App 1", SeverityWeight: 3, RiskScore: 6, RiskSharePercent: 75},
		{Rank: 2, Identifier: "APP2", ServiceName: "Test App 2", SeverityWeight: 2, RiskScore: 2, RiskSharePercent: 25},
	}

	var compact bytes.Buffer
	if err := WriteChart(&compact, entries, false); err != nil {
		t.Fatalf("WriteChart() error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(compact.String()), "\n")
	if lines[0] != "Rank,AppCode,CompositeRiskScore,CompositeRiskScorePercent" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "1,APP1,6,75" {
		t.Errorf("row = %q", lines[1])
	}

	var detailed bytes.Buffer
	if err := WriteChart(&detailed, entries, true); err != nil {
		t.Fatalf("WriteChart() error: %v", err)
	}
	if !strings.Contains(detailed.String(), "2,APP2,Test App 2,2,2,25") {
		t.Errorf("detailed chart missing row, got:\n%s", detailed.String())
	}
}

func TestRecordAndChartFiles(t *testing.T) {
	dir := t.TempDir()
	recPath := filepath.Join(dir, "analyzed_data.csv")
	chartPath := filepath.Join(dir, "risk_chart.csv")

	var sink inventory.RecordSink = &RecordFile{Path: recPath}
	if err := sink.WriteRecords(sampleRecords(), false); err != nil {
		t.Fatalf("WriteRecords() error: %v", err)
	}
	var chart inventory.ChartSink = &ChartFile{Path: chartPath}
	if err := chart.WriteChart([]inventory.RankedEntry{{Rank: 1, Identifier: "APP1"}}); err != nil {
		t.Fatalf("WriteChart() error: %v", err)
	}

	for _, p := range []string{recPath, chartPath} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s not created: %v", p, err)
		}
	}
}

func TestRecordFileBadPath(t *testing.T) {
	sink := &RecordFile{Path: filepath.Join(t.TempDir(), "missing", "out.csv")}
	if err := sink.WriteRecords(sampleRecords(), true); err == nil {
		t.Error("expected error for unwritable path")
	}
}

func TestLoadAllowList(t *testing.T) {
	path := writeTemp(t, "Apps.csv", "AppCode,Owner\n APP1 ,team-a\n,team-b\nAPP3,team-c\n")

	ids, err := LoadAllowList(path, "AppCode")
	if err != nil {
		t.Fatalf("LoadAllowList() error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "APP1" || ids[1] != "APP3" {
		t.Errorf("ids = %q, want [APP1 APP3]", ids)
	}
}

func TestLoadAllowListMissingFile(t *testing.T) {
	ids, err := LoadAllowList(filepath.Join(t.TempDir(), "Apps.csv"), "AppCode")
	if err != nil {
		t.Fatalf("missing allow-list should not error, got %v", err)
	}
	if ids != nil {
		t.Errorf("ids = %q, want nil", ids)
	}
}

func TestLoadAllowListMissingColumn(t *testing.T) {
	path := writeTemp(t, "Apps.csv", "Name\nfoo\n")
	ids, err := LoadAllowList(path, "AppCode")
	if err != nil {
		t.Fatalf("LoadAllowList() error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ids = %q, want empty", ids)
	}
}
