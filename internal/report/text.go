package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

const defaultSampleSize = 10

// Generate writes human-readable terminal output.
func (r *TextReporter) Generate(data Data) error {
	w := &errWriter{w: r.Writer}

	w.println("riskspectre — Infrastructure Risk Report")
	w.println(strings.Repeat("=", 40))
	w.println("")

	if len(data.Records) == 0 {
		w.println("No records matched the allow-list.")
		w.println("")
		writeTextSummary(w, data)
		return w.err
	}

	w.printf("Risk chart: %d identifiers sorted by risk share (high to low)\n\n", len(data.Chart))
	if err := writeChartTable(r.Writer, data); err != nil {
		return err
	}
	w.println("")

	sample := r.SampleSize
	if sample <= 0 {
		sample = defaultSampleSize
	}
	w.println("Sample of enriched records")
	if err := writeSampleTable(r.Writer, data, sample); err != nil {
		return err
	}
	if len(data.Records) > sample {
		w.printf("... and %d more records\n", len(data.Records)-sample)
	}
	w.println("")

	writeTextSummary(w, data)
	return w.err
}

func writeChartTable(out io.Writer, data Data) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	w := &errWriter{w: tw}
	w.printf("RANK\tAPPCODE\tSERVICE\tRISK SCORE\tSHARE\n")
	w.printf("----\t-------\t-------\t----------\t-----\n")
	for _, e := range data.Chart {
		w.printf("%d\t%s\t%s\t%.1f\t%.1f%%\n", e.Rank, e.Identifier, e.ServiceName, e.RiskScore, e.RiskSharePercent)
	}
	if w.err != nil {
		return w.err
	}
	return tw.Flush()
}

func writeSampleTable(out io.Writer, data Data, n int) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	w := &errWriter{w: tw}
	w.printf("SERVICE\tAPPCODE\tSEVERITY\tCLASS\tCOUNT\tWEIGHT\tRISK\tSHARE\n")
	for i, rec := range data.Records {
		if i >= n {
			break
		}
		w.printf("%s\t%s\t%s\t%s\t%d\t%.1f\t%.1f\t%.1f%%\n",
			rec.ServiceName, rec.Identifier, rec.SeverityLabel, rec.AssetClass,
			rec.OccurrenceCount, rec.SeverityWeight, rec.RiskScore, rec.RiskSharePercent)
	}
	if w.err != nil {
		return w.err
	}
	return tw.Flush()
}

func writeTextSummary(w *errWriter, data Data) {
	w.println("Summary")
	w.println("-------")
	w.printf("Rows read:          %d\n", data.Summary.TotalRows)
	w.printf("Unique identifiers: %d\n", data.Summary.UniqueIdentifiers)
	if data.Config.AllowListEnabled {
		w.printf("Allow-list size:    %d\n", data.Config.AllowListSize)
		w.printf("Filtered out:       %d\n", data.Summary.FilteredOut)
	}
	w.printf("Normalization:      %s\n", data.Summary.Normalization)
	w.printf("Total risk score:   %.1f\n", data.Summary.TotalRiskScore)

	if len(data.Summary.BySeverity) > 0 {
		parts := formatMapSorted(data.Summary.BySeverity)
		w.printf("By severity:        %s\n", strings.Join(parts, ", "))
	}
	if len(data.Summary.OccurrenceCounts) > 0 {
		parts := formatMapSorted(data.Summary.OccurrenceCounts)
		w.printf("Occurrences:        %s\n", strings.Join(parts, ", "))
	}

	if len(data.Artifacts) > 0 {
		w.printf("\nArtifacts:\n")
		for _, a := range data.Artifacts {
			w.printf("  - %s\n", a)
		}
	}

	if len(data.Errors) > 0 {
		w.printf("\nWarnings (%d):\n", len(data.Errors))
		for _, e := range data.Errors {
			w.printf("  - %s\n", e)
		}
	}
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func formatMapSorted(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		name := k
		if name == "" {
			name = "(empty)"
		}
		parts = append(parts, fmt.Sprintf("%s=%d", name, m[k]))
	}
	return parts
}
