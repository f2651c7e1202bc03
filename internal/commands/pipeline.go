package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ppiankov/riskspectre/internal/analyzer"
	"github.com/ppiankov/riskspectre/internal/config"
	"github.com/ppiankov/riskspectre/internal/csvio"
	"github.com/ppiankov/riskspectre/internal/inventory"
	"github.com/ppiankov/riskspectre/internal/report"
	"github.com/ppiankov/riskspectre/internal/scoring"
	"github.com/spf13/cobra"
)

const (
	defaultFormat        = "text"
	defaultNormalization = "global"
	defaultAllowList     = "Apps.csv"
	defaultRecordsOutput = "analyzed_data.csv"
	defaultChartOutput   = "risk_chart.csv"
	defaultTimeout       = 10 * time.Minute
)

// analysisOptions holds the flags shared by every inventory source command.
type analysisOptions struct {
	allowList         string
	normalize         string
	format            string
	outputFile        string
	recordsOutput     string
	chartOutput       string
	includeIdentifier bool
	detailedChart     bool
	timeout           time.Duration
}

func addAnalysisFlags(cmd *cobra.Command, o *analysisOptions) {
	cmd.Flags().StringVar(&o.allowList, "allow-list", defaultAllowList, "CSV file of allowed application codes (missing file disables filtering)")
	cmd.Flags().StringVar(&o.normalize, "normalize", defaultNormalization, "Risk share normalization: global or grouped (per severity label)")
	cmd.Flags().StringVar(&o.format, "format", defaultFormat, "Output format: text, json, sarif")
	cmd.Flags().StringVarP(&o.outputFile, "output", "o", "", "Report output file path (default: stdout)")
	cmd.Flags().StringVar(&o.recordsOutput, "records-output", defaultRecordsOutput, "Enriched records CSV path (empty to skip)")
	cmd.Flags().StringVar(&o.chartOutput, "chart-output", defaultChartOutput, "Risk chart CSV path (empty to skip)")
	cmd.Flags().BoolVar(&o.includeIdentifier, "include-identifier", false, "Keep the application code column in the enriched records CSV")
	cmd.Flags().BoolVar(&o.detailedChart, "detailed-chart", false, "Add service name and severity weight columns to the chart CSV")
	cmd.Flags().DurationVar(&o.timeout, "timeout", defaultTimeout, "Run timeout")
}

func (o *analysisOptions) reset() {
	*o = analysisOptions{
		allowList:     defaultAllowList,
		normalize:     defaultNormalization,
		format:        defaultFormat,
		recordsOutput: defaultRecordsOutput,
		chartOutput:   defaultChartOutput,
		timeout:       defaultTimeout,
	}
}

// applyConfigDefaults fills options still at their flag defaults from cfg.
func (o *analysisOptions) applyConfigDefaults(cfg config.Config) {
	if o.format == defaultFormat && cfg.Format != "" {
		o.format = cfg.Format
	}
	if o.normalize == defaultNormalization && cfg.Normalization != "" {
		o.normalize = cfg.Normalization
	}
	if o.allowList == defaultAllowList && cfg.AllowList != "" {
		o.allowList = cfg.AllowList
	}
	if o.recordsOutput == defaultRecordsOutput && cfg.Output != "" {
		o.recordsOutput = cfg.Output
	}
	if o.chartOutput == defaultChartOutput && cfg.ChartOutput != "" {
		o.chartOutput = cfg.ChartOutput
	}
	if !o.includeIdentifier && cfg.IncludeIdentifier {
		o.includeIdentifier = true
	}
	if !o.detailedChart && cfg.DetailedChart {
		o.detailedChart = true
	}
	if o.timeout == defaultTimeout && cfg.TimeoutDuration() > 0 {
		o.timeout = cfg.TimeoutDuration()
	}
}

// runPipeline analyzes src, persists the record and chart CSVs and writes the report.
func runPipeline(ctx context.Context, o *analysisOptions, cfg config.Config, src inventory.Source, target report.Target, sourceName string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	normalization, err := analyzer.ParseNormalization(o.normalize)
	if err != nil {
		return err
	}

	var warnings []string
	allow, err := loadAllowList(o.allowList, cfg.Columns.WithDefaults().Identifier)
	if err != nil {
		slog.Warn("Failed to load allow-list, no filtering will be applied", "error", err)
		warnings = append(warnings, err.Error())
	}

	result, err := analyzer.Run(ctx, src, analyzer.AnalyzerConfig{
		Mapper:        scoring.NewMapper(cfg.Weights),
		AllowList:     allow,
		Normalization: normalization,
	})
	if errors.Is(err, analyzer.ErrNoRecords) {
		return fmt.Errorf("%s: %w", sourceName, err)
	}
	if err != nil {
		return enhanceError("analyze inventory", err)
	}

	artifacts, err := writeArtifacts(result, o)
	if err != nil {
		return err
	}

	data := report.Data{
		Tool:      "riskspectre",
		Version:   version,
		Timestamp: time.Now().UTC(),
		Target:    target,
		Config: report.ReportConfig{
			Source:            sourceName,
			Normalization:     string(normalization),
			AllowListEnabled:  allow.Enabled(),
			AllowListSize:     allow.Len(),
			IncludeIdentifier: o.includeIdentifier,
		},
		Records:   result.Records,
		Chart:     result.Chart,
		Summary:   result.Summary,
		Artifacts: artifacts,
		Errors:    warnings,
	}

	var w io.Writer = os.Stdout
	if o.outputFile != "" {
		f, err := os.Create(o.outputFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	reporter, err := selectReporter(o.format, w)
	if err != nil {
		return err
	}
	return reporter.Generate(data)
}

func loadAllowList(path, column string) (analyzer.AllowList, error) {
	if path == "" {
		return analyzer.AllowAll(), nil
	}
	ids, err := csvio.LoadAllowList(path, column)
	if err != nil {
		return analyzer.AllowAll(), err
	}
	return analyzer.NewAllowList(ids), nil
}

func writeArtifacts(result *analyzer.AnalysisResult, o *analysisOptions) ([]string, error) {
	var artifacts []string

	if o.recordsOutput != "" {
		var sink inventory.RecordSink = &csvio.RecordFile{Path: o.recordsOutput}
		if err := sink.WriteRecords(result.Records, o.includeIdentifier); err != nil {
			return nil, fmt.Errorf("save enriched records: %w", err)
		}
		slog.Info("Saved enriched records", "path", o.recordsOutput, "include_identifier", o.includeIdentifier)
		artifacts = append(artifacts, o.recordsOutput)
	}

	if o.chartOutput != "" {
		var sink inventory.ChartSink = &csvio.ChartFile{Path: o.chartOutput, Detailed: o.detailedChart}
		if err := sink.WriteChart(result.Chart); err != nil {
			return nil, fmt.Errorf("save risk chart: %w", err)
		}
		slog.Info("Saved risk chart", "path", o.chartOutput)
		artifacts = append(artifacts, o.chartOutput)
	}

	return artifacts, nil
}

func selectReporter(format string, w io.Writer) (report.Reporter, error) {
	switch format {
	case "json":
		return &report.JSONReporter{Writer: w}, nil
	case "text":
		return &report.TextReporter{Writer: w}, nil
	case "sarif":
		return &report.SARIFReporter{Writer: w}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use text, json, or sarif)", format)
	}
}
