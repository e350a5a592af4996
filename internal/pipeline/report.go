package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/bird-rarity-etl/internal/domain"
)

// CSVReportWriter writes the overall and yearly rarity reports as flat CSV
// files, overwriting any previous run's output.
type CSVReportWriter struct {
	outputDir   string
	overallName string
	yearlyName  string
	logger      *slog.Logger
}

// NewCSVReportWriter creates a writer targeting outputDir.
func NewCSVReportWriter(outputDir, overallName, yearlyName string, logger *slog.Logger) *CSVReportWriter {
	return &CSVReportWriter{
		outputDir:   outputDir,
		overallName: overallName,
		yearlyName:  yearlyName,
		logger:      logger,
	}
}

// WriteReports persists both reports and returns their paths.
func (w *CSVReportWriter) WriteReports(overall, yearly domain.RarityReport) (string, string, error) {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create output dir: %w", err)
	}

	overallPath := filepath.Join(w.outputDir, w.overallName)
	if err := w.writeReport(overallPath, overall); err != nil {
		return "", "", fmt.Errorf("write overall report: %w", err)
	}

	yearlyPath := filepath.Join(w.outputDir, w.yearlyName)
	if err := w.writeReport(yearlyPath, yearly); err != nil {
		return "", "", fmt.Errorf("write yearly report: %w", err)
	}

	return overallPath, yearlyPath, nil
}

// writeReport emits the fixed header followed by the rows in report order.
// Fields are joined with plain commas, matching the simple-CSV convention of
// the rest of the pipeline; embedded commas are not escaped.
func (w *CSVReportWriter) writeReport(path string, report domain.RarityReport) error {
	var b strings.Builder
	b.WriteString(strings.Join(domain.ReportHeader, ","))
	b.WriteByte('\n')
	for _, row := range report.Rows {
		b.WriteString(strings.Join(row.Fields(), ","))
		b.WriteByte('\n')
	}

	// os.WriteFile truncates, so a prior run's report is fully replaced.
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return err
	}

	w.logger.Info("report written", "path", path, "rows", len(report.Rows))
	return nil
}
