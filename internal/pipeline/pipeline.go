package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/couchcryptid/bird-rarity-etl/internal/domain"
	"github.com/couchcryptid/bird-rarity-etl/internal/observability"
)

// Fatal run outcomes, mapped to exit code 1 by the command layer.
var (
	// ErrNoMergedData means no input file yielded a single usable data row.
	ErrNoMergedData = errors.New("no valid data found in input files")
	// ErrNoUSObservations means merging succeeded but the US filter rejected
	// every row.
	ErrNoUSObservations = errors.New("no valid US observations found")
)

// ReferenceFetcher supplies the taxonomy reference table. Implementations
// must degrade to an empty table rather than fail.
type ReferenceFetcher interface {
	FetchOrEmpty(ctx context.Context) domain.ReferenceTable
}

// ReportWriter persists the two rarity reports and returns their paths.
type ReportWriter interface {
	WriteReports(overall, yearly domain.RarityReport) (overallPath, yearlyPath string, err error)
}

// Summary is the final accounting of a run, rendered for the console.
type Summary struct {
	FilesMerged  int
	FilesSkipped int
	RowsMerged   int
	RowsDropped  int

	USObservations int
	Excluded       int

	ReferenceEntries  int
	SingletonsOverall int
	SingletonsYearly  int

	OverallPath string
	YearlyPath  string
	Duration    time.Duration
}

// Pipeline orchestrates one batch run: fetch reference data, merge, filter,
// aggregate, extract singletons, enrich, write reports.
type Pipeline struct {
	reference    ReferenceFetcher
	writer       ReportWriter
	logger       *slog.Logger
	metrics      *observability.Metrics
	previewLines int
}

// New creates a Pipeline with the given stages and observability.
func New(reference ReferenceFetcher, writer ReportWriter, logger *slog.Logger, metrics *observability.Metrics, previewLines int) *Pipeline {
	return &Pipeline{
		reference:    reference,
		writer:       writer,
		logger:       logger,
		metrics:      metrics,
		previewLines: previewLines,
	}
}

// Run executes the full pipeline over the named input files. The two "no
// data" sentinels are the only fatal data conditions; per-file problems are
// handled where detected and never widen.
func (p *Pipeline) Run(ctx context.Context, paths []string) (Summary, error) {
	start := domain.Now()

	workdir, err := os.MkdirTemp("", "rarebird-")
	if err != nil {
		return Summary{}, err
	}
	// The working area is removed on every exit path, including early errors.
	defer func() {
		if err := os.RemoveAll(workdir); err != nil {
			p.logger.Warn("failed to remove working directory", "dir", workdir, "error", err)
		}
	}()
	p.logger.Debug("working directory created", "dir", workdir)

	taxonomy := p.reference.FetchOrEmpty(ctx)
	p.metrics.ReferenceEntries.Set(float64(len(taxonomy)))

	merged, stats := mergeFiles(paths, p.logger, p.metrics)
	if len(merged) == 0 {
		return Summary{}, ErrNoMergedData
	}
	p.stageMergedRows(workdir, merged)

	observations := domain.FilterUS(merged)
	excluded := len(merged) - len(observations)
	p.metrics.ObservationsRetained.Add(float64(len(observations)))
	p.metrics.ObservationsExcluded.Add(float64(excluded))

	if len(observations) == 0 {
		p.logPreview(merged)
		return Summary{}, ErrNoUSObservations
	}

	overall, yearly := domain.Aggregate(observations)

	overallReport := domain.BuildReport(overall.Singletons(), taxonomy)
	yearlyReport := domain.BuildReport(yearly.Singletons(), taxonomy)
	p.metrics.SingletonsOverall.Set(float64(len(overallReport.Rows)))
	p.metrics.SingletonsYearly.Set(float64(len(yearlyReport.Rows)))

	overallPath, yearlyPath, err := p.writer.WriteReports(overallReport, yearlyReport)
	if err != nil {
		return Summary{}, err
	}

	duration := domain.Now().Sub(start)
	p.metrics.RunDuration.Observe(duration.Seconds())

	summary := Summary{
		FilesMerged:       stats.filesMerged,
		FilesSkipped:      stats.filesSkipped,
		RowsMerged:        stats.rowsMerged,
		RowsDropped:       stats.rowsDropped,
		USObservations:    len(observations),
		Excluded:          excluded,
		ReferenceEntries:  len(taxonomy),
		SingletonsOverall: len(overallReport.Rows),
		SingletonsYearly:  len(yearlyReport.Rows),
		OverallPath:       overallPath,
		YearlyPath:        yearlyPath,
		Duration:          duration,
	}

	p.logger.Info("pipeline complete",
		"files_merged", summary.FilesMerged,
		"rows_merged", summary.RowsMerged,
		"us_observations", summary.USObservations,
		"singletons_overall", summary.SingletonsOverall,
		"singletons_yearly", summary.SingletonsYearly,
		"duration", duration,
	)
	return summary, nil
}

// stageMergedRows writes the intermediate merged stream into the working
// directory. Staging is best effort; the in-memory stream is authoritative.
func (p *Pipeline) stageMergedRows(workdir string, merged []domain.MergedRow) {
	var b strings.Builder
	for _, row := range merged {
		b.WriteString(row.Line())
		b.WriteByte('\n')
	}

	path := filepath.Join(workdir, "merged.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		p.logger.Warn("failed to stage merged rows", "path", path, "error", err)
		return
	}
	p.logger.Debug("staged merged rows", "path", path, "rows", len(merged))
}

// logPreview surfaces the first few raw merged lines when US filtering left
// nothing, so the operator can see what the inputs actually contained.
func (p *Pipeline) logPreview(merged []domain.MergedRow) {
	n := p.previewLines
	if n > len(merged) {
		n = len(merged)
	}
	for i := 0; i < n; i++ {
		p.logger.Error("merged row preview", "line", i+1, "row", merged[i].Line())
	}
}
