package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/bird-rarity-etl/internal/domain"
	"github.com/couchcryptid/bird-rarity-etl/internal/observability"
)

// mergeStats accounts for the merge stage outcome across all input files.
type mergeStats struct {
	filesMerged  int
	filesSkipped int
	rowsMerged   int
	rowsDropped  int
}

// mergeFiles reads every input file in argument order and produces the
// unified merged-row stream. Missing files and files with unresolvable
// required columns are skipped with a warning; rows too short to cover the
// resolved required indices are dropped silently to tolerate malformed
// trailing rows.
func mergeFiles(paths []string, logger *slog.Logger, metrics *observability.Metrics) ([]domain.MergedRow, mergeStats) {
	var rows []domain.MergedRow
	var stats mergeStats

	for _, path := range paths {
		fileRows, err := mergeFile(path, logger)
		if err != nil {
			logger.Warn("skipping input file", "file", path, "reason", err)
			stats.filesSkipped++
			metrics.FilesSkipped.Inc()
			continue
		}

		stats.filesMerged++
		metrics.FilesMerged.Inc()
		stats.rowsMerged += len(fileRows.rows)
		stats.rowsDropped += fileRows.dropped
		metrics.RowsMerged.Add(float64(len(fileRows.rows)))
		metrics.RowsDropped.Add(float64(fileRows.dropped))

		rows = append(rows, fileRows.rows...)
	}

	return rows, stats
}

type fileResult struct {
	rows    []domain.MergedRow
	dropped int
}

// mergeFile resolves one file's columns and converts its data rows. The
// returned error covers the whole-file skip cases: missing file, unreadable
// file, empty file, unresolvable required columns.
func mergeFile(path string, logger *slog.Logger) (fileResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fileResult{}, errors.New("file does not exist")
		}
		return fileResult{}, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fileResult{}, fmt.Errorf("read header: %w", err)
		}
		return fileResult{}, errors.New("file is empty")
	}

	header := strings.TrimRight(scanner.Text(), "\r")
	cm := domain.ResolveColumns(header)

	logger.Debug("resolved columns",
		"file", path,
		"valid", cm.Valid,
		"species_code", cm.SpeciesCode,
		"year", cm.Year,
		"loc_id", cm.LocID,
		"subnational", cm.Subnational,
		"latitude", cm.Latitude,
		"longitude", cm.Longitude,
	)

	if missing := cm.MissingRequired(); len(missing) > 0 {
		return fileResult{}, fmt.Errorf("required columns not found: %s", strings.Join(missing, ", "))
	}

	var res fileResult
	maxRequired := cm.MaxRequiredIndex()

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		fields := domain.SplitFields(line)
		if len(fields) <= maxRequired {
			res.dropped++
			continue
		}

		res.rows = append(res.rows, domain.MergedRow{
			SourceFile:  path,
			SpeciesCode: strings.TrimSpace(fields[cm.SpeciesCode]),
			Year:        strings.TrimSpace(fields[cm.Year]),
			LocID:       strings.TrimSpace(fields[cm.LocID]),
			Latitude:    domain.FieldAt(fields, cm.Latitude),
			Longitude:   domain.FieldAt(fields, cm.Longitude),
			Subnational: strings.TrimSpace(fields[cm.Subnational]),
			Valid:       strings.TrimSpace(fields[cm.Valid]),
		})
	}

	if err := scanner.Err(); err != nil {
		return fileResult{}, fmt.Errorf("read rows: %w", err)
	}
	return res, nil
}
