// Command validate cross-checks generated rarity reports against the input
// observation CSVs. It re-runs the domain computations and verifies the
// US-only invariant, the singleton property, first-occurrence field
// extraction, and the report column schema.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -overall rare_species_overall.csv \
//	  -yearly rare_species_yearly.csv \
//	  observations_a.csv observations_b.csv
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/bird-rarity-etl/internal/domain"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	overallPath := flag.String("overall", "", "path to the overall rarity report")
	yearlyPath := flag.String("yearly", "", "path to the yearly rarity report")
	flag.Parse()

	if *overallPath == "" || *yearlyPath == "" || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*overallPath, *yearlyPath, flag.Args()))
}

func run(overallPath, yearlyPath string, inputs []string) int {
	fmt.Println("=== Rarity Report Integrity Validation ===")
	fmt.Println()

	merged, err := loadInputs(inputs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load inputs: %v\n", err)
		return 1
	}

	overallRows, err := loadReport(overallPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load overall report: %v\n", err)
		return 1
	}
	yearlyRows, err := loadReport(yearlyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load yearly report: %v\n", err)
		return 1
	}

	observations := domain.FilterUS(merged)
	overall, yearly := domain.Aggregate(observations)

	phases := []*phase{
		validateSchema(overallRows, yearlyRows),
		validateUSOnly(overallRows, yearlyRows),
		validateSingletons("overall", overallRows, overall.Singletons(), false),
		validateSingletons("yearly", yearlyRows, yearly.Singletons(), true),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-44s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d merged, %d US observations, %d overall report rows, %d yearly report rows\n",
		len(merged), len(observations), len(overallRows), len(yearlyRows))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Data loading ──

// loadInputs re-runs column resolution and row conversion over the input
// files, mirroring the merger's rules (short rows dropped, files with
// unresolvable columns rejected outright here since validation wants them
// visible).
func loadInputs(paths []string) ([]domain.MergedRow, error) {
	var merged []domain.MergedRow
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
		if len(lines) == 0 {
			return nil, fmt.Errorf("%s: empty file", path)
		}

		cm := domain.ResolveColumns(lines[0])
		if missing := cm.MissingRequired(); len(missing) > 0 {
			return nil, fmt.Errorf("%s: required columns not found: %s", path, strings.Join(missing, ", "))
		}

		maxRequired := cm.MaxRequiredIndex()
		for _, line := range lines[1:] {
			if line == "" {
				continue
			}
			fields := domain.SplitFields(line)
			if len(fields) <= maxRequired {
				continue
			}
			merged = append(merged, domain.MergedRow{
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
	}
	return merged, nil
}

// reportRow is a parsed report line with its original line number.
type reportRow struct {
	lineNum int
	fields  []string
}

func loadReport(path string) ([]reportRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty report")
	}

	expected := strings.Join(domain.ReportHeader, ",")
	if lines[0] != expected {
		return nil, fmt.Errorf("header mismatch: got %q, want %q", lines[0], expected)
	}

	var rows []reportRow
	for i, line := range lines[1:] {
		rows = append(rows, reportRow{lineNum: i + 2, fields: domain.SplitFields(line)})
	}
	return rows, nil
}

// ── Phase 1: Report Schema ──

func validateSchema(overall, yearly []reportRow) *phase {
	p := &phase{name: "Phase 1: Report Schema (8 columns)"}
	for label, rows := range map[string][]reportRow{"overall": overall, "yearly": yearly} {
		for _, r := range rows {
			if len(r.fields) != len(domain.ReportHeader) {
				p.errorf("%s line %d: %d fields, want %d", label, r.lineNum, len(r.fields), len(domain.ReportHeader))
			}
		}
	}
	return p
}

// ── Phase 2: US-Only Invariant ──
// Every report row must name a two-letter-prefixed US state derived upstream;
// report rows never carry a bare country code or a non-US subdivision.

func validateUSOnly(overall, yearly []reportRow) *phase {
	p := &phase{name: "Phase 2: US-Only Invariant"}
	for label, rows := range map[string][]reportRow{"overall": overall, "yearly": yearly} {
		for _, r := range rows {
			if len(r.fields) != len(domain.ReportHeader) {
				continue // already reported by phase 1
			}
			state := r.fields[7]
			if state == "" {
				p.errorf("%s line %d: empty state", label, r.lineNum)
			}
			if strings.HasPrefix(state, "US-") {
				p.errorf("%s line %d: state %q still carries the country prefix", label, r.lineNum, state)
			}
		}
	}
	return p
}

// ── Phase 3/4: Singleton Property ──
// The report rows must match the recomputed singletons exactly, in order.

func validateSingletons(label string, rows []reportRow, singles []domain.Singleton, yearly bool) *phase {
	p := &phase{name: fmt.Sprintf("Phase 3: Singleton Property (%s)", label)}
	if yearly {
		p.name = fmt.Sprintf("Phase 4: Singleton Property (%s)", label)
	}

	if len(rows) != len(singles) {
		p.errorf("report has %d rows, recomputation yields %d singletons", len(rows), len(singles))
		return p
	}

	for i, s := range singles {
		r := rows[i]
		if len(r.fields) != len(domain.ReportHeader) {
			continue
		}
		obs := s.Observation

		if r.fields[0] != s.Key.SpeciesCode {
			p.errorf("line %d: species %q, want %q", r.lineNum, r.fields[0], s.Key.SpeciesCode)
		}
		if year, _ := strconv.Atoi(r.fields[3]); year != obs.Year {
			p.errorf("line %d: year %s, want %d", r.lineNum, r.fields[3], obs.Year)
		}
		if r.fields[4] != obs.LocID {
			p.errorf("line %d: loc_id %q, want %q", r.lineNum, r.fields[4], obs.LocID)
		}
		if r.fields[5] != obs.Latitude || r.fields[6] != obs.Longitude {
			p.errorf("line %d: coordinates %q,%q, want %q,%q", r.lineNum, r.fields[5], r.fields[6], obs.Latitude, obs.Longitude)
		}
		if r.fields[7] != obs.State {
			p.errorf("line %d: state %q, want %q", r.lineNum, r.fields[7], obs.State)
		}
	}
	return p
}
