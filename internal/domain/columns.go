package domain

import (
	"strings"
)

// ColumnNotFound is the sentinel index for a column absent from a header.
const ColumnNotFound = -1

// ColumnMap holds the positional indices of the semantic fields in one input
// file, computed once from its header. Latitude and Longitude are optional;
// all other fields are required.
type ColumnMap struct {
	Valid       int
	SpeciesCode int
	Year        int
	LocID       int
	Subnational int
	Latitude    int
	Longitude   int
}

// ResolveColumns maps a comma-separated header line to a ColumnMap.
//
// Field names are normalized to uppercase. VALID, SPECIES_CODE, YEAR and
// LOC_ID match exactly; SUBNATIONAL, LATITUDE and LONGITUDE match by
// substring because their names vary across dataset vintages. The scan is
// left to right and the earliest matching column wins, which keeps
// resolution deterministic when a header repeats a name.
func ResolveColumns(header string) ColumnMap {
	cm := ColumnMap{
		Valid:       ColumnNotFound,
		SpeciesCode: ColumnNotFound,
		Year:        ColumnNotFound,
		LocID:       ColumnNotFound,
		Subnational: ColumnNotFound,
		Latitude:    ColumnNotFound,
		Longitude:   ColumnNotFound,
	}

	for i, field := range SplitFields(header) {
		name := strings.ToUpper(strings.TrimSpace(field))

		switch name {
		case "VALID":
			setIfUnset(&cm.Valid, i)
			continue
		case "SPECIES_CODE":
			setIfUnset(&cm.SpeciesCode, i)
			continue
		case "YEAR":
			setIfUnset(&cm.Year, i)
			continue
		case "LOC_ID":
			setIfUnset(&cm.LocID, i)
			continue
		}

		switch {
		case strings.Contains(name, "SUBNATIONAL"):
			setIfUnset(&cm.Subnational, i)
		case strings.Contains(name, "LATITUDE"):
			setIfUnset(&cm.Latitude, i)
		case strings.Contains(name, "LONGITUDE"):
			setIfUnset(&cm.Longitude, i)
		}
	}

	return cm
}

// setIfUnset assigns idx only on the first match so the earliest column wins.
func setIfUnset(target *int, idx int) {
	if *target == ColumnNotFound {
		*target = idx
	}
}

// MissingRequired lists the required semantic fields that did not resolve.
// An empty result means the file is processable.
func (cm ColumnMap) MissingRequired() []string {
	var missing []string
	for _, c := range []struct {
		name string
		idx  int
	}{
		{"VALID", cm.Valid},
		{"SPECIES_CODE", cm.SpeciesCode},
		{"YEAR", cm.Year},
		{"LOC_ID", cm.LocID},
		{"SUBNATIONAL", cm.Subnational},
	} {
		if c.idx == ColumnNotFound {
			missing = append(missing, c.name)
		}
	}
	return missing
}

// MaxRequiredIndex returns the highest required column index. Rows with fewer
// fields than this cannot be parsed and are dropped by the merger.
func (cm ColumnMap) MaxRequiredIndex() int {
	maxIdx := cm.Valid
	for _, idx := range []int{cm.SpeciesCode, cm.Year, cm.LocID, cm.Subnational} {
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	return maxIdx
}

// SplitFields splits a CSV line on commas. The pipeline deliberately uses
// plain comma splitting rather than a quoting-aware parser: the observation
// exports it consumes never embed commas, and the simple rule keeps row
// handling identical across the merger, the preview and the report writer.
// Known limitation: fields containing commas are not supported.
func SplitFields(line string) []string {
	return strings.Split(line, ",")
}

// FieldAt returns the trimmed field at idx, or UnknownField when idx is the
// not-found sentinel or lies beyond the row. Used for the optional coordinate
// columns.
func FieldAt(fields []string, idx int) string {
	if idx == ColumnNotFound || idx >= len(fields) {
		return UnknownField
	}
	return strings.TrimSpace(fields[idx])
}
