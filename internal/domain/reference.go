package domain

import "strings"

// SpeciesNames holds the taxonomy names for one species code. Either field
// may be empty when the reference table has gaps.
type SpeciesNames struct {
	ScientificName string
	CommonName     string
}

// ReferenceTable maps lowercase species codes to taxonomy names. A nil or
// empty table is valid and simply resolves nothing.
type ReferenceTable map[string]SpeciesNames

// Reference CSV layout: species code quoted in column 1, scientific name in
// column 4, common name in column 5.
const (
	refCodeColumn       = 0
	refScientificColumn = 3
	refCommonColumn     = 4
)

// ParseReferenceTable reads the raw reference CSV into a lookup table. Rows
// too short to carry both name columns are skipped, as is the header. The
// species code is unquoted and lowercased so lookups are case-insensitive.
func ParseReferenceTable(raw string) ReferenceTable {
	table := make(ReferenceTable)

	for i, line := range strings.Split(raw, "\n") {
		if i == 0 {
			continue // header
		}
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		fields := SplitFields(line)
		if len(fields) <= refCommonColumn {
			continue
		}

		code := strings.ToLower(strings.Trim(strings.TrimSpace(fields[refCodeColumn]), `"`))
		if code == "" {
			continue
		}

		table[code] = SpeciesNames{
			ScientificName: strings.TrimSpace(fields[refScientificColumn]),
			CommonName:     strings.TrimSpace(fields[refCommonColumn]),
		}
	}

	return table
}

// Lookup resolves a species code case-insensitively, substituting
// UnknownField independently for each name the table cannot supply. It never
// fails: an absent code, an empty table, or a partial entry all degrade to
// sentinels.
func (t ReferenceTable) Lookup(speciesCode string) SpeciesNames {
	names := t[strings.ToLower(speciesCode)]

	if names.ScientificName == "" {
		names.ScientificName = UnknownField
	}
	if names.CommonName == "" {
		names.CommonName = UnknownField
	}
	return names
}
