package domain

import (
	"strconv"
	"strings"
)

// usPrefix marks a United States subnational code per ISO 3166-2.
const usPrefix = "US-"

// FilterUS reduces merged rows to US observations: the row must be flagged
// valid ("1") and carry a "US-" subnational code. The state is everything
// after the first hyphen, so codes with embedded hyphens keep their full
// suffix. Row order is preserved; downstream first-occurrence semantics
// depend on it.
func FilterUS(rows []MergedRow) []Observation {
	observations := make([]Observation, 0, len(rows))
	for _, row := range rows {
		obs, ok := usObservation(row)
		if !ok {
			continue
		}
		observations = append(observations, obs)
	}
	return observations
}

// usObservation converts one merged row, reporting false when the row is not
// a valid US record.
func usObservation(row MergedRow) (Observation, bool) {
	if row.Valid != "1" {
		return Observation{}, false
	}
	if !strings.HasPrefix(row.Subnational, usPrefix) {
		return Observation{}, false
	}

	state := stateFromSubnational(row.Subnational)
	if state == "" {
		return Observation{}, false
	}

	return Observation{
		SpeciesCode: row.SpeciesCode,
		Year:        parseYear(row.Year),
		LocID:       row.LocID,
		Country:     "US",
		Latitude:    row.Latitude,
		Longitude:   row.Longitude,
		State:       state,
	}, true
}

// stateFromSubnational extracts the subdivision suffix after the first
// hyphen. "US-NJ" yields "NJ"; "US-XX-YY" yields "XX-YY".
func stateFromSubnational(code string) string {
	parts := strings.SplitN(code, "-", 2)
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// parseYear converts the raw year field, returning 0 for unparseable values.
// Grouping only needs exact equality, so a zero year still aggregates
// consistently.
func parseYear(raw string) int {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return year
}
