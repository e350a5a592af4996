package domain

// UnknownField is the sentinel for data the pipeline could not resolve:
// unresolved coordinate columns and missing taxonomy names.
const UnknownField = "Unknown"

// MergedRow is a raw observation row after multi-file merging, before US
// filtering. Field values are verbatim from the source file; Latitude and
// Longitude carry UnknownField when their columns did not resolve.
type MergedRow struct {
	SourceFile  string
	SpeciesCode string
	Year        string
	LocID       string
	Latitude    string
	Longitude   string
	Subnational string
	Valid       string
}

// Line renders the row in the intermediate merged-file layout. Used both for
// staging rows to the working directory and for diagnostic previews.
func (r MergedRow) Line() string {
	return r.SourceFile + "," + r.SpeciesCode + "," + r.Year + "," + r.LocID + "," +
		r.Latitude + "," + r.Longitude + "," + r.Subnational + "," + r.Valid
}

// Observation is a retained US observation. Immutable once created; every
// Observation has Valid=="1" upstream and a "US-" subnational code, so only
// the derived state is kept here.
type Observation struct {
	SpeciesCode string
	Year        int
	LocID       string
	Country     string // always "US"
	Latitude    string
	Longitude   string
	State       string
}
