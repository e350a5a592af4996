package domain

import (
	"strconv"
	"time"
)

// ReportHeader is the fixed column schema shared by both rarity reports.
var ReportHeader = []string{
	"species_code",
	"scientific_name",
	"common_name",
	"year",
	"loc_id",
	"latitude",
	"longitude",
	"state",
}

// ReportRow is one enriched singleton in a rarity report.
type ReportRow struct {
	SpeciesCode    string
	ScientificName string
	CommonName     string
	Year           int
	LocID          string
	Latitude       string
	Longitude      string
	State          string
}

// Fields returns the row values in ReportHeader order.
func (r ReportRow) Fields() []string {
	return []string{
		r.SpeciesCode,
		r.ScientificName,
		r.CommonName,
		strconv.Itoa(r.Year),
		r.LocID,
		r.Latitude,
		r.Longitude,
		r.State,
	}
}

// RarityReport is an ordered set of singleton rows plus the time the report
// was assembled. Rows stay in singleton discovery order.
type RarityReport struct {
	Rows        []ReportRow
	GeneratedAt time.Time
}

// BuildReport enriches each singleton with taxonomy names and assembles the
// report. The overall report carries the observation's own year even though
// grouping ignored it.
func BuildReport(singletons []Singleton, taxonomy ReferenceTable) RarityReport {
	rows := make([]ReportRow, 0, len(singletons))
	for _, s := range singletons {
		names := taxonomy.Lookup(s.Key.SpeciesCode)
		obs := s.Observation
		rows = append(rows, ReportRow{
			SpeciesCode:    s.Key.SpeciesCode,
			ScientificName: names.ScientificName,
			CommonName:     names.CommonName,
			Year:           obs.Year,
			LocID:          obs.LocID,
			Latitude:       obs.Latitude,
			Longitude:      obs.Longitude,
			State:          obs.State,
		})
	}
	return RarityReport{Rows: rows, GeneratedAt: Now()}
}
