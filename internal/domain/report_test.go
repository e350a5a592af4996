package domain_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/bird-rarity-etl/internal/domain"
)

func TestBuildReport_EnrichesFromTaxonomy(t *testing.T) {
	fakeClock := clockwork.NewFakeClockAt(time.Date(2026, time.August, 23, 12, 0, 0, 0, time.UTC))
	domain.SetClock(fakeClock)
	t.Cleanup(func() { domain.SetClock(nil) })

	taxonomy := domain.ParseReferenceTable(refCSV)
	obs := observation("amecro", 2021, "L123")

	report := domain.BuildReport([]domain.Singleton{
		{Key: domain.GroupKey{SpeciesCode: "amecro"}, Observation: obs},
	}, taxonomy)

	require.Len(t, report.Rows, 1)
	assert.Equal(t, fakeClock.Now(), report.GeneratedAt)

	expected := domain.ReportRow{
		SpeciesCode:    "amecro",
		ScientificName: "Corvus brachyrhynchos",
		CommonName:     "American Crow",
		Year:           2021,
		LocID:          "L123",
		Latitude:       "40.0",
		Longitude:      "-74.0",
		State:          "NJ",
	}
	if diff := cmp.Diff(expected, report.Rows[0]); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildReport_UnknownNamesWithoutTaxonomy(t *testing.T) {
	report := domain.BuildReport([]domain.Singleton{
		{Key: domain.GroupKey{SpeciesCode: "amecro"}, Observation: observation("amecro", 2021, "L123")},
	}, domain.ReferenceTable{})

	require.Len(t, report.Rows, 1)
	assert.Equal(t, domain.UnknownField, report.Rows[0].ScientificName)
	assert.Equal(t, domain.UnknownField, report.Rows[0].CommonName)
}

func TestBuildReport_PreservesSingletonOrder(t *testing.T) {
	report := domain.BuildReport([]domain.Singleton{
		{Key: domain.GroupKey{SpeciesCode: "zebra"}, Observation: observation("zebra", 2021, "L1")},
		{Key: domain.GroupKey{SpeciesCode: "apple"}, Observation: observation("apple", 2021, "L2")},
	}, nil)

	require.Len(t, report.Rows, 2)
	assert.Equal(t, "zebra", report.Rows[0].SpeciesCode)
	assert.Equal(t, "apple", report.Rows[1].SpeciesCode)
}

func TestReportRow_FieldsMatchHeaderOrder(t *testing.T) {
	row := domain.ReportRow{
		SpeciesCode:    "amecro",
		ScientificName: "Corvus brachyrhynchos",
		CommonName:     "American Crow",
		Year:           2021,
		LocID:          "L123",
		Latitude:       "40.1",
		Longitude:      "-74.2",
		State:          "NJ",
	}

	fields := row.Fields()
	require.Len(t, fields, len(domain.ReportHeader))
	assert.Equal(t, []string{"amecro", "Corvus brachyrhynchos", "American Crow", "2021", "L123", "40.1", "-74.2", "NJ"}, fields)
}
