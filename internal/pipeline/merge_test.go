package pipeline_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Merge behavior is exercised through Pipeline.Run; these tests pin down the
// cross-file cases the single-file scenarios do not cover.

func TestMerge_MixedVintagesAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	current := writeInput(t, dir, "current.csv",
		currentHeader+"\n1,amecro,2021,L1,40.1,-74.2,US-NJ\n")
	legacy := writeInput(t, dir, "legacy.csv",
		"species_code,valid,year,loc_id,subnational_code,decimal_latitude,decimal_longitude\n"+
			"norcar,1,2020,L2,US-TX,30.0,-97.0\n")

	p := newTestPipeline(t, nil, dir)
	summary, err := p.Run(context.Background(), []string{current, legacy})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.FilesMerged)
	assert.Equal(t, 2, summary.RowsMerged)
	assert.Equal(t, 2, summary.USObservations)

	overall := readReport(t, summary.OverallPath)
	assert.Contains(t, overall, "amecro,Unknown,Unknown,2021,L1,40.1,-74.2,NJ\n")
	assert.Contains(t, overall, "norcar,Unknown,Unknown,2020,L2,30.0,-97.0,TX\n")
}

func TestMerge_FileOrderDeterminesFirstOccurrence(t *testing.T) {
	// Rows from the first-named file are discovered first, so the yearly
	// report lists b.csv's 2022 row before a.csv's 2021 row.
	dir := t.TempDir()
	fileB := writeInput(t, dir, "b.csv",
		currentHeader+"\n1,blujay,2022,LB,41.0,-73.0,US-NY\n")
	fileA := writeInput(t, dir, "a.csv",
		currentHeader+"\n1,blujay,2021,LA,40.0,-74.0,US-NJ\n")

	p := newTestPipeline(t, nil, dir)
	// b.csv named first: its row is discovered first.
	summary, err := p.Run(context.Background(), []string{fileB, fileA})
	require.NoError(t, err)

	yearly := readReport(t, summary.YearlyPath)
	lines := []string{
		"blujay,Unknown,Unknown,2022,LB,41.0,-73.0,NY",
		"blujay,Unknown,Unknown,2021,LA,40.0,-74.0,NJ",
	}
	idxFirst := strings.Index(yearly, lines[0])
	idxSecond := strings.Index(yearly, lines[1])
	require.GreaterOrEqual(t, idxFirst, 0)
	require.GreaterOrEqual(t, idxSecond, 0)
	assert.Less(t, idxFirst, idxSecond)
}

func TestMerge_CRLFInput(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "obs.csv",
		currentHeader+"\r\n1,amecro,2021,L123,40.1,-74.2,US-NJ\r\n")

	p := newTestPipeline(t, nil, dir)
	summary, err := p.Run(context.Background(), []string{input})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.USObservations)
	overall := readReport(t, summary.OverallPath)
	assert.Contains(t, overall, ",NJ\n")
}
