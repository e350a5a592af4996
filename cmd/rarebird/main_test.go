package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/bird-rarity-etl/internal/pipeline"
)

func TestRootCommand_RequiresInputFiles(t *testing.T) {
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, errOut.String()+out.String(), "Usage")
}

func TestRenderSummary(t *testing.T) {
	out := renderSummary(pipeline.Summary{
		FilesMerged:       2,
		RowsMerged:        240,
		USObservations:    190,
		SingletonsOverall: 3,
		SingletonsYearly:  7,
		OverallPath:       "rare_species_overall.csv",
		YearlyPath:        "rare_species_yearly.csv",
		Duration:          1234 * time.Millisecond,
	})

	assert.Contains(t, out, "rarebird run summary")
	assert.Contains(t, out, "rare_species_overall.csv")
	assert.Contains(t, out, "rare_species_yearly.csv")
	assert.Contains(t, out, "240")
}
