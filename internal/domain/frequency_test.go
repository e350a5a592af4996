package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/bird-rarity-etl/internal/domain"
)

func observation(species string, year int, locID string) domain.Observation {
	return domain.Observation{
		SpeciesCode: species,
		Year:        year,
		LocID:       locID,
		Country:     "US",
		Latitude:    "40.0",
		Longitude:   "-74.0",
		State:       "NJ",
	}
}

func TestAggregate_OverallAndYearlyCounts(t *testing.T) {
	overall, yearly := domain.Aggregate([]domain.Observation{
		observation("amecro", 2021, "L1"),
		observation("amecro", 2022, "L2"),
		observation("norcar", 2021, "L3"),
	})

	assert.Equal(t, 2, overall.Count(domain.GroupKey{SpeciesCode: "amecro"}))
	assert.Equal(t, 1, overall.Count(domain.GroupKey{SpeciesCode: "norcar"}))
	assert.Equal(t, 1, yearly.Count(domain.GroupKey{SpeciesCode: "amecro", Year: 2021}))
	assert.Equal(t, 1, yearly.Count(domain.GroupKey{SpeciesCode: "amecro", Year: 2022}))
}

func TestAggregate_SpeciesTwiceOverallOnceYearly(t *testing.T) {
	// Two observations in different years: absent from the overall singletons
	// but present in the yearly singletons for both years.
	overall, yearly := domain.Aggregate([]domain.Observation{
		observation("amecro", 2021, "L1"),
		observation("amecro", 2022, "L2"),
	})

	assert.Empty(t, overall.Singletons())

	singles := yearly.Singletons()
	require.Len(t, singles, 2)
	assert.Equal(t, domain.GroupKey{SpeciesCode: "amecro", Year: 2021}, singles[0].Key)
	assert.Equal(t, "L1", singles[0].Observation.LocID)
	assert.Equal(t, domain.GroupKey{SpeciesCode: "amecro", Year: 2022}, singles[1].Key)
	assert.Equal(t, "L2", singles[1].Observation.LocID)
}

func TestFrequencyTable_FirstObservationWins(t *testing.T) {
	table := domain.NewFrequencyTable()
	key := domain.GroupKey{SpeciesCode: "blujay", Year: 2021}

	table.Add(key, observation("blujay", 2021, "L-first"))
	table.Add(key, observation("blujay", 2021, "L-second"))

	assert.Equal(t, 2, table.Count(key))
	// Count 2 means it is no singleton, but the stored first record must
	// still be the earliest one.
	assert.Empty(t, table.Singletons())
}

func TestFrequencyTable_SingletonsInDiscoveryOrder(t *testing.T) {
	table := domain.NewFrequencyTable()
	table.Add(domain.GroupKey{SpeciesCode: "c"}, observation("c", 2021, "L1"))
	table.Add(domain.GroupKey{SpeciesCode: "a"}, observation("a", 2021, "L2"))
	table.Add(domain.GroupKey{SpeciesCode: "b"}, observation("b", 2021, "L3"))
	table.Add(domain.GroupKey{SpeciesCode: "a"}, observation("a", 2022, "L4"))

	singles := table.Singletons()
	require.Len(t, singles, 2)
	// Discovery order, not lexical order: c before b, a dropped (count 2).
	assert.Equal(t, "c", singles[0].Key.SpeciesCode)
	assert.Equal(t, "b", singles[1].Key.SpeciesCode)
}

func TestFrequencyTable_SingletonCarriesFullObservation(t *testing.T) {
	table := domain.NewFrequencyTable()
	obs := observation("dowwoo", 2019, "L77")
	obs.State = "TX"
	table.Add(domain.GroupKey{SpeciesCode: "dowwoo"}, obs)

	singles := table.Singletons()
	require.Len(t, singles, 1)
	assert.Equal(t, obs, singles[0].Observation)
}

func TestGroupKey_String(t *testing.T) {
	assert.Equal(t, "amecro", domain.GroupKey{SpeciesCode: "amecro"}.String())
	assert.Equal(t, "amecro/2021", domain.GroupKey{SpeciesCode: "amecro", Year: 2021}.String())
}
