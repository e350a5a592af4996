package domain

import "strconv"

// GroupKey identifies an aggregation group: a species code alone for the
// overall report, or a species code plus year for the yearly report.
type GroupKey struct {
	SpeciesCode string
	Year        int // 0 in the overall aggregation
}

func (k GroupKey) String() string {
	if k.Year == 0 {
		return k.SpeciesCode
	}
	return k.SpeciesCode + "/" + strconv.Itoa(k.Year)
}

// FrequencyTable counts observations per group while remembering, for each
// group, the first observation encountered. Keys keep insertion order so
// singleton extraction walks groups in discovery order rather than a second
// search pass over the stream.
type FrequencyTable struct {
	order  []GroupKey
	counts map[GroupKey]int
	first  map[GroupKey]Observation
}

// NewFrequencyTable returns an empty table.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{
		counts: make(map[GroupKey]int),
		first:  make(map[GroupKey]Observation),
	}
}

// Add records one observation under key.
func (t *FrequencyTable) Add(key GroupKey, obs Observation) {
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
		t.first[key] = obs
	}
	t.counts[key]++
}

// Len returns the number of distinct groups.
func (t *FrequencyTable) Len() int { return len(t.order) }

// Count returns the observation count for key.
func (t *FrequencyTable) Count(key GroupKey) int { return t.counts[key] }

// Singleton pairs a group observed exactly once with its sole observation.
type Singleton struct {
	Key         GroupKey
	Observation Observation
}

// Singletons returns the groups whose count is exactly one, in discovery
// order.
func (t *FrequencyTable) Singletons() []Singleton {
	var singles []Singleton
	for _, key := range t.order {
		if t.counts[key] != 1 {
			continue
		}
		singles = append(singles, Singleton{Key: key, Observation: t.first[key]})
	}
	return singles
}

// Aggregate builds the overall (per species) and yearly (per species-year)
// frequency tables in one pass over the observation stream, preserving input
// order in both.
func Aggregate(observations []Observation) (overall, yearly *FrequencyTable) {
	overall = NewFrequencyTable()
	yearly = NewFrequencyTable()

	for _, obs := range observations {
		overall.Add(GroupKey{SpeciesCode: obs.SpeciesCode}, obs)
		yearly.Add(GroupKey{SpeciesCode: obs.SpeciesCode, Year: obs.Year}, obs)
	}

	return overall, yearly
}
