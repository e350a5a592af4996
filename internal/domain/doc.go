// Package domain models citizen-science bird observation data and the
// rarity computations performed over it.
//
// # Data Source
//
// Observation rows come from eBird-style checklist exports: CSV files with a
// header row whose column names drift across dataset vintages. The columns
// this pipeline cares about are resolved by name, not position:
//
//	VALID              exact match; "1" marks a reviewed, accepted record
//	SPECIES_CODE       exact match; short alphabetic species identifier
//	YEAR               exact match; four-digit observation year
//	LOC_ID             exact match; checklist location identifier
//	*SUBNATIONAL*      substring match; ISO 3166-2 subdivision code ("US-NJ")
//	*LATITUDE*         substring match, optional
//	*LONGITUDE*        substring match, optional
//
// Substring matching for the last three is deliberate: older exports name the
// column SUBNATIONAL1_CODE, newer ones SUBNATIONAL_CODE, and coordinate
// columns appear as LATITUDE or DECIMAL_LATITUDE depending on vintage.
//
// # Subnational Codes
//
// Subdivision codes follow ISO 3166-2: a country prefix, a hyphen, and a
// subdivision suffix. Only "US-" codes are retained; the state is everything
// after the first hyphen, so a hypothetical "US-XX-YY" yields state "XX-YY"
// rather than being truncated.
//
// # Taxonomy Reference
//
// The taxonomy table is a remote CSV keyed by species code (quoted, column 1)
// with scientific name in column 4 and common name in column 5. Lookups are
// case-insensitive. A missing table, a missing row, or a blank field each
// degrade independently to the sentinel "Unknown"; enrichment never fails a
// run.
//
// # Rarity
//
// A singleton is a species (or species-year pair) counted exactly once among
// the retained US observations. Counting preserves first-seen order: the
// frequency table records, in a single linear pass, both the count per key
// and the earliest observation for that key, so report rows surface in
// discovery order with stable input-order tie-breaks.
package domain
