package analysis

import (
	"lifelens/domain/health"
)

// Filter returns the subset of the dataset matching all five selection sets,
// preserving original row order. Columns whose set covers the full observed
// domain are skipped entirely rather than tested per row.
func Filter(ds *health.Dataset, sel health.Selection) []health.Record {
	active := make([]health.CategoricalColumn, 0, len(health.FilterColumns))
	for _, col := range health.FilterColumns {
		set := sel.Set(col)
		if len(set) == 0 {
			// An empty inclusion set matches nothing; no scan needed.
			return nil
		}
		if !set.Covers(ds.Domain(col)) {
			active = append(active, col)
		}
	}

	records := ds.Records()
	if len(active) == 0 {
		out := make([]health.Record, len(records))
		copy(out, records)
		return out
	}

	var out []health.Record
	for _, r := range records {
		match := true
		for _, col := range active {
			if !sel.Set(col).Contains(col.Value(r)) {
				match = false
				break
			}
		}
		if match {
			out = append(out, r)
		}
	}
	return out
}
