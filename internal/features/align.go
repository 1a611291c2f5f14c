package features

import "sort"

// AlignedFeatureVector is a record projected onto an ordered column
// signature: Values[i] belongs to Columns[i]. Degraded marks vectors
// built without a stored signature.
type AlignedFeatureVector struct {
	Columns  []string
	Values   []float64
	Degraded bool
}

// Align projects rec onto expectedColumns: present values copy over,
// missing columns fill with 0, extra record keys drop. Output length and
// order always equal expectedColumns.
//
// With no expected columns the classifier artifact predates stored
// signatures; the record's natural column order is used instead and the
// vector is flagged Degraded so callers can surface it to operators.
func Align(rec EncodedFeatureRecord, expectedColumns []string) AlignedFeatureVector {
	if len(expectedColumns) == 0 {
		cols := naturalColumns(rec)
		vals := make([]float64, len(cols))
		for i, name := range cols {
			vals[i] = rec[name]
		}
		return AlignedFeatureVector{Columns: cols, Values: vals, Degraded: true}
	}

	cols := make([]string, len(expectedColumns))
	copy(cols, expectedColumns)
	vals := make([]float64, len(cols))
	for i, name := range cols {
		vals[i] = rec[name]
	}
	return AlignedFeatureVector{Columns: cols, Values: vals}
}

// naturalColumns orders a record's keys deterministically: schema
// features first in schema order, then any extras sorted.
func naturalColumns(rec EncodedFeatureRecord) []string {
	cols := make([]string, 0, len(rec))
	inSchema := make(map[string]bool, len(Schema))
	for _, src := range Schema {
		inSchema[src.Name] = true
		if _, ok := rec[src.Name]; ok {
			cols = append(cols, src.Name)
		}
	}
	extras := make([]string, 0)
	for name := range rec {
		if !inSchema[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	return append(cols, extras...)
}
