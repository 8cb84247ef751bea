package domain

import (
	"time"
)

// Entry is one named time-evolving quantity: a display name plus a signed
// per-second rate. Entries have no identity of their own; they live as
// parallel-array positions inside the StateRecord.
type Entry struct {
	Name string
	Rate float64
}

// StateRecord is the single shared mutable aggregate. BaselineValues holds
// the value each entry had at BaselineAt; the live value is never stored,
// only derived. BaselineAt doubles as the record's version token: every
// accepted mutation re-bases the whole record to the commit instant, so a
// compare-and-swap on BaselineAt alone is sufficient to detect lost updates.
type StateRecord struct {
	Names          []string
	BaselineValues []float64
	Rates          []float64
	BaselineAt     time.Time
}

// Project computes the live value of every entry at the given instant:
// baseline + rate * elapsed seconds. Elapsed is signed, so a query time
// before BaselineAt (clock skew) still yields a consistent result.
func Project(baselineValues, rates []float64, baselineAt, at time.Time) []float64 {
	elapsed := at.Sub(baselineAt).Seconds()

	values := make([]float64, len(baselineValues))
	for i := range baselineValues {
		values[i] = baselineValues[i] + rates[i]*elapsed
	}

	return values
}

// ProjectAt projects the record's entries to the given instant.
func (r *StateRecord) ProjectAt(at time.Time) []float64 {
	return Project(r.BaselineValues, r.Rates, r.BaselineAt, at)
}

// Len returns the number of entries.
func (r *StateRecord) Len() int {
	return len(r.Names)
}

// IndexOf returns the position of the named entry, or -1.
func (r *StateRecord) IndexOf(name string) int {
	for i, n := range r.Names {
		if n == name {
			return i
		}
	}

	return -1
}

// Clone returns a deep copy. Mutation transforms work on copies so a failed
// conditional write never leaves a half-applied record behind.
func (r *StateRecord) Clone() *StateRecord {
	clone := &StateRecord{
		Names:          make([]string, len(r.Names)),
		BaselineValues: make([]float64, len(r.BaselineValues)),
		Rates:          make([]float64, len(r.Rates)),
		BaselineAt:     r.BaselineAt,
	}

	copy(clone.Names, r.Names)
	copy(clone.BaselineValues, r.BaselineValues)
	copy(clone.Rates, r.Rates)

	return clone
}

// CheckShape verifies the parallel-array invariant and name uniqueness.
func (r *StateRecord) CheckShape() error {
	if len(r.Names) != len(r.BaselineValues) || len(r.Names) != len(r.Rates) {
		return ErrShapeMismatch
	}

	seen := make(map[string]bool, len(r.Names))
	for _, n := range r.Names {
		if seen[n] {
			return ErrDuplicateName
		}
		seen[n] = true
	}

	return nil
}
