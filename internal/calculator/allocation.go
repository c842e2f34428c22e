// Package calculator divides shared bills among participants in integer
// minor units (cents). Every function in this package is pure: results are
// built fresh on each call and depend only on the arguments, so the package
// is safe to use from any number of goroutines.
package calculator

// Share is the amount allocated to one party.
type Share struct {
	ID    string
	Cents int64
}

// Allocation is the result of splitting an amount. Entries appear in the
// same order as the parties passed in, which keeps every result
// deterministic without relying on map iteration.
type Allocation []Share

// Get returns the cents allocated to id.
func (a Allocation) Get(id string) (int64, bool) {
	for _, s := range a {
		if s.ID == id {
			return s.Cents, true
		}
	}
	return 0, false
}

// Sum returns the total of all allocated cents.
func (a Allocation) Sum() int64 {
	var total int64
	for _, s := range a {
		total += s.Cents
	}
	return total
}
