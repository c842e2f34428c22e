package calculator

// SplitEvenly divides amountCents among personIDs. Leftover cents are handed
// out one at a time to the first people in the list, so earlier assignees pay
// the extra penny.
//
// An empty personIDs yields an empty allocation.
func SplitEvenly(amountCents int64, personIDs []string) Allocation {
	if len(personIDs) == 0 {
		return Allocation{}
	}

	base, remainder := floorDivMod(amountCents, int64(len(personIDs)))

	result := make(Allocation, len(personIDs))
	for i, id := range personIDs {
		share := base
		if int64(i) < remainder {
			share++
		}
		result[i] = Share{ID: id, Cents: share}
	}
	return result
}

// floorDivMod returns the floored quotient and the matching non-negative
// remainder of a / n for n > 0.
func floorDivMod(a, n int64) (q, r int64) {
	q, r = a/n, a%n
	if r < 0 {
		q--
		r += n
	}
	return q, r
}
