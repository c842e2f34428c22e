package calculator

import (
	"cmp"
	"math/big"
	"slices"
)

// WeightedShare is a party taking part in a proportional allocation.
type WeightedShare struct {
	ID     string
	Weight int64
}

// AllocateProportionally divides totalCents among shares in proportion to
// their weights using the largest-remainder method:
//
//   - each party first gets floor(total * weight / totalWeight)
//   - the cents still missing go, one each, to the parties with the largest
//     fractional remainder; equal remainders keep input order
//
// The parts always add up to totalCents. When every weight is zero each
// party receives zero, and the caller decides how to spread the amount.
func AllocateProportionally(totalCents int64, shares []WeightedShare) Allocation {
	if len(shares) == 0 {
		return Allocation{}
	}

	var totalWeight int64
	for _, s := range shares {
		totalWeight += s.Weight
	}

	result := make(Allocation, len(shares))
	if totalWeight == 0 {
		for i, s := range shares {
			result[i] = Share{ID: s.ID}
		}
		return result
	}

	// Every exact share has the same denominator, so the integer remainder of
	// total*weight orders the fractional parts exactly.
	denominator := big.NewInt(totalWeight)
	total := big.NewInt(totalCents)
	remainders := make([]int64, len(shares))

	var allocated int64
	for i, s := range shares {
		product := new(big.Int).Mul(total, big.NewInt(s.Weight))
		quotient, remainder := new(big.Int).DivMod(product, denominator, new(big.Int))
		result[i] = Share{ID: s.ID, Cents: quotient.Int64()}
		remainders[i] = remainder.Int64()
		allocated += result[i].Cents
	}

	order := make([]int, len(shares))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(remainders[b], remainders[a])
	})

	remaining := totalCents - allocated
	for _, i := range order {
		if remaining <= 0 {
			break
		}
		result[i].Cents++
		remaining--
	}

	return result
}
