package calculator

import (
	"cmp"
	"slices"
)

// BillForBalance is a bill with the minimal information needed for balance
// calculations.
type BillForBalance struct {
	PayerID string
	Input   BillInput
}

// MemberBalance is the balance of one person across a set of bills.
type MemberBalance struct {
	MemberName string
	NetCents   int64 // Positive = owed money, negative = owes money
	PaidCents  int64
	OwedCents  int64
}

// DebtEdge is a payment that settles part of the balances.
type DebtEdge struct {
	From  string // Person who owes
	To    string // Person who is owed
	Cents int64
}

// CalculateBalances computes who owes whom across several bills.
//
// Algorithm:
//   - for each bill with a payer: the payer paid the computed bill total,
//     each participant owes their share total
//   - net = paid - owed
//   - debts are simplified greedily: the largest debtor pays the largest
//     creditor until one of them is settled
//
// Bills without a payer are skipped. Members are returned sorted by name and
// debts in the order they are produced, so the output is deterministic.
func CalculateBalances(bills []BillForBalance) ([]MemberBalance, []DebtEdge) {
	balances := make(map[string]*MemberBalance)
	member := func(name string) *MemberBalance {
		b, ok := balances[name]
		if !ok {
			b = &MemberBalance{MemberName: name}
			balances[name] = b
		}
		return b
	}

	for _, bill := range bills {
		if bill.PayerID == "" {
			continue
		}

		result := CalculateBill(bill.Input)
		member(bill.PayerID).PaidCents += result.TotalCents
		for _, share := range result.Shares {
			member(share.PersonID).OwedCents += share.TotalCents
		}
	}

	members := make([]MemberBalance, 0, len(balances))
	for _, b := range balances {
		b.NetCents = b.PaidCents - b.OwedCents
		members = append(members, *b)
	}
	slices.SortFunc(members, func(a, b MemberBalance) int {
		return cmp.Compare(a.MemberName, b.MemberName)
	})

	return members, simplifyDebts(members)
}

type party struct {
	name  string
	cents int64
}

func simplifyDebts(members []MemberBalance) []DebtEdge {
	var creditors, debtors []party
	for _, m := range members {
		switch {
		case m.NetCents > 0:
			creditors = append(creditors, party{m.MemberName, m.NetCents})
		case m.NetCents < 0:
			debtors = append(debtors, party{m.MemberName, -m.NetCents})
		}
	}

	// Largest amounts first; names break ties.
	byAmount := func(a, b party) int {
		if c := cmp.Compare(b.cents, a.cents); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	}
	slices.SortFunc(creditors, byAmount)
	slices.SortFunc(debtors, byAmount)

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := min(debtors[i].cents, creditors[j].cents)
		edges = append(edges, DebtEdge{
			From:  debtors[i].name,
			To:    creditors[j].name,
			Cents: amount,
		})

		debtors[i].cents -= amount
		creditors[j].cents -= amount
		if debtors[i].cents == 0 {
			i++
		}
		if creditors[j].cents == 0 {
			j++
		}
	}
	return edges
}
