package calculator

import (
	"testing"
)

func TestCalculateBalances(t *testing.T) {
	tests := []struct {
		name         string
		bills        []BillForBalance
		wantBalances map[string]int64
		wantDebts    []DebtEdge
	}{
		{
			name: "single bill split evenly",
			bills: []BillForBalance{
				{
					PayerID: "Alice",
					Input: BillInput{
						Items: []LineItem{
							{ID: "1", Name: "Pizza", AmountCents: 3000, AssignedTo: []string{"Alice", "Bob", "Charlie"}},
						},
						Participants: []string{"Alice", "Bob", "Charlie"},
					},
				},
			},
			wantBalances: map[string]int64{"Alice": 2000, "Bob": -1000, "Charlie": -1000},
			wantDebts: []DebtEdge{
				{From: "Bob", To: "Alice", Cents: 1000},
				{From: "Charlie", To: "Alice", Cents: 1000},
			},
		},
		{
			name: "two bills cancel out",
			bills: []BillForBalance{
				{
					PayerID: "Alice",
					Input: BillInput{
						Items:        []LineItem{{ID: "1", AmountCents: 2000, AssignedTo: []string{"Alice", "Bob"}}},
						Participants: []string{"Alice", "Bob"},
					},
				},
				{
					PayerID: "Bob",
					Input: BillInput{
						Items:        []LineItem{{ID: "2", AmountCents: 2000, AssignedTo: []string{"Alice", "Bob"}}},
						Participants: []string{"Alice", "Bob"},
					},
				},
			},
			wantBalances: map[string]int64{"Alice": 0, "Bob": 0},
			wantDebts:    nil,
		},
		{
			name: "bill without payer is skipped",
			bills: []BillForBalance{
				{
					Input: BillInput{
						Items:        []LineItem{{ID: "1", AmountCents: 5000, AssignedTo: []string{"Alice"}}},
						Participants: []string{"Alice"},
					},
				},
			},
			wantBalances: map[string]int64{},
			wantDebts:    nil,
		},
		{
			name: "payer pays for tax and tip too",
			bills: []BillForBalance{
				{
					PayerID: "Bob",
					Input: BillInput{
						Items: []LineItem{
							{ID: "1", AmountCents: 6000, AssignedTo: []string{"Alice"}},
							{ID: "2", AmountCents: 4000, AssignedTo: []string{"Bob"}},
						},
						TaxCents:     1000,
						TipCents:     500,
						Participants: []string{"Alice", "Bob"},
					},
				},
			},
			// Alice: 6000 + 600 tax + 300 tip
			wantBalances: map[string]int64{"Alice": -6900, "Bob": 6900},
			wantDebts:    []DebtEdge{{From: "Alice", To: "Bob", Cents: 6900}},
		},
		{
			name: "unassigned items are not credited to the payer",
			bills: []BillForBalance{
				{
					PayerID: "Alice",
					Input: BillInput{
						Items: []LineItem{
							{ID: "1", AmountCents: 1000, AssignedTo: []string{"Bob"}},
							{ID: "2", AmountCents: 9999},
						},
						Participants: []string{"Alice", "Bob"},
					},
				},
			},
			wantBalances: map[string]int64{"Alice": 1000, "Bob": -1000},
			wantDebts:    []DebtEdge{{From: "Bob", To: "Alice", Cents: 1000}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances, debts := CalculateBalances(tt.bills)

			if len(balances) != len(tt.wantBalances) {
				t.Fatalf("got %d balances, want %d", len(balances), len(tt.wantBalances))
			}
			for _, b := range balances {
				want, ok := tt.wantBalances[b.MemberName]
				if !ok {
					t.Errorf("unexpected member %q", b.MemberName)
					continue
				}
				if b.NetCents != want {
					t.Errorf("%s net = %d, want %d", b.MemberName, b.NetCents, want)
				}
				if b.NetCents != b.PaidCents-b.OwedCents {
					t.Errorf("%s net %d != paid %d - owed %d", b.MemberName, b.NetCents, b.PaidCents, b.OwedCents)
				}
			}

			if len(debts) != len(tt.wantDebts) {
				t.Fatalf("got debts %+v, want %+v", debts, tt.wantDebts)
			}
			for i := range debts {
				if debts[i] != tt.wantDebts[i] {
					t.Errorf("debt[%d] = %+v, want %+v", i, debts[i], tt.wantDebts[i])
				}
			}
		})
	}
}

func TestCalculateBalances_NetsSumToZero(t *testing.T) {
	bills := []BillForBalance{
		{
			PayerID: "Alice",
			Input: BillInput{
				Items: []LineItem{
					{ID: "1", AmountCents: 1001, AssignedTo: []string{"Alice", "Bob", "Charlie"}},
					{ID: "2", AmountCents: 777, AssignedTo: []string{"Bob"}},
				},
				TaxCents:     133,
				TipCents:     250,
				FeesCents:    7,
				Participants: []string{"Alice", "Bob", "Charlie"},
			},
		},
		{
			PayerID: "Charlie",
			Input: BillInput{
				Items: []LineItem{
					{ID: "3", AmountCents: 4321, AssignedTo: []string{"Dana", "Alice"}},
				},
				TaxCents:     99,
				Participants: []string{"Alice", "Dana", "Charlie"},
			},
		},
	}

	balances, debts := CalculateBalances(bills)

	var sum int64
	for _, b := range balances {
		sum += b.NetCents
	}
	if sum != 0 {
		t.Errorf("net balances sum to %d, want 0", sum)
	}

	// Applying the debts must settle everyone.
	net := make(map[string]int64)
	for _, b := range balances {
		net[b.MemberName] = b.NetCents
	}
	for _, d := range debts {
		if d.Cents <= 0 {
			t.Errorf("debt %+v has non-positive amount", d)
		}
		net[d.From] += d.Cents
		net[d.To] -= d.Cents
	}
	for name, cents := range net {
		if cents != 0 {
			t.Errorf("%s left with %d after settling", name, cents)
		}
	}

	for i := 1; i < len(balances); i++ {
		if balances[i-1].MemberName > balances[i].MemberName {
			t.Errorf("balances not sorted by name: %q before %q", balances[i-1].MemberName, balances[i].MemberName)
		}
	}
}
