package calculator

// LineItem is a single entry on the bill.
type LineItem struct {
	ID          string
	Name        string
	AmountCents int64
	// AssignedTo lists the participants sharing this item, in assignment
	// order. An empty list marks the item as unassigned.
	AssignedTo []string
}

// BillInput describes a bill to be divided.
type BillInput struct {
	Items     []LineItem
	TaxCents  int64
	TipCents  int64
	FeesCents int64
	// Participants is the ordered list of unique people splitting the bill.
	// Assignees that do not appear here are never credited a share.
	Participants []string
}

// ItemShare is one person's portion of a line item.
type ItemShare struct {
	ItemID     string
	ItemName   string
	ShareCents int64
}

// PersonShare is what one participant owes.
// TotalCents always equals SubtotalCents + TaxCents + TipCents + FeesCents.
type PersonShare struct {
	PersonID      string
	Items         []ItemShare
	SubtotalCents int64
	TaxCents      int64
	TipCents      int64
	FeesCents     int64
	TotalCents    int64
}

// BillResult is the complete per-person statement for a bill.
type BillResult struct {
	// Shares holds one entry per participant, in participant order.
	Shares []PersonShare
	// UnassignedItems are the items nobody was assigned to. Their amounts
	// are not part of any share.
	UnassignedItems []LineItem
	// TotalCents is the sum of every share's TotalCents.
	TotalCents int64
}

// Share returns the share for personID.
func (r BillResult) Share(personID string) (PersonShare, bool) {
	for _, s := range r.Shares {
		if s.PersonID == personID {
			return s, true
		}
	}
	return PersonShare{}, false
}

// CalculateBill computes how much each participant owes.
//
// Algorithm:
//   - each assigned item is split evenly among its assignees
//   - tax, tip and fees are each allocated in proportion to the participants'
//     item subtotals
//   - when nobody has a subtotal (all assigned items are free), tax, tip and
//     fees are split evenly among all participants instead
//
// CalculateBill never fails: empty items, empty participants and zero amounts
// produce zero or empty results.
func CalculateBill(input BillInput) BillResult {
	shares := make([]PersonShare, 0, len(input.Participants))
	index := make(map[string]int, len(input.Participants))
	for _, personID := range input.Participants {
		if _, seen := index[personID]; seen {
			continue
		}
		index[personID] = len(shares)
		shares = append(shares, PersonShare{PersonID: personID, Items: []ItemShare{}})
	}

	unassigned := []LineItem{}

	// Split each item among the people assigned to it
	for _, item := range input.Items {
		if len(item.AssignedTo) == 0 {
			unassigned = append(unassigned, copyItem(item))
			continue
		}

		for _, split := range SplitEvenly(item.AmountCents, item.AssignedTo) {
			i, ok := index[split.ID]
			if !ok {
				continue
			}
			shares[i].Items = append(shares[i].Items, ItemShare{
				ItemID:     item.ID,
				ItemName:   item.Name,
				ShareCents: split.Cents,
			})
			shares[i].SubtotalCents += split.Cents
		}
	}

	var totalSubtotal int64
	weights := make([]WeightedShare, len(shares))
	for i, s := range shares {
		totalSubtotal += s.SubtotalCents
		weights[i] = WeightedShare{ID: s.PersonID, Weight: s.SubtotalCents}
	}

	useEvenSplit := totalSubtotal == 0 && len(input.Participants) > 0

	allocate := func(amountCents int64, field func(*PersonShare) *int64) {
		if amountCents <= 0 {
			return
		}
		var allocation Allocation
		if useEvenSplit {
			allocation = SplitEvenly(amountCents, input.Participants)
		} else {
			allocation = AllocateProportionally(amountCents, weights)
		}
		for _, a := range allocation {
			if i, ok := index[a.ID]; ok {
				*field(&shares[i]) = a.Cents
			}
		}
	}
	allocate(input.TaxCents, func(s *PersonShare) *int64 { return &s.TaxCents })
	allocate(input.TipCents, func(s *PersonShare) *int64 { return &s.TipCents })
	allocate(input.FeesCents, func(s *PersonShare) *int64 { return &s.FeesCents })

	var total int64
	for i := range shares {
		s := &shares[i]
		s.TotalCents = s.SubtotalCents + s.TaxCents + s.TipCents + s.FeesCents
		total += s.TotalCents
	}

	return BillResult{
		Shares:          shares,
		UnassignedItems: unassigned,
		TotalCents:      total,
	}
}

func copyItem(item LineItem) LineItem {
	item.AssignedTo = append([]string(nil), item.AssignedTo...)
	return item
}
