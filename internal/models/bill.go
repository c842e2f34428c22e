package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/billsplit/internal/calculator"
)

// PriceMode says how a dish's price is entered.
type PriceMode string

const (
	// PriceModeTotal means PriceCents already covers every unit.
	PriceModeTotal PriceMode = "total"
	// PriceModeEach means PriceCents is the unit price.
	PriceModeEach PriceMode = "each"
)

// Bill is the editable state of a bill: who is at the table, what was
// ordered, and the extras on the receipt. It is what gets persisted; the
// per-person split is always recomputed from it.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// OwnerID is the user who saved the bill.
	OwnerID string

	// Title is the human-readable name for the bill.
	// Auto-generated from the diners when left empty.
	Title string

	// Diners is the ordered list of diner names. Blank names are kept so
	// that dish assignments, which refer to diners by index, stay stable
	// while the user is still typing.
	Diners []string

	// Dishes are the ordered rows of the bill.
	Dishes []Dish

	TaxCents  int64
	TipCents  int64
	FeesCents int64

	// ReceiptTotalCents is the total printed on the receipt, if the user
	// entered one. It is only used to flag mismatches.
	ReceiptTotalCents *int64

	// PayerID is the diner who paid the bill. Optional; bills with a payer
	// take part in balance calculations.
	PayerID string

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// Dish is one row of the bill.
type Dish struct {
	ID         string
	Name       string
	Quantity   int64
	PriceCents int64
	PriceMode  PriceMode

	// Diners holds indices into Bill.Diners, in the order they were ticked.
	Diners []int
}

// TotalCents returns the amount the dish adds to the bill.
func (d Dish) TotalCents() int64 {
	if d.PriceMode == PriceModeEach {
		return d.PriceCents * d.Quantity
	}
	return d.PriceCents
}

// TogglePriceMode switches between total and per-unit pricing, converting
// the entered price so the dish total stays the same (up to rounding when
// going to per-unit).
func (d *Dish) TogglePriceMode() {
	next := PriceModeEach
	if d.PriceMode == PriceModeEach {
		next = PriceModeTotal
	}

	if d.PriceCents > 0 && d.Quantity > 1 {
		if next == PriceModeEach {
			d.PriceCents = roundDiv(d.PriceCents, d.Quantity)
		} else {
			d.PriceCents *= d.Quantity
		}
	}
	d.PriceMode = next
}

// roundDiv divides positive a by positive b, rounding half up.
func roundDiv(a, b int64) int64 {
	return (2*a + b) / (2 * b)
}

// Input builds the allocation input for the bill. Diners and dishes with
// blank names are left out, and so are assignments to blank or missing
// diners.
func (b *Bill) Input() calculator.BillInput {
	input := calculator.BillInput{
		TaxCents:     b.TaxCents,
		TipCents:     b.TipCents,
		FeesCents:    b.FeesCents,
		Participants: b.NamedDiners(),
		Items:        []calculator.LineItem{},
	}

	for _, dish := range b.Dishes {
		if isBlank(dish.Name) {
			continue
		}
		assigned := make([]string, 0, len(dish.Diners))
		for _, idx := range dish.Diners {
			if name, ok := b.dinerName(idx); ok {
				assigned = append(assigned, name)
			}
		}
		input.Items = append(input.Items, calculator.LineItem{
			ID:          dish.ID,
			Name:        dish.Name,
			AmountCents: dish.TotalCents(),
			AssignedTo:  assigned,
		})
	}
	return input
}

// NamedDiners returns the diners with non-blank names, in order.
func (b *Bill) NamedDiners() []string {
	named := make([]string, 0, len(b.Diners))
	for _, name := range b.Diners {
		if !isBlank(name) {
			named = append(named, name)
		}
	}
	return named
}

func (b *Bill) dinerName(idx int) (string, bool) {
	if idx < 0 || idx >= len(b.Diners) || isBlank(b.Diners[idx]) {
		return "", false
	}
	return b.Diners[idx], true
}

// RemoveDiner deletes the diner at index and shifts every dish assignment so
// it keeps pointing at the same person.
func (b *Bill) RemoveDiner(index int) error {
	if index < 0 || index >= len(b.Diners) {
		return fmt.Errorf("diner index %d out of range", index)
	}

	b.Diners = append(b.Diners[:index:index], b.Diners[index+1:]...)
	for i := range b.Dishes {
		dish := &b.Dishes[i]
		kept := dish.Diners[:0]
		for _, d := range dish.Diners {
			switch {
			case d == index:
				continue
			case d > index:
				kept = append(kept, d-1)
			default:
				kept = append(kept, d)
			}
		}
		dish.Diners = kept
	}
	return nil
}

// ToggleDiner ticks or unticks a diner on a dish.
func (b *Bill) ToggleDiner(dishIndex, dinerIndex int) error {
	if dishIndex < 0 || dishIndex >= len(b.Dishes) {
		return fmt.Errorf("dish index %d out of range", dishIndex)
	}
	if dinerIndex < 0 || dinerIndex >= len(b.Diners) {
		return fmt.Errorf("diner index %d out of range", dinerIndex)
	}
	dish := &b.Dishes[dishIndex]
	for i, d := range dish.Diners {
		if d == dinerIndex {
			dish.Diners = append(dish.Diners[:i:i], dish.Diners[i+1:]...)
			return nil
		}
	}
	dish.Diners = append(dish.Diners, dinerIndex)
	return nil
}

// ToggleAllDiners assigns a dish to every named diner, or clears it if all of
// them are already assigned.
func (b *Bill) ToggleAllDiners(dishIndex int) error {
	if dishIndex < 0 || dishIndex >= len(b.Dishes) {
		return fmt.Errorf("dish index %d out of range", dishIndex)
	}
	dish := &b.Dishes[dishIndex]

	var named []int
	for i, name := range b.Diners {
		if !isBlank(name) {
			named = append(named, i)
		}
	}

	assigned := make(map[int]bool, len(dish.Diners))
	for _, d := range dish.Diners {
		assigned[d] = true
	}
	allSelected := true
	for _, i := range named {
		if !assigned[i] {
			allSelected = false
			break
		}
	}

	if allSelected {
		dish.Diners = []int{}
	} else {
		dish.Diners = named
	}
	return nil
}

// Reconciliation compares the computed bill total with the receipt total.
type Reconciliation struct {
	// ComputedCents is every dish plus tax, tip and fees, assigned or not.
	ComputedCents int64
	ReceiptCents  *int64
	// DifferenceCents is receipt minus computed; zero without a receipt.
	DifferenceCents int64
	Mismatch        bool
}

// Reconcile checks the computed total against the receipt total, if any.
func (b *Bill) Reconcile() Reconciliation {
	var subtotal int64
	for _, dish := range b.Dishes {
		subtotal += dish.TotalCents()
	}

	r := Reconciliation{
		ComputedCents: subtotal + b.TaxCents + b.TipCents + b.FeesCents,
		ReceiptCents:  b.ReceiptTotalCents,
	}
	if b.ReceiptTotalCents != nil {
		r.DifferenceCents = *b.ReceiptTotalCents - r.ComputedCents
		r.Mismatch = r.DifferenceCents != 0
	}
	return r
}

// DefaultTitle creates a title from the named diners.
func (b *Bill) DefaultTitle(now time.Time) string {
	diners := b.NamedDiners()
	if len(diners) == 0 {
		return fmt.Sprintf("Bill - %s", now.Format("Jan 2, 2006"))
	}
	if len(diners) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(diners, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(diners[:2], ", "),
		len(diners)-2,
	)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
