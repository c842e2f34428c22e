package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplit/internal/calculator"
)

// Summary renders result as plain text for sharing: one block per person
// with their dishes, tax, tip and fees, then the bill total.
func (b *Bill) Summary(result calculator.BillResult) string {
	splitCount := make(map[string]int)
	for _, item := range b.Input().Items {
		splitCount[item.ID] = len(item.AssignedTo)
	}

	var sb strings.Builder
	sb.WriteString("Bill Split Summary\n")
	sb.WriteString("==================\n\n")

	for _, share := range result.Shares {
		fmt.Fprintf(&sb, "%s: %s\n", share.PersonID, formatCents(share.TotalCents))
		for _, item := range share.Items {
			note := ""
			if n := splitCount[item.ItemID]; n > 1 {
				note = fmt.Sprintf(" (split %d ways)", n)
			}
			fmt.Fprintf(&sb, "  - %s%s: %s\n", item.ItemName, note, formatCents(item.ShareCents))
		}
		if share.TaxCents > 0 {
			fmt.Fprintf(&sb, "  Tax: %s\n", formatCents(share.TaxCents))
		}
		if share.TipCents > 0 {
			fmt.Fprintf(&sb, "  Tip: %s\n", formatCents(share.TipCents))
		}
		if share.FeesCents > 0 {
			fmt.Fprintf(&sb, "  Fees: %s\n", formatCents(share.FeesCents))
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "Total: %s", formatCents(result.TotalCents))
	return sb.String()
}

func formatCents(cents int64) string {
	return "$" + decimal.New(cents, -2).StringFixed(2)
}
