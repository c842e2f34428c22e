package service

import (
	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/models"
	billsplitv1 "github.com/mmynk/billsplit/pkg/api/billsplitv1"
)

// Conversions between wire messages, persisted models and engine types.

func calculatorInput(req *billsplitv1.CalculateBillRequest) calculator.BillInput {
	items := make([]calculator.LineItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = calculator.LineItem{
			ID:          item.ID,
			Name:        item.Name,
			AmountCents: item.AmountCents,
			AssignedTo:  item.AssignedTo,
		}
	}
	return calculator.BillInput{
		Items:        items,
		TaxCents:     req.TaxCents,
		TipCents:     req.TipCents,
		FeesCents:    req.FeesCents,
		Participants: req.Participants,
	}
}

func resultToProto(result calculator.BillResult) billsplitv1.CalculateBillResponse {
	shares := make([]billsplitv1.PersonShare, len(result.Shares))
	for i, s := range result.Shares {
		items := make([]billsplitv1.ItemShare, len(s.Items))
		for j, it := range s.Items {
			items[j] = billsplitv1.ItemShare{
				ItemID:     it.ItemID,
				ItemName:   it.ItemName,
				ShareCents: it.ShareCents,
			}
		}
		shares[i] = billsplitv1.PersonShare{
			PersonID:      s.PersonID,
			Items:         items,
			SubtotalCents: s.SubtotalCents,
			TaxCents:      s.TaxCents,
			TipCents:      s.TipCents,
			FeesCents:     s.FeesCents,
			TotalCents:    s.TotalCents,
		}
	}

	unassigned := make([]billsplitv1.LineItem, len(result.UnassignedItems))
	for i, item := range result.UnassignedItems {
		unassigned[i] = billsplitv1.LineItem{
			ID:          item.ID,
			Name:        item.Name,
			AmountCents: item.AmountCents,
			AssignedTo:  []string{},
		}
	}

	return billsplitv1.CalculateBillResponse{
		Shares:          shares,
		UnassignedItems: unassigned,
		TotalCents:      result.TotalCents,
	}
}

// billFromProto builds a model from a wire bill. ID, owner and timestamps
// are left for the caller to set. A missing quantity counts as one unit.
func billFromProto(msg billsplitv1.Bill) *models.Bill {
	dishes := make([]models.Dish, len(msg.Dishes))
	for i, d := range msg.Dishes {
		mode := models.PriceMode(d.PriceMode)
		if mode == "" {
			mode = models.PriceModeTotal
		}
		quantity := d.Quantity
		if quantity == 0 {
			quantity = 1
		}
		dishes[i] = models.Dish{
			ID:         d.ID,
			Name:       d.Name,
			Quantity:   quantity,
			PriceCents: d.PriceCents,
			PriceMode:  mode,
			Diners:     append([]int{}, d.Diners...),
		}
	}

	var receipt *int64
	if msg.ReceiptTotalCents != nil {
		v := *msg.ReceiptTotalCents
		receipt = &v
	}

	return &models.Bill{
		Title:             msg.Title,
		Diners:            append([]string{}, msg.Diners...),
		Dishes:            dishes,
		TaxCents:          msg.TaxCents,
		TipCents:          msg.TipCents,
		FeesCents:         msg.FeesCents,
		ReceiptTotalCents: receipt,
		PayerID:           msg.PayerID,
	}
}

func billToProto(bill *models.Bill) billsplitv1.Bill {
	dishes := make([]billsplitv1.Dish, len(bill.Dishes))
	for i, d := range bill.Dishes {
		dishes[i] = billsplitv1.Dish{
			ID:         d.ID,
			Name:       d.Name,
			Quantity:   d.Quantity,
			PriceCents: d.PriceCents,
			PriceMode:  string(d.PriceMode),
			Diners:     append([]int{}, d.Diners...),
		}
	}

	return billsplitv1.Bill{
		ID:                bill.ID,
		Title:             bill.Title,
		Diners:            append([]string{}, bill.Diners...),
		Dishes:            dishes,
		TaxCents:          bill.TaxCents,
		TipCents:          bill.TipCents,
		FeesCents:         bill.FeesCents,
		ReceiptTotalCents: bill.ReceiptTotalCents,
		PayerID:           bill.PayerID,
		CreatedAt:         bill.CreatedAt,
		UpdatedAt:         bill.UpdatedAt,
	}
}

func reconciliationToProto(r models.Reconciliation) billsplitv1.Reconciliation {
	return billsplitv1.Reconciliation{
		ComputedCents:   r.ComputedCents,
		ReceiptCents:    r.ReceiptCents,
		DifferenceCents: r.DifferenceCents,
		Mismatch:        r.Mismatch,
	}
}

func userToProto(user *models.User) billsplitv1.User {
	return billsplitv1.User{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}
}
