package billsplitv1

// All money fields are integer cents.

// LineItem is a single entry on a bill.
type LineItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	AmountCents int64    `json:"amount_cents" validate:"gte=0"`
	AssignedTo  []string `json:"assigned_to" validate:"unique,dive,required"`
}

// ItemShare is one person's portion of a line item.
type ItemShare struct {
	ItemID     string `json:"item_id"`
	ItemName   string `json:"item_name"`
	ShareCents int64  `json:"share_cents"`
}

// PersonShare is what one participant owes.
type PersonShare struct {
	PersonID      string      `json:"person_id"`
	Items         []ItemShare `json:"items"`
	SubtotalCents int64       `json:"subtotal_cents"`
	TaxCents      int64       `json:"tax_cents"`
	TipCents      int64       `json:"tip_cents"`
	FeesCents     int64       `json:"fees_cents"`
	TotalCents    int64       `json:"total_cents"`
}

// CalculateBillRequest is a fully formed bill to divide.
type CalculateBillRequest struct {
	Items        []LineItem `json:"items" validate:"dive"`
	TaxCents     int64      `json:"tax_cents" validate:"gte=0"`
	TipCents     int64      `json:"tip_cents" validate:"gte=0"`
	FeesCents    int64      `json:"fees_cents" validate:"gte=0"`
	Participants []string   `json:"participants" validate:"unique,dive,required"`
}

// CalculateBillResponse is the per-person statement for a bill.
type CalculateBillResponse struct {
	Shares          []PersonShare `json:"shares"`
	UnassignedItems []LineItem    `json:"unassigned_items"`
	TotalCents      int64         `json:"total_cents"`
}

// Dish is an editable bill row. Diners holds indices into Bill.Diners.
type Dish struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Quantity   int64  `json:"quantity" validate:"gte=0"`
	PriceCents int64  `json:"price_cents" validate:"gte=0"`
	// PriceMode is "total" (PriceCents covers every unit) or "each".
	PriceMode string `json:"price_mode" validate:"omitempty,oneof=total each"`
	Diners    []int  `json:"diners" validate:"unique,dive,gte=0"`
}

// Bill is the persisted editable state of a bill.
type Bill struct {
	ID                string   `json:"id"`
	Title             string   `json:"title" validate:"max=255"`
	Diners            []string `json:"diners"`
	Dishes            []Dish   `json:"dishes" validate:"dive"`
	TaxCents          int64    `json:"tax_cents" validate:"gte=0"`
	TipCents          int64    `json:"tip_cents" validate:"gte=0"`
	FeesCents         int64    `json:"fees_cents" validate:"gte=0"`
	ReceiptTotalCents *int64   `json:"receipt_total_cents,omitempty" validate:"omitempty,gte=0"`
	PayerID           string   `json:"payer_id,omitempty"`
	CreatedAt         int64    `json:"created_at,omitempty"`
	UpdatedAt         int64    `json:"updated_at,omitempty"`
}

// Reconciliation compares the computed bill total with the receipt total
// entered by the user.
type Reconciliation struct {
	ComputedCents   int64  `json:"computed_cents"`
	ReceiptCents    *int64 `json:"receipt_cents,omitempty"`
	DifferenceCents int64  `json:"difference_cents"`
	Mismatch        bool   `json:"mismatch"`
}

type CreateBillRequest struct {
	Bill Bill `json:"bill"`
}

type CreateBillResponse struct {
	BillID         string                `json:"bill_id"`
	Result         CalculateBillResponse `json:"result"`
	Reconciliation Reconciliation        `json:"reconciliation"`
}

type GetBillRequest struct {
	BillID string `json:"bill_id" validate:"required"`
}

type GetBillResponse struct {
	Bill           Bill                  `json:"bill"`
	Result         CalculateBillResponse `json:"result"`
	Reconciliation Reconciliation        `json:"reconciliation"`
	// Summary is a plain-text rendering of the split for sharing.
	Summary string `json:"summary"`
}

type UpdateBillRequest struct {
	Bill Bill `json:"bill"`
}

type UpdateBillResponse struct {
	Result         CalculateBillResponse `json:"result"`
	Reconciliation Reconciliation        `json:"reconciliation"`
}

type DeleteBillRequest struct {
	BillID string `json:"bill_id" validate:"required"`
}

type DeleteBillResponse struct{}

type ListBillsRequest struct{}

// BillSummary is a short listing entry for a saved bill.
type BillSummary struct {
	BillID           string `json:"bill_id"`
	Title            string `json:"title"`
	TotalCents       int64  `json:"total_cents"`
	PayerID          string `json:"payer_id,omitempty"`
	ParticipantCount int32  `json:"participant_count"`
	CreatedAt        int64  `json:"created_at"`
}

type ListBillsResponse struct {
	Bills []BillSummary `json:"bills"`
}

type GetBalancesRequest struct{}

// MemberBalance is one person's position across the caller's bills.
type MemberBalance struct {
	MemberName string `json:"member_name"`
	NetCents   int64  `json:"net_cents"`
	PaidCents  int64  `json:"paid_cents"`
	OwedCents  int64  `json:"owed_cents"`
}

// Debt is a payment that settles part of the balances.
type Debt struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Cents int64  `json:"cents"`
}

type GetBalancesResponse struct {
	Balances []MemberBalance `json:"balances"`
	Debts    []Debt          `json:"debts"`
}
