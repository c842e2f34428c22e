package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/middleware"
	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
	billsplitv1 "github.com/mmynk/billsplit/pkg/api/billsplitv1"
	"github.com/mmynk/billsplit/pkg/api/billsplitv1/billsplitv1connect"
)

// SplitService implements the Connect SplitService.
//
// CalculateBill is public. Every other method works on saved bills and needs
// an authenticated user; a bill is only visible to the user who saved it.
type SplitService struct {
	billsplitv1connect.UnimplementedSplitServiceHandler
	store   storage.Store
	logger  *slog.Logger
	metrics *AllocationMetrics
}

var _ billsplitv1connect.SplitServiceHandler = (*SplitService)(nil)

// NewSplitService creates a new SplitService with the given storage backend.
// logger defaults to slog.Default and metrics may be nil.
func NewSplitService(store storage.Store, logger *slog.Logger, metrics *AllocationMetrics) *SplitService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SplitService{store: store, logger: logger, metrics: metrics}
}

// CalculateBill divides a fully formed bill without saving anything.
func (s *SplitService) CalculateBill(ctx context.Context, req *connect.Request[billsplitv1.CalculateBillRequest]) (*connect.Response[billsplitv1.CalculateBillResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		s.logger.Warn("CalculateBill rejected", "error", err)
		return nil, err
	}

	for i, item := range req.Msg.Items {
		s.logger.Debug("Processing item",
			"index", i+1,
			"name", item.Name,
			"amount_cents", item.AmountCents,
			"assigned_to", item.AssignedTo,
		)
	}

	result := calculator.CalculateBill(calculatorInput(req.Msg))
	s.metrics.observe("calculate", result)

	for _, share := range result.Shares {
		s.logger.Debug("Person share",
			"person", share.PersonID,
			"subtotal_cents", share.SubtotalCents,
			"tax_cents", share.TaxCents,
			"total_cents", share.TotalCents,
			"items_count", len(share.Items),
		)
	}

	resp := resultToProto(result)
	return connect.NewResponse(&resp), nil
}

// CreateBill saves a new bill for the caller and returns its split.
func (s *SplitService) CreateBill(ctx context.Context, req *connect.Request[billsplitv1.CreateBillRequest]) (*connect.Response[billsplitv1.CreateBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		s.logger.Warn("CreateBill rejected", "user_id", userID, "error", err)
		return nil, err
	}

	bill := billFromProto(req.Msg.Bill)
	bill.OwnerID = userID

	// Save to storage (generates IDs, title and timestamps)
	if err := s.store.CreateBill(ctx, bill); err != nil {
		s.logger.Error("CreateBill failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	result := calculator.CalculateBill(bill.Input())
	s.metrics.observe("create", result)

	s.logger.Info("Bill created", "bill_id", bill.ID, "user_id", userID, "title", bill.Title)
	return connect.NewResponse(&billsplitv1.CreateBillResponse{
		BillID:         bill.ID,
		Result:         resultToProto(result),
		Reconciliation: reconciliationToProto(bill.Reconcile()),
	}), nil
}

// GetBill loads a saved bill and recomputes its split.
func (s *SplitService) GetBill(ctx context.Context, req *connect.Request[billsplitv1.GetBillRequest]) (*connect.Response[billsplitv1.GetBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	bill, err := s.ownedBill(ctx, req.Msg.BillID, userID)
	if err != nil {
		return nil, err
	}

	result := calculator.CalculateBill(bill.Input())
	s.metrics.observe("get", result)

	return connect.NewResponse(&billsplitv1.GetBillResponse{
		Bill:           billToProto(bill),
		Result:         resultToProto(result),
		Reconciliation: reconciliationToProto(bill.Reconcile()),
		Summary:        bill.Summary(result),
	}), nil
}

// UpdateBill replaces the contents of a saved bill.
func (s *SplitService) UpdateBill(ctx context.Context, req *connect.Request[billsplitv1.UpdateBillRequest]) (*connect.Response[billsplitv1.UpdateBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.Bill.ID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("bill.id is required"))
	}
	if err := validateRequest(req.Msg); err != nil {
		s.logger.Warn("UpdateBill rejected", "bill_id", req.Msg.Bill.ID, "error", err)
		return nil, err
	}

	existing, err := s.ownedBill(ctx, req.Msg.Bill.ID, userID)
	if err != nil {
		return nil, err
	}

	bill := billFromProto(req.Msg.Bill)
	bill.ID = existing.ID
	bill.OwnerID = existing.OwnerID
	bill.CreatedAt = existing.CreatedAt

	if err := s.store.UpdateBill(ctx, bill); err != nil {
		return nil, s.storageError("UpdateBill", bill.ID, err)
	}

	result := calculator.CalculateBill(bill.Input())
	s.metrics.observe("update", result)

	s.logger.Info("Bill updated", "bill_id", bill.ID, "user_id", userID)
	return connect.NewResponse(&billsplitv1.UpdateBillResponse{
		Result:         resultToProto(result),
		Reconciliation: reconciliationToProto(bill.Reconcile()),
	}), nil
}

// DeleteBill deletes a saved bill.
func (s *SplitService) DeleteBill(ctx context.Context, req *connect.Request[billsplitv1.DeleteBillRequest]) (*connect.Response[billsplitv1.DeleteBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	if _, err := s.ownedBill(ctx, req.Msg.BillID, userID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteBill(ctx, req.Msg.BillID); err != nil {
		return nil, s.storageError("DeleteBill", req.Msg.BillID, err)
	}

	s.logger.Info("Bill deleted", "bill_id", req.Msg.BillID, "user_id", userID)
	return connect.NewResponse(&billsplitv1.DeleteBillResponse{}), nil
}

// ListBills returns summaries of the caller's bills, newest first.
func (s *SplitService) ListBills(ctx context.Context, req *connect.Request[billsplitv1.ListBillsRequest]) (*connect.Response[billsplitv1.ListBillsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	bills, err := s.store.ListBillsByOwner(ctx, userID)
	if err != nil {
		s.logger.Error("ListBills failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	summaries := make([]billsplitv1.BillSummary, len(bills))
	for i, bill := range bills {
		summaries[i] = billsplitv1.BillSummary{
			BillID:           bill.ID,
			Title:            bill.Title,
			TotalCents:       bill.Reconcile().ComputedCents,
			PayerID:          bill.PayerID,
			ParticipantCount: int32(len(bill.NamedDiners())),
			CreatedAt:        bill.CreatedAt,
		}
	}

	return connect.NewResponse(&billsplitv1.ListBillsResponse{Bills: summaries}), nil
}

// GetBalances nets out who owes whom across the caller's bills that name a
// payer.
func (s *SplitService) GetBalances(ctx context.Context, req *connect.Request[billsplitv1.GetBalancesRequest]) (*connect.Response[billsplitv1.GetBalancesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	bills, err := s.store.ListBillsByOwner(ctx, userID)
	if err != nil {
		s.logger.Error("GetBalances failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	forBalance := make([]calculator.BillForBalance, 0, len(bills))
	for _, bill := range bills {
		forBalance = append(forBalance, calculator.BillForBalance{
			PayerID: bill.PayerID,
			Input:   bill.Input(),
		})
	}

	balances, debts := calculator.CalculateBalances(forBalance)

	resp := &billsplitv1.GetBalancesResponse{
		Balances: make([]billsplitv1.MemberBalance, len(balances)),
		Debts:    make([]billsplitv1.Debt, len(debts)),
	}
	for i, b := range balances {
		resp.Balances[i] = billsplitv1.MemberBalance{
			MemberName: b.MemberName,
			NetCents:   b.NetCents,
			PaidCents:  b.PaidCents,
			OwedCents:  b.OwedCents,
		}
	}
	for i, d := range debts {
		resp.Debts[i] = billsplitv1.Debt{From: d.From, To: d.To, Cents: d.Cents}
	}

	return connect.NewResponse(resp), nil
}

// ownedBill loads a bill and checks that userID saved it.
func (s *SplitService) ownedBill(ctx context.Context, billID, userID string) (*models.Bill, error) {
	bill, err := s.store.GetBill(ctx, billID)
	if err != nil {
		return nil, s.storageError("GetBill", billID, err)
	}
	if bill.OwnerID != userID {
		s.logger.Warn("Bill access denied", "bill_id", billID, "user_id", userID)
		return nil, connect.NewError(connect.CodePermissionDenied, ErrNotOwner)
	}
	return bill, nil
}

func (s *SplitService) storageError(op, billID string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Warn(op+": bill not found", "bill_id", billID)
		return connect.NewError(connect.CodeNotFound, err)
	}
	s.logger.Error(op+" failed", "bill_id", billID, "error", err)
	return connect.NewError(connect.CodeInternal, err)
}

func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, ErrAuthRequired)
	}
	return userID, nil
}
