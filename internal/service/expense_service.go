package service

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/api"
	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// ExpenseService implements api.ExpenseServiceHandler. Every mutation
// answers with the refreshed plan ledger so clients never re-fetch.
type ExpenseService struct {
	store storage.Store
}

var _ api.ExpenseServiceHandler = (*ExpenseService)(nil)

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// splitRequest converts the wire split input for a group.
func splitRequest(group *models.Group, amount float64, payer string, in api.SplitInput) calculator.SplitRequest {
	return calculator.SplitRequest{
		Amount:        amount,
		Payer:         payer,
		Members:       group.Members,
		Mode:          calculator.SplitMode(strings.ToLower(strings.TrimSpace(in.Mode))),
		Shares:        in.Shares,
		Normalization: calculator.Normalization(strings.ToLower(strings.TrimSpace(in.Normalization))),
	}
}

// PreviewSplit computes a split without saving anything.
func (s *ExpenseService) PreviewSplit(ctx context.Context, req *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	_, group, err := memberPlan(ctx, s.store, req.Msg.PlanID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	split, err := calculator.Compute(splitRequest(group, req.Msg.Amount, req.Msg.Payer, req.Msg.Split))
	if err != nil {
		slog.Debug("PreviewSplit rejected", "plan_id", req.Msg.PlanID, "error", err)
		return nil, toConnectError(err)
	}

	lines := calculator.ShareBreakdown(roster(group), calculator.Expense{
		Amount: req.Msg.Amount,
		Payer:  req.Msg.Payer,
		Split:  split,
	})
	return connect.NewResponse(&api.PreviewSplitResponse{Split: split, Shares: toAPIShares(lines)}), nil
}

// AddExpense validates and splits a new expense, stores it and returns the
// refreshed ledger.
func (s *ExpenseService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("AddExpense request received",
		"plan_id", req.Msg.PlanID,
		"amount", req.Msg.Amount,
		"payer", req.Msg.Payer,
		"mode", req.Msg.Split.Mode,
	)

	title := strings.TrimSpace(req.Msg.Title)
	if title == "" {
		return nil, invalidArgument("expense title required")
	}

	plan, group, err := memberPlan(ctx, s.store, req.Msg.PlanID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	split, err := calculator.Compute(splitRequest(group, req.Msg.Amount, req.Msg.Payer, req.Msg.Split))
	if err != nil {
		slog.Warn("AddExpense split rejected", "plan_id", plan.ID, "error", err)
		return nil, toConnectError(err)
	}

	expense := &models.Expense{
		PlanID:    plan.ID,
		Title:     title,
		Amount:    req.Msg.Amount,
		Payer:     req.Msg.Payer,
		Split:     split,
		CreatedBy: userID,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "plan_id", plan.ID, "error", err)
		return nil, toConnectError(err)
	}

	ledger, err := s.ledger(ctx, plan.ID, group)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Expense added", "expense_id", expense.ID, "plan_id", plan.ID)
	return connect.NewResponse(&api.AddExpenseResponse{ExpenseID: expense.ID, Ledger: ledger}), nil
}

// DeleteExpense removes a single expense.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.LedgerResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Msg.ExpenseID) == "" {
		return nil, invalidArgument("expense id required")
	}

	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(err)
	}
	_, group, err := memberPlan(ctx, s.store, expense.PlanID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expense.ID, "error", err)
		return nil, toConnectError(err)
	}

	ledger, err := s.ledger(ctx, expense.PlanID, group)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Expense deleted", "expense_id", expense.ID, "plan_id", expense.PlanID)
	return connect.NewResponse(&api.LedgerResponse{Ledger: ledger}), nil
}

// GetPlanLedger returns the current ledger of a plan.
func (s *ExpenseService) GetPlanLedger(ctx context.Context, req *connect.Request[api.GetPlanLedgerRequest]) (*connect.Response[api.LedgerResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	plan, group, err := memberPlan(ctx, s.store, req.Msg.PlanID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	ledger, err := s.ledger(ctx, plan.ID, group)
	if err != nil {
		slog.Error("GetPlanLedger failed", "plan_id", plan.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.LedgerResponse{Ledger: ledger}), nil
}

// RecordSettlement records a payment from one member to another.
func (s *ExpenseService) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	msg := req.Msg
	slog.Info("RecordSettlement request received",
		"plan_id", msg.PlanID,
		"from", msg.FromUserID,
		"to", msg.ToUserID,
		"amount", msg.Amount,
	)

	if math.IsNaN(msg.Amount) || math.IsInf(msg.Amount, 0) || msg.Amount <= 0 {
		return nil, invalidArgument("settlement amount must be positive, got %v", msg.Amount)
	}
	if msg.FromUserID == msg.ToUserID {
		return nil, invalidArgument("cannot settle with yourself")
	}

	plan, group, err := memberPlan(ctx, s.store, msg.PlanID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !group.HasMember(msg.FromUserID) {
		return nil, invalidArgument("%q is not a group member", msg.FromUserID)
	}
	if !group.HasMember(msg.ToUserID) {
		return nil, invalidArgument("%q is not a group member", msg.ToUserID)
	}

	settlement := &models.Settlement{
		PlanID:     plan.ID,
		FromUserID: msg.FromUserID,
		ToUserID:   msg.ToUserID,
		Amount:     msg.Amount,
		CreatedBy:  userID,
		Note:       strings.TrimSpace(msg.Note),
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("RecordSettlement failed", "plan_id", plan.ID, "error", err)
		return nil, toConnectError(err)
	}

	ledger, err := s.ledger(ctx, plan.ID, group)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Settlement recorded", "settlement_id", settlement.ID, "plan_id", plan.ID)
	return connect.NewResponse(&api.RecordSettlementResponse{SettlementID: settlement.ID, Ledger: ledger}), nil
}

// DeleteSettlement removes a recorded payment.
func (s *ExpenseService) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.LedgerResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Msg.SettlementID) == "" {
		return nil, invalidArgument("settlement id required")
	}

	settlement, err := s.store.GetSettlement(ctx, req.Msg.SettlementID)
	if err != nil {
		return nil, toConnectError(err)
	}
	_, group, err := memberPlan(ctx, s.store, settlement.PlanID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.DeleteSettlement(ctx, settlement.ID); err != nil {
		slog.Error("DeleteSettlement failed", "settlement_id", settlement.ID, "error", err)
		return nil, toConnectError(err)
	}

	ledger, err := s.ledger(ctx, settlement.PlanID, group)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.LedgerResponse{Ledger: ledger}), nil
}

func (s *ExpenseService) ledger(ctx context.Context, planID string, group *models.Group) (api.PlanLedger, error) {
	expenses, err := s.store.ListExpensesByPlan(ctx, planID)
	if err != nil {
		return api.PlanLedger{}, err
	}
	settlements, err := s.store.ListSettlementsByPlan(ctx, planID)
	if err != nil {
		return api.PlanLedger{}, err
	}
	return toAPILedger(planID, group, expenses, settlements), nil
}
