package service

import (
	"context"
	"math"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/api"
)

func TestPreviewSplit(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := c.createGroup(t, "a", "b", "c")
	plan := c.createPlan(t, "a", group.ID)

	tests := []struct {
		name       string
		amount     float64
		payer      string
		split      api.SplitInput
		wantCode   connect.Code
		wantShares map[string]float64
	}{
		{
			name:       "equal split of three",
			amount:     90,
			payer:      "a",
			wantShares: map[string]float64{"a": 30, "b": 30, "c": 30},
		},
		{
			name:       "manual split is normalized",
			amount:     100,
			payer:      "b",
			split:      api.SplitInput{Mode: "manual", Shares: map[string]float64{"a": 1, "b": 3}},
			wantShares: map[string]float64{"a": 25, "b": 75, "c": 0},
		},
		{
			name:     "strict rejects unnormalized shares",
			amount:   100,
			payer:    "a",
			split:    api.SplitInput{Mode: "manual", Normalization: "strict", Shares: map[string]float64{"a": 0.5}},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name:     "negative share",
			amount:   100,
			payer:    "a",
			split:    api.SplitInput{Mode: "manual", Shares: map[string]float64{"a": -1, "b": 2}},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name:     "share for a non-member",
			amount:   100,
			payer:    "a",
			split:    api.SplitInput{Mode: "manual", Shares: map[string]float64{"z": 1}},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name:     "payer outside the group",
			amount:   100,
			payer:    "z",
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name:     "zero amount",
			amount:   0,
			payer:    "a",
			wantCode: connect.CodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := c.expenses.PreviewSplit(ctx, as("a", &api.PreviewSplitRequest{
				PlanID: plan.ID, Amount: tt.amount, Payer: tt.payer, Split: tt.split,
			}))
			if tt.wantCode != 0 {
				assertCode(t, err, tt.wantCode)
				return
			}
			if err != nil {
				t.Fatalf("PreviewSplit failed: %v", err)
			}

			var sum float64
			for _, v := range resp.Msg.Split {
				sum += v
			}
			if math.Abs(sum-1) > 1e-9 {
				t.Errorf("expected shares to sum to 1, got %v", sum)
			}

			if len(resp.Msg.Shares) != len(tt.wantShares) {
				t.Fatalf("expected %d share lines, got %d", len(tt.wantShares), len(resp.Msg.Shares))
			}
			for _, line := range resp.Msg.Shares {
				if want := tt.wantShares[line.MemberID]; line.Amount != want {
					t.Errorf("%s: expected %v, got %v", line.MemberID, want, line.Amount)
				}
			}
		})
	}

	ledger, err := c.expenses.GetPlanLedger(ctx, as("a", &api.GetPlanLedgerRequest{PlanID: plan.ID}))
	if err != nil {
		t.Fatalf("GetPlanLedger failed: %v", err)
	}
	if len(ledger.Msg.Ledger.Expenses) != 0 {
		t.Errorf("expected preview to persist nothing, got %d expenses", len(ledger.Msg.Ledger.Expenses))
	}
}

func TestAddExpense_ReturnsRefreshedLedger(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := c.createGroup(t, "a", "b")
	plan := c.createPlan(t, "a", group.ID)

	first, err := c.expenses.AddExpense(ctx, as("a", &api.AddExpenseRequest{
		PlanID: plan.ID, Title: "Hotel", Amount: 100, Payer: "a",
	}))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if first.Msg.ExpenseID == "" {
		t.Error("expected expense ID")
	}
	if n := len(first.Msg.Ledger.Expenses); n != 1 {
		t.Fatalf("expected 1 expense in ledger, got %d", n)
	}

	second, err := c.expenses.AddExpense(ctx, as("b", &api.AddExpenseRequest{
		PlanID: plan.ID, Title: "Taxi", Amount: 40, Payer: "b",
		Split: api.SplitInput{Mode: "manual", Shares: map[string]float64{"b": 1}},
	}))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	ledger := second.Msg.Ledger
	if ledger.Total != 140 {
		t.Errorf("expected total 140, got %v", ledger.Total)
	}
	if ledger.Expenses[0].Title != "Hotel" || ledger.Expenses[1].Title != "Taxi" {
		t.Errorf("expected creation order, got %s, %s", ledger.Expenses[0].Title, ledger.Expenses[1].Title)
	}
	if ledger.Expenses[0].PayerLabel != "a@example.com" {
		t.Errorf("expected payer label, got %q", ledger.Expenses[0].PayerLabel)
	}

	wantTotals := []api.PayerTotal{
		{MemberID: "a", Label: "a@example.com", TotalPaid: 100},
		{MemberID: "b", Label: "b@example.com", TotalPaid: 40},
	}
	if len(ledger.PayerTotals) != len(wantTotals) {
		t.Fatalf("expected %d payer totals, got %d", len(wantTotals), len(ledger.PayerTotals))
	}
	for i, want := range wantTotals {
		if ledger.PayerTotals[i] != want {
			t.Errorf("payer total %d: expected %+v, got %+v", i, want, ledger.PayerTotals[i])
		}
	}

	// a paid 100 and owes 50; b paid 40 and owes 50 + 40.
	if len(ledger.Transfers) != 1 {
		t.Fatalf("expected 1 transfer, got %+v", ledger.Transfers)
	}
	transfer := ledger.Transfers[0]
	if transfer.From != "b" || transfer.To != "a" || transfer.Amount != 50 {
		t.Errorf("unexpected transfer %+v", transfer)
	}
}

func TestAddExpense_RawSplitKeepsBalancesEven(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := c.createGroup(t, "a", "b")
	plan := c.createPlan(t, "a", group.ID)

	resp, err := c.expenses.AddExpense(ctx, as("a", &api.AddExpenseRequest{
		PlanID: plan.ID, Title: "Ferry", Amount: 90, Payer: "a",
		Split: api.SplitInput{Mode: "manual", Normalization: "raw", Shares: map[string]float64{"a": 0.6, "b": 0.6}},
	}))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	ledger := resp.Msg.Ledger
	if got := ledger.Expenses[0].Split["b"]; got != 0.6 {
		t.Errorf("expected raw share 0.6 to be stored, got %v", got)
	}

	var net float64
	for _, b := range ledger.Balances {
		net += b.NetBalance
	}
	if net != 0 {
		t.Errorf("expected net balances to sum to 0, got %v", net)
	}
	if len(ledger.Transfers) != 1 || ledger.Transfers[0].From != "b" || ledger.Transfers[0].To != "a" || ledger.Transfers[0].Amount != 45 {
		t.Errorf("expected b to pay a 45, got %+v", ledger.Transfers)
	}
}

func TestAddExpense_Validation(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := c.createGroup(t, "a", "b")
	plan := c.createPlan(t, "a", group.ID)

	_, err := c.expenses.AddExpense(ctx, as("a", &api.AddExpenseRequest{PlanID: plan.ID, Title: " ", Amount: 10, Payer: "a"}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = c.expenses.AddExpense(ctx, as("a", &api.AddExpenseRequest{PlanID: plan.ID, Title: "x", Amount: -5, Payer: "a"}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = c.expenses.AddExpense(ctx, as("mallory", &api.AddExpenseRequest{PlanID: plan.ID, Title: "x", Amount: 5, Payer: "a"}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = c.expenses.AddExpense(ctx, as("a", &api.AddExpenseRequest{PlanID: "missing", Title: "x", Amount: 5, Payer: "a"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestDeleteExpense(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := c.createGroup(t, "a", "b")
	plan := c.createPlan(t, "a", group.ID)

	var ids []string
	for _, title := range []string{"Lunch", "Dinner"} {
		resp, err := c.expenses.AddExpense(ctx, as("a", &api.AddExpenseRequest{PlanID: plan.ID, Title: title, Amount: 20, Payer: "a"}))
		if err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}
		ids = append(ids, resp.Msg.ExpenseID)
	}

	_, err := c.expenses.DeleteExpense(ctx, as("mallory", &api.DeleteExpenseRequest{ExpenseID: ids[0]}))
	assertCode(t, err, connect.CodePermissionDenied)

	resp, err := c.expenses.DeleteExpense(ctx, as("b", &api.DeleteExpenseRequest{ExpenseID: ids[0]}))
	if err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}
	expenses := resp.Msg.Ledger.Expenses
	if len(expenses) != 1 || expenses[0].ID != ids[1] {
		t.Errorf("expected only Dinner to remain, got %+v", expenses)
	}

	_, err = c.expenses.DeleteExpense(ctx, as("a", &api.DeleteExpenseRequest{ExpenseID: ids[0]}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestSettlements(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := c.createGroup(t, "a", "b")
	plan := c.createPlan(t, "a", group.ID)

	if _, err := c.expenses.AddExpense(ctx, as("a", &api.AddExpenseRequest{PlanID: plan.ID, Title: "Hotel", Amount: 100, Payer: "a"})); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	tests := []struct {
		name string
		req  api.RecordSettlementRequest
	}{
		{name: "zero amount", req: api.RecordSettlementRequest{FromUserID: "b", ToUserID: "a", Amount: 0}},
		{name: "same member", req: api.RecordSettlementRequest{FromUserID: "a", ToUserID: "a", Amount: 5}},
		{name: "non-member payee", req: api.RecordSettlementRequest{FromUserID: "b", ToUserID: "z", Amount: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.PlanID = plan.ID
			_, err := c.expenses.RecordSettlement(ctx, as("a", &req))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}

	recorded, err := c.expenses.RecordSettlement(ctx, as("b", &api.RecordSettlementRequest{
		PlanID: plan.ID, FromUserID: "b", ToUserID: "a", Amount: 50, Note: "cash",
	}))
	if err != nil {
		t.Fatalf("RecordSettlement failed: %v", err)
	}
	ledger := recorded.Msg.Ledger
	if len(ledger.Transfers) != 0 {
		t.Errorf("expected debts to be settled, got %+v", ledger.Transfers)
	}
	if len(ledger.Settlements) != 1 || ledger.Settlements[0].Note != "cash" {
		t.Errorf("unexpected settlements %+v", ledger.Settlements)
	}
	for _, b := range ledger.Balances {
		if b.NetBalance != 0 {
			t.Errorf("expected %s to be even, got %v", b.MemberID, b.NetBalance)
		}
	}

	deleted, err := c.expenses.DeleteSettlement(ctx, as("a", &api.DeleteSettlementRequest{SettlementID: recorded.Msg.SettlementID}))
	if err != nil {
		t.Fatalf("DeleteSettlement failed: %v", err)
	}
	if len(deleted.Msg.Ledger.Transfers) != 1 {
		t.Errorf("expected debt to reappear, got %+v", deleted.Msg.Ledger.Transfers)
	}
}
