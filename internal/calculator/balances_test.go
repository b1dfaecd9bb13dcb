package calculator

import (
	"math"
	"testing"
)

func TestCalculateBalances(t *testing.T) {
	roster := Roster{Members: []string{"a", "b", "c"}}
	half := map[string]float64{"a": 0.5, "b": 0.5}

	tests := []struct {
		name          string
		expenses      []Expense
		payments      []Payment
		wantNet       map[string]float64
		wantTransfers []Transfer
	}{
		{
			name:          "no activity",
			wantNet:       map[string]float64{"a": 0, "b": 0, "c": 0},
			wantTransfers: nil,
		},
		{
			name: "two expenses between two members",
			expenses: []Expense{
				{Payer: "a", Amount: 100, Split: half},
				{Payer: "b", Amount: 50, Split: half},
			},
			// a: paid 100, owes 75. b: paid 50, owes 75.
			wantNet:       map[string]float64{"a": 25, "b": -25, "c": 0},
			wantTransfers: []Transfer{{From: "b", To: "a", Amount: 25}},
		},
		{
			name: "payment reduces debt",
			expenses: []Expense{
				{Payer: "a", Amount: 100, Split: half},
				{Payer: "b", Amount: 50, Split: half},
			},
			payments:      []Payment{{From: "b", To: "a", Amount: 10}},
			wantNet:       map[string]float64{"a": 15, "b": -15, "c": 0},
			wantTransfers: []Transfer{{From: "b", To: "a", Amount: 15}},
		},
		{
			name: "fully settled",
			expenses: []Expense{
				{Payer: "a", Amount: 60, Split: half},
			},
			payments:      []Payment{{From: "b", To: "a", Amount: 30}},
			wantNet:       map[string]float64{"a": 0, "b": 0, "c": 0},
			wantTransfers: nil,
		},
		{
			name: "one payer three debtors",
			expenses: []Expense{
				{Payer: "a", Amount: 90, Split: map[string]float64{"a": 0.5, "b": 0.25, "c": 0.25}},
			},
			wantNet: map[string]float64{"a": 45, "b": -22.5, "c": -22.5},
			wantTransfers: []Transfer{
				{From: "b", To: "a", Amount: 22.5},
				{From: "c", To: "a", Amount: 22.5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances, transfers := CalculateBalances(roster, tt.expenses, tt.payments)

			if len(balances) != 3 {
				t.Fatalf("expected 3 balances, got %d", len(balances))
			}
			for i, id := range roster.Members {
				if balances[i].MemberID != id {
					t.Errorf("balance %d is %s, want %s", i, balances[i].MemberID, id)
				}
				if math.Abs(balances[i].NetBalance-tt.wantNet[id]) > 0.001 {
					t.Errorf("%s net = %v, want %v", id, balances[i].NetBalance, tt.wantNet[id])
				}
			}

			if len(transfers) != len(tt.wantTransfers) {
				t.Fatalf("transfers = %+v, want %+v", transfers, tt.wantTransfers)
			}
			for i, want := range tt.wantTransfers {
				if transfers[i] != want {
					t.Errorf("transfer %d = %+v, want %+v", i, transfers[i], want)
				}
			}
		})
	}
}

func TestCalculateBalances_NetSumsToZero(t *testing.T) {
	roster := Roster{Members: []string{"a", "b", "c", "d"}}
	var expenses []Expense
	for i, payer := range []string{"a", "b", "c", "a", "d"} {
		split, err := EqualSplit(roster.Members, payer)
		if err != nil {
			t.Fatalf("EqualSplit() error = %v", err)
		}
		expenses = append(expenses, Expense{Payer: payer, Amount: float64(10*i) + 7.31, Split: split})
	}

	balances, _ := CalculateBalances(roster, expenses, nil)
	var net float64
	for _, b := range balances {
		net += b.NetBalance
	}
	if math.Abs(net) > 0.02 {
		t.Errorf("sum of net balances = %v, want ~0", net)
	}
}

func TestCalculateBalances_UnknownMemberAppended(t *testing.T) {
	roster := Roster{Members: []string{"a"}, MemberDetails: map[string]string{"a": "Alice"}}
	expenses := []Expense{
		{Payer: "ghost", Amount: 20, Split: map[string]float64{"a": 1}},
	}

	balances, transfers := CalculateBalances(roster, expenses, nil)
	if len(balances) != 2 {
		t.Fatalf("expected 2 balances, got %+v", balances)
	}
	if balances[1].MemberID != "ghost" || balances[1].Label != "ghost" {
		t.Errorf("unknown member row = %+v", balances[1])
	}
	if len(transfers) != 1 || transfers[0] != (Transfer{From: "a", To: "ghost", Amount: 20}) {
		t.Errorf("transfers = %+v", transfers)
	}
}

func TestCalculateBalances_RawSplitIsScaled(t *testing.T) {
	roster := Roster{Members: []string{"a", "b"}}

	tests := []struct {
		name    string
		split   map[string]float64
		wantNet map[string]float64
	}{
		{
			name:    "percent values",
			split:   map[string]float64{"a": 50, "b": 50},
			wantNet: map[string]float64{"a": 45, "b": -45},
		},
		{
			name:    "fractions over one",
			split:   map[string]float64{"a": 0.6, "b": 0.6},
			wantNet: map[string]float64{"a": 45, "b": -45},
		},
		{
			name:    "fractions under one",
			split:   map[string]float64{"a": 0.1, "b": 0.2},
			wantNet: map[string]float64{"a": 60, "b": -60},
		},
		{
			name:    "all zero charges the payer",
			split:   map[string]float64{"a": 0, "b": 0},
			wantNet: map[string]float64{"a": 0, "b": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expenses := []Expense{{Payer: "a", Amount: 90, Split: tt.split}}
			balances, transfers := CalculateBalances(roster, expenses, nil)

			var net float64
			for _, b := range balances {
				net += b.NetBalance
				if want := tt.wantNet[b.MemberID]; math.Abs(b.NetBalance-want) > 0.001 {
					t.Errorf("%s net = %v, want %v", b.MemberID, b.NetBalance, want)
				}
			}
			if math.Abs(net) > 0.001 {
				t.Errorf("sum of net balances = %v, want 0", net)
			}
			if owed := tt.wantNet["a"]; owed > 0 {
				if len(transfers) != 1 || transfers[0] != (Transfer{From: "b", To: "a", Amount: owed}) {
					t.Errorf("transfers = %+v", transfers)
				}
			} else if len(transfers) != 0 {
				t.Errorf("expected no transfers, got %+v", transfers)
			}
		})
	}
}
