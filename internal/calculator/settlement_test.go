package calculator

import "testing"

func TestAggregateByPayer(t *testing.T) {
	roster := Roster{
		Members:       []string{"a", "b"},
		MemberDetails: map[string]string{"a": "alice@example.com"},
	}
	expenses := []Expense{
		{Payer: "a", Amount: 100},
		{Payer: "b", Amount: 50},
		{Payer: "a", Amount: 25},
	}

	got := AggregateByPayer(roster, expenses)
	want := []PayerTotal{
		{MemberID: "a", Label: "alice@example.com", TotalPaid: 125},
		{MemberID: "b", Label: "b", TotalPaid: 50},
	}
	if len(got) != len(want) {
		t.Fatalf("AggregateByPayer() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAggregateByPayer_Empty(t *testing.T) {
	got := AggregateByPayer(Roster{}, nil)
	if len(got) != 0 {
		t.Errorf("AggregateByPayer(nil) = %+v, want empty", got)
	}
}

func TestAggregateByPayer_RoundsOnceAfterSumming(t *testing.T) {
	// Rounding each 0.004 first would give 0.00.
	expenses := []Expense{
		{Payer: "a", Amount: 0.004},
		{Payer: "a", Amount: 0.004},
		{Payer: "a", Amount: 0.004},
	}
	got := AggregateByPayer(Roster{}, expenses)
	if len(got) != 1 || got[0].TotalPaid != 0.01 {
		t.Errorf("AggregateByPayer() = %+v, want a=0.01", got)
	}
}

func TestAggregateByPayer_RemovedMemberKeepsRawID(t *testing.T) {
	roster := Roster{Members: []string{"a"}, MemberDetails: map[string]string{"a": "Alice"}}
	got := AggregateByPayer(roster, []Expense{{Payer: "ghost", Amount: 10}})
	if len(got) != 1 || got[0].Label != "ghost" {
		t.Errorf("AggregateByPayer() = %+v, want label ghost", got)
	}
}

func TestShareBreakdown(t *testing.T) {
	roster := Roster{Members: []string{"a", "b"}}
	e := Expense{Amount: 90, Split: map[string]float64{"a": 0.5, "b": 0.5}}

	got := ShareBreakdown(roster, e)
	want := []ShareLine{
		{MemberID: "a", Label: "a", AmountOwed: 45, PercentOwed: 50},
		{MemberID: "b", Label: "b", AmountOwed: 45, PercentOwed: 50},
	}
	if len(got) != len(want) {
		t.Fatalf("ShareBreakdown() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestShareBreakdown_IndependentRounding(t *testing.T) {
	roster := Roster{Members: []string{"a", "b", "c"}}
	split, err := EqualSplit(roster.Members, "a")
	if err != nil {
		t.Fatalf("EqualSplit() error = %v", err)
	}

	got := ShareBreakdown(roster, Expense{Amount: 100, Split: split})
	for _, line := range got {
		if line.AmountOwed != 33.33 {
			t.Errorf("%s AmountOwed = %v, want 33.33", line.MemberID, line.AmountOwed)
		}
		if line.PercentOwed != 33.33 {
			t.Errorf("%s PercentOwed = %v, want 33.33", line.MemberID, line.PercentOwed)
		}
	}
}

func TestShareBreakdown_UnknownKeysLast(t *testing.T) {
	roster := Roster{Members: []string{"b", "a"}}
	e := Expense{Amount: 10, Split: map[string]float64{"a": 0.25, "z": 0.25, "y": 0.25, "b": 0.25}}

	got := ShareBreakdown(roster, e)
	order := []string{"b", "a", "y", "z"}
	if len(got) != len(order) {
		t.Fatalf("ShareBreakdown() = %+v", got)
	}
	for i, id := range order {
		if got[i].MemberID != id {
			t.Errorf("row %d = %s, want %s", i, got[i].MemberID, id)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{45, 45},
		{33.333333, 33.33},
		{1.005, 1},
		{2.675, 2.67},
		{0.125, 0.13},
		{-0.125, -0.13},
		{-2.345, -2.34},
		{0.004, 0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
