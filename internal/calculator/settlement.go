package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Expense is the minimal expense information needed for aggregation.
type Expense struct {
	ID     string
	Title  string
	Amount float64
	Payer  string
	Split  map[string]float64
}

// PayerTotal is the total amount paid by one member.
type PayerTotal struct {
	MemberID  string
	Label     string
	TotalPaid float64 // rounded to 2 decimal places
}

// ShareLine is one member's portion of a single expense.
type ShareLine struct {
	MemberID    string
	Label       string
	AmountOwed  float64 // share × amount, rounded to 2 decimal places
	PercentOwed float64 // share × 100, rounded to 2 decimal places
}

// AggregateByPayer sums expense amounts per payer.
// Rows follow the order in which each payer first appears. Sums are kept
// at full precision and rounded once at the end.
func AggregateByPayer(r Roster, expenses []Expense) []PayerTotal {
	totals := make(map[string]float64)
	var order []string
	for _, e := range expenses {
		if _, seen := totals[e.Payer]; !seen {
			order = append(order, e.Payer)
		}
		totals[e.Payer] += e.Amount
	}

	out := make([]PayerTotal, 0, len(order))
	for _, id := range order {
		out = append(out, PayerTotal{
			MemberID:  id,
			Label:     ResolveLabel(r, id),
			TotalPaid: Round2(totals[id]),
		})
	}
	return out
}

// ShareBreakdown lists what each member owes for one expense.
// The amount and the percentage are rounded independently. Rows follow
// roster order; split keys unknown to the roster come last, sorted by ID.
func ShareBreakdown(r Roster, e Expense) []ShareLine {
	ids := splitOrder(r, e.Split)
	out := make([]ShareLine, 0, len(ids))
	for _, id := range ids {
		share := e.Split[id]
		out = append(out, ShareLine{
			MemberID:    id,
			Label:       ResolveLabel(r, id),
			AmountOwed:  Round2(share * e.Amount),
			PercentOwed: Round2(share * 100),
		})
	}
	return out
}

// Round2 rounds the exact binary value of v to 2 decimal places, ties away
// from zero, so 1.005 (stored as 1.00499...) becomes 1.00.
func Round2(v float64) float64 {
	return decimal.NewFromFloatWithExponent(v, -2).InexactFloat64()
}

func splitOrder(r Roster, split map[string]float64) []string {
	ids := make([]string, 0, len(split))
	listed := make(map[string]bool, len(r.Members))
	for _, m := range r.Members {
		if _, ok := split[m]; ok && !listed[m] {
			ids = append(ids, m)
		}
		listed[m] = true
	}

	var extra []string
	for id := range split {
		if !listed[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return append(ids, extra...)
}
