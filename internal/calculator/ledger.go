package calculator

// ExpenseView is an expense with its labelled share breakdown.
type ExpenseView struct {
	Expense    Expense
	PayerLabel string
	Shares     []ShareLine
}

// Ledger is the full settlement view of one plan.
type Ledger struct {
	Members     []Member
	Expenses    []ExpenseView
	PayerTotals []PayerTotal
	Balances    []MemberBalance
	Transfers   []Transfer
	// Total is the sum of all expense amounts, rounded to 2 decimal places.
	Total float64
}

// BuildLedger assembles every derived view of a plan's expenses.
func BuildLedger(r Roster, expenses []Expense, payments []Payment) Ledger {
	views := make([]ExpenseView, len(expenses))
	var total float64
	for i, e := range expenses {
		views[i] = ExpenseView{
			Expense:    e,
			PayerLabel: ResolveLabel(r, e.Payer),
			Shares:     ShareBreakdown(r, e),
		}
		total += e.Amount
	}

	balances, transfers := CalculateBalances(r, expenses, payments)
	return Ledger{
		Members:     ListMembers(r),
		Expenses:    views,
		PayerTotals: AggregateByPayer(r, expenses),
		Balances:    balances,
		Transfers:   transfers,
		Total:       Round2(total),
	}
}
