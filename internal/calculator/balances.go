package calculator

import "sort"

// MemberBalance represents the balance information for one plan member.
type MemberBalance struct {
	MemberID   string
	Label      string
	NetBalance float64 // Positive = owed money, Negative = owes money
	TotalPaid  float64 // Paid for expenses plus settlements sent
	TotalOwed  float64 // Expense shares plus settlements received
}

// Transfer is a suggested payment that clears debt between two members.
type Transfer struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount float64
}

// Payment is a recorded settlement between two members.
type Payment struct {
	From   string
	To     string
	Amount float64
}

// settleThreshold ignores floating point noise when matching debts.
const settleThreshold = 0.01

// CalculateBalances computes per-member balances across expenses and
// recorded payments, and a short list of transfers that settles them.
//
// Algorithm:
//   - For each expense: payer contributed +amount, each member owes
//     share / sum(shares) × amount, so raw splits still charge the full amount
//   - For each payment: sender's balance improves, receiver's balance decreases
//   - net = total_paid - total_owed
//   - Transfers: greedy matching of largest debtor with largest creditor
//
// Rows follow roster order, then first appearance for unknown members.
// All figures are rounded to 2 decimal places after accumulation.
func CalculateBalances(r Roster, expenses []Expense, payments []Payment) ([]MemberBalance, []Transfer) {
	balances := make(map[string]*MemberBalance)
	var order []string
	get := func(id string) *MemberBalance {
		b, ok := balances[id]
		if !ok {
			b = &MemberBalance{MemberID: id, Label: ResolveLabel(r, id)}
			balances[id] = b
			order = append(order, id)
		}
		return b
	}
	for _, m := range r.Members {
		get(m)
	}

	for _, e := range expenses {
		get(e.Payer).TotalPaid += e.Amount
		ids := splitOrder(r, e.Split)
		var sum float64
		for _, id := range ids {
			sum += e.Split[id]
		}
		if sum <= 0 {
			// An all-zero split leaves the whole amount with the payer.
			get(e.Payer).TotalOwed += e.Amount
			continue
		}
		for _, id := range ids {
			get(id).TotalOwed += e.Split[id] / sum * e.Amount
		}
	}

	for _, p := range payments {
		get(p.From).TotalPaid += p.Amount
		get(p.To).TotalOwed += p.Amount
	}

	out := make([]MemberBalance, 0, len(order))
	var creditors, debtors []MemberBalance
	for _, id := range order {
		b := *balances[id]
		b.NetBalance = b.TotalPaid - b.TotalOwed
		if b.NetBalance > settleThreshold {
			creditors = append(creditors, b)
		} else if b.NetBalance < -settleThreshold {
			debtors = append(debtors, b)
		}
		b.TotalPaid = Round2(b.TotalPaid)
		b.TotalOwed = Round2(b.TotalOwed)
		b.NetBalance = Round2(b.NetBalance)
		out = append(out, b)
	}

	return out, simplifyDebts(creditors, debtors)
}

func simplifyDebts(creditors, debtors []MemberBalance) []Transfer {
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].NetBalance > creditors[j].NetBalance
	})
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].NetBalance < debtors[j].NetBalance
	})

	owes := make([]float64, len(debtors))
	for i, d := range debtors {
		owes[i] = -d.NetBalance
	}
	owed := make([]float64, len(creditors))
	for j, c := range creditors {
		owed[j] = c.NetBalance
	}

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := owes[i]
		if owed[j] < amount {
			amount = owed[j]
		}
		if amount > settleThreshold {
			transfers = append(transfers, Transfer{
				From:   debtors[i].MemberID,
				To:     creditors[j].MemberID,
				Amount: Round2(amount),
			})
		}

		owes[i] -= amount
		owed[j] -= amount
		if owes[i] < settleThreshold {
			i++
		}
		if owed[j] < settleThreshold {
			j++
		}
	}
	return transfers
}
