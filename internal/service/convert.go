package service

import (
	"github.com/mmynk/tripsplit/internal/api"
	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
)

func roster(group *models.Group) calculator.Roster {
	return calculator.Roster{Members: group.Members, MemberDetails: group.MemberDetails}
}

func toAPIMembers(members []calculator.Member) []api.Member {
	out := make([]api.Member, len(members))
	for i, m := range members {
		out[i] = api.Member{ID: m.ID, Label: m.Label}
	}
	return out
}

func toAPIGroup(group *models.Group) api.Group {
	return api.Group{
		ID:        group.ID,
		Name:      group.Name,
		Members:   toAPIMembers(calculator.ListMembers(roster(group))),
		CreatedBy: group.CreatedBy,
		CreatedAt: group.CreatedAt,
	}
}

func toAPIUser(user *models.User) api.User {
	return api.User{ID: user.ID, Email: user.Email, DisplayName: user.DisplayName}
}

func toAPIPlan(plan *models.Plan) api.Plan {
	out := api.Plan{
		ID:          plan.ID,
		GroupID:     plan.GroupID,
		Title:       plan.Title,
		Description: plan.Description,
		CreatedAt:   plan.CreatedAt,
	}
	if plan.Location != nil {
		out.Location = &api.Location{Lat: plan.Location.Lat, Lng: plan.Location.Lng}
	}
	return out
}

func toAPINote(note *models.Note) api.Note {
	return api.Note{
		ID:        note.ID,
		PlanID:    note.PlanID,
		Content:   note.Content,
		CreatedBy: note.CreatedBy,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func toAPIShares(lines []calculator.ShareLine) []api.ShareLine {
	out := make([]api.ShareLine, len(lines))
	for i, l := range lines {
		out[i] = api.ShareLine{MemberID: l.MemberID, Label: l.Label, Amount: l.AmountOwed, Percent: l.PercentOwed}
	}
	return out
}

func toCalcExpense(e *models.Expense) calculator.Expense {
	return calculator.Expense{ID: e.ID, Title: e.Title, Amount: e.Amount, Payer: e.Payer, Split: e.Split}
}

// toAPILedger builds the wire ledger for a plan from stored records.
func toAPILedger(planID string, group *models.Group, expenses []*models.Expense, settlements []*models.Settlement) api.PlanLedger {
	r := roster(group)

	calcExpenses := make([]calculator.Expense, len(expenses))
	for i, e := range expenses {
		calcExpenses[i] = toCalcExpense(e)
	}
	payments := make([]calculator.Payment, len(settlements))
	for i, s := range settlements {
		payments[i] = calculator.Payment{From: s.FromUserID, To: s.ToUserID, Amount: s.Amount}
	}

	ledger := calculator.BuildLedger(r, calcExpenses, payments)

	out := api.PlanLedger{
		PlanID:      planID,
		Members:     toAPIMembers(ledger.Members),
		Expenses:    make([]api.ExpenseLine, len(ledger.Expenses)),
		PayerTotals: make([]api.PayerTotal, len(ledger.PayerTotals)),
		Balances:    make([]api.Balance, len(ledger.Balances)),
		Transfers:   make([]api.Transfer, len(ledger.Transfers)),
		Settlements: make([]api.Settlement, len(settlements)),
		Total:       ledger.Total,
	}
	for i, v := range ledger.Expenses {
		out.Expenses[i] = api.ExpenseLine{
			ID:         v.Expense.ID,
			Title:      v.Expense.Title,
			Amount:     v.Expense.Amount,
			Payer:      v.Expense.Payer,
			PayerLabel: v.PayerLabel,
			Split:      v.Expense.Split,
			Shares:     toAPIShares(v.Shares),
			CreatedBy:  expenses[i].CreatedBy,
			CreatedAt:  expenses[i].CreatedAt,
		}
	}
	for i, p := range ledger.PayerTotals {
		out.PayerTotals[i] = api.PayerTotal{MemberID: p.MemberID, Label: p.Label, TotalPaid: p.TotalPaid}
	}
	for i, b := range ledger.Balances {
		out.Balances[i] = api.Balance{
			MemberID:   b.MemberID,
			Label:      b.Label,
			NetBalance: b.NetBalance,
			TotalPaid:  b.TotalPaid,
			TotalOwed:  b.TotalOwed,
		}
	}
	for i, t := range ledger.Transfers {
		out.Transfers[i] = api.Transfer{
			From:      t.From,
			FromLabel: calculator.ResolveLabel(r, t.From),
			To:        t.To,
			ToLabel:   calculator.ResolveLabel(r, t.To),
			Amount:    t.Amount,
		}
	}
	for i, s := range settlements {
		out.Settlements[i] = api.Settlement{
			ID:         s.ID,
			FromUserID: s.FromUserID,
			ToUserID:   s.ToUserID,
			Amount:     s.Amount,
			Note:       s.Note,
			CreatedBy:  s.CreatedBy,
			CreatedAt:  s.CreatedAt,
		}
	}
	return out
}
