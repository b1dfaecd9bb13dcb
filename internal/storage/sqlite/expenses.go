package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// CreateExpense persists a new expense and its split mapping.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, plan_id, title, amount, payer, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.PlanID, expense.Title, expense.Amount, expense.Payer,
		expense.CreatedBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	// Insert in a stable order so failures are reproducible.
	memberIDs := make([]string, 0, len(expense.Split))
	for id := range expense.Split {
		memberIDs = append(memberIDs, id)
	}
	sort.Strings(memberIDs)

	for _, memberID := range memberIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_shares (expense_id, member_id, share) VALUES (?, ?, ?)",
			expense.ID, memberID, expense.Split[memberID],
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, including its split mapping.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, plan_id, title, amount, payer, created_by, created_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.PlanID, &expense.Title, &expense.Amount, &expense.Payer,
		&expense.CreatedBy, &expense.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: expense %s", storage.ErrNotFound, expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	shares, err := s.loadShares(ctx,
		"SELECT expense_id, member_id, share FROM expense_shares WHERE expense_id = ?", expenseID)
	if err != nil {
		return nil, err
	}
	expense.Split = shares[expense.ID]
	if expense.Split == nil {
		expense.Split = map[string]float64{}
	}
	return expense, nil
}

// ListExpensesByPlan retrieves all expenses of a plan in creation order.
func (s *SQLiteStore) ListExpensesByPlan(ctx context.Context, planID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, plan_id, title, amount, payer, created_by, created_at
		 FROM expenses WHERE plan_id = ? ORDER BY created_at, rowid`,
		planID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by plan: %w", err)
	}

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		if err := rows.Scan(&expense.ID, &expense.PlanID, &expense.Title, &expense.Amount, &expense.Payer,
			&expense.CreatedBy, &expense.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	shares, err := s.loadShares(ctx,
		`SELECT s.expense_id, s.member_id, s.share FROM expense_shares s
		 JOIN expenses e ON e.id = s.expense_id WHERE e.plan_id = ?`, planID)
	if err != nil {
		return nil, err
	}
	for _, expense := range expenses {
		expense.Split = shares[expense.ID]
		if expense.Split == nil {
			expense.Split = map[string]float64{}
		}
	}
	return expenses, nil
}

// loadShares runs query and groups (expense_id, member_id, share) rows by expense.
func (s *SQLiteStore) loadShares(ctx context.Context, query string, arg string) (map[string]map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense shares: %w", err)
	}
	defer rows.Close()

	shares := make(map[string]map[string]float64)
	for rows.Next() {
		var expenseID, memberID string
		var share float64
		if err := rows.Scan(&expenseID, &memberID, &share); err != nil {
			return nil, fmt.Errorf("failed to scan expense share: %w", err)
		}
		if shares[expenseID] == nil {
			shares[expenseID] = make(map[string]float64)
		}
		shares[expenseID][memberID] = share
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense shares: %w", err)
	}
	return shares, nil
}

// DeleteExpense removes a single expense. Other expenses are untouched.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	if err := s.exists(ctx, "expenses", expenseID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_shares WHERE expense_id = ?", expenseID); err != nil {
		return fmt.Errorf("failed to delete expense shares: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
