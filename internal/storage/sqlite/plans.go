package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// CreatePlan persists a new plan.
func (s *SQLiteStore) CreatePlan(ctx context.Context, plan *models.Plan) error {
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	if plan.CreatedAt == 0 {
		plan.CreatedAt = time.Now().Unix()
	}

	var lat, lng interface{}
	if plan.Location != nil {
		lat, lng = plan.Location.Lat, plan.Location.Lng
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO plans (id, group_id, title, description, lat, lng, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		plan.ID, plan.GroupID, plan.Title, plan.Description, lat, lng, plan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}
	return nil
}

// GetPlan retrieves a plan by ID.
func (s *SQLiteStore) GetPlan(ctx context.Context, planID string) (*models.Plan, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, group_id, title, description, lat, lng, created_at FROM plans WHERE id = ?",
		planID,
	)
	plan, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: plan %s", storage.ErrNotFound, planID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return plan, nil
}

// ListPlansByGroup retrieves all plans of a group in creation order.
func (s *SQLiteStore) ListPlansByGroup(ctx context.Context, groupID string) ([]*models.Plan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, title, description, lat, lng, created_at
		 FROM plans WHERE group_id = ? ORDER BY created_at, rowid`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans by group: %w", err)
	}
	defer rows.Close()

	var plans []*models.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plans: %w", err)
	}
	return plans, nil
}

// SetPlanLocation stores the map location of a plan.
func (s *SQLiteStore) SetPlanLocation(ctx context.Context, planID string, loc models.Location) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE plans SET lat = ?, lng = ? WHERE id = ?",
		loc.Lat, loc.Lng, planID,
	)
	if err != nil {
		return fmt.Errorf("failed to update plan location: %w", err)
	}
	return expectOneRow(res, "plan", planID)
}

// DeletePlan removes a plan with its notes, expenses and settlements.
func (s *SQLiteStore) DeletePlan(ctx context.Context, planID string) error {
	if err := s.exists(ctx, "plans", planID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deletePlanTx(ctx, tx, planID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// deletePlanTx deletes children explicitly so the cascade does not depend on
// the foreign_keys pragma.
func deletePlanTx(ctx context.Context, tx *sql.Tx, planID string) error {
	stmts := []struct {
		what  string
		query string
	}{
		{"expense shares", "DELETE FROM expense_shares WHERE expense_id IN (SELECT id FROM expenses WHERE plan_id = ?)"},
		{"expenses", "DELETE FROM expenses WHERE plan_id = ?"},
		{"settlements", "DELETE FROM settlements WHERE plan_id = ?"},
		{"notes", "DELETE FROM notes WHERE plan_id = ?"},
		{"plan", "DELETE FROM plans WHERE id = ?"},
	}
	for _, st := range stmts {
		if _, err := tx.ExecContext(ctx, st.query, planID); err != nil {
			return fmt.Errorf("failed to delete %s: %w", st.what, err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*models.Plan, error) {
	plan := &models.Plan{}
	var lat, lng sql.NullFloat64
	if err := row.Scan(&plan.ID, &plan.GroupID, &plan.Title, &plan.Description, &lat, &lng, &plan.CreatedAt); err != nil {
		return nil, err
	}
	if lat.Valid && lng.Valid {
		plan.Location = &models.Location{Lat: lat.Float64, Lng: lng.Float64}
	}
	return plan, nil
}

// CreateNote persists a new note on a plan.
func (s *SQLiteStore) CreateNote(ctx context.Context, note *models.Note) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if note.CreatedAt == 0 {
		note.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (id, plan_id, content, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		note.ID, note.PlanID, note.Content, note.CreatedBy, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

// GetNote retrieves a note by ID.
func (s *SQLiteStore) GetNote(ctx context.Context, noteID string) (*models.Note, error) {
	note := &models.Note{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, plan_id, content, created_by, created_at, updated_at FROM notes WHERE id = ?",
		noteID,
	).Scan(&note.ID, &note.PlanID, &note.Content, &note.CreatedBy, &note.CreatedAt, &note.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: note %s", storage.ErrNotFound, noteID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return note, nil
}

// UpdateNote replaces the content of a note.
func (s *SQLiteStore) UpdateNote(ctx context.Context, noteID, content string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE notes SET content = ?, updated_at = ? WHERE id = ?",
		content, time.Now().Unix(), noteID,
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return expectOneRow(res, "note", noteID)
}

// DeleteNote removes a note by ID.
func (s *SQLiteStore) DeleteNote(ctx context.Context, noteID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", noteID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return expectOneRow(res, "note", noteID)
}

// ListNotesByPlan retrieves all notes of a plan in creation order.
func (s *SQLiteStore) ListNotesByPlan(ctx context.Context, planID string) ([]*models.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, plan_id, content, created_by, created_at, updated_at
		 FROM notes WHERE plan_id = ? ORDER BY created_at, rowid`,
		planID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes by plan: %w", err)
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(&note.ID, &note.PlanID, &note.Content, &note.CreatedBy, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}
	return notes, nil
}

func expectOneRow(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", storage.ErrNotFound, what, id)
	}
	return nil
}
