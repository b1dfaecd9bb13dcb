// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tripsplit/internal/models"
)

// ErrNotFound is wrapped by every lookup of a missing record.
var ErrNotFound = errors.New("not found")

// Store defines the interface for trip data storage operations.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	UserStore
	GroupStore
	PlanStore
	ExpenseStore

	// Close releases any resources held by the store.
	Close() error
}

// UserStore persists registered accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail returns nil and no error if the email is unknown.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID returns nil and no error if the ID is unknown.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// GroupStore persists groups and their append-only membership.
type GroupStore interface {
	// CreateGroup persists a new group. ID and CreatedAt are filled in when empty.
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	// ListGroupsByMember returns the groups memberID belongs to, newest first.
	ListGroupsByMember(ctx context.Context, memberID string) ([]*models.Group, error)
	// AddGroupMember appends a member; adding an existing member updates its label.
	AddGroupMember(ctx context.Context, groupID, memberID, label string) error
	// DeleteGroup removes the group and all of its plans.
	DeleteGroup(ctx context.Context, groupID string) error
}

// PlanStore persists plans and their notes.
type PlanStore interface {
	CreatePlan(ctx context.Context, plan *models.Plan) error
	GetPlan(ctx context.Context, planID string) (*models.Plan, error)
	ListPlansByGroup(ctx context.Context, groupID string) ([]*models.Plan, error)
	SetPlanLocation(ctx context.Context, planID string, loc models.Location) error
	// DeletePlan removes the plan with its notes, expenses and settlements.
	DeletePlan(ctx context.Context, planID string) error

	CreateNote(ctx context.Context, note *models.Note) error
	GetNote(ctx context.Context, noteID string) (*models.Note, error)
	UpdateNote(ctx context.Context, noteID, content string) error
	DeleteNote(ctx context.Context, noteID string) error
	ListNotesByPlan(ctx context.Context, planID string) ([]*models.Note, error)
}

// ExpenseStore persists expenses and settlements of a plan.
type ExpenseStore interface {
	// CreateExpense persists an expense with its split mapping.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	// ListExpensesByPlan returns expenses in creation order.
	ListExpensesByPlan(ctx context.Context, planID string) ([]*models.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string) error

	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)
	ListSettlementsByPlan(ctx context.Context, planID string) ([]*models.Settlement, error)
	DeleteSettlement(ctx context.Context, settlementID string) error
}
