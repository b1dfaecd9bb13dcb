// Package service implements the tripsplit Connect services.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

var (
	// ErrNotMember is returned when the caller does not belong to the group
	// owning the requested record.
	ErrNotMember = errors.New("caller is not a member of the group")

	errInvalidArgument = errors.New("invalid argument")
)

// invalidArgument builds a CodeInvalidArgument error with a formatted reason.
func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument,
		fmt.Errorf("%w: %s", errInvalidArgument, fmt.Sprintf(format, args...)))
}

// toConnectError maps domain errors onto Connect codes.
func toConnectError(err error) error {
	var connectErr *connect.Error
	switch {
	case errors.As(err, &connectErr):
		return err
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ErrNotMember):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, calculator.ErrInvalidInput),
		errors.Is(err, calculator.ErrUnnormalizedSplit),
		errors.Is(err, errInvalidArgument):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// callerID returns the authenticated member ID from ctx.
func callerID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// memberGroup loads a group and checks that userID belongs to it.
func memberGroup(ctx context.Context, store storage.GroupStore, groupID, userID string) (*models.Group, error) {
	if strings.TrimSpace(groupID) == "" {
		return nil, fmt.Errorf("%w: group id required", errInvalidArgument)
	}
	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, fmt.Errorf("%w: %s", ErrNotMember, groupID)
	}
	return group, nil
}

// planStore is the storage a plan-scoped authorization check needs.
type planStore interface {
	storage.GroupStore
	GetPlan(ctx context.Context, planID string) (*models.Plan, error)
}

// memberPlan loads a plan and its group, checking that userID belongs to the group.
func memberPlan(ctx context.Context, store planStore, planID, userID string) (*models.Plan, *models.Group, error) {
	if strings.TrimSpace(planID) == "" {
		return nil, nil, fmt.Errorf("%w: plan id required", errInvalidArgument)
	}
	plan, err := store.GetPlan(ctx, planID)
	if err != nil {
		return nil, nil, err
	}
	group, err := memberGroup(ctx, store, plan.GroupID, userID)
	if err != nil {
		return nil, nil, err
	}
	return plan, group, nil
}
