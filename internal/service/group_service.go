package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/api"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// GroupService implements api.GroupServiceHandler.
type GroupService struct {
	store storage.Store
}

var _ api.GroupServiceHandler = (*GroupService)(nil)

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group with the caller as its first member.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Msg.Name)
	slog.Info("CreateGroup request received", "name", name, "user_id", userID)
	if name == "" {
		return nil, invalidArgument("group name required")
	}

	group := &models.Group{
		Name:          name,
		Members:       []string{userID},
		MemberDetails: map[string]string{},
		CreatedBy:     userID,
	}
	if email := middleware.GetEmail(ctx); email != "" {
		group.MemberDetails[userID] = email
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group created", "group_id", group.ID)
	return connect.NewResponse(&api.GroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup returns a group the caller belongs to.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	group, err := memberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		slog.Warn("GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups returns every group the caller belongs to, newest first.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroupsByMember(ctx, userID)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]api.Group, len(groups))
	for i, g := range groups {
		out[i] = toAPIGroup(g)
	}

	slog.Info("ListGroups successful", "count", len(groups))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// AddMember invites a member into the group. Membership is append-only;
// adding an existing member only refreshes a non-empty label.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.GroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	group, err := memberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	memberID, label := strings.TrimSpace(req.Msg.MemberID), strings.TrimSpace(req.Msg.Label)
	if email := strings.TrimSpace(req.Msg.Email); email != "" {
		user, err := s.store.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, toConnectError(err)
		}
		if user == nil {
			return nil, toConnectError(fmt.Errorf("%w: user %s", storage.ErrNotFound, email))
		}
		memberID, label = user.ID, user.Label()
	}
	if memberID == "" {
		return nil, invalidArgument("member id or email required")
	}

	slog.Info("AddMember request received", "group_id", group.ID, "member_id", memberID)
	if err := s.store.AddGroupMember(ctx, group.ID, memberID, label); err != nil {
		slog.Error("AddMember failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	updated, err := s.store.GetGroup(ctx, group.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GroupResponse{Group: toAPIGroup(updated)}), nil
}

// DeleteGroup removes a group with all of its plans.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	group, err := memberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.DeleteGroup(ctx, group.ID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group deleted", "group_id", group.ID)
	return connect.NewResponse(&api.DeleteResponse{}), nil
}
