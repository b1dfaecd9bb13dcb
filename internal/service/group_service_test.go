package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/api"
)

func TestCreateGroup(t *testing.T) {
	c := setupTestServer(t)

	resp, err := c.groups.CreateGroup(context.Background(), as("alice", &api.CreateGroupRequest{Name: "  Lisbon  "}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	group := resp.Msg.Group
	if group.ID == "" {
		t.Error("expected group ID to be set")
	}
	if group.Name != "Lisbon" {
		t.Errorf("expected trimmed name, got %q", group.Name)
	}
	if len(group.Members) != 1 || group.Members[0].ID != "alice" {
		t.Fatalf("expected creator as only member, got %+v", group.Members)
	}
	if group.Members[0].Label != "alice@example.com" {
		t.Errorf("expected creator label to be email, got %q", group.Members[0].Label)
	}
}

func TestCreateGroup_Validation(t *testing.T) {
	c := setupTestServer(t)

	_, err := c.groups.CreateGroup(context.Background(), as("alice", &api.CreateGroupRequest{Name: "   "}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = c.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{Name: "x"}))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestGetGroup(t *testing.T) {
	c := setupTestServer(t)
	group := c.createGroup(t, "alice", "bob")
	ctx := context.Background()

	t.Run("member sees group in join order", func(t *testing.T) {
		resp, err := c.groups.GetGroup(ctx, as("bob", &api.GetGroupRequest{GroupID: group.ID}))
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		got := resp.Msg.Group.Members
		if len(got) != 2 || got[0].ID != "alice" || got[1].ID != "bob" {
			t.Errorf("unexpected members %+v", got)
		}
	})

	t.Run("non-member is denied", func(t *testing.T) {
		_, err := c.groups.GetGroup(ctx, as("mallory", &api.GetGroupRequest{GroupID: group.ID}))
		assertCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("unknown group", func(t *testing.T) {
		_, err := c.groups.GetGroup(ctx, as("alice", &api.GetGroupRequest{GroupID: "missing"}))
		assertCode(t, err, connect.CodeNotFound)
	})
}

func TestListGroups(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	c.createGroup(t, "alice", "bob")
	c.createGroup(t, "alice")
	c.createGroup(t, "carol")

	tests := []struct {
		user string
		want int
	}{
		{user: "alice", want: 2},
		{user: "bob", want: 1},
		{user: "dave", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			resp, err := c.groups.ListGroups(ctx, as(tt.user, &api.ListGroupsRequest{}))
			if err != nil {
				t.Fatalf("ListGroups failed: %v", err)
			}
			if len(resp.Msg.Groups) != tt.want {
				t.Errorf("expected %d groups, got %d", tt.want, len(resp.Msg.Groups))
			}
		})
	}
}

func TestAddMember(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := c.createGroup(t, "alice")

	t.Run("by email of a registered user", func(t *testing.T) {
		reg, err := c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email:    "bob@example.com",
			Password: "password123",
		}))
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		resp, err := c.groups.AddMember(ctx, as("alice", &api.AddMemberRequest{GroupID: group.ID, Email: "BOB@example.com"}))
		if err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		members := resp.Msg.Group.Members
		last := members[len(members)-1]
		if last.ID != reg.Msg.User.ID || last.Label != "bob@example.com" {
			t.Errorf("unexpected new member %+v", last)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := c.groups.AddMember(ctx, as("alice", &api.AddMemberRequest{GroupID: group.ID, Email: "nobody@example.com"}))
		assertCode(t, err, connect.CodeNotFound)
	})

	t.Run("by id without label falls back to the id", func(t *testing.T) {
		resp, err := c.groups.AddMember(ctx, as("alice", &api.AddMemberRequest{GroupID: group.ID, MemberID: "carol"}))
		if err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		members := resp.Msg.Group.Members
		if last := members[len(members)-1]; last.ID != "carol" || last.Label != "carol" {
			t.Errorf("unexpected new member %+v", last)
		}
	})

	t.Run("adding twice keeps one entry", func(t *testing.T) {
		resp, err := c.groups.AddMember(ctx, as("alice", &api.AddMemberRequest{GroupID: group.ID, MemberID: "carol", Label: "Carol"}))
		if err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		count := 0
		for _, m := range resp.Msg.Group.Members {
			if m.ID == "carol" {
				count++
				if m.Label != "Carol" {
					t.Errorf("expected label to be refreshed, got %q", m.Label)
				}
			}
		}
		if count != 1 {
			t.Errorf("expected carol once, got %d", count)
		}
	})

	t.Run("adding again without label keeps the label", func(t *testing.T) {
		resp, err := c.groups.AddMember(ctx, as("alice", &api.AddMemberRequest{GroupID: group.ID, MemberID: "carol"}))
		if err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		for _, m := range resp.Msg.Group.Members {
			if m.ID == "carol" && m.Label != "Carol" {
				t.Errorf("expected label Carol to survive, got %q", m.Label)
			}
		}
	})

	t.Run("missing member", func(t *testing.T) {
		_, err := c.groups.AddMember(ctx, as("alice", &api.AddMemberRequest{GroupID: group.ID}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("non-member cannot invite", func(t *testing.T) {
		_, err := c.groups.AddMember(ctx, as("mallory", &api.AddMemberRequest{GroupID: group.ID, MemberID: "mallory"}))
		assertCode(t, err, connect.CodePermissionDenied)
	})
}

func TestDeleteGroup(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := c.createGroup(t, "alice", "bob")
	plan := c.createPlan(t, "alice", group.ID)

	_, err := c.groups.DeleteGroup(ctx, as("mallory", &api.DeleteGroupRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodePermissionDenied)

	if _, err := c.groups.DeleteGroup(ctx, as("bob", &api.DeleteGroupRequest{GroupID: group.ID})); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}

	_, err = c.groups.GetGroup(ctx, as("alice", &api.GetGroupRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = c.plans.GetPlan(ctx, as("alice", &api.GetPlanRequest{PlanID: plan.ID}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = c.groups.DeleteGroup(ctx, as("alice", &api.DeleteGroupRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodeNotFound)
}
