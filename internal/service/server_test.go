package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/tripsplit/internal/api"
	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/storage/sqlite"
)

const testUserHeader = "X-Test-User"

// testAuthInterceptor trusts the X-Test-User header as the caller's member ID.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if user := req.Header().Get(testUserHeader); user != "" {
				ctx = middleware.WithIdentity(ctx, user, user+"@example.com")
			}
			return next(ctx, req)
		}
	}
}

// as builds a request made by member user.
func as[T any](user string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set(testUserHeader, user)
	return req
}

type testClients struct {
	store    *sqlite.SQLiteStore
	auth     *api.AuthServiceClient
	groups   *api.GroupServiceClient
	plans    *api.PlanServiceClient
	expenses *api.ExpenseServiceClient
}

// setupTestServer serves every service over httptest against a temp SQLite file.
func setupTestServer(t *testing.T) *testClients {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "tripsplit-service-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	interceptors := connect.WithInterceptors(testAuthInterceptor())
	mux := http.NewServeMux()
	mux.Handle(api.NewAuthServiceHandler(
		NewAuthService(authenticator, jwtManager, store, logger),
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager)),
	))
	mux.Handle(api.NewGroupServiceHandler(NewGroupService(store), interceptors))
	mux.Handle(api.NewPlanServiceHandler(NewPlanService(store), interceptors))
	mux.Handle(api.NewExpenseServiceHandler(NewExpenseService(store), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testClients{
		store:    store,
		auth:     api.NewAuthServiceClient(http.DefaultClient, server.URL),
		groups:   api.NewGroupServiceClient(http.DefaultClient, server.URL),
		plans:    api.NewPlanServiceClient(http.DefaultClient, server.URL),
		expenses: api.NewExpenseServiceClient(http.DefaultClient, server.URL),
	}
}

// createGroup creates a group owned by owner and adds the other members.
func (c *testClients) createGroup(t *testing.T, owner string, others ...string) api.Group {
	t.Helper()
	ctx := context.Background()

	resp, err := c.groups.CreateGroup(ctx, as(owner, &api.CreateGroupRequest{Name: "Trip"}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	group := resp.Msg.Group
	for _, m := range others {
		added, err := c.groups.AddMember(ctx, as(owner, &api.AddMemberRequest{
			GroupID:  group.ID,
			MemberID: m,
			Label:    m + "@example.com",
		}))
		if err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		group = added.Msg.Group
	}
	return group
}

func (c *testClients) createPlan(t *testing.T, user, groupID string) api.Plan {
	t.Helper()
	resp, err := c.plans.CreatePlan(context.Background(), as(user, &api.CreatePlanRequest{GroupID: groupID, Title: "Day trip"}))
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}
	return resp.Msg.Plan
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("expected code %v, got %v (%v)", want, got, err)
	}
}
