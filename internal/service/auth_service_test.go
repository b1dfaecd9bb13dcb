package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/api"
)

func TestRegisterLoginMe(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	reg, err := c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:       "ana@example.com",
		DisplayName: "Ana",
		Password:    "password123",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if reg.Msg.Token == "" || reg.Msg.ExpiresAt == 0 {
		t.Errorf("expected a token with expiry, got %+v", reg.Msg)
	}

	login, err := c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "ana@example.com", Password: "password123"}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.Msg.User.ID != reg.Msg.User.ID {
		t.Errorf("expected same user, got %s and %s", login.Msg.User.ID, reg.Msg.User.ID)
	}

	meReq := connect.NewRequest(&api.MeRequest{})
	meReq.Header().Set("Authorization", "Bearer "+login.Msg.Token)
	me, err := c.auth.Me(ctx, meReq)
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if me.Msg.User.Email != "ana@example.com" || me.Msg.User.DisplayName != "Ana" {
		t.Errorf("unexpected user %+v", me.Msg.User)
	}
}

func TestAuthErrors(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	if _, err := c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email: "ana@example.com", Password: "password123",
	})); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name string
		call func() error
		want connect.Code
	}{
		{
			name: "duplicate email",
			call: func() error {
				_, err := c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{Email: "ana@example.com", Password: "password123"}))
				return err
			},
			want: connect.CodeAlreadyExists,
		},
		{
			name: "weak password",
			call: func() error {
				_, err := c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{Email: "bo@example.com", Password: "short"}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "wrong password",
			call: func() error {
				_, err := c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "ana@example.com", Password: "nope-nope"}))
				return err
			},
			want: connect.CodeUnauthenticated,
		},
		{
			name: "unknown email",
			call: func() error {
				_, err := c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "who@example.com", Password: "password123"}))
				return err
			},
			want: connect.CodeUnauthenticated,
		},
		{
			name: "me without token",
			call: func() error {
				_, err := c.auth.Me(ctx, connect.NewRequest(&api.MeRequest{}))
				return err
			},
			want: connect.CodeUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertCode(t, tt.call(), tt.want)
		})
	}
}
