// Package middleware holds the Connect interceptors shared by every service.
package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/auth"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	emailKey  contextKey = "email"
)

// TokenValidator verifies a bearer token. *auth.JWTManager implements it.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// WithIdentity returns a context carrying the caller's member ID and email.
func WithIdentity(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, emailKey, email)
}

// GetUserID returns the authenticated member ID, or "" before authentication.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}

// GetEmail returns the authenticated email, or "".
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(emailKey).(string)
	return email
}

// RequireAuth rejects calls without a valid "Authorization: Bearer" token and
// puts the caller's identity on the context.
func RequireAuth(tokens TokenValidator) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			header := req.Header().Get("Authorization")
			if header == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithIdentity(ctx, claims.UserID, claims.Email), req)
		}
	}
}

// OptionalAuth adds the caller's identity when a valid bearer token is
// present and lets every call through otherwise. Handlers that need an
// identity check GetUserID themselves.
func OptionalAuth(tokens TokenValidator) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			scheme, token, ok := strings.Cut(req.Header().Get("Authorization"), " ")
			if ok && strings.EqualFold(scheme, "Bearer") && token != "" {
				if claims, err := tokens.Validate(token); err == nil {
					ctx = WithIdentity(ctx, claims.UserID, claims.Email)
				}
			}
			return next(ctx, req)
		}
	}
}
