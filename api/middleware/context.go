package middleware

import (
	"context"

	"github.com/tahweela/tahweela-backend/pkg/enums"
)

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxUserType  contextKey = "user_type"
	ctxSessionID contextKey = "session_id"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func UserTypeFromContext(ctx context.Context) enums.UserType {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserType).(enums.UserType); ok {
		return v
	}
	return ""
}

// SessionIDFromContext returns the auth session bound to the access token.
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithIdentity seeds the context the way Auth does after a successful token check.
func WithIdentity(ctx context.Context, userID string, userType enums.UserType, sessionID string) context.Context {
	ctx = WithUserID(ctx, userID)
	ctx = context.WithValue(ctx, ctxUserType, userType)
	return context.WithValue(ctx, ctxSessionID, sessionID)
}
