package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey  contextKey = "user_id"
	RoleKey    contextKey = "role"
	TokenIDKey contextKey = "token_id"
)

// Actor is the authenticated caller attached to a request context.
type Actor struct {
	UserID  uuid.UUID
	Role    string
	TokenID string
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok && role != ""
}

func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok && tokenID != ""
}

// GetActorFromContext returns the caller set by the auth middleware.
func GetActorFromContext(ctx context.Context) (Actor, bool) {
	userID, ok := GetUserIDFromContext(ctx)
	if !ok {
		return Actor{}, false
	}
	role, ok := GetRoleFromContext(ctx)
	if !ok {
		return Actor{}, false
	}
	tokenID, _ := GetTokenIDFromContext(ctx)
	return Actor{UserID: userID, Role: role, TokenID: tokenID}, true
}

func SetActorContext(ctx context.Context, actor Actor) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, actor.UserID)
	ctx = context.WithValue(ctx, RoleKey, actor.Role)
	ctx = context.WithValue(ctx, TokenIDKey, actor.TokenID)
	return ctx
}
