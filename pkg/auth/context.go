package auth

import (
	"context"

	"naftwatch.dz/fuel-monitor-service/pkg/models"
)

type ctxKey string

const (
	userKey ctxKey = "userClaims"
)

// Claims is the identity a session provider yields at login: who the user
// is, which visibility tier they belong to, and which company/station they
// are pinned to.
type Claims struct {
	Subject   string
	Role      models.Role
	CompanyID *uint
	StationID *uint
}

func (c Claims) HasRole(role models.Role) bool {
	return c.Role == role
}

func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, userKey, c)
}

func FromContext(ctx context.Context) Claims {
	if v, ok := ctx.Value(userKey).(Claims); ok {
		return v
	}
	return Claims{}
}

func Subject(ctx context.Context) string {
	return FromContext(ctx).Subject
}
