package middleware

import "context"

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "email"
	IsAdminKey   contextKey = "is_admin"
)

// SetUserContext sets user info into context (called by the auth gate).
func SetUserContext(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, UserIDKey, id)
}

// SetAdminContext additionally records email and the admin flag.
func SetAdminContext(ctx context.Context, id int, email string, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id)
	ctx = context.WithValue(ctx, UserEmailKey, email)
	return context.WithValue(ctx, IsAdminKey, isAdmin)
}

// GetUserIDFromContext retrieves the acting user id safely.
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(UserIDKey).(int)
	return id, ok
}

func GetUserEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(UserEmailKey).(string)
	return email
}

func IsAdminFromContext(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(IsAdminKey).(bool)
	return isAdmin
}
