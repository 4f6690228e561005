// Package contexthelpers carries request-scoped values through the handler
// chain with typed accessors.
package contexthelpers

import (
	"context"
	"net/http"
)

type contextKey string

const (
	isAuthenticatedContextKey     = contextKey("isAuthenticated")
	authenticatedUserIDContextKey = contextKey("authenticatedUserID")
)

// AuthenticateContext marks the request as belonging to the given user.
func AuthenticateContext(r *http.Request, userID int64) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, isAuthenticatedContextKey, true)
	ctx = context.WithValue(ctx, authenticatedUserIDContextKey, userID)
	return r.WithContext(ctx)
}

func IsAuthenticated(ctx context.Context) bool {
	isAuthenticated, ok := ctx.Value(isAuthenticatedContextKey).(bool)
	if !ok {
		return false
	}
	return isAuthenticated
}

func AuthenticatedUserID(ctx context.Context) int64 {
	userID, ok := ctx.Value(authenticatedUserIDContextKey).(int64)
	if !ok {
		return 0
	}
	return userID
}
