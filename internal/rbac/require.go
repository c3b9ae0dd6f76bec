// Package rbac holds the role checks shared by the HTTP and gRPC boundaries.
// Roles travel in token claims and reach handlers through the request context.
package rbac

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/server/interceptors"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/user/domain"
)

// RequireAuthenticated ensures the caller carries an identity in context.
// Returns the caller's user id, or Unauthenticated.
func RequireAuthenticated(ctx context.Context) (string, error) {
	userID, ok := interceptors.GetUserID(ctx)
	if !ok || userID == "" {
		return "", status.Error(codes.Unauthenticated, "authentication required")
	}
	return userID, nil
}

// RequireAdmin ensures the caller is authenticated and carries the admin
// role. Returns the caller's user id, or Unauthenticated/PermissionDenied.
func RequireAdmin(ctx context.Context) (string, error) {
	userID, err := RequireAuthenticated(ctx)
	if err != nil {
		return "", err
	}
	role, ok := interceptors.GetRole(ctx)
	if !ok || domain.Role(role) != domain.RoleAdmin {
		return "", status.Error(codes.PermissionDenied, "admin role required")
	}
	return userID, nil
}
