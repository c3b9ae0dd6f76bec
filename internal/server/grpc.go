package server

import (
	"google.golang.org/grpc"

	userv1 "github.com/ArtemkaGoldMan/estate-hub-sub001/api/generated/user/v1"

	userhandler "github.com/ArtemkaGoldMan/estate-hub-sub001/internal/user/handler"
)

// Deps holds service dependencies for gRPC handlers.
type Deps struct {
	// Auth backs UserService. Required.
	Auth userhandler.AuthService
}

// PublicMethods lists full method names the auth interceptor lets through
// without a decoded identity. GetUserIdFromToken validates its own bearer
// token against the session store, so the interceptor stays out of its way.
func PublicMethods() map[string]bool {
	return map[string]bool{
		userv1.UserService_GetUserIdFromToken_FullMethodName: true,
	}
}

// RegisterServices registers all proto gRPC services with the given server.
//
// Proto → handler mapping:
//   - UserService → internal/user/handler
func RegisterServices(s grpc.ServiceRegistrar, deps Deps) {
	userv1.RegisterUserServiceServer(s, userhandler.NewServer(deps.Auth))
}
