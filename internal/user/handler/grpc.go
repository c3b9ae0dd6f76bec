package handler

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	userv1 "github.com/ArtemkaGoldMan/estate-hub-sub001/api/generated/user/v1"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/auth/service"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/rbac"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/server/interceptors"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/user/domain"
)

// AuthService is the subset of the auth service used by the gRPC surface.
type AuthService interface {
	UserIDFromToken(ctx context.Context, accessToken string) (string, error)
	GetUserByID(ctx context.Context, id string, includeDeleted bool) (*domain.User, error)
	GetUsersByIDs(ctx context.Context, ids []string, includeDeleted bool) ([]*domain.User, error)
}

// Server implements UserService (proto server) for user lookups by other
// EstateHub services.
// Proto: api/proto/user/v1/user.proto → internal/user/handler.
type Server struct {
	userv1.UnimplementedUserServiceServer
	auth AuthService
}

// NewServer returns a new User gRPC server.
func NewServer(auth AuthService) *Server {
	return &Server{auth: auth}
}

// GetUserIdFromToken resolves the caller's Bearer token to the user id it was
// issued for. The token must belong to a live session.
func (s *Server) GetUserIdFromToken(ctx context.Context, req *userv1.GetUserIdFromTokenRequest) (*userv1.GetUserIdFromTokenResponse, error) {
	token := interceptors.ExtractBearer(ctx)
	if token == "" {
		return nil, status.Error(codes.Unauthenticated, "missing or invalid authorization")
	}
	userID, err := s.auth.UserIDFromToken(ctx, token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSession) {
			return nil, status.Error(codes.Unauthenticated, "missing or invalid authorization")
		}
		return nil, status.Error(codes.Internal, "failed to resolve token")
	}
	return &userv1.GetUserIdFromTokenResponse{UserId: userID}, nil
}

// GetUserById returns a user by id. Caller must be authenticated.
func (s *Server) GetUserById(ctx context.Context, req *userv1.GetUserRequest) (*userv1.GetUserResponse, error) {
	if _, err := rbac.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}
	id := strings.TrimSpace(req.GetId())
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	u, err := s.auth.GetUserByID(ctx, id, req.GetIncludeDeleted())
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return nil, status.Error(codes.NotFound, "user not found")
		}
		return nil, status.Error(codes.Internal, "failed to look up user")
	}
	return &userv1.GetUserResponse{
		User: domainUserToProto(u.Projection(callerView(ctx))),
	}, nil
}

// GetUsersByIds returns the users matching the given ids. Ids with no
// matching user are skipped rather than failing the call.
func (s *Server) GetUsersByIds(ctx context.Context, req *userv1.GetUsersRequest) (*userv1.GetUsersResponse, error) {
	if _, err := rbac.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}
	ids := req.GetIds()
	if len(ids) == 0 {
		return nil, status.Error(codes.InvalidArgument, "ids required")
	}
	users, err := s.auth.GetUsersByIDs(ctx, ids, req.GetIncludeDeleted())
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to look up users")
	}
	view := callerView(ctx)
	out := make([]*userv1.User, 0, len(users))
	for _, u := range users {
		out = append(out, domainUserToProto(u.Projection(view)))
	}
	return &userv1.GetUsersResponse{Users: out}, nil
}

// callerView maps the caller's role to the user view it may see: admins get
// role data, everyone else the basic profile projection.
func callerView(ctx context.Context) domain.View {
	if role, ok := interceptors.GetRole(ctx); ok && domain.Role(role) == domain.RoleAdmin {
		return domain.ViewWithRole
	}
	return domain.ViewBasic
}

func domainUserToProto(u *domain.User) *userv1.User {
	if u == nil {
		return nil
	}
	return &userv1.User{
		Id:             u.ID,
		Email:          u.Email,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		Role:           string(u.Role),
		EmailConfirmed: u.EmailConfirmed,
		IsDeleted:      u.IsDeleted,
		Avatar:         u.Avatar,
	}
}
