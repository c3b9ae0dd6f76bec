package server

import (
	"testing"

	"google.golang.org/grpc"

	userv1 "github.com/ArtemkaGoldMan/estate-hub-sub001/api/generated/user/v1"
)

// mockServiceRegistrar implements grpc.ServiceRegistrar for testing.
type mockServiceRegistrar struct {
	services []string
}

func (m *mockServiceRegistrar) RegisterService(desc *grpc.ServiceDesc, impl interface{}) {
	m.services = append(m.services, desc.ServiceName)
}

func TestRegisterServices(t *testing.T) {
	mockReg := &mockServiceRegistrar{}

	RegisterServices(mockReg, Deps{})

	if len(mockReg.services) != 1 {
		t.Fatalf("RegisterService called %d times, want 1", len(mockReg.services))
	}
	if mockReg.services[0] != "user.v1.UserService" {
		t.Errorf("registered %q, want user.v1.UserService", mockReg.services[0])
	}
}

func TestPublicMethods_TokenLookupIsPublic(t *testing.T) {
	pub := PublicMethods()
	if !pub[userv1.UserService_GetUserIdFromToken_FullMethodName] {
		t.Error("GetUserIdFromToken should be public")
	}
	if pub[userv1.UserService_GetUserById_FullMethodName] {
		t.Error("GetUserById should require authentication")
	}
}
