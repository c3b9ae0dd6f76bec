// seed inserts a development admin account for local testing.
// Idempotent: skips the insert if admin@estatehub.local already exists.
package main

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/config"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/db"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/security"
	userdomain "github.com/ArtemkaGoldMan/estate-hub-sub001/internal/user/domain"
	userrepo "github.com/ArtemkaGoldMan/estate-hub-sub001/internal/user/repository"
)

const (
	adminEmail    = "admin@estatehub.local"
	adminPassword = "admin-password-123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	users := userrepo.NewPostgresRepository(conn)

	existing, err := users.GetByEmail(ctx, adminEmail, true)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if existing != nil {
		log.Println("Seed already applied (admin@estatehub.local exists). Skipping.")
		os.Exit(0)
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	passwordHash, err := hasher.Hash([]byte(adminPassword))
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	id := uuid.NewString()
	admin := &userdomain.User{
		ID:             id,
		Email:          adminEmail,
		Username:       userdomain.GenerateUsername(adminEmail, id),
		DisplayName:    "EstateHub Admin",
		PasswordHash:   passwordHash,
		Role:           userdomain.RoleAdmin,
		EmailConfirmed: true,
	}
	if _, err := users.Create(ctx, admin); err != nil {
		log.Fatalf("create admin: %v", err)
	}

	log.Printf("Seeded admin account %s (password: %s)", adminEmail, adminPassword)
}
