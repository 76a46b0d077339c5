package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"jobportal-api/config"
	"jobportal-api/internal/domain/entity"
	pginfra "jobportal-api/internal/infrastructure/postgres"
	"jobportal-api/pkg/helpers"
)

// Seeds the admin account. Admins have no registration endpoint, this is the
// only way one comes into existence. Safe to run repeatedly, the insert
// upserts on email.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	hash, err := helpers.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := &entity.Admin{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: hash,
	}
	if err := pginfra.NewAdminRepository(pool).Create(ctx, admin); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s name=%s\n", admin.ID, admin.Email, admin.Name)
}
