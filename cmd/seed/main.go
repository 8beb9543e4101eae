package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"studio_cms/internal/common"
	"studio_cms/internal/common/security"
	"studio_cms/internal/domain/model"
	"studio_cms/internal/domain/repository"
	"studio_cms/internal/platform/config"
	"studio_cms/internal/platform/database"

	"github.com/google/uuid"
)

// Seeds the admin credential and default site settings. Safe to run
// more than once: an existing admin email is left untouched.
func main() {
	config.Load()

	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}
	if len(password) < 6 {
		log.Fatal("ADMIN_PASSWORD must be at least 6 characters")
	}

	database.Connect()
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := repository.NewPgUserRepository(database.DB)
	if _, err := userRepo.FindByEmail(ctx, email); err == nil {
		log.Printf("Admin user %s already exists, skipping", email)
	} else if !errors.Is(err, common.ErrNotFound) {
		log.Fatalf("Failed to check for existing admin: %v", err)
	} else {
		hash, err := security.HashPassword(password)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		user := &model.User{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: hash,
			Role:         model.RoleAdmin,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create admin user: %v", err)
		}
		log.Printf("Created admin user %s", email)
	}

	settingsRepo := repository.NewPgSettingsRepository(database.DB)
	if _, err := settingsRepo.Get(ctx); errors.Is(err, common.ErrNotFound) {
		settings := model.DefaultSiteSettings()
		settings.UpdatedAt = time.Now()
		if err := settingsRepo.Upsert(ctx, settings); err != nil {
			log.Fatalf("Failed to seed site settings: %v", err)
		}
		log.Println("Seeded default site settings")
	} else if err != nil {
		log.Fatalf("Failed to check site settings: %v", err)
	} else {
		log.Println("Site settings already present, skipping")
	}
}
