package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/PJ-Pooja16/ReliefDAO/internal/auth"
	"github.com/PJ-Pooja16/ReliefDAO/internal/config"
	"github.com/PJ-Pooja16/ReliefDAO/internal/db"
	"github.com/PJ-Pooja16/ReliefDAO/internal/models"
)

func main() {
	email := flag.String("email", "admin@reliefdao.org", "admin email")
	name := flag.String("name", "Administrator", "admin display name")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}
	if err := auth.ValidatePassword(*password); err != nil {
		log.Fatalf("Invalid password: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &models.User{
		ID:           uuid.NewString(),
		Name:         *name,
		Email:        *email,
		Role:         models.RoleAdmin,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := database.CreateUser(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Println("Admin account created")
	fmt.Printf("Email: %s\n", *email)
	fmt.Printf("ID:    %s\n", admin.ID)
}
