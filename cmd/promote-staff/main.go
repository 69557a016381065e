package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/velimir/safekeep-api/internal/config"
	"github.com/velimir/safekeep-api/internal/database"
	"github.com/velimir/safekeep-api/internal/models"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Println("Usage: promote-staff <email> <STAFF|ADMIN>")
		os.Exit(1)
	}

	email := os.Args[1]
	role := os.Args[2]

	if role != models.RoleStaff && role != models.RoleAdmin {
		log.Fatalf("Invalid role: %s (must be STAFF or ADMIN)", role)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	result, err := db.Pool.Exec(ctx, `
		UPDATE users SET role = $1, updated_at = NOW()
		WHERE email = $2
	`, role, email)
	if err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}

	if result.RowsAffected() == 0 {
		log.Fatalf("No user found with email: %s", email)
	}

	fmt.Printf("Successfully promoted %s to %s\n", email, role)
}
