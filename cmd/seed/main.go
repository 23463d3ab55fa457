// seed inserts a verified admin user and a sample project into the local
// dev database. Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/adilbekov/timetrack/internal/credential"
	"github.com/adilbekov/timetrack/internal/domain"
	"github.com/adilbekov/timetrack/internal/infrastructure/postgres"
	"github.com/google/uuid"
)

const (
	seedEmail    = "admin@test.local"
	seedPassword = "adminadmin"
	seedProject  = "Internal"
)

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hashed, err := credential.HashFrom(seedPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	now := time.Now()

	// Upsert the admin as already verified so it can log in immediately.
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, status, roles, verification_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULL, $6, $6)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		uuid.Must(uuid.NewV7()).String(), seedEmail, hashed.String(),
		domain.UserStatusActive, []string{string(domain.RoleUser), string(domain.RoleAdmin)}, now,
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert admin user: %v", err)
	}

	var projectID string
	err = pool.QueryRow(ctx, `
		INSERT INTO projects (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING id`,
		uuid.Must(uuid.NewV7()).String(), seedProject, now,
	).Scan(&projectID)
	if err != nil {
		log.Fatalf("insert project: %v", err)
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Admin:      %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  Admin ID:   %s\n", userID)
	fmt.Printf("  Project ID: %s\n", projectID)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/auth/token \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println()
	fmt.Println("  Step 2 — start a job against the project:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Printf("    curl -s -X POST http://localhost:8080/job/start \\\n")
	fmt.Printf("      -H \"Authorization: Bearer $JWT\" -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"description\":\"first session\",\"projectId\":\"%s\"}'\n", projectID)
	fmt.Println()
	fmt.Println("  Step 3 — finish it and check the rollup:")
	fmt.Println()
	fmt.Println("    curl -s -X PATCH http://localhost:8080/job/finish \\")
	fmt.Println("      -H \"Authorization: Bearer $JWT\" -H 'Content-Type: application/json' \\")
	fmt.Println("      -d '{\"jobId\":\"JOB_ID\"}'")
	fmt.Println("    curl -s http://localhost:8080/job/working-time -H \"Authorization: Bearer $JWT\"")
}
