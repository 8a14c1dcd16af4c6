// Seed inserts a demo user and journey for local development.
package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/sharejourney-api/config"
	"github.com/oksasatya/sharejourney-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@sharejourney.local"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (username, first_name, last_name, email, password_hash, is_active)
		VALUES ('demoUser', 'Demo', 'User', $1, $2, TRUE)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, email, hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	var journeyID string
	err = db.QueryRow(`
		INSERT INTO journeys (creator_id, name, background, start_location, end_location, departure_time, distance, active)
		VALUES ($1, 'South coast loop', 'Weekend ride along the coast', 'Jakarta', 'Pelabuhan Ratu', '07:00', '120 km', TRUE)
		RETURNING id
	`, userID).Scan(&journeyID)
	if err != nil {
		log.Fatalf("failed to seed journey: %v", err)
	}
	fmt.Printf("seeded journey: id=%s creator=%s\n", journeyID, userID)
}
