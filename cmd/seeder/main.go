package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mavikus/quizduel/internal/database"
	"github.com/mavikus/quizduel/internal/players"
	"github.com/mavikus/quizduel/internal/questions"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"QUESTIONS_PATH": "./questions/competition_questions.json",
		"MIGRATIONS_DIR": "./migrations",
	}
	required := []string{"DB_NAME"}
	optional := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN", "QUESTIONS_PATH", "MIGRATIONS_DIR"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	for _, key := range optional {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	startTime := time.Now()

	lessons, err := questions.Load(cfg["QUESTIONS_PATH"])
	if err != nil {
		log.Fatalf("Failed to load question catalog: %s", err)
	}
	questionStore := questions.New(db)
	if err := questionStore.Seed(lessons); err != nil {
		log.Fatalf("Failed to seed question sets: %s", err)
	}

	// A few dummy players so the matchmaking endpoints have identities to
	// work with right away.
	playerStore := players.New(db)
	dummyPlayers := []players.PlayerInfo{
		{ID: "player-1", DisplayName: "Seeder Player A", AvatarRef: "pp_1"},
		{ID: "player-2", DisplayName: "Seeder Player B", AvatarRef: "pp_2"},
		{ID: "player-3", DisplayName: "Seeder Player C", AvatarRef: "pp_3"},
		{ID: "player-4", DisplayName: "Seeder Player D", AvatarRef: "pp_4"},
	}
	for _, p := range dummyPlayers {
		if err := playerStore.Upsert(p); err != nil {
			log.Fatalf("Failed to insert dummy player %s: %s", p.DisplayName, err)
		}
	}
	log.Info("Ensured dummy players exist.")

	log.Info("Seeding finished.", "lessons", len(lessons), "duration", time.Since(startTime))
}
