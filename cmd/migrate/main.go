package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/saeid-a/TennisCoachBack/internal/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dbUrl := os.Getenv("DB_URL")
	if dbUrl == "" {
		log.Fatal("DB_URL environment variable is required")
	}

	migrationsPath, err := database.FindMigrationsDir(os.Getenv("MIGRATIONS_PATH"))
	if err != nil {
		log.Fatal(err)
	}

	cmd := database.MigrateUp
	if len(os.Args) > 1 {
		cmd = database.MigrationDirection(os.Args[1])
	}
	if cmd != database.MigrateUp && cmd != database.MigrateDown {
		log.Fatalf("usage: migrate [up|down], got %q", cmd)
	}

	if err := database.RunMigrations(dbUrl, migrationsPath, cmd); err != nil {
		log.Fatal(err)
	}
	log.Printf("Migration %s successful", cmd)
}
