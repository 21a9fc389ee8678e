package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sura-dev/sura/db"
	"github.com/sura-dev/sura/internal/auth"
	"github.com/sura-dev/sura/internal/notify"
	"github.com/sura-dev/sura/internal/router"
	"github.com/sura-dev/sura/internal/routing"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Error initializing JWT secret: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := db.SeedNGOs(); err != nil {
		log.Fatalf("Failed to seed NGO directory: %v", err)
	}

	baseURL := os.Getenv("BASE_URL")

	if baseURL == "" {
		baseURL = "http://localhost:3000"
		log.Println("BASE_URL not set, defaulting to http://localhost:3000")
	}

	engine := routing.NewEngine(db.DB, notify.NewMailerFromEnv(), baseURL)

	r := router.NewRouter(engine)

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
