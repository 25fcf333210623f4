package main

import (
	"fmt"
	"log"
	"os"

	"bincycle-backend/internal/database"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Get database URL
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	// Connect to database
	db, err := database.Connect(dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run the schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration completed successfully!")

	// Query and display summary
	var result struct {
		Properties  int `db:"properties"`
		Jobs        int `db:"jobs"`
		ServiceLogs int `db:"service_logs"`
		Users       int `db:"users"`
	}

	query := `
		SELECT
			(SELECT COUNT(*) FROM properties)   AS properties,
			(SELECT COUNT(*) FROM jobs)         AS jobs,
			(SELECT COUNT(*) FROM service_logs) AS service_logs,
			(SELECT COUNT(*) FROM users)        AS users
	`

	if err := db.Get(&result, query); err != nil {
		log.Fatalf("Failed to query summary: %v", err)
	}

	// Display results
	fmt.Println("\n============================================================")
	fmt.Println("MIGRATION SUMMARY")
	fmt.Println("============================================================")
	fmt.Printf("Properties:   %d\n", result.Properties)
	fmt.Printf("Jobs:         %d\n", result.Jobs)
	fmt.Printf("Service logs: %d\n", result.ServiceLogs)
	fmt.Printf("Users:        %d\n", result.Users)
	fmt.Println("============================================================")
}
