package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func Connect(dbURL string) (*sqlx.DB, error) {
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Println("🔌 DATABASE CONNECTION ATTEMPT")
	log.Printf("   📍 Database URL length: %d characters", len(dbURL))
	log.Printf("   📍 URL prefix: %s...", dbURL[:min(30, len(dbURL))])
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	log.Println("🔄 Step 1: Attempting sqlx.Connect()...")
	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ DATABASE CONNECTION FAILED AT sqlx.Connect()")
		log.Printf("   Error type: %T", err)
		log.Printf("   Error message: %v", err)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("✅ Step 1 Complete: sqlx.Connect() succeeded")

	log.Println("🔄 Step 2: Testing connection with Ping()...")
	if err := db.Ping(); err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ DATABASE CONNECTION FAILED AT Ping()")
		log.Printf("   Error type: %T", err)
		log.Printf("   Error message: %v", err)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Println("✅ Step 2 Complete: Ping() succeeded")

	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Println("✅ DATABASE CONNECTION SUCCESSFUL")
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	return db, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func Migrate(db *sqlx.DB) error {
	migrations := []string{
		// Create users table
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL CHECK(role IN ('admin', 'staff', 'client')),
			account_id TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create properties table
		// Schedule columns hold the raw portal strings ("Weekly"/"Fortnightly",
		// "Yes" flips, bin counts as text, put-out and collection weekday
		// names) - parsing happens at read time.
		`CREATE TABLE IF NOT EXISTS properties (
			id TEXT PRIMARY KEY,
			account_id TEXT,
			client_name TEXT NOT NULL DEFAULT '',
			company TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL,
			red_freq TEXT NOT NULL DEFAULT '',
			red_flip TEXT NOT NULL DEFAULT '',
			red_bins TEXT NOT NULL DEFAULT '',
			yellow_freq TEXT NOT NULL DEFAULT '',
			yellow_flip TEXT NOT NULL DEFAULT '',
			yellow_bins TEXT NOT NULL DEFAULT '',
			green_freq TEXT NOT NULL DEFAULT '',
			green_flip TEXT NOT NULL DEFAULT '',
			green_bins TEXT NOT NULL DEFAULT '',
			put_bins_out TEXT NOT NULL DEFAULT '',
			collection_day TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create jobs table
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			property_id TEXT,
			day_of_week TEXT NOT NULL,
			job_type TEXT NOT NULL CHECK(job_type IN ('put_out', 'bring_in')),
			last_completed_on BIGINT,
			skipped_on BIGINT,
			skipped_by TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (property_id) REFERENCES properties(id) ON DELETE SET NULL,
			FOREIGN KEY (skipped_by) REFERENCES users(id) ON DELETE SET NULL
		)`,

		// Create service_logs table
		`CREATE TABLE IF NOT EXISTS service_logs (
			id SERIAL PRIMARY KEY,
			job_id TEXT,
			address TEXT NOT NULL,
			done_on BIGINT NOT NULL,
			photo_path TEXT,
			gps_lat DOUBLE PRECISION,
			gps_lng DOUBLE PRECISION,
			notes TEXT,
			created_by TEXT,
			FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE SET NULL,
			FOREIGN KEY (created_by) REFERENCES users(id) ON DELETE SET NULL
		)`,

		// Create FCM tokens table
		`CREATE TABLE IF NOT EXISTS fcm_tokens (
			id SERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			token TEXT NOT NULL UNIQUE,
			platform TEXT NOT NULL CHECK(platform IN ('web', 'ios', 'android')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		// Create indexes
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_users_account_id ON users(account_id)`,
		`CREATE INDEX IF NOT EXISTS idx_properties_account_id ON properties(account_id)`,
		`CREATE INDEX IF NOT EXISTS idx_properties_collection_day ON properties(collection_day)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_property_id ON jobs(property_id)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_day_of_week ON jobs(day_of_week)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_service_logs_job_id ON service_logs(job_id)`,
		`CREATE INDEX IF NOT EXISTS idx_service_logs_done_on ON service_logs(done_on)`,
		`CREATE INDEX IF NOT EXISTS idx_service_logs_address ON service_logs(address)`,
		`CREATE INDEX IF NOT EXISTS idx_fcm_tokens_user_id ON fcm_tokens(user_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_fcm_tokens_token ON fcm_tokens(token)`,

		// Migration: Add gps columns to service_logs for older deployments
		`ALTER TABLE service_logs ADD COLUMN IF NOT EXISTS gps_lat DOUBLE PRECISION`,
		`ALTER TABLE service_logs ADD COLUMN IF NOT EXISTS gps_lng DOUBLE PRECISION`,

		// Migration: Add skip marking columns to jobs for older deployments
		`ALTER TABLE jobs ADD COLUMN IF NOT EXISTS skipped_on BIGINT`,
		`ALTER TABLE jobs ADD COLUMN IF NOT EXISTS skipped_by TEXT`,

		// Migration: Allow web platform in fcm_tokens
		`ALTER TABLE fcm_tokens DROP CONSTRAINT IF EXISTS fcm_tokens_platform_check`,
		`ALTER TABLE fcm_tokens ADD CONSTRAINT fcm_tokens_platform_check CHECK(platform IN ('web', 'ios', 'android'))`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	log.Println("✓ Database migrations completed")
	return nil
}
