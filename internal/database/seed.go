package database

import (
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

func SeedProperties(db *sqlx.DB) error {
	// Check if properties already exist
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM properties"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Properties already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding demo properties...")

	// Raw portal strings on purpose - the schedule engine parses these the
	// same way it parses real imported data, typos included.
	properties := []map[string]interface{}{
		{"account_id": "ACC-001", "client_name": "Harbourview Body Corp", "company": "Harbourview Apartments", "address": "12 Marine Parade, Southport QLD 4215",
			"red_freq": "Weekly", "red_flip": "", "red_bins": "4", "yellow_freq": "Fortnightly", "yellow_flip": "", "yellow_bins": "2", "green_freq": "Fortnightly", "green_flip": "yes", "green_bins": "1",
			"put_bins_out": "Sunday", "collection_day": "Monday"},
		{"account_id": "ACC-001", "client_name": "Harbourview Body Corp", "company": "Harbourview Apartments", "address": "14 Marine Parade, Southport QLD 4215",
			"red_freq": "Weekly", "red_flip": "", "red_bins": "3", "yellow_freq": "Fortnightly", "yellow_flip": "", "yellow_bins": "2", "green_freq": "", "green_flip": "", "green_bins": "",
			"put_bins_out": "Sunday", "collection_day": "Monday"},
		{"account_id": "ACC-002", "client_name": "", "company": "Pacific Strata Services", "address": "88 Scarborough St, Southport QLD 4215",
			"red_freq": "Weekly", "red_flip": "", "red_bins": "6", "yellow_freq": "Weekly", "yellow_flip": "", "yellow_bins": "4", "green_freq": "Fortnightly", "green_flip": "", "green_bins": "2",
			"put_bins_out": "Monday", "collection_day": "Tuesday"},
		{"account_id": "", "client_name": "Maria Kowalski", "company": "", "address": "3/45 Queen St, Brisbane QLD 4000",
			"red_freq": "Weekly", "red_flip": "", "red_bins": "1", "yellow_freq": "Fortnightly", "yellow_flip": "yes", "yellow_bins": "1", "green_freq": "", "green_flip": "", "green_bins": "",
			"put_bins_out": "Tuesday", "collection_day": "Wednesday"},
		{"account_id": "", "client_name": "Maria Kowalski", "company": "Kowalski Holdings Pty Ltd", "address": "47 Queen St, Brisbane QLD 4000",
			"red_freq": "Weekly", "red_flip": "", "red_bins": "2", "yellow_freq": "Fortnightly", "yellow_flip": "yes", "yellow_bins": "1", "green_freq": "Fortnightly", "green_flip": "", "green_bins": "1",
			"put_bins_out": "Tuesday", "collection_day": "Wednesday"},
		{"account_id": "ACC-004", "client_name": "Tom Nguyen", "company": "", "address": "210 Bayside Dr, Cleveland QLD 4163",
			"red_freq": "weekly", "red_flip": "", "red_bins": "", "yellow_freq": "fortnightly", "yellow_flip": "", "yellow_bins": "1", "green_freq": "", "green_flip": "", "green_bins": "",
			"put_bins_out": "", "collection_day": "Thursday"},
		{"account_id": "ACC-005", "client_name": "", "company": "Sunnybank Retirement Village", "address": "9 Acacia Ct, Sunnybank QLD 4109",
			"red_freq": "Weekly", "red_flip": "", "red_bins": "8", "yellow_freq": "Weekly", "yellow_flip": "", "yellow_bins": "6", "green_freq": "Weekly", "green_flip": "", "green_bins": "4",
			"put_bins_out": "Thursday", "collection_day": "Friday"},
		{"account_id": "", "client_name": "", "company": "", "address": "1 Unknown Lane, Nerang QLD 4211",
			"red_freq": "Weekly", "red_flip": "", "red_bins": "1", "yellow_freq": "", "yellow_flip": "", "yellow_bins": "", "green_freq": "", "green_flip": "", "green_bins": "",
			"put_bins_out": "Sunday", "collection_day": "Monday"},
		{"account_id": "ACC-006", "client_name": "Greenway Offices", "company": "", "address": "55 Commercial Rd, Newstead QLD 4006",
			"red_freq": "Fortnightly", "red_flip": "", "red_bins": "2", "yellow_freq": "Fortnightly", "yellow_flip": "yes", "yellow_bins": "2", "green_freq": "", "green_flip": "", "green_bins": "",
			"put_bins_out": "Monday", "collection_day": "Tuesday"},
		{"account_id": "ACC-006", "client_name": "Greenway Offices", "company": "", "address": "57 Commercial Rd, Newstead QLD 4006",
			"red_freq": "Weekly", "red_flip": "", "red_bins": "3", "yellow_freq": "Fortnightly", "yellow_flip": "", "yellow_bins": "2", "green_freq": "Fortnightly", "green_flip": "yes", "green_bins": "1",
			"put_bins_out": "Monday", "collection_day": "Tuesday"},
		{"account_id": "ACC-007", "client_name": "St Lucia Student Housing", "company": "UniLodge Management", "address": "120 Sir Fred Schonell Dr, St Lucia QLD 4067",
			"red_freq": "Weekly", "red_flip": "", "red_bins": "10", "yellow_freq": "Weekly", "yellow_flip": "", "yellow_bins": "8", "green_freq": "Fortnightly", "green_flip": "", "green_bins": "3",
			"put_bins_out": "Wed", "collection_day": "Thursday"},
		{"account_id": "ACC-008", "client_name": "Deshi Wang", "company": "", "address": "18 Riverbend Tce, Indooroopilly QLD 4068",
			"red_freq": "Weekly", "red_flip": "", "red_bins": "1", "yellow_freq": "Fortnightl", "yellow_flip": "", "yellow_bins": "1", "green_freq": "Fortnightly", "green_flip": "yes", "green_bins": "1",
			"put_bins_out": "Thu", "collection_day": "Friday"},
	}

	for _, p := range properties {
		id := uuid.New().String()
		_, err := db.Exec(`
			INSERT INTO properties (id, account_id, client_name, company, address,
				red_freq, red_flip, red_bins,
				yellow_freq, yellow_flip, yellow_bins,
				green_freq, green_flip, green_bins,
				put_bins_out, collection_day)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		`, id, p["account_id"], p["client_name"], p["company"], p["address"],
			p["red_freq"], p["red_flip"], p["red_bins"],
			p["yellow_freq"], p["yellow_flip"], p["yellow_bins"],
			p["green_freq"], p["green_flip"], p["green_bins"],
			p["put_bins_out"], p["collection_day"])

		if err != nil {
			return err
		}
	}

	log.Printf("✓ Successfully seeded %d properties", len(properties))
	return nil
}

func SeedUsers(db *sqlx.DB) error {
	// Check if users already exist
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM users"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Users already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding test users...")

	// Hash passwords
	staffPassword, err := bcrypt.GenerateFromPassword([]byte("staff123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	clientPassword, err := bcrypt.GenerateFromPassword([]byte("client123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	harbourview := "ACC-001"
	users := []map[string]interface{}{
		{
			"id":         uuid.New().String(),
			"email":      "staff@bincycle.com.au",
			"password":   string(staffPassword),
			"name":       "Sam Field",
			"role":       "staff",
			"account_id": nil,
		},
		{
			"id":         uuid.New().String(),
			"email":      "admin@bincycle.com.au",
			"password":   string(adminPassword),
			"name":       "Admin User",
			"role":       "admin",
			"account_id": nil,
		},
		{
			"id":         uuid.New().String(),
			"email":      "body.corp@harbourview.com.au",
			"password":   string(clientPassword),
			"name":       "Harbourview Body Corp",
			"role":       "client",
			"account_id": harbourview,
		},
	}

	for _, user := range users {
		query := `
			INSERT INTO users (id, email, password, name, role, account_id)
			VALUES (:id, :email, :password, :name, :role, :account_id)
		`
		if _, err := db.NamedExec(query, user); err != nil {
			return err
		}
		log.Printf("  ✓ Created user: %s (%s)", user["email"], user["role"])
	}

	log.Println("✓ Successfully seeded test users")
	log.Println("  📧 Staff:  staff@bincycle.com.au / staff123")
	log.Println("  📧 Admin:  admin@bincycle.com.au / admin123")
	log.Println("  📧 Client: body.corp@harbourview.com.au / client123")
	return nil
}
