package main

import (
	"log"
	"os"
	"strings"

	"tasknotes-be/internal/model"
	"tasknotes-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Extensions AutoMigrate doesn't handle
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate Models
	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(&model.User{}, &model.Note{}); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	// 5. Backfill legacy assignment data
	if err := backfillAssignedUsers(db); err != nil {
		log.Printf("Warn: Assigned users backfill failed: %v", err)
	}

	log.Println("Migration complete.")
}

// backfillAssignedUsers converts rows where assigned_users is still a single
// JSON string of comma-separated names or emails into the canonical JSON
// array of user ids. Names that resolve to no user are dropped and logged.
func backfillAssignedUsers(db *gorm.DB) error {
	type legacyRow struct {
		Id    string
		Value string
	}

	var rows []legacyRow
	err := db.Raw(
		`SELECT id, assigned_users #>> '{}' AS value FROM notes WHERE jsonb_typeof(assigned_users) = 'string'`,
	).Scan(&rows).Error
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	log.Printf("Backfilling %d legacy assigned_users rows...", len(rows))

	var users []model.User
	if err := db.Find(&users).Error; err != nil {
		return err
	}
	byKey := make(map[string]string, len(users)*2)
	for _, u := range users {
		byKey[strings.ToLower(u.Email)] = u.Id.String()
		byKey[strings.ToLower(u.FullName)] = u.Id.String()
	}

	for _, row := range rows {
		ids := make(datatypes.JSONSlice[string], 0)
		for _, token := range strings.Split(row.Value, ",") {
			token = strings.ToLower(strings.TrimSpace(token))
			if token == "" {
				continue
			}
			if id, ok := byKey[token]; ok {
				ids = append(ids, id)
			} else {
				log.Printf("Warn: note %s: dropping unresolvable assignee %q", row.Id, token)
			}
		}
		if err := db.Model(&model.Note{}).Where("id = ?", row.Id).Update("assigned_users", ids).Error; err != nil {
			return err
		}
	}

	return nil
}
