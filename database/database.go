package database

import (
	"fmt"
	"log"
	"os"

	"courseware-app/internal/domain/accounts"
	"courseware-app/internal/domain/courses"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	// ✅ Auto-migrate all domain models
	if err := DB.AutoMigrate(
		// accounts
		&accounts.Account{},

		// course hierarchy
		&courses.Course{},
		&courses.Process{},
		&courses.Action{},
		&courses.Step{},

		// attached media
		&courses.ActionPhoto{},
		&courses.ActionVideo{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
