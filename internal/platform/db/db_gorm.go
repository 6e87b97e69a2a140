// Package db opens the PostgreSQL connection and runs schema migration.
package db

import (
	"fmt"
	"log"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "commerce_backend/internal/feature/auth/domain/entity"
	catalogentity "commerce_backend/internal/feature/catalog/domain/entity"
	itementity "commerce_backend/internal/feature/items/domain/entity"
)

const (
	connectDeadline = 60 * time.Second
	retryInterval   = 3 * time.Second
)

// Open connects to PostgreSQL with retries and optionally migrates the
// schema. Container orchestration starts the app and the database together,
// so the first attempts may race the database boot.
func Open(databaseURL string, runMigrations bool) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(connectDeadline)
	for {
		db, err = gorm.Open(gpostgres.Open(databaseURL), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after %s: %v", connectDeadline, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(retryInterval)
	}

	if runMigrations {
		if err := Migrate(db); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

// Migrate applies the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&authentity.User{},
		&itementity.Item{},
		&catalogentity.Merchant{},
		&catalogentity.Product{},
		&catalogentity.Order{},
	); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}
