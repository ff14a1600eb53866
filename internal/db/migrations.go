package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS archive_snapshot (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		contract_count INTEGER NOT NULL,
		customer_count INTEGER NOT NULL,
		engineer_count INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS archive_contract (
		snapshot_id UUID NOT NULL REFERENCES archive_snapshot(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		contract_id INTEGER NOT NULL,
		product_type TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		delivery_term TEXT NOT NULL,
		delivery_term_in_days INTEGER NOT NULL,
		cost DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (snapshot_id, position)
	);`,
	`CREATE TABLE IF NOT EXISTS archive_customer (
		snapshot_id UUID NOT NULL REFERENCES archive_snapshot(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		contract_id INTEGER NOT NULL,
		enterprise_name TEXT NOT NULL,
		full_name TEXT NOT NULL,
		address TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		PRIMARY KEY (snapshot_id, position)
	);`,
	`CREATE TABLE IF NOT EXISTS archive_engineer (
		snapshot_id UUID NOT NULL REFERENCES archive_snapshot(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		enterprise_name TEXT NOT NULL,
		full_name TEXT NOT NULL,
		address TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		work_experience INTEGER NOT NULL,
		PRIMARY KEY (snapshot_id, position)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_archive_snapshot_created_at ON archive_snapshot (created_at DESC);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
