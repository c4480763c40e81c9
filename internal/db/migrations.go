package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS schema_meta (
		key VARCHAR(64) PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at BIGINT NOT NULL DEFAULT (EXTRACT(EPOCH FROM NOW()) * 1000)::BIGINT
	);`,
	`CREATE TABLE IF NOT EXISTS countries (
		id VARCHAR(8) PRIMARY KEY,
		display_name VARCHAR(128) NOT NULL,
		enabled BOOLEAN NOT NULL DEFAULT TRUE,
		created_at BIGINT NOT NULL DEFAULT (EXTRACT(EPOCH FROM NOW()) * 1000)::BIGINT,
		updated_at BIGINT NOT NULL DEFAULT (EXTRACT(EPOCH FROM NOW()) * 1000)::BIGINT
	);`,
	`CREATE TABLE IF NOT EXISTS plate_templates (
		id SERIAL PRIMARY KEY,
		country_id VARCHAR(8) NOT NULL REFERENCES countries (id) ON DELETE CASCADE,
		template_pattern VARCHAR(12) NOT NULL,
		display_name VARCHAR(128) NOT NULL,
		priority INTEGER NOT NULL CHECK (priority > 0),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		description TEXT,
		regex_pattern TEXT,
		source VARCHAR(16) NOT NULL DEFAULT 'USER',
		created_at BIGINT NOT NULL DEFAULT (EXTRACT(EPOCH FROM NOW()) * 1000)::BIGINT,
		updated_at BIGINT NOT NULL DEFAULT (EXTRACT(EPOCH FROM NOW()) * 1000)::BIGINT,
		CONSTRAINT uq_plate_templates_country_priority UNIQUE (country_id, priority)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_plate_templates_country_id ON plate_templates (country_id);`,
	// Partial index backing the countries-without-active-templates anti-join.
	`CREATE INDEX IF NOT EXISTS idx_plate_templates_active ON plate_templates (country_id) WHERE is_active;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns
			WHERE table_name = 'plate_templates' AND column_name = 'source') THEN
			ALTER TABLE plate_templates ADD COLUMN source VARCHAR(16) NOT NULL DEFAULT 'USER';
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
