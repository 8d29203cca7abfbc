package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		balance NUMERIC(12,4) NOT NULL DEFAULT 0 CHECK (balance >= 0),
		invited_by BIGINT REFERENCES users (id),
		invitation_code TEXT UNIQUE,
		invitation_count BIGINT NOT NULL DEFAULT 0,
		invitation_earnings NUMERIC(12,4) NOT NULL DEFAULT 0,
		registered_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS photos (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users (id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		uploaded_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		reviewed_at TIMESTAMPTZ,
		reviewed_by BIGINT REFERENCES users (id),
		rejection_reason TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS withdrawals (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users (id),
		amount NUMERIC(12,4) NOT NULL,
		fee NUMERIC(12,4) NOT NULL DEFAULT 0,
		final_amount NUMERIC(12,4) NOT NULL,
		method TEXT NOT NULL,
		account_details TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		requested_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		processed_at TIMESTAMPTZ,
		processed_by BIGINT REFERENCES users (id),
		rejection_reason TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users (id),
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT 'system',
		related_id BIGINT,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS admin_notifications (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT 'system',
		related_id BIGINT,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_by BIGINT REFERENCES users (id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_photos_status ON photos (status)`,
	`CREATE INDEX IF NOT EXISTS idx_withdrawals_status ON withdrawals (status)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications (user_id)`,
}

// Migrate creates the schema. Statements are idempotent so the service can
// run them on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error applying migration %d: %w", i, err)
		}
	}

	return nil
}
