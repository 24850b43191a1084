package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CreateSchema creates all tables. Every statement is idempotent.
func CreateSchema(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('admin', 'student')),
		department TEXT NOT NULL DEFAULT '',
		year TEXT NOT NULL DEFAULT '',
		bio TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS internships (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		company TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		requirements TEXT[] NOT NULL DEFAULT '{}',
		duration_months INTEGER NOT NULL DEFAULT 0,
		stipend TEXT NOT NULL DEFAULT '',
		deadline TIMESTAMPTZ NOT NULL,
		posted_by TEXT NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_internships_posted_by ON internships(posted_by)`,

	`CREATE TABLE IF NOT EXISTS applications (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL REFERENCES users(id),
		internship_id TEXT NOT NULL REFERENCES internships(id),
		status TEXT NOT NULL CHECK (status IN ('pending', 'screening', 'interview', 'accepted', 'rejected')),
		current_round INTEGER NOT NULL DEFAULT 1,
		timeline JSONB NOT NULL DEFAULT '[]'::jsonb,
		resume_filename TEXT NOT NULL,
		resume_content_type TEXT NOT NULL,
		resume_blob_ref TEXT NOT NULL,
		resume_size BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (student_id, internship_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_internship ON applications(internship_id)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_created_at ON applications(created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		recipient_id TEXT NOT NULL REFERENCES users(id),
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('application', 'general')),
		application_id TEXT REFERENCES applications(id),
		read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications(recipient_id, read, created_at DESC)`,
}
