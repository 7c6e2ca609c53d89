package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate bootstraps the schema. All statements are idempotent so the
// server can run it on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			name TEXT DEFAULT '',
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS todos (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			completed BOOLEAN DEFAULT FALSE,
			deadline TIMESTAMPTZ,
			reminder BOOLEAN DEFAULT FALSE,
			reminder_time TIMESTAMPTZ,
			difficulty TEXT DEFAULT 'medium',
			urgency INTEGER DEFAULT 3,
			estimate_minutes INTEGER DEFAULT 0,
			dependencies TEXT[] DEFAULT '{}',
			source TEXT DEFAULT 'manual',
			order_index INTEGER DEFAULT 0,
			context JSONB DEFAULT '{}',
			created_at TIMESTAMPTZ DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS moods (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			mood TEXT NOT NULL,
			note TEXT DEFAULT '',
			date TIMESTAMPTZ DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS focus_sessions (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ,
			duration INTEGER DEFAULT 0,
			status TEXT DEFAULT 'active'
		);`,
		`CREATE TABLE IF NOT EXISTS streaks (
			user_id TEXT PRIMARY KEY,
			current INTEGER DEFAULT 0,
			longest INTEGER DEFAULT 0,
			last_date TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS resources (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			type TEXT DEFAULT 'youtube',
			title TEXT DEFAULT '',
			url TEXT DEFAULT '',
			description TEXT DEFAULT '',
			rating REAL,
			favorite BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMPTZ DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS medications (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			dosage TEXT DEFAULT '',
			frequency TEXT DEFAULT 'daily',
			times TEXT[] DEFAULT '{}',
			notes TEXT DEFAULT '',
			taken_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ DEFAULT now(),
			updated_at TIMESTAMPTZ DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS settings (
			user_id TEXT PRIMARY KEY,
			settings JSONB DEFAULT '{}',
			created_at TIMESTAMPTZ DEFAULT now(),
			updated_at TIMESTAMPTZ DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS analytics_events (
			id SERIAL PRIMARY KEY,
			event_name TEXT NOT NULL,
			event_time TIMESTAMPTZ NOT NULL,
			user_id TEXT NOT NULL,
			session_id TEXT,
			platform TEXT,
			app_version TEXT,
			device_locale TEXT,
			ip_country TEXT,
			source_event_key TEXT UNIQUE,
			properties JSONB
		);`,
		`CREATE INDEX IF NOT EXISTS idx_todos_user_completed ON todos(user_id, completed);`,
		`CREATE INDEX IF NOT EXISTS idx_moods_user_date ON moods(user_id, date DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_focus_user_start ON focus_sessions(user_id, start_time);`,
		`CREATE INDEX IF NOT EXISTS idx_resources_user_type ON resources(user_id, type);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
