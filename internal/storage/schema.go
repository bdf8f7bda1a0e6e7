package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL,
			ended_at DATETIME,
			scenario_id TEXT NOT NULL,
			start_level INTEGER NOT NULL,
			start_xp INTEGER NOT NULL,
			start_stars INTEGER NOT NULL,
			end_level INTEGER,
			end_xp INTEGER,
			end_stars INTEGER,
			house TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS reward_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			source TEXT NOT NULL,
			quest_id TEXT NOT NULL,
			xp INTEGER NOT NULL,
			level_before INTEGER NOT NULL,
			level_after INTEGER NOT NULL,
			stars_earned INTEGER NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY(session_id) REFERENCES sessions(id)
		);`,
		// One row per quest transition; the ledger is audited from here
		// independently of the XP rows.
		`CREATE TABLE IF NOT EXISTS quest_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			quest_id TEXT NOT NULL,
			completed_at DATETIME NOT NULL,
			UNIQUE(session_id, quest_id),
			FOREIGN KEY(session_id) REFERENCES sessions(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_reward_events_session_id ON reward_events(session_id, id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
