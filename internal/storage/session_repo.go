package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type SessionRepo struct {
	db DBTX
}

func NewSessionRepo(db DBTX) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Insert(ctx context.Context, s SessionRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, started_at, scenario_id, start_level, start_xp, start_stars)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.ID, s.StartedAt, s.ScenarioID, s.StartLevel, s.StartXP, s.StartStars)
	if err != nil {
		return fmt.Errorf("session insert: %w", err)
	}
	return nil
}

// Finish stamps the end state of a session.
func (r *SessionRepo) Finish(ctx context.Context, id string, endedAt time.Time, level, xp, stars int, house string) error {
	var h *string
	if house != "" {
		h = &house
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE sessions
		SET ended_at = ?, end_level = ?, end_xp = ?, end_stars = ?, house = ?
		WHERE id = ?
	`, endedAt, level, xp, stars, h, id)
	if err != nil {
		return fmt.Errorf("session finish: %w", err)
	}
	return nil
}

func (r *SessionRepo) Get(ctx context.Context, id string) (*SessionRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, started_at, ended_at, scenario_id, start_level, start_xp, start_stars,
			end_level, end_xp, end_stars, house
		FROM sessions
		WHERE id = ?
	`, id)

	var (
		s        SessionRecord
		endedAt  sql.NullTime
		endLevel sql.NullInt64
		endXP    sql.NullInt64
		endStars sql.NullInt64
		house    sql.NullString
	)
	if err := row.Scan(&s.ID, &s.StartedAt, &endedAt, &s.ScenarioID, &s.StartLevel, &s.StartXP, &s.StartStars,
		&endLevel, &endXP, &endStars, &house); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("session get: %w", err)
	}
	if endedAt.Valid {
		v := endedAt.Time
		s.EndedAt = &v
	}
	s.EndLevel = nullInt(endLevel)
	s.EndXP = nullInt(endXP)
	s.EndStars = nullInt(endStars)
	if house.Valid {
		v := house.String
		s.House = &v
	}
	return &s, nil
}

func nullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
