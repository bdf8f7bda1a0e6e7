package storage

import (
	"context"
	"fmt"
)

type RewardRepo struct {
	db DBTX
}

func NewRewardRepo(db DBTX) *RewardRepo {
	return &RewardRepo{db: db}
}

func (r *RewardRepo) Insert(ctx context.Context, ev RewardEvent) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO reward_events (session_id, source, quest_id, xp, level_before, level_after, stars_earned, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, ev.SessionID, ev.Source, ev.QuestID, ev.XP, ev.LevelBefore, ev.LevelAfter, ev.StarsEarned, ev.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("reward insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reward last insert id: %w", err)
	}
	return id, nil
}

func (r *RewardRepo) ListBySession(ctx context.Context, sessionID string) ([]RewardEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, source, quest_id, xp, level_before, level_after, stars_earned, created_at
		FROM reward_events
		WHERE session_id = ?
		ORDER BY id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("reward list: %w", err)
	}
	defer rows.Close()

	var out []RewardEvent
	for rows.Next() {
		var ev RewardEvent
		if err := rows.Scan(&ev.ID, &ev.SessionID, &ev.Source, &ev.QuestID, &ev.XP,
			&ev.LevelBefore, &ev.LevelAfter, &ev.StarsEarned, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("reward scan: %w", err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reward rows: %w", err)
	}
	return out, nil
}

// TotalXP sums the experience granted during a session.
func (r *RewardRepo) TotalXP(ctx context.Context, sessionID string) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(xp), 0) FROM reward_events WHERE session_id = ?`, sessionID)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("reward total xp: %w", err)
	}
	return n, nil
}
