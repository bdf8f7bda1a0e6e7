package storage

import (
	"context"
	"fmt"
	"time"
)

type QuestRepo struct {
	db DBTX
}

func NewQuestRepo(db DBTX) *QuestRepo {
	return &QuestRepo{db: db}
}

func (r *QuestRepo) InsertCompletion(ctx context.Context, sessionID, questID string, completedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quest_events (session_id, quest_id, completed_at)
		VALUES (?, ?, ?)
	`, sessionID, questID, completedAt)
	if err != nil {
		return fmt.Errorf("quest completion insert: %w", err)
	}
	return nil
}

func (r *QuestRepo) ListBySession(ctx context.Context, sessionID string) ([]QuestEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, quest_id, completed_at
		FROM quest_events
		WHERE session_id = ?
		ORDER BY id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("quest list: %w", err)
	}
	defer rows.Close()

	var out []QuestEvent
	for rows.Next() {
		var ev QuestEvent
		if err := rows.Scan(&ev.ID, &ev.SessionID, &ev.QuestID, &ev.CompletedAt); err != nil {
			return nil, fmt.Errorf("quest scan: %w", err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest rows: %w", err)
	}
	return out, nil
}
