package storage

import "time"

type SessionRecord struct {
	ID         string
	StartedAt  time.Time
	EndedAt    *time.Time
	ScenarioID string
	StartLevel int
	StartXP    int
	StartStars int
	EndLevel   *int
	EndXP      *int
	EndStars   *int
	House      *string
}

type RewardEvent struct {
	ID          int64
	SessionID   string
	Source      string
	QuestID     string
	XP          int
	LevelBefore int
	LevelAfter  int
	StarsEarned int
	CreatedAt   time.Time
}

type QuestEvent struct {
	ID          int64
	SessionID   string
	QuestID     string
	CompletedAt time.Time
}
