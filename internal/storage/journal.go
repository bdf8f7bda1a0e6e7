package storage

import (
	"context"
	"database/sql"

	"astraplay/internal/engine"
)

// Journal is the append-only audit trail of one or more sessions. It
// implements engine.Journal.
type Journal struct {
	db       *sql.DB
	sessions *SessionRepo
	rewards  *RewardRepo
	quests   *QuestRepo
}

var _ engine.Journal = (*Journal)(nil)

func NewJournal(db *sql.DB) *Journal {
	return &Journal{
		db:       db,
		sessions: NewSessionRepo(db),
		rewards:  NewRewardRepo(db),
		quests:   NewQuestRepo(db),
	}
}

func (j *Journal) SessionRepo() *SessionRepo { return j.sessions }
func (j *Journal) RewardRepo() *RewardRepo   { return j.rewards }
func (j *Journal) QuestRepo() *QuestRepo     { return j.quests }

// Record writes the reward row and, when the reward moved a quest to done,
// the quest row in one transaction.
func (j *Journal) Record(ctx context.Context, ev engine.RewardEvent) error {
	return WithTx(ctx, j.db, func(tx *sql.Tx) error {
		if _, err := NewRewardRepo(tx).Insert(ctx, RewardEvent{
			SessionID:   ev.SessionID,
			Source:      string(ev.Source),
			QuestID:     ev.QuestID,
			XP:          ev.XP,
			LevelBefore: ev.LevelBefore,
			LevelAfter:  ev.LevelAfter,
			StarsEarned: ev.StarsEarned,
			CreatedAt:   ev.At,
		}); err != nil {
			return err
		}
		if !ev.QuestCompleted {
			return nil
		}
		return NewQuestRepo(tx).InsertCompletion(ctx, ev.SessionID, ev.QuestID, ev.At)
	})
}
