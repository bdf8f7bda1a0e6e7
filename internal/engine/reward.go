package engine

import (
	"context"
	"time"
)

// RewardSource names the trigger that issued a reward.
type RewardSource string

const (
	SourceCheckIn  RewardSource = "checkin"
	SourceDuel     RewardSource = "duel"
	SourceGuidance RewardSource = "guidance"
	SourceClaim    RewardSource = "claim"
)

// reward is one atomic "complete quest + grant xp + set guard" operation.
type reward struct {
	source  RewardSource
	questID string
	xp      int
}

// RewardResult reports what a reward operation changed.
type RewardResult struct {
	Source         RewardSource
	QuestID        string
	QuestCompleted bool
	Grant          GrantResult
}

// RewardEvent is the journal record of one applied reward.
type RewardEvent struct {
	SessionID string
	Source    RewardSource
	QuestID   string
	// QuestCompleted is false when the quest was already done before this reward.
	QuestCompleted bool
	XP             int
	LevelBefore    int
	LevelAfter     int
	StarsEarned    int
	At             time.Time
}

// Journal receives reward events after they are applied. Failures are logged
// and never undo the reward.
type Journal interface {
	Record(ctx context.Context, ev RewardEvent) error
}

// applyRewardLocked validates first so either every side effect happens or
// none does. guard flips the trigger's one-way flag. s.mu must be held.
func (s *Session) applyRewardLocked(r reward, guard func()) (*RewardResult, *RewardEvent, error) {
	if r.xp < 0 {
		return nil, nil, invalidArgument("reward %s: xp must be non-negative, got %d", r.source, r.xp)
	}
	completed := s.quests.Complete(r.questID)
	grant, err := s.progress.GrantXP(r.xp)
	if err != nil {
		return nil, nil, err
	}
	if guard != nil {
		guard()
	}

	res := &RewardResult{
		Source:         r.source,
		QuestID:        r.questID,
		QuestCompleted: completed,
		Grant:          grant,
	}
	ev := &RewardEvent{
		SessionID:      s.id,
		Source:         r.source,
		QuestID:        r.questID,
		QuestCompleted: completed,
		XP:             r.xp,
		LevelBefore:    grant.LevelBefore,
		LevelAfter:     grant.LevelAfter,
		StarsEarned:    grant.StarsEarned,
		At:             s.now().UTC(),
	}
	return res, ev, nil
}
