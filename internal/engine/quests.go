package engine

// Quest IDs triggered by the core flows.
const (
	QuestCheckIn  = "q1"
	QuestGuidance = "q2"
	QuestDuel     = "q3"
)

type Quest struct {
	ID       string
	Label    string
	Done     bool
	XPReward int
}

// DailyQuests returns the fixed daily quest set in display order.
func DailyQuests() []Quest {
	return []Quest{
		{ID: QuestCheckIn, Label: "Complete daily check-in", XPReward: 20},
		{ID: QuestGuidance, Label: "Read your guidance brief", XPReward: 15},
		{ID: QuestDuel, Label: "Play 1 mini-game", XPReward: 25},
	}
}

// QuestLedger tracks completion only. It never grants experience.
type QuestLedger struct {
	quests []Quest
}

func NewQuestLedger(quests []Quest) *QuestLedger {
	cp := make([]Quest, len(quests))
	copy(cp, quests)
	return &QuestLedger{quests: cp}
}

// Complete marks id done and reports whether anything changed. Unknown and
// already-done ids are no-ops.
func (l *QuestLedger) Complete(id string) bool {
	for i := range l.quests {
		if l.quests[i].ID != id {
			continue
		}
		if l.quests[i].Done {
			return false
		}
		l.quests[i].Done = true
		return true
	}
	return false
}

func (l *QuestLedger) Get(id string) (Quest, bool) {
	for _, q := range l.quests {
		if q.ID == id {
			return q, true
		}
	}
	return Quest{}, false
}

func (l *QuestLedger) IsDone(id string) bool {
	q, ok := l.Get(id)
	return ok && q.Done
}

// Quests returns a copy in ledger order.
func (l *QuestLedger) Quests() []Quest {
	out := make([]Quest, len(l.quests))
	copy(out, l.quests)
	return out
}
