package engine

// Achievement is a badge derived from the session state.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// AchievementChecker evaluates badges against one snapshot.
type AchievementChecker struct {
	snap       Snapshot
	startLevel int
}

// NewAchievementChecker compares snap against the level the session began at.
func NewAchievementChecker(snap Snapshot, startLevel int) *AchievementChecker {
	return &AchievementChecker{snap: snap, startLevel: startLevel}
}

// GetAchievements returns all badges with their earned status.
func (c *AchievementChecker) GetAchievements() []Achievement {
	return []Achievement{
		c.questAchievement("tuned_in", "Tuned In", "Complete the daily check-in", "🧭", QuestCheckIn),
		c.questAchievement("briefed", "Briefed", "Read your guidance brief", "📜", QuestGuidance),
		c.questAchievement("duelist", "Duelist", "Play the decision duel", "⚔️", QuestDuel),
		c.duelWinAchievement("aligned", "Aligned", "Win the decision duel", "🌠"),
		c.allQuestsAchievement("full_orbit", "Full Orbit", "Finish every daily quest", "🪐"),
		c.levelUpAchievement("ascendant", "Ascendant", "Gain a level this session", "⭐", 1),
		c.houseAchievement("sworn", "Sworn", "Join a house", "🏰"),
	}
}

// BadgeSummary is the badge list with its earned count, as shown in the wallet.
type BadgeSummary struct {
	Badges []Achievement
	Earned int
}

func (b BadgeSummary) Total() int { return len(b.Badges) }

// Summary evaluates every badge once and counts the earned ones.
func (c *AchievementChecker) Summary() BadgeSummary {
	sum := BadgeSummary{Badges: c.GetAchievements()}
	for _, a := range sum.Badges {
		if a.Earned {
			sum.Earned++
		}
	}
	return sum
}

func (c *AchievementChecker) questAchievement(id, name, desc, icon, questID string) Achievement {
	earned := false
	for _, q := range c.snap.Quests {
		if q.ID == questID && q.Done {
			earned = true
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) duelWinAchievement(id, name, desc, icon string) Achievement {
	earned := c.snap.Duel.Resolved && c.snap.Duel.Win
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) allQuestsAchievement(id, name, desc, icon string) Achievement {
	earned := len(c.snap.Quests) > 0
	for _, q := range c.snap.Quests {
		if !q.Done {
			earned = false
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) levelUpAchievement(id, name, desc, icon string, levels int) Achievement {
	earned := c.snap.Progression.Level-c.startLevel >= levels
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) houseAchievement(id, name, desc, icon string) Achievement {
	earned := c.snap.House != ""
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}
