package engine

const (
	// XPPerLevel is the experience needed to advance one level. XP carries over.
	XPPerLevel = 100

	// StarsPerLevel is the soft currency awarded for each level gained.
	StarsPerLevel = 1
)

// Progression is a snapshot of the player's level, experience and stars.
type Progression struct {
	Level int
	XP    int
	Stars int
}

// GrantResult describes the effect of one GrantXP call.
type GrantResult struct {
	Amount       int
	LevelBefore  int
	LevelAfter   int
	LevelsEarned int
	StarsEarned  int
	XPAfter      int
}

func (r GrantResult) LevelUp() bool { return r.LevelsEarned > 0 }

// ProgressionTracker owns the progression state. It does not lock; the
// Session serializes access.
type ProgressionTracker struct {
	state Progression
}

// NewProgressionTracker starts from p, normalizing out-of-range values so the
// 0 <= XP < XPPerLevel invariant holds from the first read.
func NewProgressionTracker(p Progression) *ProgressionTracker {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.Stars < 0 {
		p.Stars = 0
	}
	if p.XP < 0 {
		p.XP = 0
	}
	t := &ProgressionTracker{state: Progression{Level: p.Level, Stars: p.Stars}}
	_, _ = t.GrantXP(p.XP)
	return t
}

func (t *ProgressionTracker) Progression() Progression { return t.state }

// GrantXP adds amount to the current XP, converting every full XPPerLevel into
// a level and a star. Negative amounts are rejected and leave state untouched.
func (t *ProgressionTracker) GrantXP(amount int) (GrantResult, error) {
	if amount < 0 {
		return GrantResult{}, invalidArgument("grant xp: amount must be non-negative, got %d", amount)
	}

	total := t.state.XP + amount
	levelsEarned := 0
	for total >= XPPerLevel {
		total -= XPPerLevel
		levelsEarned++
	}

	res := GrantResult{
		Amount:       amount,
		LevelBefore:  t.state.Level,
		LevelsEarned: levelsEarned,
		StarsEarned:  levelsEarned * StarsPerLevel,
	}
	t.state.Level += levelsEarned
	t.state.Stars += res.StarsEarned
	t.state.XP = total

	res.LevelAfter = t.state.Level
	res.XPAfter = t.state.XP
	return res, nil
}
