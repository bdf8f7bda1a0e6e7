package engine

import "time"

const (
	DuelWinXP  = 30
	DuelLossXP = 10

	// DefaultDuelDelay is how long a pick stays pending before it resolves.
	DefaultDuelDelay = 500 * time.Millisecond
)

// DuelState is a snapshot of the duel. Win and XPAwarded are only meaningful
// once Resolved is true.
type DuelState struct {
	Scenario  DuelScenario
	Choice    Option
	Resolved  bool
	Win       bool
	XPAwarded int
}

func (d DuelState) Pending() bool { return d.Choice != OptionNone && !d.Resolved }

// ChoiceText returns the label of the picked option.
func (d DuelState) ChoiceText() string {
	switch d.Choice {
	case OptionA:
		return d.Scenario.OptionA
	case OptionB:
		return d.Scenario.OptionB
	default:
		return ""
	}
}

// FavoredOption is the duel bias: a high mood or a high focus favors A,
// anything else favors B.
func FavoredOption(mood, focus Level) Option {
	if focus == LevelHigh || mood == LevelHigh {
		return OptionA
	}
	return OptionB
}

// DuelOutcome returns whether choice wins against the bias and the XP it earns.
func DuelOutcome(choice Option, mood, focus Level) (win bool, xp int) {
	win = choice == FavoredOption(mood, focus)
	if win {
		return true, DuelWinXP
	}
	return false, DuelLossXP
}

// DuelResolver is the unresolved -> pending -> resolved state machine.
// Scheduling lives in the Session; the resolver only tracks transitions.
type DuelResolver struct {
	state DuelState
	// check-in values captured at pick time
	mood, focus Level
	done        chan struct{}
}

func NewDuelResolver(sc DuelScenario) *DuelResolver {
	return &DuelResolver{
		state: DuelState{Scenario: sc},
		done:  make(chan struct{}),
	}
}

// pick records the choice. It reports false unless the duel is unresolved.
func (r *DuelResolver) pick(o Option, c CheckIn) bool {
	if !o.IsValid() || r.state.Choice != OptionNone {
		return false
	}
	r.state.Choice = o
	r.mood, r.focus = c.Mood, c.Focus
	return true
}

func (r *DuelResolver) outcome() (bool, int) {
	return DuelOutcome(r.state.Choice, r.mood, r.focus)
}

func (r *DuelResolver) markResolved(win bool, xp int) {
	r.state.Resolved = true
	r.state.Win = win
	r.state.XPAwarded = xp
}

// signal closes Done. It runs once, after the reward has been recorded.
func (r *DuelResolver) signal() { close(r.done) }

func (r *DuelResolver) Snapshot() DuelState { return r.state }

// Done is closed once the duel has resolved and its reward is recorded. It
// never closes if the pending resolution is canceled.
func (r *DuelResolver) Done() <-chan struct{} { return r.done }
