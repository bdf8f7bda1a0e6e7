package engine

import (
	"errors"
	"testing"
)

func TestGrantXPCarriesOverLevels(t *testing.T) {
	tr := NewProgressionTracker(Progression{Level: 1})
	res, err := tr.GrantXP(250)
	if err != nil {
		t.Fatalf("GrantXP: %v", err)
	}
	got := tr.Progression()
	if got.Level != 3 || got.XP != 50 || got.Stars != 2 {
		t.Fatalf("progression=%+v, want {Level:3 XP:50 Stars:2}", got)
	}
	if res.LevelsEarned != 2 || res.StarsEarned != 2 || !res.LevelUp() {
		t.Fatalf("result=%+v, want 2 levels and 2 stars", res)
	}
	if res.LevelBefore != 1 || res.LevelAfter != 3 || res.XPAfter != 50 {
		t.Fatalf("result=%+v, want 1 -> 3 with 50 xp", res)
	}
}

func TestGrantXPInvariantAcrossSequence(t *testing.T) {
	start := Progression{Level: 3, XP: 45, Stars: 12}
	tr := NewProgressionTracker(start)
	amounts := []int{0, 1, 54, 99, 100, 101, 250, 7, 0, 333, 25, 30, 10}

	total := 0
	for i, a := range amounts {
		if _, err := tr.GrantXP(a); err != nil {
			t.Fatalf("GrantXP #%d(%d): %v", i, a, err)
		}
		total += a
		p := tr.Progression()
		if p.XP < 0 || p.XP >= XPPerLevel {
			t.Fatalf("after #%d xp=%d, want in [0,%d)", i, p.XP, XPPerLevel)
		}
		wantLevels := (start.XP + total) / XPPerLevel
		if p.Level != start.Level+wantLevels {
			t.Fatalf("after #%d level=%d, want %d", i, p.Level, start.Level+wantLevels)
		}
		if p.Stars != start.Stars+wantLevels {
			t.Fatalf("after #%d stars=%d, want %d", i, p.Stars, start.Stars+wantLevels)
		}
		if p.XP != (start.XP+total)%XPPerLevel {
			t.Fatalf("after #%d xp=%d, want %d", i, p.XP, (start.XP+total)%XPPerLevel)
		}
	}
}

func TestGrantXPRejectsNegative(t *testing.T) {
	tr := NewProgressionTracker(Progression{Level: 2, XP: 10, Stars: 1})
	_, err := tr.GrantXP(-5)
	if err == nil {
		t.Fatalf("expected error for negative amount")
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err=%v, want ErrInvalidArgument", err)
	}
	var e *Error
	if !errors.As(err, &e) || e.Code != CodeInvalidArgument {
		t.Fatalf("err=%#v, want *Error with CodeInvalidArgument", err)
	}
	if got := tr.Progression(); got != (Progression{Level: 2, XP: 10, Stars: 1}) {
		t.Fatalf("progression changed to %+v", got)
	}
}

func TestNewProgressionTrackerNormalizes(t *testing.T) {
	got := NewProgressionTracker(Progression{Level: 0, XP: 130, Stars: -4}).Progression()
	if got != (Progression{Level: 2, XP: 30, Stars: 1}) {
		t.Fatalf("progression=%+v, want {Level:2 XP:30 Stars:1}", got)
	}
}

func TestQuestLedgerCompleteIsOneWay(t *testing.T) {
	l := NewQuestLedger(DailyQuests())
	if !l.Complete(QuestGuidance) {
		t.Fatalf("expected first completion to change state")
	}
	before := l.Quests()

	if l.Complete(QuestGuidance) {
		t.Fatalf("expected repeat completion to be a no-op")
	}
	if l.Complete("q404") {
		t.Fatalf("expected unknown id to be a no-op")
	}

	after := l.Quests()
	if len(after) != len(before) {
		t.Fatalf("len=%d, want %d", len(after), len(before))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("quest %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
	if !l.IsDone(QuestGuidance) || l.IsDone(QuestCheckIn) {
		t.Fatalf("unexpected done flags: %+v", after)
	}
}

func TestQuestLedgerReturnsCopies(t *testing.T) {
	l := NewQuestLedger(DailyQuests())
	qs := l.Quests()
	qs[0].Done = true
	if l.IsDone(qs[0].ID) {
		t.Fatalf("mutating the returned slice leaked into the ledger")
	}
}

func TestDailyQuestOrder(t *testing.T) {
	qs := DailyQuests()
	want := []struct {
		id string
		xp int
	}{{QuestCheckIn, 20}, {QuestGuidance, 15}, {QuestDuel, 25}}
	if len(qs) != len(want) {
		t.Fatalf("len=%d, want %d", len(qs), len(want))
	}
	for i, w := range want {
		if qs[i].ID != w.id || qs[i].XPReward != w.xp || qs[i].Done {
			t.Fatalf("quest %d=%+v, want id=%s xp=%d", i, qs[i], w.id, w.xp)
		}
	}
}

func TestCheckInFlow(t *testing.T) {
	f := NewCheckInFlow()
	if f.IsComplete() || f.CanFinalize() {
		t.Fatalf("empty check-in should not be complete")
	}
	if f.Set(DimensionMood, LevelUnset) {
		t.Fatalf("unset is not a settable value")
	}
	if f.Set(Dimension("energy"), LevelHigh) {
		t.Fatalf("unknown dimension should be ignored")
	}

	f.Set(DimensionMood, LevelLow)
	f.Set(DimensionMood, LevelHigh)
	f.Set(DimensionFocus, LevelOK)
	if f.IsComplete() {
		t.Fatalf("two of three dimensions should not be complete")
	}
	f.Set(DimensionConnection, LevelLow)
	if !f.CanFinalize() {
		t.Fatalf("expected check-in ready to finalize")
	}
	if got := f.Snapshot().Mood; got != LevelHigh {
		t.Fatalf("mood=%s, want high (last write wins)", got)
	}

	f.markAwarded()
	if f.CanFinalize() {
		t.Fatalf("awarded check-in must not finalize again")
	}
	if f.Set(DimensionMood, LevelLow) {
		t.Fatalf("dimensions are frozen after the award")
	}
}

func TestDeriveGuidance(t *testing.T) {
	cases := []struct {
		name                    string
		mood, focus, connection Level
		want                    []string
	}{
		{"low mood", LevelLow, LevelOK, LevelOK, []string{TagTinyWin}},
		{"all unset", LevelUnset, LevelUnset, LevelUnset, []string{TagLightTouch}},
		{"all ok", LevelOK, LevelOK, LevelOK, []string{TagLightTouch}},
		{"high mood and focus", LevelHigh, LevelHigh, LevelLow, []string{TagRideConfidence, TagDeepWork}},
		{"all high", LevelHigh, LevelHigh, LevelHigh, []string{TagRideConfidence, TagDeepWork, TagFriendCheckIn}},
		{"low mood high rest", LevelLow, LevelHigh, LevelHigh, []string{TagTinyWin, TagDeepWork, TagFriendCheckIn}},
		{"connection only", LevelOK, LevelLow, LevelHigh, []string{TagFriendCheckIn}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveGuidance(tc.mood, tc.focus, tc.connection)
			if len(got) != len(tc.want) {
				t.Fatalf("tags=%q, want %q", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("tags=%q, want %q", got, tc.want)
				}
			}
			if len(got) > MaxGuidanceTags {
				t.Fatalf("len=%d exceeds %d", len(got), MaxGuidanceTags)
			}
		})
	}
}

func TestDuelOutcome(t *testing.T) {
	cases := []struct {
		choice      Option
		mood, focus Level
		win         bool
		xp          int
	}{
		{OptionA, LevelHigh, LevelOK, true, DuelWinXP},
		{OptionB, LevelHigh, LevelOK, false, DuelLossXP},
		{OptionA, LevelLow, LevelHigh, true, DuelWinXP},
		{OptionB, LevelOK, LevelOK, true, DuelWinXP},
		{OptionA, LevelUnset, LevelUnset, false, DuelLossXP},
	}
	for _, tc := range cases {
		win, xp := DuelOutcome(tc.choice, tc.mood, tc.focus)
		if win != tc.win || xp != tc.xp {
			t.Fatalf("DuelOutcome(%s, mood=%s, focus=%s)=(%v,%d), want (%v,%d)", tc.choice, tc.mood, tc.focus, win, xp, tc.win, tc.xp)
		}
	}
}

func TestDuelResolverKeepsFirstPick(t *testing.T) {
	r := NewDuelResolver(Scenarios()[0])
	if !r.pick(OptionA, CheckIn{Mood: LevelHigh}) {
		t.Fatalf("first pick should be recorded")
	}
	if r.pick(OptionB, CheckIn{}) {
		t.Fatalf("second pick should be ignored")
	}
	st := r.Snapshot()
	if st.Choice != OptionA || !st.Pending() {
		t.Fatalf("state=%+v, want pending with choice a", st)
	}
	if st.ChoiceText() != Scenarios()[0].OptionA {
		t.Fatalf("choice text=%q", st.ChoiceText())
	}
}

func TestParseHelpers(t *testing.T) {
	if l, err := ParseLevel(" HIGH "); err != nil || l != LevelHigh {
		t.Fatalf("ParseLevel(HIGH)=(%q,%v)", l, err)
	}
	if _, err := ParseLevel("meh"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if d, err := ParseDimension("conn"); err != nil || d != DimensionConnection {
		t.Fatalf("ParseDimension(conn)=(%q,%v)", d, err)
	}
	if o, err := ParseOption("B"); err != nil || o != OptionB {
		t.Fatalf("ParseOption(B)=(%q,%v)", o, err)
	}
	if _, err := ParseOption("c"); err == nil {
		t.Fatalf("expected error for option c")
	}
	if h, err := ParseHouse("ember"); err != nil || h != House("Ember") {
		t.Fatalf("ParseHouse(ember)=(%q,%v)", h, err)
	}
	if _, err := ParseHouse("Slytherin"); err == nil {
		t.Fatalf("expected error for unknown house")
	}
}
