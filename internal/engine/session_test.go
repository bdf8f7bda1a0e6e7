package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// manualClock fires only when the test says so.
type manualClock struct {
	mu      sync.Mutex
	waiters []chan time.Time
	armed   chan struct{}
}

func newManualClock() *manualClock {
	return &manualClock{armed: make(chan struct{}, 8)}
}

func (c *manualClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	c.mu.Lock()
	c.waiters = append(c.waiters, ch)
	c.mu.Unlock()
	c.armed <- struct{}{}
	return ch
}

func (c *manualClock) waitArmed(t *testing.T) {
	t.Helper()
	select {
	case <-c.armed:
	case <-time.After(2 * time.Second):
		t.Fatalf("duel timer was never armed")
	}
}

func (c *manualClock) fire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.waiters {
		ch <- time.Now()
	}
	c.waiters = nil
}

// seqSource replays vals in order, wrapping around.
type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)] % n
	s.i++
	return v
}

type recordingJournal struct {
	mu     sync.Mutex
	events []RewardEvent
	err    error
}

func (j *recordingJournal) Record(_ context.Context, ev RewardEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, ev)
	return j.err
}

func (j *recordingJournal) Events() []RewardEvent {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]RewardEvent(nil), j.events...)
}

var demoStart = Progression{Level: 3, XP: 45, Stars: 12}

func newTestSession(t *testing.T, opts Options) (*Session, *manualClock) {
	t.Helper()
	clock := newManualClock()
	if opts.Start == (Progression{}) {
		opts.Start = demoStart
	}
	if opts.Rand == nil {
		opts.Rand = &seqSource{vals: []int{0}}
	}
	opts.Clock = clock
	s, err := NewSession(opts)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(s.Close)
	return s, clock
}

func fillCheckIn(t *testing.T, s *Session, mood, focus, conn Level) {
	t.Helper()
	ctx := context.Background()
	s.SetCheckInDimension(ctx, DimensionMood, mood)
	s.SetCheckInDimension(ctx, DimensionFocus, focus)
	s.SetCheckInDimension(ctx, DimensionConnection, conn)
}

func waitResolved(t *testing.T, s *Session) {
	t.Helper()
	select {
	case <-s.DuelResolved():
	case <-time.After(2 * time.Second):
		t.Fatalf("duel did not resolve")
	}
}

func TestNewSessionRejectsNegativeStart(t *testing.T) {
	_, err := NewSession(Options{Start: Progression{Level: 1, XP: -1}, Rand: &seqSource{vals: []int{0}}})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err=%v, want ErrInvalidArgument", err)
	}
}

func TestNewSessionPicksScenarioFromSource(t *testing.T) {
	s, _ := newTestSession(t, Options{Rand: &seqSource{vals: []int{2}}})
	if got, want := s.GetDuelState().Scenario.ID, Scenarios()[2].ID; got != want {
		t.Fatalf("scenario=%s, want %s", got, want)
	}
	if s.ID() == "" {
		t.Fatalf("expected a session id")
	}
	if got := s.GetProgression(); got != demoStart {
		t.Fatalf("progression=%+v, want %+v", got, demoStart)
	}
}

func TestFinalizeCheckInIsIdempotent(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	ctx := context.Background()

	res, err := s.FinalizeCheckIn(ctx)
	if err != nil || res.Changed {
		t.Fatalf("finalize on empty check-in=(%+v,%v), want no-op", res, err)
	}

	fillCheckIn(t, s, LevelHigh, LevelOK, LevelLow)
	res, err = s.FinalizeCheckIn(ctx)
	if err != nil {
		t.Fatalf("FinalizeCheckIn: %v", err)
	}
	if !res.Changed || res.Reward == nil || res.Reward.Grant.Amount != CheckInXP {
		t.Fatalf("result=%+v, want +%d xp", res, CheckInXP)
	}
	after := s.GetProgression()
	if after.XP != 70 || after.Level != 3 {
		t.Fatalf("progression=%+v, want level 3 xp 70", after)
	}

	res, err = s.FinalizeCheckIn(ctx)
	if err != nil || res.Changed {
		t.Fatalf("second finalize=(%+v,%v), want no-op", res, err)
	}
	if got := s.GetProgression(); got != after {
		t.Fatalf("progression changed on repeat: %+v -> %+v", after, got)
	}
	if !s.GetCheckIn().Awarded {
		t.Fatalf("check-in should be awarded")
	}
	if s.SetCheckInDimension(ctx, DimensionMood, LevelLow).Changed {
		t.Fatalf("check-in should be frozen after award")
	}
}

func TestFinalizeAfterManualClaimStillGrantsXP(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	ctx := context.Background()

	res, err := s.CompleteQuest(ctx, QuestCheckIn)
	if err != nil || !res.Changed || res.Reward.Grant.Amount != 0 {
		t.Fatalf("manual claim=(%+v,%v), want changed with 0 xp", res, err)
	}

	fillCheckIn(t, s, LevelOK, LevelOK, LevelOK)
	res, err = s.FinalizeCheckIn(ctx)
	if err != nil {
		t.Fatalf("FinalizeCheckIn: %v", err)
	}
	if res.Reward.QuestCompleted {
		t.Fatalf("quest was already done, QuestCompleted should be false")
	}
	if got := s.GetProgression().XP; got != 70 {
		t.Fatalf("xp=%d, want 70", got)
	}
}

func TestClaimNoOps(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	ctx := context.Background()

	if res, err := s.CompleteQuest(ctx, "q404"); err != nil || res.Changed {
		t.Fatalf("unknown quest=(%+v,%v), want no-op", res, err)
	}
	if res, _ := s.MarkGuidanceRead(ctx); !res.Changed {
		t.Fatalf("first guidance read should complete q2")
	}
	if res, _ := s.MarkGuidanceRead(ctx); res.Changed {
		t.Fatalf("second guidance read should be a no-op")
	}
	if got := s.GetProgression(); got != demoStart {
		t.Fatalf("progression=%+v, guidance read must not grant xp", got)
	}
}

func TestDuelWinResolvesAfterDelay(t *testing.T) {
	j := &recordingJournal{}
	s, clock := newTestSession(t, Options{Journal: j})
	ctx := context.Background()
	fillCheckIn(t, s, LevelHigh, LevelOK, LevelOK)

	if !s.PickDuelOption(ctx, OptionA).Changed {
		t.Fatalf("first pick should change state")
	}
	if s.PickDuelOption(ctx, OptionB).Changed {
		t.Fatalf("second pick should be ignored")
	}
	clock.waitArmed(t)

	st := s.GetDuelState()
	if !st.Pending() || st.Choice != OptionA {
		t.Fatalf("state=%+v, want pending a", st)
	}
	if s.GetProgression() != demoStart {
		t.Fatalf("xp must not change before the delay elapses")
	}

	clock.fire()
	waitResolved(t, s)

	st = s.GetDuelState()
	if !st.Resolved || !st.Win || st.XPAwarded != DuelWinXP {
		t.Fatalf("state=%+v, want win +%d", st, DuelWinXP)
	}
	if got := s.GetProgression(); got.XP != 75 {
		t.Fatalf("xp=%d, want 75", got.XP)
	}
	quests := s.GetQuests()
	if !quests[2].Done {
		t.Fatalf("duel quest should be done: %+v", quests)
	}

	s.Close()
	evs := j.Events()
	if len(evs) != 1 || evs[0].Source != SourceDuel || evs[0].XP != DuelWinXP {
		t.Fatalf("journal=%+v, want one duel event", evs)
	}
}

func TestDuelLossAwardsConsolation(t *testing.T) {
	s, clock := newTestSession(t, Options{})
	fillCheckIn(t, s, LevelHigh, LevelOK, LevelOK)
	s.PickDuelOption(context.Background(), OptionB)
	clock.waitArmed(t)
	clock.fire()
	waitResolved(t, s)

	st := s.GetDuelState()
	if st.Win || st.XPAwarded != DuelLossXP {
		t.Fatalf("state=%+v, want loss +%d", st, DuelLossXP)
	}
	if got := s.GetProgression().XP; got != 55 {
		t.Fatalf("xp=%d, want 55", got)
	}
}

func TestDuelUsesCheckInAtPickTime(t *testing.T) {
	s, clock := newTestSession(t, Options{})
	ctx := context.Background()
	s.SetCheckInDimension(ctx, DimensionMood, LevelHigh)
	s.PickDuelOption(ctx, OptionA)
	clock.waitArmed(t)

	s.SetCheckInDimension(ctx, DimensionMood, LevelLow)
	clock.fire()
	waitResolved(t, s)

	if !s.GetDuelState().Win {
		t.Fatalf("outcome should use the mood captured when the option was picked")
	}
}

func TestDuelLevelUpCarriesOver(t *testing.T) {
	s, clock := newTestSession(t, Options{})
	ctx := context.Background()
	fillCheckIn(t, s, LevelHigh, LevelOK, LevelOK)
	if _, err := s.FinalizeCheckIn(ctx); err != nil {
		t.Fatalf("FinalizeCheckIn: %v", err)
	}
	s.PickDuelOption(ctx, OptionA)
	clock.waitArmed(t)
	clock.fire()
	waitResolved(t, s)

	got := s.GetProgression()
	if got != (Progression{Level: 4, XP: 0, Stars: 13}) {
		t.Fatalf("progression=%+v, want {Level:4 XP:0 Stars:13}", got)
	}
}

func TestCloseCancelsPendingDuel(t *testing.T) {
	j := &recordingJournal{}
	s, clock := newTestSession(t, Options{Journal: j})
	ctx := context.Background()
	fillCheckIn(t, s, LevelHigh, LevelHigh, LevelHigh)
	s.PickDuelOption(ctx, OptionA)
	clock.waitArmed(t)

	s.Close()
	clock.fire()

	st := s.GetDuelState()
	if st.Resolved || st.XPAwarded != 0 {
		t.Fatalf("state=%+v, canceled duel must not resolve", st)
	}
	if got := s.GetProgression(); got != demoStart {
		t.Fatalf("progression=%+v, canceled duel must not grant xp", got)
	}
	if s.GetQuests()[2].Done {
		t.Fatalf("canceled duel must not complete its quest")
	}
	select {
	case <-s.DuelResolved():
		t.Fatalf("DuelResolved closed after cancel")
	default:
	}
	if len(j.Events()) != 0 {
		t.Fatalf("journal=%+v, want none", j.Events())
	}
	if s.PickDuelOption(ctx, OptionB).Changed {
		t.Fatalf("commands after Close should be no-ops")
	}
}

func TestJournalFailureKeepsReward(t *testing.T) {
	j := &recordingJournal{err: errors.New("disk full")}
	s, _ := newTestSession(t, Options{Journal: j})
	fillCheckIn(t, s, LevelOK, LevelOK, LevelOK)
	res, err := s.FinalizeCheckIn(context.Background())
	if err != nil || !res.Changed {
		t.Fatalf("finalize=(%+v,%v), want applied", res, err)
	}
	if got := s.GetProgression().XP; got != 70 {
		t.Fatalf("xp=%d, want 70", got)
	}
	if len(j.Events()) != 1 {
		t.Fatalf("journal saw %d events, want 1", len(j.Events()))
	}
}

func TestSelectHouse(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	ctx := context.Background()
	if s.SelectHouse(ctx, House("Nowhere")).Changed {
		t.Fatalf("unknown house should be ignored")
	}
	if !s.SelectHouse(ctx, "Ember").Changed {
		t.Fatalf("valid house should be set")
	}
	if s.SelectHouse(ctx, "Ember").Changed {
		t.Fatalf("re-selecting the same house should be a no-op")
	}
	if s.GetHouse() != "Ember" {
		t.Fatalf("house=%q, want Ember", s.GetHouse())
	}
}

func TestSnapshotAndAchievements(t *testing.T) {
	s, clock := newTestSession(t, Options{})
	ctx := context.Background()
	fillCheckIn(t, s, LevelLow, LevelOK, LevelOK)
	s.FinalizeCheckIn(ctx)
	s.MarkGuidanceRead(ctx)
	s.SelectHouse(ctx, "Dawn")
	s.PickDuelOption(ctx, OptionB)
	clock.waitArmed(t)
	clock.fire()
	waitResolved(t, s)

	snap := s.Snapshot()
	if len(snap.Guidance) != 1 || snap.Guidance[0] != TagTinyWin {
		t.Fatalf("guidance=%q, want tiny win", snap.Guidance)
	}
	if snap.Season != CurrentSeason || snap.SessionID != s.ID() {
		t.Fatalf("snapshot=%+v", snap)
	}

	if snap.Badges.Earned != snap.Badges.Total() || snap.Badges.Total() != 7 {
		t.Fatalf("badges=%d/%d, want 7/7", snap.Badges.Earned, snap.Badges.Total())
	}
	earned := map[string]bool{}
	for _, a := range snap.Badges.Badges {
		earned[a.ID] = a.Earned
	}
	for _, id := range []string{"tuned_in", "briefed", "duelist", "aligned", "full_orbit", "ascendant", "sworn"} {
		if !earned[id] {
			t.Fatalf("achievement %s not earned: %+v", id, earned)
		}
	}
}

func TestBadgesFollowSnapshot(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	if got := s.Snapshot().Badges.Earned; got != 0 {
		t.Fatalf("earned=%d, want 0", got)
	}
	s.CompleteQuest(context.Background(), QuestGuidance)
	snap := s.Snapshot()
	if snap.Badges.Earned != 1 {
		t.Fatalf("earned=%d, want 1 (briefed)", snap.Badges.Earned)
	}
}

// Readers race the scheduler goroutine: each round resolves or closes a
// real-delay duel while snapshots are taken concurrently. Run with -race.
func TestConcurrentReadersSeeConsistentProgression(t *testing.T) {
	ctx := context.Background()
	for round := 0; round < 100; round++ {
		s, err := NewSession(Options{
			Start:     demoStart,
			DuelDelay: time.Microsecond,
			Rand:      &seqSource{vals: []int{round}},
		})
		if err != nil {
			t.Fatalf("NewSession: %v", err)
		}
		fillCheckIn(t, s, LevelHigh, LevelOK, LevelOK)
		if _, err := s.FinalizeCheckIn(ctx); err != nil {
			t.Fatalf("FinalizeCheckIn: %v", err)
		}

		stop := make(chan struct{})
		errs := make(chan string, 4)
		var wg sync.WaitGroup
		for r := 0; r < 4; r++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					snap := s.Snapshot()
					p := snap.Progression
					gained := p.Level - demoStart.Level
					switch {
					case p.XP < 0 || p.XP >= XPPerLevel:
						errs <- fmt.Sprintf("xp=%d out of range", p.XP)
						return
					case p.Stars-demoStart.Stars != gained:
						errs <- fmt.Sprintf("level +%d but stars +%d", gained, p.Stars-demoStart.Stars)
						return
					case snap.Duel.Resolved && !snap.Quests[2].Done:
						errs <- "duel resolved before its quest completed"
						return
					}
					select {
					case <-stop:
						return
					default:
					}
				}
			}()
		}

		s.PickDuelOption(ctx, OptionA)
		if round%2 == 0 {
			s.Close()
		} else {
			waitResolved(t, s)
			s.Close()
		}
		close(stop)
		wg.Wait()
		close(errs)
		for msg := range errs {
			t.Fatalf("round %d: %s", round, msg)
		}

		p := s.GetProgression()
		if d := s.GetDuelState(); d.Resolved && p != (Progression{Level: 4, XP: 0, Stars: 13}) {
			t.Fatalf("round %d: resolved duel left progression %+v", round, p)
		}
	}
}
