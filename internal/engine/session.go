package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options configure a Session. Zero values pick production defaults.
type Options struct {
	// Start is the progression at session start.
	Start Progression
	// DuelDelay is how long a duel pick stays pending. Zero means DefaultDuelDelay.
	DuelDelay time.Duration

	Rand    RandSource
	Clock   Clock
	Journal Journal
	Logger  *zap.Logger
	Now     func() time.Time
}

// CommandResult reports whether a command changed state, and the reward it
// issued if any. Redundant commands return Changed=false.
type CommandResult struct {
	Changed bool
	Reward  *RewardResult
}

// Snapshot is a consistent read of every component.
type Snapshot struct {
	SessionID   string
	Progression Progression
	Quests      []Quest
	CheckIn     CheckIn
	Duel        DuelState
	Guidance    []string
	House       House
	Season      Season
	// Badges is evaluated against the same locked read as the fields above.
	Badges BadgeSummary
}

// Session owns all game state for one player session. Every command and query
// runs under one mutex; the duel resolution is the only asynchronous path.
type Session struct {
	id        string
	log       *zap.Logger
	journal   Journal
	now       func() time.Time
	duelDelay time.Duration
	sched     *scheduler
	start     Progression

	mu       sync.Mutex
	closed   bool
	progress *ProgressionTracker
	quests   *QuestLedger
	checkIn  *CheckInFlow
	duel     *DuelResolver
	duelTask *Task
	ranker   *LeaderboardRanker
	house    House
}

// NewSession starts a session. The duel scenario is drawn from opts.Rand.
func NewSession(opts Options) (*Session, error) {
	src := opts.Rand
	if src == nil {
		r, err := NewRand(0)
		if err != nil {
			return nil, err
		}
		src = r
	}
	start := opts.Start
	if start == (Progression{}) {
		start = Progression{Level: 1}
	}
	if start.XP < 0 || start.Stars < 0 {
		return nil, invalidArgument("start progression must be non-negative: %+v", start)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	delay := opts.DuelDelay
	if delay <= 0 {
		delay = DefaultDuelDelay
	}

	id := uuid.NewString()
	s := &Session{
		id:        id,
		log:       log.With(zap.String("session_id", id)),
		journal:   opts.Journal,
		now:       now,
		duelDelay: delay,
		sched:     newScheduler(opts.Clock),
		progress:  NewProgressionTracker(start),
		quests:    NewQuestLedger(DailyQuests()),
		checkIn:   NewCheckInFlow(),
		duel:      NewDuelResolver(PickScenario(src)),
		ranker:    NewLeaderboardRanker(src),
	}
	p := s.progress.Progression()
	s.start = p
	s.log.Debug("session started",
		zap.String("scenario", s.duel.state.Scenario.ID),
		zap.Int("level", p.Level),
		zap.Int("xp", p.XP),
		zap.Int("stars", p.Stars))
	return s, nil
}

func (s *Session) ID() string { return s.id }

// Close cancels a pending duel resolution and waits for it to exit. After
// Close every command is a no-op.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.duelTask != nil {
		s.duelTask.Cancel()
	}
	s.mu.Unlock()

	s.sched.Close()
	s.log.Debug("session closed")
}

// SetCheckInDimension overwrites one check-in value until the check-in is
// finalized. Invalid input is ignored.
func (s *Session) SetCheckInDimension(ctx context.Context, d Dimension, v Level) CommandResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return CommandResult{}
	}
	changed := s.checkIn.Set(d, v)
	if changed {
		s.log.Debug("check-in set", zap.String("dimension", string(d)), zap.String("value", string(v)))
	}
	return CommandResult{Changed: changed}
}

// FinalizeCheckIn awards the check-in once all dimensions are set.
func (s *Session) FinalizeCheckIn(ctx context.Context) (CommandResult, error) {
	s.mu.Lock()
	if s.closed || !s.checkIn.CanFinalize() {
		s.mu.Unlock()
		return CommandResult{}, nil
	}
	res, ev, err := s.applyRewardLocked(reward{source: SourceCheckIn, questID: QuestCheckIn, xp: CheckInXP}, s.checkIn.markAwarded)
	s.mu.Unlock()
	if err != nil {
		return CommandResult{}, err
	}
	s.afterReward(ctx, res, ev)
	return CommandResult{Changed: true, Reward: res}, nil
}

// MarkGuidanceRead completes the guidance quest. It grants no experience.
func (s *Session) MarkGuidanceRead(ctx context.Context) (CommandResult, error) {
	return s.claim(ctx, SourceGuidance, QuestGuidance)
}

// CompleteQuest is the manual claim path. Unknown or done ids are no-ops.
func (s *Session) CompleteQuest(ctx context.Context, id string) (CommandResult, error) {
	return s.claim(ctx, SourceClaim, id)
}

func (s *Session) claim(ctx context.Context, source RewardSource, questID string) (CommandResult, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return CommandResult{}, nil
	}
	q, ok := s.quests.Get(questID)
	if !ok || q.Done {
		s.mu.Unlock()
		return CommandResult{}, nil
	}
	res, ev, err := s.applyRewardLocked(reward{source: source, questID: questID}, nil)
	s.mu.Unlock()
	if err != nil {
		return CommandResult{}, err
	}
	s.afterReward(ctx, res, ev)
	return CommandResult{Changed: true, Reward: res}, nil
}

// SelectHouse sets the player's house. Unknown houses are ignored.
func (s *Session) SelectHouse(ctx context.Context, h House) CommandResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !h.IsValid() || s.house == h {
		return CommandResult{}
	}
	s.house = h
	s.log.Debug("house selected", zap.String("house", string(h)))
	return CommandResult{Changed: true}
}

// PickDuelOption records the first pick and schedules its resolution after
// the duel delay. Later picks are ignored.
func (s *Session) PickDuelOption(ctx context.Context, o Option) CommandResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.duel.pick(o, s.checkIn.Snapshot()) {
		return CommandResult{}
	}
	s.duelTask = s.sched.After(s.duelDelay, s.resolveDuel)
	s.log.Debug("duel picked", zap.String("option", string(o)), zap.Duration("delay", s.duelDelay))
	return CommandResult{Changed: true}
}

// resolveDuel runs on the scheduler goroutine. The cancel check repeats under
// the lock so a Close racing the timer never sees a mutation.
func (s *Session) resolveDuel(ctx context.Context) {
	s.mu.Lock()
	if ctx.Err() != nil || s.closed || !s.duel.Snapshot().Pending() {
		s.mu.Unlock()
		return
	}
	win, xp := s.duel.outcome()
	res, ev, err := s.applyRewardLocked(reward{source: SourceDuel, questID: QuestDuel, xp: xp}, func() {
		s.duel.markResolved(win, xp)
	})
	s.mu.Unlock()
	if err != nil {
		s.log.Error("duel resolution failed", zap.Error(err))
		return
	}
	s.log.Info("duel resolved", zap.Bool("win", win), zap.Int("xp", xp))
	s.afterReward(context.WithoutCancel(ctx), res, ev)
	s.duel.signal()
}

// DuelResolved is closed once the duel resolves and its reward is journaled.
func (s *Session) DuelResolved() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duel.Done()
}

func (s *Session) afterReward(ctx context.Context, res *RewardResult, ev *RewardEvent) {
	fields := []zap.Field{
		zap.String("source", string(res.Source)),
		zap.String("quest", res.QuestID),
		zap.Int("xp", res.Grant.Amount),
	}
	if res.Grant.LevelUp() {
		s.log.Info("level up", append(fields,
			zap.Int("level_before", res.Grant.LevelBefore),
			zap.Int("level_after", res.Grant.LevelAfter),
			zap.Int("stars_earned", res.Grant.StarsEarned))...)
	} else {
		s.log.Debug("reward applied", fields...)
	}
	if s.journal == nil || ev == nil {
		return
	}
	if err := s.journal.Record(ctx, *ev); err != nil {
		s.log.Warn("journal record failed", zap.Error(err))
	}
}

func (s *Session) GetProgression() Progression {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.Progression()
}

func (s *Session) GetQuests() []Quest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quests.Quests()
}

func (s *Session) GetCheckIn() CheckIn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkIn.Snapshot()
}

func (s *Session) GetDuelState() DuelState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duel.Snapshot()
}

func (s *Session) GetGuidance() []string {
	s.mu.Lock()
	c := s.checkIn.Snapshot()
	s.mu.Unlock()
	return DeriveGuidance(c.Mood, c.Focus, c.Connection)
}

func (s *Session) GetHouse() House {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.house
}

// GetLeaderboard scores the roster with selected biased. Scores are redrawn
// on every call.
func (s *Session) GetLeaderboard(selected House) []LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ranker.Rank(selected)
}

func (s *Session) GetSeason() Season { return CurrentSeason }

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.checkIn.Snapshot()
	snap := Snapshot{
		SessionID:   s.id,
		Progression: s.progress.Progression(),
		Quests:      s.quests.Quests(),
		CheckIn:     c,
		Duel:        s.duel.Snapshot(),
		Guidance:    DeriveGuidance(c.Mood, c.Focus, c.Connection),
		House:       s.house,
		Season:      CurrentSeason,
	}
	snap.Badges = NewAchievementChecker(snap, s.start.Level).Summary()
	return snap
}
