package root

import (
	"context"
	"time"

	"go.uber.org/zap"

	"astraplay/internal/config"
	"astraplay/internal/engine"
	"astraplay/internal/storage"
)

// openSession builds a session from the loaded config, wiring the journal
// when it is enabled. cleanup closes the session before the journal.
func openSession(ctx context.Context, c *config.Config, log *zap.Logger) (*engine.Session, *storage.Journal, func(), error) {
	rnd, err := engine.NewRand(c.Leaderboard.Seed)
	if err != nil {
		return nil, nil, nil, err
	}
	opts := engine.Options{
		Start: engine.Progression{
			Level: c.Session.StartLevel,
			XP:    c.Session.StartXP,
			Stars: c.Session.StartStars,
		},
		DuelDelay: c.Duel.Delay,
		Rand:      rnd,
		Logger:    log,
	}

	var journal *storage.Journal
	closeDB := func() {}
	if c.Journal.Enabled {
		db, err := storage.Open(ctx, c.Journal.DSN)
		if err != nil {
			return nil, nil, nil, err
		}
		journal = storage.NewJournal(db)
		opts.Journal = journal
		closeDB = func() { _ = db.Close() }
	}

	sess, err := engine.NewSession(opts)
	if err != nil {
		closeDB()
		return nil, nil, nil, err
	}

	start := sess.GetProgression()
	if journal != nil {
		if err := journal.SessionRepo().Insert(ctx, storage.SessionRecord{
			ID:         sess.ID(),
			StartedAt:  time.Now().UTC(),
			ScenarioID: sess.GetDuelState().Scenario.ID,
			StartLevel: start.Level,
			StartXP:    start.XP,
			StartStars: start.Stars,
		}); err != nil {
			log.Warn("journal session insert failed", zap.Error(err))
		}
	}

	cleanup := func() {
		sess.Close()
		if journal != nil {
			p := sess.GetProgression()
			if err := journal.SessionRepo().Finish(context.WithoutCancel(ctx), sess.ID(), time.Now().UTC(), p.Level, p.XP, p.Stars, string(sess.GetHouse())); err != nil {
				log.Warn("journal session finish failed", zap.Error(err))
			}
		}
		closeDB()
	}
	return sess, journal, cleanup, nil
}
