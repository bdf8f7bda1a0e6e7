package root

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"astraplay/internal/engine"
	"astraplay/internal/storage"
	"astraplay/internal/ui"
)

type playInput struct {
	levels [3]engine.Level
	pick   engine.Option
	house  engine.House
	read   bool
	claims []string
}

func newPlayCmd() *cobra.Command {
	var mood, focus, connection, pick, house string
	var read bool
	var claims []string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run one scripted session: check in, read, duel, join a house",
		Example: `  ap play --mood high --focus ok --connection low --pick a --house Ember --read
  ap play --mood low --focus low --connection ok --pick b --claim q2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := parsePlayInput(mood, focus, connection, pick, house)
			if err != nil {
				return err
			}
			in.read = read
			in.claims = claims

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			sess, journal, cleanup, err := openSession(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			return runPlay(ctx, cmd.OutOrStdout(), sess, journal, in, cfg.Duel.Delay)
		},
	}

	cmd.Flags().StringVar(&mood, "mood", "", "Mood (low|ok|high)")
	cmd.Flags().StringVar(&focus, "focus", "", "Focus (low|ok|high)")
	cmd.Flags().StringVar(&connection, "connection", "", "Connection (low|ok|high)")
	cmd.Flags().StringVar(&pick, "pick", "", "Duel option (a|b)")
	cmd.Flags().StringVar(&house, "house", "", "House to join")
	cmd.Flags().BoolVar(&read, "read", false, "Mark the guidance brief as read")
	cmd.Flags().StringSliceVar(&claims, "claim", nil, "Quest ids to claim manually (q1,q2,q3)")

	return cmd
}

func parsePlayInput(mood, focus, connection, pick, house string) (playInput, error) {
	var in playInput
	for i, raw := range []string{mood, focus, connection} {
		l, err := engine.ParseLevel(raw)
		if err != nil {
			return in, err
		}
		in.levels[i] = l
	}
	o, err := engine.ParseOption(pick)
	if err != nil {
		return in, err
	}
	in.pick = o
	h, err := engine.ParseHouse(house)
	if err != nil {
		return in, err
	}
	in.house = h
	return in, nil
}

func runPlay(ctx context.Context, out io.Writer, sess *engine.Session, journal *storage.Journal, in playInput, delay time.Duration) error {
	for i, d := range engine.Dimensions {
		if in.levels[i] != engine.LevelUnset {
			sess.SetCheckInDimension(ctx, d, in.levels[i])
		}
	}
	res, err := sess.FinalizeCheckIn(ctx)
	if err != nil {
		return err
	}
	if res.Changed {
		fmt.Fprintln(out, ui.Good.Render(ui.IconCompass+" Check-in complete")+" "+ui.RewardLine(res.Reward))
	} else {
		fmt.Fprintln(out, ui.Muted.Render(ui.IconCompass+" Check-in incomplete (set --mood, --focus and --connection)"))
	}

	if in.read {
		if _, err := sess.MarkGuidanceRead(ctx); err != nil {
			return err
		}
	}
	if in.house != "" {
		sess.SelectHouse(ctx, in.house)
	}
	for _, id := range in.claims {
		if _, err := sess.CompleteQuest(ctx, id); err != nil {
			return err
		}
	}

	if in.pick != engine.OptionNone && sess.PickDuelOption(ctx, in.pick).Changed {
		fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%s Picked %s. Calculating alignment…", ui.IconDuel, in.pick)))
		timer := time.NewTimer(delay + 5*time.Second)
		defer timer.Stop()
		select {
		case <-sess.DuelResolved():
		case <-timer.C:
			return fmt.Errorf("duel did not resolve within %s", delay+5*time.Second)
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	printSession(out, sess)

	if journal != nil {
		rows, err := journal.RewardRepo().ListBySession(ctx, sess.ID())
		if err != nil {
			return err
		}
		fmt.Fprintln(out, ui.H2.Render(ui.IconScroll+" Journal"))
		if len(rows) == 0 {
			fmt.Fprintln(out, ui.Muted.Render("(no rewards)"))
		}
		for _, r := range rows {
			fmt.Fprintf(out, "- %s %-8s %-3s +%d XP (lvl %d → %d)\n",
				r.CreatedAt.Format("15:04:05"), r.Source, r.QuestID, r.XP, r.LevelBefore, r.LevelAfter)
		}
	}
	return nil
}

func printSession(out io.Writer, sess *engine.Session) {
	snap := sess.Snapshot()

	fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Astra Play"))
	fmt.Fprintln(out, ui.ProgressLine(snap.Progression))
	fmt.Fprintln(out, "")

	fmt.Fprintln(out, ui.H2.Render("Guidance"))
	for _, g := range snap.Guidance {
		fmt.Fprintln(out, "- "+g)
	}
	fmt.Fprintln(out, "")

	fmt.Fprintln(out, ui.H2.Render(ui.IconDuel+" Decision Duel"))
	fmt.Fprintln(out, snap.Duel.Scenario.Title)
	if snap.Duel.Choice != engine.OptionNone {
		fmt.Fprintln(out, ui.Muted.Render("Tip: ")+snap.Duel.Scenario.Tip)
		fmt.Fprintln(out, ui.DuelOutcome(snap.Duel))
	} else {
		fmt.Fprintln(out, ui.Muted.Render("(not played)"))
	}
	fmt.Fprintln(out, "")

	fmt.Fprintln(out, ui.H2.Render("Quests"))
	for _, q := range snap.Quests {
		fmt.Fprintln(out, ui.QuestLine(q))
	}
	fmt.Fprintln(out, "")

	if snap.House != "" {
		fmt.Fprintln(out, ui.H2.Render(ui.IconHouse+" Top Houses this week"))
		for _, e := range sess.GetLeaderboard(snap.House) {
			fmt.Fprintln(out, ui.LeaderboardLine(e))
		}
		fmt.Fprintln(out, "")
	}

	for _, a := range snap.Badges.Badges {
		if a.Earned {
			fmt.Fprintf(out, "%s %s\n", a.Icon, ui.Gold.Render(a.Name))
		}
	}
	fmt.Fprintln(out, ui.LabelValue("Badges", fmt.Sprintf("%d/%d", snap.Badges.Earned, snap.Badges.Total())))
	fmt.Fprintln(out, "")
}
