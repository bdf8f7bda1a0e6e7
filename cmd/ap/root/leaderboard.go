package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"astraplay/internal/engine"
	"astraplay/internal/ui"
)

func newLeaderboardCmd() *cobra.Command {
	var house string
	var seed int64

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top houses this week",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := engine.ParseHouse(house)
			if err != nil {
				return err
			}
			if seed == 0 {
				seed = cfg.Leaderboard.Seed
			}
			rnd, err := engine.NewRand(seed)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconTrophy, "Top Houses this week"))
			for _, e := range engine.NewLeaderboardRanker(rnd).Rank(h) {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LeaderboardLine(e))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&house, "house", "", "Your house (adds the house bonus)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Score seed (0 = random)")

	return cmd
}
