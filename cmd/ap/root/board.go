package root

import (
	"github.com/spf13/cobra"

	"astraplay/internal/share"
	"astraplay/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive session board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, _, cleanup, err := openSession(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, sess, share.NewSharer(nil, logger), cmd.OutOrStdout())
		},
	}

	return cmd
}
