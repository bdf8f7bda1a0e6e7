package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"astraplay/internal/share"
	"astraplay/internal/ui"
)

func newShareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share",
		Short: "Copy a duel challenge link to the clipboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			res := share.NewSharer(nil, logger).Challenge(cmd.Context())
			style := ui.Good
			if !res.Copied {
				style = ui.Warn
			}
			fmt.Fprintln(cmd.OutOrStdout(), style.Render(ui.IconClip+" "+res.Message))
			return nil
		},
	}
}
