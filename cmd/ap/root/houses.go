package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"astraplay/internal/engine"
	"astraplay/internal/ui"
)

func newHousesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "houses",
		Short: "List the houses you can join",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconHouse, "Houses"))
			for _, h := range engine.Houses {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", h)
			}
			return nil
		},
	}
}
