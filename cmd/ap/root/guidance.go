package root

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"astraplay/internal/engine"
)

func newGuidanceCmd() *cobra.Command {
	var mood, focus, connection string
	var plain bool

	cmd := &cobra.Command{
		Use:   "guidance",
		Short: "Print the guidance brief for a check-in",
		RunE: func(cmd *cobra.Command, args []string) error {
			var lv [3]engine.Level
			for i, raw := range []string{mood, focus, connection} {
				l, err := engine.ParseLevel(raw)
				if err != nil {
					return err
				}
				lv[i] = l
			}
			tags := engine.DeriveGuidance(lv[0], lv[1], lv[2])

			md := renderGuidanceMarkdown(lv, tags)
			if plain {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}
			r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(72))
			if err != nil {
				return fmt.Errorf("guidance renderer: %w", err)
			}
			s, err := r.Render(md)
			if err != nil {
				return fmt.Errorf("render guidance: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), s)
			return nil
		},
	}

	cmd.Flags().StringVar(&mood, "mood", "", "Mood (low|ok|high)")
	cmd.Flags().StringVar(&focus, "focus", "", "Focus (low|ok|high)")
	cmd.Flags().StringVar(&connection, "connection", "", "Connection (low|ok|high)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print raw markdown")

	return cmd
}

func renderGuidanceMarkdown(lv [3]engine.Level, tags []string) string {
	var b strings.Builder
	b.WriteString("## Guidance Drop\n\n")
	fmt.Fprintf(&b, "_mood %s · focus %s · connection %s_\n\n", lv[0], lv[1], lv[2])
	for _, t := range tags {
		b.WriteString("- " + t + "\n")
	}
	b.WriteString("\n> Entertainment & wellness only. Not medical, legal, or financial advice.\n")
	return b.String()
}
