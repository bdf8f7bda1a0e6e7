package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"astraplay/internal/config"
	"astraplay/internal/logging"
	"astraplay/internal/ui"
)

const Version = "0.1.0"

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "ap",
	Short:         "Astra Play — daily check-in, guidance, duels and houses",
	Long:          "Astra Play is a session-scoped gamification loop: check in, read your brief, play the decision duel, climb the house board.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		if logLevel != "" {
			c.Logging.Level = logLevel
			if err := c.Validate(); err != nil {
				return err
			}
		}
		l, err := logging.New(c.Logging)
		if err != nil {
			return err
		}
		cfg = c
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.astraplay.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error)")

	rootCmd.AddCommand(
		newBoardCmd(),
		newPlayCmd(),
		newGuidanceCmd(),
		newLeaderboardCmd(),
		newHousesCmd(),
		newShareCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
