package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danghaonhien/reword-this/internal/config"
	"github.com/danghaonhien/reword-this/internal/ui"
)

const Version = "0.1.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:           "rw",
	Short:         "Reword This — AI rewrites with RPG progression",
	Long:          "Reword This rewrites text in different tones and tracks XP, levels, streaks, daily missions, and unlockable rewards while you write.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file path")

	rootCmd.AddCommand(
		newRewriteCmd(),
		newBattleCmd(),
		newStatusCmd(),
		newMissionsCmd(),
		newRewardsCmd(),
		newThemeCmd(),
		newBadgeCmd(),
		newCheckinCmd(),
		newFeedbackCmd(),
		newDashboardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
