package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danghaonhien/reword-this/internal/catalog"
	"github.com/danghaonhien/reword-this/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, streak, and usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			s := app.eng.Snapshot()
			need := s.Level * 100
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Reword This"))
			fmt.Fprintln(out, ui.LabelValue("Level", fmt.Sprintf("%d — %s", s.Level, catalog.LevelTitle(s.Level))))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d/%d %s (%d to next level)", s.XP, need, ui.ProgressBar(s.XP, need, 24), app.eng.XPToNextLevel())))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d days", ui.IconFire, s.Streak)))
			if s.ActiveBadge != "" {
				fmt.Fprintln(out, ui.LabelValue("Badge", s.ActiveBadge))
			}
			if t := app.eng.ActiveTheme(); t != nil {
				fmt.Fprintln(out, ui.LabelValue("Theme", t.Name))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Usage today"))
			fmt.Fprintf(out, "- %s %s\n", ui.Key.Render("Rewrites:"), ui.RemainingText(app.lim.RewritesRemaining()))
			fmt.Fprintf(out, "- %s %s\n", ui.Key.Render("Surprise me:"), ui.RemainingText(app.lim.SurpriseMeRemaining()))
			fmt.Fprintf(out, "- %s %s\n", ui.Key.Render("Battles:"), ui.RemainingText(app.lim.BattlesRemaining()))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("🔓 Next unlocks"))
			if t := catalog.NextTone(s.Tones, s.Streak); t != nil {
				fmt.Fprintf(out, "- %s %s %s\n", ui.Key.Render("Tone:"), t.Name, ui.Muted.Render("("+requirementHint(t.Requirement)+")"))
			}
			if t := catalog.NextTheme(s.Themes, s.Streak); t != nil {
				fmt.Fprintf(out, "- %s %s %s\n", ui.Key.Render("Theme:"), t.Name, ui.Muted.Render("("+requirementHint(t.Requirement)+")"))
			}
			if b := catalog.NextBadge(s.Badges); b != nil {
				fmt.Fprintf(out, "- %s %s %s\n", ui.Key.Render("Badge:"), b.Name, ui.Muted.Render(fmt.Sprintf("(%d/%d)", b.Progress, b.Required)))
			}
			return nil
		},
	}

	return cmd
}
