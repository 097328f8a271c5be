package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danghaonhien/reword-this/internal/ui"
)

func newRewardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewards",
		Short: "List tones, themes, and badges",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			s := app.eng.Snapshot()
			active := app.eng.ActiveTheme()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Rewards"))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconPen+" Tones"))
			for _, t := range s.Tones {
				hint := ""
				if !t.Unlocked {
					hint = " " + ui.Muted.Render("("+requirementHint(t.Requirement)+")")
				}
				fmt.Fprintf(out, "- %s %s%s\n", ui.Key.Render(t.Name), ui.LockText(t.Unlocked), hint)
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconPalette+" Themes"))
			for _, t := range s.Themes {
				mark := ""
				if active != nil && active.ID == t.ID {
					mark = " " + ui.Gold.Render("(active)")
				}
				hint := ""
				if !t.Unlocked {
					hint = " " + ui.Muted.Render("("+requirementHint(t.Requirement)+")")
				}
				fmt.Fprintf(out, "- %s %s%s%s\n", ui.Key.Render(t.Name), ui.LockText(t.Unlocked), mark, hint)
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconMedal+" Badges"))
			for _, b := range s.Badges {
				mark := ""
				if s.ActiveBadge == b.ID {
					mark = " " + ui.Gold.Render("(shown)")
				}
				fmt.Fprintf(out, "- %s %s %s%s\n",
					ui.Key.Render(b.Name),
					ui.ProgressBar(b.Progress, b.Required, 10),
					ui.Muted.Render(fmt.Sprintf("%d/%d", b.Progress, b.Required)),
					mark,
				)
			}
			return nil
		},
	}

	return cmd
}
