package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danghaonhien/reword-this/internal/ui"
)

func newMissionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "missions",
		Short: "Show today's missions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			s := app.eng.Snapshot()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTarget, "Daily Missions"))
			done := 0
			for _, m := range s.Missions {
				mark := ui.Muted.Render("[ ]")
				if m.Completed {
					mark = ui.Good.Render("[x]")
					done++
				}
				fmt.Fprintf(out, "%s %s %s %s %s\n",
					mark,
					ui.Key.Render(m.Title),
					ui.ProgressBar(m.Progress, m.Goal, 14),
					ui.Muted.Render(fmt.Sprintf("%d/%d", m.Progress, m.Goal)),
					ui.Gold.Render(fmt.Sprintf("+%d xp", m.Reward.Value)),
				)
				fmt.Fprintf(out, "    %s\n", ui.Dim.Render(m.Description))
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%d/%d completed — missions reset at midnight", done, len(s.Missions))))
			return nil
		},
	}

	return cmd
}
