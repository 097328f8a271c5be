package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danghaonhien/reword-this/internal/catalog"
	"github.com/danghaonhien/reword-this/internal/ui"
)

func newCheckinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Complete the daily check-in mission",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			before := checkinDone(app.eng.Snapshot().Missions)
			app.eng.TrackCheckIn(ctx)

			out := cmd.OutOrStdout()
			if before {
				fmt.Fprintln(out, ui.Muted.Render("Already checked in today."))
				return nil
			}
			fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Checked in! Come back tomorrow."))
			return nil
		},
	}

	return cmd
}

func checkinDone(missions []catalog.Mission) bool {
	for _, m := range missions {
		if m.Kind == catalog.MissionCheckin {
			return m.Completed
		}
	}
	return false
}
