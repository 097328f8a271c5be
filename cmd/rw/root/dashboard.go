package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/danghaonhien/reword-this/internal/tui"
)

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive missions and rewards dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunDashboard(ctx, app.eng, app.lim, app.bus, cmd.OutOrStdout())
		},
	}

	return cmd
}
