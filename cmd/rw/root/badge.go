package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danghaonhien/reword-this/internal/ui"
)

func newBadgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "badge <id>",
		Short: "Pick the badge to show off",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("badge id is required (see `rw rewards`)")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id := args[0]
			s := app.eng.Snapshot()
			for _, b := range s.Badges {
				if b.ID != id {
					continue
				}
				if !b.Unlocked {
					return fmt.Errorf("badge %q is not earned yet (%d/%d)", id, b.Progress, b.Required)
				}
				app.eng.SetActiveBadge(ctx, id)
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconMedal+" Badge shown: "+b.Name))
				return nil
			}
			return fmt.Errorf("no badge %q", id)
		},
	}

	return cmd
}
