package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danghaonhien/reword-this/internal/engine"
	"github.com/danghaonhien/reword-this/internal/ui"
)

func newFeedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Record picking a favorite rewrite",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			app.eng.TrackFeedback(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s Thanks! +%d xp", ui.IconSparkle, engine.FeedbackXP)))
			return nil
		},
	}

	return cmd
}
