package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danghaonhien/reword-this/internal/ui"
)

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme <id>",
		Short: "Set the active theme",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("theme id is required (see `rw rewards`)")
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
			for i := range s.Themes {
				t := s.Themes[i]
				if t.ID != id {
					continue
				}
				if !t.Unlocked {
					return fmt.Errorf("theme %q is still locked (%s)", id, requirementHint(t.Requirement))
				}
				app.eng.SetActiveTheme(ctx, &t)
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconPalette+" Theme set: "+t.Name))
				return nil
			}
			return fmt.Errorf("no theme %q", id)
		},
	}

	return cmd
}
