package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danghaonhien/reword-this/internal/api"
	"github.com/danghaonhien/reword-this/internal/ui"
)

func newBattleCmd() *cobra.Command {
	var pick string

	cmd := &cobra.Command{
		Use:   "battle [text]",
		Short: "Battle of the rewrites: two versions, pick a winner",
		Long:  "Generate two competing rewrites of the same text. Pass --pick a|b to record your vote, which awards battle XP and mission progress.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pick != "" && pick != "a" && pick != "b" {
				return errors.New(`--pick must be "a" or "b"`)
			}

			ctx := context.Background()
			app, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if !app.lim.AllowBattle() {
				return errors.New("daily battle limit reached — try again tomorrow")
			}

			text, err := textFromArgs(args)
			if err != nil {
				return err
			}

			res, err := app.api.Battle(ctx, api.BattlePrompt(text))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSwords, "Rewrite Battle"))
			fmt.Fprintln(out, ui.H2.Render("Version A"))
			fmt.Fprintln(out, res.VersionA)
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render("Version B"))
			fmt.Fprintln(out, res.VersionB)

			app.lim.TrackBattle(ctx)
			app.eng.TrackBattle(ctx, "", "")

			if pick != "" {
				app.eng.TrackFeedback(ctx)
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.Good.Render(ui.IconTrophy+" Version "+pick+" wins!"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pick, "pick", "", "record the winning version (a or b)")
	return cmd
}
