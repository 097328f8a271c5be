package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danghaonhien/reword-this/internal/api"
	"github.com/danghaonhien/reword-this/internal/catalog"
	"github.com/danghaonhien/reword-this/internal/ui"
)

func newRewriteCmd() *cobra.Command {
	var surprise bool
	var reference string

	cmd := &cobra.Command{
		Use:   "rewrite [tone] [text]",
		Short: "Rewrite text in a tone",
		Long:  "Rewrite text in one of the unlocked tones. Pass the text as an argument or pipe it on stdin. Unknown tone names use the custom tone builder.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tone, text, err := toneAndText(args, surprise)
			if err != nil {
				return err
			}

			if surprise {
				if !app.lim.AllowSurpriseMe() {
					return errors.New("daily surprise-me limit reached — try again tomorrow")
				}
			} else if !app.lim.AllowRewrite() {
				return errors.New("daily rewrite limit reached — try again tomorrow")
			}

			custom := false
			var prompt string
			switch {
			case reference != "":
				ref, err := readInput(reference)
				if err != nil {
					return fmt.Errorf("read reference sample: %w", err)
				}
				prompt = api.CustomTonePrompt(ref, text)
				custom = true
			default:
				custom, err = checkToneAccess(app.eng.Snapshot().Tones, tone, surprise)
				if err != nil {
					return err
				}
				prompt = api.PromptForTone(tone, text)
			}

			result, err := app.api.Rewrite(ctx, prompt)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconPen, "Rewritten ("+tone+")"))
			fmt.Fprintln(cmd.OutOrStdout(), result)

			// Usage and progress only count after a successful rewrite.
			if surprise {
				app.lim.TrackSurpriseMe(ctx)
			} else {
				app.lim.TrackRewrite(ctx)
			}
			words := len(strings.Fields(text))
			app.eng.TrackToneUsage(ctx, tone, words)
			if custom {
				app.eng.TrackCustomTone(ctx)
			}

			s := app.eng.Snapshot()
			fmt.Fprintln(cmd.OutOrStdout(), "")
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("%s Level %d · %d/%d xp · streak %d",
				ui.IconBolt, s.Level, s.XP, s.Level*100, s.Streak)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&surprise, "surprise", false, "pick a random tone (counts against the surprise-me quota)")
	cmd.Flags().StringVar(&reference, "reference", "", "file with a writing sample to imitate (custom tone builder)")
	return cmd
}

// toneAndText resolves the tone and the text to rewrite from args and stdin.
// With --surprise the tone argument is omitted.
func toneAndText(args []string, surprise bool) (string, string, error) {
	if surprise {
		tone := api.SurpriseTone()
		text, err := textFromArgs(args)
		return tone, text, err
	}
	if len(args) < 1 {
		return "", "", errors.New("tone is required (or use --surprise)")
	}
	text, err := textFromArgs(args[1:])
	return args[0], text, err
}

func textFromArgs(args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return strings.Join(args, " "), nil
	}
	return readInput("-")
}

// readInput reads a file, or stdin for "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			return "", errors.New("no text provided")
		}
		return text, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// checkToneAccess gates explicitly chosen tones on their unlock state and
// reports whether the tone is a custom one (no catalog entry). Surprise picks
// skip the gate: the feature draws from all six built-ins regardless of what
// the user has unlocked.
func checkToneAccess(tones []catalog.Tone, tone string, surprise bool) (custom bool, err error) {
	t := findTone(tones, tone)
	if t == nil {
		return true, nil
	}
	if !surprise && !t.Unlocked {
		return false, fmt.Errorf("tone %q is still locked (%s)", tone, requirementHint(t.Requirement))
	}
	return false, nil
}

func findTone(tones []catalog.Tone, id string) *catalog.Tone {
	for i := range tones {
		if tones[i].ID == id {
			return &tones[i]
		}
	}
	return nil
}

func requirementHint(r catalog.Requirement) string {
	switch r.Type {
	case catalog.RequireXP:
		return fmt.Sprintf("needs %d xp", r.Value)
	case catalog.RequireStreak:
		return fmt.Sprintf("needs a %d-day streak", r.Value)
	case catalog.RequireLevel:
		return fmt.Sprintf("needs level %d", r.Value)
	default:
		return "locked"
	}
}
