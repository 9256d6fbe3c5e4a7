package commands

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/deckrev/deckrev/internal/deckrev"
	"github.com/deckrev/deckrev/internal/tui"
)

type ReviewCmd struct {
	flags *Flags
	app   *deckrev.App
}

// NewReviewCmd creates a new review command
func NewReviewCmd(flags *Flags, app *deckrev.App) *ReviewCmd {
	return &ReviewCmd{flags: flags, app: app}
}

// Register adds the review command to the application
func (cmd *ReviewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "review",
		Usage:     "Open the interactive review view for one commit",
		UsageText: "deckrev review <commit-id>",
		Action:    cmd.run,
	})

	return app
}

func (cmd *ReviewCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one commit id, run 'deckrev commits' to list them")
	}

	commitID, err := strconv.Atoi(c.Args().First())
	if err != nil || commitID <= 0 {
		return fmt.Errorf("invalid commit id %q", c.Args().First())
	}

	model := tui.NewModel(cmd.app, commitID)

	// Rationale comes from the overview listing; failing to fetch it is
	// not fatal to the review itself.
	if commits, err := cmd.app.Client.ListCommits(ctx); err == nil {
		for _, summary := range commits {
			if summary.ID == commitID {
				model.SetRationale(summary.Rationale)
				break
			}
		}
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	log.Info().Int("commit", commitID).Msg("opening review view")
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("review view: %w", err)
	}
	return nil
}
