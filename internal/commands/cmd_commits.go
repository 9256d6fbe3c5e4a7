package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/deckrev/deckrev/internal/deckrev"
	"github.com/deckrev/deckrev/pkg/iojson"
)

type CommitsCmd struct {
	flags *Flags
	app   *deckrev.App

	// flags
	jsonOutput bool
}

// NewCommitsCmd creates a new commits command
func NewCommitsCmd(flags *Flags, app *deckrev.App) *CommitsCmd {
	return &CommitsCmd{flags: flags, app: app}
}

// Register adds the commits command to the application
func (cmd *CommitsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "commits",
		Usage:     "List open suggestion commits awaiting review",
		UsageText: "deckrev commits [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *CommitsCmd) run(ctx context.Context, c *cli.Command) error {
	commits, err := cmd.app.Client.ListCommits(ctx)
	if err != nil {
		return fmt.Errorf("list commits: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.Write(commits)
	}

	if len(commits) == 0 {
		fmt.Fprintln(os.Stderr, "No open commits")
		return nil
	}

	// Rationales get whatever width is left after the fixed columns.
	width := 120
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 40 {
		width = w
	}
	rationaleWidth := width - 50

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDECK\tNOTES\tDATE\tRATIONALE")
	for _, commit := range commits {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
			commit.ID,
			commit.DeckName,
			commit.NoteCount,
			commit.Timestamp,
			truncate(commit.Rationale, rationaleWidth),
		)
	}
	return w.Flush()
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if max < 4 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
