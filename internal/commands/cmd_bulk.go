package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/deckrev/deckrev/internal/api"
	"github.com/deckrev/deckrev/internal/deckrev"
	"github.com/deckrev/deckrev/pkg/iojson"
)

type BulkCmd struct {
	flags *Flags
	app   *deckrev.App

	// flags
	jsonOutput bool
}

// NewBulkCmd creates a new bulk command
func NewBulkCmd(flags *Flags, app *deckrev.App) *BulkCmd {
	return &BulkCmd{flags: flags, app: app}
}

// Register adds the bulk command to the application
func (cmd *BulkCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "bulk",
		Usage:     "Submit the saved selection of a commit as one batch action",
		UsageText: "deckrev bulk <commit-id> <approve|deny> [--json]",
		Description: `Submits the note selection saved from a previous review session.
The batch is not atomic: the per-note outcome is reported, and failed
notes keep their selection for a later retry.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output result as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *BulkCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("expected a commit id and an action, e.g. 'deckrev bulk 42 approve'")
	}

	commitID, err := strconv.Atoi(c.Args().First())
	if err != nil || commitID <= 0 {
		return fmt.Errorf("invalid commit id %q", c.Args().First())
	}

	var action api.BulkAction
	switch c.Args().Get(1) {
	case "approve":
		action = api.BulkApprove
	case "deny":
		action = api.BulkDeny
	default:
		return fmt.Errorf("invalid action %q, expected approve or deny", c.Args().Get(1))
	}

	result, err := cmd.app.Bulk.Submit(ctx, commitID, action)
	if err != nil {
		return err
	}

	if cmd.jsonOutput {
		return iojson.Write(result)
	}

	fmt.Printf("%d succeeded, %d failed\n", len(result.Succeeded), len(result.Failed))
	for _, f := range result.Failed {
		fmt.Printf("  note %d: %s\n", f.ID, f.Reason)
	}
	return nil
}
