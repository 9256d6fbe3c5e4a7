package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/deckrev/deckrev/internal/deckrev"
	"github.com/deckrev/deckrev/pkg/iojson"
)

type SelectCmd struct {
	flags *Flags
	app   *deckrev.App
	fr    *iojson.FileReader[[]int64]
}

// NewSelectCmd creates a new select command
func NewSelectCmd(flags *Flags, app *deckrev.App) *SelectCmd {
	return &SelectCmd{flags: flags, app: app, fr: &iojson.FileReader[[]int64]{}}
}

// Register adds the select command to the application
func (cmd *SelectCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "select",
		Usage:     "Replace a commit's saved note selection from JSON input",
		UsageText: "deckrev select <commit-id> [-f notes.json]",
		Description: `Reads a JSON array of note ids from a file or stdin and saves it as
the commit's selection, replacing whatever was saved before. An empty
array clears the selection. The saved selection is what 'deckrev bulk'
submits.`,
		Flags: []cli.Flag{
			cmd.fr.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SelectCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected a commit id, e.g. 'deckrev select 42 -f notes.json'")
	}

	commitID, err := strconv.Atoi(c.Args().First())
	if err != nil || commitID <= 0 {
		return fmt.Errorf("invalid commit id %q", c.Args().First())
	}

	ids, err := cmd.fr.Read()
	if err != nil {
		_ = iojson.WriteError("failed to read note ids", map[string]any{"error": err.Error()})
		return err
	}

	if err := validateNoteIDs(ids); err != nil {
		_ = iojson.WriteError("invalid note ids", map[string]any{"error": err.Error()})
		return err
	}

	if err := cmd.app.Selection.SelectAll(ctx, commitID, ids); err != nil {
		return err
	}

	return iojson.Write(map[string]any{
		"commit_id": commitID,
		"selected":  len(ids),
	})
}

func validateNoteIDs(ids []int64) error {
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("note id %d is not a positive integer", id)
		}
	}
	return nil
}
