package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/deckrev/deckrev/internal/api"
	"github.com/deckrev/deckrev/internal/commands"
	"github.com/deckrev/deckrev/internal/core/config"
	"github.com/deckrev/deckrev/internal/core/logging"
	"github.com/deckrev/deckrev/internal/data/db"
	"github.com/deckrev/deckrev/internal/data/stores"
	"github.com/deckrev/deckrev/internal/deckrev"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		database  *db.DB
		appState  = &deckrev.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "deckrev",
		Usage:     "Review suggestion commits for collaborative flashcard decks",
		UsageText: "deckrev [global options] command [command options]",
		Description: `Deckrev is a terminal client for reviewing contributor suggestions on a
shared deck: word-level diffs per field, per-item accept/deny, bulk
actions over a selection, and multi-field edit sessions.

Run 'deckrev commits' to list open commits, then 'deckrev review <id>'
to open one.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("DECKREV_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/deckrev.log)",
				Sources:     cli.EnvVars("DECKREV_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("DECKREV_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("DECKREV_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "token",
				Usage:       "bearer token for the deck platform (overrides config)",
				Sources:     cli.EnvVars("DECKREV_TOKEN"),
				Destination: &flags.Token,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := os.MkdirAll(flags.DataDir, 0o755); err != nil {
				return ctx, fmt.Errorf("create data dir: %w", err)
			}

			// Always log to a file; the TUI owns the terminal.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "deckrev.log")
			}

			logger, closer, err := logging.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if flags.Token != "" {
				cfg.Server.Token = flags.Token
			}
			flags.Config = cfg

			client, err := api.NewClient(cfg.Server.BaseURL, cfg.Server.Token, cfg.Timeout())
			if err != nil {
				return ctx, fmt.Errorf("configure client: %w", err)
			}

			database, err = db.Open(cfg.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}

			kvStore := stores.NewKVStore(database)
			if err := kvStore.SweepExpired(ctx); err != nil {
				log.Warn().Err(err).Msg("expired key sweep failed")
			}

			// Populate the pre-allocated App struct (commands already hold a
			// pointer to it).
			*appState = *deckrev.New(cfg, client, database, kvStore)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewCommitsCmd(flags, appState).Register(app)
	app = commands.NewReviewCmd(flags, appState).Register(app)
	app = commands.NewSelectCmd(flags, appState).Register(app)
	app = commands.NewBulkCmd(flags, appState).Register(app)
	app = commands.NewDoctorCmd(flags, appState).Register(app)

	exitCode := 0
	if runErr := app.Run(ctx, os.Args); runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
