package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/fablehouse/storypipe/internal/assets"
	"github.com/fablehouse/storypipe/internal/batch"
	"github.com/fablehouse/storypipe/internal/config"
	"github.com/fablehouse/storypipe/internal/convert"
	"github.com/fablehouse/storypipe/internal/errors"
	"github.com/fablehouse/storypipe/internal/ledger"
	"github.com/fablehouse/storypipe/internal/logging"
	"github.com/fablehouse/storypipe/internal/migrate"
	"github.com/fablehouse/storypipe/internal/report"
	"github.com/fablehouse/storypipe/internal/validate"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp() *cli.App {
	app := &cli.App{
		Name:    "storypipe",
		Usage:   "Batch pipeline for community story assets",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "storypipe.json", Usage: "Config file path"},
		},
		Commands: []*cli.Command{
			validateCmd(),
			normalizeCmd(),
			processCmd(),
			parseCmd(),
			reportCmd(),
			migrateCmd(),
			ledgerCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// loadConfig reads the config file named by the global flag and applies
// per-command path overrides on top.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	overlay := &config.Config{
		SourceRoot: c.String("source"),
		OutputRoot: c.String("output"),
	}
	return config.Merge(cfg, overlay), nil
}

func sourceFlag() *cli.StringFlag {
	return &cli.StringFlag{Name: "source", Aliases: []string{"s"}, Usage: "Override source root"}
}

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Override output root"}
}

// validateCmd creates the validate command.
func validateCmd() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check story folders for missing or ambiguous assets",
		Flags: []cli.Flag{sourceFlag()},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			result, err := validate.Run(cfg.SourceRoot)
			if err != nil {
				return err
			}
			for _, folder := range result.Folders {
				for _, issue := range folder.Issues {
					fmt.Fprintf(c.App.Writer, "%s: %s: %s\n", issue.Level, folder.Name, issue.Message)
				}
			}
			fmt.Fprintf(c.App.Writer, "%d folders checked, %d errors, %d warnings\n",
				len(result.Folders), result.Errors, result.Warnings)
			if result.Errors > 0 {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// normalizeCmd creates the normalize command.
func normalizeCmd() *cli.Command {
	return &cli.Command{
		Name:  "normalize",
		Usage: "Rename legacy page and cover files to the standard pattern",
		Flags: []cli.Flag{
			sourceFlag(),
			&cli.BoolFlag{Name: "dry-run", Usage: "Log planned renames without changing files"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			result, err := assets.NormalizeAll(cfg.SourceRoot, c.Bool("dry-run"), logging.NewConsole())
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "%d folders scanned, %d renamed, %d skipped\n",
				result.Folders, result.Renamed, result.Skipped)
			return nil
		},
	}
}

// processCmd creates the process command, the main batch entry point.
func processCmd() *cli.Command {
	return &cli.Command{
		Name:  "process",
		Usage: "Convert pending story folders and record progress in the ledger",
		Flags: []cli.Flag{sourceFlag(), outputFlag()},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			logs, err := logging.NewRunLogs(cfg.LogRoot, time.Now())
			if err != nil {
				return err
			}
			defer logs.Close()

			led, err := ledger.Load(cfg.LedgerPath)
			if err != nil {
				return err
			}

			proc := batch.New(cfg, led,
				convert.NewPandoc(convert.WithBinary(cfg.PandocBin)),
				convert.NewCWebP(convert.WithBinary(cfg.CWebPBin)),
				logs.Logger,
			)
			summary, err := proc.ProcessAll(c.Context)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "total %d, succeeded %d (%d skipped), failed %d\n",
				summary.Total, summary.Succeeded, summary.Skipped, summary.Failed)
			if summary.Failed > 0 {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// parseCmd creates the parse command.
func parseCmd() *cli.Command {
	return &cli.Command{
		Name:  "parse",
		Usage: "Parse converted story.md files into structured story.json",
		Flags: []cli.Flag{outputFlag()},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			summary, err := batch.ParseAll(cfg.OutputRoot, logging.NewConsole())
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "total %d, parsed %d, failed %d\n",
				summary.Total, summary.Succeeded, summary.Failed)
			if summary.Failed > 0 {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// reportCmd creates the report command.
func reportCmd() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Render an HTML review report of all processed stories",
		Flags: []cli.Flag{
			outputFlag(),
			&cli.StringFlag{Name: "out", Usage: "Report file path (default <output>/report.html)"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			outPath := c.String("out")
			if outPath == "" {
				outPath = filepath.Join(cfg.OutputRoot, "report.html")
			}
			count, err := report.Generate(cfg.OutputRoot, outPath, logging.NewConsole())
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "wrote %s (%d stories)\n", outPath, count)
			return nil
		},
	}
}

// migrateCmd creates the migrate command.
func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:      "migrate",
		Usage:     "Copy community stories between SQLite databases",
		ArgsUsage: "<source.db> <target.db>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Usage: "Target user ID owning the copied stories"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return errors.NewInvalidRequest("migrate requires source and target database paths")
			}
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			userID := c.String("user")
			if userID == "" {
				userID = cfg.TargetUserID
			}
			result, err := migrate.Run(c.Args().Get(0), c.Args().Get(1), userID, logging.NewConsole())
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "copied %d/%d, failed %d, target has %d\n",
				result.Copied, result.Total, result.Failed, result.TargetCount)
			if !result.CountMatched || result.Failed > 0 {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// ledgerCmd creates the ledger command.
func ledgerCmd() *cli.Command {
	return &cli.Command{
		Name:  "ledger",
		Usage: "Show or reset batch progress",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "reset", Usage: "Forget all progress"},
			&cli.BoolFlag{Name: "reset-failed", Usage: "Forget failed stories so they are retried"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			led, err := ledger.Load(cfg.LedgerPath)
			if err != nil {
				return err
			}
			switch {
			case c.Bool("reset"):
				if err := led.Reset(false); err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, "ledger reset")
			case c.Bool("reset-failed"):
				if err := led.Reset(true); err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, "failed entries cleared")
			default:
				fmt.Fprintf(c.App.Writer, "succeeded %d, failed %d, total seen %d\n",
					len(led.Succeeded), len(led.Failed), led.TotalSeen)
				for _, slug := range led.Failed {
					fmt.Fprintf(c.App.Writer, "failed: %s\n", slug)
				}
			}
			return nil
		},
	}
}
