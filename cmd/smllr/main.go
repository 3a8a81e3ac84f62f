// Command smllr finds and resolves duplicate files across one or more
// filesystem roots.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	isatty "github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/zwimer/smllr/internal/actor"
	"github.com/zwimer/smllr/internal/catalog"
	"github.com/zwimer/smllr/internal/cmdsupport"
	"github.com/zwimer/smllr/internal/config"
	"github.com/zwimer/smllr/internal/filehash"
	"github.com/zwimer/smllr/internal/logging"
	"github.com/zwimer/smllr/internal/vfs/osfs"
	"github.com/zwimer/smllr/internal/walk"
)

// flagValues holds the raw pflag-bound values before validation/parsing into
// a config.Config.
type flagValues struct {
	skipPaths    []string
	skipPatterns []string
	paranoid     bool
	action       string
	selectPolicy string
	format       string
	logLevel     string
	noColor      bool
}

var flags flagValues

var rootCommand = &cobra.Command{
	Use:           "smllr <path> [<path>...]",
	Short:         "Find and resolve duplicate files",
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	Run:           cmdsupport.Mainify(run, cmdsupport.ExitIO),
}

func main() {
	cmdsupport.HandleTerminalCompatibility()
	if err := config.EnvOverrides(".env"); err != nil {
		cmdsupport.Fatal(errors.Wrap(err, "unable to load .env overrides"), cmdsupport.ExitArguments)
	}
	if err := rootCommand.Execute(); err != nil {
		cmdsupport.Fatal(err, cmdsupport.ExitArguments)
	}
}

// run is the root command's entry point. Argument and configuration errors
// are fatal with ExitArguments immediately; any error it returns instead is
// a traversal I/O failure, which Mainify turns into a fatal
// exit with ExitIO, giving the two fatal error classes distinct codes per
// the CLI's exit code design.
//
// A flag left at its default (not explicitly passed) falls back to its
// SMLLR_* environment variable when EnvOverrides populated one from .env;
// an explicitly passed flag always wins.
func run(command *cobra.Command, arguments []string) error {
	flagSet := command.Flags()
	flags.logLevel = config.StringEnvOverride(flagSet.Changed("log-level"), "SMLLR_LOG_LEVEL", flags.logLevel)
	flags.noColor = config.BoolEnvOverride(flagSet.Changed("no-color"), "SMLLR_NO_COLOR", flags.noColor)
	flags.paranoid = config.BoolEnvOverride(flagSet.Changed("paranoid"), "SMLLR_PARANOID", flags.paranoid)

	patterns, err := config.CompilePatterns(flags.skipPatterns)
	if err != nil {
		cmdsupport.Fatal(err, cmdsupport.ExitArguments)
	}
	action, err := config.ParseAction(flags.action)
	if err != nil {
		cmdsupport.Fatal(err, cmdsupport.ExitArguments)
	}
	selectPolicy, err := config.ParseSelectPolicy(flags.selectPolicy)
	if err != nil {
		cmdsupport.Fatal(err, cmdsupport.ExitArguments)
	}
	format, err := config.ParseFormat(flags.format)
	if err != nil {
		cmdsupport.Fatal(err, cmdsupport.ExitArguments)
	}
	level, ok := logging.NameToLevel(flags.logLevel)
	if !ok {
		cmdsupport.Fatal(fmt.Errorf("unknown log level: %s", flags.logLevel), cmdsupport.ExitArguments)
	}

	cfg := &config.Config{
		Roots:        arguments,
		SkipPaths:    flags.skipPaths,
		SkipPatterns: patterns,
		Algorithm:    filehash.FromParanoid(flags.paranoid),
		Action:       action,
		Select:       selectPolicy,
		Format:       format,
		LogLevel:     level,
		NoColor:      flags.noColor || !isatty.IsTerminal(os.Stdout.Fd()),
	}

	root := logging.NewRoot(cfg.LogLevel)
	color.NoColor = cfg.NoColor

	fs := osfs.New()

	walkLogger := root.Sublogger("walk")
	catalogLogger := root.Sublogger("catalog")
	actorLogger := root.Sublogger("actor")

	cataloger := catalog.New(fs, cfg.Algorithm, catalogLogger)

	walkOptions := walk.Options{
		Roots:        cfg.Roots,
		SkipPaths:    cfg.SkipPaths,
		SkipPatterns: cfg.SkipPatterns,
	}
	err = walk.Walk(context.Background(), fs, walkOptions, walkLogger, func(path string) error {
		cataloger.InsertSoft(path)
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "traversal failed")
	}

	groups := cataloger.GetRepeatGroups()
	selector := selectorFor(cfg.Select)

	var runner actor.Actor
	switch cfg.Action {
	case config.ActionPrint:
		runner = actor.NewPrinter(selector, os.Stdout, formatFor(cfg.Format))
	case config.ActionDelete:
		runner = actor.NewDeleter(selector, actorLogger)
	case config.ActionLink:
		runner = actor.NewLinker(selector, actorLogger)
	}

	report := runner.Act(fs, groups)
	for _, reportErr := range report.Errors {
		actorLogger.Warn(reportErr)
	}
	root.Printf("processed %d group(s), skipped %d, removed %d path(s), linked %d path(s)",
		report.GroupsProcessed, report.GroupsSkipped, report.PathsRemoved, report.PathsLinked)
	return nil
}

func selectorFor(policy config.SelectPolicy) actor.Selector {
	switch policy {
	case config.SelectShortest:
		return actor.NewPathSelector()
	case config.SelectLongest:
		return actor.NewPathSelector().Reversed()
	case config.SelectOldest:
		return actor.NewDateSelector().Reversed()
	case config.SelectNewest:
		return actor.NewDateSelector()
	default:
		return actor.NewPathSelector()
	}
}

func formatFor(format string) actor.Format {
	if format == "yaml" {
		return actor.FormatYAML
	}
	return actor.FormatText
}
