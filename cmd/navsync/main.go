package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"navsync/apply"
	"navsync/config"
	"navsync/misc"
	"navsync/state"
)

// beforeCommand loads configuration and sets up logging and debug report once
// command line has been parsed.
func beforeCommand(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.NArg() == 0 {
		// help or version only
		return ctx, nil
	}

	var (
		env        = state.EnvFromContext(ctx)
		configFile = cmd.String("config")
		err        error
	)

	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug report: %w", err)
		}
		if len(configFile) > 0 {
			// user file is merged over defaults, keep the result
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData("config/"+filepath.Base(configFile), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started",
		zap.Strings("args", os.Args),
		zap.String("ver", misc.GetVersion()),
		zap.String("runtime", runtime.Version()),
		zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

// afterCommand flushes logs and closes debug report. Log is not usable after
// that, problems go to returned error.
func afterCommand(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}
	env.RestoreStdLog()

	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		err = multierr.Append(err, removeEmptyCrashLog(env.Cfg.Logging.FileLogger.Destination))
	}
	return err
}

func removeEmptyCrashLog(logDestination string) error {
	debug.SetCrashOutput(nil, debug.CrashOptions{})

	fname := filepath.Join(filepath.Dir(logDestination), misc.GetAppName()+"-panic.log")
	if fi, err := os.Stat(fname); err != nil || fi.Size() > 0 {
		return nil
	}
	if err := os.Remove(fname); err != nil {
		return fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, err)
	}
	return nil
}

// Subcommands return plain errors, cli.Exit is never used. errLogged tells
// main whether error already went to the log.
var errLogged bool

// exitErrHandler runs before afterCommand while log is still open.
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	if env := state.EnvFromContext(ctx); env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errLogged = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func commandNotFound(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

const sourceHelpTemplate = `%s
SOURCE:
    path to corpus, following forms are supported:
        path to a file: "[path_to_file]page.html" - process single document
        path to a directory: "[path_to_directory]directory" - recursively process all documents under directory
            selected by corpus include and exclude patterns from configuration (symbolic links are not followed)

    Documents are rewritten in place. Run "check" first to see what would change.
`

const dumpHelpTemplate = `%s
DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual configuration: embedded defaults with values from
configuration file merged over them. Use --default to see embedded defaults only.
`

func corpusFlags(progress bool) []cli.Flag {
	flags := []cli.Flag{
		&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "process `N` documents in parallel (0 - number of CPUs), overrides configuration"},
	}
	if progress {
		flags = append(flags, &cli.BoolFlag{Name: "progress", Aliases: []string{"p"}, Usage: "show progress bar when running in terminal"})
	}
	return flags
}

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:               "sync",
			Usage:              "Rewrites navigation, logo, title and brand colors of every document in the corpus",
			OnUsageError:       usageErrorHandler,
			Action:             apply.Run,
			Flags:              corpusFlags(true),
			ArgsUsage:          "SOURCE",
			CustomHelpTemplate: fmt.Sprintf(sourceHelpTemplate, cli.CommandHelpTemplate),
		},
		{
			Name:               "check",
			Usage:              "Reports documents which are out of sync without changing anything",
			OnUsageError:       usageErrorHandler,
			Action:             apply.Check,
			Flags:              corpusFlags(false),
			ArgsUsage:          "SOURCE",
			CustomHelpTemplate: fmt.Sprintf(sourceHelpTemplate, cli.CommandHelpTemplate),
		},
		{
			Name:  "dumpconfig",
			Usage: "Dumps either default or actual configuration (YAML)",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
			},
			OnUsageError:       usageErrorHandler,
			Action:             outputConfiguration,
			ArgsUsage:          "DESTINATION",
			CustomHelpTemplate: fmt.Sprintf(dumpHelpTemplate, cli.CommandHelpTemplate),
		},
	}
}

func main() {
	// interrupted sync stops scheduling documents, writes in flight complete
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "keeps repeated navigation fragments of HTML pages in sync with configuration",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          beforeCommand,
		After:           afterCommand,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: commandNotFound,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: commands(),
	}

	err := app.Run(ctx, os.Args)
	stop()
	if err != nil {
		// log may be not ready yet (argument parsing) or closed already
		if !errLogged {
			fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
		}
		os.Exit(1)
	}
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	var (
		data []byte
		kind = "actual"
	)
	if cmd.Bool("default") {
		kind = "default"
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	fname := cmd.Args().Get(0)
	if len(fname) == 0 {
		env.Log.Info("Outputting configuration", zap.String("state", kind), zap.String("file", "STDOUT"))
		_, err = os.Stdout.Write(data)
	} else {
		env.Log.Info("Outputting configuration", zap.String("state", kind), zap.String("file", fname))
		err = os.WriteFile(fname, data, 0o644)
	}
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
