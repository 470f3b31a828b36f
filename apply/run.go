// Package apply implements corpus processing subcommands.
package apply

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/term"

	"navsync/common"
	"navsync/corpus"
	"navsync/rewrite"
	"navsync/state"
	"navsync/storage"
)

// ErrOutOfSync is returned by check when some documents would be rewritten.
var ErrOutOfSync = errors.New("documents are out of sync")

// Run rewrites corpus in place.
func Run(ctx context.Context, cmd *cli.Command) error {
	return run(ctx, cmd, false)
}

// Check processes corpus without writing anything and fails when any document
// would change.
func Check(ctx context.Context, cmd *cli.Command) error {
	return run(ctx, cmd, true)
}

func run(ctx context.Context, cmd *cli.Command, dryRun bool) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named(cmd.Name)

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no corpus has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	env.DryRun = dryRun
	if cmd.IsSet("workers") {
		env.Workers = cmd.Int("workers")
	}
	env.Progress = cmd.Bool("progress")

	log.Info("Processing starting", zap.String("source", src), zap.Bool("dry-run", env.DryRun))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	sum, err := process(ctx, src, env, log)
	if err != nil {
		return err
	}
	if err := sum.Err(); err != nil {
		return fmt.Errorf("unable to process %d of %d documents: %w", sum.Count(common.OutcomeFailed), len(sum.Results), err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("processing interrupted, %d documents were not processed: %w", sum.Count(common.OutcomeCancelled), err)
	}
	if changed := sum.Changed(); dryRun && len(changed) > 0 {
		return fmt.Errorf("%w: %d of %d would be rewritten", ErrOutOfSync, len(changed), len(sum.Results))
	}
	return nil
}

// process handles the core logic independently of CLI framework: enumerates
// corpus and runs it through rewrite engine.
func process(ctx context.Context, src string, env *state.LocalEnv, log *zap.Logger) (*rewrite.Summary, error) {
	entries, err := corpus.Enumerate(src, env.Cfg.Corpus.Include, env.Cfg.Corpus.Exclude)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		log.Warn("Nothing to process", zap.String("source", src), zap.Strings("include", env.Cfg.Corpus.Include))
	}

	opts := env.RewriteOptions()

	var bar *progressbar.ProgressBar
	if env.Progress && len(entries) > 0 && term.IsTerminal(int(os.Stderr.Fd())) {
		bar = newProgressBar(len(entries))
		opts = append(opts, rewrite.WithOnDone(func(rewrite.Result) {
			_ = bar.Add(1)
		}))
	}

	engine, err := rewrite.New(env.Cfg, storage.FS{}, log, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare rewrite: %w", err)
	}
	sum := engine.Run(ctx, entries)
	if bar != nil {
		_ = bar.Finish()
	}

	for _, r := range sum.Results {
		switch {
		case r.Outcome == common.OutcomeRewritten && env.DryRun:
			log.Info("Document would be rewritten", zap.String("doc", r.Path), zap.Stringers("fragments", r.Applied))
		case r.Outcome == common.OutcomeRewritten:
			log.Info("Document rewritten", zap.String("doc", r.Path), zap.Stringers("fragments", r.Applied))
		}
	}

	if env.Rpt != nil {
		buf := new(bytes.Buffer)
		if _, err := sum.WriteTo(buf); err == nil {
			env.Rpt.StoreData("summary.txt", buf.Bytes())
		}
	}
	return sum, nil
}

func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Processing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
