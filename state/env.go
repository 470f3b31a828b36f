// Package state keeps program wide environment carried in context.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"navsync/config"
	"navsync/rewrite"
)

type envKey struct{}

// LocalEnv is created before command line is parsed and filled by Before
// handler and subcommands.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// Run parameters from command line, negative Workers means value from
	// configuration.
	DryRun   bool
	Workers  int
	Progress bool

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// ContextWithEnv is the first thing main does
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// RewriteOptions turns run parameters into rewrite engine options.
func (e *LocalEnv) RewriteOptions() []rewrite.Option {
	opts := []rewrite.Option{
		rewrite.WithDryRun(e.DryRun),
		rewrite.WithReport(e.Rpt),
	}
	if e.Workers >= 0 {
		opts = append(opts, rewrite.WithWorkers(e.Workers))
	}
	return opts
}

// RedirectStdLog sends output of standard library log (used by some
// dependencies) to program log at info level.
func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

// RestoreStdLog syncs program log and undoes RedirectStdLog.
func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
