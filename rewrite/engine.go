// Package rewrite drives fragment substitution over a corpus. Every document
// goes through the same fixed sequence of steps in memory and is written back
// once, only when its content actually changed.
package rewrite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"navsync/common"
	"navsync/config"
	"navsync/corpus"
	"navsync/match"
	"navsync/nav"
	"navsync/render"
)

// ErrPanic is set as document error when processing panicked.
var ErrPanic = errors.New("document processing panic")

// Storage reads and writes whole documents.
type Storage interface {
	Read(ctx context.Context, path string) ([]byte, error)
	Write(ctx context.Context, path string, data []byte) error
}

// Option configures Engine.
type Option func(*Engine)

// WithWorkers sets number of documents processed in parallel, 0 means number
// of CPUs.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithDryRun makes engine compute results without writing anything.
func WithDryRun(dry bool) Option {
	return func(e *Engine) {
		e.dryRun = dry
	}
}

// WithReport stores original content of every rewritten document in debug
// report.
func WithReport(rpt *config.Report) Option {
	return func(e *Engine) {
		e.rpt = rpt
	}
}

// WithOnDone sets callback invoked after each document is finished. It is
// called from worker goroutines and must be safe for concurrent use.
func WithOnDone(fn func(Result)) Option {
	return func(e *Engine) {
		e.onDone = fn
	}
}

type anchors struct {
	logo, topNav, sideNav match.Anchor
}

// Engine is immutable after creation and may run any number of batches.
type Engine struct {
	nav     *nav.Navigation
	render  *render.Renderer
	anchors anchors

	colors    []config.ReplacementConfig
	literals  []config.ReplacementConfig
	oldSuffix string
	expect    map[common.FragmentKind]bool

	store   Storage
	rpt     *config.Report
	log     *zap.Logger
	workers int
	dryRun  bool
	onDone  func(Result)
}

// New validates navigation configuration and prepares renderer. Any
// configuration problem is reported here, before a single document is read.
func New(cfg *config.Config, store Storage, log *zap.Logger, opts ...Option) (*Engine, error) {
	n, err := nav.New(&cfg.Navigation)
	if err != nil {
		return nil, err
	}
	r, err := render.New(n, cfg)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		nav:    n,
		render: r,
		anchors: anchors{
			logo:    cfg.Anchors.Logo.Anchor(),
			topNav:  cfg.Anchors.TopNav.Anchor(),
			sideNav: cfg.Anchors.SideNav.Anchor(),
		},
		colors:    cfg.Brand.Colors,
		literals:  cfg.Brand.Literals,
		oldSuffix: cfg.Brand.Title.OldSuffix,
		expect:    make(map[common.FragmentKind]bool),
		store:     store,
		log:       log.Named("rewrite"),
		workers:   cfg.Processing.Workers,
	}
	for _, kind := range cfg.Processing.Expect {
		if !kind.IsValid() {
			return nil, fmt.Errorf("unable to use expected fragments: %s %w, known kinds %v", kind, common.ErrInvalidFragmentKind, common.FragmentKindNames())
		}
		e.expect[kind] = true
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers <= 0 {
		e.workers = runtime.NumCPU()
	}

	e.rpt.StoreData("navigation.txt", []byte(n.String()))
	if len(cfg.Navigation.Badge.ID) > 0 && !n.HasBadge() {
		e.log.Warn("Badge item is not present in sidebar, badge will not be rendered", zap.String("item", cfg.Navigation.Badge.ID))
	}
	return e, nil
}

// Run processes documents and returns summary in the order of entries.
// Failure of a single document never stops the batch. When ctx is cancelled
// documents which have not started yet are reported as cancelled.
func (e *Engine) Run(ctx context.Context, entries []corpus.Entry) *Summary {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	log := e.log.With(zap.Stringer("run", id))

	sum := &Summary{
		RunID:   id,
		DryRun:  e.dryRun,
		Results: make([]Result, len(entries)),
	}

	log.Info("Processing starting", zap.Int("documents", len(entries)), zap.Int("workers", e.workers), zap.Bool("dry-run", e.dryRun))
	defer func(start time.Time) {
		sum.Elapsed = time.Since(start)
		log.Info("Processing completed",
			zap.Duration("elapsed", sum.Elapsed),
			zap.Int("rewritten", sum.Count(common.OutcomeRewritten)),
			zap.Int("unchanged", sum.Count(common.OutcomeUnchanged)),
			zap.Int("failed", sum.Count(common.OutcomeFailed)),
			zap.Int("cancelled", sum.Count(common.OutcomeCancelled)))
	}(time.Now())

	var eg errgroup.Group
	eg.SetLimit(e.workers)
	for i, entry := range entries {
		if ctx.Err() != nil {
			sum.Results[i] = e.finish(cancelled(entry, ctx.Err()))
			continue
		}
		eg.Go(func() error {
			sum.Results[i] = e.finish(e.process(ctx, entry, log))
			return nil
		})
	}
	// workers never return errors, failures are kept in results
	_ = eg.Wait()
	return sum
}

func (e *Engine) finish(res Result) Result {
	if e.onDone != nil {
		e.onDone(res)
	}
	return res
}

func cancelled(entry corpus.Entry, err error) Result {
	return Result{ID: entry.ID, Path: entry.Path, Outcome: common.OutcomeCancelled, Err: err}
}

// process takes single document through all steps. Document is written only
// when all steps succeeded and content has changed.
func (e *Engine) process(ctx context.Context, entry corpus.Entry, log *zap.Logger) (res Result) {
	if err := ctx.Err(); err != nil {
		return cancelled(entry, err)
	}

	res = Result{ID: entry.ID, Path: entry.Path}
	log = log.With(zap.String("doc", entry.RelPath))

	defer func(start time.Time) {
		res.Elapsed = time.Since(start)
		// Document may be arbitrary broken markup, one bad document must not
		// take the whole batch down.
		if r := recover(); r != nil {
			res.Outcome, res.Err = common.OutcomeFailed, fmt.Errorf("%w: %v", ErrPanic, r)
			log.Error("Document processing ended with panic", zap.Error(res.Err), zap.ByteString("stack", debug.Stack()))
			return
		}
		switch res.Outcome {
		case common.OutcomeFailed:
			log.Error("Unable to process document", zap.Error(res.Err))
		case common.OutcomeCancelled:
			log.Debug("Document processing cancelled", zap.Error(res.Err))
		default:
			log.Debug("Document processed", zap.Stringer("outcome", res.Outcome),
				zap.Stringers("applied", res.Applied), zap.Duration("elapsed", res.Elapsed))
		}
	}(time.Now())

	raw, err := e.store.Read(ctx, entry.Path)
	if err != nil {
		res.Outcome, res.Err = common.OutcomeFailed, err
		return res
	}

	doc := &Document{ID: entry.ID, Path: entry.Path, Raw: raw}
	for _, s := range e.steps() {
		matched, err := s.apply(doc)
		if err != nil {
			res.Outcome, res.Err = common.OutcomeFailed, fmt.Errorf("%s: %w", s.kind, err)
			return res
		}
		if matched {
			res.Applied = append(res.Applied, s.kind)
			continue
		}
		res.Skipped = append(res.Skipped, s.kind)
		if e.expect[s.kind] {
			log.Warn("Expected fragment not found", zap.Stringer("fragment", s.kind))
		} else {
			log.Debug("Fragment not found", zap.Stringer("fragment", s.kind))
		}
	}

	if bytes.Equal(doc.Raw, raw) {
		res.Outcome = common.OutcomeUnchanged
		return res
	}
	if err := ctx.Err(); err != nil {
		return cancelled(entry, err)
	}
	if e.dryRun {
		res.Outcome = common.OutcomeRewritten
		return res
	}

	e.rpt.StoreOriginal(entry.RelPath, raw)
	if err := e.store.Write(ctx, entry.Path, doc.Raw); err != nil {
		res.Outcome, res.Err = common.OutcomeFailed, err
		return res
	}
	res.Outcome = common.OutcomeRewritten
	return res
}
