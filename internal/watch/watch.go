// Package watch rebuilds a project whenever one of its files changes.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/althtml/althtml/internal/project"
)

// DefaultSettle is how long a Watcher waits for changes to settle.
const DefaultSettle = 50 * time.Millisecond

// Watcher runs a build pass after files of its project change.
type Watcher struct {
	Builder project.Builder
	Log     *zap.SugaredLogger

	// Settle is how long to wait after a change for any further changes
	// before building; changes within it coalesce into one pass. Zero means
	// DefaultSettle.
	Settle time.Duration

	// OnBuild, if set, is called after every pass.
	OnBuild func(project.Report, error)
}

// Run watches the directories of the project's files until ctx is done.
// Passes run one at a time on the calling goroutine; a failed pass is logged,
// and retried upon the next change.
func (w *Watcher) Run(ctx context.Context) error {
	log := w.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	settle := w.Settle
	if settle <= 0 {
		settle = DefaultSettle
	}
	cfg := w.Builder.Config

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	dirs, err := cfg.WatchDirs()
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		log.Debugw("watching", "dir", dir)
	}

	var (
		timer   *time.Timer
		settled <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !cfg.Matches(ev.Name) {
				continue
			}
			log.Debugw("changed", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(settle)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(settle)
			}
			settled = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warnw("watch error", "error", err)

		case <-settled:
			settled = nil
			w.build(ctx, log)
		}
	}
}

func (w *Watcher) build(ctx context.Context, log *zap.SugaredLogger) {
	rep, err := w.Builder.Build(ctx)
	if err != nil {
		log.Errorw("build failed", "error", err)
	} else {
		log.Infow("built", "written", len(rep.Written), "elapsed", rep.Elapsed)
	}
	if w.OnBuild != nil {
		w.OnBuild(rep, err)
	}
}
