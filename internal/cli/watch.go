package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/mdslides/pkg/errors"
	"github.com/matzehuels/mdslides/pkg/pipeline"
)

// watchDebounce coalesces the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

// watch re-runs the conversion whenever the source file is written or
// re-created, until ctx is canceled. Failed runs are reported and the
// watch continues.
func (c *CLI) watch(ctx context.Context, out io.Writer, runner *pipeline.Runner, opts pipeline.Options) error {
	target, err := filepath.Abs(opts.Source)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", opts.Source)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()

	// Editors that save by rename replace the file, dropping a watch on the
	// file itself, so the parent directory is watched instead.
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	printInfo(out, "Watching %s for changes (Ctrl+C to stop)", opts.Source)

	var (
		timer *time.Timer
		fire  <-chan time.Time
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

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if name, err := filepath.Abs(ev.Name); err != nil || name != target {
				continue
			}
			c.Logger.Debug("source changed", "event", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := c.convert(ctx, out, runner, opts); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				printWarning(out, "Conversion failed: %s", errors.UserMessage(err))
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "error", err)
		}
	}
}
