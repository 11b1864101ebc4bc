package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/mdslides/pkg/deck"
	"github.com/matzehuels/mdslides/pkg/imageinfo"
	"github.com/matzehuels/mdslides/pkg/layout"
	"github.com/matzehuels/mdslides/pkg/observability"
)

// Layout positions every slide of doc. Slides are laid out concurrently,
// at most opts.Workers at a time; the returned pages are in slide order.
//
// Image references are resolved relative to the directory of opts.Source.
// Unresolvable images become page warnings, never errors.
func (r *Runner) Layout(ctx context.Context, doc *deck.Document, opts Options) (pages []layout.Page, err error) {
	r.applyLogger(&opts)
	if err := opts.SetLayoutDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(doc.Slides))
	start := time.Now()
	defer func() {
		boxes, warnings := 0, 0
		for _, p := range pages {
			boxes += len(p.Boxes)
			warnings += len(p.Warnings)
		}
		hooks.OnLayoutComplete(ctx, boxes, warnings, time.Since(start), err)
	}()

	prober := imageinfo.NewProber(filepath.Dir(opts.Source), r.Cache)
	prober.Keys = r.Keyer
	engine := layout.NewEngine(*opts.Layout, &contextResolver{ctx: ctx, prober: prober})

	out := make([]layout.Page, len(doc.Slides))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, s := range doc.Slides {
		i, s := i, s
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = engine.Layout(s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, p := range out {
		for _, w := range p.Warnings {
			opts.Logger.Warn(w.Message, "slide", w.Slide+1)
		}
	}
	return out, nil
}

// contextResolver adapts a Prober to layout.ImageResolver, carrying the
// pipeline context into cache lookups and hooks.
type contextResolver struct {
	ctx    context.Context
	prober *imageinfo.Prober
}

func (c *contextResolver) Resolve(src string) (imageinfo.Info, error) {
	return c.prober.ResolveContext(c.ctx, src)
}
