package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mdslides/pkg/buildinfo"
	"github.com/matzehuels/mdslides/pkg/cache"
	"github.com/matzehuels/mdslides/pkg/deck"
	"github.com/matzehuels/mdslides/pkg/layout"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer scoped to the program version is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline and writes the
// artifacts to disk.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	if opts.Created.IsZero() {
		if st, err := os.Stat(opts.Source); err == nil {
			opts.Created = st.ModTime()
		}
	}

	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	doc, docWarnings, err := r.parse(ctx, opts.Source)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	for _, w := range docWarnings {
		opts.Logger.Warn(w.Message)
	}
	result.Document = doc
	result.Warnings = append(result.Warnings, docWarnings...)
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.Slides = len(doc.Slides)

	r.Logger.Info("parsed source",
		"slides", len(doc.Slides),
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	pages, err := r.Layout(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Pages = pages
	result.Stats.LayoutTime = time.Since(layoutStart)
	for _, p := range pages {
		result.Stats.Boxes += len(p.Boxes)
		result.Warnings = append(result.Warnings, p.Warnings...)
	}
	result.Stats.Warnings = len(result.Warnings)

	r.Logger.Info("computed layout",
		"boxes", result.Stats.Boxes,
		"warnings", result.Stats.Warnings,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, pages, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = hit
	for _, data := range artifacts {
		result.Stats.Bytes += len(data)
	}

	files, err := WriteArtifacts(artifacts)
	if err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	result.Files = files
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered output",
		"format", opts.Format,
		"files", len(files),
		"bytes", result.Stats.Bytes,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders pages with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, pages []layout.Page, doc *deck.Document, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	return renderHooks(ctx, opts.Format, func() (map[string][]byte, bool, error) {
		fingerprint, err := renderKey(pages, doc, opts)
		if err != nil {
			return nil, false, fmt.Errorf("fingerprint pages: %w", err)
		}
		cfg, _ := json.Marshal(opts.Layout)
		cacheKey := r.Keyer.ArtifactKey(cache.Hash([]byte(fingerprint)), cache.ArtifactKeyOpts{
			Format:     opts.Format,
			ConfigHash: cache.Hash(cfg),
			Width:      opts.PNGWidth,
		})

		// Try cache first. Paths are part of the bundle, so a hit for a
		// different destination is re-rendered.
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached map[string][]byte
			if json.Unmarshal(data, &cached) == nil && samePaths(cached, opts, len(pages)) {
				return cached, true, nil
			}
		}

		artifacts, err := RenderPages(pages, doc, opts)
		if err != nil {
			return nil, false, err
		}

		if data, err := json.Marshal(artifacts); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.ArtifactTTL); err != nil {
				opts.Logger.Debug("cache write failed", "error", err)
			}
		}
		return artifacts, false, nil
	})
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, pages []layout.Page, doc *deck.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, pages, doc, opts)
	return artifacts, err
}

func samePaths(artifacts map[string][]byte, opts Options, slides int) bool {
	want := []string{opts.Dest}
	if opts.Format == FormatSVG || opts.Format == FormatPNG {
		want = OutputPaths(opts.Dest, slides)
	}
	if len(artifacts) != len(want) {
		return false
	}
	for _, p := range want {
		if _, ok := artifacts[p]; !ok {
			return false
		}
	}
	return true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
