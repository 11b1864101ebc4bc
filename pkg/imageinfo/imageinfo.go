// Package imageinfo resolves image references from a deck to files on disk
// and reports their pixel dimensions.
//
// Only the image header is decoded. PNG, JPEG and GIF are supported through
// the standard library; BMP, TIFF and WebP through golang.org/x/image.
// Remote references (http, https, data URIs) are never fetched and resolve
// to an error.
//
// Results are memoized for the lifetime of a [Prober] and, when a cache is
// configured, persisted across runs keyed by path, size and modification
// time.
package imageinfo

import (
	"context"
	"encoding/json"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/mdslides/pkg/cache"
	"github.com/matzehuels/mdslides/pkg/errors"
	"github.com/matzehuels/mdslides/pkg/observability"
)

// Info describes a resolved image.
type Info struct {
	Path   string `json:"path"`   // file path after resolution against the deck directory
	Width  int    `json:"width"`  // pixels
	Height int    `json:"height"` // pixels
	Format string `json:"format"` // decoder name: png, jpeg, gif, bmp, tiff, webp
}

// Extension returns the file extension conventionally used for the format,
// without the leading dot.
func (i Info) Extension() string {
	if i.Format == "" {
		return "bin"
	}
	return i.Format
}

// ContentType returns the MIME type of the image.
func (i Info) ContentType() string {
	if i.Format == "" {
		return "application/octet-stream"
	}
	return "image/" + i.Format
}

// Prober resolves image references. It is safe for concurrent use.
type Prober struct {
	// BaseDir is joined with relative references, normally the directory
	// holding the markdown source.
	BaseDir string

	// Cache persists probe results. Nil disables persistence.
	Cache cache.Cache

	// Keys builds cache keys. Nil uses cache.NewDefaultKeyer.
	Keys cache.Keyer

	mu   sync.Mutex
	seen map[string]result
}

type result struct {
	info Info
	err  error
}

// NewProber returns a Prober rooted at baseDir.
func NewProber(baseDir string, c cache.Cache) *Prober {
	return &Prober{BaseDir: baseDir, Cache: c}
}

// Resolve locates src and decodes its dimensions.
func (p *Prober) Resolve(src string) (Info, error) {
	return p.ResolveContext(context.Background(), src)
}

// ResolveContext is Resolve with a context for cache access and hooks.
func (p *Prober) ResolveContext(ctx context.Context, src string) (Info, error) {
	p.mu.Lock()
	if r, ok := p.seen[src]; ok {
		p.mu.Unlock()
		return r.info, r.err
	}
	p.mu.Unlock()

	start := time.Now()
	info, err := p.probe(ctx, src)
	if err != nil {
		observability.Image().OnImageUnresolved(ctx, src, err)
	} else {
		observability.Image().OnImageResolved(ctx, src, info.Width, info.Height, time.Since(start))
	}

	p.mu.Lock()
	if p.seen == nil {
		p.seen = make(map[string]result)
	}
	p.seen[src] = result{info: info, err: err}
	p.mu.Unlock()
	return info, err
}

func (p *Prober) probe(ctx context.Context, src string) (Info, error) {
	if src == "" {
		return Info{}, errors.New(errors.ErrCodeImageUnresolved, "empty image reference")
	}
	if IsRemote(src) {
		return Info{}, errors.New(errors.ErrCodeImageUnresolved, "remote image %q is not fetched", src)
	}

	path := src
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.BaseDir, path)
	}
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, errors.Wrap(errors.ErrCodeImageUnresolved, err, "image %q", src)
	}
	if fi.IsDir() {
		return Info{}, errors.New(errors.ErrCodeImageUnresolved, "image %q is a directory", src)
	}

	key := p.keys().ImageKey(path, fi.Size(), fi.ModTime())
	if info, ok := p.cached(ctx, key); ok {
		return info, nil
	}

	info, err := decode(path)
	if err != nil {
		return Info{}, errors.Wrap(errors.ErrCodeImageUnresolved, err, "image %q", src)
	}
	p.store(ctx, key, info)
	return info, nil
}

func decode(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Info{}, errors.New(errors.ErrCodeImageUnresolved, "zero-sized image")
	}
	return Info{Path: path, Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

func (p *Prober) keys() cache.Keyer {
	if p.Keys == nil {
		return cache.NewDefaultKeyer()
	}
	return p.Keys
}

func (p *Prober) cached(ctx context.Context, key string) (Info, bool) {
	if p.Cache == nil {
		return Info{}, false
	}
	data, hit, err := p.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "image")
		return Info{}, false
	}
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		observability.Cache().OnCacheMiss(ctx, "image")
		return Info{}, false
	}
	observability.Cache().OnCacheHit(ctx, "image")
	return info, true
}

func (p *Prober) store(ctx context.Context, key string, info Info) {
	if p.Cache == nil {
		return
	}
	data, err := json.Marshal(info)
	if err != nil {
		return
	}
	if err := p.Cache.Set(ctx, key, data, cache.ImageTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "image", len(data))
	}
}
