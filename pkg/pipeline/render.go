package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/matzehuels/mdslides/pkg/deck"
	"github.com/matzehuels/mdslides/pkg/errors"
	"github.com/matzehuels/mdslides/pkg/layout"
	"github.com/matzehuels/mdslides/pkg/observability"
	"github.com/matzehuels/mdslides/pkg/render/pptx"
	"github.com/matzehuels/mdslides/pkg/render/sink"
)

// RenderPages encodes pages in opts.Format. The result maps each output
// path to its contents: one entry for pptx and json, one per slide for
// multi-slide svg and png.
func RenderPages(pages []layout.Page, doc *deck.Document, opts Options) (map[string][]byte, error) {
	canvas := opts.Canvas()
	artifacts := make(map[string][]byte)

	switch opts.Format {
	case FormatPPTX:
		var buf bytes.Buffer
		err := pptx.Write(&buf, pptx.Presentation{
			Width:    canvas.Width,
			Height:   canvas.Height,
			Pages:    pages,
			Metadata: doc.Metadata,
			Created:  opts.Created,
		})
		if err != nil {
			return nil, fmt.Errorf("render pptx: %w", err)
		}
		artifacts[opts.Dest] = buf.Bytes()

	case FormatJSON:
		data, err := sink.RenderJSON(pages, canvas,
			sink.WithJSONMetadata(doc.Metadata),
			sink.WithJSONSource(opts.Source),
		)
		if err != nil {
			return nil, fmt.Errorf("render json: %w", err)
		}
		artifacts[opts.Dest] = data

	case FormatSVG, FormatPNG:
		paths := OutputPaths(opts.Dest, len(pages))
		for i, p := range pages {
			if opts.Format == FormatSVG {
				artifacts[paths[i]] = sink.RenderSVG(p, canvas)
				continue
			}
			data, err := sink.RenderPNG(p, canvas, opts.PNGWidth)
			if err != nil {
				return nil, fmt.Errorf("render png slide %d: %w", i+1, err)
			}
			artifacts[paths[i]] = data
		}

	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", opts.Format)
	}

	return artifacts, nil
}

// OutputPaths returns the per-slide output paths for n slides. A single
// slide is written to dest itself; otherwise slides are numbered from 01
// before the extension.
func OutputPaths(dest string, n int) []string {
	if n == 1 {
		return []string{dest}
	}
	ext := filepath.Ext(dest)
	base := strings.TrimSuffix(dest, ext)
	width := 2
	if digits := len(fmt.Sprint(n)); digits > width {
		width = digits
	}
	paths := make([]string, n)
	for i := range paths {
		paths[i] = fmt.Sprintf("%s-%0*d%s", base, width, i+1, ext)
	}
	return paths
}

// WriteArtifacts writes every artifact to disk, creating parent directories,
// and returns the written paths in sorted order.
func WriteArtifacts(artifacts map[string][]byte) ([]string, error) {
	paths := make([]string, 0, len(artifacts))
	for p := range artifacts {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory for %s", p)
		}
		if err := os.WriteFile(p, artifacts[p], 0o644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", p)
		}
	}
	return paths, nil
}

// renderKey fingerprints everything that determines the rendered bytes: the
// laid-out pages, deck metadata, and the size and modification time of every
// embedded image file.
func renderKey(pages []layout.Page, doc *deck.Document, opts Options) (string, error) {
	data, err := sink.RenderJSON(pages, opts.Canvas(), sink.WithJSONMetadata(doc.Metadata))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.Write(data)
	for _, p := range pages {
		for _, img := range p.Images() {
			if img.Image == nil {
				continue
			}
			if st, err := os.Stat(img.Image.Path); err == nil {
				fmt.Fprintf(&b, "\n%s:%d:%d", img.Image.Path, st.Size(), st.ModTime().UnixNano())
			}
		}
	}
	if !opts.Created.IsZero() {
		fmt.Fprintf(&b, "\ncreated:%d", opts.Created.Unix())
	}
	return b.String(), nil
}

func renderHooks(ctx context.Context, format string, fn func() (map[string][]byte, bool, error)) (map[string][]byte, bool, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()
	artifacts, hit, err := fn()
	size := 0
	for _, data := range artifacts {
		size += len(data)
	}
	hooks.OnRenderComplete(ctx, format, size, time.Since(start), err)
	return artifacts, hit, err
}
