// Package pipeline provides the conversion pipeline for mdslides.
//
// This package implements the complete parse → layout → render pipeline used
// by the CLI. Centralizing it keeps defaults, caching and logging identical
// for one-shot conversions and --watch re-runs.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: split the markdown source into slides and elements
//  2. Layout: position every element on the slide canvas, one goroutine
//     per slide
//  3. Render: encode the pages as PPTX, JSON, SVG or PNG
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source: "talk.md",
//	    Dest:   "talk.pptx",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Files)
//
// Run individual stages:
//
//	doc, err := runner.Parse(ctx, "talk.md")
//	pages, err := runner.Layout(ctx, doc, opts)
//	artifacts, err := runner.Render(ctx, pages, doc, opts)
package pipeline

import (
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mdslides/pkg/deck"
	"github.com/matzehuels/mdslides/pkg/errors"
	"github.com/matzehuels/mdslides/pkg/layout"
	"github.com/matzehuels/mdslides/pkg/render/sink"
)

// Format constants for output formats.
const (
	FormatPPTX = "pptx"
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// DefaultFormat is used when neither --format nor the destination extension
// names a known format.
const DefaultFormat = FormatPPTX

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPPTX: true,
	FormatJSON: true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// Options contains all configuration for one conversion.
type Options struct {
	// Source is the markdown file to convert.
	Source string `json:"source"`

	// Dest is the output path. Multi-slide SVG and PNG output is written
	// next to it as <base>-NN.<ext>.
	Dest string `json:"dest"`

	// Format is one of pptx, json, svg or png. Empty infers it from Dest.
	Format string `json:"format,omitempty"`

	// ConfigPath names a TOML file overriding layout defaults.
	ConfigPath string `json:"config_path,omitempty"`

	// Layout overrides ConfigPath when set.
	Layout *layout.Config `json:"-"`

	// Workers bounds concurrent slide layout. Zero uses GOMAXPROCS.
	Workers int `json:"workers,omitempty"`

	// PNGWidth is the pixel width of PNG previews.
	PNGWidth int `json:"png_width,omitempty"`

	// Created is recorded in the PPTX core properties. Execute uses the
	// source file's modification time when zero.
	Created time.Time `json:"-"`

	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the parsed deck.
	Document *deck.Document

	// Pages holds one layout per slide in slide order.
	Pages []layout.Page

	// Artifacts maps output paths to their contents.
	Artifacts map[string][]byte

	// Files lists the written output paths in sorted order.
	Files []string

	// Warnings collects document and slide warnings in slide order.
	Warnings []deck.Warning

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Slides     int
	Boxes      int
	Warnings   int
	Bytes      int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether the artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: pptx, json, svg, png)", format)
	}
	return nil
}

// FormatFromPath infers the output format from a file extension. Unknown
// extensions yield DefaultFormat.
func FormatFromPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ValidFormats[ext] {
		return ext
	}
	return DefaultFormat
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidatePath(o.Source); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "source")
	}
	if err := errors.ValidatePath(o.Dest); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "destination")
	}

	if o.Format == "" {
		o.Format = FormatFromPath(o.Dest)
	}
	o.Format = strings.ToLower(o.Format)
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}

	if err := o.SetLayoutDefaults(); err != nil {
		return err
	}
	if o.PNGWidth <= 0 {
		o.PNGWidth = sink.DefaultPNGWidth
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults loads the layout configuration and applies worker and
// logger defaults.
func (o *Options) SetLayoutDefaults() error {
	if o.Layout == nil {
		cfg := layout.DefaultConfig()
		if o.ConfigPath != "" {
			loaded, err := layout.LoadConfig(o.ConfigPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		o.Layout = &cfg
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Canvas returns the slide size of the configured layout.
func (o *Options) Canvas() sink.Canvas {
	if o.Layout == nil {
		return sink.CanvasOf(layout.DefaultConfig())
	}
	return sink.CanvasOf(*o.Layout)
}
