// Package cli implements the mdslides command-line interface.
//
// The root command converts a Marp markdown deck into a PowerPoint file or
// one of the preview formats. Subcommands inspect decks and presentations,
// manage the render cache and print shell completions. The CLI is built
// using cobra and logs via the charmbracelet/log library.
//
// # Commands
//
//   - mdslides SOURCE DEST: convert a deck, optionally re-running on change
//     with --watch
//   - inspect: summarize a markdown deck or a .pptx file slide by slide
//   - cache: show or clear the render cache
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. In verbose
// mode pipeline, cache and image events are logged through observability
// hooks.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mdslides/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Saved 12 slides to talk.pptx (84ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Logging Hooks
// =============================================================================

// logHooks reports observability events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

// registerLogHooks routes pipeline, cache and image events to l.
func registerLogHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetImageHooks(h)
}

func (h *logHooks) OnParseStart(_ context.Context, source string) {
	h.logger.Debug("parse started", "source", source)
}

func (h *logHooks) OnParseComplete(_ context.Context, source string, slides int, d time.Duration, err error) {
	h.logger.Debug("parse finished", "source", source, "slides", slides, "duration", d, "error", err)
}

func (h *logHooks) OnLayoutStart(_ context.Context, slides int) {
	h.logger.Debug("layout started", "slides", slides)
}

func (h *logHooks) OnLayoutComplete(_ context.Context, boxes, warnings int, d time.Duration, err error) {
	h.logger.Debug("layout finished", "boxes", boxes, "warnings", warnings, "duration", d, "error", err)
}

func (h *logHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("render started", "format", format)
}

func (h *logHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.logger.Debug("render finished", "format", format, "bytes", size, "duration", d, "error", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnImageResolved(_ context.Context, src string, width, height int, d time.Duration) {
	h.logger.Debug("image resolved", "src", src, "width", width, "height", height, "duration", d)
}

func (h *logHooks) OnImageUnresolved(_ context.Context, src string, err error) {
	h.logger.Debug("image unresolved", "src", src, "error", err)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, falling back to
// log.Default() when none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
