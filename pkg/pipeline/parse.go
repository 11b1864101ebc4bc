package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/matzehuels/mdslides/pkg/deck"
	"github.com/matzehuels/mdslides/pkg/errors"
	"github.com/matzehuels/mdslides/pkg/markup"
	"github.com/matzehuels/mdslides/pkg/observability"
)

// Parse reads and parses the markdown file at src. Document-level warnings,
// such as malformed frontmatter, are logged and otherwise ignored.
func (r *Runner) Parse(ctx context.Context, src string) (*deck.Document, error) {
	doc, warnings, err := r.parse(ctx, src)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		r.Logger.Warn(w.Message)
	}
	return doc, nil
}

func (r *Runner) parse(ctx context.Context, src string) (doc *deck.Document, warnings []deck.Warning, err error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, src)
	start := time.Now()
	defer func() {
		slides := 0
		if doc != nil {
			slides = len(doc.Slides)
		}
		hooks.OnParseComplete(ctx, src, slides, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "source file not found: %s", src)
		}
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", src)
	}

	doc, warnings = markup.Parse(string(data))
	r.Logger.Debug("parsed source", "path", src, "slides", len(doc.Slides), "bytes", len(data))
	return doc, warnings, nil
}
