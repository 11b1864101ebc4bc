// Package pkg provides the core libraries for mdslides, a converter from
// Marp-flavored markdown decks to PowerPoint presentations.
//
// # Overview
//
// A deck is plain markdown split into slides by "---" lines, with an
// optional YAML frontmatter block and HTML comments as speaker notes. The
// pkg directory is organized into three areas:
//
//  1. Domain logic: [deck], [markup] and [layout]
//  2. Output: [render/pptx] and the preview sinks in [render/sink]
//  3. Infrastructure: [pipeline], [cache], [imageinfo], [observability],
//     [errors] and [buildinfo]
//
// # Architecture
//
// The data flow through mdslides:
//
//	Markdown source
//	         ↓
//	    [markup] package (split, parse elements, extract notes)
//	         ↓
//	    [deck] package (typed slides and elements)
//	         ↓
//	    [layout] package (absolute boxes in EMU, one page per slide)
//	         ↓
//	    PPTX / JSON / SVG / PNG output
//
// # Quick Start
//
// Convert a deck without the pipeline:
//
//	doc, warnings := markup.Parse(text)
//	engine := layout.NewEngine(layout.DefaultConfig(), imageinfo.NewProber(".", nil))
//
//	pages := make([]layout.Page, len(doc.Slides))
//	for i, s := range doc.Slides {
//	    pages[i] = engine.Layout(s)
//	}
//
//	cfg := layout.DefaultConfig()
//	err := pptx.WriteFile("talk.pptx", pptx.Presentation{
//	    Width:    cfg.Width,
//	    Height:   cfg.Height,
//	    Pages:    pages,
//	    Metadata: doc.Metadata,
//	})
//
// Or run every stage with caching and concurrent layout:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source: "talk.md",
//	    Dest:   "talk.pptx",
//	})
//
// # Main Packages
//
// [markup] - Line-oriented parser. Splits the source into slides, decodes
// the frontmatter, and turns each slide into headings, paragraphs, quotes,
// code blocks, lists, tables and images. Inline emphasis becomes styled runs.
//
// [deck] - The parsed document: slides, the closed set of element types,
// slide classification (title or content) and non-fatal warnings.
//
// [layout] - Flow layout engine. Title slides are centered; content slides
// flow top-down with per-element sizing policies. Sizes are [layout.Length]
// values in English Metric Units. Styling comes from a TOML config.
//
// [render/pptx] - Office Open XML writer and reader. Boxes become text
// boxes, pictures and tables; notes become notes slides.
//
// [render/sink] - Preview renderers: JSON layout dumps, SVG and PNG.
//
// [pipeline] - Parse → layout → render orchestration used by the CLI, with
// render caching and bounded concurrency.
//
// [imageinfo] - Image dimension probing for layout, cached by file content.
//
// [cache] - Byte cache with file and null backends and key derivation.
//
// [deck]: https://pkg.go.dev/github.com/matzehuels/mdslides/pkg/deck
// [markup]: https://pkg.go.dev/github.com/matzehuels/mdslides/pkg/markup
// [layout]: https://pkg.go.dev/github.com/matzehuels/mdslides/pkg/layout
// [render/pptx]: https://pkg.go.dev/github.com/matzehuels/mdslides/pkg/render/pptx
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/mdslides/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mdslides/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/mdslides/pkg/cache
// [imageinfo]: https://pkg.go.dev/github.com/matzehuels/mdslides/pkg/imageinfo
// [observability]: https://pkg.go.dev/github.com/matzehuels/mdslides/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/mdslides/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/mdslides/pkg/buildinfo
package pkg
