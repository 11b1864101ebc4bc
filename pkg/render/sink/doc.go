// Package sink provides preview renderers for laid-out slides.
//
// # Overview
//
// A "sink" transforms computed [layout.Page] values into an output format
// other than PowerPoint. The sinks exist for debugging layouts and for
// quick previews without an office suite:
//
//   - JSON: every box of every page with positions in EMU
//   - SVG: one vector image per page showing boxes, fills and text lines
//   - PNG: one raster image per page drawn with a fixed bitmap font
//
// All sinks take a [Canvas] describing the slide size. Positions in the
// SVG and PNG output are converted from EMU to pixels at 96 dpi, then
// scaled for PNG to the requested width.
//
// # JSON Output
//
// [RenderJSON] exports the complete layout, including speaker notes and
// layout warnings:
//
//	data, err := sink.RenderJSON(pages, canvas, sink.WithJSONMetadata(doc.Metadata))
//
// # SVG and PNG Output
//
// [RenderSVG] and [RenderPNG] render a single page:
//
//	svg := sink.RenderSVG(page, canvas)
//	png, err := sink.RenderPNG(page, canvas, 1280)
//
// Images referenced by image boxes are linked from SVG output and decoded
// and scaled into PNG output. An image that fails to decode is drawn as a
// gray outline.
//
// [layout.Page]: github.com/matzehuels/mdslides/pkg/layout.Page
package sink
