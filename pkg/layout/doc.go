// Package layout turns parsed slides into positioned, styled boxes.
//
// All geometry is in [Length], an integer count of English Metric Units
// (914400 per inch, 12700 per point). Every measurement the engine uses comes
// from a [Config]; [DefaultConfig] describes a 13.333 x 7.5 inch widescreen
// canvas and [LoadConfig] overlays a TOML theme file on top of it:
//
//	width = "10in"
//	height = "7.5in"
//
//	[content.h2]
//	font_size = 32
//	color = "1F4E79"
//
// # Strategies
//
// Title slides (see [deck.Classify]) stack their headings and paragraphs in
// the middle of the canvas, centered horizontally. Content slides move a
// cursor down from the top margin; each element kind has a fixed box height
// and cursor advance, since text is never measured.
//
// Images are resolved through an [ImageResolver]. An image that cannot be
// resolved, or that finds no vertical space left, is dropped and reported as
// a [deck.Warning] on the [Page].
package layout
