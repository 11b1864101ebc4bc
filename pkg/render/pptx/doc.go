// Package pptx writes laid-out slides as an Office Open XML presentation and
// reads presentations back for inspection.
//
// [Write] produces a complete package: content types, package and part
// relationships, core and extended properties, one slide master with a blank
// layout, a theme, a notes master, one part per slide and notes slide, and
// every referenced image embedded once under ppt/media.
//
// Boxes map to shapes as follows:
//
//   - text boxes become p:sp text boxes; each [layout.Paragraph] is an a:p,
//     each run an a:r, and "\n" inside a run becomes a:br
//   - image boxes become p:pic elements referencing the embedded media part
//   - table boxes become a:tbl graphic frames using the built-in
//     "Medium Style 2 - Accent 1" table style with a header row
//
// Speaker notes are written as notes slides, one paragraph per line.
//
// [Read] and [ReadBytes] parse an existing file into [Deck], exposing slide text,
// tables, pictures and notes in presentation order.
package pptx
