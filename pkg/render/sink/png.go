package sink

import (
	"bytes"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/mdslides/pkg/errors"
	"github.com/matzehuels/mdslides/pkg/layout"
)

// DefaultPNGWidth is the preview width used when RenderPNG gets width <= 0.
const DefaultPNGWidth = 1280

// PNGOption configures PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	outlines bool
	images   bool
}

// WithPNGOutlines draws a thin outline around every box.
func WithPNGOutlines() PNGOption { return func(r *pngRenderer) { r.outlines = true } }

// WithoutPNGImages draws image boxes as gray placeholders without reading
// the image files.
func WithoutPNGImages() PNGOption { return func(r *pngRenderer) { r.images = false } }

var (
	white     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black     = color.RGBA{A: 255}
	outline   = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	accent    = color.RGBA{R: 0x44, G: 0x72, B: 0xC4, A: 255}
	bandLight = color.RGBA{R: 0xE9, G: 0xEB, B: 0xF5, A: 255}
	bandDark  = color.RGBA{R: 0xCF, G: 0xD5, B: 0xEA, A: 255}
)

// RenderPNG rasterizes one page at the given pixel width. The height follows
// the canvas aspect ratio. Text is drawn with a fixed 7x13 bitmap font, so
// the preview shows placement rather than typography.
func RenderPNG(page layout.Page, canvas Canvas, width int, opts ...PNGOption) ([]byte, error) {
	if canvas.Width <= 0 || canvas.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid canvas %dx%d", canvas.Width, canvas.Height)
	}
	if width <= 0 {
		width = DefaultPNGWidth
	}
	r := pngRenderer{images: true}
	for _, opt := range opts {
		opt(&r)
	}

	scale := float64(width) / float64(canvas.Width)
	height := int(float64(canvas.Height)*scale + 0.5)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{white}, image.Point{}, draw.Src)

	px := func(l layout.Length) int { return int(float64(l)*scale + 0.5) }
	rect := func(b layout.Box) image.Rectangle {
		return image.Rect(px(b.X), px(b.Y), px(b.Right()), px(b.Bottom()))
	}

	for _, b := range page.Boxes {
		bounds := rect(b)
		switch b.Kind {
		case layout.BoxText:
			if b.Style.Fill != "" {
				fillRect(img, bounds, parseHex(b.Style.Fill, white))
			}
			drawLines(img, bounds, boxLines(b), parseHex(b.Style.Color, black), b.Style.Align == layout.AlignCenter)
		case layout.BoxImage:
			r.drawImage(img, bounds, b)
		case layout.BoxTable:
			drawTable(img, b, px)
		}
		if r.outlines {
			strokeRect(img, bounds, outline)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) drawImage(dst *image.RGBA, bounds image.Rectangle, b layout.Box) {
	if r.images && b.Image != nil && b.Image.Path != "" {
		if src, err := decodeFile(b.Image.Path); err == nil {
			draw.ApproxBiLinear.Scale(dst, bounds, src, src.Bounds(), draw.Over, nil)
			return
		}
	}
	fillRect(dst, bounds, bandLight)
	strokeRect(dst, bounds, outline)
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

func drawTable(dst *image.RGBA, b layout.Box, px func(layout.Length) int) {
	t := b.Table
	if t == nil {
		return
	}
	rows := append([][]string{t.Header}, t.Rows...)
	y := b.Y
	for ri, row := range rows {
		bg, fg := bandLight, black
		switch {
		case ri == 0:
			bg, fg = accent, white
		case ri%2 == 0:
			bg = bandDark
		}
		x := b.X
		for ci, col := range t.Columns {
			cell := image.Rect(px(x), px(y), px(x+col), px(y+t.RowHeight))
			fillRect(dst, cell, bg)
			strokeRect(dst, cell, white)
			if ci < len(row) {
				drawLines(dst, cell.Inset(2), []string{row[ci]}, fg, false)
			}
			x += col
		}
		y += t.RowHeight
	}
}

// drawLines draws text lines top-down inside bounds, clipped to the box.
func drawLines(dst *image.RGBA, bounds image.Rectangle, lines []string, c color.Color, center bool) {
	face := basicfont.Face7x13
	clip, ok := dst.SubImage(bounds).(*image.RGBA)
	if !ok || clip.Bounds().Empty() {
		return
	}
	d := &font.Drawer{Dst: clip, Src: image.NewUniform(c), Face: face}
	step := face.Metrics().Height.Ceil()
	y := bounds.Min.Y + face.Metrics().Ascent.Ceil()
	for _, line := range lines {
		if y > bounds.Max.Y {
			break
		}
		d.Dot = fixed.P(bounds.Min.X, y)
		if center {
			d.Dot.X = fixed.I((bounds.Min.X+bounds.Max.X)/2) - d.MeasureString(line)/2
		}
		d.DrawString(line)
		y += step
	}
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, &image.Uniform{c}, image.Point{}, draw.Over)
}

func strokeRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.Set(x, r.Min.Y, c)
		dst.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.Set(r.Min.X, y, c)
		dst.Set(r.Max.X-1, y, c)
	}
}

// parseHex parses an RRGGBB string, returning fallback when it is malformed.
func parseHex(s string, fallback color.RGBA) color.RGBA {
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
