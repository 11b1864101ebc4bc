package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/mdslides/pkg/layout"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	outlines bool
	images   bool
}

// WithOutlines draws a thin dashed outline around every box.
func WithOutlines() SVGOption { return func(r *svgRenderer) { r.outlines = true } }

// WithoutImages draws image boxes as placeholders instead of linking the
// image file.
func WithoutImages() SVGOption { return func(r *svgRenderer) { r.images = false } }

// RenderSVG renders one page as a standalone SVG document sized in pixels.
func RenderSVG(page layout.Page, canvas Canvas, opts ...SVGOption) []byte {
	r := svgRenderer{images: true}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := pixels(canvas.Width), pixels(canvas.Height)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#FFFFFF"/>`+"\n", w, h)

	for _, b := range page.Boxes {
		switch b.Kind {
		case layout.BoxText:
			r.renderText(&buf, b)
		case layout.BoxImage:
			r.renderImage(&buf, b)
		case layout.BoxTable:
			r.renderTable(&buf, b)
		}
		if r.outlines {
			fmt.Fprintf(&buf, `  <rect class="outline" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#999999" stroke-dasharray="4 2"/>`+"\n",
				pixels(b.X), pixels(b.Y), pixels(b.W), pixels(b.H))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderText(buf *bytes.Buffer, b layout.Box) {
	x, y := pixels(b.X), pixels(b.Y)
	if b.Style.Fill != "" {
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#%s"/>`+"\n",
			x, y, pixels(b.W), pixels(b.H), b.Style.Fill)
	}

	size := pointsToPixels(b.Style.FontSize)
	if size <= 0 {
		size = pointsToPixels(18)
	}
	anchor, tx := "start", x
	if b.Style.Align == layout.AlignCenter {
		anchor, tx = "middle", pixels(b.CenterX())
	}
	color := "#000000"
	if b.Style.Color != "" {
		color = "#" + b.Style.Color
	}

	fmt.Fprintf(buf, `  <text class="box-text" font-size="%.1f" fill="%s" text-anchor="%s"`, size, color, anchor)
	if b.Style.FontFace != "" {
		fmt.Fprintf(buf, ` font-family="%s"`, escape(b.Style.FontFace))
	}
	if b.Style.Bold {
		buf.WriteString(` font-weight="bold"`)
	}
	if b.Style.Italic {
		buf.WriteString(` font-style="italic"`)
	}
	buf.WriteString(">\n")
	for i, line := range boxLines(b) {
		fmt.Fprintf(buf, `    <tspan x="%.1f" y="%.1f">%s</tspan>`+"\n", tx, y+size+float64(i)*lineHeight(size), escape(line))
	}
	buf.WriteString("  </text>\n")
}

func (r *svgRenderer) renderImage(buf *bytes.Buffer, b layout.Box) {
	x, y, w, h := pixels(b.X), pixels(b.Y), pixels(b.W), pixels(b.H)
	if r.images && b.Image != nil && b.Image.Path != "" {
		fmt.Fprintf(buf, `  <image x="%.1f" y="%.1f" width="%.1f" height="%.1f" href="%s" preserveAspectRatio="none"/>`+"\n",
			x, y, w, h, escape(b.Image.Path))
		return
	}
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#EEEEEE" stroke="#AAAAAA"/>`+"\n", x, y, w, h)
	if b.Image != nil && b.Image.Alt != "" {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="12" fill="#666666" text-anchor="middle">%s</text>`+"\n",
			pixels(b.CenterX()), pixels(b.CenterY()), escape(b.Image.Alt))
	}
}

func (r *svgRenderer) renderTable(buf *bytes.Buffer, b layout.Box) {
	t := b.Table
	if t == nil {
		return
	}
	rowH := pixels(t.RowHeight)
	rows := append([][]string{t.Header}, t.Rows...)
	y := pixels(b.Y)
	for ri, row := range rows {
		fill, style := "#E9EBF5", t.BodyStyle
		if ri == 0 {
			fill, style = "#4472C4", t.HeaderStyle
		} else if ri%2 == 0 {
			fill = "#CFD5EA"
		}
		x := pixels(b.X)
		for ci, col := range t.Columns {
			w := pixels(col)
			fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#FFFFFF"/>`+"\n", x, y, w, rowH, fill)
			if ci < len(row) && row[ci] != "" {
				color := "#000000"
				if ri == 0 {
					color = "#FFFFFF"
				}
				size := pointsToPixels(style.FontSize)
				weight := ""
				if style.Bold {
					weight = ` font-weight="bold"`
				}
				fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s"%s>%s</text>`+"\n",
					x+4, y+rowH/2+size/3, size, color, weight, escape(row[ci]))
			}
			x += w
		}
		y += rowH
	}
}

func escape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
