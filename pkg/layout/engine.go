package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/mdslides/pkg/deck"
	"github.com/matzehuels/mdslides/pkg/imageinfo"
	"github.com/matzehuels/mdslides/pkg/markup"
)

// ImageResolver locates an image reference and reports its pixel size.
type ImageResolver interface {
	Resolve(src string) (imageinfo.Info, error)
}

// Engine lays out slides on a fixed canvas. An Engine holds no per-slide
// state, so Layout may be called from several goroutines at once as long as
// the resolver is safe for concurrent use.
type Engine struct {
	Config Config
	Images ImageResolver
}

// NewEngine returns an Engine for cfg. A nil resolver treats every image as
// unresolvable.
func NewEngine(cfg Config, images ImageResolver) *Engine {
	return &Engine{Config: cfg, Images: images}
}

// Layout positions the elements of s. Title slides are centered vertically;
// everything else flows down from the top margin.
func (e *Engine) Layout(s *deck.Slide) Page {
	page := Page{
		Index: s.Index,
		Class: s.Class(),
		Notes: s.Notes,
	}
	if page.Class == deck.ClassTitle {
		e.layoutTitle(s, &page)
	} else {
		e.layoutContent(s, &page)
	}
	return page
}

func (e *Engine) layoutTitle(s *deck.Slide, page *Page) {
	cfg := e.Config
	style := func(el deck.Element) (TextStyle, string, bool) {
		switch el := el.(type) {
		case deck.Heading:
			return cfg.Title.Heading, el.Text, true
		case deck.Paragraph:
			return cfg.Title.Paragraph, el.Text, true
		}
		return TextStyle{}, "", false
	}

	var total Length
	for _, el := range s.Elements {
		if ts, _, ok := style(el); ok {
			total += ts.Height
		}
	}
	y := (cfg.Height - total) / 2
	if y < 0 {
		y = 0
	}

	x := cfg.Title.Margin
	width := cfg.Width - 2*cfg.Title.Margin
	for _, el := range s.Elements {
		ts, text, ok := style(el)
		if !ok {
			continue
		}
		page.Boxes = append(page.Boxes, Box{
			Kind:       BoxText,
			Element:    el,
			X:          x,
			Y:          y,
			W:          width,
			H:          ts.Height,
			Style:      textStyle(ts, AlignCenter),
			Paragraphs: []Paragraph{{Runs: markup.Tokenize(text)}},
		})
		y += ts.Advance
	}
}

// flow is the cursor state of one content slide.
type flow struct {
	x, y, width Length
	page        *Page
	slide       int
}

func (f *flow) add(b Box) {
	f.page.Boxes = append(f.page.Boxes, b)
}

func (f *flow) warn(kind deck.Kind, format string, args ...any) {
	f.page.Warnings = append(f.page.Warnings, deck.Warning{
		Slide:   f.slide,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

func (e *Engine) layoutContent(s *deck.Slide, page *Page) {
	cfg := e.Config
	f := &flow{
		x:     cfg.Content.Left,
		y:     cfg.Content.Top,
		width: cfg.ContentWidth(),
		page:  page,
		slide: s.Index,
	}

	if s.Background != "" {
		e.placeBackground(f, s.Background)
	}

	for _, el := range s.Elements {
		switch el := el.(type) {
		case deck.Heading:
			// Level-1 headings only title a slide; in a content flow they take
			// no space.
			if el.Level == 1 {
				continue
			}
			e.placeText(f, el, e.headingStyle(el.Level), el.Text)
		case deck.Paragraph:
			e.placeText(f, el, cfg.Content.Paragraph, el.Text)
		case deck.Quote:
			e.placeQuote(f, el)
		case deck.List:
			e.placeList(f, el)
		case deck.Code:
			e.placeCode(f, el)
		case deck.Image:
			e.placeImage(f, el)
		case deck.Table:
			e.placeTable(f, el)
		}
	}
}

func (e *Engine) headingStyle(level int) TextStyle {
	if level == 2 {
		return e.Config.Content.H2
	}
	return e.Config.Content.H3
}

func (e *Engine) placeText(f *flow, el deck.Element, ts TextStyle, text string) {
	f.add(Box{
		Kind:       BoxText,
		Element:    el,
		X:          f.x,
		Y:          f.y,
		W:          f.width,
		H:          ts.Height,
		Style:      textStyle(ts, AlignLeft),
		Paragraphs: []Paragraph{{Runs: markup.Tokenize(text)}},
	})
	f.y += ts.Advance
}

func (e *Engine) placeQuote(f *flow, q deck.Quote) {
	qc := e.Config.Content.Quote
	paras := make([]Paragraph, len(q.Lines))
	for i, line := range q.Lines {
		paras[i] = Paragraph{Runs: markup.Tokenize(line)}
	}
	f.add(Box{
		Kind:       BoxText,
		Element:    q,
		X:          f.x + qc.Indent,
		Y:          f.y,
		W:          f.width - qc.Indent,
		H:          qc.Text.Height,
		Style:      textStyle(qc.Text, AlignLeft),
		Paragraphs: paras,
	})
	f.y += qc.LineAdvance * Length(len(q.Lines)+1)
}

func (e *Engine) placeList(f *flow, l deck.List) {
	lc := e.Config.Content.List
	paras := make([]Paragraph, len(l.Items))
	for i, item := range l.Items {
		prefix := lc.Bullet + " "
		if l.Ordered {
			prefix = strconv.Itoa(i+1) + ". "
		}
		paras[i] = Paragraph{Runs: markup.Tokenize(prefix + item), SpaceAfter: lc.SpaceAfter}
	}
	f.add(Box{
		Kind:       BoxText,
		Element:    l,
		X:          f.x,
		Y:          f.y,
		W:          f.width,
		H:          lc.Text.Height,
		Style:      textStyle(lc.Text, AlignLeft),
		Paragraphs: paras,
	})
	f.y += lc.ItemAdvance * Length(len(l.Items))
}

func (e *Engine) placeCode(f *flow, c deck.Code) {
	cc := e.Config.Content.Code
	lines := c.Lines
	if len(lines) == 0 {
		lines = []string{""}
	}
	paras := make([]Paragraph, len(lines))
	for i, line := range lines {
		if line != "" {
			paras[i] = Paragraph{Runs: []markup.Run{{Text: line}}}
		}
	}
	style := textStyle(cc.Text, AlignLeft)
	style.Fill = cc.Fill
	height := cc.LineHeight * Length(len(lines))
	f.add(Box{
		Kind:       BoxText,
		Element:    c,
		X:          f.x,
		Y:          f.y,
		W:          f.width,
		H:          height,
		Style:      style,
		Paragraphs: paras,
	})
	f.y += height + e.Config.Content.Gap
}

func (e *Engine) resolve(src string) (imageinfo.Info, error) {
	if e.Images == nil {
		return imageinfo.Info{}, fmt.Errorf("no image resolver configured")
	}
	return e.Images.Resolve(src)
}

// placeBackground puts the background image in a right-hand column and
// narrows the text column to make room for it.
func (e *Engine) placeBackground(f *flow, src string) {
	cfg := e.Config
	bg := cfg.Content.Background
	info, err := e.resolve(src)
	if err != nil {
		f.warn(deck.KindImage, "background image %q skipped: %v", src, err)
		return
	}
	height := Length(math.Round(float64(bg.Width) * float64(info.Height) / float64(info.Width)))
	f.add(Box{
		Kind: BoxImage,
		X:    cfg.Width - bg.Width - bg.Right,
		Y:    bg.Top,
		W:    bg.Width,
		H:    height,
		Image: &ImageContent{
			Src:         src,
			Path:        info.Path,
			Format:      info.Format,
			PixelWidth:  info.Width,
			PixelHeight: info.Height,
			Background:  true,
		},
	})
	f.width = cfg.Width - bg.Width - bg.Reserve
}

// placeImage scales an image to fit the column width and the space left
// above the bottom margin, never enlarging it, and centers it horizontally.
func (e *Engine) placeImage(f *flow, img deck.Image) {
	cfg := e.Config
	info, err := e.resolve(img.Src)
	if err != nil {
		f.warn(deck.KindImage, "image %q skipped: %v", img.Src, err)
		return
	}
	iw, ih := Pixels(info.Width), Pixels(info.Height)
	maxH := cfg.Height - f.y - cfg.Content.Bottom
	if maxH <= 0 {
		f.warn(deck.KindImage, "image %q skipped: no vertical space left", img.Src)
		return
	}
	scale := min(float64(f.width)/float64(iw), float64(maxH)/float64(ih), 1.0)
	w, h := iw.Scale(scale), ih.Scale(scale)
	if w <= 0 || h <= 0 {
		f.warn(deck.KindImage, "image %q skipped: scaled to nothing", img.Src)
		return
	}
	f.add(Box{
		Kind:    BoxImage,
		Element: img,
		X:       f.x + (f.width-w)/2,
		Y:       f.y,
		W:       w,
		H:       h,
		Image: &ImageContent{
			Src:         img.Src,
			Path:        info.Path,
			Format:      info.Format,
			Alt:         img.Alt,
			PixelWidth:  info.Width,
			PixelHeight: info.Height,
		},
	})
	f.y += h + cfg.Content.Gap
}

// placeTable splits the column width evenly between the header columns.
// Cells beyond the header width are dropped.
func (e *Engine) placeTable(f *flow, t deck.Table) {
	tc := e.Config.Content.Table
	cols := t.Columns()
	if cols == 0 {
		f.warn(deck.KindTable, "table without columns skipped")
		return
	}

	colW := f.width / Length(cols)
	columns := make([]Length, cols)
	for i := range columns {
		columns[i] = colW
	}
	header := make([]string, cols)
	for i, h := range t.Headers {
		header[i] = markup.Strip(h)
	}
	rows := make([][]string, len(t.Rows))
	for r := range t.Rows {
		rows[r] = make([]string, cols)
		for c := 0; c < cols; c++ {
			rows[r][c] = markup.Strip(t.Cell(r, c))
		}
	}

	height := tc.RowHeight * Length(len(t.Rows)+1)
	f.add(Box{
		Kind:    BoxTable,
		Element: t,
		X:       f.x,
		Y:       f.y,
		W:       f.width,
		H:       height,
		Table: &TableContent{
			Columns:     columns,
			RowHeight:   tc.RowHeight,
			Header:      header,
			Rows:        rows,
			HeaderStyle: Style{FontSize: tc.HeaderSize, Bold: true},
			BodyStyle:   Style{FontSize: tc.BodySize},
		},
	})
	f.y += height + e.Config.Content.Gap
}

func textStyle(ts TextStyle, align Align) Style {
	return Style{
		FontSize: ts.FontSize,
		Bold:     ts.Bold,
		Italic:   ts.Italic,
		Color:    strings.ToUpper(ts.Color),
		FontFace: ts.FontFace,
		Align:    align,
		Wrap:     ts.Wrap,
	}
}
