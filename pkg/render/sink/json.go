package sink

import (
	"encoding/json"

	"github.com/matzehuels/mdslides/pkg/deck"
	"github.com/matzehuels/mdslides/pkg/layout"
	"github.com/matzehuels/mdslides/pkg/markup"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	metadata *deck.Metadata
	source   string
}

// WithJSONMetadata records the deck title, author, subject and keywords.
func WithJSONMetadata(md deck.Metadata) JSONOption {
	return func(r *jsonRenderer) { r.metadata = &md }
}

// WithJSONSource records the path of the source markdown file.
func WithJSONSource(path string) JSONOption { return func(r *jsonRenderer) { r.source = path } }

type jsonOutput struct {
	Source   string        `json:"source,omitempty"`
	Width    int64         `json:"width"`  // EMU
	Height   int64         `json:"height"` // EMU
	Aspect   string        `json:"aspect"`
	Metadata *jsonMetadata `json:"metadata,omitempty"`
	Slides   []jsonSlide   `json:"slides"`
}

type jsonMetadata struct {
	Title    string   `json:"title,omitempty"`
	Author   string   `json:"author,omitempty"`
	Subject  string   `json:"subject,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

type jsonSlide struct {
	Index    int       `json:"index"`
	Class    string    `json:"class"`
	Notes    string    `json:"notes,omitempty"`
	Warnings []string  `json:"warnings,omitempty"`
	Boxes    []jsonBox `json:"boxes"`
}

type jsonBox struct {
	Kind       string          `json:"kind"`
	Element    string          `json:"element,omitempty"`
	X          int64           `json:"x"`
	Y          int64           `json:"y"`
	Width      int64           `json:"width"`
	Height     int64           `json:"height"`
	Style      jsonStyle       `json:"style"`
	Paragraphs []jsonParagraph `json:"paragraphs,omitempty"`
	Table      *jsonTable      `json:"table,omitempty"`
	Image      *jsonImage      `json:"image,omitempty"`
}

type jsonStyle struct {
	FontSize float64 `json:"font_size,omitempty"`
	Bold     bool    `json:"bold,omitempty"`
	Italic   bool    `json:"italic,omitempty"`
	Color    string  `json:"color,omitempty"`
	Fill     string  `json:"fill,omitempty"`
	FontFace string  `json:"font_face,omitempty"`
	Align    string  `json:"align"`
	Wrap     bool    `json:"wrap,omitempty"`
}

type jsonParagraph struct {
	Runs       []markup.Run `json:"runs"`
	SpaceAfter float64      `json:"space_after,omitempty"`
}

type jsonTable struct {
	Columns   []int64    `json:"columns"`
	RowHeight int64      `json:"row_height"`
	Header    []string   `json:"header"`
	Rows      [][]string `json:"rows"`
}

type jsonImage struct {
	Src        string `json:"src"`
	Path       string `json:"path,omitempty"`
	Format     string `json:"format,omitempty"`
	Alt        string `json:"alt,omitempty"`
	Pixels     [2]int `json:"pixels"`
	Background bool   `json:"background,omitempty"`
}

// RenderJSON exports the laid-out pages as a pretty-printed JSON document.
// Lengths are EMU integers; font sizes and spacing are points.
//
// RenderJSON does not modify pages and is safe to call concurrently.
func RenderJSON(pages []layout.Page, canvas Canvas, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	cfg := layout.Config{Width: canvas.Width, Height: canvas.Height}
	out := jsonOutput{
		Source: r.source,
		Width:  int64(canvas.Width),
		Height: int64(canvas.Height),
		Aspect: cfg.Aspect(),
		Slides: make([]jsonSlide, 0, len(pages)),
	}
	if md := r.metadata; md != nil {
		out.Metadata = &jsonMetadata{Title: md.Title, Author: md.Author, Subject: md.Subject, Keywords: md.Keywords}
	}
	for _, p := range pages {
		out.Slides = append(out.Slides, buildJSONSlide(p))
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONSlide(p layout.Page) jsonSlide {
	s := jsonSlide{
		Index: p.Index,
		Class: p.Class.String(),
		Notes: p.Notes,
		Boxes: make([]jsonBox, 0, len(p.Boxes)),
	}
	for _, w := range p.Warnings {
		s.Warnings = append(s.Warnings, w.Message)
	}
	for _, b := range p.Boxes {
		s.Boxes = append(s.Boxes, buildJSONBox(b))
	}
	return s
}

func buildJSONBox(b layout.Box) jsonBox {
	jb := jsonBox{
		Kind:   b.Kind.String(),
		X:      int64(b.X),
		Y:      int64(b.Y),
		Width:  int64(b.W),
		Height: int64(b.H),
		Style: jsonStyle{
			FontSize: b.Style.FontSize,
			Bold:     b.Style.Bold,
			Italic:   b.Style.Italic,
			Color:    b.Style.Color,
			Fill:     b.Style.Fill,
			FontFace: b.Style.FontFace,
			Align:    b.Style.Align.String(),
			Wrap:     b.Style.Wrap,
		},
	}
	if b.Element != nil {
		jb.Element = b.Element.Kind().String()
	}
	for _, p := range b.Paragraphs {
		jb.Paragraphs = append(jb.Paragraphs, jsonParagraph{Runs: p.Runs, SpaceAfter: p.SpaceAfter})
	}
	if t := b.Table; t != nil {
		jt := &jsonTable{RowHeight: int64(t.RowHeight), Header: t.Header, Rows: t.Rows}
		for _, c := range t.Columns {
			jt.Columns = append(jt.Columns, int64(c))
		}
		jb.Table = jt
	}
	if img := b.Image; img != nil {
		jb.Image = &jsonImage{
			Src:        img.Src,
			Path:       img.Path,
			Format:     img.Format,
			Alt:        img.Alt,
			Pixels:     [2]int{img.PixelWidth, img.PixelHeight},
			Background: img.Background,
		}
	}
	return jb
}
