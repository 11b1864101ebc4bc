package layout

import (
	"strings"

	"github.com/matzehuels/mdslides/pkg/deck"
	"github.com/matzehuels/mdslides/pkg/markup"
)

// BoxKind is the shape a Box becomes in the output.
type BoxKind int

const (
	BoxText BoxKind = iota
	BoxImage
	BoxTable
)

func (k BoxKind) String() string {
	switch k {
	case BoxImage:
		return "image"
	case BoxTable:
		return "table"
	default:
		return "text"
	}
}

// Align is the horizontal paragraph alignment inside a text box.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

func (a Align) String() string {
	if a == AlignCenter {
		return "center"
	}
	return "left"
}

// Style is the text and fill style applied to every run of a box. Run-level
// emphasis is combined with Bold and Italic.
type Style struct {
	FontSize float64 // points
	Bold     bool
	Italic   bool
	Color    string // RRGGBB, empty inherits
	Fill     string // RRGGBB background, empty for none
	FontFace string
	Align    Align
	Wrap     bool
}

// Paragraph is one line of a text box.
type Paragraph struct {
	Runs       []markup.Run
	SpaceAfter float64 // points
}

// Text returns the paragraph text without styling.
func (p Paragraph) Text() string {
	return markup.PlainText(p.Runs)
}

// TableContent is the grid of a table box. Cell text is already stripped of
// inline markup.
type TableContent struct {
	Columns     []Length
	RowHeight   Length
	Header      []string
	Rows        [][]string
	HeaderStyle Style
	BodyStyle   Style
}

// ImageContent references the image file drawn by an image box.
type ImageContent struct {
	Src         string // reference as written in the deck
	Path        string // resolved file path
	Format      string
	Alt         string
	PixelWidth  int
	PixelHeight int
	Background  bool
}

// Box is a positioned, styled output rectangle. Boxes are values and are
// not modified after layout.
type Box struct {
	Kind    BoxKind
	Element deck.Element // source element, nil for background images
	X, Y    Length
	W, H    Length
	Style   Style

	Paragraphs []Paragraph   // BoxText
	Table      *TableContent // BoxTable
	Image      *ImageContent // BoxImage
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() Length { return b.X + b.W }

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() Length { return b.Y + b.H }

// CenterX returns the horizontal center point of the box.
func (b Box) CenterX() Length { return b.X + b.W/2 }

// CenterY returns the vertical center point of the box.
func (b Box) CenterY() Length { return b.Y + b.H/2 }

// Text returns the paragraphs of a text box joined with newlines.
func (b Box) Text() string {
	lines := make([]string, len(b.Paragraphs))
	for i, p := range b.Paragraphs {
		lines[i] = p.Text()
	}
	return strings.Join(lines, "\n")
}

// Page is the layout of one slide.
type Page struct {
	Index    int
	Class    deck.SlideClass
	Boxes    []Box
	Notes    string
	Warnings []deck.Warning
}

// Images returns the image boxes of the page in drawing order.
func (p Page) Images() []Box {
	var out []Box
	for _, b := range p.Boxes {
		if b.Kind == BoxImage {
			out = append(out, b)
		}
	}
	return out
}
