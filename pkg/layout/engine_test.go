package layout

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/matzehuels/mdslides/pkg/deck"
	"github.com/matzehuels/mdslides/pkg/imageinfo"
	"github.com/matzehuels/mdslides/pkg/markup"
)

type stubImages map[string]imageinfo.Info

func (s stubImages) Resolve(src string) (imageinfo.Info, error) {
	info, ok := s[src]
	if !ok {
		return imageinfo.Info{}, fmt.Errorf("not found")
	}
	return info, nil
}

func newTestEngine() *Engine {
	return NewEngine(DefaultConfig(), stubImages{
		"wide.png":  {Path: "/deck/wide.png", Width: 960, Height: 540, Format: "png"},
		"huge.png":  {Path: "/deck/huge.png", Width: 2000, Height: 1000, Format: "png"},
		"tall.png":  {Path: "/deck/tall.png", Width: 700, Height: 1400, Format: "png"},
		"small.png": {Path: "/deck/small.png", Width: 10, Height: 10, Format: "png"},
	})
}

func TestLayoutTitleSlide(t *testing.T) {
	e := newTestEngine()
	page := e.Layout(&deck.Slide{
		Index: 3,
		Notes: "say hi",
		Elements: []deck.Element{
			deck.Heading{Level: 1, Text: "Welcome"},
			deck.Paragraph{Text: "by *someone*"},
		},
	})

	if page.Class != deck.ClassTitle || page.Index != 3 || page.Notes != "say hi" {
		t.Fatalf("page = %+v", page)
	}
	if len(page.Boxes) != 2 {
		t.Fatalf("got %d boxes, want 2", len(page.Boxes))
	}

	h, p := page.Boxes[0], page.Boxes[1]
	wantY := (Inches(7.5) - 96*Point) / 2
	if h.Y != wantY {
		t.Errorf("heading y = %d, want %d", h.Y, wantY)
	}
	if p.Y != wantY+60*Point {
		t.Errorf("paragraph y = %d, want %d", p.Y, wantY+60*Point)
	}
	if h.X != Inch || h.W != e.Config.Width-2*Inch {
		t.Errorf("heading x/w = %d/%d", h.X, h.W)
	}
	if h.H != 60*Point || p.H != 36*Point {
		t.Errorf("heights = %d/%d", h.H, p.H)
	}
	if h.Style.Align != AlignCenter || !h.Style.Bold || h.Style.FontSize != 44 {
		t.Errorf("heading style = %+v", h.Style)
	}
	if p.Style.Color != "666666" || p.Style.FontSize != 24 {
		t.Errorf("paragraph style = %+v", p.Style)
	}
	wantRuns := []markup.Run{{Text: "by "}, {Text: "someone", Italic: true}}
	if !reflect.DeepEqual(p.Paragraphs[0].Runs, wantRuns) {
		t.Errorf("paragraph runs = %+v", p.Paragraphs[0].Runs)
	}
}

func TestLayoutTitleClampsAtTop(t *testing.T) {
	e := newTestEngine()
	var elements []deck.Element
	for i := 0; i < 20; i++ {
		elements = append(elements, deck.Heading{Level: 1, Text: "Big"})
	}
	page := e.Layout(&deck.Slide{Elements: elements})
	if page.Boxes[0].Y != 0 {
		t.Errorf("first box y = %d, want 0", page.Boxes[0].Y)
	}
}

func TestLayoutContentFlow(t *testing.T) {
	e := newTestEngine()
	cfg := e.Config
	page := e.Layout(&deck.Slide{Elements: []deck.Element{
		deck.Heading{Level: 2, Text: "Agenda"},
		deck.Heading{Level: 3, Text: "Part one"},
		deck.Paragraph{Text: "Intro"},
		deck.Quote{Lines: []string{"a", "b"}},
		deck.List{Ordered: true, Items: []string{"x", "y", "z"}},
		deck.Code{Lines: []string{"l1", "", "l3"}},
	}})

	if page.Class != deck.ClassContent {
		t.Fatalf("class = %v", page.Class)
	}
	if len(page.Boxes) != 6 {
		t.Fatalf("got %d boxes, want 6", len(page.Boxes))
	}

	left, width := Inches(0.75), cfg.Width-Inches(1.5)
	y := Inches(0.5)
	wantY := []Length{y}
	y += Inches(0.75) // h2
	wantY = append(wantY, y)
	y += Inches(0.55) // h3
	wantY = append(wantY, y)
	y += Inches(0.4) // paragraph
	wantY = append(wantY, y)
	y += Inches(0.35) * 3 // quote, two lines
	wantY = append(wantY, y)
	y += Inches(0.4) * 3 // list, three items
	wantY = append(wantY, y)

	for i, b := range page.Boxes {
		if b.Y != wantY[i] {
			t.Errorf("box %d (%T) y = %d, want %d", i, b.Element, b.Y, wantY[i])
		}
	}

	h2 := page.Boxes[0]
	if h2.X != left || h2.W != width || h2.H != 48*Point {
		t.Errorf("h2 geometry = %d,%d,%d", h2.X, h2.W, h2.H)
	}
	if h2.Style.Color != "333333" || h2.Style.FontSize != 36 || !h2.Style.Bold {
		t.Errorf("h2 style = %+v", h2.Style)
	}

	quote := page.Boxes[3]
	if quote.X != left+Inches(0.3) || quote.W != width-Inches(0.3) || quote.H != Inch {
		t.Errorf("quote geometry = %d,%d,%d", quote.X, quote.W, quote.H)
	}
	if !quote.Style.Italic || quote.Style.Color != "555555" || len(quote.Paragraphs) != 2 {
		t.Errorf("quote = %+v", quote)
	}

	list := page.Boxes[4]
	if got := list.Text(); got != "1. x\n2. y\n3. z" {
		t.Errorf("list text = %q", got)
	}
	if list.Paragraphs[0].SpaceAfter != 8 || list.H != 3*Inch {
		t.Errorf("list = %+v", list)
	}

	code := page.Boxes[5]
	if code.Style.Fill != "F0F0F0" || code.Style.FontFace != "Courier New" || code.Style.FontSize != 14 {
		t.Errorf("code style = %+v", code.Style)
	}
	if code.H != Inches(0.25)*3 || len(code.Paragraphs) != 3 || code.Paragraphs[1].Runs != nil {
		t.Errorf("code box = %+v", code)
	}
}

func TestLayoutContentSkipsLevelOneHeading(t *testing.T) {
	e := newTestEngine()
	s := markup.ParseSlide("# Section\n- a\n- b")
	s.Index = 2
	if s.Class() != deck.ClassContent {
		t.Fatalf("class = %v, want content", s.Class())
	}

	page := e.Layout(s)
	if len(page.Boxes) != 1 {
		t.Fatalf("got %d boxes, want only the list", len(page.Boxes))
	}
	list := page.Boxes[0]
	if _, ok := list.Element.(deck.List); !ok {
		t.Fatalf("box element = %T, want deck.List", list.Element)
	}
	if list.Y != e.Config.Content.Top {
		t.Errorf("list y = %v, want %v", list.Y, e.Config.Content.Top)
	}
	if len(page.Warnings) != 0 {
		t.Errorf("warnings = %+v", page.Warnings)
	}
}

func TestLayoutBulletList(t *testing.T) {
	e := newTestEngine()
	page := e.Layout(&deck.Slide{Elements: []deck.Element{
		deck.List{Items: []string{"one\nmore", "**two**"}},
	}})

	list := page.Boxes[0]
	if got := list.Text(); got != "• one\nmore\n• two" {
		t.Errorf("list text = %q", got)
	}
	if runs := list.Paragraphs[1].Runs; len(runs) != 2 || !runs[1].Bold {
		t.Errorf("second item runs = %+v", runs)
	}
}

func TestLayoutEmptyCode(t *testing.T) {
	e := newTestEngine()
	page := e.Layout(&deck.Slide{Elements: []deck.Element{deck.Code{}}})
	if got := page.Boxes[0].H; got != Inches(0.25) {
		t.Errorf("empty code height = %d, want one line", got)
	}
}

func TestLayoutImage(t *testing.T) {
	e := newTestEngine()
	cfg := e.Config
	width := cfg.ContentWidth()

	t.Run("natural size", func(t *testing.T) {
		page := e.Layout(&deck.Slide{Elements: []deck.Element{
			deck.Heading{Level: 2, Text: "Chart"},
			deck.Image{Alt: "chart", Src: "wide.png"},
			deck.Paragraph{Text: "after"},
		}})
		img := page.Boxes[1]
		if img.Kind != BoxImage {
			t.Fatalf("box kind = %v", img.Kind)
		}
		if img.W != Pixels(960) || img.H != Pixels(540) {
			t.Errorf("size = %dx%d, want unscaled", img.W, img.H)
		}
		if img.X != Inches(0.75)+(width-img.W)/2 {
			t.Errorf("x = %d, not centered", img.X)
		}
		if img.Image.Path != "/deck/wide.png" || img.Image.Alt != "chart" {
			t.Errorf("image content = %+v", img.Image)
		}
		if after := page.Boxes[2]; after.Y != img.Y+img.H+Inches(0.2) {
			t.Errorf("paragraph y = %d, want %d", after.Y, img.Y+img.H+Inches(0.2))
		}
	})

	t.Run("scaled to width", func(t *testing.T) {
		page := e.Layout(&deck.Slide{Elements: []deck.Element{deck.Image{Src: "huge.png"}}})
		img := page.Boxes[0]
		if img.W > width {
			t.Errorf("width %d exceeds column %d", img.W, width)
		}
		if img.W < width-2 {
			t.Errorf("width %d should fill column %d", img.W, width)
		}
		ratio := float64(img.W) / float64(img.H)
		if ratio < 1.999 || ratio > 2.001 {
			t.Errorf("aspect ratio = %v, want 2", ratio)
		}
	})

	t.Run("scaled to remaining height", func(t *testing.T) {
		elements := []deck.Element{}
		for i := 0; i < 8; i++ {
			elements = append(elements, deck.Paragraph{Text: "line"})
		}
		elements = append(elements, deck.Image{Src: "wide.png"})
		page := e.Layout(&deck.Slide{Elements: elements})
		img := page.Boxes[len(page.Boxes)-1]
		if img.Bottom() > cfg.Height-Inches(0.5) {
			t.Errorf("image bottom %d below margin", img.Bottom())
		}
		if img.W >= Pixels(960) {
			t.Errorf("image should be scaled down, width %d", img.W)
		}
	})

	t.Run("never enlarged", func(t *testing.T) {
		page := e.Layout(&deck.Slide{Elements: []deck.Element{deck.Image{Src: "small.png"}}})
		if img := page.Boxes[0]; img.W != Pixels(10) || img.H != Pixels(10) {
			t.Errorf("size = %dx%d", img.W, img.H)
		}
	})

	t.Run("unresolved", func(t *testing.T) {
		page := e.Layout(&deck.Slide{Index: 2, Elements: []deck.Element{
			deck.Image{Src: "missing.png"},
			deck.Paragraph{Text: "after"},
		}})
		if len(page.Boxes) != 1 {
			t.Fatalf("got %d boxes, want 1", len(page.Boxes))
		}
		if page.Boxes[0].Y != Inches(0.5) {
			t.Errorf("skipped image moved the cursor: y = %d", page.Boxes[0].Y)
		}
		if len(page.Warnings) != 1 || page.Warnings[0].Slide != 2 || page.Warnings[0].Kind != deck.KindImage {
			t.Errorf("warnings = %+v", page.Warnings)
		}
	})

	t.Run("no vertical space", func(t *testing.T) {
		elements := []deck.Element{}
		for i := 0; i < 20; i++ {
			elements = append(elements, deck.Paragraph{Text: "line"})
		}
		elements = append(elements, deck.Image{Src: "wide.png"})
		page := e.Layout(&deck.Slide{Elements: elements})
		if len(page.Images()) != 0 {
			t.Error("image should be skipped")
		}
		if len(page.Warnings) != 1 {
			t.Errorf("warnings = %+v", page.Warnings)
		}
	})

	t.Run("nil resolver", func(t *testing.T) {
		page := NewEngine(cfg, nil).Layout(&deck.Slide{Elements: []deck.Element{deck.Image{Src: "wide.png"}}})
		if len(page.Boxes) != 0 || len(page.Warnings) != 1 {
			t.Errorf("page = %+v", page)
		}
	})
}

func TestLayoutBackground(t *testing.T) {
	e := newTestEngine()
	cfg := e.Config

	page := e.Layout(&deck.Slide{
		Background: "tall.png",
		Elements:   []deck.Element{deck.Heading{Level: 2, Text: "Side"}},
	})
	if len(page.Boxes) != 2 {
		t.Fatalf("got %d boxes, want 2", len(page.Boxes))
	}

	bg := page.Boxes[0]
	if !bg.Image.Background || bg.Element != nil {
		t.Errorf("background box = %+v", bg)
	}
	if bg.X != cfg.Width-Inches(3.5)-Inches(0.5) || bg.Y != Inch {
		t.Errorf("background position = %d,%d", bg.X, bg.Y)
	}
	if bg.W != Inches(3.5) || bg.H != Inches(7) {
		t.Errorf("background size = %dx%d", bg.W, bg.H)
	}
	if h := page.Boxes[1]; h.W != cfg.Width-Inches(3.5)-2*Inch {
		t.Errorf("content width = %d, want narrowed", h.W)
	}

	page = e.Layout(&deck.Slide{
		Background: "missing.png",
		Elements:   []deck.Element{deck.Heading{Level: 2, Text: "Side"}},
	})
	if len(page.Boxes) != 1 || page.Boxes[0].W != cfg.ContentWidth() {
		t.Errorf("unresolved background should leave width unchanged: %+v", page.Boxes)
	}
	if len(page.Warnings) != 1 {
		t.Errorf("warnings = %+v", page.Warnings)
	}
}

func TestLayoutTable(t *testing.T) {
	e := newTestEngine()
	width := e.Config.ContentWidth()

	page := e.Layout(&deck.Slide{Elements: []deck.Element{
		deck.Table{
			Headers: []string{"**Name**", "Value"},
			Rows:    [][]string{{"a", "`1`", "extra"}, {"[b](http://x)", ""}},
		},
		deck.Paragraph{Text: "after"},
	}})

	tb := page.Boxes[0]
	if tb.Kind != BoxTable {
		t.Fatalf("kind = %v", tb.Kind)
	}
	if !reflect.DeepEqual(tb.Table.Columns, []Length{width / 2, width / 2}) {
		t.Errorf("columns = %v", tb.Table.Columns)
	}
	if tb.H != Inches(0.35)*3 {
		t.Errorf("height = %d", tb.H)
	}
	if !reflect.DeepEqual(tb.Table.Header, []string{"Name", "Value"}) {
		t.Errorf("header = %q", tb.Table.Header)
	}
	if !reflect.DeepEqual(tb.Table.Rows, [][]string{{"a", "1"}, {"b", ""}}) {
		t.Errorf("rows = %q", tb.Table.Rows)
	}
	if !tb.Table.HeaderStyle.Bold || tb.Table.HeaderStyle.FontSize != 16 || tb.Table.BodyStyle.FontSize != 14 {
		t.Errorf("styles = %+v / %+v", tb.Table.HeaderStyle, tb.Table.BodyStyle)
	}
	if after := page.Boxes[1]; after.Y != tb.Bottom()+Inches(0.2) {
		t.Errorf("paragraph y = %d", after.Y)
	}

	page = e.Layout(&deck.Slide{Elements: []deck.Element{deck.Table{}}})
	if len(page.Boxes) != 0 || len(page.Warnings) != 1 {
		t.Errorf("zero-column table: %+v", page)
	}
}
