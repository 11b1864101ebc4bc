package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/matzehuels/mdslides/pkg/errors"
)

// Deck is the content of a presentation read back from disk.
type Deck struct {
	Width       int64 // EMU
	Height      int64 // EMU
	Title       string
	Author      string
	Subject     string
	Keywords    string
	Application string
	Slides      []Slide
}

// Slide is the content of one slide in presentation order.
type Slide struct {
	Index    int
	Texts    []TextBlock
	Tables   []Table
	Pictures []Picture
	Notes    string
}

// TextBlock is one text shape.
type TextBlock struct {
	Name       string
	X, Y, W, H int64
	Fill       string
	Paragraphs []Paragraph
}

// Text returns the paragraphs joined with newlines.
func (b TextBlock) Text() string {
	lines := make([]string, len(b.Paragraphs))
	for i, p := range b.Paragraphs {
		lines[i] = p.Text()
	}
	return strings.Join(lines, "\n")
}

// Paragraph is one a:p of a text shape.
type Paragraph struct {
	Align      string // "l", "ctr", ... empty when unset
	SpaceAfter int    // hundredths of a point
	Runs       []Run
}

// Text returns the paragraph text with line breaks as "\n".
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Run is a span of text. Line breaks are runs with Text "\n".
type Run struct {
	Text     string
	Size     int // hundredths of a point
	Bold     bool
	Italic   bool
	Color    string
	Typeface string
}

// Table is a table graphic frame.
type Table struct {
	X, Y, W, H int64
	Columns    []int64
	RowHeights []int64
	Style      string
	Cells      [][]string
}

// Picture is an embedded image.
type Picture struct {
	Name       string
	Descr      string
	Target     string // part name, e.g. "ppt/media/image1.png"
	X, Y, W, H int64
}

// Read opens and parses a .pptx file.
func Read(filename string) (*Deck, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open %s", filename)
	}
	defer zr.Close()
	return newReader(&zr.Reader).read()
}

// ReadBytes parses a .pptx package held in memory.
func ReadBytes(data []byte) (*Deck, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open package")
	}
	return newReader(zr).read()
}

type reader struct {
	files map[string]*zip.File
}

func newReader(zr *zip.Reader) *reader {
	r := &reader{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		r.files[f.Name] = f
	}
	return r
}

func (r *reader) read() (*Deck, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	var pres presentationXML
	if err := r.unmarshal("ppt/presentation.xml", &pres); err != nil {
		return nil, err
	}

	d := &Deck{}
	if pres.SlideSz != nil {
		d.Width, d.Height = pres.SlideSz.Cx, pres.SlideSz.Cy
	}

	for i, name := range r.slideParts(&pres) {
		s, err := r.slide(name, i)
		if err != nil {
			return nil, err
		}
		d.Slides = append(d.Slides, *s)
	}

	var core corePropertiesXML
	if r.unmarshal("docProps/core.xml", &core) == nil {
		d.Title, d.Author, d.Subject, d.Keywords = core.Title, core.Creator, core.Subject, core.Keywords
	}
	var app appPropertiesXML
	if r.unmarshal("docProps/app.xml", &app) == nil {
		d.Application = app.Application
	}
	return d, nil
}

func (r *reader) validate() error {
	for _, name := range []string{"[Content_Types].xml", "ppt/presentation.xml"} {
		if _, ok := r.files[name]; !ok {
			return errors.New(errors.ErrCodeInvalidFormat, "missing required part %s", name)
		}
	}
	return nil
}

func (r *reader) content(name string) ([]byte, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "missing part %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open part %s", name)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read part %s", name)
	}
	return data, nil
}

func (r *reader) unmarshal(name string, v any) error {
	data, err := r.content(name)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse part %s", name)
	}
	return nil
}

// rels returns the relationships of a part, or nil if it has none.
func (r *reader) rels(part string) []relationshipXML {
	var rels relationshipsXML
	if r.unmarshal(path.Join(path.Dir(part), "_rels", path.Base(part)+".rels"), &rels) != nil {
		return nil
	}
	return rels.Relationship
}

// slideParts lists slide part names in presentation order. Packages without
// a usable slide list fall back to numeric file order.
func (r *reader) slideParts(pres *presentationXML) []string {
	targets := make(map[string]string)
	for _, rel := range r.rels("ppt/presentation.xml") {
		targets[rel.ID] = resolve("ppt/presentation.xml", rel.Target)
	}

	var parts []string
	if pres.SlideIDList != nil {
		for _, id := range pres.SlideIDList.SlideID {
			if t, ok := targets[id.RID]; ok {
				if _, exists := r.files[t]; exists {
					parts = append(parts, t)
				}
			}
		}
	}
	if len(parts) > 0 {
		return parts
	}

	for name := range r.files {
		if strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml") {
			parts = append(parts, name)
		}
	}
	sort.Slice(parts, func(i, j int) bool {
		return slideNumber(parts[i]) < slideNumber(parts[j])
	})
	return parts
}

func slideNumber(name string) int {
	var n int
	fmt.Sscanf(strings.TrimPrefix(name, "ppt/slides/slide"), "%d", &n)
	return n
}

// resolve turns a relationship target into a package part name.
func resolve(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(path.Dir(source), target))
}

func (r *reader) slide(name string, index int) (*Slide, error) {
	var sx slideXML
	if err := r.unmarshal(name, &sx); err != nil {
		return nil, err
	}

	targets := make(map[string]string)
	var notesPart string
	for _, rel := range r.rels(name) {
		t := resolve(name, rel.Target)
		targets[rel.ID] = t
		if strings.HasSuffix(rel.Type, "/notesSlide") {
			notesPart = t
		}
	}

	s := &Slide{Index: index}
	collectShapes(&sx.CSld.SpTree, targets, s)

	if notesPart != "" {
		var nx notesSlideXML
		if err := r.unmarshal(notesPart, &nx); err != nil {
			return nil, err
		}
		s.Notes = notesText(&nx.CSld.SpTree)
	}
	return s, nil
}

func collectShapes(tree *spTreeXML, targets map[string]string, s *Slide) {
	for _, sp := range tree.Sp {
		if sp.TxBody == nil {
			continue
		}
		block := TextBlock{Name: sp.NvSpPr.CNvPr.Name}
		if x := sp.SpPr.Xfrm; x != nil {
			block.X, block.Y, block.W, block.H = x.Off.X, x.Off.Y, x.Ext.Cx, x.Ext.Cy
		}
		if f := sp.SpPr.SolidFill; f != nil && f.SrgbClr != nil {
			block.Fill = f.SrgbClr.Val
		}
		for _, p := range sp.TxBody.P {
			block.Paragraphs = append(block.Paragraphs, paragraph(&p))
		}
		s.Texts = append(s.Texts, block)
	}

	for _, pic := range tree.Pic {
		p := Picture{
			Name:   pic.NvPicPr.CNvPr.Name,
			Descr:  pic.NvPicPr.CNvPr.Descr,
			Target: targets[pic.BlipFill.Blip.Embed],
		}
		if x := pic.SpPr.Xfrm; x != nil {
			p.X, p.Y, p.W, p.H = x.Off.X, x.Off.Y, x.Ext.Cx, x.Ext.Cy
		}
		s.Pictures = append(s.Pictures, p)
	}

	for _, gf := range tree.GraphicFrame {
		if tbl := gf.Graphic.GraphicData.Tbl; tbl != nil {
			t := table(tbl)
			if x := gf.Xfrm; x != nil {
				t.X, t.Y, t.W, t.H = x.Off.X, x.Off.Y, x.Ext.Cx, x.Ext.Cy
			}
			s.Tables = append(s.Tables, t)
		}
	}

	for i := range tree.GrpSp {
		collectShapes(&tree.GrpSp[i], targets, s)
	}
}

func paragraph(px *pXML) Paragraph {
	var p Paragraph
	if px.PPr != nil {
		p.Align = px.PPr.Algn
		if px.PPr.SpcAft != nil {
			p.SpaceAfter = px.PPr.SpcAft.SpcPts.Val
		}
	}
	for _, item := range px.Items {
		switch item.XMLName.Local {
		case "r", "fld":
			p.Runs = append(p.Runs, run(item.T, item.RPr))
		case "br":
			p.Runs = append(p.Runs, run("\n", item.RPr))
		}
	}
	return p
}

func run(text string, rpr *rPrXML) Run {
	r := Run{Text: text}
	if rpr == nil {
		return r
	}
	r.Size = rpr.Sz
	r.Bold = rpr.B == "1" || rpr.B == "true"
	r.Italic = rpr.I == "1" || rpr.I == "true"
	if rpr.Fill != nil && rpr.Fill.SrgbClr != nil {
		r.Color = rpr.Fill.SrgbClr.Val
	}
	if rpr.Latin != nil {
		r.Typeface = rpr.Latin.Typeface
	}
	return r
}

func table(tbl *tblXML) Table {
	var t Table
	if tbl.TblPr != nil {
		t.Style = tbl.TblPr.StyleID
	}
	for _, col := range tbl.TblGrid.GridCol {
		t.Columns = append(t.Columns, col.W)
	}
	for _, tr := range tbl.Tr {
		t.RowHeights = append(t.RowHeights, tr.H)
		row := make([]string, 0, len(tr.Tc))
		for _, tc := range tr.Tc {
			var lines []string
			if tc.TxBody != nil {
				for _, p := range tc.TxBody.P {
					pp := paragraph(&p)
					lines = append(lines, pp.Text())
				}
			}
			row = append(row, strings.Join(lines, "\n"))
		}
		t.Cells = append(t.Cells, row)
	}
	return t
}

// notesText joins the body placeholder paragraphs of a notes slide. The
// slide image placeholder is skipped.
func notesText(tree *spTreeXML) string {
	var lines []string
	for _, sp := range tree.Sp {
		if ph := sp.NvSpPr.NvPr.Ph; ph != nil && ph.Type == "sldImg" {
			continue
		}
		if sp.TxBody == nil {
			continue
		}
		for _, p := range sp.TxBody.P {
			pp := paragraph(&p)
			lines = append(lines, pp.Text())
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
