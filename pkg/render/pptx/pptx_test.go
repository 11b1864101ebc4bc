package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mdslides/pkg/deck"
	"github.com/matzehuels/mdslides/pkg/layout"
	"github.com/matzehuels/mdslides/pkg/markup"
)

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func textBox(y layout.Length, style layout.Style, runs ...markup.Run) layout.Box {
	return layout.Box{
		Kind:       layout.BoxText,
		X:          layout.Inches(0.75),
		Y:          y,
		W:          layout.Inches(11),
		H:          layout.Inches(1),
		Style:      style,
		Paragraphs: []layout.Paragraph{{Runs: runs}},
	}
}

func samplePresentation(t *testing.T) Presentation {
	t.Helper()
	dir := t.TempDir()
	img := writePNG(t, dir, "chart.png", 40, 20)

	title := textBox(layout.Inches(3), layout.Style{FontSize: 44, Bold: true, Align: layout.AlignCenter, Wrap: true},
		markup.Run{Text: "Quarterly "}, markup.Run{Text: "Review", Italic: true})

	bullets := layout.Box{
		Kind:  layout.BoxText,
		X:     layout.Inches(0.75),
		Y:     layout.Inches(1.5),
		W:     layout.Inches(11),
		H:     layout.Inches(1),
		Style: layout.Style{FontSize: 18, Color: "333333", Wrap: true},
		Paragraphs: []layout.Paragraph{
			{Runs: []markup.Run{{Text: "• first\nmore"}}, SpaceAfter: 8},
			{Runs: []markup.Run{{Text: "• "}, {Text: "bold", Bold: true}}, SpaceAfter: 8},
		},
	}
	code := textBox(layout.Inches(3), layout.Style{FontSize: 14, Fill: "F0F0F0", FontFace: "Courier New"},
		markup.Run{Text: "x := 1 < 2 && true"})

	picture := func(y layout.Length) layout.Box {
		return layout.Box{
			Kind:  layout.BoxImage,
			X:     layout.Inches(1),
			Y:     y,
			W:     layout.Inches(2),
			H:     layout.Inches(1),
			Image: &layout.ImageContent{Src: "chart.png", Path: img, Format: "png", Alt: "Chart", PixelWidth: 40, PixelHeight: 20},
		}
	}

	tbl := layout.Box{
		Kind:  layout.BoxTable,
		X:     layout.Inches(0.75),
		Y:     layout.Inches(4.5),
		W:     layout.Inches(10),
		H:     layout.Inches(1),
		Table: &layout.TableContent{
			Columns:     []layout.Length{layout.Inches(5), layout.Inches(5)},
			RowHeight:   layout.Inches(0.35),
			Header:      []string{"Name", "Score"},
			Rows:        [][]string{{"Ada", "10"}, {"Bob", ""}},
			HeaderStyle: layout.Style{FontSize: 14, Bold: true},
			BodyStyle:   layout.Style{FontSize: 12},
		},
	}

	return Presentation{
		Width:  layout.Inches(13.333),
		Height: layout.Inches(7.5),
		Pages: []layout.Page{
			{Index: 0, Class: deck.ClassTitle, Boxes: []layout.Box{title}, Notes: "Say hello\n\nThen pause"},
			{Index: 1, Class: deck.ClassContent, Boxes: []layout.Box{bullets, code, picture(layout.Inches(3.5)), tbl}},
			{Index: 2, Class: deck.ClassContent, Boxes: []layout.Box{picture(layout.Inches(1)), picture(layout.Inches(3))}},
		},
		Metadata: deck.Metadata{Title: "Review", Author: "Ada", Subject: "Q3", Keywords: []string{"q3", "review"}},
	}
}

func writeAndRead(t *testing.T, pres Presentation) ([]byte, *Deck) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, pres))
	d, err := ReadBytes(buf.Bytes())
	require.NoError(t, err)
	return buf.Bytes(), d
}

func TestWrite_RoundTrip(t *testing.T) {
	pres := samplePresentation(t)
	_, d := writeAndRead(t, pres)

	assert.Equal(t, int64(pres.Width), d.Width)
	assert.Equal(t, int64(pres.Height), d.Height)
	require.Len(t, d.Slides, 3)

	t.Run("title slide", func(t *testing.T) {
		s := d.Slides[0]
		require.Len(t, s.Texts, 1)
		assert.Equal(t, "Quarterly Review", s.Texts[0].Text())
		p := s.Texts[0].Paragraphs[0]
		assert.Equal(t, "ctr", p.Align)
		require.Len(t, p.Runs, 2)
		assert.Equal(t, 4400, p.Runs[0].Size)
		assert.True(t, p.Runs[0].Bold)
		assert.False(t, p.Runs[0].Italic)
		assert.True(t, p.Runs[1].Italic)
		assert.Equal(t, "Say hello\n\nThen pause", s.Notes)
	})

	t.Run("content slide", func(t *testing.T) {
		s := d.Slides[1]
		require.Len(t, s.Texts, 2)
		assert.Equal(t, "• first\nmore\n• bold", s.Texts[0].Text())
		first := s.Texts[0].Paragraphs[0]
		assert.Equal(t, 800, first.SpaceAfter)
		assert.Equal(t, "333333", first.Runs[0].Color)
		assert.True(t, s.Texts[0].Paragraphs[1].Runs[1].Bold)

		assert.Equal(t, "x := 1 < 2 && true", s.Texts[1].Text())
		assert.Equal(t, "F0F0F0", s.Texts[1].Fill)
		assert.Equal(t, "Courier New", s.Texts[1].Paragraphs[0].Runs[0].Typeface)

		require.Len(t, s.Pictures, 1)
		assert.Equal(t, "ppt/media/image1.png", s.Pictures[0].Target)
		assert.Equal(t, "Chart", s.Pictures[0].Descr)

		require.Len(t, s.Tables, 1)
		tbl := s.Tables[0]
		assert.Equal(t, mediumStyle2Accent1, tbl.Style)
		assert.Equal(t, []int64{int64(layout.Inches(5)), int64(layout.Inches(5))}, tbl.Columns)
		assert.Equal(t, [][]string{{"Name", "Score"}, {"Ada", "10"}, {"Bob", ""}}, tbl.Cells)
		assert.Len(t, tbl.RowHeights, 3)
		assert.Empty(t, s.Notes)
	})

	t.Run("metadata", func(t *testing.T) {
		assert.Equal(t, "Review", d.Title)
		assert.Equal(t, "Ada", d.Author)
		assert.Equal(t, "Q3", d.Subject)
		assert.Equal(t, "q3, review", d.Keywords)
		assert.True(t, strings.HasPrefix(d.Application, "mdslides "))
	})
}

func TestWrite_MediaEmbeddedOnce(t *testing.T) {
	data, d := writeAndRead(t, samplePresentation(t))

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var media []string
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/media/") {
			media = append(media, f.Name)
		}
	}
	assert.Equal(t, []string{"ppt/media/image1.png"}, media)

	s := d.Slides[2]
	require.Len(t, s.Pictures, 2)
	assert.Equal(t, s.Pictures[0].Target, s.Pictures[1].Target)
}

func TestWrite_PartsWellFormed(t *testing.T) {
	data, _ := writeAndRead(t, samplePresentation(t))

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
		if !strings.HasSuffix(f.Name, ".xml") && !strings.HasSuffix(f.Name, ".rels") {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		dec := xml.NewDecoder(rc)
		for {
			_, err := dec.Token()
			if err == io.EOF {
				break
			}
			require.NoError(t, err, f.Name)
		}
		rc.Close()
	}

	for _, want := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/core.xml",
		"docProps/app.xml",
		"ppt/presentation.xml",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/notesMasters/notesMaster1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide3.xml",
		"ppt/notesSlides/notesSlide1.xml",
	} {
		assert.True(t, names[want], want)
	}
	assert.False(t, names["ppt/notesSlides/notesSlide2.xml"])
}

func TestWrite_Deterministic(t *testing.T) {
	pres := samplePresentation(t)
	var a, b bytes.Buffer
	require.NoError(t, Write(&a, pres))
	require.NoError(t, Write(&b, pres))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestWrite_CreatedDate(t *testing.T) {
	pres := samplePresentation(t)
	pres.Created = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	data, _ := writeAndRead(t, pres)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != "docProps/core.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		assert.Contains(t, string(body), "2024-05-01T12:00:00Z")
	}
}

func TestWrite_Errors(t *testing.T) {
	t.Run("invalid size", func(t *testing.T) {
		err := Write(io.Discard, Presentation{})
		assert.Error(t, err)
	})

	t.Run("missing image file", func(t *testing.T) {
		pres := Presentation{
			Width:  layout.Inches(10),
			Height: layout.Inches(7.5),
			Pages: []layout.Page{{Boxes: []layout.Box{{
				Kind:  layout.BoxImage,
				W:     layout.Inches(1),
				H:     layout.Inches(1),
				Image: &layout.ImageContent{Src: "gone.png", Path: filepath.Join(t.TempDir(), "gone.png")},
			}}}},
		}
		assert.Error(t, Write(io.Discard, pres))
	})
}

func TestWriteFile_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "deck.pptx")
	pres := Presentation{Width: layout.Inches(10), Height: layout.Inches(7.5), Pages: []layout.Page{{}}}
	require.NoError(t, WriteFile(path, pres))

	d, err := Read(path)
	require.NoError(t, err)
	require.Len(t, d.Slides, 1)
	assert.Empty(t, d.Slides[0].Texts)
}

func TestRead_Invalid(t *testing.T) {
	_, err := ReadBytes([]byte("not a zip"))
	assert.Error(t, err)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err = zw.Create("readme.txt")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	_, err = ReadBytes(buf.Bytes())
	assert.Error(t, err)

	_, err = Read(filepath.Join(t.TempDir(), "missing.pptx"))
	assert.Error(t, err)
}
