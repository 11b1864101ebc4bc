package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/mdslides/pkg/buildinfo"
	"github.com/matzehuels/mdslides/pkg/deck"
	"github.com/matzehuels/mdslides/pkg/errors"
	"github.com/matzehuels/mdslides/pkg/layout"
)

// notesWidth and notesHeight are the portrait notes page size (7.5 x 10 in).
const (
	notesWidth  = 6858000
	notesHeight = 9144000
)

// Presentation is everything needed to write a .pptx file.
type Presentation struct {
	Width    layout.Length
	Height   layout.Length
	Pages    []layout.Page
	Metadata deck.Metadata
	// Created is recorded as the creation and modification date. A zero
	// value omits both, which keeps the output byte-for-byte reproducible.
	Created time.Time
}

// WriteFile writes the presentation to path, creating parent directories.
func WriteFile(path string, pres Presentation) error {
	var buf bytes.Buffer
	if err := Write(&buf, pres); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory")
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

// Write encodes the presentation as an OOXML package.
func Write(w io.Writer, pres Presentation) error {
	if pres.Width <= 0 || pres.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid slide size %dx%d", pres.Width, pres.Height)
	}

	pw := &packageWriter{
		zip:   zip.NewWriter(w),
		pres:  pres,
		media: newMediaSet(),
	}
	if err := pw.write(); err != nil {
		pw.zip.Close()
		return err
	}
	if err := pw.zip.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "finalize package")
	}
	return nil
}

type packageWriter struct {
	zip   *zip.Writer
	pres  Presentation
	media *mediaSet
	notes int
}

func (pw *packageWriter) write() error {
	// Slides go first so that media and notes counts are known when the
	// content types and app properties are written.
	type part struct {
		name string
		body []byte
	}
	var parts []part
	for i, page := range pw.pres.Pages {
		n := i + 1
		slide, rels, err := pw.slide(n, page)
		if err != nil {
			return err
		}
		parts = append(parts,
			part{fmt.Sprintf("ppt/slides/slide%d.xml", n), slide},
			part{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), rels},
		)
		if page.Notes != "" {
			pw.notes++
			parts = append(parts,
				part{fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n), notesSlide(page.Notes)},
				part{fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", n), relationships(
					rel{"rId1", relNotesMaster, "../notesMasters/notesMaster1.xml"},
					rel{"rId2", relSlide, fmt.Sprintf("../slides/slide%d.xml", n)},
				)},
			)
		}
	}

	head := []part{
		{"[Content_Types].xml", pw.contentTypes()},
		{"_rels/.rels", relationships(
			rel{"rId1", relOfficeDocument, "ppt/presentation.xml"},
			rel{"rId2", relCoreProps, "docProps/core.xml"},
			rel{"rId3", relExtendedProps, "docProps/app.xml"},
		)},
		{"docProps/core.xml", pw.coreProps()},
		{"docProps/app.xml", pw.appProps()},
		{"ppt/presentation.xml", pw.presentation()},
		{"ppt/_rels/presentation.xml.rels", pw.presentationRels()},
		{"ppt/slideMasters/slideMaster1.xml", []byte(slideMasterXML)},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", relationships(
			rel{"rId1", relSlideLayout, "../slideLayouts/slideLayout1.xml"},
			rel{"rId2", relTheme, "../theme/theme1.xml"},
		)},
		{"ppt/slideLayouts/slideLayout1.xml", []byte(slideLayoutXML)},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", relationships(
			rel{"rId1", relSlideMaster, "../slideMasters/slideMaster1.xml"},
		)},
		{"ppt/notesMasters/notesMaster1.xml", []byte(notesMasterXML)},
		{"ppt/notesMasters/_rels/notesMaster1.xml.rels", relationships(
			rel{"rId1", relTheme, "../theme/theme2.xml"},
		)},
		{"ppt/theme/theme1.xml", []byte(themeXML)},
		{"ppt/theme/theme2.xml", []byte(themeXML)},
		{"ppt/presProps.xml", []byte(presPropsXML)},
		{"ppt/viewProps.xml", []byte(viewPropsXML)},
		{"ppt/tableStyles.xml", []byte(tableStylesXML)},
	}

	for _, p := range append(head, parts...) {
		if err := pw.add(p.name, p.body); err != nil {
			return err
		}
	}
	for _, m := range pw.media.items {
		if err := pw.add("ppt/media/"+m.name, m.data); err != nil {
			return err
		}
	}
	return nil
}

func (pw *packageWriter) add(name string, body []byte) error {
	modified := pw.pres.Created
	if modified.IsZero() {
		modified = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	f, err := pw.zip.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create part %s", name)
	}
	if _, err := f.Write(body); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write part %s", name)
	}
	return nil
}

func (pw *packageWriter) slide(n int, page layout.Page) (slide, rels []byte, err error) {
	sr := &slideRels{rels: []rel{{"rId1", relSlideLayout, "../slideLayouts/slideLayout1.xml"}}}
	if page.Notes != "" {
		sr.add(relNotesSlide, fmt.Sprintf("../notesSlides/notesSlide%d.xml", n))
	}

	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	fmt.Fprintf(&buf, `<p:sld %s><p:cSld><p:spTree>%s`, nsDecl, emptyGroup)

	id := 2
	for _, b := range page.Boxes {
		switch b.Kind {
		case layout.BoxText:
			writeTextShape(&buf, id, b)
		case layout.BoxImage:
			if b.Image == nil {
				continue
			}
			m, err := pw.media.add(b.Image)
			if err != nil {
				return nil, nil, err
			}
			writePicture(&buf, id, sr.embed(m), b)
		case layout.BoxTable:
			if b.Table == nil {
				continue
			}
			writeTable(&buf, id, b)
		}
		id++
	}

	buf.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return buf.Bytes(), relationships(sr.rels...), nil
}

func (pw *packageWriter) contentTypes() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	fmt.Fprintf(&buf, `<Types xmlns="%s">`, nsContentTypes)
	fmt.Fprintf(&buf, `<Default Extension="rels" ContentType="%s"/>`, ctRels)
	buf.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	for _, ext := range pw.media.extensions() {
		fmt.Fprintf(&buf, `<Default Extension="%s" ContentType="%s"/>`, ext, pw.media.contentType(ext))
	}

	override := func(part, ct string) {
		fmt.Fprintf(&buf, `<Override PartName="/%s" ContentType="%s"/>`, part, ct)
	}
	override("ppt/presentation.xml", ctPresentation)
	override("ppt/slideMasters/slideMaster1.xml", ctSlideMaster)
	override("ppt/slideLayouts/slideLayout1.xml", ctSlideLayout)
	override("ppt/notesMasters/notesMaster1.xml", ctNotesMaster)
	override("ppt/theme/theme1.xml", ctTheme)
	override("ppt/theme/theme2.xml", ctTheme)
	for i, page := range pw.pres.Pages {
		override(fmt.Sprintf("ppt/slides/slide%d.xml", i+1), ctSlide)
		if page.Notes != "" {
			override(fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", i+1), ctNotesSlide)
		}
	}
	override("ppt/presProps.xml", ctPresProps)
	override("ppt/viewProps.xml", ctViewProps)
	override("ppt/tableStyles.xml", ctTableStyles)
	override("docProps/core.xml", ctCoreProps)
	override("docProps/app.xml", ctExtProps)
	buf.WriteString(`</Types>`)
	return buf.Bytes()
}

func (pw *packageWriter) presentation() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	fmt.Fprintf(&buf, `<p:presentation %s saveSubsetFonts="1">`, nsDecl)
	buf.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	buf.WriteString(`<p:notesMasterIdLst><p:notesMasterId r:id="rId2"/></p:notesMasterIdLst>`)
	if len(pw.pres.Pages) > 0 {
		buf.WriteString(`<p:sldIdLst>`)
		for i := range pw.pres.Pages {
			fmt.Fprintf(&buf, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, firstSlideRel+i)
		}
		buf.WriteString(`</p:sldIdLst>`)
	}
	fmt.Fprintf(&buf, `<p:sldSz cx="%d" cy="%d"/>`, pw.pres.Width, pw.pres.Height)
	fmt.Fprintf(&buf, `<p:notesSz cx="%d" cy="%d"/>`, notesWidth, notesHeight)
	buf.WriteString(`</p:presentation>`)
	return buf.Bytes()
}

// firstSlideRel is the first relationship id used for slides in
// presentation.xml.rels; rId1 to rId6 are the fixed parts.
const firstSlideRel = 7

func (pw *packageWriter) presentationRels() []byte {
	rels := []rel{
		{"rId1", relSlideMaster, "slideMasters/slideMaster1.xml"},
		{"rId2", relNotesMaster, "notesMasters/notesMaster1.xml"},
		{"rId3", relPresProps, "presProps.xml"},
		{"rId4", relViewProps, "viewProps.xml"},
		{"rId5", relTheme, "theme/theme1.xml"},
		{"rId6", relTableStyles, "tableStyles.xml"},
	}
	for i := range pw.pres.Pages {
		rels = append(rels, rel{
			fmt.Sprintf("rId%d", firstSlideRel+i),
			relSlide,
			fmt.Sprintf("slides/slide%d.xml", i+1),
		})
	}
	return relationships(rels...)
}

func (pw *packageWriter) coreProps() []byte {
	md := pw.pres.Metadata
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
		`xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	element(&buf, "dc:title", md.Title)
	element(&buf, "dc:subject", md.Subject)
	element(&buf, "dc:creator", md.Author)
	element(&buf, "cp:keywords", strings.Join(md.Keywords, ", "))
	element(&buf, "cp:lastModifiedBy", md.Author)
	buf.WriteString(`<cp:revision>1</cp:revision>`)
	if !pw.pres.Created.IsZero() {
		ts := pw.pres.Created.UTC().Format(time.RFC3339)
		fmt.Fprintf(&buf, `<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>`, ts)
		fmt.Fprintf(&buf, `<dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>`, ts)
	}
	buf.WriteString(`</cp:coreProperties>`)
	return buf.Bytes()
}

func (pw *packageWriter) appProps() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" ` +
		`xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">`)
	element(&buf, "Application", buildinfo.Generator())
	element(&buf, "PresentationFormat", "Custom")
	fmt.Fprintf(&buf, `<Slides>%d</Slides><Notes>%d</Notes>`, len(pw.pres.Pages), pw.notes)
	buf.WriteString(`</Properties>`)
	return buf.Bytes()
}

type rel struct {
	id, typ, target string
}

func relationships(rels ...rel) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	fmt.Fprintf(&buf, `<Relationships xmlns="%s">`, nsPackageRels)
	for _, r := range rels {
		fmt.Fprintf(&buf, `<Relationship Id="%s" Type="%s" Target="%s"/>`, r.id, r.typ, escape(r.target))
	}
	buf.WriteString(`</Relationships>`)
	return buf.Bytes()
}

// slideRels collects the relationships of one slide. Each media part gets a
// single relationship no matter how often it is drawn.
type slideRels struct {
	rels   []rel
	byPart map[string]string
}

func (s *slideRels) add(typ, target string) string {
	id := fmt.Sprintf("rId%d", len(s.rels)+1)
	s.rels = append(s.rels, rel{id, typ, target})
	return id
}

func (s *slideRels) embed(m *mediaItem) string {
	if id, ok := s.byPart[m.name]; ok {
		return id
	}
	if s.byPart == nil {
		s.byPart = make(map[string]string)
	}
	id := s.add(relImage, "../media/"+m.name)
	s.byPart[m.name] = id
	return id
}
