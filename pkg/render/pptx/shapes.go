package pptx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/mdslides/pkg/layout"
	"github.com/matzehuels/mdslides/pkg/markup"
)

func writeTextShape(buf *bytes.Buffer, id int, b layout.Box) {
	fmt.Fprintf(buf, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, id, id-1)
	buf.WriteString(`<p:spPr>`)
	writeXfrm(buf, "a:xfrm", b)
	buf.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`)
	if b.Style.Fill != "" {
		fmt.Fprintf(buf, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, b.Style.Fill)
	} else {
		buf.WriteString(`<a:noFill/>`)
	}
	buf.WriteString(`</p:spPr>`)

	wrap := "none"
	if b.Style.Wrap {
		wrap = "square"
	}
	fmt.Fprintf(buf, `<p:txBody><a:bodyPr wrap="%s" rtlCol="0"><a:spAutoFit/></a:bodyPr><a:lstStyle/>`, wrap)
	if len(b.Paragraphs) == 0 {
		writeEmptyParagraph(buf, b.Style)
	}
	for _, p := range b.Paragraphs {
		writeParagraph(buf, p, b.Style)
	}
	buf.WriteString(`</p:txBody></p:sp>`)
}

func writeParagraph(buf *bytes.Buffer, p layout.Paragraph, style layout.Style) {
	buf.WriteString(`<a:p>`)
	writeParagraphProps(buf, style.Align, p.SpaceAfter)
	if len(p.Runs) == 0 {
		writeEndParagraph(buf, style)
		buf.WriteString(`</a:p>`)
		return
	}
	for _, r := range p.Runs {
		for i, seg := range strings.Split(r.Text, "\n") {
			if i > 0 {
				buf.WriteString(`<a:br>`)
				writeRunProps(buf, "a:rPr", style, r)
				buf.WriteString(`</a:br>`)
			}
			if seg == "" {
				continue
			}
			buf.WriteString(`<a:r>`)
			writeRunProps(buf, "a:rPr", style, r)
			fmt.Fprintf(buf, `<a:t>%s</a:t></a:r>`, escape(seg))
		}
	}
	buf.WriteString(`</a:p>`)
}

func writeParagraphProps(buf *bytes.Buffer, align layout.Align, spaceAfter float64) {
	if align == layout.AlignLeft && spaceAfter == 0 {
		return
	}
	buf.WriteString(`<a:pPr`)
	if align == layout.AlignCenter {
		buf.WriteString(` algn="ctr"`)
	}
	if spaceAfter == 0 {
		buf.WriteString(`/>`)
		return
	}
	fmt.Fprintf(buf, `><a:spcAft><a:spcPts val="%d"/></a:spcAft></a:pPr>`, hundredths(spaceAfter))
}

// writeRunProps writes a:rPr (or a:endParaRPr) for a run. The run's own
// emphasis is combined with the box style.
func writeRunProps(buf *bytes.Buffer, tag string, style layout.Style, r markup.Run) {
	fmt.Fprintf(buf, `<%s lang="en-US"`, tag)
	if style.FontSize > 0 {
		fmt.Fprintf(buf, ` sz="%d"`, hundredths(style.FontSize))
	}
	if style.Bold || r.Bold {
		buf.WriteString(` b="1"`)
	}
	if style.Italic || r.Italic {
		buf.WriteString(` i="1"`)
	}
	buf.WriteString(` dirty="0"`)
	if style.Color == "" && style.FontFace == "" {
		buf.WriteString(`/>`)
		return
	}
	buf.WriteString(`>`)
	if style.Color != "" {
		fmt.Fprintf(buf, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, style.Color)
	}
	if style.FontFace != "" {
		fmt.Fprintf(buf, `<a:latin typeface="%s"/>`, escape(style.FontFace))
	}
	fmt.Fprintf(buf, `</%s>`, tag)
}

func writeEndParagraph(buf *bytes.Buffer, style layout.Style) {
	writeRunProps(buf, "a:endParaRPr", style, markup.Run{})
}

func writeEmptyParagraph(buf *bytes.Buffer, style layout.Style) {
	buf.WriteString(`<a:p>`)
	writeEndParagraph(buf, style)
	buf.WriteString(`</a:p>`)
}

func writePicture(buf *bytes.Buffer, id int, embed string, b layout.Box) {
	name := fmt.Sprintf("Picture %d", id-1)
	fmt.Fprintf(buf, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="%s" descr="%s"/>`, id, name, escape(b.Image.Alt))
	buf.WriteString(`<p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`)
	fmt.Fprintf(buf, `<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`, embed)
	buf.WriteString(`<p:spPr>`)
	writeXfrm(buf, "a:xfrm", b)
	buf.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`)
}

func writeTable(buf *bytes.Buffer, id int, b layout.Box) {
	t := b.Table
	fmt.Fprintf(buf, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="Table %d"/>`, id, id-1)
	buf.WriteString(`<p:cNvGraphicFramePr><a:graphicFrameLocks noGrp="1"/></p:cNvGraphicFramePr><p:nvPr/></p:nvGraphicFramePr>`)
	writeXfrm(buf, "p:xfrm", b)
	fmt.Fprintf(buf, `<a:graphic><a:graphicData uri="%s"><a:tbl>`, nsTable)
	fmt.Fprintf(buf, `<a:tblPr firstRow="1" bandRow="1"><a:tableStyleId>%s</a:tableStyleId></a:tblPr>`, mediumStyle2Accent1)

	buf.WriteString(`<a:tblGrid>`)
	for _, w := range t.Columns {
		fmt.Fprintf(buf, `<a:gridCol w="%d"/>`, w)
	}
	buf.WriteString(`</a:tblGrid>`)

	writeRow(buf, t.RowHeight, len(t.Columns), t.Header, t.HeaderStyle)
	for _, row := range t.Rows {
		writeRow(buf, t.RowHeight, len(t.Columns), row, t.BodyStyle)
	}
	buf.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
}

// writeRow writes exactly cols cells; missing cells are left empty.
func writeRow(buf *bytes.Buffer, h layout.Length, cols int, cells []string, style layout.Style) {
	fmt.Fprintf(buf, `<a:tr h="%d">`, h)
	for c := 0; c < cols; c++ {
		text := ""
		if c < len(cells) {
			text = cells[c]
		}
		buf.WriteString(`<a:tc><a:txBody><a:bodyPr/><a:lstStyle/><a:p>`)
		if text == "" {
			writeEndParagraph(buf, style)
		} else {
			buf.WriteString(`<a:r>`)
			writeRunProps(buf, "a:rPr", style, markup.Run{})
			fmt.Fprintf(buf, `<a:t>%s</a:t></a:r>`, escape(text))
		}
		buf.WriteString(`</a:p></a:txBody><a:tcPr/></a:tc>`)
	}
	buf.WriteString(`</a:tr>`)
}

func writeXfrm(buf *bytes.Buffer, tag string, b layout.Box) {
	fmt.Fprintf(buf, `<%s><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></%s>`, tag, b.X, b.Y, b.W, b.H, tag)
}

// notesSlide renders speaker notes, one paragraph per line.
func notesSlide(notes string) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	fmt.Fprintf(&buf, `<p:notes %s><p:cSld><p:spTree>%s`, nsDecl, emptyGroup)
	buf.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Slide Image Placeholder 1"/>` +
		`<p:cNvSpPr><a:spLocks noGrp="1" noRot="1" noChangeAspect="1"/></p:cNvSpPr>` +
		`<p:nvPr><p:ph type="sldImg"/></p:nvPr></p:nvSpPr><p:spPr/></p:sp>`)
	buf.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="3" name="Notes Placeholder 2"/>` +
		`<p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr>` +
		`<p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr><p:spPr/>`)
	buf.WriteString(`<p:txBody><a:bodyPr/><a:lstStyle/>`)
	for _, line := range strings.Split(notes, "\n") {
		if line == "" {
			buf.WriteString(`<a:p><a:endParaRPr lang="en-US"/></a:p>`)
			continue
		}
		fmt.Fprintf(&buf, `<a:p><a:r><a:rPr lang="en-US" dirty="0"/><a:t>%s</a:t></a:r></a:p>`, escape(line))
	}
	buf.WriteString(`</p:txBody></p:sp></p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:notes>`)
	return buf.Bytes()
}

func element(buf *bytes.Buffer, tag, text string) {
	if text == "" {
		fmt.Fprintf(buf, `<%s/>`, tag)
		return
	}
	fmt.Fprintf(buf, `<%s>%s</%s>`, tag, escape(text), tag)
}

// hundredths converts points to the hundredths-of-a-point units used by
// font sizes and paragraph spacing.
func hundredths(pt float64) int {
	return int(math.Round(pt * 100))
}

func escape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
