package markup

import (
	"strings"

	"github.com/matzehuels/mdslides/pkg/deck"
)

// Parse splits text into slides and parses each one. Frontmatter that is not
// valid YAML is reported as a warning and otherwise ignored.
func Parse(text string) (*deck.Document, []deck.Warning) {
	front, chunks := Split(text)

	doc := &deck.Document{Slides: make([]*deck.Slide, 0, len(chunks))}
	var warnings []deck.Warning
	if front != "" {
		meta, err := ParseMetadata(front)
		if err != nil {
			warnings = append(warnings, deck.Warning{Slide: -1, Message: err.Error()})
		}
		doc.Metadata = meta
	}

	for i, c := range chunks {
		s := ParseSlide(c.Content)
		s.Index = i
		s.Notes = c.Notes
		doc.Slides = append(doc.Slides, s)
	}
	return doc, warnings
}

// ParseSlide scans the visible content of one slide. Each line is tested
// against the element patterns in priority order and the first match
// consumes one or more lines.
func ParseSlide(content string) *deck.Slide {
	p := &slideParser{lines: strings.Split(content, "\n")}
	p.run()
	return &deck.Slide{Elements: p.elements, Background: p.background}
}

type slideParser struct {
	lines      []string
	pos        int
	elements   []deck.Element
	background string
}

func (p *slideParser) run() {
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]

		switch {
		case patterns.background.MatchString(line):
			p.background = patterns.background.FindStringSubmatch(line)[1]
			p.pos++
		case patterns.image.MatchString(line):
			m := patterns.image.FindStringSubmatch(line)
			p.emit(deck.Image{Alt: m[1], Src: m[2]})
			p.pos++
		case strings.HasPrefix(line, "# "):
			p.emit(deck.Heading{Level: 1, Text: line[2:]})
			p.pos++
		case strings.HasPrefix(line, "## "):
			p.emit(deck.Heading{Level: 2, Text: line[3:]})
			p.pos++
		case strings.HasPrefix(line, "### "):
			p.emit(deck.Heading{Level: 3, Text: line[4:]})
			p.pos++
		case strings.HasPrefix(line, quotePrefix):
			p.quote()
		case strings.HasPrefix(line, codeFence):
			p.code()
		case isTableStart(p.lines, p.pos):
			p.table()
		case patterns.orderedItem.MatchString(line):
			p.orderedList()
		case isBullet(line):
			p.bulletList()
		default:
			if text := strings.TrimSpace(line); text != "" {
				p.emit(deck.Paragraph{Text: text})
			}
			p.pos++
		}
	}
}

func (p *slideParser) emit(el deck.Element) {
	p.elements = append(p.elements, el)
}

func (p *slideParser) quote() {
	var lines []string
	for p.pos < len(p.lines) && strings.HasPrefix(p.lines[p.pos], quotePrefix) {
		lines = append(lines, p.lines[p.pos][len(quotePrefix):])
		p.pos++
	}
	p.emit(deck.Quote{Lines: lines})
}

// code consumes the opening fence, the body and the closing fence. A missing
// closing fence runs the block to the end of the slide.
func (p *slideParser) code() {
	var lines []string
	p.pos++
	for p.pos < len(p.lines) && !strings.HasPrefix(p.lines[p.pos], codeFence) {
		lines = append(lines, p.lines[p.pos])
		p.pos++
	}
	p.pos++
	p.emit(deck.Code{Lines: lines})
}

func (p *slideParser) table() {
	var lines []string
	for p.pos < len(p.lines) && strings.Contains(p.lines[p.pos], columnSep) {
		lines = append(lines, p.lines[p.pos])
		p.pos++
	}
	p.emit(ParseTable(lines))
}

func (p *slideParser) orderedList() {
	var items []string
	for p.pos < len(p.lines) && patterns.orderedItem.MatchString(p.lines[p.pos]) {
		items = append(items, patterns.orderedPrefix.ReplaceAllString(p.lines[p.pos], ""))
		p.pos++
	}
	p.emit(deck.List{Ordered: true, Items: items})
}

// bulletList collects "- " and "* " items. Lines indented by two spaces
// continue the previous item. Any other line, blank ones included, ends the
// list.
func (p *slideParser) bulletList() {
	var items []string
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		switch {
		case isBullet(line):
			items = append(items, line[2:])
		case strings.HasPrefix(line, continuation):
			if n := len(items); n > 0 {
				items[n-1] += "\n" + strings.TrimSpace(line)
			}
		default:
			p.emit(deck.List{Items: items})
			return
		}
		p.pos++
	}
	p.emit(deck.List{Items: items})
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ")
}
