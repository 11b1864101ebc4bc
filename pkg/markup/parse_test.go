package markup

import (
	"reflect"
	"testing"

	"github.com/matzehuels/mdslides/pkg/deck"
)

func TestParseSlide(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		want       []deck.Element
		background string
	}{
		{
			name:    "headings",
			content: "# One\n## Two\n### Three",
			want: []deck.Element{
				deck.Heading{Level: 1, Text: "One"},
				deck.Heading{Level: 2, Text: "Two"},
				deck.Heading{Level: 3, Text: "Three"},
			},
		},
		{
			name:       "background and image",
			content:    "![bg right](bg.png)\n![A chart](chart.png)",
			want:       []deck.Element{deck.Image{Alt: "A chart", Src: "chart.png"}},
			background: "bg.png",
		},
		{
			name:    "quote",
			content: "> first\n> second\nafter",
			want: []deck.Element{
				deck.Quote{Lines: []string{"first", "second"}},
				deck.Paragraph{Text: "after"},
			},
		},
		{
			name:    "fenced code",
			content: "```go\nx := 1\n\ny := 2\n```\nafter",
			want: []deck.Element{
				deck.Code{Lines: []string{"x := 1", "", "y := 2"}},
				deck.Paragraph{Text: "after"},
			},
		},
		{
			name:    "unterminated fence",
			content: "```\na\nb",
			want:    []deck.Element{deck.Code{Lines: []string{"a", "b"}}},
		},
		{
			name:    "ordered list",
			content: "1. one\n2.two\n10. ten",
			want:    []deck.Element{deck.List{Ordered: true, Items: []string{"one", "two", "ten"}}},
		},
		{
			name:    "bullet continuation",
			content: "- one\n  more\n\n- two",
			want: []deck.Element{
				deck.List{Items: []string{"one\nmore"}},
				deck.List{Items: []string{"two"}},
			},
		},
		{
			name:    "mixed bullet markers",
			content: "- a\n* b",
			want:    []deck.Element{deck.List{Items: []string{"a", "b"}}},
		},
		{
			name:    "paragraphs trimmed",
			content: "  hello  \n\nworld",
			want: []deck.Element{
				deck.Paragraph{Text: "hello"},
				deck.Paragraph{Text: "world"},
			},
		},
		{
			name:    "pipe without divider is a paragraph",
			content: "a | b\nc | d",
			want: []deck.Element{
				deck.Paragraph{Text: "a | b"},
				deck.Paragraph{Text: "c | d"},
			},
		},
		{
			name:    "hash without space is a paragraph",
			content: "#hashtag",
			want:    []deck.Element{deck.Paragraph{Text: "#hashtag"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ParseSlide(tt.content)
			if !reflect.DeepEqual(s.Elements, tt.want) {
				t.Errorf("elements = %#v\nwant %#v", s.Elements, tt.want)
			}
			if s.Background != tt.background {
				t.Errorf("background = %q, want %q", s.Background, tt.background)
			}
		})
	}
}

func TestParseSlideTable(t *testing.T) {
	s := ParseSlide("| A | B |\n|---|---|\n| 1 | 2 |\n| 3 |\nafter")

	want := []deck.Element{
		deck.Table{
			Headers: []string{"A", "B"},
			Rows:    [][]string{{"1", "2"}, {"3", ""}},
		},
		deck.Paragraph{Text: "after"},
	}
	if !reflect.DeepEqual(s.Elements, want) {
		t.Errorf("elements = %#v\nwant %#v", s.Elements, want)
	}
}

func TestParseTableExtraCellsKept(t *testing.T) {
	table := ParseTable([]string{"| A |", "| - |", "| 1 | 2 |"})
	if got := table.Rows[0]; !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Errorf("row = %q", got)
	}
	if table.Columns() != 1 {
		t.Errorf("Columns() = %d, want 1", table.Columns())
	}
}

func TestParse(t *testing.T) {
	text := `---
marp: true
title: Quarterly Review
author: Ops
keywords: [status, q3]
---

# Quarterly Review

Operations team

<!-- Welcome everyone -->

---

## Agenda

- Numbers
- Plans
`
	doc, warnings := Parse(text)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if doc.SlideCount() != 2 {
		t.Fatalf("SlideCount() = %d, want 2", doc.SlideCount())
	}
	if doc.Metadata.Title != "Quarterly Review" || doc.Metadata.Author != "Ops" {
		t.Errorf("metadata = %+v", doc.Metadata)
	}
	if !reflect.DeepEqual(doc.Metadata.Keywords, []string{"status", "q3"}) {
		t.Errorf("keywords = %q", doc.Metadata.Keywords)
	}

	first, second := doc.Slides[0], doc.Slides[1]
	if first.Index != 0 || second.Index != 1 {
		t.Errorf("indexes = %d, %d", first.Index, second.Index)
	}
	if first.Class() != deck.ClassTitle {
		t.Errorf("first slide class = %v, want title", first.Class())
	}
	if first.Notes != "Welcome everyone" {
		t.Errorf("notes = %q", first.Notes)
	}
	if second.Class() != deck.ClassContent {
		t.Errorf("second slide class = %v, want content", second.Class())
	}
}

func TestParseBadFrontmatterWarns(t *testing.T) {
	doc, warnings := Parse("---\ntitle: [unclosed\n---\n# Hi")
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if warnings[0].Slide != -1 {
		t.Errorf("warning slide = %d, want -1", warnings[0].Slide)
	}
	if doc.SlideCount() != 1 {
		t.Errorf("SlideCount() = %d, want 1", doc.SlideCount())
	}
}

func TestParseMetadata(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		subject  string
		keywords []string
	}{
		{"description fallback", "description: About things", "About things", nil},
		{"subject wins", "subject: S\ndescription: D", "S", nil},
		{"comma keywords", "keywords: a, b ,c", "", []string{"a", "b", "c"}},
		{"list keywords", "keywords:\n  - x\n  - y", "", []string{"x", "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := ParseMetadata(tt.body)
			if err != nil {
				t.Fatalf("ParseMetadata() error = %v", err)
			}
			if meta.Subject != tt.subject {
				t.Errorf("Subject = %q, want %q", meta.Subject, tt.subject)
			}
			if !reflect.DeepEqual(meta.Keywords, tt.keywords) {
				t.Errorf("Keywords = %q, want %q", meta.Keywords, tt.keywords)
			}
		})
	}

	meta, err := ParseMetadata("marp: true\ntheme: gaia")
	if err != nil {
		t.Fatal(err)
	}
	if meta.Raw["theme"] != "gaia" {
		t.Errorf("Raw[theme] = %v", meta.Raw["theme"])
	}
}
