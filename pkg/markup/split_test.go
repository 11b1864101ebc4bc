package markup

import (
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantFront string
		want      []Chunk
	}{
		{
			name: "three slides",
			text: "# One\n---\n## Two\n---\nthree",
			want: []Chunk{{Content: "# One"}, {Content: "## Two"}, {Content: "three"}},
		},
		{
			name:      "frontmatter removed",
			text:      "---\nmarp: true\ntitle: Deck\n---\n# One\n---\n## Two",
			wantFront: "marp: true\ntitle: Deck",
			want:      []Chunk{{Content: "# One"}, {Content: "## Two"}},
		},
		{
			name: "unclosed frontmatter is a separator",
			text: "---\n# One",
			want: []Chunk{{Content: "# One"}},
		},
		{
			name: "crlf normalized",
			text: "# One\r\n---\r\n## Two\r\n",
			want: []Chunk{{Content: "# One"}, {Content: "## Two"}},
		},
		{
			name: "empty chunks dropped",
			text: "# One\n---\n\n   \n---\n---\n## Two",
			want: []Chunk{{Content: "# One"}, {Content: "## Two"}},
		},
		{
			name: "notes extracted",
			text: "# One\n<!-- first -->\n<!--\n  second\n-->",
			want: []Chunk{{Content: "# One", Notes: "first\n\nsecond"}},
		},
		{
			name: "comment-only chunk dropped",
			text: "# One\n---\n<!-- lonely note -->\n---\n## Two",
			want: []Chunk{{Content: "# One"}, {Content: "## Two"}},
		},
		{
			name: "empty note fragments kept in order",
			text: "text <!--   --> more <!-- kept -->",
			want: []Chunk{{Content: "text  more", Notes: "\n\nkept"}},
		},
		{
			name: "single empty note",
			text: "text <!---->",
			want: []Chunk{{Content: "text", Notes: ""}},
		},
		{
			name: "inline rules are not separators",
			text: "# One\n----\nstill one",
			want: []Chunk{{Content: "# One\n----\nstill one"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			front, got := Split(tt.text)
			if front != tt.wantFront {
				t.Errorf("front = %q, want %q", front, tt.wantFront)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d chunks, want %d: %q", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitSlideCountMatchesNonEmptyChunks(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 20; i++ {
		if i > 0 {
			b.WriteString("\n---\n")
		}
		if i%3 == 0 {
			b.WriteString("  \n")
			continue
		}
		b.WriteString("## Slide\n")
	}

	_, chunks := Split(b.String())
	want := 0
	for i := 0; i < 20; i++ {
		if i%3 != 0 {
			want++
		}
	}
	if len(chunks) != want {
		t.Errorf("got %d chunks, want %d", len(chunks), want)
	}
}
