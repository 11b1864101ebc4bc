package layout

import (
	"testing"

	"github.com/matzehuels/mdslides/pkg/markup"
)

func TestBoxGeometry(t *testing.T) {
	b := Box{X: 10, Y: 20, W: 40, H: 60}

	tests := []struct {
		name string
		got  Length
		want Length
	}{
		{"right", b.Right(), 50},
		{"bottom", b.Bottom(), 80},
		{"center x", b.CenterX(), 30},
		{"center y", b.CenterY(), 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", int64(tt.got), int64(tt.want))
			}
		})
	}
}

func TestBoxText(t *testing.T) {
	b := Box{Paragraphs: []Paragraph{
		{Runs: []markup.Run{{Text: "a "}, {Text: "b", Bold: true}}},
		{},
		{Runs: []markup.Run{{Text: "c"}}},
	}}
	if got, want := b.Text(), "a b\n\nc"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestKindStrings(t *testing.T) {
	if BoxText.String() != "text" || BoxImage.String() != "image" || BoxTable.String() != "table" {
		t.Error("unexpected BoxKind strings")
	}
	if AlignLeft.String() != "left" || AlignCenter.String() != "center" {
		t.Error("unexpected Align strings")
	}
}
