package sink

import "github.com/matzehuels/mdslides/pkg/layout"

// Canvas is the slide size shared by every page of a deck.
type Canvas struct {
	Width  layout.Length
	Height layout.Length
}

// CanvasOf returns the canvas described by a layout configuration.
func CanvasOf(cfg layout.Config) Canvas {
	return Canvas{Width: cfg.Width, Height: cfg.Height}
}

// pixels converts a length to CSS pixels at 96 dpi.
func pixels(l layout.Length) float64 { return l.Pixels() }

// pointsToPixels converts a font size in points to CSS pixels.
func pointsToPixels(pt float64) float64 { return pt * 96 / 72 }

// lineHeight is the baseline-to-baseline distance for a font size in pixels.
func lineHeight(px float64) float64 { return px * 1.2 }

// boxLines splits a text box into the lines drawn by preview sinks.
func boxLines(b layout.Box) []string {
	var lines []string
	for _, p := range b.Paragraphs {
		lines = append(lines, splitLines(p.Text())...)
	}
	return lines
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}
