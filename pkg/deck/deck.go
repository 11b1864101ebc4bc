package deck

import "fmt"

// Document is a parsed slide deck. It is not modified after parsing.
type Document struct {
	Metadata Metadata
	Slides   []*Slide
}

// Metadata holds deck-level information decoded from the frontmatter block.
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Keywords []string
	// Raw keeps every frontmatter key, including Marp directives such as
	// "theme" or "paginate" that the converter does not interpret.
	Raw map[string]any
}

// Slide is one slide of the deck.
type Slide struct {
	Index      int       // 0-indexed position in the document
	Elements   []Element // source order
	Notes      string    // speaker notes, empty if none
	Background string    // background image path, empty if none
}

// SlideCount returns the number of slides.
func (d *Document) SlideCount() int {
	return len(d.Slides)
}

// Class returns the layout class of the slide.
func (s *Slide) Class() SlideClass {
	return Classify(s.Elements)
}

// HasNotes reports whether the slide carries speaker notes.
func (s *Slide) HasNotes() bool {
	return s.Notes != ""
}

// CountKinds returns how many elements of each kind the slide holds.
func (s *Slide) CountKinds() map[Kind]int {
	counts := make(map[Kind]int)
	for _, el := range s.Elements {
		counts[el.Kind()]++
	}
	return counts
}

// Warning is a non-fatal problem found while parsing or laying out a slide.
// Warnings never abort a conversion.
type Warning struct {
	Slide   int    // 0-indexed slide, -1 for document-level warnings
	Kind    Kind   // element kind involved, 0 if none
	Message string
}

func (w Warning) String() string {
	if w.Slide < 0 {
		return w.Message
	}
	return fmt.Sprintf("slide %d: %s", w.Slide+1, w.Message)
}
