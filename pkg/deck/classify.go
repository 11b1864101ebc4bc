package deck

// SlideClass selects the layout strategy for a slide.
type SlideClass int

const (
	// ClassContent slides flow top-down from a fixed margin.
	ClassContent SlideClass = iota
	// ClassTitle slides stack headings and paragraphs centered on the canvas.
	ClassTitle
)

func (c SlideClass) String() string {
	if c == ClassTitle {
		return "title"
	}
	return "content"
}

// Classify returns ClassTitle when elements contain at least one level-1
// heading and nothing except level-1 headings and paragraphs.
func Classify(elements []Element) SlideClass {
	hasTitle := false
	for _, el := range elements {
		switch el := el.(type) {
		case Heading:
			if el.Level != 1 {
				return ClassContent
			}
			hasTitle = true
		case Paragraph:
		default:
			return ClassContent
		}
	}
	if hasTitle {
		return ClassTitle
	}
	return ClassContent
}
