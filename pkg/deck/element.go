package deck

// Kind identifies the concrete type of an Element.
type Kind int

const (
	KindHeading Kind = iota + 1
	KindParagraph
	KindQuote
	KindCode
	KindList
	KindImage
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindQuote:
		return "quote"
	case KindCode:
		return "code"
	case KindList:
		return "list"
	case KindImage:
		return "image"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Element is one block of slide content. The set of implementations is
// closed; see the package documentation for the variants.
type Element interface {
	Kind() Kind
	element()
}

// Heading is a "#", "##" or "###" line.
type Heading struct {
	Level int // 1-3
	Text  string
}

// Paragraph is a single non-blank line that matched no other pattern.
type Paragraph struct {
	Text string
}

// Quote collects consecutive "> " lines with the prefix removed.
type Quote struct {
	Lines []string
}

// Code holds the interior lines of a fenced block. The fence info string is
// not kept.
type Code struct {
	Lines []string
}

// List is an ordered or bulleted list. An item may contain continuation
// text joined with "\n".
type List struct {
	Ordered bool
	Items   []string
}

// Image is an inline image reference.
type Image struct {
	Alt string
	Src string
}

// Table is a pipe table. Headers fix the column count.
type Table struct {
	Headers []string
	Rows    [][]string
}

func (Heading) Kind() Kind   { return KindHeading }
func (Paragraph) Kind() Kind { return KindParagraph }
func (Quote) Kind() Kind     { return KindQuote }
func (Code) Kind() Kind      { return KindCode }
func (List) Kind() Kind      { return KindList }
func (Image) Kind() Kind     { return KindImage }
func (Table) Kind() Kind     { return KindTable }

func (Heading) element()   {}
func (Paragraph) element() {}
func (Quote) element()     {}
func (Code) element()      {}
func (List) element()      {}
func (Image) element()     {}
func (Table) element()     {}

// Columns returns the number of columns defined by the header row.
func (t Table) Columns() int {
	return len(t.Headers)
}

// Cell returns the text of body cell (row, col), or "" when the row is
// shorter than the header or the position is out of range.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Headers) {
		return ""
	}
	cells := t.Rows[row]
	if col >= len(cells) {
		return ""
	}
	return cells[col]
}
