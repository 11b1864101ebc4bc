// Package deck defines the parsed representation of a markdown slide deck.
//
// A [Document] is an ordered list of [Slide] values. Each slide holds its
// [Element] sequence in source order, the speaker notes extracted from HTML
// comments, and an optional background image reference.
//
// # Elements
//
// [Element] is a closed variant: only the types in this package implement it.
//
//   - [Heading] - levels 1 to 3
//   - [Paragraph] - a single line of text
//   - [Quote] - consecutive blockquote lines
//   - [Code] - the interior lines of a fenced block
//   - [List] - ordered or bulleted items
//   - [Image] - an inline image reference
//   - [Table] - header cells plus body rows
//
// Use a type switch to dispatch on the concrete element:
//
//	for _, el := range slide.Elements {
//	    switch el := el.(type) {
//	    case deck.Heading:
//	        fmt.Println(el.Level, el.Text)
//	    case deck.List:
//	        fmt.Println(len(el.Items))
//	    }
//	}
//
// # Classification
//
// [Classify] decides whether a slide is laid out as a centered title slide or
// as a top-down content slide.
package deck
