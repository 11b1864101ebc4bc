// Package markup parses Marp-style markdown into a [deck.Document].
//
// Parsing happens in three steps:
//
//  1. [Split] removes the frontmatter block, splits the text on "---" lines
//     and pulls speaker notes out of HTML comments.
//  2. [ParseSlide] scans one slide's lines with a fixed priority chain and
//     emits typed elements.
//  3. [Tokenize] and [Strip] turn inline emphasis into styled runs or plain
//     text when the layout engine needs it.
//
// [Parse] runs the first two steps over a whole document:
//
//	doc, warnings := markup.Parse(text)
//	for _, s := range doc.Slides {
//	    fmt.Println(s.Index, s.Class(), len(s.Elements))
//	}
//
// The parser never fails. Malformed constructs degrade to paragraphs, and an
// unterminated code fence runs to the end of its slide.
package markup
