package markup

import "strings"

// Chunk is the raw content of one slide after notes have been removed.
type Chunk struct {
	Content string // visible markdown, trimmed
	Notes   string // note fragments joined with a blank line
}

// Split removes a leading frontmatter block and splits the rest of text into
// slide chunks. It returns the frontmatter body (without its fences, empty
// when absent) and the non-empty chunks in document order.
func Split(text string) (string, []Chunk) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	front, body := cutFrontmatter(text)

	var chunks []Chunk
	for _, raw := range splitSlides(body) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		content := strings.TrimSpace(patterns.comment.ReplaceAllString(raw, ""))
		if content == "" {
			continue
		}
		chunks = append(chunks, Chunk{
			Content: content,
			Notes:   extractNotes(raw),
		})
	}
	return front, chunks
}

// cutFrontmatter removes the block between an opening "---" on the first
// line and the next "---" line. Without a closing fence the text is returned
// unchanged.
func cutFrontmatter(text string) (string, string) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || !isRule(lines[0]) {
		return "", text
	}
	for i := 1; i < len(lines); i++ {
		if isRule(lines[i]) {
			return strings.Join(lines[1:i], "\n"), strings.Join(lines[i+1:], "\n")
		}
	}
	return "", text
}

func splitSlides(body string) []string {
	var (
		slides  []string
		current []string
	)
	for _, line := range strings.Split(body, "\n") {
		if isRule(line) {
			slides = append(slides, strings.Join(current, "\n"))
			current = current[:0]
			continue
		}
		current = append(current, line)
	}
	return append(slides, strings.Join(current, "\n"))
}

func isRule(line string) bool {
	return strings.TrimRight(line, " \t") == separatorRule
}

func extractNotes(raw string) string {
	var notes []string
	for _, m := range patterns.comment.FindAllStringSubmatch(raw, -1) {
		notes = append(notes, strings.TrimSpace(m[1]))
	}
	return strings.Join(notes, "\n\n")
}
