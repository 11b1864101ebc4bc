package markup

import "strings"

// Run is a span of text with uniform emphasis.
type Run struct {
	Text   string `json:"text"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
}

// Tokenize splits text into styled runs. "***x***" is bold italic, "**x**"
// bold, "*x*" and "_x_" italic. The leftmost match wins and inner text is
// matched lazily. Unmatched text becomes plain runs and empty runs are
// dropped, so the run texts concatenate to text minus the consumed markers.
func Tokenize(text string) []Run {
	var runs []Run
	last := 0
	for _, m := range patterns.emphasis.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			runs = appendRun(runs, Run{Text: text[last:m[0]]})
		}
		switch {
		case m[2] >= 0:
			runs = appendRun(runs, Run{Text: text[m[2]:m[3]], Bold: true, Italic: true})
		case m[4] >= 0:
			runs = appendRun(runs, Run{Text: text[m[4]:m[5]], Bold: true})
		case m[6] >= 0:
			runs = appendRun(runs, Run{Text: text[m[6]:m[7]], Italic: true})
		default:
			runs = appendRun(runs, Run{Text: text[m[8]:m[9]], Italic: true})
		}
		last = m[1]
	}
	if last < len(text) {
		runs = appendRun(runs, Run{Text: text[last:]})
	}
	return runs
}

func appendRun(runs []Run, r Run) []Run {
	if r.Text == "" {
		return runs
	}
	return append(runs, r)
}

// PlainText concatenates the text of runs.
func PlainText(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Strip removes emphasis markers, code-span backticks and link syntax,
// leaving only the visible text.
func Strip(text string) string {
	for _, rule := range stripRules {
		text = rule.re.ReplaceAllString(text, rule.repl)
	}
	return text
}
