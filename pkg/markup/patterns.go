package markup

import "regexp"

var patterns = struct {
	comment       *regexp.Regexp
	background    *regexp.Regexp
	image         *regexp.Regexp
	tableDivider  *regexp.Regexp
	orderedItem   *regexp.Regexp
	orderedPrefix *regexp.Regexp
	emphasis      *regexp.Regexp
}{
	comment:       regexp.MustCompile(`(?s)<!--(.*?)-->`),
	background:    regexp.MustCompile(`^!\[bg[^\]]*\]\(([^)]+)\)`),
	image:         regexp.MustCompile(`^!\[([^\]]*)\]\(([^)]+)\)`),
	tableDivider:  regexp.MustCompile(`^\|[-\s|]+\|`),
	orderedItem:   regexp.MustCompile(`^\d+\.`),
	orderedPrefix: regexp.MustCompile(`^\d+\.\s*`),
	emphasis:      regexp.MustCompile(`\*\*\*(.*?)\*\*\*|\*\*(.*?)\*\*|\*(.*?)\*|_(.*?)_`),
}

// stripRules are applied in order by Strip.
var stripRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`\*\*\*(.*?)\*\*\*`), "${1}"},
	{regexp.MustCompile(`\*\*(.*?)\*\*`), "${1}"},
	{regexp.MustCompile(`\*(.*?)\*`), "${1}"},
	{regexp.MustCompile(`_(.*?)_`), "${1}"},
	{regexp.MustCompile("`(.*?)`"), "${1}"},
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`), "${1}"},
}

const (
	separatorRule = "---"
	codeFence     = "```"
	quotePrefix   = "> "
	continuation  = "  "
	columnSep     = "|"
)
