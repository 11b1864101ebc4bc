package markup

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/mdslides/pkg/deck"
)

// ParseMetadata decodes a YAML frontmatter body. Known keys fill the typed
// fields; every key is kept in Raw. "description" is used when "subject" is
// absent, and "keywords" may be a list or a comma-separated string.
func ParseMetadata(body string) (deck.Metadata, error) {
	var raw map[string]any
	if err := yaml.Unmarshal([]byte(body), &raw); err != nil {
		return deck.Metadata{}, fmt.Errorf("frontmatter: %w", err)
	}
	meta := deck.Metadata{Raw: raw}
	if raw == nil {
		return meta, nil
	}

	meta.Title = stringValue(raw["title"])
	meta.Author = stringValue(raw["author"])
	meta.Subject = stringValue(raw["subject"])
	if meta.Subject == "" {
		meta.Subject = stringValue(raw["description"])
	}
	meta.Keywords = keywords(raw["keywords"])
	return meta, nil
}

func stringValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return fmt.Sprint(v)
	}
}

func keywords(v any) []string {
	var out []string
	switch v := v.(type) {
	case string:
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				out = append(out, k)
			}
		}
	case []any:
		for _, k := range v {
			if s := stringValue(k); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
