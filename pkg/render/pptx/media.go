package pptx

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/mdslides/pkg/errors"
	"github.com/matzehuels/mdslides/pkg/layout"
)

type mediaItem struct {
	name string // part name under ppt/media
	ext  string
	data []byte
}

// mediaSet embeds each image file once, however many slides draw it.
type mediaSet struct {
	items  []*mediaItem
	byPath map[string]*mediaItem
}

func newMediaSet() *mediaSet {
	return &mediaSet{byPath: make(map[string]*mediaItem)}
}

func (s *mediaSet) add(img *layout.ImageContent) (*mediaItem, error) {
	path := img.Path
	if path == "" {
		path = img.Src
	}
	key := filepath.Clean(path)
	if m, ok := s.byPath[key]; ok {
		return m, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeImageUnresolved, err, "embed image %s", img.Src)
	}
	ext := mediaExtension(img.Format, path)
	m := &mediaItem{
		name: fmt.Sprintf("image%d.%s", len(s.items)+1, ext),
		ext:  ext,
		data: data,
	}
	s.items = append(s.items, m)
	s.byPath[key] = m
	return m, nil
}

// extensions returns the distinct media extensions in sorted order.
func (s *mediaSet) extensions() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range s.items {
		if !seen[m.ext] {
			seen[m.ext] = true
			out = append(out, m.ext)
		}
	}
	sort.Strings(out)
	return out
}

func (s *mediaSet) contentType(ext string) string {
	switch ext {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "tif", "tiff":
		return "image/tiff"
	case "png", "gif", "bmp", "webp":
		return "image/" + ext
	default:
		return "application/octet-stream"
	}
}

// mediaExtension prefers the decoded format and falls back to the file
// extension.
func mediaExtension(format, path string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "bin"
	}
	return ext
}
