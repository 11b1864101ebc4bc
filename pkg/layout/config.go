package layout

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mdslides/pkg/errors"
)

// TextStyle describes the box geometry and font of one kind of text element.
type TextStyle struct {
	Height   Length  `toml:"height" json:"height"`   // box height
	Advance  Length  `toml:"advance" json:"advance"` // cursor movement after the box
	FontSize float64 `toml:"font_size" json:"font_size"`
	Bold     bool    `toml:"bold" json:"bold,omitempty"`
	Italic   bool    `toml:"italic" json:"italic,omitempty"`
	Color    string  `toml:"color" json:"color,omitempty"` // RRGGBB, empty inherits
	FontFace string  `toml:"font_face" json:"font_face,omitempty"`
	Wrap     bool    `toml:"wrap" json:"wrap,omitempty"`
}

// Config holds every measurement used by the layout engine.
type Config struct {
	Width   Length        `toml:"width" json:"width"`
	Height  Length        `toml:"height" json:"height"`
	Title   TitleConfig   `toml:"title" json:"title"`
	Content ContentConfig `toml:"content" json:"content"`
}

// TitleConfig controls centered title slides.
type TitleConfig struct {
	Margin    Length    `toml:"margin" json:"margin"` // left and right
	Heading   TextStyle `toml:"heading" json:"heading"`
	Paragraph TextStyle `toml:"paragraph" json:"paragraph"`
}

// ContentConfig controls top-down content slides.
type ContentConfig struct {
	Left   Length `toml:"left" json:"left"`     // column x; the same margin is kept on the right
	Top    Length `toml:"top" json:"top"`       // first cursor y
	Bottom Length `toml:"bottom" json:"bottom"` // space kept below images
	Gap    Length `toml:"gap" json:"gap"`       // extra advance after code, images and tables

	H2        TextStyle `toml:"h2" json:"h2"`
	H3        TextStyle `toml:"h3" json:"h3"`
	Paragraph TextStyle `toml:"paragraph" json:"paragraph"`

	Quote      QuoteConfig      `toml:"quote" json:"quote"`
	List       ListConfig       `toml:"list" json:"list"`
	Code       CodeConfig       `toml:"code" json:"code"`
	Table      TableConfig      `toml:"table" json:"table"`
	Background BackgroundConfig `toml:"background" json:"background"`
}

// QuoteConfig styles blockquotes. The cursor advances LineAdvance per line
// plus one extra line.
type QuoteConfig struct {
	Text        TextStyle `toml:"text" json:"text"`
	Indent      Length    `toml:"indent" json:"indent"`
	LineAdvance Length    `toml:"line_advance" json:"line_advance"`
}

// ListConfig styles ordered and bulleted lists.
type ListConfig struct {
	Text        TextStyle `toml:"text" json:"text"`
	ItemAdvance Length    `toml:"item_advance" json:"item_advance"`
	SpaceAfter  float64   `toml:"space_after" json:"space_after"` // points
	Bullet      string    `toml:"bullet" json:"bullet"`
}

// CodeConfig styles fenced code blocks.
type CodeConfig struct {
	Text       TextStyle `toml:"text" json:"text"`
	LineHeight Length    `toml:"line_height" json:"line_height"`
	Fill       string    `toml:"fill" json:"fill"`
}

// TableConfig styles pipe tables.
type TableConfig struct {
	RowHeight  Length  `toml:"row_height" json:"row_height"`
	HeaderSize float64 `toml:"header_size" json:"header_size"`
	BodySize   float64 `toml:"body_size" json:"body_size"`
}

// BackgroundConfig places the background image of content slides in a
// column on the right.
type BackgroundConfig struct {
	Width   Length `toml:"width" json:"width"`
	Right   Length `toml:"right" json:"right"`     // gap to the right canvas edge
	Top     Length `toml:"top" json:"top"`
	Reserve Length `toml:"reserve" json:"reserve"` // subtracted with Width from the canvas to get the text column width
}

// DefaultConfig returns a 16:9 widescreen configuration.
func DefaultConfig() Config {
	return Config{
		Width:  Inches(13.333),
		Height: Inches(7.5),
		Title: TitleConfig{
			Margin:    Inch,
			Heading:   TextStyle{Height: 60 * Point, Advance: 60 * Point, FontSize: 44, Bold: true, Wrap: true},
			Paragraph: TextStyle{Height: 36 * Point, Advance: 36 * Point, FontSize: 24, Color: "666666", Wrap: true},
		},
		Content: ContentConfig{
			Left:      Inches(0.75),
			Top:       Inches(0.5),
			Bottom:    Inches(0.5),
			Gap:       Inches(0.2),
			H2:        TextStyle{Height: 48 * Point, Advance: Inches(0.75), FontSize: 36, Bold: true, Color: "333333"},
			H3:        TextStyle{Height: 36 * Point, Advance: Inches(0.55), FontSize: 28, Bold: true},
			Paragraph: TextStyle{Height: 28 * Point, Advance: Inches(0.4), FontSize: 20, Wrap: true},
			Quote: QuoteConfig{
				Text:        TextStyle{Height: Inch, FontSize: 20, Italic: true, Color: "555555", Wrap: true},
				Indent:      Inches(0.3),
				LineAdvance: Inches(0.35),
			},
			List: ListConfig{
				Text:        TextStyle{Height: 3 * Inch, FontSize: 20, Wrap: true},
				ItemAdvance: Inches(0.4),
				SpaceAfter:  8,
				Bullet:      "•",
			},
			Code: CodeConfig{
				Text:       TextStyle{FontSize: 14, FontFace: "Courier New", Wrap: true},
				LineHeight: Inches(0.25),
				Fill:       "F0F0F0",
			},
			Table: TableConfig{
				RowHeight:  Inches(0.35),
				HeaderSize: 16,
				BodySize:   14,
			},
			Background: BackgroundConfig{
				Width:   Inches(3.5),
				Right:   Inches(0.5),
				Top:     Inch,
				Reserve: 2 * Inch,
			},
		},
	}
}

// LoadConfig reads a TOML file and applies it on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	defer f.Close()
	return DecodeConfig(f)
}

// DecodeConfig decodes TOML from r on top of DefaultConfig. Unknown keys are
// rejected so typos do not pass silently.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode layout config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration describes a usable canvas.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas must have a positive size, got %v x %v", c.Width, c.Height)
	}
	if c.Width-2*c.Title.Margin <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "title margin %v leaves no width", c.Title.Margin)
	}
	if c.ContentWidth() <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "content margin %v leaves no width", c.Content.Left)
	}
	bg := c.Content.Background
	if bg.Width <= 0 || c.Width-bg.Width-bg.Reserve <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "background column %v leaves no width", bg.Width)
	}

	styles := map[string]TextStyle{
		"title.heading":     c.Title.Heading,
		"title.paragraph":   c.Title.Paragraph,
		"content.h2":        c.Content.H2,
		"content.h3":        c.Content.H3,
		"content.paragraph": c.Content.Paragraph,
		"content.quote":     c.Content.Quote.Text,
		"content.list":      c.Content.List.Text,
		"content.code":      c.Content.Code.Text,
	}
	for name, s := range styles {
		if s.FontSize <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: font size must be positive", name)
		}
		if err := errors.ValidateColor(name+".color", s.Color); err != nil {
			return err
		}
	}
	if err := errors.ValidateColor("content.code.fill", c.Content.Code.Fill); err != nil {
		return err
	}
	if c.Content.Table.HeaderSize <= 0 || c.Content.Table.BodySize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "content.table: font sizes must be positive")
	}
	if c.Content.Table.RowHeight <= 0 || c.Content.Code.LineHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "row and line heights must be positive")
	}
	return nil
}

// ContentWidth returns the width of the content column without a
// background image.
func (c Config) ContentWidth() Length {
	return c.Width - 2*c.Content.Left
}

// Aspect returns the canvas aspect ratio formatted like "16:9" when it
// matches a common ratio, or as a decimal otherwise.
func (c Config) Aspect() string {
	ratio := float64(c.Width) / float64(c.Height)
	for _, r := range []struct {
		name  string
		value float64
	}{{"16:9", 16.0 / 9}, {"4:3", 4.0 / 3}, {"16:10", 16.0 / 10}} {
		if d := ratio - r.value; d > -0.01 && d < 0.01 {
			return r.name
		}
	}
	return fmt.Sprintf("%.3f", ratio)
}
