package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mdslides/pkg/deck"
	"github.com/matzehuels/mdslides/pkg/layout"
	"github.com/matzehuels/mdslides/pkg/pipeline"
	"github.com/matzehuels/mdslides/pkg/render/pptx"
)

// textWidth bounds free text shown in inspect tables.
const textWidth = 40

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var config string

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Summarize a markdown deck or a .pptx file slide by slide",
		Long: `Inspect prints one table row per slide.

For markdown decks it shows the layout class, the parsed elements, whether
the slide has speaker notes and any layout warnings. For .pptx files it reads
the presentation back and shows the text, tables, pictures and notes found
on each slide.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if strings.EqualFold(filepath.Ext(args[0]), ".pptx") {
				return inspectPPTX(out, args[0])
			}
			return c.inspectDeck(cmd.Context(), out, args[0], config)
		},
	}

	cmd.Flags().StringVarP(&config, "config", "c", "", "TOML file overriding layout defaults")
	return cmd
}

// inspectDeck parses and lays out a markdown deck without rendering it.
func (c *CLI) inspectDeck(ctx context.Context, out io.Writer, path, config string) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	doc, err := runner.Parse(ctx, path)
	if err != nil {
		return err
	}
	opts := pipeline.Options{Source: path, ConfigPath: config, Logger: loggerFromContext(ctx)}
	pages, err := runner.Layout(ctx, doc, opts)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, StyleTitle.Render(path))
	md := doc.Metadata
	if md.Title != "" {
		printKeyValue(out, "Title", md.Title)
	}
	if md.Author != "" {
		printKeyValue(out, "Author", md.Author)
	}
	printKeyValue(out, "Slides", strconv.Itoa(len(doc.Slides)))

	rows := make([][]string, 0, len(doc.Slides))
	for i, s := range doc.Slides {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			s.Class().String(),
			elementSummary(s),
			orNone(truncate(firstLine(s.Notes), textWidth)),
			warningSummary(pages[i]),
		})
	}
	printTable(out, []string{"#", "Class", "Elements", "Notes", "Warnings"}, rows)
	return nil
}

// elementSummary lists element counts in kind order, e.g. "1 heading, 2 list".
func elementSummary(s *deck.Slide) string {
	counts := s.CountKinds()
	var parts []string
	for k := deck.KindHeading; k <= deck.KindTable; k++ {
		if n := counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, k))
		}
	}
	if s.Background != "" {
		parts = append(parts, "background")
	}
	return orNone(strings.Join(parts, ", "))
}

func warningSummary(p layout.Page) string {
	msgs := make([]string, len(p.Warnings))
	for i, w := range p.Warnings {
		msgs[i] = w.Message
	}
	return orNone(strings.Join(msgs, "\n"))
}

// inspectPPTX reads a presentation back and lists what each slide holds.
func inspectPPTX(out io.Writer, path string) error {
	d, err := pptx.Read(path)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, StyleTitle.Render(path))
	printKeyValue(out, "Title", orNone(d.Title))
	printKeyValue(out, "Author", orNone(d.Author))
	printKeyValue(out, "Size", fmt.Sprintf("%.2fin x %.2fin", layout.Length(d.Width).Inches(), layout.Length(d.Height).Inches()))
	printKeyValue(out, "Application", orNone(d.Application))

	rows := make([][]string, 0, len(d.Slides))
	for i, s := range d.Slides {
		var first string
		if len(s.Texts) > 0 {
			first = firstLine(s.Texts[0].Text())
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			orNone(truncate(first, textWidth)),
			strconv.Itoa(len(s.Texts)),
			strconv.Itoa(len(s.Tables)),
			strconv.Itoa(len(s.Pictures)),
			orNone(truncate(firstLine(s.Notes), textWidth)),
		})
	}
	printTable(out, []string{"#", "First text", "Texts", "Tables", "Pictures", "Notes"}, rows)
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
