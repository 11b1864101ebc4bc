package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mdslides/pkg/buildinfo"
	"github.com/matzehuels/mdslides/pkg/pipeline"
	"github.com/matzehuels/mdslides/pkg/render/sink"
)

// SetVersion sets the version information displayed by --version and
// recorded in generated documents. Empty values keep the build defaults.
//
// This is typically called by the main package with values injected via
// ldflags at build time.
func SetVersion(v, c, d string) {
	if v != "" {
		buildinfo.Version = v
	}
	if c != "" {
		buildinfo.Commit = c
	}
	if d != "" {
		buildinfo.Date = d
	}
}

// convertOpts holds the command-line flags for the conversion command.
type convertOpts struct {
	format   string // output format; empty infers it from DEST
	config   string // TOML layout overrides
	noCache  bool   // bypass the render cache
	workers  int    // concurrent slide layouts, 0 for GOMAXPROCS
	pngWidth int    // pixel width of PNG previews
	watch    bool   // re-run when SOURCE changes
	verbose  bool   // debug logging and observability hooks
}

// convertCommand creates the root conversion command.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   appName + " SOURCE DEST",
		Short: "Convert Marp markdown slides to PowerPoint",
		Long: `mdslides converts a Marp-flavored markdown deck into a PowerPoint presentation.

Slides are separated by "---" lines. Headings, paragraphs, lists, quotes,
code blocks, tables and images are placed on 13.333x7.5in widescreen
slides; HTML comments become speaker notes. The output format follows the
DEST extension unless --format is given: pptx, json (layout dump), svg or
png (one file per slide).`,
		Example: `  mdslides talk.md talk.pptx
  mdslides talk.md preview.png --workers 4
  mdslides talk.md talk.pptx --watch`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				c.SetLogLevel(LogDebug)
				registerLogHooks(c.Logger)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: pptx, json, svg, png (default: from DEST extension)")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML file overriding layout defaults")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "concurrent slide layouts (default: number of CPUs)")
	cmd.Flags().IntVar(&opts.pngWidth, "png-width", 0, fmt.Sprintf("pixel width of PNG previews (default %d)", sink.DefaultPNGWidth))
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "re-run the conversion whenever SOURCE changes")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	return cmd
}

// runConvert runs one conversion, then keeps converting on change if
// --watch is set.
func (c *CLI) runConvert(ctx context.Context, out io.Writer, source, dest string, opts convertOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Source:     source,
		Dest:       dest,
		Format:     opts.format,
		ConfigPath: opts.config,
		Workers:    opts.workers,
		PNGWidth:   opts.pngWidth,
		Logger:     loggerFromContext(ctx),
	}

	if err := c.convert(ctx, out, runner, popts); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}
	return c.watch(ctx, out, runner, popts)
}

// convert executes the pipeline once and prints a summary.
func (c *CLI) convert(ctx context.Context, out io.Writer, runner *pipeline.Runner, opts pipeline.Options) error {
	prog := newProgress(c.Logger)

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Saved %d slides to %s", result.Stats.Slides, opts.Dest))

	printSuccess(out, "Converted %s", opts.Source)
	for _, f := range result.Files {
		printFile(out, f)
	}
	printStats(out, result.Stats.Slides, result.Stats.Boxes, result.Stats.Warnings, result.CacheInfo.RenderHit)
	return nil
}
