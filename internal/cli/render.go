package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dotstitch/pkg/errors"
	"github.com/matzehuels/dotstitch/pkg/pipeline"
	"github.com/matzehuels/dotstitch/pkg/render"
)

// renderFlags holds the command-line flags shared by the render and
// build commands. They select the external renderer invocation; all
// layout behavior belongs to Graphviz.
type renderFlags struct {
	format   string // output format passed as -T
	engine   string // layout engine passed as -K
	renderer string // renderer binary, any dot-compatible program
}

// register wires the shared render flags onto cmd.
func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: pdf (default), svg, png")
	cmd.Flags().StringVarP(&f.engine, "engine", "e", "", "layout engine: dot (default), neato, fdp, sfdp, twopi, circo")
	cmd.Flags().StringVar(&f.renderer, "renderer", "", "renderer binary (default: dot)")
}

// apply layers the explicit render flags over opts. Config values were
// already folded in by fileConfig.pipelineOptions; unset fields fall to
// the package defaults during validation.
func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fl := cmd.Flags()
	if fl.Changed("format") {
		opts.Format = f.format
	}
	if fl.Changed("engine") {
		opts.Engine = f.engine
	}
	if fl.Changed("renderer") {
		opts.Renderer = f.renderer
	}
}

// newRenderCmd creates the render command: hand an existing DOT
// document to the external Graphviz renderer and write the artifact.
func newRenderCmd() *cobra.Command {
	var (
		output string
		flags  renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [file.dot]",
		Short: "Render a DOT document with Graphviz",
		Long: `Render a DOT document to PDF, SVG, or PNG.

The document is piped to the external renderer binary (dot by default) on
stdin and the artifact is read back from stdout, exactly as a manual
"dot -Tpdf in.dot" run would behave. Dotstitch owns none of the layout
semantics; Graphviz must be installed.

The output path defaults to the input path with the format extension
(graph.dot renders to graph.pdf).

Examples:
  dotstitch render infra.dot                # infra.pdf
  dotstitch render infra.dot -f svg         # infra.svg
  dotstitch render infra.dot -e sfdp -o out.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := configFromContext(cmd.Context()).pipelineOptions()
			flags.apply(cmd, &opts)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return runRenderFile(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input path with format extension)")
	flags.register(cmd)

	return cmd
}

// runRenderFile reads the document, delegates to the renderer, and
// writes the artifact.
func runRenderFile(ctx context.Context, input string, opts pipeline.Options, output string) error {
	logger := loggerFromContext(ctx)

	doc, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInputUnreadable, err, "read document %s", input)
	}
	logger.Debugf("Read %s: %d bytes", input, len(doc))

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", input))
	spinner.Start()

	artifact, err := render.Render(ctx, doc, opts.RenderOptions())
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = artifactPath(input, opts.Format)
	}
	if err := os.WriteFile(outputPath, artifact, 0o644); err != nil {
		return fmt.Errorf("write artifact %s: %w", outputPath, err)
	}

	printSuccess("Render complete")
	printFile(outputPath)
	return nil
}

// artifactPath derives the artifact path from the input path: the
// extension is replaced with the output format (graph.dot becomes
// graph.pdf).
func artifactPath(input, format string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}
