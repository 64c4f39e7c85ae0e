package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dotstitch/pkg/pipeline"
)

// newBuildCmd creates the build command: merge fragments and render the
// result in one deterministic invocation. Change detection stays with
// the caller's build system; build itself always runs both stages.
func newBuildCmd() *cobra.Command {
	var (
		output  string
		keepDot bool
		mf      mergeFlags
		rf      renderFlags
	)

	cmd := &cobra.Command{
		Use:   "build [fragment]...",
		Short: "Merge fragments and render the document in one step",
		Long: `Merge DOT fragments and render the merged document in one invocation.

This is the merge and render commands chained: fragments are read and
stitched into one document, then piped to the external Graphviz renderer.
The intermediate document is discarded unless --keep-dot writes it next to
the artifact.

Examples:
  dotstitch build vpc.dot dns.dot                  # graph.pdf
  dotstitch build --cluster *.dot -o infra.pdf     # clustered, named output
  dotstitch build -f svg --keep-dot *.dot          # graph.svg plus graph.dot`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := mf.options(cmd, configFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			rf.apply(cmd, &opts)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			fragments, err := resolveFragments(args, mf.interactive)
			if err != nil {
				return err
			}
			if mf.interactive && fragments == nil {
				return nil // picker dismissed without a selection
			}
			opts.Fragments = fragments
			return runBuild(cmd.Context(), opts, output, keepDot)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "artifact file (default: graph.<format>)")
	cmd.Flags().BoolVar(&keepDot, "keep-dot", false, "also write the merged document next to the artifact")
	mf.register(cmd)
	rf.register(cmd)

	return cmd
}

// runBuild executes both pipeline stages and writes the artifact, plus
// the intermediate document when requested.
func runBuild(ctx context.Context, opts pipeline.Options, output string, keepDot bool) error {
	logger := loggerFromContext(ctx)

	runner := pipeline.NewRunner(logger)

	spinner := newSpinnerWithContext(ctx, "Building graph...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = "graph." + opts.Format
	}
	if err := os.WriteFile(outputPath, result.Artifact, 0o644); err != nil {
		return fmt.Errorf("write artifact %s: %w", outputPath, err)
	}

	printSuccess("Build complete")
	printFile(outputPath)

	if keepDot {
		docPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".dot"
		if err := os.WriteFile(docPath, result.Document, 0o644); err != nil {
			return fmt.Errorf("write document %s: %w", docPath, err)
		}
		printFile(docPath)
	}

	printStats(result.Stats.FragmentCount, result.Stats.DocumentBytes)
	return nil
}
