package cli

import (
	"context"
	"io"
	"maps"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dotstitch/pkg/errors"
	"github.com/matzehuels/dotstitch/pkg/pipeline"
)

// mergeFlags holds the command-line flags shared by the merge and build
// commands. They cover the merge stage (document shape) and the
// per-fragment line transforms.
type mergeFlags struct {
	name        string   // graph ID after the digraph/graph keyword
	strict      bool     // strict modifier
	undirected  bool     // graph instead of digraph
	cluster     bool     // wrap each fragment in a labeled cluster subgraph
	graphAttrs  []string // top-level attributes, key=value
	nodeAttrs   []string // node default attributes, key=value
	edgeAttrs   []string // edge default attributes, key=value
	exclude     []string // drop fragment lines matching these patterns
	rewrite     []string // pattern=>replacement line rewrites
	splitLabels bool     // split dotted labels into two-row table labels
	unwrap      bool     // strip complete outer graph declarations
	interactive bool     // pick fragments from a directory listing
}

// register wires the shared merge flags onto cmd.
func (f *mergeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "graph name for the outer declaration")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "emit a strict graph")
	cmd.Flags().BoolVar(&f.undirected, "undirected", false, "emit graph instead of digraph")
	cmd.Flags().BoolVarP(&f.cluster, "cluster", "c", false, "wrap each fragment in a labeled cluster subgraph")
	cmd.Flags().StringArrayVar(&f.graphAttrs, "graph-attr", nil, "graph attribute key=value (repeatable)")
	cmd.Flags().StringArrayVar(&f.nodeAttrs, "node-attr", nil, "node default attribute key=value (repeatable)")
	cmd.Flags().StringArrayVar(&f.edgeAttrs, "edge-attr", nil, "edge default attribute key=value (repeatable)")
	cmd.Flags().StringArrayVar(&f.exclude, "exclude", nil, "drop fragment lines matching this regexp (repeatable)")
	cmd.Flags().StringArrayVar(&f.rewrite, "rewrite", nil, "rewrite fragment lines, pattern=>replacement (repeatable)")
	cmd.Flags().BoolVar(&f.splitLabels, "split-labels", false, "split dotted labels into two-row table labels")
	cmd.Flags().BoolVar(&f.unwrap, "unwrap", false, "strip outer graph declarations from complete documents")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "pick fragments interactively from a directory")
}

// options layers the explicit flags over the config-file baseline. A
// flag the user set always wins; attribute flags overlay the config
// maps per key, and exclude/rewrite flags append to the config lists.
func (f *mergeFlags) options(cmd *cobra.Command, cfg fileConfig) (pipeline.Options, error) {
	opts := cfg.pipelineOptions()
	fl := cmd.Flags()

	if fl.Changed("name") {
		opts.Name = f.name
	}
	if fl.Changed("strict") {
		opts.Strict = f.strict
	}
	if fl.Changed("undirected") {
		opts.Undirected = f.undirected
	}
	if fl.Changed("cluster") {
		opts.Cluster = f.cluster
	}
	if fl.Changed("split-labels") {
		opts.SplitLabels = f.splitLabels
	}
	if fl.Changed("unwrap") {
		opts.Unwrap = f.unwrap
	}

	opts.Exclude = append(opts.Exclude, f.exclude...)
	opts.Rewrite = append(opts.Rewrite, f.rewrite...)

	var err error
	if opts.GraphAttrs, err = overlayAttrs(opts.GraphAttrs, f.graphAttrs); err != nil {
		return opts, err
	}
	if opts.NodeAttrs, err = overlayAttrs(opts.NodeAttrs, f.nodeAttrs); err != nil {
		return opts, err
	}
	if opts.EdgeAttrs, err = overlayAttrs(opts.EdgeAttrs, f.edgeAttrs); err != nil {
		return opts, err
	}
	return opts, nil
}

// newMergeCmd creates the merge command, the core operation: read DOT
// graph-body fragments and emit one valid document, to stdout by
// default.
func newMergeCmd() *cobra.Command {
	var (
		output string
		flags  mergeFlags
	)

	cmd := &cobra.Command{
		Use:   "merge [fragment]...",
		Short: "Merge DOT graph fragments into a single document",
		Long: `Merge DOT graph-body fragments into one valid document.

Each fragment file holds statements that belong inside a graph declaration
(nodes, edges, attributes), not a complete document. Merge wraps them in
exactly one outer digraph/graph declaration, preserving fragment order and
content byte for byte. Duplicate declarations pass through; Graphviz unifies
them at layout time.

With zero fragments the output is a minimal valid empty graph. With
--interactive, fragments are picked from a directory listing instead of
the argument list.

Examples:
  dotstitch merge vpc.dot dns.dot                 # Merged document on stdout
  dotstitch merge vpc.dot dns.dot -o infra.dot    # Write to a file
  dotstitch merge --cluster --name root *.dot     # One cluster per fragment
  dotstitch merge --interactive graphs/           # Pick fragments from graphs/`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, configFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			fragments, err := resolveFragments(args, flags.interactive)
			if err != nil {
				return err
			}
			if flags.interactive && fragments == nil {
				return nil // picker dismissed without a selection
			}
			opts.Fragments = fragments
			return runMerge(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	flags.register(cmd)

	return cmd
}

// runMerge executes the merge stage and writes the document.
func runMerge(ctx context.Context, opts pipeline.Options, output string) error {
	logger := loggerFromContext(ctx)

	runner := pipeline.NewRunner(logger)
	result, err := runner.Merge(opts)
	if err != nil {
		return err
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(result.Document); err != nil {
		return err
	}

	if output != "" {
		printSuccess("Merge complete")
		printFile(output)
		if result.Stats.FragmentCount == 0 {
			printWarning("No fragments were merged, the document is an empty graph")
		}
		printStats(result.Stats.FragmentCount, result.Stats.DocumentBytes)
		printNewline()
		printNextStep("Render", "dotstitch render "+output)
	}
	return nil
}

// resolveFragments turns the positional arguments into the ordered
// fragment list. In interactive mode the arguments name at most one
// directory to scan, and the picker's selection order becomes the merge
// order; a nil list means the picker was dismissed.
func resolveFragments(args []string, interactive bool) ([]string, error) {
	if !interactive {
		return args, nil
	}
	if len(args) > 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "interactive mode takes at most one directory argument, got %d", len(args))
	}
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	return pickFragments(dir)
}

// parseAttr splits a key=value flag argument.
func parseAttr(s string) (string, string, error) {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return "", "", errors.New(errors.ErrCodeInvalidInput, "attribute %q is not in key=value form", s)
	}
	return k, v, nil
}

// overlayAttrs applies key=value flag entries on top of the config-file
// map without mutating it.
func overlayAttrs(base map[string]string, entries []string) (map[string]string, error) {
	if len(entries) == 0 {
		return base, nil
	}
	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]string, len(entries))
	}
	for _, e := range entries {
		k, v, err := parseAttr(e)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
