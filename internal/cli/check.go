package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dotstitch/pkg/dot"
	"github.com/matzehuels/dotstitch/pkg/errors"
	"github.com/matzehuels/dotstitch/pkg/fragment"
	"github.com/matzehuels/dotstitch/pkg/merge"
)

// newCheckCmd creates the check command: parse DOT files and report
// per-file validity. Merging stays a pure textual pass-through, so this
// is the opt-in way to catch syntax errors before the renderer does.
func newCheckCmd() *cobra.Command {
	var asFragment bool

	cmd := &cobra.Command{
		Use:   "check [file]...",
		Short: "Validate DOT syntax without rendering",
		Long: `Parse DOT files and report syntax errors per file.

Each file is parsed with the Graphviz grammar; no layout runs and no
output is produced. With --fragment, inputs are treated as graph bodies
(the form merge consumes) and wrapped in a digraph declaration before
parsing.

The exit status is non-zero when any file fails.

Examples:
  dotstitch check infra.dot
  dotstitch check --fragment vpc.dot dns.dot`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), args, asFragment)
		},
	}

	cmd.Flags().BoolVar(&asFragment, "fragment", false, "treat inputs as graph bodies, not complete documents")

	return cmd
}

// runCheck validates every file, reporting each result as it goes, and
// fails if any file did not parse. Unreadable inputs abort immediately.
func runCheck(ctx context.Context, paths []string, asFragment bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	var failed int
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInputUnreadable, err, "read %s", path)
		}
		if asFragment {
			src = merge.Merge([]fragment.Fragment{{Path: path, Body: src}}, merge.Options{})
		}

		if err := dot.Validate(src); err != nil {
			printError("%s: %v", path, err)
			failed++
			continue
		}
		logger.Debugf("Parsed %s: %d bytes", path, len(src))
		printSuccess("%s", path)
	}

	if failed > 0 {
		return errors.New(errors.ErrCodeInvalidDOT, "%d of %d files failed validation", failed, len(paths))
	}
	prog.done(fmt.Sprintf("Checked %d files", len(paths)))
	return nil
}
