package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
)

func TestBuildCommandFlags(t *testing.T) {
	cmd := newBuildCmd()

	// Build carries both the merge-stage and render-stage flags.
	for _, name := range []string{
		"output", "keep-dot",
		"name", "strict", "undirected", "cluster",
		"graph-attr", "node-attr", "edge-attr",
		"exclude", "rewrite", "split-labels", "unwrap", "interactive",
		"format", "engine", "renderer",
	} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("missing flag --%s", name)
		}
	}
}

func TestBuildCommandInvalidFormat(t *testing.T) {
	root := newRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"build", "-f", "gif"})

	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestBuildCommandInvalidRewrite(t *testing.T) {
	root := newRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"build", "--rewrite", "no-arrow"})

	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("expected error for malformed rewrite rule")
	}
}

func TestBuildCommandMissingFragment(t *testing.T) {
	root := newRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"build", filepath.Join(t.TempDir(), "missing.dot")})

	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("expected error for unreadable fragment")
	}
}
