package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dotstitch/pkg/errors"
)

func quietRunner() *Runner {
	return NewRunner(log.New(io.Discard))
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Format != "pdf" {
		t.Errorf("Format = %q, want pdf", opts.Format)
	}
	if opts.Engine != "dot" {
		t.Errorf("Engine = %q, want dot", opts.Engine)
	}
	if opts.Renderer != "dot" {
		t.Errorf("Renderer = %q, want dot", opts.Renderer)
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{
			name: "bad format",
			opts: Options{Format: "gif"},
			code: errors.ErrCodeInvalidFormat,
		},
		{
			name: "bad engine",
			opts: Options{Engine: "spiral"},
			code: errors.ErrCodeInvalidEngine,
		},
		{
			name: "bad exclude pattern",
			opts: Options{Exclude: []string{"(unclosed"}},
			code: errors.ErrCodeInvalidPattern,
		},
		{
			name: "bad rewrite rule",
			opts: Options{Rewrite: []string{"no separator"}},
			code: errors.ErrCodeInvalidPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestOptionsMapping(t *testing.T) {
	opts := Options{
		Name:       "root",
		Strict:     true,
		Undirected: true,
		Cluster:    true,
		GraphAttrs: map[string]string{"splines": "ortho"},
		NodeAttrs:  map[string]string{"shape": "box"},
		EdgeAttrs:  map[string]string{"color": "gray50"},
		Format:     "svg",
		Engine:     "neato",
		Renderer:   "dot",
	}

	m := opts.MergeOptions()
	if m.Name != "root" || !m.Strict || !m.Undirected || !m.Cluster {
		t.Errorf("MergeOptions() = %+v, flags not carried over", m)
	}
	if m.GraphAttrs["splines"] != "ortho" || m.NodeAttrs["shape"] != "box" || m.EdgeAttrs["color"] != "gray50" {
		t.Errorf("MergeOptions() = %+v, attrs not carried over", m)
	}

	r := opts.RenderOptions()
	if r.Format != "svg" || r.Engine != "neato" || r.Renderer != "dot" {
		t.Errorf("RenderOptions() = %+v, fields not carried over", r)
	}
}

func writeFragment(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fragment: %v", err)
	}
	return path
}

func TestRunnerMerge(t *testing.T) {
	dir := t.TempDir()
	a := writeFragment(t, dir, "a.dot", "a -> b;\n")
	b := writeFragment(t, dir, "b.dot", "b -> c;\n")

	result, err := quietRunner().Merge(Options{Fragments: []string{a, b}})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	want := "digraph {\na -> b;\nb -> c;\n}\n"
	if string(result.Document) != want {
		t.Errorf("Document = %q, want %q", result.Document, want)
	}
	if result.Stats.FragmentCount != 2 {
		t.Errorf("FragmentCount = %d, want 2", result.Stats.FragmentCount)
	}
	if result.Stats.DocumentBytes != len(want) {
		t.Errorf("DocumentBytes = %d, want %d", result.Stats.DocumentBytes, len(want))
	}
	if result.Artifact != nil {
		t.Errorf("Artifact = %v, want nil after merge stage", result.Artifact)
	}
}

func TestRunnerMergeUnreadableFragment(t *testing.T) {
	dir := t.TempDir()
	a := writeFragment(t, dir, "a.dot", "a;\n")
	missing := filepath.Join(dir, "missing.dot")

	_, err := quietRunner().Merge(Options{Fragments: []string{a, missing}})
	if !errors.Is(err, errors.ErrCodeInputUnreadable) {
		t.Fatalf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInputUnreadable)
	}
	if !strings.Contains(err.Error(), missing) {
		t.Errorf("error %q does not name the unreadable path", err)
	}
}

func TestRunnerExecute(t *testing.T) {
	dir := t.TempDir()
	a := writeFragment(t, dir, "a.dot", "a -> b;\n")

	// Fake renderer that echoes the document back.
	renderer := filepath.Join(dir, "fake-dot")
	if err := os.WriteFile(renderer, []byte("#!/bin/sh\ncat\n"), 0o755); err != nil {
		t.Fatalf("write fake renderer: %v", err)
	}

	result, err := quietRunner().Execute(context.Background(), Options{
		Fragments: []string{a},
		Renderer:  renderer,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if string(result.Artifact) != string(result.Document) {
		t.Errorf("Artifact = %q, want the piped document %q", result.Artifact, result.Document)
	}
	if result.Stats.ArtifactBytes != len(result.Document) {
		t.Errorf("ArtifactBytes = %d, want %d", result.Stats.ArtifactBytes, len(result.Document))
	}
}

func TestNewRunnerNilLogger(t *testing.T) {
	if NewRunner(nil).Logger == nil {
		t.Error("NewRunner(nil).Logger = nil, want default logger")
	}
}
