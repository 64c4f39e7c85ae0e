// Package pipeline composes the merge → render flow behind the CLI.
//
// The pipeline has two stages:
//
//  1. Merge: read DOT fragments from disk and assemble them into one
//     document
//  2. Render: hand the document to Graphviz for layout and output
//
// Each stage can run on its own (the merge command stops after the
// first; the render command performs only the second), while Execute
// chains both for one-shot builds. Centralizing the flow keeps flag
// handling, config files, and programmatic callers consistent.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Fragments: []string{"vpc.dot", "dns.dot"},
//	    Cluster:   true,
//	    Format:    "pdf",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pdf := result.Artifact
//
// Run the merge stage alone:
//
//	result, err := runner.Merge(opts)
//	doc := result.Document
package pipeline

import (
	"time"

	"github.com/matzehuels/dotstitch/pkg/fragment"
	"github.com/matzehuels/dotstitch/pkg/merge"
	"github.com/matzehuels/dotstitch/pkg/render"
)

// Options contains all configuration for the merge → render pipeline.
// This struct supports JSON serialization so saved invocations can be
// replayed.
type Options struct {
	// Merge options
	Fragments  []string          `json:"fragments"`
	Name       string            `json:"name,omitempty"`
	Strict     bool              `json:"strict,omitempty"`
	Undirected bool              `json:"undirected,omitempty"`
	Cluster    bool              `json:"cluster,omitempty"`
	GraphAttrs map[string]string `json:"graph_attrs,omitempty"`
	NodeAttrs  map[string]string `json:"node_attrs,omitempty"`
	EdgeAttrs  map[string]string `json:"edge_attrs,omitempty"`

	// Transform options, applied per fragment line before merging
	Exclude     []string `json:"exclude,omitempty"`
	Rewrite     []string `json:"rewrite,omitempty"`
	SplitLabels bool     `json:"split_labels,omitempty"`
	Unwrap      bool     `json:"unwrap,omitempty"`

	// Render options
	Format   string `json:"format,omitempty"`
	Engine   string `json:"engine,omitempty"`
	Renderer string `json:"renderer,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults fills empty render options with their
// defaults and fails fast on invalid formats, engines, and transform
// patterns, before any file I/O happens.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Format == "" {
		o.Format = render.DefaultFormat
	}
	if o.Engine == "" {
		o.Engine = render.DefaultEngine
	}
	if o.Renderer == "" {
		o.Renderer = render.DefaultRenderer
	}

	if err := render.ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := render.ValidateEngine(o.Engine); err != nil {
		return err
	}
	if _, err := o.Transform(); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// Transform compiles the transform options into the line pipeline
// applied to each fragment.
func (o *Options) Transform() (fragment.Transform, error) {
	excludes, err := fragment.CompileExcludes(o.Exclude)
	if err != nil {
		return fragment.Transform{}, err
	}
	rules, err := fragment.ParseRules(o.Rewrite)
	if err != nil {
		return fragment.Transform{}, err
	}
	return fragment.Transform{
		Unwrap:      o.Unwrap,
		Exclude:     excludes,
		Rewrite:     rules,
		SplitLabels: o.SplitLabels,
	}, nil
}

// MergeOptions maps the merge-stage fields onto merge.Options.
func (o *Options) MergeOptions() merge.Options {
	return merge.Options{
		Name:       o.Name,
		Undirected: o.Undirected,
		Strict:     o.Strict,
		Cluster:    o.Cluster,
		GraphAttrs: o.GraphAttrs,
		NodeAttrs:  o.NodeAttrs,
		EdgeAttrs:  o.EdgeAttrs,
	}
}

// RenderOptions maps the render-stage fields onto render.Options.
func (o *Options) RenderOptions() render.Options {
	return render.Options{
		Format:   o.Format,
		Engine:   o.Engine,
		Renderer: o.Renderer,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the merged DOT text.
	Document []byte

	// Artifact is the rendered output in Options.Format. Nil when only
	// the merge stage ran.
	Artifact []byte

	// Stats contains size and timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FragmentCount int
	DocumentBytes int
	ArtifactBytes int
	MergeTime     time.Duration
	RenderTime    time.Duration
}
