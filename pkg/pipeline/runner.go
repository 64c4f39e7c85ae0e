package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dotstitch/pkg/fragment"
	"github.com/matzehuels/dotstitch/pkg/merge"
	"github.com/matzehuels/dotstitch/pkg/render"
)

// Runner executes the pipeline stages.
//
// The Runner is stateless apart from its logger - it doesn't store
// stage results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, the default logger is
// used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Merge runs the merge stage: read every fragment (failing before any
// output when one is unreadable), then assemble the document.
func (r *Runner) Merge(opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	transform, err := opts.Transform()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	frags, err := fragment.ReadAll(opts.Fragments, transform)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	result.Document = merge.Merge(frags, opts.MergeOptions())
	result.Stats.FragmentCount = len(frags)
	result.Stats.DocumentBytes = len(result.Document)
	result.Stats.MergeTime = time.Since(start)

	r.Logger.Info("merged fragments",
		"fragments", result.Stats.FragmentCount,
		"bytes", result.Stats.DocumentBytes,
		"duration", result.Stats.MergeTime)

	return result, nil
}

// Execute runs the complete merge → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result, err := r.Merge(opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	artifact, err := render.Render(ctx, result.Document, opts.RenderOptions())
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact
	result.Stats.ArtifactBytes = len(artifact)
	result.Stats.RenderTime = time.Since(start)

	r.Logger.Info("rendered document",
		"format", opts.Format,
		"engine", opts.Engine,
		"bytes", result.Stats.ArtifactBytes,
		"duration", result.Stats.RenderTime)

	return result, nil
}
