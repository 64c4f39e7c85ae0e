// Package render turns a DOT document into an image by delegating to
// the Graphviz command-line tools.
//
// Layout never happens in-process. The document is piped to the
// renderer binary (dot by default) on stdin and the artifact is read
// back from stdout, so the output matches what a manual `dot -Tpdf`
// run would produce.
//
// Requires Graphviz: brew install graphviz (macOS), apt install
// graphviz (Linux).
package render

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/matzehuels/dotstitch/pkg/errors"
)

// Format constants for output formats.
const (
	FormatPDF = "pdf"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Engine constants for Graphviz layout engines.
const (
	EngineDot   = "dot"
	EngineNeato = "neato"
	EngineFDP   = "fdp"
	EngineSFDP  = "sfdp"
	EngineTwopi = "twopi"
	EngineCirco = "circo"
)

// Defaults used when the corresponding Options field is empty.
const (
	DefaultFormat   = FormatPDF
	DefaultEngine   = EngineDot
	DefaultRenderer = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPDF: true,
	FormatSVG: true,
	FormatPNG: true,
}

// ValidEngines is the set of supported layout engines.
var ValidEngines = map[string]bool{
	EngineDot:   true,
	EngineNeato: true,
	EngineFDP:   true,
	EngineSFDP:  true,
	EngineTwopi: true,
	EngineCirco: true,
}

// Options configures a rendering run.
type Options struct {
	// Format selects the output format passed as -T. Defaults to pdf.
	Format string

	// Engine selects the layout engine passed as -K. Defaults to dot.
	Engine string

	// Renderer is the binary to invoke. Defaults to dot. Any program
	// with a dot-compatible flag interface works.
	Renderer string
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: pdf, svg, png)", format)
	}
	return nil
}

// ValidateEngine checks that a layout engine is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidEngine, "invalid engine: %q (must be one of: dot, neato, fdp, sfdp, twopi, circo)", engine)
	}
	return nil
}

// Render pipes doc to the renderer and returns the produced artifact.
// Nothing is returned on failure, so callers never see a partial
// image. Cancelling ctx kills the renderer process.
func Render(ctx context.Context, doc []byte, opts Options) ([]byte, error) {
	format := opts.Format
	if format == "" {
		format = DefaultFormat
	}
	engine := opts.Engine
	if engine == "" {
		engine = DefaultEngine
	}
	renderer := opts.Renderer
	if renderer == "" {
		renderer = DefaultRenderer
	}

	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	if err := ValidateEngine(engine); err != nil {
		return nil, err
	}

	if _, err := exec.LookPath(renderer); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRendererNotFound, err,
			"rendering requires Graphviz. Install with:\n  macOS:  brew install graphviz\n  Linux:  apt install graphviz")
	}

	cmd := exec.CommandContext(ctx, renderer, renderArgs(format, engine)...)
	cmd.Stdin = bytes.NewReader(doc)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if msg := strings.TrimSpace(errBuf.String()); msg != "" {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "%s: %s", renderer, msg)
		}
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "%s failed", renderer)
	}
	return out.Bytes(), nil
}

func renderArgs(format, engine string) []string {
	return []string{"-T" + format, "-K" + engine}
}
