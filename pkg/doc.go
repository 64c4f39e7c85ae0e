// Package pkg provides the core libraries for the dotstitch DOT pipeline.
//
// # Overview
//
// Dotstitch stitches Graphviz DOT graph fragments into one combined
// document and hands it to the external Graphviz tools for layout and
// rendering. The pkg directory is organized by pipeline stage:
//
//  1. [fragment] - Fragment loading and per-line transforms
//  2. [merge] - Document assembly (the core operation)
//  3. [dot] - DOT text helpers (quoting, unwrapping, validation)
//  4. [render] - Delegation to the external renderer binary
//  5. [pipeline] - Merge → render orchestration behind the CLI
//
// # Architecture
//
// The data flow through dotstitch:
//
//	fragment files (graph bodies)
//	         ↓
//	    [fragment] package (read + transform)
//	         ↓
//	    [merge] package (assemble one document)
//	         ↓
//	    [render] package (external `dot -T<format>`)
//	         ↓
//	    PDF/SVG/PNG artifact
//
// # Quick Start
//
// Merge fragments and render the result:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/dotstitch/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Fragments: []string{"vpc.dot", "dns.dot"},
//	    Cluster:   true,
//	    Format:    "pdf",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("infra.pdf", result.Artifact, 0o644)
//
// # Main Packages
//
// [fragment] - Reads ordered fragment files, failing before any output
// when one is unreadable, and applies the optional line pipeline
// (exclude filters, rewrite rules, label splitting, unwrapping).
//
// [merge] - Assembles fragment bodies into a single DOT document:
// exactly one outer graph declaration, optional attribute headers,
// bodies in input order. Pure text, no graph object, deterministic.
//
// [dot] - Small DOT text helpers: ID quoting, attribute formatting,
// outer-declaration unwrapping, and syntax validation by parsing
// (never layout).
//
// [render] - Locates the renderer binary, pipes the document on stdin,
// and captures the artifact from stdout. All layout semantics belong
// to Graphviz.
//
// [pipeline] - Options, validation, and the Runner used by the merge,
// render, and build commands.
//
// [errors] - Coded errors shared across the pipeline (INPUT_UNREADABLE,
// INVALID_PATTERN, RENDER_FAILED, ...).
//
// [buildinfo] - Version metadata injected at build time via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/merge/...    # Specific package
//	go test -run Example       # Examples only
//
// [fragment]: https://pkg.go.dev/github.com/matzehuels/dotstitch/pkg/fragment
// [merge]: https://pkg.go.dev/github.com/matzehuels/dotstitch/pkg/merge
// [dot]: https://pkg.go.dev/github.com/matzehuels/dotstitch/pkg/dot
// [render]: https://pkg.go.dev/github.com/matzehuels/dotstitch/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/dotstitch/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/dotstitch/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/dotstitch/pkg/buildinfo
package pkg
