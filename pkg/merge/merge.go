package merge

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/dotstitch/pkg/dot"
	"github.com/matzehuels/dotstitch/pkg/fragment"
)

// Options controls how fragments are assembled into a document.
type Options struct {
	// Name is the graph ID written after the keyword. Empty produces an
	// anonymous graph.
	Name string
	// Undirected emits graph instead of digraph. Fragment bodies must
	// use the matching edge operator; Merge never rewrites them.
	Undirected bool
	// Strict prefixes the declaration with the strict modifier.
	Strict bool
	// Cluster wraps each fragment in a subgraph "cluster_<name>" block
	// labeled with the fragment name.
	Cluster bool
	// GraphAttrs become top-level attribute statements, one per line.
	GraphAttrs map[string]string
	// NodeAttrs and EdgeAttrs become node [...] and edge [...] default
	// statements ahead of the fragment bodies.
	NodeAttrs map[string]string
	EdgeAttrs map[string]string
}

// Merge assembles fragment bodies into one DOT document: a single
// outer graph declaration, optional attribute headers, then every body
// in input order, each guaranteed to end in a newline but otherwise
// untouched. With zero fragments the result is the minimal valid
// empty graph.
func Merge(frags []fragment.Fragment, opts Options) []byte {
	var buf bytes.Buffer

	if opts.Strict {
		buf.WriteString("strict ")
	}
	if opts.Undirected {
		buf.WriteString("graph")
	} else {
		buf.WriteString("digraph")
	}
	if opts.Name != "" {
		buf.WriteByte(' ')
		buf.WriteString(dot.QuoteID(opts.Name))
	}
	buf.WriteString(" {\n")

	if writeHeader(&buf, opts) && len(frags) > 0 {
		buf.WriteByte('\n')
	}

	for _, f := range frags {
		if opts.Cluster {
			writeCluster(&buf, f)
		} else {
			writeBody(&buf, f.Body, "")
		}
	}

	buf.WriteString("}\n")
	return buf.Bytes()
}

// writeHeader emits the attribute statements and reports whether any
// were written. Keys are sorted so the header is stable across runs.
func writeHeader(buf *bytes.Buffer, opts Options) bool {
	wrote := false
	for _, k := range slices.Sorted(maps.Keys(opts.GraphAttrs)) {
		fmt.Fprintf(buf, "  %s = %s;\n", dot.QuoteID(k), dot.Quote(opts.GraphAttrs[k]))
		wrote = true
	}
	if len(opts.NodeAttrs) > 0 {
		fmt.Fprintf(buf, "  node [%s];\n", dot.FormatAttrs(opts.NodeAttrs))
		wrote = true
	}
	if len(opts.EdgeAttrs) > 0 {
		fmt.Fprintf(buf, "  edge [%s];\n", dot.FormatAttrs(opts.EdgeAttrs))
		wrote = true
	}
	return wrote
}

// writeCluster wraps one fragment in a labeled cluster subgraph. Body
// lines shift right by one tab; their text is otherwise untouched.
func writeCluster(buf *bytes.Buffer, f fragment.Fragment) {
	fmt.Fprintf(buf, "  subgraph %s {\n", dot.Quote("cluster_"+f.Name))
	fmt.Fprintf(buf, "\tlabel = %s;\n", dot.Quote(f.Name))
	writeBody(buf, f.Body, "\t")
	buf.WriteString("  }\n")
}

// writeBody writes body terminated by exactly one trailing newline,
// adding it only when missing. A non-empty indent is prefixed to each
// non-blank line; blank lines stay blank.
func writeBody(buf *bytes.Buffer, body []byte, indent string) {
	if len(body) == 0 {
		return
	}

	if indent == "" {
		buf.Write(body)
		if body[len(body)-1] != '\n' {
			buf.WriteByte('\n')
		}
		return
	}

	lines := bytes.Split(body, []byte("\n"))
	if len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	for _, line := range lines {
		if len(line) > 0 {
			buf.WriteString(indent)
			buf.Write(line)
		}
		buf.WriteByte('\n')
	}
}
