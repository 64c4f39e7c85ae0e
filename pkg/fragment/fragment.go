// Package fragment reads Graphviz DOT graph-body fragments from disk
// and prepares them for merging.
//
// A fragment is a file holding statements that belong inside a graph
// declaration, not a complete document. Reading is all-or-nothing: one
// unreadable path fails the whole batch so callers never emit a
// partially merged document.
package fragment

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/dotstitch/pkg/errors"
)

// Fragment is one DOT graph body read from disk.
type Fragment struct {
	Path string // path as supplied by the caller
	Name string // base name without extension; labels the cluster in grouped merges
	Body []byte // fragment text after transforms
}

// ReadAll loads every path in the order given, applying t to each body.
// It fails fast on the first unreadable path; the error carries
// [errors.ErrCodeInputUnreadable] and names the offending path.
func ReadAll(paths []string, t Transform) ([]Fragment, error) {
	frags := make([]Fragment, 0, len(paths))
	for _, path := range paths {
		body, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInputUnreadable, err, "read fragment %s", path)
		}
		name := Name(path)
		frags = append(frags, Fragment{Path: path, Name: name, Body: t.Apply(name, body)})
	}
	return frags, nil
}

// Name derives a fragment's display name from its path: the base name
// with the extension removed. "graphs/vpc.dot" becomes "vpc".
func Name(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
