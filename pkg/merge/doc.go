// Package merge assembles Graphviz DOT graph-body fragments into a
// single document.
//
// The merger is deliberately textual. Fragments are never parsed into
// a graph model; their statements flow through byte-for-byte in the
// order given, wrapped in exactly one outer graph declaration. DOT's
// permissive redeclaration rules make the concatenation safe: a node
// or edge declared by several fragments is unified by Graphviz itself
// at layout time.
//
// Use [Merge] with fragments from
// [github.com/matzehuels/dotstitch/pkg/fragment.ReadAll]:
//
//	frags, err := fragment.ReadAll(paths, fragment.Transform{})
//	if err != nil {
//		return err
//	}
//	doc := merge.Merge(frags, merge.Options{Name: "root"})
//
// Output is deterministic: attribute headers are written in sorted key
// order and bodies in input order, so the same inputs always yield a
// byte-identical document.
package merge
