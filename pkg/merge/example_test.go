package merge_test

import (
	"fmt"

	"github.com/matzehuels/dotstitch/pkg/fragment"
	"github.com/matzehuels/dotstitch/pkg/merge"
)

func ExampleMerge() {
	// Two fragments, each a bare graph body from a separate file.
	frags := []fragment.Fragment{
		{Name: "auth", Body: []byte("login -> session;\n")},
		{Name: "billing", Body: []byte("invoice -> ledger;\n")},
	}

	doc := merge.Merge(frags, merge.Options{})
	fmt.Print(string(doc))
	// Output:
	// digraph {
	// login -> session;
	// invoice -> ledger;
	// }
}

func ExampleMerge_headers() {
	// Attribute headers are emitted in sorted key order ahead of the
	// fragment bodies.
	frags := []fragment.Fragment{
		{Name: "net", Body: []byte("a -> b;\n")},
	}

	doc := merge.Merge(frags, merge.Options{
		Name:       "root",
		GraphAttrs: map[string]string{"splines": "ortho", "compound": "true"},
	})
	fmt.Print(string(doc))
	// Output:
	// digraph root {
	//   compound = "true";
	//   splines = "ortho";
	//
	// a -> b;
	// }
}
