package merge

import (
	"bytes"
	"testing"

	"github.com/matzehuels/dotstitch/pkg/fragment"
)

func frag(name, body string) fragment.Fragment {
	return fragment.Fragment{Name: name, Body: []byte(body)}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		frags []fragment.Fragment
		opts  Options
		want  string
	}{
		{
			name: "zero fragments yields minimal empty graph",
			want: "digraph {\n}\n",
		},
		{
			name: "zero fragments with strict and name",
			opts: Options{Strict: true, Name: "root"},
			want: "strict digraph root {\n}\n",
		},
		{
			name:  "single fragment wrapped once",
			frags: []fragment.Fragment{frag("a", "a -> b;\n")},
			want:  "digraph {\na -> b;\n}\n",
		},
		{
			name: "fragments concatenate in input order",
			frags: []fragment.Fragment{
				frag("a", "a -> b;\n"),
				frag("b", "b -> c;\n"),
			},
			want: "digraph {\na -> b;\nb -> c;\n}\n",
		},
		{
			name:  "missing trailing newline is added",
			frags: []fragment.Fragment{frag("a", "x")},
			want:  "digraph {\nx\n}\n",
		},
		{
			name:  "body bytes pass through untouched",
			frags: []fragment.Fragment{frag("a", "  a->b ;;\n\n\tweird;\n")},
			want:  "digraph {\n  a->b ;;\n\n\tweird;\n}\n",
		},
		{
			name:  "empty fragment contributes nothing",
			frags: []fragment.Fragment{frag("a", ""), frag("b", "n;\n")},
			want:  "digraph {\nn;\n}\n",
		},
		{
			name:  "undirected graph keyword",
			frags: []fragment.Fragment{frag("a", "a -- b;\n")},
			opts:  Options{Undirected: true},
			want:  "graph {\na -- b;\n}\n",
		},
		{
			name: "name quoted when needed",
			opts: Options{Name: "my graph"},
			want: "digraph \"my graph\" {\n}\n",
		},
		{
			name:  "graph attrs sorted and quoted",
			frags: []fragment.Fragment{frag("a", "a;\n")},
			opts: Options{
				GraphAttrs: map[string]string{"splines": "ortho", "compound": "true"},
			},
			want: "digraph {\n  compound = \"true\";\n  splines = \"ortho\";\n\na;\n}\n",
		},
		{
			name: "node and edge defaults without fragments",
			opts: Options{
				NodeAttrs: map[string]string{"shape": "box"},
				EdgeAttrs: map[string]string{"color": "gray50"},
			},
			want: "digraph {\n  node [shape = \"box\"];\n  edge [color = \"gray50\"];\n}\n",
		},
		{
			name:  "cluster mode wraps and labels each fragment",
			frags: []fragment.Fragment{frag("vpc", "a -> b;\n")},
			opts:  Options{Cluster: true},
			want:  "digraph {\n  subgraph \"cluster_vpc\" {\n\tlabel = \"vpc\";\n\ta -> b;\n  }\n}\n",
		},
		{
			name: "cluster mode keeps fragment order",
			frags: []fragment.Fragment{
				frag("one", "n1;\n"),
				frag("two", "n2;\n"),
			},
			opts: Options{Cluster: true},
			want: "digraph {\n" +
				"  subgraph \"cluster_one\" {\n\tlabel = \"one\";\n\tn1;\n  }\n" +
				"  subgraph \"cluster_two\" {\n\tlabel = \"two\";\n\tn2;\n  }\n" +
				"}\n",
		},
		{
			name:  "cluster mode leaves blank body lines blank",
			frags: []fragment.Fragment{frag("g", "a;\n\nb;\n")},
			opts:  Options{Cluster: true},
			want:  "digraph {\n  subgraph \"cluster_g\" {\n\tlabel = \"g\";\n\ta;\n\n\tb;\n  }\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.frags, tt.opts)
			if string(got) != tt.want {
				t.Errorf("Merge() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMergeDeterministic(t *testing.T) {
	frags := []fragment.Fragment{
		frag("net", "a -> b;\nb -> c;\n"),
		frag("db", "c -> d;"),
	}
	opts := Options{
		Name:    "root",
		Cluster: true,
		GraphAttrs: map[string]string{
			"compound": "true",
			"splines":  "ortho",
			"rankdir":  "LR",
			"bgcolor":  "white",
		},
		NodeAttrs: map[string]string{"shape": "box", "style": "rounded", "fontname": "helvetica"},
		EdgeAttrs: map[string]string{"color": "gray50", "style": "solid"},
	}

	first := Merge(frags, opts)
	for i := 0; i < 20; i++ {
		if got := Merge(frags, opts); !bytes.Equal(got, first) {
			t.Fatalf("run %d produced different output:\n%s\nwant:\n%s", i, got, first)
		}
	}
}
