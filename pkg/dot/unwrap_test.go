package dot

import "testing"

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		want      string
		unwrapped bool
	}{
		{
			name:      "digraph wrapper",
			body:      "digraph G {\n  a -> b;\n}\n",
			want:      "  a -> b;",
			unwrapped: true,
		},
		{
			name:      "anonymous graph",
			body:      "graph {\na -- b;\n}",
			want:      "a -- b;",
			unwrapped: true,
		},
		{
			name:      "strict with quoted name",
			body:      "strict digraph \"my graph\" {\n\tx;\n\ty;\n}\n",
			want:      "\tx;\n\ty;",
			unwrapped: true,
		},
		{
			name:      "leading comment preserved outside wrapper",
			body:      "// terraform graph\ndigraph {\n\"[root] a\";\n}\n",
			want:      "\"[root] a\";",
			unwrapped: true,
		},
		{
			name:      "hash comment",
			body:      "# generated\ndigraph {\nn1;\n}",
			want:      "n1;",
			unwrapped: true,
		},
		{
			name:      "indented closing brace",
			body:      "digraph {\n  a;\n  }\n",
			want:      "  a;",
			unwrapped: true,
		},
		{
			name:      "already bare",
			body:      "a -> b;\nb -> c;\n",
			want:      "a -> b;\nb -> c;\n",
			unwrapped: false,
		},
		{
			name:      "single line graph untouched",
			body:      "digraph { a -> b; }\n",
			want:      "digraph { a -> b; }\n",
			unwrapped: false,
		},
		{
			name:      "opener without closer untouched",
			body:      "digraph {\na -> b;\n",
			want:      "digraph {\na -> b;\n",
			unwrapped: false,
		},
		{
			name:      "trailing text after closer untouched",
			body:      "digraph {\na;\n} // end\n",
			want:      "digraph {\na;\n} // end\n",
			unwrapped: false,
		},
		{
			name:      "empty body",
			body:      "",
			want:      "",
			unwrapped: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, unwrapped := Unwrap([]byte(tt.body))
			if string(got) != tt.want {
				t.Errorf("Unwrap() = %q, want %q", got, tt.want)
			}
			if unwrapped != tt.unwrapped {
				t.Errorf("Unwrap() unwrapped = %v, want %v", unwrapped, tt.unwrapped)
			}
		})
	}
}
