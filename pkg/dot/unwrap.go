package dot

import (
	"bytes"
	"regexp"
)

// graphOpenRe matches the opening line of a complete graph declaration:
// an optional strict modifier, the graph or digraph keyword, an optional
// name, and the opening brace with nothing after it.
var graphOpenRe = regexp.MustCompile(`^\s*(strict\s+)?(di)?graph(\s+("(\\.|[^"\\])*"|[A-Za-z_][A-Za-z0-9_.]*))?\s*\{\s*$`)

// Unwrap strips one outer graph declaration from body, returning the
// statements between the opening brace and the final closing brace.
// The report is true when a wrapper was found and removed; otherwise
// body is returned unchanged.
//
// Detection is line-based: the declaration must sit alone on the first
// significant line and the closing brace alone on the last. Bodies that
// interleave statements with the braces are left untouched, which keeps
// the operation safe to apply to fragments that are already bare.
func Unwrap(body []byte) ([]byte, bool) {
	lines := bytes.Split(body, []byte("\n"))

	start := -1
	for i, line := range lines {
		t := bytes.TrimSpace(line)
		if len(t) == 0 || bytes.HasPrefix(t, []byte("//")) || bytes.HasPrefix(t, []byte("#")) {
			continue
		}
		if graphOpenRe.Match(line) {
			start = i
		}
		break
	}
	if start < 0 {
		return body, false
	}

	end := -1
	for i := len(lines) - 1; i > start; i-- {
		t := bytes.TrimSpace(lines[i])
		if len(t) == 0 {
			continue
		}
		if bytes.Equal(t, []byte("}")) {
			end = i
		}
		break
	}
	if end < 0 {
		return body, false
	}

	return bytes.Join(lines[start+1:end], []byte("\n")), true
}
