// Package dot provides helpers for working with Graphviz DOT text:
// identifier quoting, attribute formatting, wrapper stripping, and
// parse validation.
//
// The package never interprets graph semantics. Fragment bodies flow
// through [github.com/matzehuels/dotstitch/pkg/merge] as opaque text;
// the helpers here only produce or recognize the surrounding syntax.
package dot

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
)

// bareIDRe matches identifiers that DOT accepts without quoting:
// alphanumerics and underscores not starting with a digit, or numerals.
var bareIDRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*|-?(\.[0-9]+|[0-9]+(\.[0-9]*)?))$`)

// keywords are reserved words that must be quoted to stand as IDs.
// DOT treats them case-insensitively.
var keywords = map[string]bool{
	"node":     true,
	"edge":     true,
	"graph":    true,
	"digraph":  true,
	"subgraph": true,
	"strict":   true,
}

// QuoteID returns id as a DOT identifier token, double-quoting and
// escaping when the bare form would not parse. Identifiers that are
// already valid bare IDs are returned unchanged.
func QuoteID(id string) string {
	if bareIDRe.MatchString(id) && !keywords[strings.ToLower(id)] {
		return id
	}
	return Quote(id)
}

// Quote returns s as a double-quoted DOT string, escaping embedded
// quotes, regardless of whether the bare form would parse.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' {
			b.WriteString(`\"`)
		} else {
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// FormatAttrs renders attrs as a DOT attribute list in the form
// key = "value", keys sorted so the same map always produces the same
// text.
func FormatAttrs(attrs map[string]string) string {
	parts := make([]string, 0, len(attrs))
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		parts = append(parts, fmt.Sprintf("%s = %s", QuoteID(k), Quote(attrs[k])))
	}
	return strings.Join(parts, ", ")
}
