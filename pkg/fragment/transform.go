package fragment

import (
	"regexp"
	"strings"

	"github.com/matzehuels/dotstitch/pkg/dot"
	"github.com/matzehuels/dotstitch/pkg/errors"
)

// Rule rewrites fragment lines by regular expression. The replacement
// may reference capture groups ($1, ${name}) and the {fragment}
// placeholder, which expands to the fragment's name.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// ParseRule compiles a rule from its flag form "pattern=>replacement".
func ParseRule(s string) (Rule, error) {
	pat, repl, ok := strings.Cut(s, "=>")
	if !ok {
		return Rule{}, errors.New(errors.ErrCodeInvalidPattern, "rewrite rule %q is missing the \"=>\" separator", s)
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return Rule{}, errors.Wrap(errors.ErrCodeInvalidPattern, err, "compile rewrite pattern %q", pat)
	}
	return Rule{Pattern: re, Replacement: repl}, nil
}

// ParseRules compiles every rule, preserving order.
func ParseRules(specs []string) ([]Rule, error) {
	rules := make([]Rule, 0, len(specs))
	for _, s := range specs {
		r, err := ParseRule(s)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// CompileExcludes compiles exclusion patterns. A fragment line matching
// any of them is dropped before merging.
func CompileExcludes(exprs []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPattern, err, "compile exclude pattern %q", expr)
		}
		res = append(res, re)
	}
	return res, nil
}

// Transform is the per-fragment line pipeline applied between reading
// and merging: unwrap, exclude, rewrite, split labels, in that order.
// The zero value leaves bodies byte-for-byte untouched.
type Transform struct {
	Unwrap      bool             // strip a complete outer graph declaration
	Exclude     []*regexp.Regexp // drop lines matching any pattern
	Rewrite     []Rule           // regexp rewrites, applied in order
	SplitLabels bool             // split dotted labels into two-row HTML tables
}

func (t Transform) active() bool {
	return t.Unwrap || len(t.Exclude) > 0 || len(t.Rewrite) > 0 || t.SplitLabels
}

func (t Transform) lineStages() bool {
	return len(t.Exclude) > 0 || len(t.Rewrite) > 0 || t.SplitLabels
}

// Apply runs the pipeline over body. name is the fragment name the
// {fragment} placeholder expands to. When no stage is enabled the body
// passes through with its exact bytes, so a plain merge stays a pure
// concatenation.
func (t Transform) Apply(name string, body []byte) []byte {
	if !t.active() {
		return body
	}

	if t.Unwrap {
		body, _ = dot.Unwrap(body)
	}
	if !t.lineStages() {
		return body
	}

	lines := strings.Split(string(body), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if t.excluded(line) {
			continue
		}
		for _, r := range t.Rewrite {
			line = r.Pattern.ReplaceAllString(line, r.expand(name))
		}
		if t.SplitLabels {
			line = labelRe.ReplaceAllString(line, labelTable)
		}
		out = append(out, line)
	}
	return []byte(strings.Join(out, "\n"))
}

func (t Transform) excluded(line string) bool {
	for _, re := range t.Exclude {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// expand substitutes the {fragment} placeholder, escaping "$" in the
// name so it cannot be misread as a capture-group reference.
func (r Rule) expand(name string) string {
	if !strings.Contains(r.Replacement, "{fragment}") {
		return r.Replacement
	}
	return strings.ReplaceAll(r.Replacement, "{fragment}", strings.ReplaceAll(name, "$", "$$"))
}

// labelRe matches dotted label attributes like label = "aws_instance.web".
var labelRe = regexp.MustCompile(`label = "(.*)\.([^."]*)"`)

// labelTable renders a matched label as a two-row HTML-like table: the
// dotted prefix in small grey type above the final segment.
const labelTable = `label=<<table border="0"><tr><td><font color="gray40" point-size="9">$1</font></td></tr><tr><td>$2</td></tr></table>>`
