package dot

import (
	"fmt"

	"github.com/goccy/go-graphviz"
)

// Validate parses src as a DOT document and returns the first syntax
// error Graphviz reports. Only the parse is exercised; no layout runs.
func Validate(src []byte) error {
	g, err := graphviz.ParseBytes(src)
	if err != nil {
		return fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()
	return nil
}
