// Package encode serializes an assembled build graph for external
// consumers: JSON for machine integration, YAML for human review. Both
// encoders emit byte-stable output for identical graphs.
package encode

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vk/plugforge/internal/composer"
)

// Recognized output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Graph writes the build graph to w in the requested format.
func Graph(g *composer.BuildGraph, format string, w io.Writer) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(g); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
