package chart

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Encoding formats accepted by Encode.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Encode writes specs to w in the requested format.
func Encode(w io.Writer, specs []Spec, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(specs); err != nil {
			return fmt.Errorf("failed to encode specs: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(specs); err != nil {
			return fmt.Errorf("failed to encode specs: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode specs: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (use %s or %s)", format, FormatJSON, FormatYAML)
	}
}
