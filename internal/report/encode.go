package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fosrl/posture/internal/config"
	"github.com/fosrl/posture/internal/posture"
	"go.yaml.in/yaml/v3"
)

// Encode writes r in a machine-readable format.
func Encode(w io.Writer, r *posture.Report, format string) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report as JSON: %w", err)
		}
		return nil

	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report as YAML: %w", err)
		}
		return enc.Close()

	case config.OutputText, "":
		NewTextWriter(w).Write(r)
		return nil

	default:
		return fmt.Errorf("invalid output format: %q", format)
	}
}
