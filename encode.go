package lighthousedocs

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name as accepted on the command line.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Encode writes the configuration to w in the given format. The output can
// be read back with LoadConfig.
func Encode(w io.Writer, conf SiteConfig, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)

		err := enc.Encode(conf)
		if err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		err := enc.Encode(conf)
		if err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}

		err = enc.Close()
		if err != nil {
			return fmt.Errorf("flush YAML: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return nil
}
