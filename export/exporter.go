// Package export writes diagrams out of the editor, either as the native
// JSON model or as a PNG rendering of one view.
package export

import (
	"fmt"
	"strings"

	"isoedit/diagram"
)

// Format represents an export format
type Format string

const (
	// FormatJSON exports the persisted model
	FormatJSON Format = "json"
	// FormatPNG renders one view to an image
	FormatPNG Format = "png"
)

// Exporter interface for different export formats
type Exporter interface {
	// Export converts a model to the target format
	Export(m *diagram.Model) ([]byte, error)
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// NewExporter creates an exporter for the specified format with default
// options.
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatPNG:
		return NewPNGExporter(PNGOptions{}), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "png", "image":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{
		FormatJSON,
		FormatPNG,
	}
}

// GetFormatDescriptions returns human-readable descriptions of all formats
func GetFormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatJSON: "isoedit model (JSON)",
		FormatPNG:  "Rendered view (PNG image)",
	}
}
