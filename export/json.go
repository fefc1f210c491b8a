package export

import (
	"encoding/json"

	"isoedit/diagram"
)

// JSONExporter exports models to the native JSON format
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts a model to indented JSON. Required lists are written as
// [] rather than null so the output loads back.
func (e *JSONExporter) Export(m *diagram.Model) ([]byte, error) {
	out := m.Clone()
	if out.Items == nil {
		out.Items = []diagram.ModelItem{}
	}
	if out.Views == nil {
		out.Views = []diagram.View{}
	}
	for i := range out.Views {
		if out.Views[i].Items == nil {
			out.Views[i].Items = []diagram.ViewItem{}
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// GetFileExtension returns the file extension for JSON
func (e *JSONExporter) GetFileExtension() string {
	return ".json"
}

// GetFormatName returns the format name
func (e *JSONExporter) GetFormatName() string {
	return "JSON"
}
