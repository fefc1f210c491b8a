package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/blang/semver/v4"

	"isoedit/diagram"
	"isoedit/logging"
	"isoedit/validation"
)

// SupportedMajor is the model format major version this build reads.
const SupportedMajor = 1

// JSONImporter loads the native JSON model format.
type JSONImporter struct{}

// NewJSONImporter creates a new JSON importer
func NewJSONImporter() *JSONImporter {
	return &JSONImporter{}
}

// CanImport checks for a JSON object
func (j *JSONImporter) CanImport(content []byte) bool {
	trimmed := bytes.TrimSpace(content)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// Import loads content as a model.
func (j *JSONImporter) Import(content []byte) (*diagram.Model, error) {
	return Load(content)
}

// GetFormatName returns the format name
func (j *JSONImporter) GetFormatName() string {
	return "JSON"
}

// GetFileExtensions returns the file extensions for JSON
func (j *JSONImporter) GetFileExtensions() []string {
	return []string{".json"}
}

// Load decodes, checks and repairs a model. See LoadWithFixes.
func Load(raw []byte) (*diagram.Model, error) {
	m, _, err := LoadWithFixes(raw)
	return m, err
}

// LoadWithFixes decodes raw strictly, checks required keys, value ranges
// and the format version, fills in default icons and colors and then
// applies the validation auto-fixes. It returns the fixes it applied. Any
// problem that cannot be fixed rejects the whole load with a *LoadError.
func LoadWithFixes(raw []byte) (*diagram.Model, []validation.Issue, error) {
	var m diagram.Model
	if err := decodeStrict(raw, &m); err != nil {
		return nil, nil, newLoadError([]Issue{decodeIssue(err)})
	}

	s := &schema{}
	s.checkRequired(raw)
	s.checkModel(&m)
	if len(s.issues) > 0 {
		return nil, nil, newLoadError(s.issues)
	}

	if len(m.Icons) == 0 {
		m.Icons = append([]diagram.Icon(nil), diagram.DefaultIcons...)
	}
	if len(m.Colors) == 0 {
		m.Colors = append([]diagram.Color(nil), diagram.DefaultColors...)
	}

	fixed, applied := validation.FixModel(&m)
	fixed.Compact()
	if remaining := validation.ValidateModel(fixed); len(remaining) > 0 {
		issues := make([]Issue, len(remaining))
		for i, r := range remaining {
			issues[i] = Issue{Path: r.Path, Message: r.Message}
		}
		return nil, nil, newLoadError(issues)
	}
	if len(applied) > 0 {
		logging.Logger().Info("model repaired on load", "fixes", len(applied))
	}
	return fixed, applied, nil
}

func decodeStrict(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after the model")
	}
	return nil
}

// decodeIssue turns a decoding error into an issue with the best path
// the error carries.
func decodeIssue(err error) Issue {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		return Issue{
			Path:    typeErr.Field,
			Message: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}
	case errors.As(err, &syntaxErr):
		return Issue{Message: fmt.Sprintf("malformed JSON at offset %d: %v", syntaxErr.Offset, syntaxErr)}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return Issue{Path: field, Message: "unknown field"}
	}
	return Issue{Message: err.Error()}
}

// schema collects issues the JSON decoder cannot catch.
type schema struct {
	issues []Issue
}

func (s *schema) add(path, format string, args ...interface{}) {
	s.issues = append(s.issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

// checkRequired reports required keys that are absent or null. Decoding
// into structs cannot tell a missing list from an empty one.
func (s *schema) checkRequired(raw []byte) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return
	}
	s.requireKeys("", top, "title", "items", "views")

	var views []json.RawMessage
	if err := json.Unmarshal(top["views"], &views); err != nil {
		return
	}
	for i, rawView := range views {
		var view map[string]json.RawMessage
		if err := json.Unmarshal(rawView, &view); err != nil || view == nil {
			continue
		}
		s.requireKeys(fmt.Sprintf("views[%d].", i), view, "id", "items")
	}
}

func (s *schema) requireKeys(prefix string, obj map[string]json.RawMessage, keys ...string) {
	for _, key := range keys {
		v, ok := obj[key]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			s.add(prefix+key, "required")
		}
	}
}

func (s *schema) checkModel(m *diagram.Model) {
	if m.Version != "" {
		v, err := semver.ParseTolerant(m.Version)
		switch {
		case err != nil:
			s.add("version", "not a semantic version: %v", err)
		case v.Major != SupportedMajor:
			s.add("version", "format version %s is not supported (want %d.x)", v, SupportedMajor)
		}
	}

	for i, item := range m.Items {
		s.requireID(fmt.Sprintf("items[%d]", i), item.ID)
	}
	for i, icon := range m.Icons {
		s.requireID(fmt.Sprintf("icons[%d]", i), icon.ID)
	}
	for i, c := range m.Colors {
		path := fmt.Sprintf("colors[%d]", i)
		s.requireID(path, c.ID)
		if c.Value == "" {
			s.add(path+".value", "required")
		}
	}
	if m.Views != nil && len(m.Views) == 0 {
		s.add("views", "at least one view is required")
	}
	for i := range m.Views {
		s.checkView(fmt.Sprintf("views[%d]", i), &m.Views[i])
	}
}

func (s *schema) checkView(base string, v *diagram.View) {
	for i, item := range v.Items {
		path := fmt.Sprintf("%s.items[%d]", base, i)
		s.requireID(path, item.ID)
		s.nonNegative(path+".labelHeight", float64(item.LabelHeight))
		s.nonNegative(path+".scaleFactor", item.ScaleFactor)
	}
	for i, r := range v.Rectangles {
		s.checkRectangle(fmt.Sprintf("%s.rectangles[%d]", base, i), r)
	}
	for i, vol := range v.Volumes {
		path := fmt.Sprintf("%s.volumes[%d]", base, i)
		s.checkRectangle(path, vol.Rectangle)
		s.nonNegative(path+".height", float64(vol.Height))
	}
	for i, c := range v.Connectors {
		s.checkLink(fmt.Sprintf("%s.connectors[%d]", base, i), c)
	}
	for i, r := range v.Roads {
		s.checkLink(fmt.Sprintf("%s.roads[%d]", base, i), r)
	}
	for i, tb := range v.TextBoxes {
		path := fmt.Sprintf("%s.textBoxes[%d]", base, i)
		s.requireID(path, tb.ID)
		s.nonNegative(path+".fontSize", tb.FontSize)
		switch tb.Orientation {
		case "", diagram.OrientationX, diagram.OrientationY:
		default:
			s.add(path+".orientation", "must be X or Y, got %q", tb.Orientation)
		}
	}
}

func (s *schema) checkRectangle(path string, r diagram.Rectangle) {
	s.requireID(path, r.ID)
	s.checkStyle(path+".style", r.Style)
	s.nonNegative(path+".width", float64(r.Width))
	s.nonNegative(path+".radius", float64(r.Radius))
}

func (s *schema) checkLink(path string, c diagram.Connector) {
	s.requireID(path, c.ID)
	s.checkStyle(path+".style", c.Style)
	s.nonNegative(path+".width", float64(c.Width))
	for i, a := range c.Anchors {
		s.requireID(fmt.Sprintf("%s.anchors[%d]", path, i), a.ID)
	}
}

func (s *schema) requireID(path, id string) {
	if strings.TrimSpace(id) == "" {
		s.add(path+".id", "required")
	}
}

func (s *schema) nonNegative(path string, v float64) {
	if v < 0 {
		s.add(path, "must not be negative, got %v", v)
	}
}

func (s *schema) checkStyle(path string, style diagram.LineStyle) {
	if !style.Valid() {
		s.add(path, "unknown line style %q", style)
	}
}
