// Package config loads isoedit settings from a YAML file with environment
// overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"isoedit/editor"
	"isoedit/export"
	"isoedit/geometry"
)

// Config holds every tunable of the editor and its exporters.
type Config struct {
	Zoom    geometry.ZoomLimits `yaml:"zoom"`
	History HistoryConfig       `yaml:"history"`
	Editor  EditorConfig        `yaml:"editor"`
	Export  ExportConfig        `yaml:"export"`
}

type HistoryConfig struct {
	MaxDepth int           `yaml:"max_depth"`
	Debounce time.Duration `yaml:"debounce"`
}

type EditorConfig struct {
	Mode           string  `yaml:"mode"`
	RendererWidth  float64 `yaml:"renderer_width"`
	RendererHeight float64 `yaml:"renderer_height"`
}

type ExportConfig struct {
	Zoom       float64 `yaml:"zoom"`
	Padding    float64 `yaml:"padding"`
	Background string  `yaml:"background"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Zoom: geometry.DefaultZoomLimits,
		History: HistoryConfig{
			MaxDepth: editor.DefaultHistoryDepth,
			Debounce: editor.DefaultHistoryDebounce,
		},
		Editor: EditorConfig{
			Mode:           string(editor.Editable),
			RendererWidth:  800,
			RendererHeight: 600,
		},
		Export: ExportConfig{
			Zoom:       export.DefaultPNGZoom,
			Padding:    export.DefaultPNGPadding,
			Background: export.DefaultPNGBackground,
		},
	}
}

// Load reads path over the defaults, applies ISOEDIT_* environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Zoom.Min = getEnvAsFloat("ISOEDIT_MIN_ZOOM", c.Zoom.Min)
	c.Zoom.Max = getEnvAsFloat("ISOEDIT_MAX_ZOOM", c.Zoom.Max)
	c.Zoom.Step = getEnvAsFloat("ISOEDIT_ZOOM_STEP", c.Zoom.Step)
	c.History.MaxDepth = getEnvAsInt("ISOEDIT_HISTORY_DEPTH", c.History.MaxDepth)
	ms := getEnvAsInt("ISOEDIT_HISTORY_DEBOUNCE_MS", int(c.History.Debounce/time.Millisecond))
	c.History.Debounce = time.Duration(ms) * time.Millisecond
	c.Editor.Mode = getEnv("ISOEDIT_EDITOR_MODE", c.Editor.Mode)
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var err error
	if c.Zoom.Min <= 0 {
		err = multierr.Append(err, fmt.Errorf("zoom.min must be positive, got %v", c.Zoom.Min))
	}
	if c.Zoom.Min > c.Zoom.Max {
		err = multierr.Append(err, fmt.Errorf("zoom.min %v exceeds zoom.max %v", c.Zoom.Min, c.Zoom.Max))
	}
	if c.Zoom.Step <= 1 {
		err = multierr.Append(err, fmt.Errorf("zoom.step must be greater than 1, got %v", c.Zoom.Step))
	}
	if c.History.MaxDepth < 1 {
		err = multierr.Append(err, fmt.Errorf("history.max_depth must be at least 1, got %d", c.History.MaxDepth))
	}
	if c.History.Debounce < 0 {
		err = multierr.Append(err, fmt.Errorf("history.debounce must not be negative, got %v", c.History.Debounce))
	}
	if _, perr := editor.ParseEditorMode(c.Editor.Mode); perr != nil {
		err = multierr.Append(err, fmt.Errorf("editor.mode: %w", perr))
	}
	if c.Editor.RendererWidth < 0 || c.Editor.RendererHeight < 0 {
		err = multierr.Append(err, errors.New("editor renderer size must not be negative"))
	}
	if c.Export.Zoom < 0 || c.Export.Padding < 0 {
		err = multierr.Append(err, errors.New("export zoom and padding must not be negative"))
	}
	return err
}

// EditorOptions converts the configuration into editor options.
func (c *Config) EditorOptions() editor.Options {
	mode, _ := editor.ParseEditorMode(c.Editor.Mode)
	return editor.Options{
		EditorMode:      mode,
		ZoomLimits:      c.Zoom,
		HistoryDepth:    c.History.MaxDepth,
		HistoryDebounce: c.History.Debounce,
		RendererSize:    geometry.Size{Width: c.Editor.RendererWidth, Height: c.Editor.RendererHeight},
	}
}

// PNGOptions converts the export section into PNG exporter options.
func (c *Config) PNGOptions(viewID string) export.PNGOptions {
	return export.PNGOptions{
		ViewID:     viewID,
		Zoom:       c.Export.Zoom,
		Padding:    c.Export.Padding,
		Background: c.Export.Background,
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
