package export

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"isoedit/diagram"
	"isoedit/geometry"
	"isoedit/importer"
	"isoedit/scene"
)

func sampleModel() *diagram.Model {
	m := diagram.NewModel("export")
	m.Items = []diagram.ModelItem{{ID: "web", Name: "Web"}, {ID: "db", Name: "DB"}}
	m.Views[0].Items = []diagram.ViewItem{
		{ID: "web", Tile: geometry.Coords{X: 0, Y: 0}},
		{ID: "db", Tile: geometry.Coords{X: 4, Y: 0}},
	}
	m.Views[0].Rectangles = []diagram.Rectangle{{ID: "zone", From: geometry.Coords{X: -1, Y: -1}, To: geometry.Coords{X: 5, Y: 1}, Style: diagram.StyleDashed}}
	m.Views[0].Volumes = []diagram.Volume{{Rectangle: diagram.Rectangle{ID: "rack", From: geometry.Coords{X: 0, Y: 3}, To: geometry.Coords{X: 1, Y: 4}}, Height: 2}}
	m.Views[0].Connectors = []diagram.Connector{{
		ID: "link",
		Anchors: []diagram.Anchor{
			{ID: "a1", Ref: diagram.ItemRef("web")},
			{ID: "a2", Ref: diagram.ItemRef("db")},
		},
	}}
	m.Views[0].TextBoxes = []diagram.TextBox{{ID: "note", Tile: geometry.Coords{X: 2, Y: 6}, Content: "Rack", Orientation: diagram.OrientationY}}
	return m
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"png", FormatPNG, false},
		{"image", FormatPNG, false},
		{"mermaid", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewExporter(t *testing.T) {
	for _, format := range GetAvailableFormats() {
		t.Run(string(format), func(t *testing.T) {
			exporter, err := NewExporter(format)
			if err != nil {
				t.Fatalf("NewExporter(%v) returned error: %v", format, err)
			}
			if !strings.EqualFold(exporter.GetFileExtension(), "."+string(format)) {
				t.Errorf("extension = %q", exporter.GetFileExtension())
			}
			if GetFormatDescriptions()[format] == "" {
				t.Errorf("no description for %s", format)
			}
		})
	}
	if _, err := NewExporter("svg"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestJSONExportLoadsBack(t *testing.T) {
	m := sampleModel()
	m.Views = append(m.Views, diagram.View{ID: "empty", Name: "Empty"})

	data, err := NewJSONExporter().Export(m)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !bytes.Contains(data, []byte(`"items": []`)) {
		t.Errorf("view without items should export an empty list:\n%s", data)
	}

	loaded, err := importer.Load(data)
	if err != nil {
		t.Fatalf("exported model does not load: %v", err)
	}
	if loaded.Title != m.Title || len(loaded.Views) != 2 || len(loaded.Views[0].Connectors) != 1 {
		t.Errorf("loaded model differs: %+v", loaded)
	}
}

func TestPNGExport(t *testing.T) {
	m := sampleModel()
	opts := PNGOptions{Zoom: 0.5, Padding: 20, Background: "#ffffff"}

	data, err := NewPNGExporter(opts).Export(m)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}

	st, err := scene.NewState(m, m.Views[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	r := newRaster(st.Model, &st.Model.Views[0], st.Scene, opts)
	if b := img.Bounds(); b.Dx() != r.width || b.Dy() != r.height {
		t.Errorf("image is %dx%d, want %dx%d", b.Dx(), b.Dy(), r.width, r.height)
	}

	if cr, cg, cb, _ := img.At(0, 0).RGBA(); cr != 0xffff || cg != 0xffff || cb != 0xffff {
		t.Errorf("padding is not background: %v", img.At(0, 0))
	}
	center := r.point(geometry.TilePosition(geometry.Coords{X: 4, Y: 0}, geometry.OriginCenter))
	if cr, cg, cb, _ := img.At(int(center.X), int(center.Y)).RGBA(); cr == 0xffff && cg == 0xffff && cb == 0xffff {
		t.Error("item tile was not drawn")
	}
}

func TestPNGExportViews(t *testing.T) {
	t.Run("unknown view", func(t *testing.T) {
		if _, err := NewPNGExporter(PNGOptions{ViewID: "ghost"}).Export(sampleModel()); err == nil {
			t.Error("expected error for unknown view")
		}
	})

	t.Run("empty view", func(t *testing.T) {
		data, err := NewPNGExporter(PNGOptions{}).Export(diagram.NewModel("blank"))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := png.Decode(bytes.NewReader(data)); err != nil {
			t.Errorf("output is not a PNG: %v", err)
		}
	})

	t.Run("no views", func(t *testing.T) {
		if _, err := NewPNGExporter(PNGOptions{}).Export(&diagram.Model{}); err == nil {
			t.Error("expected error for a model without views")
		}
	})
}
