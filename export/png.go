package export

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/fogleman/gg"

	"isoedit/diagram"
	"isoedit/geometry"
	"isoedit/logging"
	"isoedit/scene"
)

const (
	DefaultPNGZoom       = 0.5
	DefaultPNGPadding    = 40.0
	DefaultPNGBackground = "#ffffff"
)

const (
	defaultConnectorWidth = 10.0
	labelFontSize         = 28.0
	labelGap              = 12.0
)

// PNGOptions configures PNG rendering. Zero values select the defaults.
type PNGOptions struct {
	ViewID     string
	Zoom       float64
	Padding    float64
	Background string
}

// PNGExporter renders one view of a model with isometric projection.
type PNGExporter struct {
	opts PNGOptions
}

// NewPNGExporter creates a PNG exporter
func NewPNGExporter(opts PNGOptions) *PNGExporter {
	if opts.Zoom <= 0 {
		opts.Zoom = DefaultPNGZoom
	}
	if opts.Padding < 0 {
		opts.Padding = 0
	} else if opts.Padding == 0 {
		opts.Padding = DefaultPNGPadding
	}
	if opts.Background == "" {
		opts.Background = DefaultPNGBackground
	}
	return &PNGExporter{opts: opts}
}

// Export renders the configured view, or the first view when none is set.
func (e *PNGExporter) Export(m *diagram.Model) ([]byte, error) {
	if m == nil || len(m.Views) == 0 {
		return nil, errors.New("export: model has no views")
	}
	viewID := e.opts.ViewID
	if viewID == "" {
		viewID = m.Views[0].ID
	}
	st, err := scene.NewState(m, viewID)
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}
	view, err := st.View(viewID)
	if err != nil {
		return nil, err
	}

	dc := newRaster(st.Model, view, st.Scene, e.opts).render()
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	logging.Logger().Debug("png exported", "view", viewID, "width", dc.Width(), "height", dc.Height())
	return buf.Bytes(), nil
}

// GetFileExtension returns the file extension for PNG
func (e *PNGExporter) GetFileExtension() string {
	return ".png"
}

// GetFormatName returns the format name
func (e *PNGExporter) GetFormatName() string {
	return "PNG"
}

// raster draws one view. Positions are unzoomed projected pixels until
// point scales and offsets them onto the canvas.
type raster struct {
	model  *diagram.Model
	view   *diagram.View
	sc     *scene.Scene
	opts   PNGOptions
	offset geometry.Point
	width  int
	height int
}

func newRaster(m *diagram.Model, view *diagram.View, sc *scene.Scene, opts PNGOptions) *raster {
	r := &raster{model: m, view: view, sc: sc, opts: opts}
	lo, hi := r.extent()
	r.offset = geometry.Pt(opts.Padding, opts.Padding).Sub(lo.Mul(opts.Zoom))
	size := hi.Sub(lo).Mul(opts.Zoom)
	r.width = int(math.Ceil(size.X + 2*opts.Padding))
	r.height = int(math.Ceil(size.Y + 2*opts.Padding))
	if r.width < 1 {
		r.width = 1
	}
	if r.height < 1 {
		r.height = 1
	}
	return r
}

// extent returns the unzoomed pixel bounds of everything drawn.
func (r *raster) extent() (lo, hi geometry.Point) {
	first := true
	add := func(p geometry.Point) {
		if first {
			lo, hi, first = p, p, false
			return
		}
		lo = geometry.Pt(math.Min(lo.X, p.X), math.Min(lo.Y, p.Y))
		hi = geometry.Pt(math.Max(hi.X, p.X), math.Max(hi.Y, p.Y))
	}
	addTile := func(tile geometry.Coords) {
		for _, o := range []geometry.Origin{geometry.OriginTop, geometry.OriginRight, geometry.OriginBottom, geometry.OriginLeft} {
			add(geometry.TilePosition(tile, o))
		}
	}
	addRect := func(b geometry.Rect, lift float64) {
		for _, p := range footprint(b) {
			add(p)
			add(p.Sub(geometry.Pt(0, lift)))
		}
	}

	for _, vi := range r.view.Items {
		addTile(vi.Tile)
		top := geometry.TilePosition(vi.Tile, geometry.OriginTop)
		add(top.Sub(geometry.Pt(0, labelOffset(vi)+labelFontSize)))
	}
	for _, rect := range r.view.Rectangles {
		addRect(rect.Bounds(), 0)
	}
	for _, vol := range r.view.Volumes {
		addRect(vol.Bounds(), volumeLift(vol))
	}
	for _, states := range []map[string]scene.ConnectorState{r.sc.Connectors, r.sc.Roads} {
		for _, s := range states {
			for _, tile := range s.Path.Tiles {
				addTile(tile)
			}
		}
	}
	for _, tb := range r.view.TextBoxes {
		b := scene.TextBoxTiles(tb, r.textBoxSize(tb))
		for _, corner := range b {
			addTile(corner)
		}
	}
	if first {
		addTile(geometry.Coords{})
	}
	return lo, hi
}

func (r *raster) textBoxSize(tb diagram.TextBox) geometry.TileSize {
	if s, ok := r.sc.TextBoxes[tb.ID]; ok {
		return s.Size
	}
	return scene.TextBoxSize(tb)
}

// footprint returns the outline of a tile area as the outer corners of
// its top, right, bottom and left tiles.
func footprint(b geometry.Rect) []geometry.Point {
	return []geometry.Point{
		geometry.TilePosition(b.Top(), geometry.OriginTop),
		geometry.TilePosition(b.Right(), geometry.OriginRight),
		geometry.TilePosition(b.Bottom(), geometry.OriginBottom),
		geometry.TilePosition(b.Left(), geometry.OriginLeft),
	}
}

func volumeLift(v diagram.Volume) float64 {
	return float64(v.Height) * geometry.ProjectedTileSize.Height
}

func labelOffset(vi diagram.ViewItem) float64 {
	return float64(vi.LabelHeight) + labelGap
}

func (r *raster) point(p geometry.Point) geometry.Point {
	return p.Mul(r.opts.Zoom).Add(r.offset)
}

func (r *raster) render() *gg.Context {
	dc := gg.NewContext(r.width, r.height)
	dc.SetHexColor(r.opts.Background)
	dc.Clear()
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	// Index 0 of each collection is on top, so draw back to front.
	for i := len(r.view.Rectangles) - 1; i >= 0; i-- {
		r.drawRectangle(dc, r.view.Rectangles[i])
	}
	for i := len(r.view.Volumes) - 1; i >= 0; i-- {
		r.drawVolume(dc, r.view.Volumes[i])
	}
	for i := len(r.view.Roads) - 1; i >= 0; i-- {
		road := r.view.Roads[i]
		r.drawLink(dc, road, r.sc.Roads[road.ID], true)
	}
	for i := len(r.view.Connectors) - 1; i >= 0; i-- {
		c := r.view.Connectors[i]
		r.drawLink(dc, c, r.sc.Connectors[c.ID], false)
	}

	items := append([]diagram.ViewItem(nil), r.view.Items...)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Tile.X+items[i].Tile.Y < items[j].Tile.X+items[j].Tile.Y
	})
	for _, vi := range items {
		r.drawItem(dc, vi)
	}
	for i := len(r.view.TextBoxes) - 1; i >= 0; i-- {
		r.drawTextBox(dc, r.view.TextBoxes[i])
	}
	return dc
}

func (r *raster) polygon(dc *gg.Context, pts []geometry.Point) {
	dc.NewSubPath()
	for i, p := range pts {
		p = r.point(p)
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
		} else {
			dc.LineTo(p.X, p.Y)
		}
	}
	dc.ClosePath()
}

// outline strokes the current path in style. StyleNone only clears it.
func (r *raster) outline(dc *gg.Context, style diagram.LineStyle, width float64) {
	if style == diagram.StyleNone {
		dc.ClearPath()
		return
	}
	dash(dc, style, width)
	dc.SetLineWidth(width)
	dc.SetRGBA(0, 0, 0, 0.6)
	dc.Stroke()
	dc.SetDash()
}

func dash(dc *gg.Context, style diagram.LineStyle, width float64) {
	switch style {
	case diagram.StyleDashed:
		dc.SetDash(width*4, width*2)
	case diagram.StyleDotted:
		dc.SetDash(width, width*2)
	default:
		dc.SetDash()
	}
}

func (r *raster) fill(dc *gg.Context, colorID string) {
	dc.SetHexColor(r.model.ColorOrDefault(colorID).Value)
}

func (r *raster) drawRectangle(dc *gg.Context, rect diagram.Rectangle) {
	r.polygon(dc, footprint(rect.Bounds()))
	r.fill(dc, rect.Color)
	dc.FillPreserve()
	r.outline(dc, rect.Style, math.Max(float64(rect.Width), 1)*r.opts.Zoom)
}

func (r *raster) drawVolume(dc *gg.Context, vol diagram.Volume) {
	base := footprint(vol.Bounds())
	up := geometry.Pt(0, volumeLift(vol))
	top := make([]geometry.Point, len(base))
	for i, p := range base {
		top[i] = p.Sub(up)
	}
	const right, bottom, left = 1, 2, 3

	faces := []struct {
		pts   []geometry.Point
		shade float64
	}{
		{[]geometry.Point{base[left], base[bottom], top[bottom], top[left]}, 0.15},
		{[]geometry.Point{base[bottom], base[right], top[right], top[bottom]}, 0.3},
		{top, 0},
	}
	width := math.Max(float64(vol.Width), 1) * r.opts.Zoom
	for _, f := range faces {
		r.polygon(dc, f.pts)
		r.fill(dc, vol.Color)
		dc.FillPreserve()
		if f.shade > 0 {
			dc.SetRGBA(0, 0, 0, f.shade)
			dc.FillPreserve()
		}
		r.outline(dc, vol.Style, width)
	}
}

func (r *raster) drawLink(dc *gg.Context, c diagram.Connector, state scene.ConnectorState, road bool) {
	if state.Path.Len() == 0 {
		return
	}
	width := float64(c.Width)
	if width <= 0 {
		width = defaultConnectorWidth
		if road {
			width = geometry.ProjectedTileSize.Height / 2
		}
	}
	width *= r.opts.Zoom

	dc.NewSubPath()
	for i, tile := range state.Path.Tiles {
		p := r.point(geometry.TilePosition(tile, geometry.OriginCenter))
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
		} else {
			dc.LineTo(p.X, p.Y)
		}
	}
	if road {
		dc.SetRGB(0.45, 0.45, 0.45)
	} else {
		r.fill(dc, c.Color)
	}
	dash(dc, c.Style, width)
	dc.SetLineWidth(width)
	dc.Stroke()
	dc.SetDash()
}

func (r *raster) drawItem(dc *gg.Context, vi diagram.ViewItem) {
	pts := make([]geometry.Point, 0, 4)
	for _, o := range []geometry.Origin{geometry.OriginTop, geometry.OriginRight, geometry.OriginBottom, geometry.OriginLeft} {
		pts = append(pts, geometry.TilePosition(vi.Tile, o))
	}
	r.polygon(dc, pts)
	r.fill(dc, vi.Color)
	dc.FillPreserve()
	r.outline(dc, diagram.StyleSolid, r.opts.Zoom*2)

	_, item, err := r.model.ModelItemByID(vi.ID)
	if err != nil || item.Name == "" {
		return
	}
	face, err := scene.Face(true, false, labelFontSize*r.opts.Zoom)
	if err != nil {
		logging.Logger().Warn("label font unavailable", "err", err)
		return
	}
	defer face.Close()
	dc.SetFontFace(face)
	dc.SetRGB(0.1, 0.1, 0.1)
	top := r.point(geometry.TilePosition(vi.Tile, geometry.OriginTop))
	dc.DrawStringAnchored(item.Name, top.X, top.Y-labelOffset(vi)*r.opts.Zoom, 0.5, 1)
}

func (r *raster) drawTextBox(dc *gg.Context, tb diagram.TextBox) {
	face, err := scene.Face(tb.IsBold, tb.IsItalic, tb.EffectiveFontSize()*geometry.UnprojectedTileSize*r.opts.Zoom)
	if err != nil {
		logging.Logger().Warn("text box font unavailable", "id", tb.ID, "err", err)
		return
	}
	defer face.Close()

	// Text runs along the tile axis it is oriented to.
	tile := geometry.ProjectedTileSize
	angle := math.Atan2(tile.Height, tile.Width)
	if tb.Orientation == diagram.OrientationY {
		angle = -angle
	}
	at := r.point(geometry.TilePosition(tb.Tile, geometry.OriginLeft))

	dc.Push()
	dc.RotateAbout(angle, at.X, at.Y)
	dc.SetFontFace(face)
	if tb.Color == "" {
		dc.SetRGB(0, 0, 0)
	} else {
		r.fill(dc, tb.Color)
	}
	dc.DrawStringAnchored(tb.Content, at.X, at.Y, 0, 0.5)
	dc.Pop()
}
