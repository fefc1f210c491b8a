package scene

import (
	"fmt"
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"

	"isoedit/diagram"
	"isoedit/geometry"
)

// TextBoxPadding is the horizontal padding in pixels around text box
// content at zoom 1.
const TextBoxPadding = 0.2 * geometry.UnprojectedTileSize * 2

type fontSet struct {
	regular, bold, italic, boldItalic *truetype.Font
}

var (
	fontsOnce sync.Once
	fonts     fontSet
	fontsErr  error
)

func loadFonts() (fontSet, error) {
	fontsOnce.Do(func() {
		parse := func(name string, data []byte) *truetype.Font {
			if fontsErr != nil {
				return nil
			}
			f, err := truetype.Parse(data)
			if err != nil {
				fontsErr = fmt.Errorf("failed to parse %s font: %w", name, err)
			}
			return f
		}
		fonts = fontSet{
			regular:    parse("mono", gomono.TTF),
			bold:       parse("mono bold", gomonobold.TTF),
			italic:     parse("mono italic", gomonoitalic.TTF),
			boldItalic: parse("mono bold italic", gomonobolditalic.TTF),
		}
	})
	return fonts, fontsErr
}

// Face returns the font face a text box is drawn with at the given pixel
// size.
func Face(bold, italic bool, pixels float64) (font.Face, error) {
	fs, err := loadFonts()
	if err != nil {
		return nil, err
	}
	f := fs.regular
	switch {
	case bold && italic:
		f = fs.boldItalic
	case bold:
		f = fs.bold
	case italic:
		f = fs.italic
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    pixels,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// TextBoxSize measures a text box in tiles: its padded content width
// rounded up to whole tiles, by one tile.
func TextBoxSize(tb diagram.TextBox) geometry.TileSize {
	pixels := tb.EffectiveFontSize() * geometry.UnprojectedTileSize
	width := 0.0
	if face, err := Face(tb.IsBold, tb.IsItalic, pixels); err == nil {
		width = float64(font.MeasureString(face, tb.Content)) / 64
		face.Close()
	}
	tiles := int(math.Ceil((width + TextBoxPadding) / geometry.UnprojectedTileSize))
	return geometry.TileSize{Width: geometry.Max(tiles, 1), Height: 1}
}
