package fontatlas

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	xfont "golang.org/x/image/font"
)

// freetypeParser implements FontParser using github.com/golang/freetype.
// Registered as "freetype"; select it with WithParser("freetype").
type freetypeParser struct{}

// Parse implements FontParser.Parse.
func (p *freetypeParser) Parse(data []byte) (ParsedFont, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fontatlas: failed to parse font: %w", err)
	}
	return &freetypeParsedFont{font: f}, nil
}

// freetypeParsedFont implements ParsedFont using truetype.Font.
type freetypeParsedFont struct {
	font *truetype.Font
}

// Name implements ParsedFont.Name.
func (f *freetypeParsedFont) Name() string {
	return f.font.Name(truetype.NameIDFontFamily)
}

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *freetypeParsedFont) UnitsPerEm() int {
	return int(f.font.FUnitsPerEm())
}

// GlyphIndex implements ParsedFont.GlyphIndex.
func (f *freetypeParsedFont) GlyphIndex(r rune) uint16 {
	return uint16(f.font.Index(r))
}

// Metrics implements ParsedFont.Metrics.
func (f *freetypeParsedFont) Metrics(sizePx float64) FontMetrics {
	face := f.newFace(sizePx)
	defer func() {
		_ = face.Close()
	}()

	metrics := face.Metrics()
	ascent := fixedToFloat64(metrics.Ascent)
	descent := fixedToFloat64(metrics.Descent)
	return FontMetrics{
		Ascent:  ascent,
		Descent: descent,
		LineGap: fixedToFloat64(metrics.Height) - ascent - descent,
	}
}

// RasterizeGlyph implements ParsedFont.RasterizeGlyph.
func (f *freetypeParsedFont) RasterizeGlyph(r rune, sizePx float64) *GlyphMask {
	face := f.newFace(sizePx)
	defer func() {
		_ = face.Close()
	}()

	return rasterizeCell(face, r)
}

func (f *freetypeParsedFont) newFace(sizePx float64) xfont.Face {
	return truetype.NewFace(f.font, &truetype.Options{
		Size:    sizePx,
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
}
