package fontatlas

import (
	"image"
	"image/color"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// FontParser is an interface for font parsing backends.
// This abstraction allows swapping the font parsing library
// (e.g., golang.org/x/image/font/opentype vs github.com/golang/freetype).
//
// The default implementation uses golang.org/x/image/font/opentype.
type FontParser interface {
	// Parse parses font data (TTF or OTF) and returns a ParsedFont.
	Parse(data []byte) (ParsedFont, error)
}

// ParsedFont represents a parsed font file.
// This interface abstracts the underlying font representation.
type ParsedFont interface {
	// Name returns the font family name.
	// Returns empty string if not available.
	Name() string

	// UnitsPerEm returns the units per em for the font.
	UnitsPerEm() int

	// GlyphIndex returns the glyph index for a rune.
	// Returns 0 if the glyph is not found.
	GlyphIndex(r rune) uint16

	// Metrics returns the font metrics at the given pixel size.
	Metrics(sizePx float64) FontMetrics

	// RasterizeGlyph renders the glyph cell for r at the given pixel
	// size. The cell spans the glyph advance horizontally and
	// ascent+descent vertically, with the baseline built in. Fonts that
	// do not cover r render their missing-glyph representation, so the
	// result is never nil for a well-formed font.
	RasterizeGlyph(r rune, sizePx float64) *GlyphMask
}

// FontMetrics holds font-level metrics at a specific pixel size.
type FontMetrics struct {
	// Ascent is the distance from the baseline to the top of the font (positive).
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font
	// (positive, below baseline).
	Descent float64

	// LineGap is the recommended gap between lines.
	LineGap float64
}

// Height returns the total line height (ascent + descent + line gap).
func (m FontMetrics) Height() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// GlyphMask is one rasterized glyph cell: an alpha mask whose dimensions
// are the glyph advance by the font's ascent+descent.
type GlyphMask struct {
	// Mask is the alpha coverage for the cell.
	Mask *image.Alpha

	// Width is the cell width in pixels (the horizontal advance).
	Width int

	// Height is the cell height in pixels.
	Height int
}

// parserRegistry holds registered font parsers.
// The default parser is "ximage" (golang.org/x/image).
var parserRegistry = map[string]FontParser{
	"ximage":   &ximageParser{},
	"freetype": &freetypeParser{},
}

// defaultParserName is the name of the default parser.
const defaultParserName = "ximage"

// RegisterParser registers a custom font parser.
// This allows users to provide their own parsing implementation.
func RegisterParser(name string, parser FontParser) {
	parserRegistry[name] = parser
}

// getParser returns the parser by name, or the default if not found.
func getParser(name string) FontParser {
	if p, ok := parserRegistry[name]; ok {
		return p
	}
	return parserRegistry[defaultParserName]
}

// rasterizeCell draws the glyph cell for r using an x/image font.Face.
// Both shipped parser backends produce font.Face values, so they share
// this path. The cell is the advance wide and ascent+descent tall; the
// pen starts on the baseline so decorations above the ascent clip rather
// than shift neighbouring cells.
func rasterizeCell(face xfont.Face, r rune) *GlyphMask {
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()

	adv26, _ := face.GlyphAdvance(r)
	adv := (int(adv26) + 63) / 64
	if adv < 1 {
		adv = 1
	}
	h := ascent + descent
	if h < 1 {
		h = 1
	}

	mask := image.NewAlpha(image.Rect(0, 0, adv, h))
	d := &xfont.Drawer{
		Dst:  mask,
		Src:  image.NewUniform(color.Alpha{A: 255}),
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(string(r))

	return &GlyphMask{Mask: mask, Width: adv, Height: h}
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
