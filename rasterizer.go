package fontatlas

import (
	"fmt"
	"image"
	"image/draw"
	"math"
)

// PlacedGlyph is one glyph's placement inside a generated page bitmap.
type PlacedGlyph struct {
	Width  int
	Height int
	U      int
	V      int
}

// PageImage is the output of page generation: a packed RGBA bitmap plus
// per-rune placement metrics. The bitmap is white with glyph coverage in
// the alpha channel, so backends can tint it with vertex colors.
type PageImage struct {
	Image  *image.RGBA
	Glyphs map[rune]PlacedGlyph
}

// Rasterizer builds the packed bitmap and per-glyph metrics for a
// character range. It scans the sized fonts in order for each character
// and takes the first that covers it; when none does, the first font
// renders its missing-glyph representation. Implementations may take
// non-trivial time and must be safe to invoke from a background worker.
type Rasterizer interface {
	Generate(fonts []SizedFont, from, to rune, padding int) (*PageImage, error)
}

// gridRasterizer is the default Rasterizer. It lays the range out on a
// near-square grid of uniform cells sized to the largest glyph cell,
// with padding between cells and around the edge.
type gridRasterizer struct{}

// NewRasterizer returns the default rasterizer.
func NewRasterizer() Rasterizer {
	return gridRasterizer{}
}

// Generate implements Rasterizer.
func (gridRasterizer) Generate(fonts []SizedFont, from, to rune, padding int) (*PageImage, error) {
	if len(fonts) == 0 {
		return nil, ErrNoFonts
	}
	if to <= from {
		return nil, fmt.Errorf("fontatlas: invalid character range [%d, %d)", from, to)
	}

	count := int(to - from)
	masks := make([]*GlyphMask, count)
	maxW, maxH := 1, 1
	for i := 0; i < count; i++ {
		r := from + rune(i)
		m := fontFor(fonts, r).Rasterize(r)
		if m == nil {
			m = &GlyphMask{Mask: image.NewAlpha(image.Rect(0, 0, 1, 1)), Width: 1, Height: 1}
		}
		masks[i] = m
		maxW = max(maxW, m.Width)
		maxH = max(maxH, m.Height)
	}

	cols := int(math.Ceil(math.Sqrt(float64(count))))
	rows := (count + cols - 1) / cols
	cellW := maxW + padding
	cellH := maxH + padding
	imgW := padding + cols*cellW
	imgH := padding + rows*cellH

	img := image.NewRGBA(image.Rect(0, 0, imgW, imgH))
	glyphs := make(map[rune]PlacedGlyph, count)
	for i, m := range masks {
		u := padding + (i%cols)*cellW
		v := padding + (i/cols)*cellH
		dst := image.Rect(u, v, u+m.Width, v+m.Height)
		draw.DrawMask(img, dst, image.White, image.Point{}, m.Mask, m.Mask.Bounds().Min, draw.Over)
		glyphs[from+rune(i)] = PlacedGlyph{Width: m.Width, Height: m.Height, U: u, V: v}
	}

	return &PageImage{Image: img, Glyphs: glyphs}, nil
}

// fontFor returns the first font covering r, falling back to the first
// font so the missing-glyph representation always comes from somewhere.
func fontFor(fonts []SizedFont, r rune) SizedFont {
	for _, f := range fonts {
		if f.HasGlyph(r) {
			return f
		}
	}
	return fonts[0]
}
