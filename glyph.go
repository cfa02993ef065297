package fontatlas

import "github.com/gogpu/fontatlas/render"

// Glyph is the placement of one character within its atlas page: pixel
// dimensions, the top-left offset inside the page bitmap, and a
// back-reference to the owning page used to resolve the texture and
// normalize UVs at draw time.
type Glyph struct {
	// Rune is the character this glyph renders.
	Rune rune

	// Width and Height are the glyph cell dimensions in pixels.
	Width  int
	Height int

	// U and V are the top-left offset within the owning page bitmap.
	U int
	V int

	page *AtlasPage
}

// Page returns the atlas page that owns this glyph.
func (g Glyph) Page() *AtlasPage {
	return g.page
}

// AtlasPage is one texture holding rasterized glyphs for a fixed,
// aligned character range. Pages are immutable after generation and are
// destroyed only on full teardown.
type AtlasPage struct {
	from rune // inclusive
	to   rune // exclusive

	width  int
	height int

	texture render.Texture
	glyphs  map[rune]Glyph
}

// newAtlasPage builds a page from a rasterized page image and its
// uploaded texture. tex may be nil when texture creation failed; such a
// page still satisfies lookups but produces no draw instructions.
func newAtlasPage(from, to rune, img *PageImage, tex render.Texture) *AtlasPage {
	p := &AtlasPage{
		from:    from,
		to:      to,
		texture: tex,
		glyphs:  make(map[rune]Glyph, len(img.Glyphs)),
	}
	if img.Image != nil {
		p.width = img.Image.Bounds().Dx()
		p.height = img.Image.Bounds().Dy()
	}
	for r, pg := range img.Glyphs {
		p.glyphs[r] = Glyph{
			Rune:   r,
			Width:  pg.Width,
			Height: pg.Height,
			U:      pg.U,
			V:      pg.V,
			page:   p,
		}
	}
	return p
}

// Contains reports whether r falls in the page's half-open range.
func (p *AtlasPage) Contains(r rune) bool {
	return r >= p.from && r < p.to
}

// Glyph returns the glyph for r. The zero Glyph is returned for
// characters outside the page range.
func (p *AtlasPage) Glyph(r rune) Glyph {
	return p.glyphs[r]
}

// Range returns the half-open character range [from, to) of the page.
func (p *AtlasPage) Range() (from, to rune) {
	return p.from, p.to
}

// Texture returns the GPU texture backing this page, or nil if texture
// creation failed during generation.
func (p *AtlasPage) Texture() render.Texture {
	return p.texture
}

// Size returns the page bitmap dimensions in pixels.
func (p *AtlasPage) Size() (w, h int) {
	return p.width, p.height
}

// destroy releases the page texture. Called with the renderer write
// lock held.
func (p *AtlasPage) destroy() {
	if p.texture != nil {
		p.texture.Destroy()
		p.texture = nil
	}
}
