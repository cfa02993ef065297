package fontatlas

import (
	"fmt"
	"math"

	"github.com/gogpu/fontatlas/render"
)

// floorNearestMulN rounds x down to the nearest multiple of n.
func floorNearestMulN(x, n int) int {
	return n * int(math.Floor(float64(x)/float64(n)))
}

// locate resolves the glyph for c, generating the owning page on a
// cache miss. It never fails: characters no source covers resolve to
// the rasterizer's missing-glyph representation.
func (r *Renderer) locate(c rune) Glyph {
	r.mu.RLock()
	for _, p := range r.pages { // go over existing pages
		if p.Contains(c) {
			g := p.Glyph(c)
			r.mu.RUnlock()
			return g
		}
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.locateLocked(c)
}

// locateLocked is the generation path. The caller must hold the write
// lock; the prebake task drives this directly for its whole run.
func (r *Renderer) locateLocked(c rune) Glyph {
	// Re-scan under the write lock: another goroutine may have
	// generated the page between our read unlock and write lock.
	for _, p := range r.pages {
		if p.Contains(c) {
			return p.Glyph(c)
		}
	}

	base := floorNearestMulN(int(c), r.charsPerPage)
	page := r.generatePageLocked(rune(base), rune(base+r.charsPerPage))
	return page.Glyph(c)
}

// generatePageLocked builds the page for [from, to), uploads its
// texture, and appends it to the cache. Failures are logged and
// produce an empty page so lookups still succeed.
func (r *Renderer) generatePageLocked(from, to rune) *AtlasPage {
	img, err := r.rasterizer.Generate(r.fonts, from, to, r.padding)
	if err != nil {
		Logger().Warn("fontatlas: page generation failed",
			"from", int(from), "to", int(to), "err", err)
		img = &PageImage{Glyphs: map[rune]PlacedGlyph{}}
	}

	var tex render.Texture
	if img.Image != nil {
		tex, err = r.backend.CreateTexture(img.Image)
		if err != nil {
			Logger().Warn("fontatlas: texture creation failed",
				"from", int(from), "to", int(to), "err", err)
			tex = nil
		}
	}
	if tex != nil && r.effects != nil {
		// Post-effect chains must not redraw glyph pages.
		r.effects.AddFakeTarget(fmt.Sprintf("fontatlas/page/%d", int(from)), tex)
	}

	page := newAtlasPage(from, to, img, tex)
	r.pages = append(r.pages, page)
	Logger().Debug("fontatlas: generated glyph page",
		"from", int(from), "to", int(to), "chars", int(to-from))
	return page
}

// PageCount returns the number of atlas pages currently cached.
func (r *Renderer) PageCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pages)
}
