package fontatlas

import (
	"sync"

	"github.com/gogpu/fontatlas/render"
)

// drawBatcher groups glyph instructions by the texture of their owning
// page, so each page costs one draw submission regardless of how many
// glyphs it contributes. The grouping state is transient: it is
// cleared after every flush, success or not.
type drawBatcher struct {
	mu     sync.Mutex
	groups map[render.Texture][]drawInstruction
	order  []render.Texture
}

func newDrawBatcher() *drawBatcher {
	return &drawBatcher{groups: make(map[render.Texture][]drawInstruction)}
}

// flush builds and submits one quad batch per texture. Backend
// failures are logged and swallowed: a dropped batch loses one frame
// of text, which is preferable to failing the draw call.
func (b *drawBatcher) flush(backend render.Backend, t render.Transform, alpha float32, instrs []drawInstruction) {
	b.mu.Lock()
	defer b.mu.Unlock()
	defer b.clearLocked()

	for _, in := range instrs {
		tex := in.glyph.Page().Texture()
		if tex == nil {
			continue
		}
		if _, seen := b.groups[tex]; !seen {
			b.order = append(b.order, tex)
		}
		b.groups[tex] = append(b.groups[tex], in)
	}

	for _, tex := range b.order {
		group := b.groups[tex]
		backend.BindTexture(tex)
		verts := make([]render.Vertex, 0, len(group)*4)
		for _, in := range group {
			verts = appendQuad(verts, t, alpha, in)
		}
		batch, err := backend.BuildQuadBatch(verts)
		if err != nil {
			Logger().Warn("fontatlas: quad batch build failed", "quads", len(group), "err", err)
			continue
		}
		if err := backend.Submit(batch); err != nil {
			Logger().Warn("fontatlas: batch submission failed", "quads", len(group), "err", err)
		}
	}
}

func (b *drawBatcher) clearLocked() {
	clear(b.groups)
	b.order = b.order[:0]
}

// appendQuad emits the four corners of one glyph quad in the order
// bottom-left, bottom-right, top-right, top-left. Texture coordinates
// are normalized by the page dimensions and vertically flipped so the
// top-left origin of the page image maps onto the bottom-up V axis.
func appendQuad(verts []render.Vertex, t render.Transform, alpha float32, in drawInstruction) []render.Vertex {
	g := in.glyph
	pw, ph := g.Page().Size()
	w, h := float32(g.Width), float32(g.Height)
	u1 := float32(g.U) / float32(pw)
	v1 := float32(g.V) / float32(ph)
	u2 := (float32(g.U) + w) / float32(pw)
	v2 := (float32(g.V) + h) / float32(ph)

	corner := func(dx, dy, u, v float32) render.Vertex {
		x, y := t.Apply(float64(in.x+dx), float64(in.y+dy))
		return render.Vertex{
			X: float32(x), Y: float32(y),
			U: u, V: v,
			R: in.r, G: in.g, B: in.b, A: alpha,
		}
	}
	return append(verts,
		corner(0, h, u1, v2),
		corner(w, h, u2, v2),
		corner(w, 0, u2, v1),
		corner(0, 0, u1, v1),
	)
}
