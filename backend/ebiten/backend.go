// Package ebiten adapts Ebitengine as a quad-rendering backend.
//
// Glyph pages become ebiten images and each submitted batch turns into
// one DrawTriangles call on the current target:
//
//	be := ebiten.New()
//	r, _ := fontatlas.NewRenderer(be, sources, 16)
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//	    be.SetTarget(screen)
//	    r.DrawText(render.Identity(), "hello", 10, 10, white)
//	}
package ebiten

import (
	"errors"
	"image"

	eb "github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/fontatlas/render"
	"github.com/gogpu/gputypes"
)

var (
	ErrNoTarget       = errors.New("ebiten: no target image set")
	ErrNoBoundTexture = errors.New("ebiten: no texture bound")
	ErrForeignBatch   = errors.New("ebiten: batch built by a different backend")
)

// Backend renders quad batches onto an ebiten image. Set the draw
// target each frame with SetTarget before issuing draws.
//
// Backend is confined to the game loop goroutine, like the ebiten
// images it wraps.
type Backend struct {
	target *eb.Image
	bound  *texture
}

func New() *Backend {
	return &Backend{}
}

// SetTarget sets the image subsequent batches draw onto, typically the
// screen passed to the game's Draw method.
func (b *Backend) SetTarget(img *eb.Image) {
	b.target = img
}

func (b *Backend) CreateTexture(img *image.RGBA) (render.Texture, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	tex := eb.NewImage(w, h)

	// WritePixels wants a tightly packed buffer starting at the
	// origin; repack when the source has padding rows or an offset.
	pix := img.Pix
	if img.Stride != 4*w || bounds.Min != (image.Point{}) {
		pix = make([]byte, 4*w*h)
		for y := 0; y < h; y++ {
			row := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(pix[4*w*y:4*w*(y+1)], img.Pix[row:row+4*w])
		}
	}
	tex.WritePixels(pix)
	return &texture{img: tex}, nil
}

func (b *Backend) BindTexture(tex render.Texture) {
	t, ok := tex.(*texture)
	if !ok {
		b.bound = nil
		return
	}
	b.bound = t
}

// BuildQuadBatch converts quad vertices to ebiten's vertex layout.
// Source coordinates come from the bound texture, so the matching
// BindTexture call must precede the build.
func (b *Backend) BuildQuadBatch(verts []render.Vertex) (render.Batch, error) {
	if b.bound == nil {
		return nil, ErrNoBoundTexture
	}
	tw := float32(b.bound.img.Bounds().Dx())
	th := float32(b.bound.img.Bounds().Dy())

	ev := make([]eb.Vertex, len(verts))
	for i, v := range verts {
		ev[i] = eb.Vertex{
			DstX: v.X, DstY: v.Y,
			SrcX: v.U * tw, SrcY: v.V * th,
			ColorR: v.R, ColorG: v.G, ColorB: v.B, ColorA: v.A,
		}
	}

	quads := len(verts) / 4
	ix := make([]uint16, 0, quads*6)
	for q := 0; q < quads; q++ {
		base := uint16(q * 4)
		ix = append(ix, base, base+1, base+2, base, base+2, base+3)
	}
	return &batch{owner: b, tex: b.bound, verts: ev, indices: ix}, nil
}

func (b *Backend) Submit(bat render.Batch) error {
	if b.target == nil {
		return ErrNoTarget
	}
	qb, ok := bat.(*batch)
	if !ok || qb.owner != b {
		return ErrForeignBatch
	}
	if qb.tex.img == nil {
		return nil
	}
	b.target.DrawTriangles(qb.verts, qb.indices, qb.tex.img, &eb.DrawTrianglesOptions{})
	return nil
}

type texture struct {
	img *eb.Image
}

func (t *texture) Width() int  { return t.img.Bounds().Dx() }
func (t *texture) Height() int { return t.img.Bounds().Dy() }

func (t *texture) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

func (t *texture) Destroy() {
	if t.img != nil {
		t.img.Deallocate()
		t.img = nil
	}
}

type batch struct {
	owner   *Backend
	tex     *texture
	verts   []eb.Vertex
	indices []uint16
}

func (b *batch) Len() int { return len(b.verts) }

var (
	_ render.Backend = (*Backend)(nil)
	_ render.Texture = (*texture)(nil)
	_ render.Batch   = (*batch)(nil)
)
