package render

import (
	"errors"
	"image"
	"image/draw"
	"sync"

	"github.com/gogpu/gputypes"
)

// Sentinel errors for the software backend.
var (
	// ErrNoBoundTexture is returned when Submit runs without a bound texture.
	ErrNoBoundTexture = errors.New("render: no texture bound")

	// ErrTextureDestroyed is returned when a destroyed texture is used.
	ErrTextureDestroyed = errors.New("render: texture already destroyed")

	// ErrForeignBatch is returned when Submit receives a batch built by
	// a different backend.
	ErrForeignBatch = errors.New("render: batch was not built by this backend")
)

// SoftwareBackend is a CPU implementation of Backend. It composites
// glyph quads into an RGBA pixmap with source-over blending, sampling
// page textures with nearest-neighbor lookup.
//
// Quads are assumed axis-aligned, which is what the draw batcher emits
// for translation and scale transforms. SoftwareBackend is safe for
// concurrent use.
type SoftwareBackend struct {
	mu sync.Mutex

	target *image.RGBA
	bound  *softwareTexture

	submissions int
	binds       int
}

// NewSoftwareBackend creates a software backend rendering into a fresh
// pixmap of the given dimensions.
func NewSoftwareBackend(width, height int) *SoftwareBackend {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &SoftwareBackend{
		target: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Image returns the pixmap the backend renders into. The returned image
// shares memory with the backend.
func (b *SoftwareBackend) Image() *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.target
}

// Clear resets every pixel of the target to transparent black.
func (b *SoftwareBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.target.Pix)
}

// Submissions returns the number of batches submitted so far.
func (b *SoftwareBackend) Submissions() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.submissions
}

// Binds returns the number of BindTexture calls so far.
func (b *SoftwareBackend) Binds() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.binds
}

// CreateTexture implements Backend.CreateTexture.
// The bitmap is copied, so the caller may reuse it.
func (b *SoftwareBackend) CreateTexture(img *image.RGBA) (Texture, error) {
	cp := image.NewRGBA(img.Bounds())
	draw.Draw(cp, cp.Bounds(), img, img.Bounds().Min, draw.Src)
	return &softwareTexture{img: cp}, nil
}

// BindTexture implements Backend.BindTexture.
func (b *SoftwareBackend) BindTexture(tex Texture) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.binds++
	st, _ := tex.(*softwareTexture)
	b.bound = st
}

// BuildQuadBatch implements Backend.BuildQuadBatch.
func (b *SoftwareBackend) BuildQuadBatch(verts []Vertex) (Batch, error) {
	cp := make([]Vertex, len(verts))
	copy(cp, verts)
	return &softwareBatch{owner: b, verts: cp}, nil
}

// Submit implements Backend.Submit.
func (b *SoftwareBackend) Submit(batch Batch) error {
	sb, ok := batch.(*softwareBatch)
	if !ok || sb.owner != b {
		return ErrForeignBatch
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	tex := b.bound
	if tex == nil {
		return ErrNoBoundTexture
	}
	if tex.destroyed {
		return ErrTextureDestroyed
	}

	for i := 0; i+3 < len(sb.verts); i += 4 {
		b.fillQuad(tex, sb.verts[i:i+4])
	}
	b.submissions++
	return nil
}

// fillQuad composites one axis-aligned quad. Color and alpha are taken
// from the first vertex; the batcher emits uniform colors per quad.
func (b *SoftwareBackend) fillQuad(tex *softwareTexture, q []Vertex) {
	minX, maxX := q[0].X, q[0].X
	minY, maxY := q[0].Y, q[0].Y
	minU, maxU := q[0].U, q[0].U
	minV, maxV := q[0].V, q[0].V
	for _, v := range q[1:] {
		minX, maxX = min(minX, v.X), max(maxX, v.X)
		minY, maxY = min(minY, v.Y), max(maxY, v.Y)
		minU, maxU = min(minU, v.U), max(maxU, v.U)
		minV, maxV = min(minV, v.V), max(maxV, v.V)
	}
	if maxX <= minX || maxY <= minY {
		return
	}

	bounds := b.target.Bounds()
	x0 := max(int(minX), bounds.Min.X)
	y0 := max(int(minY), bounds.Min.Y)
	x1 := min(int(maxX+0.5), bounds.Max.X)
	y1 := min(int(maxY+0.5), bounds.Max.Y)

	tw := float32(tex.img.Bounds().Dx())
	th := float32(tex.img.Bounds().Dy())
	cr, cg, cb, ca := q[0].R, q[0].G, q[0].B, q[0].A

	for py := y0; py < y1; py++ {
		fy := (float32(py) + 0.5 - minY) / (maxY - minY)
		tv := int((minV + (maxV-minV)*fy) * th)
		for px := x0; px < x1; px++ {
			fx := (float32(px) + 0.5 - minX) / (maxX - minX)
			tu := int((minU + (maxU-minU)*fx) * tw)

			_, _, _, ta := tex.img.RGBAAt(tu, tv).RGBA()
			cov := float32(ta>>8) / 255
			alpha := cov * ca
			if alpha <= 0 {
				continue
			}
			blendPixel(b.target, px, py, cr, cg, cb, alpha)
		}
	}
}

// blendPixel source-over blends one pixel with a straight-alpha color.
func blendPixel(dst *image.RGBA, x, y int, r, g, b, a float32) {
	i := dst.PixOffset(x, y)
	p := dst.Pix[i : i+4 : i+4]
	inv := 1 - a
	p[0] = uint8(r*a*255 + float32(p[0])*inv)
	p[1] = uint8(g*a*255 + float32(p[1])*inv)
	p[2] = uint8(b*a*255 + float32(p[2])*inv)
	p[3] = uint8(a*255 + float32(p[3])*inv)
}

// softwareTexture is a CPU-resident Texture.
type softwareTexture struct {
	img       *image.RGBA
	destroyed bool
}

// Width implements Texture.Width.
func (t *softwareTexture) Width() int { return t.img.Bounds().Dx() }

// Height implements Texture.Height.
func (t *softwareTexture) Height() int { return t.img.Bounds().Dy() }

// Format implements Texture.Format.
func (t *softwareTexture) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Destroy implements Texture.Destroy.
func (t *softwareTexture) Destroy() {
	t.destroyed = true
}

// softwareBatch holds built quad vertices.
type softwareBatch struct {
	owner *SoftwareBackend
	verts []Vertex
}

// Len implements Batch.Len.
func (s *softwareBatch) Len() int { return len(s.verts) }

// Ensure interface compliance.
var (
	_ Backend = (*SoftwareBackend)(nil)
	_ Texture = (*softwareTexture)(nil)
	_ Batch   = (*softwareBatch)(nil)
)
