package render

import (
	"image"

	"github.com/gogpu/gputypes"
)

// Texture represents one GPU texture resource, created from an atlas
// page bitmap.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() int

	// Height returns the texture height in pixels.
	Height() int

	// Format returns the texture pixel format.
	Format() gputypes.TextureFormat

	// Destroy releases GPU resources associated with this texture.
	Destroy()
}

// Vertex is one corner of a glyph quad: final position, normalized
// texture coordinates, and premultiplied-range [0,1] RGBA color.
type Vertex struct {
	X, Y       float32
	U, V       float32
	R, G, B, A float32
}

// Batch is an opaque handle to built quad geometry, produced by
// BuildQuadBatch and consumed by exactly one Submit.
type Batch interface {
	// Len returns the number of vertices in the batch.
	Len() int
}

// Backend consumes the draw batcher's per-atlas vertex lists.
//
// The contract is deliberately small: upload a bitmap once per page
// (CreateTexture), then per draw call and per touched page — bind the
// page texture, build one quad batch (four vertices per glyph, in
// order bottom-left, bottom-right, top-right, top-left), and submit it.
type Backend interface {
	// CreateTexture uploads an atlas page bitmap.
	CreateTexture(img *image.RGBA) (Texture, error)

	// BindTexture selects the texture subsequent batches sample from.
	BindTexture(tex Texture)

	// BuildQuadBatch builds geometry for the given vertices, which the
	// caller must supply in groups of four.
	BuildQuadBatch(verts []Vertex) (Batch, error)

	// Submit draws a built batch with the currently bound texture.
	Submit(batch Batch) error
}

// Transform is a 2D affine transform:
//
//	x' = A*x + B*y + Tx
//	y' = C*x + D*y + Ty
type Transform struct {
	A, B, Tx float64
	C, D, Ty float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{A: 1, D: 1}
}

// Translate returns a translation transform.
func Translate(x, y float64) Transform {
	return Transform{A: 1, D: 1, Tx: x, Ty: y}
}

// Scale returns a scaling transform.
func Scale(sx, sy float64) Transform {
	return Transform{A: sx, D: sy}
}

// Mul composes transforms: the returned transform applies o first,
// then t.
func (t Transform) Mul(o Transform) Transform {
	return Transform{
		A:  t.A*o.A + t.B*o.C,
		B:  t.A*o.B + t.B*o.D,
		Tx: t.A*o.Tx + t.B*o.Ty + t.Tx,
		C:  t.C*o.A + t.D*o.C,
		D:  t.C*o.B + t.D*o.D,
		Ty: t.C*o.Tx + t.D*o.Ty + t.Ty,
	}
}

// Apply transforms a point.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.B*y + t.Tx, t.C*x + t.D*y + t.Ty
}
