package fontatlas

import (
	"image"
	"sync"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/fontatlas/render"
)

func init() {
	RegisterParser("fake", fakeParser{})
}

// fakeParser produces deterministic synthetic glyphs without real font
// data, so the cache and layout paths can be tested in isolation. The
// font data bytes become the family name; "noname" yields an empty one.
type fakeParser struct{}

func (fakeParser) Parse(data []byte) (ParsedFont, error) {
	name := string(data)
	if name == "noname" {
		name = ""
	}
	return &fakeFont{name: name}, nil
}

type fakeFont struct {
	name    string
	missing map[rune]bool
}

func (f *fakeFont) Name() string    { return f.name }
func (f *fakeFont) UnitsPerEm() int { return 1000 }

func (f *fakeFont) GlyphIndex(r rune) uint16 {
	if f.missing[r] {
		return 0
	}
	return uint16(r)
}

func (f *fakeFont) Metrics(sizePx float64) FontMetrics {
	return FontMetrics{Ascent: sizePx * 0.75, Descent: sizePx * 0.25}
}

func (f *fakeFont) RasterizeGlyph(r rune, sizePx float64) *GlyphMask {
	w := fakeGlyphWidth(r, sizePx)
	h := int(sizePx)
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	for i := range mask.Pix {
		mask.Pix[i] = 0xFF
	}
	return &GlyphMask{Mask: mask, Width: w, Height: h}
}

// fakeGlyphWidth is the advance the fake font gives r, varied slightly
// per rune so width sums catch glyphs drawn out of order.
func fakeGlyphWidth(r rune, sizePx float64) int {
	return int(sizePx)/2 + int(r%3)
}

func newFakeSource(t *testing.T, name string) *FontSource {
	t.Helper()
	s, err := NewFontSource([]byte(name), WithParser("fake"))
	if err != nil {
		t.Fatalf("NewFontSource: %v", err)
	}
	return s
}

// countingRasterizer wraps a Rasterizer and records every Generate
// call, so tests can assert how many pages were built and for which
// ranges.
type countingRasterizer struct {
	inner Rasterizer

	mu     sync.Mutex
	calls  int
	ranges [][2]rune
}

func newCountingRasterizer() *countingRasterizer {
	return &countingRasterizer{inner: NewRasterizer()}
}

func (c *countingRasterizer) Generate(fonts []SizedFont, from, to rune, padding int) (*PageImage, error) {
	c.mu.Lock()
	c.calls++
	c.ranges = append(c.ranges, [2]rune{from, to})
	c.mu.Unlock()
	return c.inner.Generate(fonts, from, to, padding)
}

func (c *countingRasterizer) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// recordingBackend captures every texture, bind and batch it receives.
type recordingBackend struct {
	mu       sync.Mutex
	textures []*recordedTexture
	binds    []render.Texture
	batches  [][]render.Vertex
}

func (b *recordingBackend) CreateTexture(img *image.RGBA) (render.Texture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	tex := &recordedTexture{w: img.Bounds().Dx(), h: img.Bounds().Dy()}
	b.textures = append(b.textures, tex)
	return tex, nil
}

func (b *recordingBackend) BindTexture(tex render.Texture) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.binds = append(b.binds, tex)
}

func (b *recordingBackend) BuildQuadBatch(verts []render.Vertex) (render.Batch, error) {
	vs := make([]render.Vertex, len(verts))
	copy(vs, verts)
	return &recordedBatch{verts: vs}, nil
}

func (b *recordingBackend) Submit(batch render.Batch) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.batches = append(b.batches, batch.(*recordedBatch).verts)
	return nil
}

func (b *recordingBackend) submissions() [][]render.Vertex {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.batches
}

type recordedTexture struct {
	w, h      int
	destroyed bool
}

func (t *recordedTexture) Width() int  { return t.w }
func (t *recordedTexture) Height() int { return t.h }

func (t *recordedTexture) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

func (t *recordedTexture) Destroy() { t.destroyed = true }

type recordedBatch struct {
	verts []render.Vertex
}

func (b *recordedBatch) Len() int { return len(b.verts) }

var (
	_ render.Backend = (*recordingBackend)(nil)
	_ render.Texture = (*recordedTexture)(nil)
	_ Rasterizer     = (*countingRasterizer)(nil)
	_ FontParser     = fakeParser{}
	_ ParsedFont     = (*fakeFont)(nil)
)

// newTestRenderer builds a renderer over the fake font, the recording
// backend and the counting rasterizer, with any extra options applied
// on top.
func newTestRenderer(t *testing.T, opts ...Option) (*Renderer, *recordingBackend, *countingRasterizer) {
	t.Helper()
	be := &recordingBackend{}
	cr := newCountingRasterizer()
	src := newFakeSource(t, "Fake Sans")

	all := append([]Option{WithRasterizer(cr)}, opts...)
	r, err := NewRenderer(be, []*FontSource{src}, 16, all...)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	t.Cleanup(r.Close)
	return r, be, cr
}
