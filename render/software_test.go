package render

import (
	"errors"
	"image"
	"testing"
)

// solidPage builds a w x h white RGBA bitmap with full alpha, the shape
// atlas page bitmaps have.
func solidPage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	return img
}

// fullQuad covers [x0,x1)x[y0,y1) sampling the whole texture, in the
// batcher's corner order.
func fullQuad(x0, y0, x1, y1 float32, r, g, b, a float32) []Vertex {
	return []Vertex{
		{X: x0, Y: y1, U: 0, V: 1, R: r, G: g, B: b, A: a},
		{X: x1, Y: y1, U: 1, V: 1, R: r, G: g, B: b, A: a},
		{X: x1, Y: y0, U: 1, V: 0, R: r, G: g, B: b, A: a},
		{X: x0, Y: y0, U: 0, V: 0, R: r, G: g, B: b, A: a},
	}
}

func TestSoftwareBackendDrawsQuad(t *testing.T) {
	b := NewSoftwareBackend(8, 8)
	tex, err := b.CreateTexture(solidPage(4, 4))
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}

	b.BindTexture(tex)
	batch, err := b.BuildQuadBatch(fullQuad(2, 2, 6, 6, 1, 0, 0, 1))
	if err != nil {
		t.Fatalf("BuildQuadBatch: %v", err)
	}
	if batch.Len() != 4 {
		t.Errorf("batch.Len() = %d, want 4", batch.Len())
	}
	if err := b.Submit(batch); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	img := b.Image()
	if r, _, _, a := img.At(4, 4).RGBA(); r == 0 || a == 0 {
		t.Error("covered pixel left blank")
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("pixel outside the quad was touched")
	}

	if b.Submissions() != 1 || b.Binds() != 1 {
		t.Errorf("counters = %d submissions, %d binds, want 1/1", b.Submissions(), b.Binds())
	}
}

func TestSoftwareBackendTextureCopies(t *testing.T) {
	b := NewSoftwareBackend(4, 4)
	src := solidPage(2, 2)
	tex, _ := b.CreateTexture(src)
	src.Pix[3] = 0 // clear alpha of the first pixel

	st := tex.(*softwareTexture)
	if st.img.Pix[3] != 0xFF {
		t.Error("texture shares memory with the source bitmap")
	}
}

func TestSoftwareBackendSubmitErrors(t *testing.T) {
	b := NewSoftwareBackend(4, 4)
	batch, _ := b.BuildQuadBatch(fullQuad(0, 0, 4, 4, 1, 1, 1, 1))

	if err := b.Submit(batch); !errors.Is(err, ErrNoBoundTexture) {
		t.Errorf("submit without bind: err = %v, want ErrNoBoundTexture", err)
	}

	tex, _ := b.CreateTexture(solidPage(2, 2))
	b.BindTexture(tex)
	tex.Destroy()
	if err := b.Submit(batch); !errors.Is(err, ErrTextureDestroyed) {
		t.Errorf("submit on destroyed texture: err = %v, want ErrTextureDestroyed", err)
	}

	other := NewSoftwareBackend(4, 4)
	foreign, _ := other.BuildQuadBatch(fullQuad(0, 0, 4, 4, 1, 1, 1, 1))
	if err := b.Submit(foreign); !errors.Is(err, ErrForeignBatch) {
		t.Errorf("submit foreign batch: err = %v, want ErrForeignBatch", err)
	}
}

func TestSoftwareBackendAlphaBlends(t *testing.T) {
	b := NewSoftwareBackend(4, 4)
	tex, _ := b.CreateTexture(solidPage(2, 2))
	b.BindTexture(tex)

	batch, _ := b.BuildQuadBatch(fullQuad(0, 0, 4, 4, 1, 1, 1, 0.5))
	if err := b.Submit(batch); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	_, _, _, a := b.Image().At(1, 1).RGBA()
	got := int(a >> 8)
	if got < 120 || got > 135 {
		t.Errorf("half-alpha quad produced alpha %d, want about 127", got)
	}
}

func TestSoftwareBackendClear(t *testing.T) {
	b := NewSoftwareBackend(4, 4)
	tex, _ := b.CreateTexture(solidPage(2, 2))
	b.BindTexture(tex)
	batch, _ := b.BuildQuadBatch(fullQuad(0, 0, 4, 4, 1, 1, 1, 1))
	_ = b.Submit(batch)

	b.Clear()
	for i, p := range b.Image().Pix {
		if p != 0 {
			t.Fatalf("pixel byte %d not cleared", i)
		}
	}
}
