package fontatlas

import (
	"image/color"
	"sync"

	"github.com/gogpu/fontatlas/render"
	"github.com/gogpu/fontatlas/task"
)

// ScaleProvider reports the current display scale factor. The renderer
// polls it before draws and measurements and rebuilds its atlas when
// the value changes, so glyphs stay sharp on scaled displays.
type ScaleProvider interface {
	Scale() int
}

type fixedScale int

func (s fixedScale) Scale() int { return int(s) }

// FixedScale returns a ScaleProvider that always reports scale.
func FixedScale(scale int) ScaleProvider {
	return fixedScale(scale)
}

// Renderer draws text by caching rasterized glyph pages as textures
// and batching glyph quads per texture. Pages are generated lazily on
// first use; an optional prebake set is generated eagerly on a
// background worker.
//
// Renderer is safe for concurrent use. Close a renderer that is no
// longer needed to release its textures; a closed renderer remains
// usable and regenerates pages on demand.
type Renderer struct {
	mu sync.RWMutex

	backend    render.Backend
	rasterizer Rasterizer
	scale      ScaleProvider
	effects    render.EffectChain
	pool       *task.Pool

	sources      []*FontSource
	sizePx       float64
	charsPerPage int
	padding      int
	prebake      string

	fonts       []SizedFont
	pages       []*AtlasPage
	scaleMul    int
	prevScale   int
	initialized bool

	// prebakeTask has its own lock: the prebake worker holds mu for
	// its entire run, and Close must be able to reach the handle to
	// cancel it without blocking on mu first.
	taskMu      sync.Mutex
	prebakeTask *task.Handle

	batch *drawBatcher
}

// NewRenderer creates a renderer drawing through backend with the
// given font sources at sizePx pixels. Sources are consulted in order;
// the first one covering a character wins. The returned renderer is
// initialized and, if a prebake set was configured, already baking.
func NewRenderer(backend render.Backend, sources []*FontSource, sizePx float64, opts ...Option) (*Renderer, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}
	if len(sources) == 0 {
		return nil, ErrNoFonts
	}
	if sizePx <= 0 {
		return nil, ErrInvalidSize
	}
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.charsPerPage <= 4 {
		return nil, ErrInvalidPageSize
	}
	if o.padding <= 0 {
		return nil, ErrInvalidPadding
	}
	if o.pool == nil {
		o.pool = task.Default()
	}

	r := &Renderer{
		backend:      backend,
		rasterizer:   o.rasterizer,
		scale:        o.scale,
		effects:      o.effects,
		pool:         o.pool,
		sources:      sources,
		sizePx:       sizePx,
		charsPerPage: o.charsPerPage,
		padding:      o.padding,
		prebake:      o.prebake,
		prevScale:    -1,
		batch:        newDrawBatcher(),
	}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

// Init derives the scaled fonts from the current display scale and
// starts the prebake task, if one is configured. NewRenderer calls it;
// call it again only after Close, to re-initialize eagerly instead of
// on the next draw. Returns ErrAlreadyInitialized on a live renderer.
func (r *Renderer) Init() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.initialized {
		return ErrAlreadyInitialized
	}
	return r.initLocked()
}

func (r *Renderer) initLocked() error {
	scale := r.scale.Scale()
	r.prevScale = scale
	r.scaleMul = max(scale, 1)

	r.fonts = make([]SizedFont, len(r.sources))
	for i, s := range r.sources {
		r.fonts[i] = SizedFont{Source: s, SizePx: r.sizePx * float64(r.scaleMul)}
	}
	r.initialized = true
	Logger().Debug("fontatlas: renderer initialized",
		"fonts", len(r.fonts), "sizePx", r.sizePx, "scale", r.scaleMul)

	if r.prebake != "" {
		r.taskMu.Lock()
		r.prebakeTask = r.pool.Submit(r.runPrebake)
		r.taskMu.Unlock()
	}
	return nil
}

// sizeCheck polls the display scale and rebuilds the atlas if it
// changed since the last initialization. Cached pages rasterized for
// the old scale would draw blurry at the new one.
func (r *Renderer) sizeCheck() {
	scale := r.scale.Scale()

	r.mu.RLock()
	prev := r.prevScale
	r.mu.RUnlock()
	if scale == prev {
		return
	}

	Logger().Debug("fontatlas: display scale changed", "from", prev, "to", scale)
	r.Close()
	if err := r.Init(); err != nil {
		// Only possible if another goroutine re-initialized in the
		// window after Close; its init already covers the new scale.
		Logger().Debug("fontatlas: concurrent reinitialization", "err", err)
	}
}

// DrawText draws text at (x, y) under transform t in the given color.
// The color's alpha applies to the whole string; palette control codes
// embedded in the text override the red, green and blue channels until
// reset. The first call joins a pending prebake task.
func (r *Renderer) DrawText(t render.Transform, text string, x, y float64, c color.RGBA) {
	r.waitPrebake()
	r.sizeCheck()

	mul := r.currentScaleMul()
	// Glyphs are rasterized at scale times the requested size; scale
	// the quads back down so text renders at the requested size with
	// glyph detail matching the display density.
	local := t.
		Mul(render.Translate(x, y)).
		Mul(render.Scale(1/mul, 1/mul))

	base := [3]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
	}
	instrs := r.layout(text, base)
	r.batch.flush(r.backend, local, float32(c.A)/255, instrs)
}

// DrawCenteredText draws text horizontally centered on x.
func (r *Renderer) DrawCenteredText(t render.Transform, text string, x, y float64, c color.RGBA) {
	r.DrawText(t, text, x-r.MeasureWidth(text)/2, y, c)
}

// MeasureWidth returns the width text would occupy when drawn, in the
// same units as draw coordinates. Multi-line text measures as its
// widest line.
func (r *Renderer) MeasureWidth(text string) float64 {
	r.sizeCheck()
	return r.measureWidth(text)
}

// MeasureHeight returns the height text would occupy when drawn, in
// the same units as draw coordinates. The empty string measures as one
// space-high line.
func (r *Renderer) MeasureHeight(text string) float64 {
	r.sizeCheck()
	return r.measureHeight(text)
}

// Close cancels a pending prebake task, destroys all page textures and
// drops the cache. The renderer stays usable: the next draw finds no
// pages and regenerates what it needs, and an explicit Init restores
// eager prebaking.
func (r *Renderer) Close() {
	// Join the prebake first. It holds the write lock while running,
	// so taking the lock before cancelling would wait out the entire
	// bake instead of stopping it.
	r.taskMu.Lock()
	t := r.prebakeTask
	r.prebakeTask = nil
	r.taskMu.Unlock()
	if t != nil && !t.Done() {
		t.Cancel()
		if err := t.Wait(); err != nil {
			Logger().Debug("fontatlas: prebake stopped", "err", err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pages {
		p.destroy()
	}
	r.pages = nil
	r.initialized = false
	Logger().Debug("fontatlas: renderer closed")
}

func (r *Renderer) currentScaleMul() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.scaleMul < 1 {
		return 1
	}
	return float64(r.scaleMul)
}
