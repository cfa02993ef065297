package fontatlas

import (
	"github.com/gogpu/fontatlas/render"
	"github.com/gogpu/fontatlas/task"
)

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := fontatlas.NewRenderer(backend, sources, 16,
//	    fontatlas.WithCharsPerPage(128),
//	    fontatlas.WithPrebake("0123456789"),
//	)
type Option func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	charsPerPage int
	padding      int
	prebake      string
	scale        ScaleProvider
	rasterizer   Rasterizer
	effects      render.EffectChain
	pool         *task.Pool
}

// defaultRendererOptions returns the default renderer options.
func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		charsPerPage: 256,
		padding:      5,
		scale:        FixedScale(1),
		rasterizer:   NewRasterizer(),
	}
}

// WithCharsPerPage sets how many characters one atlas page covers.
// Default 256. Page size is a memory/latency trade-off: larger pages
// amortize generation over more characters but cost more memory and a
// longer stall on the first miss. Must be greater than 4.
func WithCharsPerPage(n int) Option {
	return func(o *rendererOptions) {
		o.charsPerPage = n
	}
}

// WithPadding sets the padding between glyph cells on a page, in
// pixels. Default 5. Increase it for fonts whose characters carry a lot
// of decoration around the main body. Must be positive.
func WithPadding(px int) Option {
	return func(o *rendererOptions) {
		o.padding = px
	}
}

// WithPrebake sets the characters whose pages are generated on a
// background worker at initialization, so they are (most of the time)
// immediately available when drawing.
func WithPrebake(chars string) Option {
	return func(o *rendererOptions) {
		o.prebake = chars
	}
}

// WithScaleProvider sets the display-scale source polled before each
// draw or measurement. Default is a fixed scale of 1.
func WithScaleProvider(p ScaleProvider) Option {
	return func(o *rendererOptions) {
		if p != nil {
			o.scale = p
		}
	}
}

// WithTaskPool sets the worker pool that runs prebake tasks. Default
// is the shared pool from [task.Default]. Callers that manage their
// own pool lifecycle pass it here and call its Shutdown themselves.
func WithTaskPool(p *task.Pool) Option {
	return func(o *rendererOptions) {
		if p != nil {
			o.pool = p
		}
	}
}

// WithEffectChain registers every page texture as a fake target on the
// host's post-processing chain as it is created. Post-effect passes
// that redraw registered targets then leave glyph pages alone instead
// of distorting them.
func WithEffectChain(chain render.EffectChain) Option {
	return func(o *rendererOptions) {
		o.effects = chain
	}
}

// WithRasterizer sets a custom page rasterizer.
// Use this for dependency injection of instrumented or alternative
// rasterizers; the default packs glyph cells on a uniform grid.
func WithRasterizer(ra Rasterizer) Option {
	return func(o *rendererOptions) {
		if ra != nil {
			o.rasterizer = ra
		}
	}
}
