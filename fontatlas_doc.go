// Package fontatlas provides a glyph-atlas caching and text-batching engine.
//
// # Overview
//
// fontatlas lazily rasterizes characters into fixed-size texture pages,
// caches those pages, lays out multi-line colored text with inline `§`
// control codes, and batches the resulting glyph quads by atlas page so
// that one draw call touches each page texture at most once.
//
// # Quick start
//
//	source, err := fontatlas.NewFontSourceFromFile("Roboto-Regular.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	backend := render.NewSoftwareBackend(800, 600)
//	r, err := fontatlas.NewRenderer(backend, []*fontatlas.FontSource{source}, 16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	r.DrawText(render.Identity(), "§aHello\n§cWorld", 10, 10, color.RGBA{255, 255, 255, 255})
//
// # Performance
//
// Glyph pages are computed lazily on first use, to keep memory usage low
// until needed. Generating a page for a large font takes a considerable
// amount of time; for big sizes it is recommended to decrease the number
// of characters per page (see [WithCharsPerPage]), trading more pages in
// total for a shorter stall on each first miss. Characters that should be
// available immediately can be prebaked on a background worker with
// [WithPrebake].
//
// # Backends
//
// The GPU boundary is the [render.Backend] interface. The render package
// ships a CPU compositing backend for tests and headless use; a real GPU
// backend over Ebitengine lives in backend/ebiten.
package fontatlas
