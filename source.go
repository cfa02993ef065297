package fontatlas

import (
	"fmt"
	"os"
)

// FontSource represents a loaded font file.
// A renderer takes an ordered list of sources; each source is asked, in
// order, whether it covers a character, and the first one that does
// supplies the glyph. FontSource is heavyweight and should be shared
// across the application.
//
// FontSource is safe for concurrent use after creation.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection.
	// It must point to the FontSource itself.
	addr *FontSource

	data   []byte
	parsed ParsedFont

	name string
}

// SourceOption configures a FontSource during creation.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	parserName string
}

func defaultSourceConfig() sourceConfig {
	return sourceConfig{parserName: defaultParserName}
}

// WithParser selects the font parsing backend by registry name.
// Unknown names fall back to the default backend.
func WithParser(name string) SourceOption {
	return func(c *sourceConfig) {
		c.parserName = name
	}
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	parser := getParser(config.parserName)
	parsed, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	s := &FontSource{
		data:   dataCopy,
		parsed: parsed,
	}
	s.addr = s // self-reference for copy detection
	s.name = parsed.Name()
	if s.name == "" {
		s.name = "Unknown Font"
	}

	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fontatlas: failed to read font file: %w", err)
	}

	return NewFontSource(data, opts...)
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// Parsed returns the parsed font for advanced operations.
func (s *FontSource) Parsed() ParsedFont {
	s.copyCheck()
	return s.parsed
}

// Close releases the font data held by the FontSource.
// Renderers built from this source become invalid after Close.
func (s *FontSource) Close() error {
	s.copyCheck()
	s.data = nil
	s.parsed = nil
	return nil
}

// copyCheck panics if FontSource was copied by value.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("fontatlas: FontSource must not be copied by value")
	}
}

// SizedFont is a FontSource pinned to a concrete pixel size. The
// renderer derives one per source at init time, scaled to
// sizePx × displayScale, and hands the ordered list to the rasterizer.
type SizedFont struct {
	Source *FontSource
	SizePx float64
}

// HasGlyph reports whether the underlying font covers r.
func (f SizedFont) HasGlyph(r rune) bool {
	return f.Source.Parsed().GlyphIndex(r) != 0
}

// Rasterize renders the glyph cell for r at this font's size.
func (f SizedFont) Rasterize(r rune) *GlyphMask {
	return f.Source.Parsed().RasterizeGlyph(r, f.SizePx)
}

// Metrics returns the font metrics at this font's size.
func (f SizedFont) Metrics() FontMetrics {
	return f.Source.Parsed().Metrics(f.SizePx)
}
