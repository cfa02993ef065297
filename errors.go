package fontatlas

import "errors"

// Sentinel errors for the fontatlas package.
var (
	// ErrNoFonts is returned when the font source list is empty.
	ErrNoFonts = errors.New("fontatlas: font source list is empty")

	// ErrInvalidSize is returned when the nominal pixel size is not positive.
	ErrInvalidSize = errors.New("fontatlas: sizePx must be positive")

	// ErrInvalidPageSize is returned when charsPerPage is unreasonably small.
	ErrInvalidPageSize = errors.New("fontatlas: charsPerPage must be greater than 4")

	// ErrInvalidPadding is returned when the inter-glyph padding is not positive.
	ErrInvalidPadding = errors.New("fontatlas: padding must be positive")

	// ErrNilBackend is returned when no graphics backend is provided.
	ErrNilBackend = errors.New("fontatlas: backend must not be nil")

	// ErrAlreadyInitialized is returned by Init on an initialized renderer.
	ErrAlreadyInitialized = errors.New("fontatlas: renderer already initialized")

	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("fontatlas: empty font data")
)
