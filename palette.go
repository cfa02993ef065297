package fontatlas

import "unicode"

// ControlMarker introduces a two-character inline escape. The marker and
// the character following it contribute no width and produce no glyphs.
const ControlMarker = '§'

// paletteRGB maps the 16 palette codes to packed 0xRRGGBB values.
// Codes are stored uppercase; lookups go through unicode.ToUpper.
// The map is built once at process start and never mutated.
var paletteRGB = map[rune]uint32{
	'0': 0x000000,
	'1': 0x0000AA,
	'2': 0x00AA00,
	'3': 0x00AAAA,
	'4': 0xAA0000,
	'5': 0xAA00AA,
	'6': 0xFFAA00,
	'7': 0xAAAAAA,
	'8': 0x555555,
	'9': 0x5555FF,
	'A': 0x55FF55,
	'B': 0x55FFFF,
	'C': 0xFF5555,
	'D': 0xFF55FF,
	'E': 0xFFFF55,
	'F': 0xFFFFFF,
}

// paletteColor resolves a palette code (case-insensitive) to normalized
// RGB components. ok is false for unrecognized codes, including 'R',
// which callers handle separately as the reset code.
func paletteColor(code rune) (r, g, b float32, ok bool) {
	packed, ok := paletteRGB[unicode.ToUpper(code)]
	if !ok {
		return 0, 0, 0, false
	}
	r = float32(packed>>16&0xFF) / 255
	g = float32(packed>>8&0xFF) / 255
	b = float32(packed&0xFF) / 255
	return r, g, b, true
}

// isResetCode reports whether code resets the active color to the
// caller-supplied base color.
func isResetCode(code rune) bool {
	return code == 'r' || code == 'R'
}

// StripControlCodes removes every control marker together with the
// character following it. It is a pure function: no glyph lookups, no
// renderer state.
func StripControlCodes(text string) string {
	runes := []rune(text)
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		if runes[i] == ControlMarker {
			i++ // the escaped character is consumed too
			continue
		}
		out = append(out, runes[i])
	}
	return string(out)
}
