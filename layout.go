package fontatlas

// drawInstruction positions one glyph with an active color for the
// duration of a single draw call.
type drawInstruction struct {
	x, y    float32
	r, g, b float32
	glyph   Glyph
}

// layout walks text left to right, interpreting control escapes and
// newlines, and produces the positioned, colored glyph instructions
// for one draw call. Positions are in texture pixels relative to the
// draw origin; the batcher applies the caller transform.
func (rd *Renderer) layout(text string, base [3]float32) []drawInstruction {
	cr, cg, cb := base[0], base[1], base[2]
	ar, ag, ab := cr, cg, cb // active color; survives line breaks
	var out []drawInstruction
	var xOff, yOff float32
	mul := float32(rd.currentScaleMul())

	runes := []rune(text)
	lineStart := 0
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch c {
		case ControlMarker:
			if i+1 >= len(runes) {
				continue
			}
			i++
			code := runes[i]
			if r2, g2, b2, ok := paletteColor(code); ok {
				ar, ag, ab = r2, g2, b2
			} else if isResetCode(code) {
				ar, ag, ab = cr, cg, cb
			}
			// unrecognized codes are accepted silently
		case '\n':
			yOff += float32(rd.measureHeight(string(runes[lineStart:i]))) * mul
			xOff = 0
			lineStart = i + 1
		default:
			g := rd.locate(c)
			// Blank glyphs only advance the cursor; nothing to draw.
			if g.Rune != ' ' && g.page != nil {
				out = append(out, drawInstruction{x: xOff, y: yOff, r: ar, g: ag, b: ab, glyph: g})
			}
			xOff += float32(g.Width)
		}
	}
	return out
}

// measureWidth computes the drawn width of text: the maximum over
// lines of the per-line glyph width sum, normalized by the display
// scale multiplier. Control codes contribute no width.
func (r *Renderer) measureWidth(text string) float64 {
	mul := r.currentScaleMul()
	var currentLine, maxPreviousLines float64
	for _, c := range StripControlCodes(text) {
		if c == '\n' {
			maxPreviousLines = max(currentLine, maxPreviousLines)
			currentLine = 0
			continue
		}
		g := r.locate(c)
		currentLine += float64(g.Width) / mul
	}
	return max(currentLine, maxPreviousLines)
}

// measureHeight computes the drawn height of text: the sum over lines
// of the per-line maximum glyph height, normalized by the display
// scale multiplier. An empty line counts as the height of the space
// glyph, and so does the empty string.
func (r *Renderer) measureHeight(text string) float64 {
	runes := []rune(StripControlCodes(text))
	if len(runes) == 0 {
		runes = []rune{' '}
	}
	mul := r.currentScaleMul()
	var currentLine, previous float64
	for _, c := range runes {
		if c == '\n' {
			if currentLine == 0 {
				// empty line, assume space
				currentLine = float64(r.locate(' ').Height) / mul
			}
			previous += currentLine
			currentLine = 0
			continue
		}
		g := r.locate(c)
		currentLine = max(float64(g.Height)/mul, currentLine)
	}
	return currentLine + previous
}
