package cellterm

import (
	"strconv"

	"github.com/muesli/termenv"
)

// parseCSI handles buf starting at "ESC [". It dispatches to the mouse
// parser when the sequence is SGR (ESC [ <) or legacy (ESC [ M), and
// otherwise parses function/arrow/paste/focus/kitty-keyboard/DA sequences.
func (p *Parser) parseCSI(buf []byte) (int, Event, bool) {
	if len(buf) < 3 {
		return 0, Event{}, false
	}

	switch buf[2] {
	case '<':
		return p.parseSGRMouse(buf)
	case 'M':
		return p.parseLegacyMouse(buf)
	case 'I':
		return 3, Event{Kind: EventFocusIn}, true
	case 'O':
		return 3, Event{Kind: EventFocusOut}, true
	}

	// Scan for the final byte (0x40-0x7E) terminating the sequence.
	end := -1
	prefix := byte(0)
	start := 2
	if buf[2] == '?' || buf[2] == '>' || buf[2] == '=' {
		prefix = buf[2]
		start = 3
	}
	for i := start; i < len(buf); i++ {
		if isCSIFinal(buf[i]) {
			end = i
			break
		}
	}
	if end == -1 {
		if len(buf) > 64 {
			// Runaway/garbage sequence: bail out rather than stalling
			// forever waiting for a final byte that will never arrive.
			return len(buf), Event{}, false
		}
		return 0, Event{}, false
	}

	paramStr := string(buf[start:end])
	final := buf[end]
	n := end + 1

	switch {
	case prefix == '?' && final == 'c':
		return p.handleDA1(paramStr, n)
	case prefix == '>' && final == 'c':
		return n, Event{}, false // DA2: consumed, no application-visible event
	case prefix == '?' && final == 'u':
		p.caps.ApplyKittyKeyboardReply(firstParam(paramStr))
		return n, Event{}, false
	case prefix == 0 && final == '~':
		return p.handleTilde(paramStr, n)
	case prefix == 0:
		return p.handleLetterFinal(paramStr, final, n)
	}
	return n, Event{}, false
}

func firstParam(s string) int {
	params := parseCSIParams(s)
	if len(params) == 0 {
		return 0
	}
	return params[0]
}

func (p *Parser) handleDA1(paramStr string, n int) (int, Event, bool) {
	p.caps.ApplyDA1(parseCSIParams(paramStr))
	return n, Event{}, false
}

// handleTilde covers CSI <n> ~ sequences: bracketed paste markers and the
// vt220-style function/navigation keys.
func (p *Parser) handleTilde(paramStr string, n int) (int, Event, bool) {
	params := parseCSIParams(paramStr)
	if len(params) == 0 {
		return n, Event{}, false
	}
	code := params[0]
	var mods Modifier
	if len(params) > 1 {
		mods = csiModifiers(params[1])
	}

	switch code {
	case 200:
		p.pasting = true
		return n, Event{Kind: EventPasteStart}, true
	case 201:
		p.pasting = false
		return n, Event{Kind: EventPasteEnd}, true
	}

	var fk FuncKey
	switch code {
	case 1, 7:
		fk = FuncKeyHome
	case 2:
		fk = FuncKeyInsert
	case 3:
		fk = FuncKeyDelete
	case 4, 8:
		fk = FuncKeyEnd
	case 5:
		fk = FuncKeyPageUp
	case 6:
		fk = FuncKeyPageDown
	case 11:
		fk = FuncKeyF1
	case 12:
		fk = FuncKeyF2
	case 13:
		fk = FuncKeyF3
	case 14:
		fk = FuncKeyF4
	case 15:
		fk = FuncKeyF5
	case 17:
		fk = FuncKeyF6
	case 18:
		fk = FuncKeyF7
	case 19:
		fk = FuncKeyF8
	case 20:
		fk = FuncKeyF9
	case 21:
		fk = FuncKeyF10
	case 23:
		fk = FuncKeyF11
	case 24:
		fk = FuncKeyF12
	default:
		return n, Event{}, false
	}
	return n, keyEvent(Key{Func: fk, Modifiers: mods}), true
}

// handleLetterFinal covers CSI [params] <letter> sequences: arrows and
// Home/End in their letter-final form.
func (p *Parser) handleLetterFinal(paramStr string, final byte, n int) (int, Event, bool) {
	params := parseCSIParams(paramStr)
	var mods Modifier
	if len(params) > 1 {
		mods = csiModifiers(params[1])
	}

	var fk FuncKey
	switch final {
	case 'A':
		fk = FuncKeyUp
	case 'B':
		fk = FuncKeyDown
	case 'C':
		fk = FuncKeyRight
	case 'D':
		fk = FuncKeyLeft
	case 'H':
		fk = FuncKeyHome
	case 'F':
		fk = FuncKeyEnd
	case 'u':
		// Kitty keyboard protocol "functional/unicode" event: CSI
		// codepoint;modifiers[:event-type] u. Release events (event-type
		// == 3) are reported with IsRelease set.
		return p.handleKittyUnicode(paramStr, n)
	default:
		return n, Event{}, false
	}
	return n, keyEvent(Key{Func: fk, Modifiers: mods}), true
}

func (p *Parser) handleKittyUnicode(paramStr string, n int) (int, Event, bool) {
	fields := splitSemicolons(paramStr)
	if len(fields) == 0 || fields[0] == "" {
		return n, Event{}, false
	}
	cp, err := strconv.Atoi(firstColonField(fields[0]))
	if err != nil {
		return n, Event{}, false
	}
	var mods Modifier
	isRelease := false
	if len(fields) > 1 {
		modField := splitColons(fields[1])
		if len(modField) > 0 {
			if v, err := strconv.Atoi(modField[0]); err == nil {
				mods = csiModifiers(v)
			}
		}
		if len(modField) > 1 && modField[1] == "3" {
			isRelease = true
		}
	}
	return n, keyEvent(Key{Codepoint: rune(cp), Modifiers: mods, IsRelease: isRelease}), true
}

func splitSemicolons(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ';' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func splitColons(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func firstColonField(s string) string {
	fields := splitColons(s)
	if len(fields) == 0 {
		return s
	}
	return fields[0]
}

// parseSS3 handles "ESC O <letter>" — an alternate encoding some terminals
// use for arrows and F1-F4 when not in application cursor-key mode.
func (p *Parser) parseSS3(buf []byte) (int, Event, bool) {
	if len(buf) < 3 {
		return 0, Event{}, false
	}
	var fk FuncKey
	switch buf[2] {
	case 'A':
		fk = FuncKeyUp
	case 'B':
		fk = FuncKeyDown
	case 'C':
		fk = FuncKeyRight
	case 'D':
		fk = FuncKeyLeft
	case 'H':
		fk = FuncKeyHome
	case 'F':
		fk = FuncKeyEnd
	case 'P':
		fk = FuncKeyF1
	case 'Q':
		fk = FuncKeyF2
	case 'R':
		fk = FuncKeyF3
	case 'S':
		fk = FuncKeyF4
	default:
		return 3, Event{}, false
	}
	return 3, keyEvent(Key{Func: fk}), true
}

// parseOSC handles "ESC ] ... (BEL | ESC \\)": color query replies and
// other OSC responses we don't otherwise act on.
func (p *Parser) parseOSC(buf []byte) (int, Event, bool) {
	end := -1
	termLen := 0
	for i := 2; i < len(buf); i++ {
		if buf[i] == 0x07 {
			end, termLen = i, 1
			break
		}
		if buf[i] == 0x1B && i+1 < len(buf) && buf[i+1] == '\\' {
			end, termLen = i, 2
			break
		}
	}
	if end == -1 {
		if len(buf) > 512 {
			return len(buf), Event{}, false
		}
		return 0, Event{}, false
	}
	payload := string(buf[2:end])
	n := end + termLen

	if kind, c, ok := parseOSCColorReport(payload); ok {
		p.caps.ApplyColorReport(kind, c)
	}
	return n, Event{}, false
}

// parseOSCColorReport recognizes an OSC 10/11/12 color query reply in the
// form "<code>;rgb:rrrr/gggg/bbbb" and resolves it to a Color. Parsing the
// hex components is this toolkit's own job (a fixed, tiny format); handing
// the resolved "#rrggbb" string to termenv.RGBColor reuses its color.Color
// conversion rather than hand-rolling channel scaling a second time.
func parseOSCColorReport(payload string) (kind ColorKind, c Color, ok bool) {
	if len(payload) < 3 || payload[2] != ';' {
		return 0, Color{}, false
	}
	var rest string
	switch {
	case len(payload) > 3 && payload[:3] == "10;":
		rest = payload[3:]
		kind = ColorForeground
	case len(payload) > 3 && payload[:3] == "11;":
		rest = payload[3:]
		kind = ColorBackground
	case len(payload) > 3 && payload[:3] == "12;":
		rest = payload[3:]
		kind = ColorCursor
	default:
		return 0, Color{}, false
	}

	if len(rest) < 4 || rest[:4] != "rgb:" {
		return 0, Color{}, false
	}
	parts := splitSlashes(rest[4:])
	if len(parts) != 3 {
		return 0, Color{}, false
	}
	hex := "#" + shortenHexComponent(parts[0]) + shortenHexComponent(parts[1]) + shortenHexComponent(parts[2])
	rgba := termenv.RGBColor(hex)
	r, g, b, _ := rgba.RGBA()
	return kind, RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8)), true
}

func splitSlashes(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

// shortenHexComponent takes a terminal color-report component (2 or 4 hex
// digits) and returns its high byte as 2 hex digits.
func shortenHexComponent(s string) string {
	if len(s) >= 2 {
		return s[:2]
	}
	if len(s) == 1 {
		return s + s
	}
	return "00"
}
