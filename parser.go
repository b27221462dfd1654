package cellterm

import "unicode/utf8"

// Parser is a byte-stream state machine that recognizes key presses,
// mouse events, focus reporting, bracketed paste, Kitty keyboard events,
// and capability replies. It holds no carry buffer of its own: callers
// (tty.go's reader loop) own the scratch buffer and re-present any
// unconsumed tail together with newly read bytes on the next call, so the
// only "state across calls" the parser keeps is the shared Capabilities
// pointer it upgrades as replies are recognized, the grapheme cache used
// to intern returned text, and the bracketed-paste flag below.
type Parser struct {
	caps      *Capabilities
	graphemes *graphemeCache

	// pasting tracks whether we're between a paste-start and paste-end
	// marker. Parsing does not change while it is set: control bytes and
	// escape sequences inside pasted text are reported as the same events
	// they produce outside a paste.
	pasting bool
}

// NewParser returns a Parser that upgrades caps as it recognizes
// capability replies and interns returned byte slices through cache.
func NewParser(caps *Capabilities, cache *graphemeCache) *Parser {
	return &Parser{caps: caps, graphemes: cache}
}

// Parse inspects buf (a window of not-yet-consumed input) and returns the
// number of bytes consumed plus, if a complete event was recognized, that
// event. A return of (0, Event{}, false) on a non-empty buffer means "not
// enough bytes yet to decide" — the caller must retain buf and append more
// bytes before calling again. A caller must never call Parse on an empty
// buffer.
func (p *Parser) Parse(buf []byte) (n int, ev Event, ok bool) {
	if len(buf) == 0 {
		return 0, ev, false
	}

	b0 := buf[0]

	if b0 == 0x1B {
		return p.parseEscape(buf)
	}

	if b0 < 0x20 || b0 == 0x7F {
		return p.parseControl(buf)
	}

	return p.parseUTF8(buf)
}

// ForceEscape is called by the reader loop once it has decided, via its
// own escape-timeout policy, that no continuation byte is coming for a
// lone trailing ESC. It must only be called with buf == []byte{0x1B}.
func (p *Parser) ForceEscape(buf []byte) (n int, ev Event, ok bool) {
	if len(buf) != 1 || buf[0] != 0x1B {
		return 0, ev, false
	}
	return 1, keyEvent(Key{Func: FuncKeyEsc}), true
}

func keyEvent(k Key) Event {
	return Event{Kind: EventKeyPress, Key: k}
}

func (p *Parser) parseUTF8(buf []byte) (int, Event, bool) {
	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size <= 1 {
		if !utf8.FullRune(buf) {
			// Could still become valid with more bytes; ask for more unless
			// the buffer is already maximal-length for a UTF-8 sequence.
			if len(buf) < utf8.UTFMax {
				return 0, Event{}, false
			}
		}
		// Genuinely invalid: emit U+FFFD and consume one byte so parsing
		// can't get stuck on a bad byte.
		return 1, keyEvent(Key{Codepoint: utf8.RuneError, Text: p.intern(buf[:1], utf8.RuneError)}), true
	}
	text := p.intern(buf[:size], r)
	if p.pasting {
		return size, keyEvent(Key{Codepoint: r, Text: text}), true
	}
	return size, keyEvent(Key{Codepoint: r, Text: text}), true
}

func (p *Parser) intern(b []byte, r rune) []byte {
	if r == utf8.RuneError {
		return []byte{0xEF, 0xBF, 0xBD}
	}
	if p.graphemes == nil {
		cp := make([]byte, len(b))
		copy(cp, b)
		return cp
	}
	return p.graphemes.Intern(b)
}

func (p *Parser) parseControl(buf []byte) (int, Event, bool) {
	switch buf[0] {
	case '\r':
		return 1, keyEvent(Key{Func: FuncKeyEnter, Codepoint: '\r'}), true
	case '\t':
		return 1, keyEvent(Key{Func: FuncKeyTab, Codepoint: '\t'}), true
	case 0x7F:
		return 1, keyEvent(Key{Func: FuncKeyBackspace, Codepoint: 0x7F}), true
	default:
		// C0 control: ctrl-<letter>. Reported as its literal codepoint with
		// ModCtrl set; translating this to an application-level shortcut
		// (e.g. ctrl-j == Enter) is explicitly left to the application.
		return 1, keyEvent(Key{Codepoint: rune(buf[0]) + 'a' - 1, Modifiers: ModCtrl}), true
	}
}

func (p *Parser) parseEscape(buf []byte) (int, Event, bool) {
	if len(buf) == 1 {
		// Incomplete: could be a lone ESC (the reader's timeout policy
		// decides) or the start of a sequence. Ask for more.
		return 0, Event{}, false
	}
	switch buf[1] {
	case '[':
		return p.parseCSI(buf)
	case 'O':
		return p.parseSS3(buf)
	case 'P':
		return p.parseDCS(buf)
	case ']':
		return p.parseOSC(buf)
	default:
		// Alt+<key>: ESC followed by one literal byte means that key was
		// pressed with Alt held.
		n, ev, ok := p.Parse(buf[1:])
		if !ok {
			return 0, Event{}, false
		}
		ev.Key.Modifiers |= ModAlt
		return n + 1, ev, true
	}
}

func (p *Parser) parseDCS(buf []byte) (int, Event, bool) {
	// DCS ... ST (ESC \). We don't act on any DCS payload; just consume it
	// so it doesn't jam the state machine.
	for i := 2; i+1 < len(buf); i++ {
		if buf[i] == 0x1B && buf[i+1] == '\\' {
			return i + 2, Event{}, false
		}
	}
	return 0, Event{}, false
}

func isCSIFinal(b byte) bool { return b >= 0x40 && b <= 0x7E }

// parseCSIParams splits the parameter bytes of a CSI sequence (everything
// between the optional '?'/'<'/'>' prefix and the final byte) on ';' into
// integers, defaulting missing/empty fields to 0.
func parseCSIParams(s string) []int {
	if s == "" {
		return nil
	}
	out := make([]int, 0, 4)
	cur := 0
	has := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			cur = cur*10 + int(c-'0')
			has = true
		case c == ';' || c == ':':
			out = append(out, cur)
			cur, has = 0, false
		default:
			// Sub-parameters or unexpected bytes: ignore the rest of this
			// field's decoration but keep scanning.
		}
	}
	if has || len(out) == 0 {
		out = append(out, cur)
	}
	return out
}

// csiModifiers decodes the common "1 + bitmask" modifier encoding used by
// xterm-style CSI sequences (e.g. CSI 1;5A == ctrl-Up).
func csiModifiers(param int) Modifier {
	if param <= 1 {
		return 0
	}
	bits := param - 1
	var m Modifier
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&2 != 0 {
		m |= ModAlt
	}
	if bits&4 != 0 {
		m |= ModCtrl
	}
	if bits&8 != 0 {
		m |= ModSuper
	}
	return m
}
