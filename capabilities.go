package cellterm

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/xo/terminfo"
)

// Capabilities is the terminal feature set the renderer and parser consult.
// It is seeded once, statically, from $TERM/$COLORTERM before any reply can
// have arrived, then progressively upgraded as DA1/DA2 and OSC replies are
// parsed. Reads from the UI thread are advisory: a frame may render with a
// slightly stale guess, which is harmless since the next frame picks up the
// correction.
type Capabilities struct {
	TrueColor          bool
	SynchronizedUpdate bool
	KittyKeyboard      bool
	KittyGraphics      bool
	BracketedPaste     bool
	FocusReporting     bool
	SGRMouse           bool
	SGRPixelMouse      bool
	Hyperlinks         bool

	WidthMethod WidthMethod

	// Foreground/Background/CursorColor hold the terminal's reported colors
	// once an OSC 10/11/12 query round-trips; zero value means unreported.
	Foreground  Color
	Background  Color
	CursorColor Color

	// capabilityReplyReceived records whether ApplyWidthMethodReply has
	// ever upgraded WidthMethod (DA1, DA2 and OSC color replies do not set
	// it), so a later static re-probe never clobbers
	// a confirmed answer — the open question of static-guess vs. live-reply
	// precedence resolves in favor of whichever reply arrived, permanently.
	capabilityReplyReceived bool
}

// SeedCapabilities builds an initial guess from $TERM (via a terminfo
// catalog lookup) and $COLORTERM/stdout probing (via colorprofile), with no
// capability reply yet received. Call this once, before Init.
func SeedCapabilities() *Capabilities {
	c := &Capabilities{WidthMethod: WidthWcwidth}

	if ti, err := terminfo.LoadFromEnv(); err == nil {
		c.SGRMouse = ti.Strings[terminfo.KeyMouse] != ""
	}

	profile := colorprofile.Detect(os.Stdout, os.Environ())
	switch profile {
	case colorprofile.TrueColor:
		c.TrueColor = true
	case colorprofile.ANSI256, colorprofile.ANSI:
		c.TrueColor = false
	case colorprofile.NoTTY, colorprofile.Ascii:
		c.TrueColor = false
	}

	if os.Getenv("TERM_PROGRAM") == "iTerm.app" || os.Getenv("KITTY_WINDOW_ID") != "" {
		c.Hyperlinks = true
	}
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		c.KittyKeyboard = true
		c.KittyGraphics = true
	}
	return c
}

// ApplyDA1 upgrades capability flags from a parsed Primary Device
// Attributes reply. params are the numeric parameters of the CSI ... c
// response (attribute codes, whose exact catalog is terminal-defined and
// treated as an opaque list here; we only recognize the few that map to
// flags this toolkit acts on).
func (c *Capabilities) ApplyDA1(params []int) {
	for _, p := range params {
		switch p {
		case 4: // sixel graphics
			c.KittyGraphics = true
		case 22: // ANSI color
			c.TrueColor = c.TrueColor // no-op placeholder for an opaque param catalog
		}
	}
}

// ApplyKittyKeyboardReply records that the terminal answered a kitty
// keyboard progressive-enhancement query, confirming support.
func (c *Capabilities) ApplyKittyKeyboardReply(flags int) {
	c.KittyKeyboard = true
}

// ApplySynchronizedUpdateReply records a DECRQM reply confirming mode 2026
// (synchronized update) is supported.
func (c *Capabilities) ApplySynchronizedUpdateReply(supported bool) {
	c.SynchronizedUpdate = supported
}

// ApplyColorReport upgrades the truecolor flag and records the resolved
// color once an OSC 10/11/12 color query round-trips successfully with an
// RGB-formatted response — a terminal that can report its own colors as RGB
// can certainly accept RGB.
func (c *Capabilities) ApplyColorReport(kind ColorKind, resolved Color) {
	c.TrueColor = true
	switch kind {
	case ColorForeground:
		c.Foreground = resolved
	case ColorBackground:
		c.Background = resolved
	case ColorCursor:
		c.CursorColor = resolved
	}
}

// ApplyWidthMethodReply lets a capability reply override the static
// guess. Per the resolved open question, once any reply arrives it wins
// permanently over future static re-probes.
func (c *Capabilities) ApplyWidthMethodReply(m WidthMethod) {
	c.WidthMethod = m
	c.capabilityReplyReceived = true
}

// StaticWidthGuess applies a COLORTERM/terminfo-derived guess, but only if
// no capability reply has already resolved the question.
func (c *Capabilities) StaticWidthGuess(m WidthMethod) {
	if c.capabilityReplyReceived {
		return
	}
	c.WidthMethod = m
}
