//go:build darwin

package cellterm

import "golang.org/x/sys/unix"

// BSD-derived termios ioctls (darwin, and historically the other BSDs)
// name these TIOCGETA/TIOCSETA, distinct from Linux's TCGETS/TCSETS
// equivalents.
const (
	ioctlGetTermios = unix.TIOCGETA
	ioctlSetTermios = unix.TIOCSETA
)
