//go:build linux

package terminal

import "golang.org/x/sys/unix"

const (
	ioctlGetTermios      = unix.TCGETS
	ioctlSetTermios      = unix.TCSETSF // flush pending input, like TCSAFLUSH
	ioctlSetTermiosDrain = unix.TCSETSW // wait for output, keep typeahead
)
