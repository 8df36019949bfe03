// ABOUTME: ProcessTerminal implements Terminal over a tty input/output pair using termios.
// ABOUTME: Raw mode keeps ISIG so Ctrl-C still raises SIGINT; size comes from golang.org/x/term.

//go:build unix

package terminal

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ProcessTerminal is a real terminal: termios changes are applied to in,
// output and size queries go to out.
type ProcessTerminal struct {
	mu       sync.Mutex
	in       *os.File
	out      *os.File
	oldState *unix.Termios
	rawState *unix.Termios
}

// NewProcessTerminal returns a ProcessTerminal reading from in and writing to out.
func NewProcessTerminal(in, out *os.File) *ProcessTerminal {
	return &ProcessTerminal{in: in, out: out}
}

// IsTerminal reports whether both ends are attached to a terminal.
func (t *ProcessTerminal) IsTerminal() bool {
	return term.IsTerminal(int(t.in.Fd())) && term.IsTerminal(int(t.out.Fd()))
}

// EnterRawMode saves the current termios and switches the input side to raw
// mode: no echo, no canonical line buffering, no CR→NL translation, no
// output post-processing, one-byte blocking reads. Signal-generating keys
// stay enabled.
func (t *ProcessTerminal) EnterRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	fd := int(t.in.Fd())
	old, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}

	raw := *old
	raw.Iflag &^= unix.BRKINT | unix.INPCK | unix.ISTRIP | unix.IXON | unix.ICRNL
	raw.Oflag &^= unix.OPOST
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &raw); err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	if t.oldState == nil {
		t.oldState = old
	}
	t.rawState = &raw
	return nil
}

// ExitRawMode restores the termios saved by EnterRawMode.
func (t *ProcessTerminal) ExitRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState == nil {
		return nil
	}
	if err := unix.IoctlSetTermios(int(t.in.Fd()), ioctlSetTermios, t.oldState); err != nil {
		return fmt.Errorf("exiting raw mode: %w", err)
	}
	t.oldState = nil
	t.rawState = nil
	return nil
}

// SetOutputProcessing toggles OPOST on the raw termios. It is a no-op
// outside raw mode.
func (t *ProcessTerminal) SetOutputProcessing(on bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.rawState == nil {
		return nil
	}
	if on {
		t.rawState.Oflag |= unix.OPOST
	} else {
		t.rawState.Oflag &^= unix.OPOST
	}
	if err := unix.IoctlSetTermios(int(t.in.Fd()), ioctlSetTermiosDrain, t.rawState); err != nil {
		return fmt.Errorf("setting output processing: %w", err)
	}
	return nil
}

// Size returns the current terminal dimensions as reported by the driver.
// A zero width is returned as-is; callers fall back to a cursor probe.
func (t *ProcessTerminal) Size() (width, height int, err error) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return w, h, nil
}

// Write sends bytes to the output side.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	n, err := t.out.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to terminal: %w", err)
	}
	return n, nil
}
