// ABOUTME: Tests for ProcessTerminal against a pseudo-terminal from creack/pty.
// ABOUTME: Verifies raw mode flags, OPOST toggling, restore, and driver-reported size.

//go:build linux

package terminal

import (
	"testing"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

func openPTY(t *testing.T) *ProcessTerminal {
	t.Helper()

	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = tty.Close()
		_ = ptmx.Close()
	})
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: 24, Cols: 80}); err != nil {
		t.Fatalf("Setsize: %v", err)
	}
	return NewProcessTerminal(tty, tty)
}

func termios(t *testing.T, pt *ProcessTerminal) *unix.Termios {
	t.Helper()

	tios, err := unix.IoctlGetTermios(int(pt.in.Fd()), ioctlGetTermios)
	if err != nil {
		t.Fatalf("IoctlGetTermios: %v", err)
	}
	return tios
}

func TestProcessTerminal_RawModeRoundTrip(t *testing.T) {
	pt := openPTY(t)
	if !pt.IsTerminal() {
		t.Fatal("expected pty to be a terminal")
	}

	before := termios(t, pt)

	if err := pt.EnterRawMode(); err != nil {
		t.Fatalf("EnterRawMode() unexpected error: %v", err)
	}
	raw := termios(t, pt)
	if raw.Lflag&(unix.ECHO|unix.ICANON) != 0 {
		t.Error("raw mode should clear ECHO and ICANON")
	}
	if raw.Lflag&unix.ISIG == 0 {
		t.Error("raw mode should keep ISIG so Ctrl-C raises SIGINT")
	}
	if raw.Oflag&unix.OPOST != 0 {
		t.Error("raw mode should clear OPOST")
	}
	if raw.Cc[unix.VMIN] != 1 || raw.Cc[unix.VTIME] != 0 {
		t.Errorf("VMIN/VTIME = %d/%d, want 1/0", raw.Cc[unix.VMIN], raw.Cc[unix.VTIME])
	}

	if err := pt.SetOutputProcessing(true); err != nil {
		t.Fatalf("SetOutputProcessing(true) unexpected error: %v", err)
	}
	if termios(t, pt).Oflag&unix.OPOST == 0 {
		t.Error("expected OPOST after SetOutputProcessing(true)")
	}
	if err := pt.SetOutputProcessing(false); err != nil {
		t.Fatalf("SetOutputProcessing(false) unexpected error: %v", err)
	}
	if termios(t, pt).Oflag&unix.OPOST != 0 {
		t.Error("expected no OPOST after SetOutputProcessing(false)")
	}

	if err := pt.ExitRawMode(); err != nil {
		t.Fatalf("ExitRawMode() unexpected error: %v", err)
	}
	after := termios(t, pt)
	if after.Lflag != before.Lflag || after.Oflag != before.Oflag || after.Iflag != before.Iflag {
		t.Error("ExitRawMode did not restore the original termios")
	}
}

func TestProcessTerminal_ExitWithoutEnter(t *testing.T) {
	pt := openPTY(t)
	if err := pt.ExitRawMode(); err != nil {
		t.Errorf("ExitRawMode() without EnterRawMode error = %v, want nil", err)
	}
	if err := pt.SetOutputProcessing(true); err != nil {
		t.Errorf("SetOutputProcessing() outside raw mode error = %v, want nil", err)
	}
}

func TestProcessTerminal_Size(t *testing.T) {
	pt := openPTY(t)
	w, h, err := pt.Size()
	if err != nil {
		t.Fatalf("Size() unexpected error: %v", err)
	}
	if w != 80 || h != 24 {
		t.Errorf("Size() = (%d, %d), want (80, 24)", w, h)
	}
}
