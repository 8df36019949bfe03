// ABOUTME: Table-driven tests for key decoding covering ASCII, control bytes, and escape sequences.
// ABOUTME: Exercises ParseKey and the streaming Decoder including interrupted and truncated reads.

package key

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/mauromedda/ashe-go/pkg/tui/input"
)

func TestParseKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want Key
	}{
		// Printable
		{name: "lowercase a", data: "a", want: Key{Type: KeyRune, Byte: 'a'}},
		{name: "space", data: " ", want: Key{Type: KeyRune, Byte: ' '}},
		{name: "tilde", data: "~", want: Key{Type: KeyRune, Byte: '~'}},
		{name: "double quote", data: `"`, want: Key{Type: KeyRune, Byte: '"'}},

		// Control
		{name: "enter", data: "\r", want: Key{Type: KeyEnter}},
		{name: "backspace", data: "\x7f", want: Key{Type: KeyBackspace}},
		{name: "ctrl+a", data: "\x01", want: Key{Type: KeyHome}},
		{name: "ctrl+d", data: "\x04", want: Key{Type: KeyCtrlD}},
		{name: "ctrl+e", data: "\x05", want: Key{Type: KeyEnd}},
		{name: "ctrl+l", data: "\x0c", want: Key{Type: KeyCtrlL}},
		{name: "ctrl+p", data: "\x10", want: Key{Type: KeyCtrlP}},
		{name: "ctrl+n", data: "\x0e", want: Key{Type: KeyCtrlN}},
		{name: "ctrl+r", data: "\x12", want: Key{Type: KeyCtrlR}},
		{name: "ctrl+k", data: "\x0b", want: Key{Type: KeyCtrlK}},
		{name: "ctrl+u", data: "\x15", want: Key{Type: KeyCtrlU}},
		{name: "ctrl+y", data: "\x19", want: Key{Type: KeyCtrlY}},
		{name: "ctrl+_", data: "\x1f", want: Key{Type: KeyUndo}},
		{name: "ctrl+o ignored", data: "\x0f", want: Key{Type: KeyIgnored}},
		{name: "tab ignored", data: "\t", want: Key{Type: KeyIgnored}},
		{name: "line feed ignored", data: "\n", want: Key{Type: KeyIgnored}},
		{name: "high byte ignored", data: "\xc3", want: Key{Type: KeyIgnored}},

		// CSI
		{name: "arrow up", data: "\x1b[A", want: Key{Type: KeyUp}},
		{name: "arrow down", data: "\x1b[B", want: Key{Type: KeyDown}},
		{name: "arrow right", data: "\x1b[C", want: Key{Type: KeyRight}},
		{name: "arrow left", data: "\x1b[D", want: Key{Type: KeyLeft}},
		{name: "home H", data: "\x1b[H", want: Key{Type: KeyHome}},
		{name: "end F", data: "\x1b[F", want: Key{Type: KeyEnd}},
		{name: "home 1~", data: "\x1b[1~", want: Key{Type: KeyHome}},
		{name: "home 7~", data: "\x1b[7~", want: Key{Type: KeyHome}},
		{name: "end 4~", data: "\x1b[4~", want: Key{Type: KeyEnd}},
		{name: "end 8~", data: "\x1b[8~", want: Key{Type: KeyEnd}},
		{name: "delete", data: "\x1b[3~", want: Key{Type: KeyDelete}},

		// SS3
		{name: "SS3 home", data: "\x1bOH", want: Key{Type: KeyHome}},
		{name: "SS3 F", data: "\x1bOF", want: Key{Type: KeyHome}},

		// Unrecognized
		{name: "page up unimplemented", data: "\x1b[5~", want: Key{Type: KeyEscape}},
		{name: "unknown letter", data: "\x1b[Z", want: Key{Type: KeyEscape}},
		{name: "lone escape", data: "\x1b", want: Key{Type: KeyEscape}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParseKey(tt.data)
			if got != tt.want {
				t.Errorf("ParseKey(%q) = %+v, want %+v", tt.data, got, tt.want)
			}
		})
	}
}

func TestDecoder_Stream(t *testing.T) {
	t.Parallel()

	src := bytes.NewBufferString("ab\x1b[D\x1b[3~\r\x1b[9~c")
	d := NewDecoder(src)

	want := []Key{
		{Type: KeyRune, Byte: 'a'},
		{Type: KeyRune, Byte: 'b'},
		{Type: KeyLeft},
		{Type: KeyDelete},
		{Type: KeyEnter},
		{Type: KeyEscape},
		{Type: KeyRune, Byte: 'c'},
	}
	for i, w := range want {
		got, err := d.Next()
		if err != nil {
			t.Fatalf("key %d: Next() unexpected error: %v", i, err)
		}
		if got != w {
			t.Errorf("key %d: Next() = %v, want %v", i, got, w)
		}
	}

	if _, err := d.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next() at end error = %v, want io.EOF", err)
	}
}

func TestDecoder_TruncatedSequence(t *testing.T) {
	t.Parallel()

	d := NewDecoder(bytes.NewBufferString("\x1b["))
	got, err := d.Next()
	if err != nil {
		t.Fatalf("Next() unexpected error: %v", err)
	}
	if got.Type != KeyEscape {
		t.Errorf("Next() = %v, want Escape", got)
	}
}

// scriptedSource yields bytes and errors in order.
type scriptedSource struct {
	steps []step
}

type step struct {
	b   byte
	err error
}

func (s *scriptedSource) ReadByte() (byte, error) {
	if len(s.steps) == 0 {
		return 0, io.EOF
	}
	st := s.steps[0]
	s.steps = s.steps[1:]
	return st.b, st.err
}

func TestDecoder_InterruptedReadIsNoop(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{steps: []step{
		{err: input.ErrInterrupted},
		{b: 'x'},
	}}
	d := NewDecoder(src)

	got, err := d.Next()
	if err != nil {
		t.Fatalf("Next() unexpected error: %v", err)
	}
	if got.Type != KeyNone {
		t.Fatalf("Next() = %v, want None", got)
	}

	got, err = d.Next()
	if err != nil {
		t.Fatalf("Next() unexpected error: %v", err)
	}
	if got != (Key{Type: KeyRune, Byte: 'x'}) {
		t.Errorf("Next() = %v, want x", got)
	}
}

func TestDecoder_InterruptInsideSequence(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{steps: []step{
		{b: 0x1b},
		{b: '['},
		{err: input.ErrInterrupted},
	}}
	got, err := NewDecoder(src).Next()
	if err != nil {
		t.Fatalf("Next() unexpected error: %v", err)
	}
	if got.Type != KeyEscape {
		t.Errorf("Next() = %v, want Escape", got)
	}
}

func TestKeyString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  Key
		want string
	}{
		{name: "rune a", key: Key{Type: KeyRune, Byte: 'a'}, want: "a"},
		{name: "enter", key: Key{Type: KeyEnter}, want: "Enter"},
		{name: "ctrl+l", key: Key{Type: KeyCtrlL}, want: "Ctrl+L"},
		{name: "undo", key: Key{Type: KeyUndo}, want: "Undo"},
		{name: "arrow up", key: Key{Type: KeyUp}, want: "Up"},
		{name: "none", key: Key{Type: KeyNone}, want: "None"},
		{name: "out of range", key: Key{Type: KeyType(99)}, want: "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.key.String(); got != tt.want {
				t.Errorf("Key.String() = %q, want %q", got, tt.want)
			}
		})
	}
}
