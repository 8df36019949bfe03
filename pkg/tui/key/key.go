// ABOUTME: Defines the Key type and the byte-at-a-time Decoder for raw terminal input.
// ABOUTME: Handles printable bytes, control bindings, and delegates ESC sequences to the legacy table.

package key

import (
	"errors"
	"io"

	"github.com/mauromedda/ashe-go/pkg/tui/input"
)

// Key represents a decoded keyboard event.
type Key struct {
	Type KeyType
	Byte byte // For KeyRune
}

// KeyType enumerates the kinds of key events the line editor can receive.
type KeyType int

const (
	KeyNone      KeyType = iota // Nothing to do this cycle (signal woke the read)
	KeyRune                     // Printable character
	KeyEnter                    // Carriage return
	KeyBackspace                // DEL (0x7F)
	KeyDelete                   // Delete key
	KeyUp                       // Arrow up
	KeyDown                     // Arrow down
	KeyLeft                     // Arrow left
	KeyRight                    // Arrow right
	KeyHome                     // Home
	KeyEnd                      // End
	KeyEscape                   // Unimplemented or bare escape sequence
	KeyCtrlD                    // Ctrl+D
	KeyCtrlL                    // Ctrl+L
	KeyCtrlN                    // Ctrl+N
	KeyCtrlP                    // Ctrl+P
	KeyCtrlR                    // Ctrl+R
	KeyCtrlK                    // Ctrl+K
	KeyCtrlU                    // Ctrl+U
	KeyCtrlY                    // Ctrl+Y
	KeyUndo                     // Ctrl+_ (also Ctrl+/ on most terminals)
	KeyIgnored                  // Control byte with no binding
)

const (
	esc       = 0x1b
	cr        = 0x0d
	backspace = 0x7f
)

// ctrlKeys maps control byte values to their Key representations.
var ctrlKeys = map[byte]Key{
	0x01: {Type: KeyHome},
	0x04: {Type: KeyCtrlD},
	0x05: {Type: KeyEnd},
	0x0b: {Type: KeyCtrlK},
	0x0c: {Type: KeyCtrlL},
	0x0e: {Type: KeyCtrlN},
	0x10: {Type: KeyCtrlP},
	0x12: {Type: KeyCtrlR},
	0x15: {Type: KeyCtrlU},
	0x19: {Type: KeyCtrlY},
	0x1f: {Type: KeyUndo},
}

// ParseByte decodes a single non-ESC byte.
func ParseByte(b byte) Key {
	switch {
	case b == cr:
		return Key{Type: KeyEnter}
	case b == backspace:
		return Key{Type: KeyBackspace}
	case b == esc:
		return Key{Type: KeyEscape}
	case b >= 0x20 && b <= 0x7e:
		return Key{Type: KeyRune, Byte: b}
	}

	if k, ok := ctrlKeys[b]; ok {
		return k
	}
	return Key{Type: KeyIgnored}
}

// ParseKey decodes a complete key string such as "a" or "\x1b[A".
// Unrecognized escape sequences decode as KeyEscape.
func ParseKey(data string) Key {
	if len(data) == 0 {
		return Key{Type: KeyNone}
	}
	if data[0] != esc {
		return ParseByte(data[0])
	}
	if k, ok := legacySequences[data]; ok {
		return k
	}
	return Key{Type: KeyEscape}
}

// Decoder turns a byte stream into key events, one event per Next call.
type Decoder struct {
	src io.ByteReader
	seq [3]byte
}

// NewDecoder returns a Decoder reading from src.
func NewDecoder(src io.ByteReader) *Decoder {
	return &Decoder{src: src}
}

// Next blocks for the next key. A read cut short by a signal yields KeyNone
// so the caller can handle the signal and re-enter. Any other read error on
// the first byte is returned; errors on follow-up bytes of an escape sequence
// decode as KeyEscape.
func (d *Decoder) Next() (Key, error) {
	c, err := d.src.ReadByte()
	if err != nil {
		if errors.Is(err, input.ErrInterrupted) {
			return Key{Type: KeyNone}, nil
		}
		return Key{}, err
	}
	if c != esc {
		return ParseByte(c), nil
	}
	return d.escape(), nil
}

// escape reads up to three follow-up bytes after ESC.
func (d *Decoder) escape() Key {
	var err error
	if d.seq[0], err = d.src.ReadByte(); err != nil {
		return Key{Type: KeyEscape}
	}
	if d.seq[1], err = d.src.ReadByte(); err != nil {
		return Key{Type: KeyEscape}
	}
	if d.seq[0] == '[' && isDigit(d.seq[1]) {
		if d.seq[2], err = d.src.ReadByte(); err != nil {
			return Key{Type: KeyEscape}
		}
		return ParseKey(string([]byte{esc, d.seq[0], d.seq[1], d.seq[2]}))
	}
	return ParseKey(string([]byte{esc, d.seq[0], d.seq[1]}))
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// keyTypeNames provides human-readable labels for each KeyType.
var keyTypeNames = map[KeyType]string{
	KeyNone:      "None",
	KeyEnter:     "Enter",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyEscape:    "Escape",
	KeyCtrlD:     "Ctrl+D",
	KeyCtrlL:     "Ctrl+L",
	KeyCtrlN:     "Ctrl+N",
	KeyCtrlP:     "Ctrl+P",
	KeyCtrlR:     "Ctrl+R",
	KeyCtrlK:     "Ctrl+K",
	KeyCtrlU:     "Ctrl+U",
	KeyCtrlY:     "Ctrl+Y",
	KeyUndo:      "Undo",
	KeyIgnored:   "Ignored",
}

// String returns a human-readable representation of the Key for debug logging.
func (k Key) String() string {
	if k.Type == KeyRune {
		return string(rune(k.Byte))
	}
	if name, ok := keyTypeNames[k.Type]; ok {
		return name
	}
	return "Unknown"
}
