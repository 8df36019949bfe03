// ABOUTME: Escape sequence stripping for width measurement
// ABOUTME: Recognizes CSI, OSC, string sequences (DCS, APC, PM) and two-byte ESC forms

package width

import "strings"

const (
	esc = '\x1b'
	bel = '\x07'
)

// StripANSI removes all escape sequences from s.
func StripANSI(s string) string {
	i := strings.IndexByte(s, esc)
	if i < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i >= 0 {
		b.WriteString(s[:i])
		s = s[sequenceEnd(s, i):]
		i = strings.IndexByte(s, esc)
	}
	b.WriteString(s)
	return b.String()
}

// sequenceEnd returns the index just past the escape sequence at s[i].
// An unterminated sequence runs to the end of s.
func sequenceEnd(s string, i int) int {
	i++
	if i >= len(s) {
		return i
	}
	switch s[i] {
	case '[':
		for i++; i < len(s); i++ {
			if s[i] >= 0x40 && s[i] <= 0x7e {
				return i + 1
			}
		}
		return len(s)
	case ']', 'P', '_', '^':
		osc := s[i] == ']'
		for i++; i < len(s); i++ {
			if osc && s[i] == bel {
				return i + 1
			}
			if s[i] == esc && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return len(s)
	case '(', ')':
		return min(i+2, len(s))
	default:
		return i + 1
	}
}
