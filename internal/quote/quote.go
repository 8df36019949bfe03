// ABOUTME: Lexical quoting helpers shared by the line editor and the history file reader
// ABOUTME: Tracks double-quote and backslash-escape state over a byte prefix

package quote

// Quoter answers quoting questions about a prefix of a command buffer.
// The zero value is ready to use.
type Quoter struct{}

// IsEscaped reports whether the byte at pos would be escaped, i.e. buf[:pos]
// ends with an odd run of backslashes.
func (Quoter) IsEscaped(buf []byte, pos int) bool {
	return IsEscaped(buf, pos)
}

// InsideDoubleQuote reports whether pos lies inside an open double quote.
func (Quoter) InsideDoubleQuote(buf []byte, pos int) bool {
	return InsideDoubleQuote(buf, pos)
}

// IsEscaped reports whether buf[:pos] ends with an unpaired backslash.
func IsEscaped(buf []byte, pos int) bool {
	pos = clamp(pos, len(buf))
	n := 0
	for i := pos - 1; i >= 0 && buf[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// InsideDoubleQuote scans buf[:pos] and reports whether a double quote is
// still open at pos. A backslash escapes the following byte both inside and
// outside quotes.
func InsideDoubleQuote(buf []byte, pos int) bool {
	pos = clamp(pos, len(buf))
	open, escaped := false, false
	for _, c := range buf[:pos] {
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			open = !open
		}
	}
	return open
}

// Incomplete reports whether s ends inside a double quote or after an
// escaping backslash, meaning a following newline belongs to the command.
func Incomplete(s string) bool {
	b := []byte(s)
	return InsideDoubleQuote(b, len(b)) || IsEscaped(b, len(b))
}

func clamp(pos, n int) int {
	if pos < 0 {
		return 0
	}
	if pos > n {
		return n
	}
	return pos
}
