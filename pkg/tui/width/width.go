// ABOUTME: VisibleWidth computes how many terminal cells a prompt or text occupies
// ABOUTME: Escape sequences count as zero; grapheme clusters take their first rune's width

package width

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// VisibleWidth returns the display width of s, ignoring escape sequences and
// control characters. East Asian wide characters and emoji count as two.
func VisibleWidth(s string) int {
	if isPlainASCII(s) {
		return len(s)
	}
	s = StripANSI(s)
	w := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if runes := g.Runes(); len(runes) > 0 {
			w += runewidth.RuneWidth(runes[0])
		}
	}
	return w
}

// isPlainASCII reports whether s contains only printable ASCII.
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
