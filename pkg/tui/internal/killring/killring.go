// ABOUTME: Bounded ring of killed text for the line editor's Ctrl-U/Ctrl-K/Ctrl-Y
// ABOUTME: The newest kill is yanked; the oldest is dropped when the ring is full

package killring

// DefaultSize is the capacity used by New.
const DefaultSize = 16

// KillRing keeps the most recent kills, newest last.
type KillRing struct {
	entries []string
	size    int
}

// New creates an empty ring holding DefaultSize kills.
func New() *KillRing {
	return &KillRing{size: DefaultSize}
}

// Push records killed text. Empty text is ignored.
func (kr *KillRing) Push(text string) {
	if text == "" {
		return
	}
	if len(kr.entries) == kr.size {
		copy(kr.entries, kr.entries[1:])
		kr.entries = kr.entries[:kr.size-1]
	}
	kr.entries = append(kr.entries, text)
}

// Yank returns the most recent kill, or "" when nothing was killed.
func (kr *KillRing) Yank() string {
	if len(kr.entries) == 0 {
		return ""
	}
	return kr.entries[len(kr.entries)-1]
}

// Len returns the number of kills held.
func (kr *KillRing) Len() int {
	return len(kr.entries)
}
