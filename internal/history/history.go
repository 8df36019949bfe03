// ABOUTME: Bounded command history with previous/next navigation and fuzzy recall
// ABOUTME: Oldest entries are evicted at the limit; duplicates move to the newest slot

package history

import (
	"strings"

	"github.com/mauromedda/ashe-go/pkg/tui/fuzzy"
)

// DefaultLimit is the number of entries kept when none is configured.
const DefaultLimit = 1000

// History is an ordered list of commands, oldest first. It is not safe for
// concurrent use.
type History struct {
	entries []string
	pos     int // len(entries) means "at the input line"
	limit   int
}

// New creates an empty history holding at most limit entries.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{
		entries: make([]string, 0, min(limit, 256)),
		limit:   limit,
	}
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Push appends a command as the newest entry and resets navigation.
// Blank commands are dropped; an existing identical entry is removed first.
func (h *History) Push(line string) {
	defer h.Reset()
	if strings.TrimSpace(line) == "" {
		return
	}
	for i, e := range h.entries {
		if e == line {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			break
		}
	}
	if len(h.entries) >= h.limit {
		n := len(h.entries) - h.limit + 1
		h.entries = append(h.entries[:0], h.entries[n:]...)
	}
	h.entries = append(h.entries, line)
}

// Previous steps to the next older entry.
func (h *History) Previous() (string, bool) {
	if h.pos == 0 || len(h.entries) == 0 {
		return "", false
	}
	h.pos--
	return h.entries[h.pos], true
}

// Next steps to the next newer entry. Stepping past the newest entry
// returns false and goes back to the input line.
func (h *History) Next() (string, bool) {
	if h.pos >= len(h.entries)-1 {
		h.pos = len(h.entries)
		return "", false
	}
	h.pos++
	return h.entries[h.pos], true
}

// Reset moves navigation back to the input line.
func (h *History) Reset() {
	h.pos = len(h.entries)
}

// Search returns the entry that best fuzzy-matches query, preferring newer
// entries on equal score. An empty query yields the newest entry.
func (h *History) Search(query string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if query == "" {
		h.pos = len(h.entries) - 1
		return h.entries[h.pos], true
	}
	best, ok := fuzzy.Best(query, h.entries)
	if !ok {
		return "", false
	}
	h.pos = best.Index
	return best.Str, true
}
