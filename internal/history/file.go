// ABOUTME: History file persistence; an entry may span lines inside quotes or after a backslash
// ABOUTME: Each entry is written followed by a newline and read back with the same quoting rules

package history

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mauromedda/ashe-go/internal/quote"
)

// Load reads entries from path, replacing the current ones. A missing file
// is not an error.
func (h *History) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("opening history file: %w", err)
	}
	defer f.Close()

	entries, err := ReadEntries(f)
	if err != nil {
		return fmt.Errorf("reading history file: %w", err)
	}
	h.entries = h.entries[:0]
	for _, e := range entries {
		h.Push(e)
	}
	h.Reset()
	return nil
}

// ReadEntries splits r into entries at newlines that are neither escaped
// nor inside a double quote.
func ReadEntries(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var (
		entries []string
		cur     strings.Builder
	)
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		eof := err != nil

		line = strings.TrimSuffix(line, "\n")
		cur.WriteString(line)
		if !eof && quote.Incomplete(cur.String()) {
			cur.WriteByte('\n')
			continue
		}
		if cur.Len() > 0 {
			entries = append(entries, cur.String())
		}
		cur.Reset()
		if eof {
			return entries, nil
		}
	}
}

// Save writes all entries to path, creating its directory if needed.
// Entries that end inside a quote or after a backslash are skipped: read
// back they would swallow every entry after them.
func (h *History) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	var b strings.Builder
	for _, e := range h.entries {
		if quote.Incomplete(e) {
			continue
		}
		b.WriteString(e)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	return nil
}
