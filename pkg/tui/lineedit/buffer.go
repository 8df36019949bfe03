// ABOUTME: Logical command text and its partition into newline-separated display lines
// ABOUTME: Separators are not counted in any line length; starts are kept contiguous

package lineedit

import (
	"bytes"
	"fmt"
)

// Line is one logical line of the buffer. Len excludes the trailing separator.
type Line struct {
	Start int
	Len   int
}

// Buffer holds the command text being edited and its line table.
// The table always has at least one entry.
type Buffer struct {
	data  []byte
	lines []Line
	max   int
}

// NewBuffer creates an empty buffer that accepts at most maxSize-1 bytes.
func NewBuffer(maxSize int) *Buffer {
	if maxSize < 2 {
		maxSize = 2
	}
	return &Buffer{
		data:  make([]byte, 0, 256),
		lines: []Line{{}},
		max:   maxSize,
	}
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.data) }

// Bytes returns the buffer contents. The slice is only valid until the next edit.
func (b *Buffer) Bytes() []byte { return b.data }

// String returns a copy of the buffer contents.
func (b *Buffer) String() string { return string(b.data) }

// Count returns the number of logical lines.
func (b *Buffer) Count() int { return len(b.lines) }

// Line returns the entry for logical row i.
func (b *Buffer) Line(i int) Line { return b.lines[i] }

// Lines returns a copy of the line table.
func (b *Buffer) Lines() []Line {
	out := make([]Line, len(b.lines))
	copy(out, b.lines)
	return out
}

// Full reports whether another byte would exceed the size limit.
func (b *Buffer) Full() bool { return len(b.data) >= b.max-1 }

// Reset empties the buffer, keeping its capacity.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.lines = append(b.lines[:0], Line{})
}

// Position maps a byte offset to its row and column, clamping to the
// buffer. A separator belongs to the line it ends.
func (b *Buffer) Position(idx int) (row, col int) {
	idx = max(0, min(idx, len(b.data)))
	for i, l := range b.lines {
		if idx <= l.Start+l.Len {
			return i, idx - l.Start
		}
	}
	last := len(b.lines) - 1
	return last, b.lines[last].Len
}

// insert splices c at column col of row. A newline splits the row in two.
func (b *Buffer) insert(row, col int, c byte) {
	idx := b.lines[row].Start + col
	b.data = append(b.data, 0)
	copy(b.data[idx+1:], b.data[idx:])
	b.data[idx] = c
	b.shift(row+1, 1)

	if c != '\n' {
		b.lines[row].Len++
		return
	}
	next := Line{Start: idx + 1, Len: b.lines[row].Len - col}
	b.lines[row].Len = col
	b.lines = append(b.lines, Line{})
	copy(b.lines[row+2:], b.lines[row+1:])
	b.lines[row+1] = next
}

// remove deletes the byte before column col of row. At column 0 the
// separator goes and the row is merged into the previous one.
func (b *Buffer) remove(row, col int) {
	idx := b.lines[row].Start + col
	copy(b.data[idx-1:], b.data[idx:])
	b.data = b.data[:len(b.data)-1]

	if col > 0 {
		b.lines[row].Len--
		b.shift(row+1, -1)
		return
	}
	b.lines[row-1].Len += b.lines[row].Len
	b.lines = append(b.lines[:row], b.lines[row+1:]...)
	b.shift(row, -1)
}

// replace swaps in text wholesale, truncated to the size limit.
func (b *Buffer) replace(text string) {
	if len(text) > b.max-1 {
		text = text[:b.max-1]
	}
	b.data = append(b.data[:0], text...)
	b.lines = b.lines[:0]
	start := 0
	for {
		n := bytes.IndexByte(b.data[start:], '\n')
		if n < 0 {
			b.lines = append(b.lines, Line{Start: start, Len: len(b.data) - start})
			return
		}
		b.lines = append(b.lines, Line{Start: start, Len: n})
		start += n + 1
	}
}

func (b *Buffer) shift(from, delta int) {
	for i := from; i < len(b.lines); i++ {
		b.lines[i].Start += delta
	}
}

// Check verifies the line table against the buffer contents.
func (b *Buffer) Check() error {
	if len(b.lines) == 0 {
		return fmt.Errorf("empty line table")
	}
	sum := 0
	for i, l := range b.lines {
		if l.Len < 0 {
			return fmt.Errorf("line %d: negative length %d", i, l.Len)
		}
		if i == 0 && l.Start != 0 {
			return fmt.Errorf("line 0 starts at %d", l.Start)
		}
		if i > 0 {
			prev := b.lines[i-1]
			if l.Start != prev.Start+prev.Len+1 {
				return fmt.Errorf("line %d starts at %d, want %d", i, l.Start, prev.Start+prev.Len+1)
			}
			if b.data[l.Start-1] != '\n' {
				return fmt.Errorf("line %d: no separator before offset %d", i, l.Start)
			}
		}
		sum += l.Len
	}
	if want := sum + len(b.lines) - 1; want != len(b.data) {
		return fmt.Errorf("line table covers %d bytes, buffer holds %d", want, len(b.data))
	}
	if len(b.data) > b.max-1 {
		return fmt.Errorf("buffer holds %d bytes, limit %d", len(b.data), b.max-1)
	}
	return nil
}
