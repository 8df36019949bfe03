// ABOUTME: Maps buffer positions to wrapped terminal cells and moves the cursor
// ABOUTME: Movement emits relative deltas into the DrawBuffer; the buffer is never touched

package lineedit

// Cursor is the editing position plus the geometry it is mapped through.
// TermCol is 1-based.
type Cursor struct {
	Index     int
	Row       int
	Col       int
	TermCol   int
	PromptLen int
	Width     int
	Height    int
}

// cell is a physical position relative to the input origin: y rows below
// the prompt's first row, 1-based column x.
type cell struct {
	y, x int
}

// Wraps returns how many terminal rows a line of length n occupies when it
// starts at column offset off on a terminal width w columns wide.
func Wraps(n, off, w int) int {
	if w < 1 {
		w = 1
	}
	return (n + off + w - 1) / w
}

// modlen maps x > 0 to 1..w.
func modlen(x, w int) int {
	return (x-1)%w + 1
}

func (e *Editor) width() int {
	if e.cur.Width < 1 {
		return 1
	}
	return e.cur.Width
}

// offset is the screen column where a line's text begins.
func (e *Editor) offset(row int) int {
	if row == 0 {
		return e.cur.PromptLen
	}
	return 0
}

func (e *Editor) last(row int) bool {
	return row == e.buf.Count()-1
}

// exact reports whether a line followed by a separator ends exactly at the
// right margin, so its separator shares the last text cell.
func (e *Editor) exact(row int) bool {
	n := e.offset(row) + e.buf.Line(row).Len
	return !e.last(row) && n > 0 && n%e.width() == 0
}

// locate returns the wrap segment and 1-based column of (row, col).
func (e *Editor) locate(row, col int) (seg, tcol int) {
	w := e.width()
	x := e.offset(row) + col
	if col == e.buf.Line(row).Len && e.exact(row) {
		return x/w - 1, modlen(x, w)
	}
	return x / w, x%w + 1
}

// segments returns the number of terminal rows owned by row. The last line
// includes the fresh row its end position moves onto after an exact fill.
func (e *Editor) segments(row int) int {
	n := e.offset(row) + e.buf.Line(row).Len
	w := e.width()
	if e.last(row) {
		return n/w + 1
	}
	return max(1, Wraps(n, 0, w))
}

// segRange returns the columns of row displayed on wrap segment seg.
// ok is false for segments holding no position, such as prompt-only rows.
func (e *Editor) segRange(row, seg int) (lo, hi int, ok bool) {
	if seg < 0 || seg >= e.segments(row) {
		return 0, 0, false
	}
	w := e.width()
	off := e.offset(row)
	l := e.buf.Line(row).Len
	lo = max(0, seg*w-off)
	hi = min(l, (seg+1)*w-1-off)
	if e.exact(row) && seg == (off+l)/w-1 {
		hi = l
	}
	return lo, hi, lo <= hi
}

// base returns the terminal row where row begins.
func (e *Editor) base(row int) int {
	y := 0
	for r := 0; r < row; r++ {
		y += e.segments(r)
	}
	return y
}

func (e *Editor) cellOf(row, col int) cell {
	seg, tcol := e.locate(row, col)
	return cell{y: e.base(row) + seg, x: tcol}
}

// fresh reports whether (row, col) is the end of the buffer sitting on the
// row below an exactly filled last line.
func (e *Editor) fresh(row, col int) bool {
	if !e.last(row) || col != e.buf.Line(row).Len {
		return false
	}
	n := e.offset(row) + col
	return n > 0 && n%e.width() == 0
}

// setCursor updates the logical position and its terminal column.
func (e *Editor) setCursor(row, col int) {
	e.cur.Row = row
	e.cur.Col = col
	e.cur.Index = e.buf.Line(row).Start + col
	_, e.cur.TermCol = e.locate(row, col)
}

// moveTo emits the shortest relative motion between two cells.
func (e *Editor) moveTo(from, to cell, freshRow bool) {
	dy := to.y - from.y
	if dy == 0 {
		switch to.x - from.x {
		case 0:
		case 1:
			e.draw.Right(1)
		case -1:
			e.draw.Left(1)
		default:
			e.draw.Column(to.x)
		}
		return
	}
	switch {
	case dy < 0:
		e.draw.Up(-dy)
	case dy == 1 && freshRow:
		e.draw.WriteByte('\n')
	default:
		e.draw.Down(dy)
	}
	e.draw.Column(to.x)
}

// jump moves the cursor to (row, col) and emits the motion.
func (e *Editor) jump(row, col int) {
	from := e.cellOf(e.cur.Row, e.cur.Col)
	to := e.cellOf(row, col)
	e.moveTo(from, to, e.fresh(row, col))
	e.setCursor(row, col)
}

// Left moves one logical position back, onto the previous line's end at
// column 0.
func (e *Editor) Left() bool {
	switch {
	case e.cur.Col > 0:
		e.jump(e.cur.Row, e.cur.Col-1)
	case e.cur.Row > 0:
		e.jump(e.cur.Row-1, e.buf.Line(e.cur.Row-1).Len)
	default:
		return false
	}
	return true
}

// Right moves one logical position forward.
func (e *Editor) Right() bool {
	switch {
	case e.cur.Col < e.buf.Line(e.cur.Row).Len:
		e.jump(e.cur.Row, e.cur.Col+1)
	case !e.last(e.cur.Row):
		e.jump(e.cur.Row+1, 0)
	default:
		return false
	}
	return true
}

// Up moves to the terminal row above, keeping the terminal column.
func (e *Editor) Up() bool {
	seg, tcol := e.locate(e.cur.Row, e.cur.Col)
	row, tseg := e.cur.Row, seg-1
	if seg == 0 {
		if row == 0 {
			return false
		}
		row--
		tseg = e.segments(row) - 1
	}
	return e.vertical(row, tseg, tcol)
}

// Down moves to the terminal row below, keeping the terminal column.
func (e *Editor) Down() bool {
	seg, tcol := e.locate(e.cur.Row, e.cur.Col)
	row, tseg := e.cur.Row, seg+1
	if tseg >= e.segments(row) {
		if e.last(row) {
			return false
		}
		row++
		tseg = 0
	}
	return e.vertical(row, tseg, tcol)
}

func (e *Editor) vertical(row, seg, tcol int) bool {
	lo, hi, ok := e.segRange(row, seg)
	if !ok {
		return false
	}
	col := seg*e.width() + tcol - 1 - e.offset(row)
	e.jump(row, min(max(col, lo), hi))
	return true
}

// LineStart moves to the first position of the current wrap segment.
func (e *Editor) LineStart() bool {
	seg, _ := e.locate(e.cur.Row, e.cur.Col)
	lo, _, _ := e.segRange(e.cur.Row, seg)
	if e.cur.Col == lo {
		return false
	}
	e.jump(e.cur.Row, lo)
	return true
}

// LineEnd moves to the last position of the current wrap segment.
func (e *Editor) LineEnd() bool {
	seg, _ := e.locate(e.cur.Row, e.cur.Col)
	_, hi, _ := e.segRange(e.cur.Row, seg)
	if e.cur.Col == hi {
		return false
	}
	e.jump(e.cur.Row, hi)
	return true
}

// End moves to the end of the buffer.
func (e *Editor) End() {
	last := e.buf.Count() - 1
	e.jump(last, e.buf.Line(last).Len)
}
