// ABOUTME: Insert and remove operations on the edit buffer with minimal screen updates
// ABOUTME: Only the text after the edit point is redrawn, using save/restore cursor

package lineedit

// Insert adds c at the cursor. It returns true when c is a newline that
// ends the command (outside double quotes and not escaped); nothing is
// inserted then. Insertion is silently refused when the buffer is full.
func (e *Editor) Insert(c byte) (done bool) {
	if c == '\n' && !e.quoted() {
		return true
	}
	if e.buf.Full() {
		return false
	}

	row, col := e.cur.Row, e.cur.Col
	w := e.width()
	x := e.offset(row) + col
	boundary := x > 0 && x%w == 0
	from := e.cellOf(row, col)

	if c == '\n' {
		// At a boundary the newline is drawn from the right margin of the
		// row above so that the terminal wraps exactly once.
		if boundary {
			e.moveTo(from, cell{y: e.base(row) + x/w - 1, x: w}, false)
		} else {
			e.draw.ClearRight()
		}
		e.draw.WriteByte('\n')
		e.buf.insert(row, col, c)
		e.setCursor(row+1, 0)
		e.draw.ClearDown()
		e.draw.Save()
		e.draw.Write(e.buf.Bytes()[e.cur.Index:])
		e.draw.Restore()
		return false
	}

	anchor := from
	if boundary {
		anchor = cell{y: e.base(row) + x/w, x: 1}
		e.moveTo(from, anchor, false)
	}
	e.buf.insert(row, col, c)
	e.suffix(e.cur.Index)
	e.moveTo(anchor, e.cellOf(row, col+1), e.fresh(row, col+1))
	e.setCursor(row, col+1)
	return false
}

// Remove deletes the byte before the cursor. At column 0 the current line
// is joined onto the previous one.
func (e *Editor) Remove() bool {
	if e.cur.Index == 0 {
		return false
	}
	row, col := e.cur.Row, e.cur.Col
	nrow, ncol := row, col-1
	if col == 0 {
		nrow, ncol = row-1, e.buf.Line(row-1).Len
	}
	from := e.cellOf(row, col)
	e.buf.remove(row, col)

	e.draw.HideCursor()
	e.moveTo(from, e.cellOf(nrow, ncol), false)
	e.setCursor(nrow, ncol)
	if ncol == e.buf.Line(nrow).Len && e.exact(nrow) {
		// The cursor shares its cell with the last character: keep that
		// cell and redraw from the separator on.
		e.draw.Save()
		e.draw.WriteByte('\n')
		e.draw.ClearDown()
		e.draw.Write(e.buf.Bytes()[e.cur.Index+1:])
		e.draw.Restore()
	} else {
		e.suffix(e.cur.Index)
	}
	e.draw.ShowCursor()
	return true
}

// suffix clears below the cursor and redraws the buffer from idx.
func (e *Editor) suffix(idx int) {
	e.draw.ClearRight()
	e.draw.ClearDown()
	e.draw.Save()
	e.draw.Write(e.buf.Bytes()[idx:])
	e.draw.Restore()
}

func (e *Editor) quoted() bool {
	if e.quoter == nil {
		return false
	}
	data := e.buf.Bytes()
	return e.quoter.IsEscaped(data, e.cur.Index) || e.quoter.InsideDoubleQuote(data, e.cur.Index)
}
