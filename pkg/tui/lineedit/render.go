// ABOUTME: Full repaint of prompt and buffer, and the atomic flush to the terminal
// ABOUTME: Output post-processing is enabled only for the duration of one write

package lineedit

import (
	"fmt"

	"github.com/mauromedda/ashe-go/pkg/tui/terminal"
	"github.com/mauromedda/ashe-go/pkg/tui/width"
)

// Prompt supplies the text drawn before the buffer. Len is the visible
// width of the text returned by the latest Render.
type Prompt interface {
	Render() string
	Len() int
}

// StaticPrompt is a fixed prompt string.
type StaticPrompt string

func (p StaticPrompt) Render() string { return string(p) }
func (p StaticPrompt) Len() int { return width.VisibleWidth(string(p)) }

// Redraw repaints prompt and buffer from the input origin and puts the
// cursor back. Without an intervening edit it emits identical bytes.
func (e *Editor) Redraw() {
	e.repaint(e.cellOf(e.cur.Row, e.cur.Col).y)
}

// ClearScreen wipes the terminal and repaints at the top.
func (e *Editor) ClearScreen() {
	e.draw.ClearScreen()
	e.repaint(0)
}

// repaint redraws everything, assuming the terminal cursor is rows below
// the prompt's first row.
func (e *Editor) repaint(rows int) {
	e.draw.HideCursor()
	if rows > 0 {
		e.draw.Up(rows)
	}
	e.draw.WriteByte('\r')
	e.draw.ClearDown()
	e.draw.WriteString(e.promptText)
	e.draw.Write(e.buf.Bytes())

	last := e.buf.Count() - 1
	w := e.width()
	n := e.offset(last) + e.buf.Line(last).Len
	end := cell{y: e.base(last) + n/w, x: n%w + 1}
	target := e.cellOf(e.cur.Row, e.cur.Col)
	if n > 0 && n%w == 0 {
		end = cell{y: e.base(last) + n/w - 1, x: w}
		if target == end {
			// leave the pending-wrap state
			e.draw.Column(w)
		}
	}
	e.moveTo(end, target, e.fresh(e.cur.Row, e.cur.Col))
	e.draw.ShowCursor()
}

// flush writes the accumulated output in one call with output
// post-processing enabled, then clears the buffer.
func flush(t terminal.Terminal, d *DrawBuffer) error {
	if d.Len() == 0 {
		return nil
	}
	defer d.Reset()
	if err := t.SetOutputProcessing(true); err != nil {
		return fmt.Errorf("enable output processing: %w", err)
	}
	if _, err := t.Write(d.Bytes()); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := t.SetOutputProcessing(false); err != nil {
		return fmt.Errorf("disable output processing: %w", err)
	}
	return nil
}
