// ABOUTME: Editor owns the buffer, cursor and draw buffer of one editing session
// ABOUTME: All operations mutate state and append screen deltas; flushing is the caller's job

package lineedit

// Editor applies editing operations and records their screen effect.
type Editor struct {
	buf    *Buffer
	cur    Cursor
	draw   *DrawBuffer
	quoter Quoter
	prompt Prompt

	promptText string
}

// NewEditor creates an editor writing into draw. quoter may be nil, in which
// case every newline submits.
func NewEditor(buf *Buffer, draw *DrawBuffer, quoter Quoter, prompt Prompt) *Editor {
	if prompt == nil {
		prompt = StaticPrompt("")
	}
	return &Editor{buf: buf, draw: draw, quoter: quoter, prompt: prompt, cur: Cursor{Width: 80, Height: 24}}
}

func (e *Editor) Buffer() *Buffer { return e.buf }
func (e *Editor) Cursor() Cursor { return e.cur }
func (e *Editor) Draw() *DrawBuffer { return e.draw }
func (e *Editor) String() string { return e.buf.String() }

// SetGeometry records the terminal size and recomputes the terminal column
// from the unchanged position.
func (e *Editor) SetGeometry(width, height int) {
	e.cur.Width = max(1, width)
	e.cur.Height = height
	e.setCursor(e.cur.Row, e.cur.Col)
}

// Start empties the buffer and draws a freshly rendered prompt on the
// current terminal row.
func (e *Editor) Start() {
	e.promptText = e.prompt.Render()
	e.cur.PromptLen = e.prompt.Len()
	e.Reset()
	e.repaint(0)
}

// Reset empties the buffer without drawing.
func (e *Editor) Reset() {
	e.buf.Reset()
	e.setCursor(0, 0)
}

// Replace swaps the buffer for text, places the cursor at its end and
// repaints.
func (e *Editor) Replace(text string) {
	e.SetText(text, len(text))
}

// SetText swaps the buffer for text, places the cursor at byte offset index
// (clamped) and repaints.
func (e *Editor) SetText(text string, index int) {
	origin := e.cellOf(e.cur.Row, e.cur.Col).y
	e.buf.replace(text)
	e.setCursor(e.buf.Position(index))
	e.repaint(origin)
}

// Finish moves to the end of the buffer and starts a new terminal line.
func (e *Editor) Finish() {
	e.End()
	e.draw.WriteString("\r\n")
}

// Interrupt abandons the current input and starts over on a new line.
func (e *Editor) Interrupt() {
	e.Finish()
	e.Start()
}

// Resize applies new geometry and repaints everything.
func (e *Editor) Resize(width, height int) {
	e.SetGeometry(width, height)
	e.Redraw()
}
