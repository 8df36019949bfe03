package lineedit

import (
	"testing"

	"github.com/mauromedda/ashe-go/internal/quote"
)

// newTestEditor returns a started editor with an empty draw buffer.
func newTestEditor(t *testing.T, prompt string, width int) *Editor {
	t.Helper()
	d := NewDrawBuffer()
	t.Cleanup(d.Release)
	e := NewEditor(NewBuffer(1024), d, quote.Quoter{}, StaticPrompt(prompt))
	e.SetGeometry(width, 24)
	e.Start()
	d.Reset()
	return e
}

func typeText(t *testing.T, e *Editor, s string) {
	t.Helper()
	for i := 0; i < len(s); i++ {
		if e.Insert(s[i]) {
			t.Fatalf("Insert(%q) at %d submitted the line", s[i], i)
		}
	}
}

// checkState verifies the buffer and cursor invariants.
func checkState(t *testing.T, e *Editor) {
	t.Helper()
	if err := e.buf.Check(); err != nil {
		t.Fatal(err)
	}
	c := e.Cursor()
	if c.Row < 0 || c.Row >= e.buf.Count() {
		t.Fatalf("row %d out of range (%d lines)", c.Row, e.buf.Count())
	}
	if c.Col < 0 || c.Col > e.buf.Line(c.Row).Len {
		t.Fatalf("col %d out of range (len %d)", c.Col, e.buf.Line(c.Row).Len)
	}
	if want := e.buf.Line(c.Row).Start + c.Col; c.Index != want {
		t.Fatalf("index %d, recomputed %d", c.Index, want)
	}
	if _, tcol := e.locate(c.Row, c.Col); c.TermCol != tcol {
		t.Fatalf("term col %d, recomputed %d", c.TermCol, tcol)
	}
}

func drawn(e *Editor) string {
	s := string(e.draw.Bytes())
	e.draw.Reset()
	return s
}
