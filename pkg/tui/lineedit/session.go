// ABOUTME: Session runs the raw-mode read loop: decode a key, edit, flush, repeat
// ABOUTME: Signals are observed only while blocked on input; state changes happen masked

package lineedit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mauromedda/ashe-go/internal/log"
	"github.com/mauromedda/ashe-go/pkg/tui/internal/killring"
	"github.com/mauromedda/ashe-go/pkg/tui/internal/undo"
	"github.com/mauromedda/ashe-go/pkg/tui/key"
	"github.com/mauromedda/ashe-go/pkg/tui/terminal"
)

var (
	// ErrFatal wraps unrecoverable terminal I/O failures.
	ErrFatal = errors.New("lineedit: fatal terminal error")
	// ErrEOF is returned when the user ends input on an empty line or
	// the input stream closes.
	ErrEOF = errors.New("lineedit: end of input")
)

// DefaultMaxCommandSize bounds the buffer when Options leaves it unset.
const DefaultMaxCommandSize = 131072

// undoDepth bounds the snapshots kept for one command.
const undoDepth = 100

// Signals gates asynchronous events around state changes.
type Signals interface {
	Mask()
	Unmask()
	Wake() <-chan struct{}
	TakeInterrupt() bool
	TakeResize() bool
}

// History supplies previously entered commands.
type History interface {
	Previous() (string, bool)
	Next() (string, bool)
	Push(line string)
	Search(query string) (string, bool)
}

// Quoter decides whether a newline at pos is part of the command text.
type Quoter interface {
	IsEscaped(buf []byte, pos int) bool
	InsideDoubleQuote(buf []byte, pos int) bool
}

// ByteSource delivers raw input bytes.
type ByteSource interface {
	ReadByte() (byte, error)
}

type contextSource interface {
	ReadByteContext(ctx context.Context) (byte, error)
}

type wakeSetter interface {
	SetWake(ch <-chan struct{})
}

type discarder interface {
	Discard()
}

// Options configures a Session. Terminal and Input are required.
type Options struct {
	Terminal       terminal.Terminal
	Input          ByteSource
	Signals        Signals
	History        History
	Quoter         Quoter
	Prompt         Prompt
	MaxCommandSize int
}

// Session reads command lines from a terminal. It is not safe for
// concurrent use.
type Session struct {
	term terminal.Terminal
	src  ByteSource
	sig  Signals
	hist History
	ed   *Editor
	draw *DrawBuffer

	kill  *killring.KillRing
	undo  *undo.Stack[snapshot]
	typed bool

	draft    string
	browsing bool
}

// snapshot is the buffer text and cursor offset before a change.
type snapshot struct {
	text  string
	index int
}

// NewSession wires a session together. Call Close to release its buffers.
func NewSession(opts Options) *Session {
	size := opts.MaxCommandSize
	if size <= 0 {
		size = DefaultMaxCommandSize
	}
	sig := opts.Signals
	if sig == nil {
		sig = noSignals{}
	}
	if ws, ok := opts.Input.(wakeSetter); ok {
		ws.SetWake(sig.Wake())
	}
	draw := NewDrawBuffer()
	return &Session{
		term: opts.Terminal,
		src:  opts.Input,
		sig:  sig,
		hist: opts.History,
		ed:   NewEditor(NewBuffer(size), draw, opts.Quoter, opts.Prompt),
		draw: draw,
		kill: killring.New(),
		undo: undo.New[snapshot](undoDepth),
	}
}

// Close releases pooled buffers.
func (s *Session) Close() {
	if s.draw != nil {
		s.draw.Release()
		s.draw = nil
	}
}

// Editor exposes the editing state.
func (s *Session) Editor() *Editor { return s.ed }

// ReadLine puts the terminal in raw mode, edits one command and returns it.
// The terminal is back in its original mode when ReadLine returns.
func (s *Session) ReadLine(ctx context.Context) (line string, err error) {
	s.sig.Mask()
	defer s.sig.Unmask()

	if err := s.term.EnterRawMode(); err != nil {
		return "", fatal("enter raw mode", err)
	}
	defer func() {
		if rerr := s.term.ExitRawMode(); rerr != nil && err == nil {
			err = fatal("exit raw mode", rerr)
		}
	}()

	src := &ctxSource{ctx: ctx, src: s.src}
	w, h, err := s.geometry(src)
	if err != nil {
		return "", err
	}
	s.ed.SetGeometry(w, h)
	s.ed.Start()
	s.browsing = false
	s.reset()
	if err := s.flush(); err != nil {
		return "", err
	}

	dec := key.NewDecoder(src)
	for {
		s.sig.Unmask()
		k, rerr := dec.Next()
		s.sig.Mask()

		if rerr != nil {
			switch {
			case ctx.Err() != nil:
				s.ed.Finish()
				_ = s.flush()
				return "", ctx.Err()
			case errors.Is(rerr, io.EOF):
				s.ed.Finish()
				_ = s.flush()
				return "", ErrEOF
			default:
				return "", fatal("read", rerr)
			}
		}

		if s.sig.TakeInterrupt() {
			if d, ok := s.src.(discarder); ok {
				d.Discard()
			}
			src.pending = nil
			s.ed.Interrupt()
			s.browsing = false
			s.reset()
			if err := s.flush(); err != nil {
				return "", err
			}
			continue
		}
		if s.sig.TakeResize() {
			w, h, err := s.geometry(src)
			if err != nil {
				return "", err
			}
			log.Debug("lineedit: resized to %dx%d", w, h)
			s.ed.Resize(w, h)
		}

		if k.Type != key.KeyRune {
			log.Debug("lineedit: key %v", k)
		}
		done, eof := s.handle(k)
		if err := s.flush(); err != nil {
			return "", err
		}
		if eof {
			return "", ErrEOF
		}
		if done {
			line := s.ed.String()
			if line != "" && s.hist != nil {
				s.hist.Push(line)
			}
			return line, nil
		}
	}
}

// handle applies one key. done reports a submitted command, eof an
// end-of-input request.
func (s *Session) handle(k key.Key) (done, eof bool) {
	typed := false
	defer func() { s.typed = typed }()

	switch k.Type {
	case key.KeyRune:
		if !s.typed {
			s.save()
		}
		typed = true
		s.ed.Insert(k.Byte)
	case key.KeyEnter:
		s.save()
		if s.ed.Insert('\n') {
			s.ed.Finish()
			return true, false
		}
	case key.KeyBackspace, key.KeyDelete:
		if s.ed.Cursor().Index > 0 {
			s.save()
			s.ed.Remove()
		}
	case key.KeyLeft:
		s.ed.Left()
	case key.KeyRight:
		s.ed.Right()
	case key.KeyUp:
		s.ed.Up()
	case key.KeyDown:
		s.ed.Down()
	case key.KeyHome:
		s.ed.LineStart()
	case key.KeyEnd:
		s.ed.LineEnd()
	case key.KeyCtrlD:
		if s.ed.Buffer().Len() == 0 {
			s.ed.Finish()
			return false, true
		}
	case key.KeyCtrlL:
		s.ed.ClearScreen()
	case key.KeyCtrlP:
		s.previous()
	case key.KeyCtrlN:
		s.next()
	case key.KeyCtrlR:
		s.search()
	case key.KeyCtrlU:
		s.killBefore()
	case key.KeyCtrlK:
		s.killAfter()
	case key.KeyCtrlY:
		s.yank()
	case key.KeyUndo:
		s.restore()
	}
	return false, false
}

// reset forgets the undo history of the previous command.
func (s *Session) reset() {
	s.undo.Reset()
	s.typed = false
}

func (s *Session) save() {
	s.undo.Push(snapshot{text: s.ed.String(), index: s.ed.Cursor().Index})
}

func (s *Session) restore() {
	snap, ok := s.undo.Undo()
	if !ok {
		return
	}
	s.ed.SetText(snap.text, snap.index)
}

// killBefore cuts the current line from its start to the cursor.
func (s *Session) killBefore() {
	cur := s.ed.Cursor()
	if cur.Col == 0 {
		return
	}
	text := s.ed.String()
	start := cur.Index - cur.Col
	s.save()
	s.kill.Push(text[start:cur.Index])
	s.ed.SetText(text[:start]+text[cur.Index:], start)
}

// killAfter cuts the current line from the cursor to its end.
func (s *Session) killAfter() {
	cur := s.ed.Cursor()
	line := s.ed.Buffer().Line(cur.Row)
	end := line.Start + line.Len
	if cur.Index == end {
		return
	}
	text := s.ed.String()
	s.save()
	s.kill.Push(text[cur.Index:end])
	s.ed.SetText(text[:cur.Index]+text[end:], cur.Index)
}

// yank inserts the most recent kill at the cursor.
func (s *Session) yank() {
	y := s.kill.Yank()
	if y == "" {
		return
	}
	text := s.ed.String()
	idx := s.ed.Cursor().Index
	s.save()
	s.ed.SetText(text[:idx]+y+text[idx:], idx+len(y))
}

func (s *Session) previous() {
	if s.hist == nil {
		return
	}
	text, ok := s.hist.Previous()
	if !ok {
		return
	}
	if !s.browsing {
		s.draft = s.ed.String()
		s.browsing = true
	}
	s.save()
	s.ed.Replace(text)
}

func (s *Session) next() {
	if s.hist == nil || !s.browsing {
		return
	}
	text, ok := s.hist.Next()
	if !ok {
		text = s.draft
		s.browsing = false
	}
	s.save()
	s.ed.Replace(text)
}

func (s *Session) search() {
	if s.hist == nil {
		return
	}
	query := s.ed.String()
	text, ok := s.hist.Search(query)
	if !ok {
		return
	}
	if !s.browsing {
		s.draft = query
		s.browsing = true
	}
	s.save()
	s.ed.Replace(text)
}

func (s *Session) flush() error {
	if err := flush(s.term, s.draw); err != nil {
		return fatal("flush", err)
	}
	return nil
}

func fatal(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrFatal, op, err)
}

// ctxSource bounds reads from src by ctx and replays bytes handed back
// with Unread first.
type ctxSource struct {
	ctx     context.Context
	src     ByteSource
	pending []byte
}

// Unread queues b ahead of the underlying source.
func (c *ctxSource) Unread(b []byte) {
	c.pending = append(c.pending, b...)
}

func (c *ctxSource) ReadByte() (byte, error) {
	if len(c.pending) > 0 {
		b := c.pending[0]
		c.pending = c.pending[1:]
		return b, nil
	}
	if cs, ok := c.src.(contextSource); ok {
		return cs.ReadByteContext(c.ctx)
	}
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.src.ReadByte()
}

type noSignals struct{}

func (noSignals) Mask() {}
func (noSignals) Unmask() {}
func (noSignals) Wake() <-chan struct{} { return nil }
func (noSignals) TakeInterrupt() bool { return false }
func (noSignals) TakeResize() bool { return false }
