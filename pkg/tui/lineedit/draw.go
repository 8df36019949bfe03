// ABOUTME: DrawBuffer accumulates text and CSI sequences for one atomic terminal write
// ABOUTME: Backed by a pooled bytes.Buffer; numbers are appended without allocation

package lineedit

import (
	"bytes"
	"strconv"

	"github.com/mauromedda/ashe-go/pkg/tui/internal/pool"
)

// DrawBuffer batches terminal output between flushes.
type DrawBuffer struct {
	buf    *bytes.Buffer
	numBuf [20]byte
}

// NewDrawBuffer takes a buffer from the pool. Call Release when done.
func NewDrawBuffer() *DrawBuffer {
	return &DrawBuffer{buf: pool.GetBytesBuffer()}
}

// Release returns the backing buffer to the pool.
func (d *DrawBuffer) Release() {
	pool.PutBytesBuffer(d.buf)
	d.buf = nil
}

func (d *DrawBuffer) Bytes() []byte { return d.buf.Bytes() }
func (d *DrawBuffer) Len() int { return d.buf.Len() }
func (d *DrawBuffer) Reset() { d.buf.Reset() }

func (d *DrawBuffer) Write(p []byte) { d.buf.Write(p) }
func (d *DrawBuffer) WriteString(s string) { d.buf.WriteString(s) }
func (d *DrawBuffer) WriteByte(c byte) error { return d.buf.WriteByte(c) }

// csi writes ESC [ n final.
func (d *DrawBuffer) csi(n int, final byte) {
	d.buf.WriteString("\x1b[")
	d.buf.Write(strconv.AppendInt(d.numBuf[:0], int64(n), 10))
	d.buf.WriteByte(final)
}

func (d *DrawBuffer) Up(n int) { d.csi(n, 'A') }
func (d *DrawBuffer) Down(n int) { d.csi(n, 'B') }
func (d *DrawBuffer) Right(n int) { d.csi(n, 'C') }
func (d *DrawBuffer) Left(n int) { d.csi(n, 'D') }
func (d *DrawBuffer) Column(n int) { d.csi(n, 'G') }

func (d *DrawBuffer) Save() { d.buf.WriteString("\x1b[s") }
func (d *DrawBuffer) Restore() { d.buf.WriteString("\x1b[u") }
func (d *DrawBuffer) ClearRight() { d.buf.WriteString("\x1b[0K") }
func (d *DrawBuffer) ClearLine() { d.buf.WriteString("\x1b[2K") }
func (d *DrawBuffer) ClearDown() { d.buf.WriteString("\x1b[0J") }
func (d *DrawBuffer) ClearScreen() { d.buf.WriteString("\x1b[H\x1b[2J") }
func (d *DrawBuffer) HideCursor() { d.buf.WriteString("\x1b[?25l") }
func (d *DrawBuffer) ShowCursor() { d.buf.WriteString("\x1b[?25h") }
func (d *DrawBuffer) QueryCursor() { d.buf.WriteString("\x1b[6n") }
