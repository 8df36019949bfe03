// ABOUTME: StdinBuffer is a byte source over an io.Reader with signal-interruptible reads.
// ABOUTME: Reads happen on demand in a helper goroutine so child processes keep exclusive stdin.

package input

import (
	"context"
	"errors"
	"io"
	"sync"
)

const readBufSize = 256

// ErrInterrupted is returned by ReadByte when the wake channel fires while
// the read is blocked. The outstanding read stays pending and its bytes are
// delivered by the next call.
var ErrInterrupted = errors.New("read interrupted")

// StdinBuffer hands out bytes one at a time from a reader. A single helper
// goroutine performs Read calls, one per request, so nothing is consumed from
// the reader unless the editor asked for it.
type StdinBuffer struct {
	reader io.Reader

	mu      sync.Mutex
	wake    <-chan struct{}
	pending []byte
	err     error

	reqCh    chan struct{}
	readCh   chan readResult
	inFlight bool
	done     chan struct{}
	once     sync.Once
	stopOnce sync.Once
}

// readResult holds the outcome of a single Read call.
type readResult struct {
	data []byte
	err  error
}

// NewStdinBuffer creates a StdinBuffer reading from r.
func NewStdinBuffer(r io.Reader) *StdinBuffer {
	return &StdinBuffer{
		reader: r,
		reqCh:  make(chan struct{}),
		readCh: make(chan readResult, 1),
		done:   make(chan struct{}),
	}
}

// SetWake installs the channel whose receipt interrupts a blocked ReadByte.
func (b *StdinBuffer) SetWake(ch <-chan struct{}) {
	b.mu.Lock()
	b.wake = ch
	b.mu.Unlock()
}

// ReadByte returns the next byte, blocking until one is available. It
// returns ErrInterrupted if the wake channel fires first, ctx.Err() when ctx
// is done, and the reader's error once buffered bytes are exhausted.
func (b *StdinBuffer) ReadByte() (byte, error) {
	return b.ReadByteContext(context.Background())
}

// ReadByteContext is ReadByte bounded by ctx.
func (b *StdinBuffer) ReadByteContext(ctx context.Context) (byte, error) {
	b.once.Do(func() { go b.readLoop() })

	for {
		b.mu.Lock()
		if len(b.pending) > 0 {
			c := b.pending[0]
			b.pending = b.pending[1:]
			b.mu.Unlock()
			return c, nil
		}
		if b.err != nil {
			err := b.err
			b.mu.Unlock()
			return 0, err
		}
		wake := b.wake
		if !b.inFlight {
			b.inFlight = true
			b.mu.Unlock()
			select {
			case b.reqCh <- struct{}{}:
			case <-b.done:
				return 0, io.ErrClosedPipe
			}
		} else {
			b.mu.Unlock()
		}

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-wake:
			return 0, ErrInterrupted
		case res := <-b.readCh:
			b.mu.Lock()
			b.inFlight = false
			b.pending = append(b.pending, res.data...)
			if res.err != nil {
				b.err = res.err
			}
			b.mu.Unlock()
		}
	}
}

// Discard drops buffered but unread bytes.
func (b *StdinBuffer) Discard() {
	b.mu.Lock()
	b.pending = b.pending[:0]
	b.mu.Unlock()
}

// Buffered returns the number of bytes read from the reader but not yet handed out.
func (b *StdinBuffer) Buffered() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Stop ends the helper goroutine once its current Read (if any) returns.
func (b *StdinBuffer) Stop() {
	b.stopOnce.Do(func() { close(b.done) })
}

// readLoop performs one Read per request and publishes the result.
func (b *StdinBuffer) readLoop() {
	tmp := make([]byte, readBufSize)
	for {
		select {
		case <-b.done:
			return
		case <-b.reqCh:
		}
		n, err := b.reader.Read(tmp)
		data := make([]byte, n)
		copy(data, tmp[:n])
		select {
		case b.readCh <- readResult{data: data, err: err}:
		case <-b.done:
			return
		}
		if err != nil {
			return
		}
	}
}
