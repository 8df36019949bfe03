// ABOUTME: sync.Pool of bytes.Buffer for per-keystroke draw output
// ABOUTME: Buffers that grew past maxRetained are dropped instead of pooled

package pool

import (
	"bytes"
	"sync"
)

// maxRetained bounds the capacity of pooled buffers.
const maxRetained = 64 << 10

var bytesBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// GetBytesBuffer returns an empty bytes.Buffer from the pool.
func GetBytesBuffer() *bytes.Buffer {
	buf := bytesBufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBytesBuffer returns a bytes.Buffer to the pool.
func PutBytesBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxRetained {
		return
	}
	buf.Reset()
	bytesBufferPool.Put(buf)
}
